// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package logstore keeps the dashboard's log history: a size-bounded file in
// the per-user data directory, an in-memory window of the most recent lines,
// and a tee that forwards every freshly written line onto the event bus.
//
// Initialization never fails hard. Any error leaves the store in a permanent
// error mode: [Store.InitError] returns the message to show instead of the
// log pane and [Store.Writer] returns nil, meaning no logging should be
// installed for the session.
package logstore

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/adrg/xdg"
)

const (
	// MemoryLimit is the number of lines kept in memory and shown.
	MemoryLimit = 100
	// DiskLimit is the number of lines the file is trimmed to on load.
	DiskLimit = 300
	// SessionStartMarker separates the previous session's lines from the
	// current ones. It is shown but never written to disk.
	SessionStartMarker = "### SESSION START ###"
	// FileName is the log file inside the application data directory.
	FileName = "logs.txt"

	maxLineSize = 1 << 20
)

// dataHome resolves the per-user data directory base.
var dataHome = func() string {
	return xdg.DataHome
}

// Options controls where the store keeps its file.
type Options struct {
	// AppName is the sub-directory created under the data directory.
	AppName string
	// DataDir overrides the per-user data directory base.
	DataDir string
}

// Store owns the in-memory log window. Everything except the Writer must be
// used from a single goroutine, the session controller.
type Store struct {
	initErr string
	path    string
	items   []string
	writer  *Writer
}

// Open runs the initialization sequence: resolve the data directory, create
// it, load and trim the existing file, reopen it for appending and seed the
// in-memory window. pub receives completed lines written through the Writer.
func Open(opts Options, pub Publisher) *Store {
	base := opts.DataDir
	if base == "" {
		base = dataHome()
	}
	if base == "" {
		return failed("[E391] Failed to find a suitable directory for log data.")
	}
	dir := filepath.Join(base, opts.AppName)

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return failed(fmt.Sprintf("[E392] Failed to initialize data directory with error: '%v'", err))
	}

	path := filepath.Join(dir, FileName)

	items, err := loadRecentLogs(path)
	if err != nil {
		return failed(fmt.Sprintf("[E394] Failed to load recent logs with error: '%v'", err))
	}
	if len(items) > 0 {
		items = append(items, SessionStartMarker)
	}

	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return failed(fmt.Sprintf("[E393] Failed to open log file with error: '%v'", err))
	}

	return &Store{
		path:   path,
		items:  items,
		writer: newWriter(file, pub),
	}
}

func failed(msg string) *Store {
	return &Store{initErr: msg}
}

// InitError returns the initialization failure message, or "" when the
// store is healthy.
func (s *Store) InitError() string {
	return s.initErr
}

// Writer returns the tee writer, or nil if initialization failed.
func (s *Store) Writer() *Writer {
	return s.writer
}

// Path returns the log file location, or "" if initialization failed.
func (s *Store) Path() string {
	return s.path
}

// Update appends a line to the in-memory window, evicting the oldest line
// once the window exceeds MemoryLimit.
func (s *Store) Update(line string) {
	s.items = append(s.items, line)
	if len(s.items) > MemoryLimit {
		s.items = s.items[len(s.items)-MemoryLimit:]
	}
}

// Tail returns a copy of the most recent k lines, oldest first.
func (s *Store) Tail(k int) []string {
	if k <= 0 {
		return nil
	}
	if k > len(s.items) {
		k = len(s.items)
	}

	out := make([]string, k)
	copy(out, s.items[len(s.items)-k:])
	return out
}

// Len returns the number of lines in the in-memory window.
func (s *Store) Len() int {
	return len(s.items)
}

// Close closes the underlying file. The Writer must not be used afterwards.
func (s *Store) Close() error {
	if s.writer == nil {
		return nil
	}
	return s.writer.Close()
}

// scanLines splits r into lines. Lines longer than maxLineSize or not valid
// UTF-8 are skipped so a single damaged line cannot disable the store.
func scanLines(r io.Reader) ([]string, error) {
	reader := bufio.NewReader(r)

	var (
		lines     []string
		line      []byte
		oversized bool
	)
	for {
		chunk, err := reader.ReadSlice('\n')
		if err != nil && !errors.Is(err, bufio.ErrBufferFull) && !errors.Is(err, io.EOF) {
			return nil, err
		}

		if !oversized {
			if len(line)+len(chunk) > maxLineSize {
				oversized = true
				line = line[:0]
			} else {
				line = append(line, chunk...)
			}
		}
		if errors.Is(err, bufio.ErrBufferFull) {
			continue
		}

		eof := errors.Is(err, io.EOF)
		if eof && len(line) == 0 && !oversized {
			return lines, nil
		}
		if !oversized {
			text := strings.TrimRight(string(line), "\r\n")
			if utf8.ValidString(text) {
				lines = append(lines, text)
			}
		}
		if eof {
			return lines, nil
		}
		line, oversized = line[:0], false
	}
}

// loadRecentLogs reads the log file, rewrites it with only the last
// DiskLimit lines if it grew beyond that, and returns the last MemoryLimit
// lines. A missing file yields no lines.
func loadRecentLogs(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	defer file.Close()

	lines, err := scanLines(file)
	if err != nil {
		return nil, err
	}

	if len(lines) > DiskLimit {
		lines = lines[len(lines)-DiskLimit:]
		if err = os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644); err != nil {
			return nil, fmt.Errorf("trim log file: %w", err)
		}
	}

	if len(lines) > MemoryLimit {
		lines = lines[len(lines)-MemoryLimit:]
	}

	recent := make([]string, len(lines))
	copy(recent, lines)
	return recent, nil
}
