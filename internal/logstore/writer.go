// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package logstore

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/MKhiriev/p2p-rendezvous-server/internal/event"
)

// Publisher accepts completed log lines. TrySend must never block; when it
// reports false the line is dropped.
type Publisher interface {
	TrySend(ev event.Event) bool
}

// Writer is the tee installed under the logger. Every write is appended to
// the log file as-is and split into lines; each completed line is offered to
// the Publisher without blocking the caller.
//
// Writer is safe for concurrent use.
type Writer struct {
	mu      sync.Mutex
	file    *os.File
	pending []byte
	pub     Publisher
	closed  bool

	dropped atomic.Uint64
}

func newWriter(file *os.File, pub Publisher) *Writer {
	return &Writer{file: file, pub: pub}
}

// Write implements io.Writer.
func (w *Writer) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return len(p), nil
	}
	if _, err := w.file.Write(p); err != nil {
		return 0, fmt.Errorf("write log file: %w", err)
	}

	w.pending = append(w.pending, p...)
	for {
		i := bytes.IndexByte(w.pending, '\n')
		if i < 0 {
			break
		}
		line := strings.TrimSuffix(string(w.pending[:i]), "\r")
		w.pending = w.pending[i+1:]
		w.publish(strings.ToValidUTF8(line, "�"))
	}
	if len(w.pending) == 0 {
		w.pending = nil
	}

	return len(p), nil
}

func (w *Writer) publish(line string) {
	if w.pub == nil {
		return
	}
	if !w.pub.TrySend(event.LogLine{Text: line}) {
		w.dropped.Add(1)
	}
}

// Dropped reports how many completed lines the publisher refused.
func (w *Writer) Dropped() uint64 {
	return w.dropped.Load()
}

// Close closes the log file. Later writes are discarded: an abandoned
// background task may still log while the process exits.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil
	}
	w.closed = true
	return w.file.Close()
}
