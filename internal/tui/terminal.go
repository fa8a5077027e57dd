// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package tui is the terminal side of the dashboard. Terminal runs the
// bubbletea program: it forwards key presses and resizes onto the event bus
// and draws the snapshots the session controller hands it.
package tui

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/MKhiriev/p2p-rendezvous-server/internal/event"
	"github.com/MKhiriev/p2p-rendezvous-server/internal/logger"
	"github.com/MKhiriev/p2p-rendezvous-server/internal/session"
	tea "github.com/charmbracelet/bubbletea"
)

// Sender is the producing end of the event bus used for terminal input.
type Sender interface {
	Send(ctx context.Context, ev event.Event) error
	Release()
}

// Terminal owns the bubbletea program. Redraw and Close are safe to call
// from any goroutine and never block.
type Terminal struct {
	sender Sender
	log    *logger.Logger
	opts   []tea.ProgramOption

	snapshot atomic.Pointer[session.Snapshot]
	dirty    chan struct{}
	quit     chan struct{}
	quitOnce sync.Once
}

// New creates a terminal. Extra options are passed to tea.NewProgram after
// the alternate screen option.
func New(sender Sender, log *logger.Logger, opts ...tea.ProgramOption) *Terminal {
	return &Terminal{
		sender: sender,
		log:    log.WithComponent("tui"),
		opts:   opts,
		dirty:  make(chan struct{}, 1),
		quit:   make(chan struct{}),
	}
}

// Redraw implements session.Renderer. Only the newest snapshot is kept;
// intermediate ones are skipped when the program is busy.
func (t *Terminal) Redraw(s session.Snapshot) {
	t.snapshot.Store(&s)
	select {
	case t.dirty <- struct{}{}:
	default:
	}
}

// Close makes Run return. Safe to call more than once.
func (t *Terminal) Close() {
	t.quitOnce.Do(func() {
		close(t.quit)
	})
}

// Run blocks until the program exits. The terminal state is restored by
// bubbletea on every exit path. The input sender is released on return.
func (t *Terminal) Run() error {
	defer t.sender.Release()

	opts := append([]tea.ProgramOption{tea.WithAltScreen()}, t.opts...)
	_, err := tea.NewProgram(newDashboardModel(t), opts...).Run()
	return err
}

// forward pushes a terminal event onto the bus, blocking while it is full.
func (t *Terminal) forward(ev event.TerminalInput) error {
	if err := t.sender.Send(context.Background(), ev); err != nil {
		t.log.Debug().Err(err).Msg("terminal input not delivered")
		return err
	}
	return nil
}

func (t *Terminal) waitForRedraw() tea.Cmd {
	return func() tea.Msg {
		select {
		case <-t.dirty:
			return redrawMsg{}
		case <-t.quit:
			return quitMsg{}
		}
	}
}

func (t *Terminal) latest() (session.Snapshot, bool) {
	s := t.snapshot.Load()
	if s == nil {
		return session.Snapshot{}, false
	}
	return *s, true
}
