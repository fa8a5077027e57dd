// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package session holds the dashboard state machine. The Controller is the
// single consumer of the event bus: it receives one event, applies it to
// the session state, the input editor or the log store, and asks the
// renderer to redraw.
package session

import (
	"context"

	"github.com/MKhiriev/p2p-rendezvous-server/internal/event"
	"github.com/MKhiriev/p2p-rendezvous-server/internal/input"
	"github.com/MKhiriev/p2p-rendezvous-server/internal/logger"
)

// Receiver is the consuming end of the event bus.
type Receiver interface {
	Recv(ctx context.Context) (event.Event, bool)
	Close()
}

// LogStore is the in-memory log window the controller feeds.
type LogStore interface {
	Update(line string)
	Tail(k int) []string
	InitError() string
}

// Renderer draws a snapshot. Redraw must not block on the controller.
type Renderer interface {
	Redraw(Snapshot)
}

// Snapshot is an immutable copy of everything the dashboard shows.
type Snapshot struct {
	State    State
	Logs     []string
	LogError string
	Input    string
	InputErr bool
	Width    int
	Height   int
}

// Controller owns the session state, the input editor and the log store.
// None of them is touched outside Run.
type Controller struct {
	events   Receiver
	logs     LogStore
	editor   *input.Editor
	renderer Renderer
	capacity func(height int) int
	log      *logger.Logger

	state  State
	width  int
	height int
}

// NewController wires the controller. capacity maps the terminal height to
// the number of log lines that fit on screen.
func NewController(
	events Receiver,
	logs LogStore,
	editor *input.Editor,
	renderer Renderer,
	capacity func(height int) int,
	log *logger.Logger,
) *Controller {
	return &Controller{
		events:   events,
		logs:     logs,
		editor:   editor,
		renderer: renderer,
		capacity: capacity,
		log:      log.WithComponent("session"),
	}
}

// Run consumes events until the operator exits, every producer is gone, or
// ctx is cancelled. It closes the bus on return so blocked producers fail.
func (c *Controller) Run(ctx context.Context) {
	defer c.events.Close()

	c.renderer.Redraw(c.Snapshot())

	for {
		ev, ok := c.events.Recv(ctx)
		if !ok {
			c.log.Info().Msg("event stream ended")
			return
		}

		exit := c.Apply(ev)
		c.renderer.Redraw(c.Snapshot())

		if exit {
			c.log.Info().Msg("operator requested exit")
			return
		}
	}
}

// Apply folds one event into the session and reports whether the operator
// asked to exit.
func (c *Controller) Apply(ev event.Event) bool {
	if c.state.applyStartup(ev) {
		return false
	}

	switch ev := ev.(type) {
	case event.LogLine:
		c.logs.Update(ev.Text)
	case event.TerminalInput:
		return c.applyInput(ev)
	}

	return false
}

func (c *Controller) applyInput(ev event.TerminalInput) bool {
	if ev.Resize != nil {
		c.width, c.height = ev.Resize.Width, ev.Resize.Height
		return false
	}
	if ev.Key == nil {
		return false
	}

	cmd, ok := c.editor.HandleKey(*ev.Key)
	if ok && cmd == input.Exit {
		return true
	}
	// the error display only appears right after a rejected submit, which
	// is the newest history entry
	if c.editor.IsErr() {
		history := c.editor.History()
		c.log.Warn().Str("command", history[len(history)-1]).Msg("unknown command")
	}

	return false
}

// State returns a copy of the startup state.
func (c *Controller) State() State {
	return c.state.clone()
}

// Snapshot captures what the renderer needs right now.
func (c *Controller) Snapshot() Snapshot {
	return Snapshot{
		State:    c.state.clone(),
		Logs:     c.logs.Tail(c.capacity(c.height)),
		LogError: c.logs.InitError(),
		Input:    c.editor.Text(),
		InputErr: c.editor.IsErr(),
		Width:    c.width,
		Height:   c.height,
	}
}
