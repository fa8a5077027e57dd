// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package event defines the events that drive the dashboard and the bounded
// bus that merges them into a single ordered stream.
//
// There are three producers: the terminal program (TerminalInput), the
// startup workflow (StartupProgress, StartupError, StartupComplete) and the
// log store tee (LogLine). The session controller is the only consumer.
package event

import (
	"github.com/MKhiriev/p2p-rendezvous-server/models"
	tea "github.com/charmbracelet/bubbletea"
)

// Event is a closed sum type. Only the types declared in this package
// implement it; consumers switch on the concrete type.
type Event interface {
	isEvent()
}

// TerminalInput carries a raw terminal event. Exactly one of Key or Resize
// is set.
type TerminalInput struct {
	Key    *tea.KeyMsg
	Resize *tea.WindowSizeMsg
}

// LogLine is one complete line emitted by the logger, without the trailing
// newline.
type LogLine struct {
	Text string
}

// StartupProgress is a human-readable hint published before a startup step
// runs.
type StartupProgress struct {
	Hint string
}

// StartupError is the terminal failure of the startup workflow.
type StartupError struct {
	Err *models.StartupError
}

// StartupComplete reports the addresses the server is reachable on.
type StartupComplete struct {
	Endpoints models.Endpoints
}

func (TerminalInput) isEvent()   {}
func (LogLine) isEvent()         {}
func (StartupProgress) isEvent() {}
func (StartupError) isEvent()    {}
func (StartupComplete) isEvent() {}

// KeyInput wraps a key press.
func KeyInput(msg tea.KeyMsg) TerminalInput {
	return TerminalInput{Key: &msg}
}

// ResizeInput wraps a terminal resize.
func ResizeInput(msg tea.WindowSizeMsg) TerminalInput {
	return TerminalInput{Resize: &msg}
}
