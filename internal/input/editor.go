// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package input implements the single-line command editor of the dashboard:
// typing, backspace, history browsing with a stashed draft, and command
// submission.
package input

import (
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Command is an action the editor asks its owner to perform.
type Command int

const (
	// Exit ends the interactive session.
	Exit Command = iota + 1
)

// UnknownCommandMessage replaces the buffer after an unrecognized submit.
const UnknownCommandMessage = "Unknown Command"

// Editor is the input box state. It is not safe for concurrent use; the
// session controller owns it.
type Editor struct {
	// text is what the input box shows.
	text string
	// history holds submitted commands, most recent last.
	history []string
	// isErr marks text as an error message rather than operator input.
	isErr bool
	// cursor is the history depth counted back from the newest entry;
	// 0 means the operator is not browsing history.
	cursor int
	// stash keeps the draft while browsing; only meaningful when cursor > 0.
	stash    string
	hasStash bool
}

// NewEditor returns an empty editor.
func NewEditor() *Editor {
	return &Editor{}
}

// HandleKey applies one key press. It returns Exit with ok=true when the
// operator submitted exit or quit.
func (e *Editor) HandleKey(msg tea.KeyMsg) (cmd Command, ok bool) {
	if e.isErr {
		e.isErr = false
		e.text = ""
	}

	switch {
	case key.Matches(msg, keys.interrupt):
		e.text = ""
		e.cursor = 0
		e.clearStash()
	case msg.Type == tea.KeyRunes:
		e.text += string(msg.Runes)
	case key.Matches(msg, keys.space):
		e.text += " "
	case key.Matches(msg, keys.backspace):
		e.deleteBackward()
	case key.Matches(msg, keys.older):
		e.historyOlder()
	case key.Matches(msg, keys.newer):
		e.historyNewer()
	case key.Matches(msg, keys.submit):
		return e.submit()
	}

	return 0, false
}

// Text returns the buffer as displayed.
func (e *Editor) Text() string {
	return e.text
}

// IsErr reports whether the buffer shows an error message.
func (e *Editor) IsErr() bool {
	return e.isErr
}

// Cursor returns the current history depth.
func (e *Editor) Cursor() int {
	return e.cursor
}

// Stash returns the draft saved when history browsing started.
func (e *Editor) Stash() (string, bool) {
	return e.stash, e.hasStash
}

// History returns a copy of the submitted commands, oldest first.
func (e *Editor) History() []string {
	return append([]string(nil), e.history...)
}

func (e *Editor) deleteBackward() {
	if e.text == "" {
		return
	}
	_, size := utf8.DecodeLastRuneInString(e.text)
	e.text = e.text[:len(e.text)-size]
}

func (e *Editor) historyOlder() {
	if e.cursor == len(e.history) {
		return
	}
	if e.cursor == 0 {
		e.stash, e.hasStash = e.text, true
	}
	e.cursor++
	e.text = e.history[len(e.history)-e.cursor]
}

func (e *Editor) historyNewer() {
	if e.cursor == 0 {
		return
	}
	if e.cursor == 1 {
		e.cursor = 0
		e.text = e.stash
		e.clearStash()
		return
	}
	e.cursor--
	e.text = e.history[len(e.history)-e.cursor]
}

// submit consumes the buffer. exit and quit are matched case-sensitively and
// are not recorded; anything else is recorded and reported as unknown.
func (e *Editor) submit() (Command, bool) {
	e.cursor = 0
	e.clearStash()

	cmd := e.text
	e.text = ""

	switch cmd {
	case "exit", "quit":
		return Exit, true
	}

	e.history = append(e.history, cmd)
	e.showErr(UnknownCommandMessage)
	return 0, false
}

func (e *Editor) showErr(msg string) {
	e.isErr = true
	e.text = msg
}

func (e *Editor) clearStash() {
	e.stash, e.hasStash = "", false
}
