package logger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNewSessionLogger_NotNil verifies that NewSessionLogger returns a non-nil *Logger.
func TestNewSessionLogger_NotNil(t *testing.T) {
	l := NewSessionLogger(&bytes.Buffer{}, "test")
	require.NotNil(t, l)
}

// TestNewSessionLogger_OneLinePerEvent verifies that each event is written as
// a single newline-terminated line.
func TestNewSessionLogger_OneLinePerEvent(t *testing.T) {
	var buf bytes.Buffer
	l := NewSessionLogger(&buf, "dashboard")

	l.Info().Msg("first")
	l.Warn().Msg("second")

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "INF")
	assert.Contains(t, lines[0], "first")
	assert.Contains(t, lines[1], "WRN")
	assert.Contains(t, lines[1], "second")
}

// TestNewSessionLogger_RoleField verifies that every entry carries the role.
func TestNewSessionLogger_RoleField(t *testing.T) {
	var buf bytes.Buffer
	l := NewSessionLogger(&buf, "test-role")

	l.Info().Msg("hello")

	assert.Contains(t, buf.String(), "role=test-role")
}

// TestNewSessionLogger_NoColorNoTimestamp verifies that output is plain text
// without ANSI escapes, starting directly with the level.
func TestNewSessionLogger_NoColorNoTimestamp(t *testing.T) {
	var buf bytes.Buffer
	l := NewSessionLogger(&buf, "plain")

	l.Info().Msg("x")

	assert.NotContains(t, buf.String(), "\x1b[")
	assert.True(t, strings.HasPrefix(buf.String(), "INF"), buf.String())
}

// TestNewSessionLogger_DebugFiltered verifies that the Info level filter is
// applied on the logger itself.
func TestNewSessionLogger_DebugFiltered(t *testing.T) {
	var buf bytes.Buffer
	l := NewSessionLogger(&buf, "lvl")

	l.Debug().Msg("hidden")

	assert.Empty(t, buf.String())
}

// TestNop_DiscardsOutput verifies that a Nop logger produces no output.
func TestNop_DiscardsOutput(t *testing.T) {
	var buf bytes.Buffer
	l := Nop()
	l.Logger = l.Output(&buf)

	l.Info().Msg("should be discarded")

	assert.Empty(t, buf.String(), "Nop logger should produce no output")
}

// TestGetChildLogger_IsIndependent verifies that the child logger is a
// distinct instance from the parent.
func TestGetChildLogger_IsIndependent(t *testing.T) {
	parent := NewSessionLogger(&bytes.Buffer{}, "parent")
	child := parent.GetChildLogger()
	require.NotNil(t, child)
	assert.NotSame(t, parent, child)
}

// TestWithComponent_AddsField verifies that the component field is added and
// the parent's fields are inherited.
func TestWithComponent_AddsField(t *testing.T) {
	var buf bytes.Buffer
	parent := NewSessionLogger(&buf, "inherited-role")

	parent.WithComponent("startup").Info().Msg("child message")

	out := buf.String()
	assert.Contains(t, out, "component=startup")
	assert.Contains(t, out, "role=inherited-role")
}
