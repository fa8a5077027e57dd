package session

import (
	"github.com/MKhiriev/p2p-rendezvous-server/internal/event"
	"github.com/MKhiriev/p2p-rendezvous-server/models"
)

// Status is the startup status of the session.
type Status int

const (
	// Starting collects progress hints until the workflow finishes.
	Starting Status = iota
	// Failed is terminal: the workflow reported an error.
	Failed
	// Running is terminal: the server is reachable.
	Running
)

func (s Status) String() string {
	switch s {
	case Starting:
		return "starting"
	case Failed:
		return "failed"
	case Running:
		return "running"
	default:
		return "unknown"
	}
}

// State is the startup part of the session. Only Starting accepts
// workflow events; Failed and Running ignore them.
type State struct {
	Status    Status
	Hints     []string
	Err       *models.StartupError
	Endpoints models.Endpoints
}

// applyStartup folds a workflow event into the state. It reports whether
// ev was a workflow event at all.
func (s *State) applyStartup(ev event.Event) bool {
	switch ev := ev.(type) {
	case event.StartupProgress:
		if s.Status == Starting {
			s.Hints = append(s.Hints, ev.Hint)
		}
	case event.StartupError:
		if s.Status == Starting {
			s.Status = Failed
			s.Err = ev.Err
		}
	case event.StartupComplete:
		if s.Status == Starting {
			s.Status = Running
			s.Endpoints = ev.Endpoints
		}
	default:
		return false
	}
	return true
}

func (s State) clone() State {
	s.Hints = append([]string(nil), s.Hints...)
	return s
}
