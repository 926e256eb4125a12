// Package view holds the console's view state and the controller that
// drives it.
//
// The state is a plain record. It changes only through the transition
// functions in this file (Begin, Succeed, Fail), and rendering is a pure
// projection of it (RenderHTML, RenderText). The Controller wires those
// transitions around backend calls.
package view

import (
	"encoding/json"
	"fmt"
)

// Operation names one of the tracked backend calls.
type Operation string

const (
	OpHealth  Operation = "health"
	OpVersion Operation = "version"
	OpSearch  Operation = "search"
)

// Operations lists all tracked operations in display order.
var Operations = []Operation{OpHealth, OpVersion, OpSearch}

// Phase is the tag of an Outcome.
type Phase string

const (
	PhaseIdle    Phase = "idle"
	PhaseLoading Phase = "loading"
	PhaseSuccess Phase = "success"
	PhaseFailure Phase = "failure"
)

// Outcome is the latest result of one operation.
//
// Payload is the last successfully fetched body. It survives later
// failures: a failed refresh changes Phase and Message only.
type Outcome struct {
	Phase   Phase           `json:"phase"`
	Payload json.RawMessage `json:"payload,omitempty"`
	Message string          `json:"message,omitempty"`
}

// State is the complete view state.
type State struct {
	// Busy is true while an operation is in flight.
	Busy bool `json:"busy"`

	// Error is the message of the most recent failure. It is cleared when
	// the next operation starts.
	Error string `json:"error,omitempty"`

	// Query is the input of the last accepted search.
	Query string `json:"query"`

	Health  Outcome `json:"health"`
	Version Outcome `json:"version"`
	Search  Outcome `json:"search"`
}

// Outcome returns the slot owned by op.
func (s State) Outcome(op Operation) Outcome {
	switch op {
	case OpHealth:
		return s.Health
	case OpVersion:
		return s.Version
	default:
		return s.Search
	}
}

func (s State) with(op Operation, o Outcome) State {
	switch op {
	case OpHealth:
		s.Health = o
	case OpVersion:
		s.Version = o
	case OpSearch:
		s.Search = o
	default:
		panic(fmt.Sprintf("view: unknown operation %q", op))
	}
	return s
}

// Begin marks op as in flight: busy is set, the error is cleared and the
// slot moves to loading while keeping its payload.
func Begin(s State, op Operation) State {
	o := s.Outcome(op)
	o.Phase = PhaseLoading
	o.Message = ""
	s = s.with(op, o)
	s.Busy = true
	s.Error = ""
	return s
}

// Succeed stores payload for op and releases busy.
func Succeed(s State, op Operation, payload json.RawMessage) State {
	s = s.with(op, Outcome{Phase: PhaseSuccess, Payload: payload})
	s.Busy = false
	s.Error = ""
	return s
}

// Fail records msg for op, keeps its previous payload and releases busy.
func Fail(s State, op Operation, msg string) State {
	o := s.Outcome(op)
	o.Phase = PhaseFailure
	o.Message = msg
	s = s.with(op, o)
	s.Busy = false
	s.Error = msg
	return s
}
