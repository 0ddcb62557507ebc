// Package session holds the testbed's user-controlled flags and the pure
// transitions that keyboard commands apply to them.
package session

import (
	"errors"
	"fmt"
)

// ErrSourceIndex is returned when a source index falls outside the source list.
var ErrSourceIndex = errors.New("session: source index out of range")

// State is an immutable snapshot of the session flags.
// Use Apply to obtain the next state.
//
// Invariants kept by every transition:
//   - 0 <= Source() < Sources()
//   - Debug() implies Tracking()
type State struct {
	tracking bool
	debug    bool
	paused   bool
	stopped  bool
	source   int
	count    int
}

// New returns the initial state for a list of count sources starting at index start.
func New(start, count int) (State, error) {
	if count < 1 {
		return State{}, fmt.Errorf("%w: no sources", ErrSourceIndex)
	}
	if start < 0 || start >= count {
		return State{}, fmt.Errorf("%w: %d not in [0, %d)", ErrSourceIndex, start, count)
	}
	return State{source: start, count: count}, nil
}

// Tracking reports whether the differencer runs on each frame.
func (s State) Tracking() bool { return s.tracking }

// Debug reports whether the intermediate images are shown.
func (s State) Debug() bool { return s.debug }

// Paused reports whether acquisition is suspended.
func (s State) Paused() bool { return s.paused }

// Running reports whether the session has not been quit.
func (s State) Running() bool { return !s.stopped }

// Source returns the active source index.
func (s State) Source() int { return s.source }

// Sources returns the number of sources.
func (s State) Sources() int { return s.count }

// Apply returns the state after cmd.
// A stopped session ignores every command.
func (s State) Apply(cmd Command) State {
	if s.stopped {
		return s
	}

	switch cmd {
	case CmdQuit:
		s.stopped = true
		s.paused = false

	case CmdToggleDebug:
		s.debug = !s.debug
		if s.debug {
			s.tracking = true
		}

	case CmdToggleTracker:
		s.tracking = !s.tracking
		if !s.tracking {
			s.debug = false
		}

	case CmdSwitchSource:
		s.source = (s.source + 1) % s.count
		s.tracking = false
		s.debug = false

	case CmdPause:
		s.paused = !s.paused
	}

	return s
}

// String renders the flags for logs.
func (s State) String() string {
	return fmt.Sprintf("source=%d/%d tracking=%t debug=%t paused=%t running=%t",
		s.source, s.count, s.tracking, s.debug, s.paused, !s.stopped)
}
