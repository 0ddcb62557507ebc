package session

import (
	"fmt"
	"io"
)

// Command is a discrete user action read from the keyboard.
type Command int

const (
	// CmdNone leaves the state unchanged (no key, or an unknown one).
	CmdNone Command = iota

	// CmdQuit stops the session for good.
	CmdQuit

	// CmdToggleDebug flips the debug windows; turning them on also enables tracking.
	CmdToggleDebug

	// CmdSwitchSource advances to the next source, wrapping to the camera,
	// and disables tracking.
	CmdSwitchSource

	// CmdToggleTracker flips tracking; turning it off also disables debug.
	CmdToggleTracker

	// CmdPause suspends or resumes acquisition.
	CmdPause

	// CmdMenu prints the command listing.
	CmdMenu
)

// Key codes as returned by the window key poll.
const (
	KeyEsc    = 27
	KeyDebug  = 'd'
	KeySwitch = 's'
	KeyTrack  = 't'
	KeyPause  = 'p'
	KeyMenu   = 'm'
)

// String returns the command name used in logs.
func (c Command) String() string {
	switch c {
	case CmdQuit:
		return "quit"
	case CmdToggleDebug:
		return "toggle-debug"
	case CmdSwitchSource:
		return "switch-source"
	case CmdToggleTracker:
		return "toggle-tracker"
	case CmdPause:
		return "pause"
	case CmdMenu:
		return "show-menu"
	default:
		return "none"
	}
}

// CommandForKey maps a polled key code to a command.
// Unknown keys, and -1 for "no key", map to CmdNone.
func CommandForKey(key int) Command {
	// Some highgui backends report modifier bits above the low byte.
	if key >= 0 {
		key &= 0xff
	}

	switch key {
	case KeyEsc:
		return CmdQuit
	case KeyDebug:
		return CmdToggleDebug
	case KeySwitch:
		return CmdSwitchSource
	case KeyTrack:
		return CmdToggleTracker
	case KeyPause:
		return CmdPause
	case KeyMenu:
		return CmdMenu
	default:
		return CmdNone
	}
}

// PrintMenu writes the command listing to w.
func PrintMenu(w io.Writer) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Command Menu - press a key in the video window:")
	fmt.Fprintln(w, "  'esc' - Quit program")
	fmt.Fprintln(w, "  'd'   - Enable/disable debug windows (enables tracker)")
	fmt.Fprintln(w, "  's'   - Switch to the next video source (disables tracker)")
	fmt.Fprintln(w, "  't'   - Enable/disable tracker")
	fmt.Fprintln(w, "  'p'   - Pause and unpause")
	fmt.Fprintln(w, "  'm'   - Show this menu")
	fmt.Fprintln(w)
}
