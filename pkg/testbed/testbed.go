// Package testbed runs the interactive read-process-display loop over the
// configured video sources.
package testbed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"gocv.io/x/gocv"

	"github.com/teslashibe/go-trackbed/internal/log"
	"github.com/teslashibe/go-trackbed/pkg/motion"
	"github.com/teslashibe/go-trackbed/pkg/overlay"
	"github.com/teslashibe/go-trackbed/pkg/session"
	"github.com/teslashibe/go-trackbed/pkg/source"
)

// Debug window titles.
const (
	DifferenceWindow = "Difference Image"
	ThresholdWindow  = "Threshold Image"
)

// pauseInterval bounds each key wait while paused so cancellation is noticed.
const pauseInterval = 100 * time.Millisecond

// SourceError reports a source that could not be opened.
type SourceError struct {
	Source source.Source
	Err    error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("testbed: unable to open video source %q: %v", e.Source.Name, e.Err)
}

func (e *SourceError) Unwrap() error {
	return e.Err
}

// Options tunes the controller.
type Options struct {
	PollInterval time.Duration // Key wait per displayed frame
	Motion       motion.Config
	Menu         io.Writer    // Destination of the command menu (default stdout)
	Logger       *slog.Logger // Default: internal/log global logger
}

// Testbed owns the active source and the session state.
// It is single-goroutine: Run, State and Close must not be called concurrently.
type Testbed struct {
	opts     Options
	sources  source.List
	opener   source.Opener
	display  Display
	detector *motion.Differencer
	log      *slog.Logger

	state   session.State
	capture source.Capture
	debug   *motion.Intermediates
}

// New creates a testbed starting at sources.At(start).
func New(sources source.List, start int, opener source.Opener, display Display, opts Options) (*Testbed, error) {
	state, err := session.New(start, sources.Len())
	if err != nil {
		return nil, err
	}

	detector, err := motion.NewDifferencer(opts.Motion)
	if err != nil {
		return nil, err
	}

	if opts.PollInterval <= 0 {
		opts.PollInterval = 5 * time.Millisecond
	}
	if opts.Menu == nil {
		opts.Menu = os.Stdout
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.L()
	}

	return &Testbed{
		opts:     opts,
		sources:  sources,
		opener:   opener,
		display:  display,
		detector: detector,
		log:      logger.With("component", "testbed", "run", uuid.NewString()),
		state:    state,
	}, nil
}

// State returns the current session state.
func (t *Testbed) State() session.State {
	return t.state
}

// Run opens the starting source and processes frames until quit or ctx is done.
// It returns a *SourceError when a source cannot be opened.
func (t *Testbed) Run(ctx context.Context) error {
	if err := t.open(); err != nil {
		return err
	}
	cfg := t.detector.Config()
	t.log.Info("testbed started", "sources", t.sources.Len(), "source", t.current().Name,
		"sensitivity", cfg.Sensitivity, "blur", cfg.BlurSize, "selection", cfg.Selection)

	for t.state.Running() {
		if ctx.Err() != nil {
			t.apply(session.CmdQuit)
			break
		}

		// The source kind is re-evaluated on every pass, so a switch or a
		// file restart simply returns here.
		if err := t.acquire(ctx); err != nil {
			return err
		}
	}

	t.log.Info("testbed stopped", "state", t.state.String())
	return nil
}

// Close releases the active source and every window.
func (t *Testbed) Close() error {
	var err error
	if t.capture != nil {
		err = t.capture.Close()
		t.capture = nil
	}
	if t.debug != nil {
		t.debug.Close()
		t.debug = nil
	}
	t.display.CloseAll()
	return err
}

func (t *Testbed) current() source.Source {
	return t.sources.At(t.state.Source())
}

// acquire reads frames from the open capture until the session stops,
// the active source changes, or a file runs out.
func (t *Testbed) acquire(ctx context.Context) error {
	src := t.current()
	live := src.Kind == source.Camera

	prev := gocv.NewMat()
	defer prev.Close()
	curr := gocv.NewMat()
	defer curr.Close()
	clean := gocv.NewMat()
	defer clean.Close()

	if !t.read(&prev, live) && !live {
		// A file with no readable frames would otherwise reopen in a tight
		// loop without ever polling the keyboard.
		t.showPlaceholder(src, "No frames in file")
		if err := t.poll(ctx); err != nil {
			return err
		}
		if !t.state.Running() || t.state.Source() != src.Index {
			return nil
		}
		return t.rewind()
	}

	for {
		if ctx.Err() != nil {
			t.apply(session.CmdQuit)
			return nil
		}

		ok := t.read(&curr, live)
		if !ok && !live {
			return t.rewind()
		}

		if ok {
			// Overlays are drawn on curr, so keep an untouched copy for the next pair.
			curr.CopyTo(&clean)
			if err := t.process(prev, &curr); err != nil {
				return err
			}
			t.display.Show(src.Name, curr)
		} else {
			t.log.Debug("camera frame unavailable", "source", src.Name)
			if prev.Empty() {
				t.showPlaceholder(src, "Waiting for camera")
			}
		}

		if err := t.poll(ctx); err != nil {
			return err
		}
		if !t.state.Running() || t.state.Source() != src.Index {
			return nil
		}

		if ok {
			clean.CopyTo(&prev)
		}
	}
}

// read fills m from the capture. Files also report end of stream here.
func (t *Testbed) read(m *gocv.Mat, live bool) bool {
	if !live && t.capture.Progress() >= 1 {
		return false
	}
	return t.capture.Read(m) && !m.Empty()
}

// showPlaceholder keeps the source window open while it has no frame, since
// key presses only reach an open window.
func (t *Testbed) showPlaceholder(src source.Source, msg string) {
	img := overlay.Placeholder(msg)
	defer img.Close()
	t.display.Show(src.Name, img)
}

// rewind closes a file that reached its end and opens it again from the start.
func (t *Testbed) rewind() error {
	src := t.current()
	t.log.Debug("end of stream, reopening", "source", src.Name)
	t.release()
	return t.open()
}

// process runs the differencer on the frame pair when tracking is enabled and
// draws the result onto curr.
func (t *Testbed) process(prev gocv.Mat, curr *gocv.Mat) error {
	if !t.state.Tracking() {
		t.closeDebugWindows()
		return nil
	}

	var det *motion.Detection
	if !prev.Empty() {
		var err error
		if t.state.Debug() {
			if t.debug == nil {
				t.debug = motion.NewIntermediates()
			}
			det, err = t.detector.DetectDebug(prev, *curr, t.debug)
		} else {
			det, err = t.detector.Detect(prev, *curr)
		}
		if err != nil {
			return fmt.Errorf("testbed: %s: %w", t.current().Name, err)
		}
		if det != nil {
			t.log.Debug("motion detected", "center", det.Center, "area", det.Area())
		}
	}

	if t.state.Debug() && t.debug != nil {
		t.display.Show(DifferenceWindow, t.debug.Difference)
		t.display.Show(ThresholdWindow, t.debug.Mask)
	} else {
		t.closeDebugWindows()
	}

	overlay.Draw(curr, det)
	return nil
}

func (t *Testbed) closeDebugWindows() {
	t.display.Close(DifferenceWindow)
	t.display.Close(ThresholdWindow)
}

// poll waits one frame interval for a key and applies the resulting command.
func (t *Testbed) poll(ctx context.Context) error {
	cmd := session.CommandForKey(t.display.WaitKey(t.opts.PollInterval))

	switch cmd {
	case session.CmdNone:
		return nil

	case session.CmdMenu:
		session.PrintMenu(t.opts.Menu)
		return nil

	case session.CmdSwitchSource:
		prev := t.current()
		t.release()
		t.display.Close(prev.Name)
		t.apply(cmd)
		t.log.Info("switched to next source (tracker disabled)", "source", t.current().Name)
		return t.open()

	case session.CmdPause:
		t.apply(cmd)
		t.log.Info("video source paused, press 'p' to resume")
		t.pause(ctx)
		return nil

	default:
		t.apply(cmd)
		return nil
	}
}

// pause blocks until the pause key is pressed again. Every other key is
// swallowed and no frames are read.
func (t *Testbed) pause(ctx context.Context) {
	for t.state.Paused() {
		if ctx.Err() != nil {
			t.apply(session.CmdQuit)
			return
		}
		if session.CommandForKey(t.display.WaitKey(pauseInterval)) == session.CmdPause {
			t.apply(session.CmdPause)
			t.log.Info("video source resumed")
		}
	}
}

func (t *Testbed) apply(cmd session.Command) {
	before := t.state
	t.state = t.state.Apply(cmd)

	switch cmd {
	case session.CmdQuit:
		t.log.Info("processing disabled, exiting")
	case session.CmdToggleDebug, session.CmdToggleTracker:
		t.log.Info("tracker toggled", "command", cmd.String(),
			"tracking", t.state.Tracking(), "debug", t.state.Debug())
	}

	if before.Debug() && !t.state.Debug() {
		t.closeDebugWindows()
	}
}

func (t *Testbed) open() error {
	src := t.current()
	c, err := t.opener.Open(src)
	if err != nil {
		return &SourceError{Source: src, Err: err}
	}
	t.capture = c
	t.log.Debug("source opened", "source", src.Name, "kind", src.Kind.String())
	return nil
}

func (t *Testbed) release() {
	if t.capture == nil {
		return
	}
	if err := t.capture.Close(); err != nil {
		t.log.Warn("closing source", "source", t.current().Name, "error", err)
	}
	t.capture = nil
}

// IsSourceError reports whether err is, or wraps, a *SourceError.
func IsSourceError(err error) bool {
	var se *SourceError
	return errors.As(err, &se)
}
