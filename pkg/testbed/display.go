package testbed

import (
	"time"

	"gocv.io/x/gocv"

	"github.com/teslashibe/go-trackbed/internal/log"
)

// Display shows frames in named windows and polls the keyboard.
type Display interface {
	// Show draws img in the named window, creating it if needed.
	Show(name string, img gocv.Mat)

	// Close destroys the named window. Closing an unknown window is a no-op.
	Close(name string)

	// WaitKey waits up to delay for a key press and returns its code, or -1.
	WaitKey(delay time.Duration) int

	// CloseAll destroys every window.
	CloseAll()
}

// WindowDisplay is a Display backed by OpenCV highgui windows.
type WindowDisplay struct {
	windows map[string]*gocv.Window
	last    string
	warned  bool
}

// NewWindowDisplay creates a display with no open windows.
func NewWindowDisplay() *WindowDisplay {
	return &WindowDisplay{windows: make(map[string]*gocv.Window)}
}

// Show draws img in the named window.
func (d *WindowDisplay) Show(name string, img gocv.Mat) {
	w, ok := d.windows[name]
	if !ok {
		w = gocv.NewWindow(name)
		d.windows[name] = w
	}
	w.IMShow(img)
	d.last = name
}

// Close destroys the named window if it is open.
func (d *WindowDisplay) Close(name string) {
	w, ok := d.windows[name]
	if !ok {
		return
	}
	w.Close()
	delete(d.windows, name)
	if d.last == name {
		d.last = ""
	}
}

// WaitKey polls highgui for a key. highgui only delivers keys to an open
// window, so without one it warns once and sleeps for delay.
func (d *WindowDisplay) WaitKey(delay time.Duration) int {
	w := d.windows[d.last]
	if w == nil {
		for _, open := range d.windows {
			w = open
			break
		}
	}
	if w == nil {
		if !d.warned {
			log.Warn("no window open, key presses cannot be received")
			d.warned = true
		}
		time.Sleep(delay)
		return -1
	}

	ms := int(delay / time.Millisecond)
	if ms < 1 {
		ms = 1
	}
	return w.WaitKey(ms)
}

// CloseAll destroys every window.
func (d *WindowDisplay) CloseAll() {
	for name := range d.windows {
		d.Close(name)
	}
}
