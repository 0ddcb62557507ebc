package testbed

import (
	"errors"
	"image"
	"image/color"
	"time"

	"gocv.io/x/gocv"

	"github.com/teslashibe/go-trackbed/pkg/source"
)

const (
	fakeW = 80
	fakeH = 60
)

// movingFrame draws a bright square whose position depends on i.
func movingFrame(i int) gocv.Mat {
	m := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(0, 0, 0, 0), fakeH, fakeW, gocv.MatTypeCV8UC3)
	x := 5 + (i%3)*20
	gocv.Rectangle(&m, image.Rect(x, 20, x+20, 40), color.RGBA{255, 255, 255, 0}, -1)
	return m
}

type fakeCapture struct {
	frames int // -1 for a live source that never ends
	read   int
	closed bool
}

func (c *fakeCapture) Read(m *gocv.Mat) bool {
	if c.frames >= 0 && c.read >= c.frames {
		return false
	}
	f := movingFrame(c.read)
	defer f.Close()
	f.CopyTo(m)
	c.read++
	return true
}

func (c *fakeCapture) Progress() float64 {
	if c.frames <= 0 {
		return 0
	}
	return float64(c.read) / float64(c.frames)
}

func (c *fakeCapture) Close() error {
	c.closed = true
	return nil
}

type fakeOpener struct {
	frames   map[string]int // source name -> frame count; the camera defaults to endless
	fail     map[string]bool
	opens    []string
	captures []*fakeCapture
}

func newFakeOpener() *fakeOpener {
	return &fakeOpener{frames: map[string]int{}, fail: map[string]bool{}}
}

func (o *fakeOpener) Open(src source.Source) (source.Capture, error) {
	o.opens = append(o.opens, src.Name)
	if o.fail[src.Name] {
		return nil, errors.New("no such device")
	}

	frames := -1
	if n, ok := o.frames[src.Name]; ok || src.Kind == source.File {
		frames = n
	}
	c := &fakeCapture{frames: frames}
	o.captures = append(o.captures, c)
	return c, nil
}

func (o *fakeOpener) count(name string) int {
	n := 0
	for _, s := range o.opens {
		if s == name {
			n++
		}
	}
	return n
}

// fakeDisplay replays scripted keys and records window activity.
// Once the script runs out it answers esc so a run always terminates.
type fakeDisplay struct {
	keys   []int
	waits  []time.Duration
	shown  map[string]int
	closed map[string]int
	open   map[string]bool
	frames map[string]gocv.Mat
}

func newFakeDisplay(keys ...int) *fakeDisplay {
	return &fakeDisplay{
		keys:   keys,
		shown:  map[string]int{},
		closed: map[string]int{},
		open:   map[string]bool{},
		frames: map[string]gocv.Mat{},
	}
}

func (d *fakeDisplay) Show(name string, img gocv.Mat) {
	d.shown[name]++
	d.open[name] = true
	if old, ok := d.frames[name]; ok {
		old.Close()
	}
	d.frames[name] = img.Clone()
}

func (d *fakeDisplay) Close(name string) {
	if d.open[name] {
		d.closed[name]++
	}
	delete(d.open, name)
}

func (d *fakeDisplay) WaitKey(delay time.Duration) int {
	d.waits = append(d.waits, delay)
	if len(d.keys) == 0 {
		return 27
	}
	k := d.keys[0]
	d.keys = d.keys[1:]
	return k
}

func (d *fakeDisplay) CloseAll() {
	for name := range d.open {
		d.Close(name)
	}
}

func (d *fakeDisplay) release() {
	for _, m := range d.frames {
		m.Close()
	}
}
