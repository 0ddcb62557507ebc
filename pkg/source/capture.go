package source

import (
	"fmt"

	"gocv.io/x/gocv"
)

// Capture is an open video source.
type Capture interface {
	// Read fills m with the next frame. It returns false when no frame is available.
	Read(m *gocv.Mat) bool

	// Progress returns the relative playback position (0-1).
	// Live sources report 0.
	Progress() float64

	// Close releases the source.
	Close() error
}

// Opener opens sources from the list.
type Opener interface {
	Open(src Source) (Capture, error)
}

// GocvOpener opens sources with OpenCV's VideoCapture.
type GocvOpener struct {
	Camera CameraConfig
}

// NewGocvOpener creates an opener that applies cam to the camera device.
func NewGocvOpener(cam CameraConfig) *GocvOpener {
	return &GocvOpener{Camera: cam}
}

// Open opens the camera device or the video file behind src.
func (o *GocvOpener) Open(src Source) (Capture, error) {
	var (
		vc  *gocv.VideoCapture
		err error
	)

	switch src.Kind {
	case Camera:
		vc, err = gocv.VideoCaptureDevice(o.Camera.Device)
	default:
		vc, err = gocv.VideoCaptureFile(src.Name)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s %q: %w", src.Kind, src.Name, err)
	}
	if !vc.IsOpened() {
		vc.Close()
		return nil, fmt.Errorf("open %s %q: not opened", src.Kind, src.Name)
	}

	if src.Kind == Camera {
		o.Camera.apply(vc)
	}

	return &videoCapture{vc: vc, live: src.Kind == Camera}, nil
}

// videoCapture adapts gocv.VideoCapture to Capture.
type videoCapture struct {
	vc   *gocv.VideoCapture
	live bool
}

func (c *videoCapture) Read(m *gocv.Mat) bool {
	return c.vc.Read(m)
}

func (c *videoCapture) Progress() float64 {
	if c.live {
		return 0
	}
	return c.vc.Get(gocv.VideoCapturePosAVIRatio)
}

func (c *videoCapture) Close() error {
	return c.vc.Close()
}
