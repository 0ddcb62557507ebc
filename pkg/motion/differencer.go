package motion

import (
	"errors"
	"fmt"
	"image"

	"gocv.io/x/gocv"
)

// Frame precondition errors.
var (
	// ErrEmptyFrame is returned when either frame has no pixels.
	ErrEmptyFrame = errors.New("motion: empty frame")

	// ErrSizeMismatch is returned when the frames differ in dimensions.
	ErrSizeMismatch = errors.New("motion: frame size mismatch")

	// ErrUnsupportedFrame is returned for anything but 8-bit gray, BGR and BGRA.
	ErrUnsupportedFrame = errors.New("motion: unsupported frame format")
)

// Intermediates receives the images produced along the way.
// The caller owns the Mats and must Close them.
type Intermediates struct {
	Difference gocv.Mat // Absolute gray-level difference
	Mask       gocv.Mat // Final binary mask that contours are taken from
}

// NewIntermediates allocates empty intermediate images.
func NewIntermediates() *Intermediates {
	return &Intermediates{
		Difference: gocv.NewMat(),
		Mask:       gocv.NewMat(),
	}
}

// Close releases the intermediate images.
func (i *Intermediates) Close() error {
	i.Difference.Close()
	i.Mask.Close()
	return nil
}

// Differencer detects motion between two frames by thresholded absolute difference.
// It holds no per-frame state, so calls with the same frames give the same result.
type Differencer struct {
	config Config
}

// NewDifferencer creates a differencer after validating cfg.
func NewDifferencer(cfg Config) (*Differencer, error) {
	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, fmt.Errorf("motion: invalid config: %v", errs)
	}
	return &Differencer{config: cfg}, nil
}

// Config returns the tuning in use.
func (d *Differencer) Config() Config {
	return d.config
}

// Detect returns the selected motion region between prev and curr,
// or nil when nothing moved.
func (d *Differencer) Detect(prev, curr gocv.Mat) (*Detection, error) {
	return d.detect(prev, curr, nil)
}

// DetectDebug is Detect that also copies the difference image and final mask into dbg.
func (d *Differencer) DetectDebug(prev, curr gocv.Mat, dbg *Intermediates) (*Detection, error) {
	return d.detect(prev, curr, dbg)
}

func (d *Differencer) detect(prev, curr gocv.Mat, dbg *Intermediates) (*Detection, error) {
	if err := checkFrames(prev, curr); err != nil {
		return nil, err
	}

	grayPrev := gocv.NewMat()
	defer grayPrev.Close()
	grayCurr := gocv.NewMat()
	defer grayCurr.Close()

	if err := toGray(prev, &grayPrev); err != nil {
		return nil, fmt.Errorf("motion: gray previous: %w", err)
	}
	if err := toGray(curr, &grayCurr); err != nil {
		return nil, fmt.Errorf("motion: gray current: %w", err)
	}

	diff := gocv.NewMat()
	defer diff.Close()
	if err := gocv.AbsDiff(grayPrev, grayCurr, &diff); err != nil {
		return nil, fmt.Errorf("motion: absdiff: %w", err)
	}

	thresh := float32(d.config.Sensitivity)
	mask := gocv.NewMat()
	defer mask.Close()

	// Blur merges nearby fragments and drops isolated pixels; the second
	// threshold turns the blurred mask back into a binary one.
	gocv.Threshold(diff, &mask, thresh, 255, gocv.ThresholdBinary)
	if err := gocv.Blur(mask, &mask, image.Pt(d.config.BlurSize, d.config.BlurSize)); err != nil {
		return nil, fmt.Errorf("motion: blur: %w", err)
	}
	gocv.Threshold(mask, &mask, thresh, 255, gocv.ThresholdBinary)

	// FindContours only accepts a non-empty 8-bit single-channel mask.
	if mask.Empty() || mask.Type() != gocv.MatTypeCV8UC1 {
		return nil, fmt.Errorf("motion: mask: unexpected type %v", mask.Type())
	}

	if dbg != nil {
		if err := diff.CopyTo(&dbg.Difference); err != nil {
			return nil, fmt.Errorf("motion: copy difference: %w", err)
		}
		if err := mask.CopyTo(&dbg.Mask); err != nil {
			return nil, fmt.Errorf("motion: copy mask: %w", err)
		}
	}

	contours := gocv.FindContours(mask, gocv.RetrievalExternal, gocv.ChainApproxSimple)
	defer contours.Close()

	areas := make([]float64, contours.Size())
	for i := range areas {
		areas[i] = gocv.ContourArea(contours.At(i))
	}

	idx := selectContour(areas, d.config.Selection)
	if idx < 0 {
		return nil, nil
	}

	det := NewDetection(gocv.BoundingRect(contours.At(idx)))
	return &det, nil
}

func checkFrames(prev, curr gocv.Mat) error {
	if prev.Empty() || curr.Empty() {
		return ErrEmptyFrame
	}
	if prev.Rows() != curr.Rows() || prev.Cols() != curr.Cols() {
		return fmt.Errorf("%w: %dx%d vs %dx%d", ErrSizeMismatch,
			prev.Cols(), prev.Rows(), curr.Cols(), curr.Rows())
	}
	for _, m := range []gocv.Mat{prev, curr} {
		switch m.Type() {
		case gocv.MatTypeCV8UC1, gocv.MatTypeCV8UC3, gocv.MatTypeCV8UC4:
		default:
			return fmt.Errorf("%w: type %v (%d channels), want 8-bit gray, BGR or BGRA",
				ErrUnsupportedFrame, m.Type(), m.Channels())
		}
	}
	return nil
}

// toGray converts src to a single-channel image in dst.
func toGray(src gocv.Mat, dst *gocv.Mat) error {
	switch src.Channels() {
	case 1:
		return src.CopyTo(dst)
	case 4:
		return gocv.CvtColor(src, dst, gocv.ColorBGRAToGray)
	default:
		return gocv.CvtColor(src, dst, gocv.ColorBGRToGray)
	}
}
