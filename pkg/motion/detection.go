// Package motion finds moving regions by differencing sequential frames
package motion

import "image"

// Detection is the motion region picked from one frame pair.
// It carries no identity across frames.
type Detection struct {
	Rect   image.Rectangle // Bounding box in pixels
	Center image.Point     // Center of Rect, integer division
}

// NewDetection builds a detection from a bounding box.
func NewDetection(r image.Rectangle) Detection {
	return Detection{
		Rect:   r,
		Center: image.Pt(r.Min.X+r.Dx()/2, r.Min.Y+r.Dy()/2),
	}
}

// Area returns the area of the bounding box
func (d Detection) Area() int {
	return d.Rect.Dx() * d.Rect.Dy()
}

// Selection decides which contour becomes the detection when several are found.
type Selection string

const (
	// SelectLargest picks the contour with the largest area.
	// Ties go to the contour found later.
	SelectLargest Selection = "largest"

	// SelectLast picks the last contour in extraction order,
	// whatever its size.
	SelectLast Selection = "last"
)

// Valid reports whether s is a known policy.
func (s Selection) Valid() bool {
	return s == SelectLargest || s == SelectLast
}

// selectContour returns the index of the chosen contour given their areas,
// or -1 when there are none.
func selectContour(areas []float64, sel Selection) int {
	if len(areas) == 0 {
		return -1
	}

	if sel == SelectLast {
		return len(areas) - 1
	}

	best := 0
	for i := 1; i < len(areas); i++ {
		if areas[i] >= areas[best] {
			best = i
		}
	}
	return best
}
