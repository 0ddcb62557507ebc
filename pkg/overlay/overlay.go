// Package overlay draws motion detections onto displayed frames.
package overlay

import (
	"fmt"
	"image"
	"image/color"

	"gocv.io/x/gocv"

	"github.com/teslashibe/go-trackbed/pkg/motion"
)

// Colors are RGBA; gocv converts them to BGR scalars.
var (
	boxColor   = color.RGBA{0, 255, 0, 0}
	textColor  = color.RGBA{0, 0, 255, 0}
	alertColor = color.RGBA{255, 0, 0, 0}
)

const (
	placeholderW = 320
	placeholderH = 240
	crosshairArm = 3
	fontScale    = 1.0
	fontWeight   = 2
)

// TextOrigin is where the status label is drawn.
var TextOrigin = image.Pt(20, 20)

// LostLabel is drawn when no detection is available.
const LostLabel = "Track Lost"

// Label returns the status text for det.
func Label(det *motion.Detection) string {
	if det == nil {
		return LostLabel
	}
	return fmt.Sprintf("Tracking object at (%d,%d)", det.Center.X, det.Center.Y)
}

// Draw renders det onto img: bounding box, crosshair and position text,
// or the lost label when det is nil.
func Draw(img *gocv.Mat, det *motion.Detection) {
	if det == nil {
		gocv.PutText(img, LostLabel, TextOrigin, gocv.FontHersheyPlain, fontScale, alertColor, fontWeight)
		return
	}

	gocv.Rectangle(img, det.Rect, boxColor, 1)
	drawCrosshair(img, det.Center)
	gocv.PutText(img, Label(det), TextOrigin, gocv.FontHersheyPlain, fontScale, textColor, fontWeight)
}

func drawCrosshair(img *gocv.Mat, c image.Point) {
	gocv.Line(img, c, image.Pt(c.X, c.Y-crosshairArm), boxColor, 2)
	gocv.Line(img, c, image.Pt(c.X, c.Y+crosshairArm), boxColor, 2)
	gocv.Line(img, c, image.Pt(c.X-crosshairArm, c.Y), boxColor, 2)
	gocv.Line(img, c, image.Pt(c.X+crosshairArm, c.Y), boxColor, 2)
}

// Placeholder returns a black frame labelled with msg, for sources that have
// nothing to show yet. The caller owns the returned Mat.
func Placeholder(msg string) gocv.Mat {
	img := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(0, 0, 0, 0), placeholderH, placeholderW, gocv.MatTypeCV8UC3)
	gocv.PutText(&img, msg, TextOrigin, gocv.FontHersheyPlain, fontScale, alertColor, fontWeight)
	return img
}
