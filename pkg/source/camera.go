package source

import "gocv.io/x/gocv"

// Camera presets selectable by name.
const (
	PresetDefault = "default"
	PresetLegacy  = "legacy"
)

// CameraConfig holds the capture settings requested from the camera device.
// Zero values leave the driver default in place.
type CameraConfig struct {
	// Preset names a base configuration ("default" or "legacy").
	// Explicit fields below override it.
	Preset string `yaml:"preset"`

	Device    int `yaml:"device"`    // Device index passed to VideoCaptureDevice
	Width     int `yaml:"width"`     // Frame width in pixels
	Height    int `yaml:"height"`    // Frame height in pixels
	Framerate int `yaml:"framerate"` // Target FPS
}

// Upper bounds accepted for capture requests.
const (
	MaxWidth     = 4096
	MaxHeight    = 2160
	MaxFramerate = 120
)

// DefaultCameraConfig returns the first device at driver defaults.
func DefaultCameraConfig() CameraConfig {
	return CameraConfig{
		Device:    0,
		Width:     0, // Driver default
		Height:    0, // Driver default
		Framerate: 0, // Driver default
	}
}

// LegacyCameraConfig requests 640x480 at 30 FPS.
func LegacyCameraConfig() CameraConfig {
	cfg := DefaultCameraConfig()
	cfg.Preset = PresetLegacy
	cfg.Width = 640
	cfg.Height = 480
	cfg.Framerate = 30
	return cfg
}

// Resolve fills the fields left at zero from the named preset.
func (c CameraConfig) Resolve() CameraConfig {
	if c.Preset != PresetLegacy {
		return c
	}
	base := LegacyCameraConfig()
	if c.Width == 0 {
		c.Width = base.Width
	}
	if c.Height == 0 {
		c.Height = base.Height
	}
	if c.Framerate == 0 {
		c.Framerate = base.Framerate
	}
	return c
}

// Validate checks if the config values are within valid ranges.
// Returns a list of validation errors, or nil if valid.
func (c *CameraConfig) Validate() []string {
	var errors []string

	switch c.Preset {
	case "", PresetDefault, PresetLegacy:
	default:
		errors = append(errors, "preset must be default or legacy")
	}
	if c.Device < 0 {
		errors = append(errors, "device must not be negative")
	}
	if c.Width != 0 && (c.Width < 160 || c.Width > MaxWidth) {
		errors = append(errors, "width must be 0 (default) or between 160 and 4096")
	}
	if c.Height != 0 && (c.Height < 120 || c.Height > MaxHeight) {
		errors = append(errors, "height must be 0 (default) or between 120 and 2160")
	}
	if c.Framerate != 0 && (c.Framerate < 1 || c.Framerate > MaxFramerate) {
		errors = append(errors, "framerate must be 0 (default) or between 1 and 120")
	}

	return errors
}

// apply pushes the non-zero settings to vc.
func (c CameraConfig) apply(vc *gocv.VideoCapture) {
	if c.Width > 0 {
		vc.Set(gocv.VideoCaptureFrameWidth, float64(c.Width))
	}
	if c.Height > 0 {
		vc.Set(gocv.VideoCaptureFrameHeight, float64(c.Height))
	}
	if c.Framerate > 0 {
		vc.Set(gocv.VideoCaptureFPS, float64(c.Framerate))
	}
}
