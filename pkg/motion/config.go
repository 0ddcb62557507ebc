package motion

import "fmt"

// Default tuning values.
const (
	DefaultSensitivity = 20 // Difference above this counts as motion (0-255)
	DefaultBlurSize    = 10 // Box blur kernel edge in pixels
)

// Config holds differencer tuning.
type Config struct {
	Sensitivity int       `yaml:"sensitivity"`
	BlurSize    int       `yaml:"blur_size"`
	Selection   Selection `yaml:"selection"`
}

// DefaultConfig returns the stock tuning
func DefaultConfig() Config {
	return Config{
		Sensitivity: DefaultSensitivity,
		BlurSize:    DefaultBlurSize,
		Selection:   SelectLargest,
	}
}

// Validate checks if the config values are within valid ranges.
// Returns a list of validation errors, or nil if valid.
func (c *Config) Validate() []string {
	var errors []string

	if c.Sensitivity < 0 || c.Sensitivity > 254 {
		errors = append(errors, "sensitivity must be between 0 and 254")
	}
	if c.BlurSize < 1 || c.BlurSize > 255 {
		errors = append(errors, "blur_size must be between 1 and 255")
	}
	if !c.Selection.Valid() {
		errors = append(errors, fmt.Sprintf("selection must be %q or %q", SelectLargest, SelectLast))
	}

	return errors
}
