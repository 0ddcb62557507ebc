package motion

import (
	"image"
	"testing"
)

func TestNewDetection_Center(t *testing.T) {
	tests := []struct {
		name   string
		rect   image.Rectangle
		expect image.Point
	}{
		{
			name:   "even size",
			rect:   image.Rect(10, 20, 30, 60),
			expect: image.Pt(20, 40),
		},
		{
			name:   "odd size rounds down",
			rect:   image.Rect(0, 0, 5, 7),
			expect: image.Pt(2, 3),
		},
		{
			name:   "single pixel",
			rect:   image.Rect(4, 4, 5, 5),
			expect: image.Pt(4, 4),
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			det := NewDetection(tc.rect)
			if det.Center != tc.expect {
				t.Errorf("Center: got %v, want %v", det.Center, tc.expect)
			}
			if det.Rect != tc.rect {
				t.Errorf("Rect: got %v, want %v", det.Rect, tc.rect)
			}
		})
	}
}

func TestDetection_Area(t *testing.T) {
	det := NewDetection(image.Rect(0, 0, 10, 4))
	if det.Area() != 40 {
		t.Errorf("Area: got %d, want 40", det.Area())
	}
}

func TestSelectContour(t *testing.T) {
	tests := []struct {
		name   string
		areas  []float64
		sel    Selection
		expect int
	}{
		{name: "none largest", areas: nil, sel: SelectLargest, expect: -1},
		{name: "none last", areas: []float64{}, sel: SelectLast, expect: -1},
		{name: "single", areas: []float64{12}, sel: SelectLargest, expect: 0},
		{name: "largest first", areas: []float64{90, 10, 40}, sel: SelectLargest, expect: 0},
		{name: "largest middle", areas: []float64{10, 90, 40}, sel: SelectLargest, expect: 1},
		{name: "tie goes to later", areas: []float64{50, 10, 50}, sel: SelectLargest, expect: 2},
		{name: "last ignores size", areas: []float64{90, 10, 40}, sel: SelectLast, expect: 2},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := selectContour(tc.areas, tc.sel); got != tc.expect {
				t.Errorf("selectContour: got %d, want %d", got, tc.expect)
			}
		})
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Sensitivity != 20 {
		t.Errorf("Expected Sensitivity=20, got %d", cfg.Sensitivity)
	}
	if cfg.BlurSize != 10 {
		t.Errorf("Expected BlurSize=10, got %d", cfg.BlurSize)
	}
	if cfg.Selection != SelectLargest {
		t.Errorf("Expected Selection=%q, got %q", SelectLargest, cfg.Selection)
	}
	if errs := cfg.Validate(); len(errs) != 0 {
		t.Errorf("DefaultConfig should be valid, got %v", errs)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		errs   int
	}{
		{name: "negative sensitivity", mutate: func(c *Config) { c.Sensitivity = -1 }, errs: 1},
		{name: "sensitivity too high", mutate: func(c *Config) { c.Sensitivity = 255 }, errs: 1},
		{name: "zero blur", mutate: func(c *Config) { c.BlurSize = 0 }, errs: 1},
		{name: "unknown selection", mutate: func(c *Config) { c.Selection = "biggest" }, errs: 1},
		{name: "everything wrong", mutate: func(c *Config) {
			c.Sensitivity, c.BlurSize, c.Selection = 300, -2, ""
		}, errs: 3},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(&cfg)
			if errs := cfg.Validate(); len(errs) != tc.errs {
				t.Errorf("Validate: got %d errors (%v), want %d", len(errs), errs, tc.errs)
			}
		})
	}
}
