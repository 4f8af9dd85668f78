package viewport

import (
	"math"
	"testing"
)

func TestComputeDrawingAreaPillarbox(t *testing.T) {
	// Camera narrower than the window: full height, centered horizontally.
	// Aspect from hfov 40 / vfov 30 survey metadata.
	aspect := math.Tan(20*math.Pi/180) / math.Tan(15*math.Pi/180)

	area := ComputeDrawingArea(aspect, 1920, 1080)

	if area.Height != 1080 {
		t.Errorf("height = %f, want 1080", area.Height)
	}
	if math.Abs(area.Width-1080*aspect) > 1e-9 {
		t.Errorf("width = %f, want %f", area.Width, 1080*aspect)
	}
	if math.Abs(area.Width-1467.0) > 0.1 {
		t.Errorf("width = %f, want ~1467.0", area.Width)
	}
	if math.Abs(area.X-226.5) > 0.1 {
		t.Errorf("left margin = %f, want ~226.5", area.X)
	}
	if area.Y != 0 {
		t.Errorf("y = %f, want 0", area.Y)
	}

	// Margins are equal on both sides.
	right := 1920 - area.X - area.Width
	if math.Abs(area.X-right) > 1e-9 {
		t.Errorf("margins unequal: left %f, right %f", area.X, right)
	}
}

func TestComputeDrawingAreaLetterbox(t *testing.T) {
	// Camera wider than the window: full width, centered vertically.
	area := ComputeDrawingArea(2.0, 1000, 1000)

	if area.Width != 1000 {
		t.Errorf("width = %f, want 1000", area.Width)
	}
	if area.Height != 500 {
		t.Errorf("height = %f, want 500", area.Height)
	}
	if area.X != 0 {
		t.Errorf("x = %f, want 0", area.X)
	}
	if area.Y != 250 {
		t.Errorf("y = %f, want 250", area.Y)
	}

	bottom := 1000 - area.Y - area.Height
	if math.Abs(area.Y-bottom) > 1e-9 {
		t.Errorf("margins unequal: top %f, bottom %f", area.Y, bottom)
	}
}

func TestComputeDrawingAreaExactFit(t *testing.T) {
	area := ComputeDrawingArea(16.0/9.0, 1600, 900)

	if area.X != 0 || area.Y != 0 {
		t.Errorf("offset = (%f, %f), want (0, 0)", area.X, area.Y)
	}
	if area.Width != 1600 || area.Height != 900 {
		t.Errorf("size = (%f, %f), want (1600, 900)", area.Width, area.Height)
	}
}

func TestComputeDrawingAreaProperties(t *testing.T) {
	aspects := []float64{0.5, 1, 1.3598, 16.0 / 9.0, 3}
	windows := [][2]int{{1920, 1080}, {800, 600}, {1080, 1920}, {640, 640}}

	for _, aspect := range aspects {
		for _, win := range windows {
			area := ComputeDrawingArea(aspect, win[0], win[1])

			// Fully contained in the window.
			if area.X < 0 || area.Y < 0 ||
				area.X+area.Width > float64(win[0])+1e-9 ||
				area.Y+area.Height > float64(win[1])+1e-9 {
				t.Errorf("aspect %f window %v: area %+v escapes window", aspect, win, area)
			}

			// Matches the requested aspect ratio.
			if math.Abs(area.Aspect()-aspect) > 1e-9 {
				t.Errorf("aspect %f window %v: got aspect %f", aspect, win, area.Aspect())
			}
		}
	}
}

func TestInArea(t *testing.T) {
	tests := []struct {
		x, y float64
		want bool
	}{
		{0, 0, true},
		{0.99, -0.99, true},
		{1, 1, true},
		{-1, -1, true},
		{1.5, 0, false},
		{0, -1.01, false},
		{-2, 2, false},
	}

	for _, tt := range tests {
		if got := InArea(tt.x, tt.y); got != tt.want {
			t.Errorf("InArea(%f, %f) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestPointerToNDC(t *testing.T) {
	area := DrawingArea{X: 100, Y: 50, Width: 800, Height: 600}

	// Area center maps to the NDC origin.
	x, y := area.PointerToNDC(500, 350)
	if math.Abs(x) > 1e-12 || math.Abs(y) > 1e-12 {
		t.Errorf("center maps to (%f, %f), want (0, 0)", x, y)
	}

	// Top-left corner of the area is (-1, +1): Y is flipped.
	x, y = area.PointerToNDC(100, 50)
	if math.Abs(x+1) > 1e-12 || math.Abs(y-1) > 1e-12 {
		t.Errorf("top-left maps to (%f, %f), want (-1, 1)", x, y)
	}

	// A point in the left margin falls outside the NDC square.
	x, y = area.PointerToNDC(10, 350)
	if InArea(x, y) {
		t.Errorf("margin point maps to (%f, %f), should be outside", x, y)
	}
}
