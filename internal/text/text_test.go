package text

import (
	"testing"

	"github.com/mvgraph/mapvec/internal/components"
	"github.com/mvgraph/mapvec/internal/raster"
)

func TestDetectLinesFindsHorizontalRow(t *testing.T) {
	// Five centroids on the row y=10, spaced along x: a textbook
	// horizontal line, theta=pi/2, rho=10.
	var centroids [][2]float64
	for x := 0; x < 50; x += 10 {
		centroids = append(centroids, [2]float64{float64(x), 10})
	}
	lines := DetectLines(centroids, 60, 60, DefaultHoughParams())
	if len(lines) == 0 {
		t.Fatalf("expected at least one detected line")
	}
	found := false
	for _, l := range lines {
		// theta near pi/2 (horizontal line normal points straight down)
		if abs(l.Theta-1.5708) < 0.1 && abs(l.Rho-10) < 1.5 {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a line near theta=pi/2, rho=10 among %v", lines)
	}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func TestWordGroupsSplitsOnAreaJump(t *testing.T) {
	mk := func(area int) components.ConnectedComponent { return components.ConnectedComponent{Area: area} }
	sorted := []components.ConnectedComponent{mk(10), mk(12), mk(11), mk(200), mk(9), mk(10)}
	groups := WordGroups(sorted, 0.5)
	if len(groups) < 2 {
		t.Fatalf("expected a boundary around the area=200 outlier, got groups %v", groups)
	}
}

func TestFloodEraseClearsRegion(t *testing.T) {
	b := raster.NewBitmap(5, 5)
	for r := 1; r <= 3; r++ {
		for c := 1; c <= 3; c++ {
			b.SetBlack(r, c, true)
		}
	}
	n := FloodErase(b, raster.Pixel{Row: 2, Col: 2})
	if n != 9 {
		t.Errorf("expected 9 pixels erased, got %d", n)
	}
	for r := 1; r <= 3; r++ {
		for c := 1; c <= 3; c++ {
			if b.IsBlack(r, c) {
				t.Errorf("pixel (%d,%d) should have been erased", r, c)
			}
		}
	}
}
