package vector

import (
	"testing"

	"github.com/mvgraph/mapvec/internal/raster"
)

func diagonalBitmap(n int) *raster.Bitmap {
	b := raster.NewBitmap(n, n)
	for i := 0; i < n; i++ {
		b.SetBlack(i, i, true)
	}
	return b
}

func TestExtractSingleDiagonalLine(t *testing.T) {
	b := diagonalBitmap(5)
	g := Extract(b)
	if len(g.Lines) != 1 {
		t.Fatalf("expected 1 polyline, got %d", len(g.Lines))
	}
	line := g.Lines[0]
	if len(line.Points) != 5 {
		t.Fatalf("expected 5 points, got %d", len(line.Points))
	}
	if line.Points[0] != (raster.Pixel{Row: 0, Col: 0}) {
		t.Errorf("unexpected start point %+v", line.Points[0])
	}
	if line.Points[len(line.Points)-1] != (raster.Pixel{Row: 4, Col: 4}) {
		t.Errorf("unexpected end point %+v", line.Points[len(line.Points)-1])
	}
}

func TestDouglasPeuckerCollapsesStraightLine(t *testing.T) {
	pts := []raster.Pixel{{0, 0}, {1, 1}, {2, 2}, {3, 3}, {4, 4}}
	out := DouglasPeucker(pts, 0.5)
	if len(out) != 2 {
		t.Fatalf("expected collinear points to collapse to 2, got %d: %v", len(out), out)
	}
	if out[0] != pts[0] || out[1] != pts[len(pts)-1] {
		t.Errorf("endpoints not preserved: %v", out)
	}
}

func TestDouglasPeuckerKeepsCorner(t *testing.T) {
	pts := []raster.Pixel{{0, 0}, {0, 5}, {0, 10}, {5, 10}, {10, 10}}
	out := DouglasPeucker(pts, 0.5)
	if len(out) < 3 {
		t.Fatalf("expected the corner at (0,10) to survive simplification, got %v", out)
	}
}

func TestFuseKeepsEndpointInvariants(t *testing.T) {
	// Two diagonal runs meeting at a "kink" at (2,2). The Moore walk
	// follows the direction change, so extraction yields a single line
	// from (0,0) to (4,0) here.
	b := raster.NewBitmap(6, 6)
	for i := 0; i < 3; i++ {
		b.SetBlack(i, i, true)
	}
	for i := 0; i < 3; i++ {
		b.SetBlack(2+i, 2-i, true)
	}
	g := Extract(b)
	Fuse(g)
	// Regardless of how many lines extraction produced, fusion should not
	// panic and every line's Points[0]/Points[last] must still match its
	// Start/End node coordinate.
	for _, line := range g.Lines {
		if line.Points[0] != g.Nodes[line.Start].Coord {
			t.Errorf("line %d start/points[0] mismatch", line.ID)
		}
		if line.Points[len(line.Points)-1] != g.Nodes[line.End].Coord {
			t.Errorf("line %d end/points[last] mismatch", line.ID)
		}
	}
}

func TestSegmentStrokeWidthSamplesBothEndpoints(t *testing.T) {
	// The stroke is 1 pixel wide at the start (cols 0..2) and 3 pixels wide
	// at the end (cols 3..6): the start window gives 2/2 = 1, the end window
	// gives 6/2 = 3, so only sampling both endpoints yields their mean, 2.
	pre := raster.NewBitmap(7, 7)
	for col := 0; col < 3; col++ {
		pre.SetBlack(3, col, true)
	}
	for row := 2; row <= 4; row++ {
		for col := 3; col < 7; col++ {
			pre.SetBlack(row, col, true)
		}
	}
	thin := raster.NewBitmap(7, 7)
	for col := 0; col < 7; col++ {
		thin.SetBlack(3, col, true)
	}
	w := SegmentStrokeWidth(pre, thin, raster.Pixel{Row: 3, Col: 0}, raster.Pixel{Row: 3, Col: 6}, 1)
	if w < 1.5 || w > 2.5 {
		t.Errorf("expected stroke width near 2 (mean of 1 and 3), got %v", w)
	}
}
