package vector

import (
	"math"

	"github.com/mvgraph/mapvec/internal/raster"
)

// Refine runs Douglas-Peucker simplification independently over every
// fused line's point sequence and returns the simplified polylines in
// Lines order (the order each line was first discovered during
// extraction), which keeps SVG emission deterministic.
func Refine(g *Graph, epsilon float64) [][]raster.Pixel {
	out := make([][]raster.Pixel, len(g.Lines))
	for i, line := range g.Lines {
		out[i] = DouglasPeucker(line.Points, epsilon)
	}
	return out
}

// DouglasPeucker recursively keeps only the points needed to approximate
// the input polyline within epsilon: it finds the vertex farthest from the
// chord between the first and last point, keeps it (and recurses on both
// halves) if that distance exceeds epsilon, and otherwise collapses the
// whole run down to its two endpoints.
func DouglasPeucker(points []raster.Pixel, epsilon float64) []raster.Pixel {
	if len(points) < 3 {
		out := make([]raster.Pixel, len(points))
		copy(out, points)
		return out
	}

	first, last := points[0], points[len(points)-1]
	maxDist := -1.0
	maxIdx := -1
	for i := 1; i < len(points)-1; i++ {
		d := perpendicularDistance(points[i], first, last)
		if d > maxDist {
			maxDist = d
			maxIdx = i
		}
	}

	if maxDist <= epsilon {
		return []raster.Pixel{first, last}
	}

	left := DouglasPeucker(points[:maxIdx+1], epsilon)
	right := DouglasPeucker(points[maxIdx:], epsilon)
	// left's last point == right's first point (both are points[maxIdx]);
	// drop the duplicate when joining.
	return append(left[:len(left)-1:len(left)-1], right...)
}

func perpendicularDistance(p, a, b raster.Pixel) float64 {
	if a == b {
		return hypot(float64(p.Row-a.Row), float64(p.Col-a.Col))
	}
	dx := float64(b.Col - a.Col)
	dy := float64(b.Row - a.Row)
	num := abs(dy*float64(p.Col-a.Col) - dx*float64(p.Row-a.Row))
	den := hypot(dx, dy)
	return num / den
}

func hypot(x, y float64) float64 {
	return math.Hypot(x, y)
}

func abs(v float64) float64 {
	return math.Abs(v)
}
