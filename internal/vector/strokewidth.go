package vector

import "github.com/mvgraph/mapvec/internal/raster"

// blackCountInWindow counts black pixels in the (2*radius+1) square
// centered on p, clipped to the bitmap bounds.
func blackCountInWindow(bin *raster.Bitmap, p raster.Pixel, radius int) int {
	count := 0
	for row := p.Row - radius; row <= p.Row+radius; row++ {
		for col := p.Col - radius; col <= p.Col+radius; col++ {
			if bin.IsBlack(row, col) {
				count++
			}
		}
	}
	return count
}

// localWidth estimates stroke width at p as the ratio of black pixels in
// the pre-thinning window to black pixels in the thinned window: a wide
// stroke collapses to a thin skeleton, so the ratio approximates how many
// pixels wide the original stroke was at that point.
func localWidth(pre, thinned *raster.Bitmap, p raster.Pixel, radius int) float64 {
	thinCount := blackCountInWindow(thinned, p, radius)
	if thinCount == 0 {
		thinCount = 1
	}
	preCount := blackCountInWindow(pre, p, radius)
	return float64(preCount) / float64(thinCount)
}

// SegmentStrokeWidth estimates a segment's stroke width by sampling the
// pre-thinning/thinned ratio at both of its distinct endpoints and
// averaging. The reference implementation (localLineWidth) samples the
// same "start" endpoint twice and never looks at "end"; that is a bug, not
// an intended width-at-midpoint shortcut, so here both endpoints are
// sampled.
func SegmentStrokeWidth(pre, thinned *raster.Bitmap, start, end raster.Pixel, radius int) float64 {
	a := localWidth(pre, thinned, start, radius)
	if start == end {
		return a
	}
	b := localWidth(pre, thinned, end, radius)
	return (a + b) / 2
}
