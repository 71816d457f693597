package raster

import (
	"fmt"

	"github.com/mvgraph/mapvec/internal/errs"
)

// AdaptiveBlackLayer thresholds a color raster using a local mean rather
// than BlackLayer's fixed per-channel cutoff: a pixel is black when its
// luminance falls more than offset below the mean luminance of its
// windowSize x windowSize neighbourhood. A scanned map photographed under
// uneven lighting can have one corner brighter than another; a fixed
// threshold either clips the dark corner to pure black or loses the bright
// corner's ink, while a local mean tracks the drift.
//
// Local means are computed from a summed-area (integral) image so the cost
// stays O(width*height) regardless of window size, the same technique used
// for local-mean thresholding over NRGBA images.
func AdaptiveBlackLayer(src *ColorBitmap, windowSize int, offset float64) (*Bitmap, error) {
	if src == nil {
		return nil, fmt.Errorf("%w: nil color bitmap", errs.ErrInputNotFound)
	}
	if windowSize < 1 {
		windowSize = 15
	}
	w, h := src.Width, src.Height

	lum := make([]float64, w*h)
	for row := 0; row < h; row++ {
		for col := 0; col < w; col++ {
			b, g, r := src.At(row, col)
			lum[row*w+col] = 0.2126*float64(r) + 0.7152*float64(g) + 0.0722*float64(b)
		}
	}

	integral := make([]float64, (w+1)*(h+1))
	for row := 1; row <= h; row++ {
		rowSum := 0.0
		for col := 1; col <= w; col++ {
			rowSum += lum[(row-1)*w+(col-1)]
			integral[row*(w+1)+col] = integral[(row-1)*(w+1)+col] + rowSum
		}
	}
	areaSum := func(row0, col0, row1, col1 int) float64 {
		sy, sx := row0+1, col0+1
		ey, ex := row1+1, col1+1
		return integral[ey*(w+1)+ex] - integral[(sy-1)*(w+1)+ex] - integral[ey*(w+1)+(sx-1)] + integral[(sy-1)*(w+1)+(sx-1)]
	}

	half := windowSize / 2
	out := NewBitmap(w, h)
	for row := 0; row < h; row++ {
		row0 := ClampInt(row-half, 0, h-1)
		row1 := ClampInt(row+half, 0, h-1)
		for col := 0; col < w; col++ {
			col0 := ClampInt(col-half, 0, w-1)
			col1 := ClampInt(col+half, 0, w-1)
			area := float64((row1 - row0 + 1) * (col1 - col0 + 1))
			mean := areaSum(row0, col0, row1, col1) / area
			if lum[row*w+col] <= mean-offset {
				out.SetBlack(row, col, true)
			}
		}
	}
	return out, nil
}
