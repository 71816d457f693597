// Package colorpoly implements the optional colour-polygon recovery stage
// (reference: recoverTopology). It is disabled by default and, when
// disabled, the rest of the pipeline runs exactly as if the package did
// not exist — svgwriter simply never receives any polygons to fill.
//
// Stage order follows the reference implementation precisely: erode the
// color raster, mask out near-black ink, smooth what remains with two
// passes of a mean-shift-like color quantization, convert to HSV and take
// the saturation channel (the reference mislabels this "hueChannel" even
// though it indexes the second HSV channel, which is saturation; Canny
// really does run on saturation, not hue), find edges on that channel, and
// group same-colored non-edge regions into filled polygons with their
// mean source color.
//
// No Go binding for OpenCV's mean-shift filter or Canny appears anywhere
// in the reference corpus, so both are reimplemented from scratch here: a
// bucketed local-average smoothing pass stands in for mean-shift
// filtering, and a Sobel-magnitude threshold stands in for Canny. Both are
// documented as simplified substitutes rather than bit-exact ports.
package colorpoly

import (
	"math"
	"runtime"
	"sync"

	"github.com/mvgraph/mapvec/internal/raster"
)

// parallelRange splits [0,n) into one goroutine per available CPU and runs
// fn over each index, the same fixed-worker-count partitioning the engine
// package uses for its per-row convolution passes. Callers only use this
// over independent output slots (one row, one region) so no locking is
// needed between goroutines.
func parallelRange(n int, fn func(i int)) {
	workers := runtime.NumCPU()
	if workers > n {
		workers = n
	}
	if workers < 1 {
		workers = 1
	}
	var wg sync.WaitGroup
	perWorker := (n + workers - 1) / workers
	for w := 0; w < workers; w++ {
		start := w * perWorker
		end := start + perWorker
		if start >= n {
			break
		}
		if end > n {
			end = n
		}
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				fn(i)
			}
		}(start, end)
	}
	wg.Wait()
}

// Params tunes color-polygon recovery.
type Params struct {
	Enabled        bool
	NearBlackBound uint8 // BGR upper bound treated as "ink", default 50
	ColorBucket    int   // quantization bucket size for the smoothing passes
	EdgeThreshold  float64
	MinArea        int
}

func DefaultParams() Params {
	return Params{
		Enabled:        false,
		NearBlackBound: 50,
		ColorBucket:    24,
		EdgeThreshold:  40,
		MinArea:        16,
	}
}

// Polygon is a recovered colour region: its enclosing boundary plus the
// mean colour sampled from the original (pre-smoothing) raster.
type Polygon struct {
	Points  []raster.Pixel
	R, G, B uint8
}

// Recover runs the full stage. It returns nil, nil when disabled.
func Recover(src *raster.ColorBitmap, p Params) ([]Polygon, error) {
	if !p.Enabled {
		return nil, nil
	}

	eroded := erodeColor(src)
	excluded := nearBlackMask(eroded, p.NearBlackBound)

	smoothed := quantizeColors(eroded, p.ColorBucket)
	smoothed = quantizeColors(smoothed, maxInt(p.ColorBucket/2, 1))

	sat := saturationChannel(smoothed)
	edge := sobelThreshold(sat, src.Width, src.Height, p.EdgeThreshold)

	regions := labelRegions(smoothed, excluded, edge)

	// Region labelling must run sequentially (it's a single flood-fill
	// pass over a shared visited mask), but once regions are separated
	// each one's mean-color sampling and boundary trace touches only its
	// own pixel list, so they can run concurrently.
	results := make([]*Polygon, len(regions))
	parallelRange(len(regions), func(i int) {
		r := regions[i]
		if len(r.pixels) < p.MinArea {
			return
		}
		b, g, rr := meanColor(src, r.pixels)
		boundary := traceBoundary(r, src.Width, src.Height)
		if len(boundary) == 0 {
			return
		}
		results[i] = &Polygon{Points: boundary, R: rr, G: g, B: b}
	})

	var polys []Polygon
	for _, r := range results {
		if r != nil {
			polys = append(polys, *r)
		}
	}
	return polys, nil
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// erodeColor applies one step of morphological erosion (3x3, per channel
// minimum) to the color raster.
func erodeColor(src *raster.ColorBitmap) *raster.ColorBitmap {
	out := raster.NewColorBitmap(src.Width, src.Height)
	parallelRange(src.Height, func(row int) {
		for col := 0; col < src.Width; col++ {
			var minB, minG, minR uint8 = 255, 255, 255
			for dr := -1; dr <= 1; dr++ {
				for dc := -1; dc <= 1; dc++ {
					r, c := row+dr, col+dc
					if r < 0 || r >= src.Height || c < 0 || c >= src.Width {
						r, c = row, col
					}
					b, g, rr := src.At(r, c)
					if b < minB {
						minB = b
					}
					if g < minG {
						minG = g
					}
					if rr < minR {
						minR = rr
					}
				}
			}
			out.Set(row, col, minB, minG, minR)
		}
	})
	return out
}

func nearBlackMask(src *raster.ColorBitmap, bound uint8) []bool {
	mask := make([]bool, src.Width*src.Height)
	for row := 0; row < src.Height; row++ {
		for col := 0; col < src.Width; col++ {
			b, g, r := src.At(row, col)
			if b <= bound && g <= bound && r <= bound {
				mask[row*src.Width+col] = true
			}
		}
	}
	return mask
}

// quantizeColors approximates mean-shift filtering by averaging each
// pixel's 3x3 neighbourhood and then snapping each channel down to the
// nearest bucket boundary, which flattens near-uniform regions into
// exactly uniform ones while leaving sharp boundaries intact.
func quantizeColors(src *raster.ColorBitmap, bucket int) *raster.ColorBitmap {
	if bucket < 1 {
		bucket = 1
	}
	out := raster.NewColorBitmap(src.Width, src.Height)
	parallelRange(src.Height, func(row int) {
		for col := 0; col < src.Width; col++ {
			var sumB, sumG, sumR, n int
			for dr := -1; dr <= 1; dr++ {
				for dc := -1; dc <= 1; dc++ {
					r, c := row+dr, col+dc
					if r < 0 || r >= src.Height || c < 0 || c >= src.Width {
						continue
					}
					b, g, rr := src.At(r, c)
					sumB += int(b)
					sumG += int(g)
					sumR += int(rr)
					n++
				}
			}
			b := quantize(sumB/n, bucket)
			g := quantize(sumG/n, bucket)
			r := quantize(sumR/n, bucket)
			out.Set(row, col, b, g, r)
		}
	})
	return out
}

func quantize(v, bucket int) uint8 {
	q := (v / bucket) * bucket
	if q > 255 {
		q = 255
	}
	if q < 0 {
		q = 0
	}
	return uint8(q)
}

// saturationChannel converts BGR to HSV and returns the S channel scaled
// to [0,255].
func saturationChannel(src *raster.ColorBitmap) []float64 {
	out := make([]float64, src.Width*src.Height)
	for row := 0; row < src.Height; row++ {
		for col := 0; col < src.Width; col++ {
			b, g, r := src.At(row, col)
			_, s, _ := rgbToHSV(r, g, b)
			out[row*src.Width+col] = s * 255
		}
	}
	return out
}

func rgbToHSV(r, g, b uint8) (h, s, v float64) {
	rf, gf, bf := float64(r)/255, float64(g)/255, float64(b)/255
	max := math.Max(rf, math.Max(gf, bf))
	min := math.Min(rf, math.Min(gf, bf))
	v = max
	delta := max - min
	if max == 0 {
		return 0, 0, v
	}
	s = delta / max
	if delta == 0 {
		return 0, s, v
	}
	switch max {
	case rf:
		h = math.Mod((gf-bf)/delta, 6)
	case gf:
		h = (bf-rf)/delta + 2
	default:
		h = (rf-gf)/delta + 4
	}
	h *= 60
	if h < 0 {
		h += 360
	}
	return h, s, v
}

// sobelThreshold is a simplified stand-in for Canny: Sobel gradient
// magnitude over a single channel, thresholded to a binary edge mask.
func sobelThreshold(channel []float64, width, height int, threshold float64) []bool {
	at := func(row, col int) float64 {
		row = clampInt(row, 0, height-1)
		col = clampInt(col, 0, width-1)
		return channel[row*width+col]
	}
	out := make([]bool, width*height)
	for row := 0; row < height; row++ {
		for col := 0; col < width; col++ {
			gx := (at(row-1, col+1) + 2*at(row, col+1) + at(row+1, col+1)) -
				(at(row-1, col-1) + 2*at(row, col-1) + at(row+1, col-1))
			gy := (at(row+1, col-1) + 2*at(row+1, col) + at(row+1, col+1)) -
				(at(row-1, col-1) + 2*at(row-1, col) + at(row-1, col+1))
			mag := math.Hypot(gx, gy)
			out[row*width+col] = mag >= threshold
		}
	}
	return out
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
