// Package components implements two-pass connected-component labelling
// over a binary raster, with running minimum-bounding-rectangle and area
// bookkeeping, plus the area-ratio filter that discards small noise
// components relative to the largest one found.
//
// The labelling pass is grounded on unionfindcomponents.cpp from the
// reference map-vectorization tool: each foreground pixel only looks at
// its four already-visited neighbours (west, north-west, north,
// north-east) when deciding whether to start a new label or adopt one of
// its neighbours', and any two distinct neighbour labels seen together are
// unioned. A second pass canonicalizes every pixel's label via Find and
// folds the per-raw-label MBR/area bookkeeping into the canonical label.
package components

import (
	"fmt"

	"github.com/mvgraph/mapvec/internal/errs"
	"github.com/mvgraph/mapvec/internal/raster"
)

// ConnectedComponent describes one labelled foreground region.
type ConnectedComponent struct {
	Label          int
	Seed           raster.Pixel // an actual black pixel of the component, not an MBR corner
	MBRMin, MBRMax raster.Pixel
	Area           int
}

// Centroid returns the component's MBR-based centroid, matching the
// centroid used downstream for Hough-based text detection.
func (c ConnectedComponent) Centroid() (row, col float64) {
	row = float64(c.MBRMin.Row+c.MBRMax.Row) / 2
	col = float64(c.MBRMin.Col+c.MBRMax.Col) / 2
	return
}

// predecessorOffsets is the restricted 4-neighbour set consulted during the
// first labelling pass: west, north-west, north, north-east, in that
// order. Only neighbours already visited in row-major scan order can carry
// a label, so east/south-east/south/south-west are never checked here.
var predecessorOffsets = [4][2]int{
	{0, -1},  // west
	{-1, -1}, // north-west
	{-1, 0},  // north
	{-1, 1},  // north-east
}

type rawStats struct {
	min, max raster.Pixel
	area     int
}

// Label performs two-pass connected-component labelling over bin. It
// returns the canonical per-pixel label raster (0 = background, row-major,
// len == Width*Height) and the list of discovered components in the order
// their canonical label is first encountered during a row-major scan.
func Label(bin *raster.Bitmap) ([]int, []ConnectedComponent, error) {
	if bin == nil {
		return nil, nil, fmt.Errorf("%w: nil bitmap", errs.ErrInputNotFound)
	}
	if err := bin.Validate(); err != nil {
		return nil, nil, err
	}

	w, h := bin.Width, bin.Height
	labels := make([]int, w*h)
	uf := NewUnionFind(1) // grown lazily as labels are allocated; index 0 unused
	var raw []rawStats    // raw[label-1] for label >= 1

	newLabel := func(row, col int) int {
		uf.Grow(len(raw) + 2)
		lbl := len(raw) + 1
		raw = append(raw, rawStats{min: raster.Pixel{Row: row, Col: col}, max: raster.Pixel{Row: row, Col: col}, area: 1})
		return lbl
	}

	growStats := func(lbl, row, col int) {
		s := &raw[lbl-1]
		if row < s.min.Row {
			s.min.Row = row
		}
		if col < s.min.Col {
			s.min.Col = col
		}
		if row > s.max.Row {
			s.max.Row = row
		}
		if col > s.max.Col {
			s.max.Col = col
		}
		s.area++
	}

	// Pass 1: provisional labelling + union of co-occurring neighbour labels.
	for row := 0; row < h; row++ {
		for col := 0; col < w; col++ {
			if !bin.IsBlack(row, col) {
				continue
			}
			var neighbourLabels []int
			for _, off := range predecessorOffsets {
				nr, nc := row+off[0], col+off[1]
				if !bin.InBounds(nr, nc) {
					continue
				}
				if !bin.IsBlack(nr, nc) {
					continue
				}
				nl := labels[nr*w+nc]
				if nl == 0 {
					continue
				}
				neighbourLabels = append(neighbourLabels, nl)
			}

			if len(neighbourLabels) == 0 {
				labels[row*w+col] = newLabel(row, col)
				continue
			}

			min := neighbourLabels[0]
			for _, l := range neighbourLabels[1:] {
				if l < min {
					min = l
				}
			}
			labels[row*w+col] = min
			growStats(min, row, col)
			for _, l := range neighbourLabels {
				if l != min {
					uf.Union(min, l)
				}
			}
		}
	}

	// Fold per-raw-label stats into their canonical label.
	canonStats := map[int]*rawStats{}
	for rawLabel := 1; rawLabel <= len(raw); rawLabel++ {
		canon := uf.Find(rawLabel)
		s := raw[rawLabel-1]
		cs, ok := canonStats[canon]
		if !ok {
			copy := s
			canonStats[canon] = &copy
			continue
		}
		if s.min.Row < cs.min.Row {
			cs.min.Row = s.min.Row
		}
		if s.min.Col < cs.min.Col {
			cs.min.Col = s.min.Col
		}
		if s.max.Row > cs.max.Row {
			cs.max.Row = s.max.Row
		}
		if s.max.Col > cs.max.Col {
			cs.max.Col = s.max.Col
		}
		cs.area += s.area
	}

	// Pass 2: relabel every pixel to its canonical label, and collect the
	// component list in first-appearance (row-major) order.
	var components []ConnectedComponent
	seen := map[int]bool{}
	for row := 0; row < h; row++ {
		for col := 0; col < w; col++ {
			idx := row*w + col
			if labels[idx] == 0 {
				continue
			}
			canon := uf.Find(labels[idx])
			labels[idx] = canon
			if seen[canon] {
				continue
			}
			seen[canon] = true
			s := canonStats[canon]
			components = append(components, ConnectedComponent{
				Label:  canon,
				Seed:   raster.Pixel{Row: row, Col: col}, // first pixel to reveal this label; guaranteed black
				MBRMin: s.min,
				MBRMax: s.max,
				Area:   s.area,
			})
		}
	}

	return labels, components, nil
}
