package colorpoly

import "github.com/mvgraph/mapvec/internal/raster"

type region struct {
	pixels []raster.Pixel
}

// labelRegions groups 4-connected pixels that share the same quantized
// color into regions, excluding ink pixels and edge pixels from
// consideration entirely (they act as region boundaries and never belong
// to a polygon themselves).
func labelRegions(smoothed *raster.ColorBitmap, excluded, edge []bool) []region {
	w, h := smoothed.Width, smoothed.Height
	visited := make([]bool, w*h)
	var regions []region

	valid := func(idx int) bool {
		return !excluded[idx] && !edge[idx]
	}

	for row := 0; row < h; row++ {
		for col := 0; col < w; col++ {
			idx := row*w + col
			if visited[idx] || !valid(idx) {
				continue
			}
			b, g, r := smoothed.At(row, col)
			var pixels []raster.Pixel
			stack := []raster.Pixel{{Row: row, Col: col}}
			visited[idx] = true
			for len(stack) > 0 {
				p := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				pixels = append(pixels, p)
				for _, off := range [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}} {
					nr, nc := p.Row+off[0], p.Col+off[1]
					if nr < 0 || nr >= h || nc < 0 || nc >= w {
						continue
					}
					nidx := nr*w + nc
					if visited[nidx] || !valid(nidx) {
						continue
					}
					nb, ng, nr2 := smoothed.At(nr, nc)
					if nb != b || ng != g || nr2 != r {
						continue
					}
					visited[nidx] = true
					stack = append(stack, raster.Pixel{Row: nr, Col: nc})
				}
			}
			regions = append(regions, region{pixels: pixels})
		}
	}
	return regions
}

func meanColor(src *raster.ColorBitmap, pixels []raster.Pixel) (b, g, r uint8) {
	var sumB, sumG, sumR int
	for _, p := range pixels {
		pb, pg, pr := src.At(p.Row, p.Col)
		sumB += int(pb)
		sumG += int(pg)
		sumR += int(pr)
	}
	n := len(pixels)
	if n == 0 {
		return 0, 0, 0
	}
	return uint8(sumB / n), uint8(sumG / n), uint8(sumR / n)
}

// traceBoundary walks the Moore neighbourhood of the region's membership
// mask starting from its topmost-leftmost pixel, the same contour-tracing
// approach the reference uses for colour-region recovery.
func traceBoundary(r region, width, height int) []raster.Pixel {
	if len(r.pixels) == 0 {
		return nil
	}
	member := make(map[raster.Pixel]bool, len(r.pixels))
	start := r.pixels[0]
	for _, p := range r.pixels {
		member[p] = true
		if p.Row < start.Row || (p.Row == start.Row && p.Col < start.Col) {
			start = p
		}
	}

	ring := [8][2]int{{-1, 0}, {-1, 1}, {0, 1}, {1, 1}, {1, 0}, {1, -1}, {0, -1}, {-1, -1}}
	boundary := []raster.Pixel{start}
	cur := start
	// Enter from the west (off-grid), matching the raster extraction
	// walk's convention of scanning W first.
	enterDir := 6 // index of west in ring
	for steps := 0; steps < len(r.pixels)*8+8; steps++ {
		found := -1
		for k := 0; k < 8; k++ {
			dir := (enterDir + 1 + k) % 8
			nr, nc := cur.Row+ring[dir][0], cur.Col+ring[dir][1]
			if member[raster.Pixel{Row: nr, Col: nc}] {
				found = dir
				cur = raster.Pixel{Row: nr, Col: nc}
				break
			}
		}
		if found < 0 {
			break
		}
		enterDir = (found + 4) % 8
		if cur == start {
			break
		}
		boundary = append(boundary, cur)
	}
	return boundary
}
