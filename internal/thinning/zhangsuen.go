// Package thinning reduces a binary raster's foreground strokes to a
// single-pixel-wide skeleton via the Zhang-Suen algorithm. The spec treats
// this stage as a sealed black box: Thin is a pure function with no
// dependency on the rest of the pipeline's state, so it can be swapped for
// another thinning algorithm without touching anything upstream or
// downstream of it.
package thinning

import "github.com/mvgraph/mapvec/internal/raster"

// Thin runs the classic two-subiteration Zhang-Suen thinning algorithm to
// convergence and returns a new bitmap; the input is left untouched.
func Thin(bin *raster.Bitmap) *raster.Bitmap {
	out := bin.Clone()
	w, h := out.Width, out.Height

	// P2..P9 clockwise from north, matching the algorithm's canonical
	// neighbour numbering.
	type offset struct{ dr, dc int }
	ring := [8]offset{{-1, 0}, {-1, 1}, {0, 1}, {1, 1}, {1, 0}, {1, -1}, {0, -1}, {-1, -1}}

	neighbours := func(row, col int) [8]bool {
		var n [8]bool
		for i, o := range ring {
			n[i] = out.IsBlack(row+o.dr, col+o.dc)
		}
		return n
	}

	blackNeighbourCount := func(n [8]bool) int {
		c := 0
		for _, v := range n {
			if v {
				c++
			}
		}
		return c
	}

	// transitions counts the number of white-to-black transitions walking
	// P2..P9..P2.
	transitions := func(n [8]bool) int {
		c := 0
		for i := 0; i < 8; i++ {
			if !n[i] && n[(i+1)%8] {
				c++
			}
		}
		return c
	}

	for {
		changed := false
		for sub := 0; sub < 2; sub++ {
			var toWhiten []raster.Pixel
			for row := 0; row < h; row++ {
				for col := 0; col < w; col++ {
					if !out.IsBlack(row, col) {
						continue
					}
					n := neighbours(row, col)
					bCount := blackNeighbourCount(n)
					if bCount < 2 || bCount > 6 {
						continue
					}
					if transitions(n) != 1 {
						continue
					}
					// n indices: 0=P2(N) 1=P3(NE) 2=P4(E) 3=P5(SE) 4=P6(S) 5=P7(SW) 6=P8(W) 7=P9(NW)
					p2, p4, p6, p8 := n[0], n[2], n[4], n[6]
					if sub == 0 {
						if p2 && p4 && p6 {
							continue
						}
						if p4 && p6 && p8 {
							continue
						}
					} else {
						if p2 && p4 && p8 {
							continue
						}
						if p2 && p6 && p8 {
							continue
						}
					}
					toWhiten = append(toWhiten, raster.Pixel{Row: row, Col: col})
				}
			}
			for _, p := range toWhiten {
				out.SetBlack(p.Row, p.Col, false)
			}
			if len(toWhiten) > 0 {
				changed = true
			}
		}
		if !changed {
			break
		}
	}

	return out
}
