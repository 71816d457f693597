package text

import (
	"github.com/mvgraph/mapvec/internal/components"
	"github.com/mvgraph/mapvec/internal/raster"
)

// eightConnected lists all 8 neighbour offsets, used for the flood-erase
// walk. Grounded on auxiliary.cpp's eightConnectedBlackNeighbors, which
// (unlike the 4-neighbour predecessor set used for labelling) gathers the
// full ring since erasure has no "already visited in scan order"
// constraint to respect.
var eightConnected = [8][2]int{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

// FloodErase whitens the 8-connected black region containing seed and
// returns how many pixels were cleared. It mirrors
// eraseConnectedPixels/getBlackComponentPixels: an explicit stack-based
// walk rather than recursion, since component regions can be large enough
// to blow a call stack.
func FloodErase(bin *raster.Bitmap, seed raster.Pixel) int {
	if !bin.IsBlack(seed.Row, seed.Col) {
		return 0
	}
	stack := []raster.Pixel{seed}
	bin.SetBlack(seed.Row, seed.Col, false)
	count := 0
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		count++
		for _, off := range eightConnected {
			nr, nc := p.Row+off[0], p.Col+off[1]
			if bin.IsBlack(nr, nc) {
				bin.SetBlack(nr, nc, false)
				stack = append(stack, raster.Pixel{Row: nr, Col: nc})
			}
		}
	}
	return count
}

// EraseComponents whitens every pixel reachable by flood fill from each
// component's seed pixel.
func EraseComponents(bin *raster.Bitmap, comps []components.ConnectedComponent) {
	for _, c := range comps {
		FloodErase(bin, c.Seed)
	}
}
