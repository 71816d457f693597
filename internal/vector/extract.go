package vector

import "github.com/mvgraph/mapvec/internal/raster"

// mooreOrder is the clockwise Moore-neighbourhood offsets starting from
// the west neighbour: W, NW, N, NE, E, SE, S, SW. At every step the walk
// restarts scanning from W, so the earliest offset in this order that
// leads to an unvisited black pixel always wins.
var mooreOrder = [8][2]int{
	{0, -1},  // W
	{-1, -1}, // NW
	{-1, 0},  // N
	{-1, 1},  // NE
	{0, 1},   // E
	{1, 1},   // SE
	{1, 0},   // S
	{1, -1},  // SW
}

// Extract walks a thinned bitmap row-major, starting a new polyline at
// every unvisited black pixel and following the clockwise Moore walk from
// there until no unvisited black neighbour remains. Each pixel belongs to
// at most one line.
func Extract(bin *raster.Bitmap) *Graph {
	w, h := bin.Width, bin.Height
	g := &Graph{
		Width:      w,
		Height:     h,
		Nodes:      make([]Node, w*h),
		NodeToLine: map[NodeID][]LineID{},
	}
	for row := 0; row < h; row++ {
		for col := 0; col < w; col++ {
			g.Nodes[g.nodeID(row, col)] = Node{Coord: raster.Pixel{Row: row, Col: col}, Line: -1}
		}
	}

	visited := make([]bool, w*h)

	for row := 0; row < h; row++ {
		for col := 0; col < w; col++ {
			start := g.nodeID(row, col)
			if !bin.IsBlack(row, col) || visited[start] {
				continue
			}

			lineID := LineID(len(g.Lines))
			points := []raster.Pixel{{Row: row, Col: col}}
			visited[start] = true
			g.Nodes[start].Line = lineID
			curRow, curCol := row, col

			for {
				moved := false
				for _, off := range mooreOrder {
					nr, nc := curRow+off[0], curCol+off[1]
					if !bin.InBounds(nr, nc) || !bin.IsBlack(nr, nc) {
						continue
					}
					nid := g.nodeID(nr, nc)
					if visited[nid] {
						continue
					}
					visited[nid] = true
					g.Nodes[nid].Line = lineID
					points = append(points, raster.Pixel{Row: nr, Col: nc})
					curRow, curCol = nr, nc
					moved = true
					break
				}
				if !moved {
					break
				}
			}

			end := g.nodeID(curRow, curCol)
			line := &Line{ID: lineID, Points: points, Start: start, End: end}
			g.Lines = append(g.Lines, line)
			g.linkNode(start, lineID)
			if end != start {
				g.linkNode(end, lineID)
			}
		}
	}

	return g
}
