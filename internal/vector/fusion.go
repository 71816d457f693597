package vector

// Fuse merges coincident polyline endpoints left behind by the raster
// walk: Extract stops a line whenever its next Moore step would land on a
// pixel already claimed by a different line, which means two (or more)
// lines often terminate on adjacent pixels instead of sharing one. Fuse
// walks every pixel in row-major order and, for every pixel that is
// already a node (i.e. the endpoint of some line), looks at its
// already-visited predecessor neighbours (NW, N, NE, W) to decide whether
// a neighbouring line's endpoint should be pulled onto this pixel.
//
// This is a direct port of fuseNodes from the reference vectorizer, with
// one deliberate correction: the reference's bottom-row corner checks use
// `i == height` (an index one past the last valid row, so those branches
// are unreachable and the real bottom corners fall through to the general
// lower-border case, under-counting their predecessors). Here the bottom
// corners are matched with `i == height-1` so they actually fire.
func Fuse(g *Graph) {
	w, h := g.Width, g.Height

	for row := 0; row < h; row++ {
		for col := 0; col < w; col++ {
			current := g.nodeID(row, col)
			lineID := g.Nodes[current].Line
			if lineID < 0 {
				continue // not part of any line
			}
			if len(g.NodeToLine[current]) == 0 {
				continue // not a node (not an endpoint of anything)
			}

			toCheck := predecessorsFor(row, col, w, h)

			var nodes []NodeID
			for _, px := range toCheck {
				if len(g.NodeToLine[px]) == 0 {
					continue
				}
				if g.Nodes[px].Line != lineID {
					nodes = append(nodes, px)
				}
			}

			line := g.Lines[lineID]

			switch len(nodes) {
			case 1:
				g.fuseOne(current, line, nodes[0])
			case 2:
				g.fuseTwo(row, col, current, line, nodes[0], nodes[1])
			case 3:
				g.fuseThree(row, col, line, nodes[0], nodes[1], nodes[2])
			default:
				// 0 or >=4 predecessor nodes: nothing to fuse, or a case the
				// reference vectorizer leaves unhandled.
			}
		}
	}
}

// predecessorsFor returns the already-visited neighbours consulted for
// pixel (row,col), in the same top-to-bottom, left-to-right order as the
// reference: NW, N, NE, W where each applies, trimmed for the four image
// borders and the four corners.
func predecessorsFor(row, col, w, h int) []NodeID {
	nw := func() NodeID { return NodeID((row-1)*w + (col - 1)) }
	n := func() NodeID { return NodeID((row-1)*w + col) }
	ne := func() NodeID { return NodeID((row-1)*w + (col + 1)) }
	west := func() NodeID { return NodeID(row*w + (col - 1)) }

	switch {
	case row == 0 && col == 0:
		return nil
	case row == 0 && col == w-1:
		return []NodeID{west()}
	case row == h-1 && col == 0:
		return []NodeID{n(), ne()}
	case row == h-1 && col == w-1:
		return []NodeID{nw(), n(), west()}
	case row == 0:
		return []NodeID{west()}
	case col == 0:
		return []NodeID{n(), ne()}
	case col == w-1:
		return []NodeID{nw(), n(), west()}
	case row == h-1:
		return []NodeID{nw(), n(), ne(), west()}
	default:
		return []NodeID{nw(), n(), ne(), west()}
	}
}

func (g *Graph) setStart(line *Line, id NodeID) {
	line.Start = id
	line.Points[0] = g.Nodes[id].Coord
}

func (g *Graph) setEnd(line *Line, id NodeID) {
	line.End = id
	line.Points[len(line.Points)-1] = g.Nodes[id].Coord
}

func (g *Graph) fuseOne(current NodeID, line *Line, node NodeID) {
	otherLine := g.Lines[g.Nodes[node].Line]

	switch {
	case g.Nodes[node].Line == line.ID:
		// node is an endpoint of current's own line: nothing to do.

	case current == line.Start:
		if line.Start != line.End {
			g.unlinkNode(line.Start)
		}
		g.linkNode(node, line.ID)
		g.setStart(line, node)

	case current == line.End:
		if node == otherLine.Start {
			if line.Start != line.End {
				g.unlinkNode(current)
			}
			g.linkNode(node, otherLine.ID)
			g.setEnd(line, node)
		} else {
			if line.Start != line.End {
				g.unlinkNode(node)
			}
			g.linkNode(current, otherLine.ID)
			g.setEnd(otherLine, current)
		}
	}
}

func (g *Graph) fuseTwo(row, col int, current NodeID, line *Line, first, second NodeID) {
	w := g.Width
	nw := NodeID((row-1)*w + (col - 1))
	n := NodeID((row-1)*w + col)
	ne := NodeID((row-1)*w + (col + 1))
	west := NodeID(row*w + (col - 1))

	switch {
	case first == nw && second == n:
		if line.Start != line.End {
			g.unlinkNode(line.Start)
		}
		g.linkNode(second, line.ID)
		g.setStart(line, second)

	case first == n && second == ne:
		if line.Start != line.End {
			g.unlinkNode(line.Start)
		}
		g.linkNode(first, line.ID)
		g.setStart(line, first)

	case first == nw && second == west:
		if line.Start != line.End {
			g.unlinkNode(line.Start)
		}
		g.linkNode(second, line.ID)
		g.setStart(line, second)

	case first == n && second == west:
		firstLine := g.Lines[g.Nodes[first].Line]
		secondLine := g.Lines[g.Nodes[second].Line]
		if g.Nodes[ne].Line < 0 {
			g.unlinkNode(firstLine.End)
			g.unlinkNode(secondLine.End)
			g.linkNode(current, firstLine.ID)
			g.linkNode(current, secondLine.ID)
			g.setEnd(firstLine, current)
			g.setEnd(secondLine, current)
		} else {
			g.unlinkNode(firstLine.Start)
			g.unlinkNode(secondLine.End)
			g.linkNode(current, firstLine.ID)
			g.linkNode(current, secondLine.ID)
			g.setStart(firstLine, current)
			g.setEnd(secondLine, current)
		}

	case first == ne && second == west:
		firstLine := g.Lines[g.Nodes[first].Line]
		secondLine := g.Lines[g.Nodes[second].Line]
		g.unlinkNode(firstLine.Start)
		g.unlinkNode(secondLine.End)
		g.linkNode(current, firstLine.ID)
		g.linkNode(current, secondLine.ID)
		g.setEnd(firstLine, current)
		g.setEnd(secondLine, current)
	}
}

func (g *Graph) fuseThree(row, col int, line *Line, first, second, third NodeID) {
	w := g.Width
	nw := NodeID((row-1)*w + (col - 1))
	n := NodeID((row-1)*w + col)
	ne := NodeID((row-1)*w + (col + 1))

	if first == nw && second == n && third == ne {
		if line.Start != line.End {
			g.unlinkNode(line.Start)
		}
		g.linkNode(second, line.ID)
		g.setStart(line, second)
	}
}
