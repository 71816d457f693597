// Package vector extracts a polyline graph from a thinned binary raster,
// fuses coincident endpoints left behind by the raster walk, and
// simplifies each resulting polyline with Douglas-Peucker.
//
// The graph uses an arena/index pattern in place of the reference
// implementation's pointer-heavy pixel/vectorLine classes: every pixel of
// the raster has a slot in a flat Nodes slice (indexed by row*Width+col,
// matching initPixels' row*cols+col layout), and lines reference their
// endpoints by NodeID rather than by pointer. NodeToLine plays the role of
// the reference's multimap<pixel*, vectorLine*>, keyed by NodeID.
package vector

import "github.com/mvgraph/mapvec/internal/raster"

type NodeID int
type LineID int

// Node is one pixel's slot in the arena. Line is -1 until a graph walk
// visits the pixel.
type Node struct {
	Coord raster.Pixel
	Line  LineID
}

// Line is a polyline discovered by the raster walk (possibly later
// adjusted by fusion). Points always satisfies Points[0] == coordinate of
// Start and Points[len-1] == coordinate of End; fusion updates both the
// node references and the corresponding Points entry together so that
// invariant never breaks.
type Line struct {
	ID     LineID
	Points []raster.Pixel
	Start  NodeID
	End    NodeID
}

// Graph is the full extracted polyline structure over one thinned raster.
type Graph struct {
	Width, Height int
	Nodes         []Node
	Lines         []*Line
	NodeToLine    map[NodeID][]LineID
}

func (g *Graph) nodeID(row, col int) NodeID { return NodeID(row*g.Width + col) }

func (g *Graph) linkNode(id NodeID, lid LineID) {
	g.NodeToLine[id] = append(g.NodeToLine[id], lid)
}

// unlinkNode removes every line association recorded for id, mirroring the
// reference's multimap::erase(key) semantics, which drop every pair with
// that key rather than just one.
func (g *Graph) unlinkNode(id NodeID) {
	delete(g.NodeToLine, id)
}
