package text

import (
	"math"
	"sort"

	"github.com/mvgraph/mapvec/internal/components"
)

// Cluster is a band of 2*K+1 parallel candidate lines at a common theta,
// stepped out from one detected Hough line by RhoStep each side. Gathering
// a band instead of testing against the single detected line compensates
// for the accumulator's limited rho resolution: real baselines rarely land
// exactly on a bin center.
type Cluster struct {
	Theta float64
	Rhos  []float64
}

// ClusterAroundLine builds the 2*k+1 parallel-line band around line.
func ClusterAroundLine(line Line, k int, rhoStep float64) Cluster {
	rhos := make([]float64, 0, 2*k+1)
	for i := -k; i <= k; i++ {
		rhos = append(rhos, line.Rho+float64(i)*rhoStep)
	}
	return Cluster{Theta: line.Theta, Rhos: rhos}
}

// distanceToCluster returns the distance from (x,y) to the nearest of the
// cluster's parallel lines, using the stable normal-form distance
// |x*cos(theta) + y*sin(theta) - rho| rather than reconstructing a slope.
func distanceToCluster(x, y float64, c Cluster) float64 {
	cos, sin := math.Cos(c.Theta), math.Sin(c.Theta)
	proj := x*cos + y*sin
	best := math.Inf(1)
	for _, rho := range c.Rhos {
		d := math.Abs(proj - rho)
		if d < best {
			best = d
		}
	}
	return best
}

// Assign returns the subset of comps within tolerance pixels of any line
// in the cluster's band, sorted along the cluster's dominant direction
// (the line direction itself, not its normal).
func Assign(comps []components.ConnectedComponent, c Cluster, tolerance float64) []components.ConnectedComponent {
	var out []components.ConnectedComponent
	for _, comp := range comps {
		row, col := comp.Centroid()
		if distanceToCluster(col, row, c) <= tolerance {
			out = append(out, comp)
		}
	}
	dirCos, dirSin := -math.Sin(c.Theta), math.Cos(c.Theta)
	sort.SliceStable(out, func(i, j int) bool {
		ri, ci := out[i].Centroid()
		rj, cj := out[j].Centroid()
		pi := ci*dirCos + ri*dirSin
		pj := cj*dirCos + rj*dirSin
		return pi < pj
	})
	return out
}

// WordGroups splits a line-sorted component sequence into word groups
// using a sliding window over component area. The window spans 2 entries
// each side of the gap being tested when the sequence holds at least 5
// components, otherwise 1 each side. A gap is treated as a word boundary when the area jump between
// consecutive entries exceeds fraction times the window's median area.
func WordGroups(sorted []components.ConnectedComponent, fraction float64) [][]components.ConnectedComponent {
	if len(sorted) == 0 {
		return nil
	}
	if len(sorted) == 1 {
		return [][]components.ConnectedComponent{sorted}
	}

	n := 1
	if len(sorted) >= 5 {
		n = 2
	}

	var groups [][]components.ConnectedComponent
	start := 0
	for i := 0; i < len(sorted)-1; i++ {
		lo := i - n + 1
		if lo < 0 {
			lo = 0
		}
		hi := i + n + 1
		if hi > len(sorted) {
			hi = len(sorted)
		}
		window := sorted[lo:hi]
		areas := make([]int, len(window))
		for j, c := range window {
			areas[j] = c.Area
		}
		median := medianInt(areas)
		diff := math.Abs(float64(sorted[i+1].Area - sorted[i].Area))
		if median > 0 && diff > fraction*float64(median) {
			groups = append(groups, sorted[start:i+1])
			start = i + 1
		}
	}
	groups = append(groups, sorted[start:])
	return groups
}

func medianInt(vs []int) int {
	if len(vs) == 0 {
		return 0
	}
	cp := append([]int(nil), vs...)
	sort.Ints(cp)
	return cp[len(cp)/2]
}
