package text

import "github.com/mvgraph/mapvec/internal/components"

// ClassifyParams bundles the tunables for the whole text-detection stage.
type ClassifyParams struct {
	Hough               HoughParams
	ClusterK            int     // number of parallel lines stepped out each side of a detected line
	Tolerance           float64 // max centroid distance (pixels) from a cluster line to be assigned
	WordBoundaryFraction float64 // area-jump fraction that splits a cluster into word groups
	MinWordComponents    int     // a word group shorter than this is not classified as text
}

// DefaultClassifyParams returns the tuning used when nothing more specific
// is supplied via config.
func DefaultClassifyParams() ClassifyParams {
	return ClassifyParams{
		Hough:                DefaultHoughParams(),
		ClusterK:             5,
		Tolerance:            1.5,
		WordBoundaryFraction: 0.5,
		MinWordComponents:    2,
	}
}

// Classify partitions comps into text and non-text groups. It runs Hough
// detection once over every component centroid, then for each detected
// line builds its parallel-line cluster, assigns and sorts the nearby
// components along the line's direction, and splits them into word groups.
// Any component that ends up in a word group of at least
// MinWordComponents is classified as text; everything else (including
// components never claimed by any cluster) is passed through untouched.
//
// A component can only be classified as text once: once claimed by a
// cluster's word group it is removed from consideration by subsequent
// lines, so the same glyph isn't erased twice or double-counted between
// two near-parallel detected lines.
func Classify(comps []components.ConnectedComponent, width, height int, p ClassifyParams) (textComps, rest []components.ConnectedComponent) {
	if len(comps) == 0 {
		return nil, nil
	}

	remaining := append([]components.ConnectedComponent(nil), comps...)
	claimed := map[int]bool{}

	centroids := Centroids(remaining)
	lines := DetectLines(centroids, width, height, p.Hough)

	for _, line := range lines {
		cluster := ClusterAroundLine(line, p.ClusterK, p.Hough.RhoStep)
		var candidates []components.ConnectedComponent
		for _, c := range remaining {
			if claimed[c.Label] {
				continue
			}
			candidates = append(candidates, c)
		}
		sorted := Assign(candidates, cluster, p.Tolerance)
		if len(sorted) == 0 {
			continue
		}
		for _, group := range WordGroups(sorted, p.WordBoundaryFraction) {
			if len(group) < p.MinWordComponents {
				continue
			}
			for _, c := range group {
				claimed[c.Label] = true
				textComps = append(textComps, c)
			}
		}
	}

	for _, c := range comps {
		if !claimed[c.Label] {
			rest = append(rest, c)
		}
	}
	return textComps, rest
}
