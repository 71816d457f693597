// Package text detects label/annotation text among the connected
// components produced by the components package and erases it from the
// black layer before vectorization, so street names and legend labels
// don't get traced as if they were map geometry.
//
// Detection works over component centroids rather than raw pixels: text
// characters sitting on a common baseline vote for the same Hough line,
// and components belonging to the same word cluster tightly together
// along that line while a real word boundary (a space, or the edge of a
// label) shows up as an abnormal jump in component area.
package text

import (
	"math"

	"github.com/mvgraph/mapvec/internal/components"
)

// Line is a Hough-space line in normal form: x*cos(theta) + y*sin(theta) = rho.
type Line struct {
	Rho   float64
	Theta float64
}

// HoughParams controls adaptive Hough line detection over component
// centroids.
type HoughParams struct {
	ThetaSteps       int     // number of theta bins across [0, pi)
	RhoStep          float64 // rho bin width, in pixels
	MinLines         int     // stop lowering the threshold once this many lines are found
	InitialThreshold int     // starting vote threshold
	MinThreshold     int     // floor threshold; give up below this
	ThresholdDecay    float64 // multiplicative decay applied each retry
}

// DefaultHoughParams mirrors the kind of resolution a reference
// scanned-map pipeline would pick: one degree per theta bin, unit rho
// resolution over a rho range sized from the image diagonal, and a threshold that backs
// off by 10% per retry until at least one line is found.
func DefaultHoughParams() HoughParams {
	return HoughParams{
		ThetaSteps:       180,
		RhoStep:          1.0,
		MinLines:         1,
		InitialThreshold: 8,
		MinThreshold:     2,
		ThresholdDecay:    0.9,
	}
}

// DetectLines runs a standard accumulator-based Hough transform over the
// given centroids (col, row pairs), lowering the vote threshold until at
// least MinLines candidate lines are found or MinThreshold is reached.
func DetectLines(centroids [][2]float64, width, height int, p HoughParams) []Line {
	if len(centroids) == 0 || p.ThetaSteps <= 0 {
		return nil
	}
	diag := math.Hypot(float64(width), float64(height))
	numRho := int(2*diag/p.RhoStep) + 2

	cosT := make([]float64, p.ThetaSteps)
	sinT := make([]float64, p.ThetaSteps)
	for i := 0; i < p.ThetaSteps; i++ {
		theta := math.Pi * float64(i) / float64(p.ThetaSteps)
		cosT[i] = math.Cos(theta)
		sinT[i] = math.Sin(theta)
	}

	acc := make([][]int, p.ThetaSteps)
	for i := range acc {
		acc[i] = make([]int, numRho)
	}

	for _, c := range centroids {
		x, y := c[0], c[1]
		for t := 0; t < p.ThetaSteps; t++ {
			rho := x*cosT[t] + y*sinT[t]
			rIdx := int(math.Round((rho + diag) / p.RhoStep))
			if rIdx < 0 || rIdx >= numRho {
				continue
			}
			acc[t][rIdx]++
		}
	}

	threshold := p.InitialThreshold
	if threshold < p.MinThreshold {
		threshold = p.MinThreshold
	}
	var lines []Line
	for {
		lines = lines[:0]
		for t := 0; t < p.ThetaSteps; t++ {
			for r := 0; r < numRho; r++ {
				if acc[t][r] >= threshold {
					lines = append(lines, Line{
						Rho:   float64(r)*p.RhoStep - diag,
						Theta: math.Pi * float64(t) / float64(p.ThetaSteps),
					})
				}
			}
		}
		if len(lines) >= p.MinLines || threshold <= p.MinThreshold {
			break
		}
		next := int(float64(threshold) * p.ThresholdDecay)
		if next >= threshold {
			next = threshold - 1
		}
		if next < p.MinThreshold {
			next = p.MinThreshold
		}
		threshold = next
	}
	return lines
}

// Centroids extracts (col, row) centroid pairs from a component list, in
// the same order as the input slice.
func Centroids(cs []components.ConnectedComponent) [][2]float64 {
	out := make([][2]float64, len(cs))
	for i, c := range cs {
		row, col := c.Centroid()
		out[i] = [2]float64{col, row}
	}
	return out
}
