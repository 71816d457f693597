package components

// AreaFilter discards components whose area is small relative to the
// largest component present. A component survives when
// area >= maxArea / ratio. ratio <= 0 disables filtering (the input is
// returned unchanged), matching a "no filtering requested" config value.
//
// Grounded on areafilter.hpp's ratio-based cutoff; the reference keeps the
// comparison in floating point so a ratio larger than the largest area
// still excludes everything smaller than a fractional pixel rather than
// rounding the threshold down to zero.
func AreaFilter(cs []ConnectedComponent, ratio int) []ConnectedComponent {
	if ratio <= 0 || len(cs) == 0 {
		return cs
	}
	maxArea := 0
	for _, c := range cs {
		if c.Area > maxArea {
			maxArea = c.Area
		}
	}
	threshold := float64(maxArea) / float64(ratio)
	out := cs[:0:0]
	for _, c := range cs {
		if float64(c.Area) >= threshold {
			out = append(out, c)
		}
	}
	return out
}
