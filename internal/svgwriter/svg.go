// Package svgwriter is a thin serialization sink for the vectorizer's
// output: a fixed, small operation set (move-to, line-to, close-path,
// set-stroke-width, set-rgb, fill-rect, stroke, fill) that accumulates SVG
// markup deterministically. It mirrors the reference tool's Cairo call
// sequence (vectorsToFile): colour polygons are filled first so stroked
// line work renders on top of them, and a single-pixel polyline becomes a
// 1x1 rect offset by -0.5 so it lands exactly on the pixel grid rather
// than between pixel centers.
package svgwriter

import (
	"fmt"
	"strconv"
	"strings"
)

// Canvas accumulates SVG elements through a fixed operation set and then
// serializes them into one document.
type Canvas struct {
	width, height int
	elements      []string
	path          strings.Builder
	color         string
	strokeWidth   float64
}

func NewCanvas(width, height int) *Canvas {
	return &Canvas{width: width, height: height, color: "#000000", strokeWidth: 1}
}

func formatNum(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func (c *Canvas) MoveTo(x, y float64) {
	fmt.Fprintf(&c.path, "M%s %s ", formatNum(x), formatNum(y))
}

func (c *Canvas) LineTo(x, y float64) {
	fmt.Fprintf(&c.path, "L%s %s ", formatNum(x), formatNum(y))
}

func (c *Canvas) ClosePath() {
	c.path.WriteString("Z ")
}

func (c *Canvas) SetStrokeWidth(w float64) {
	c.strokeWidth = w
}

func (c *Canvas) SetRGB(r, g, b uint8) {
	c.color = fmt.Sprintf("#%02x%02x%02x", r, g, b)
}

// FillRect emits a standalone filled rectangle, used for single-pixel
// polylines that would otherwise produce a degenerate zero-length stroke.
func (c *Canvas) FillRect(x, y, w, h float64) {
	c.elements = append(c.elements, fmt.Sprintf(
		`<rect x="%s" y="%s" width="%s" height="%s" fill="%s"/>`,
		formatNum(x), formatNum(y), formatNum(w), formatNum(h), c.color,
	))
}

// Stroke flushes the accumulated path as a stroked, unfilled element using
// the current color and stroke width, then clears the path buffer.
func (c *Canvas) Stroke() {
	d := strings.TrimSpace(c.path.String())
	if d == "" {
		return
	}
	c.elements = append(c.elements, fmt.Sprintf(
		`<path d="%s" fill="none" stroke="%s" stroke-width="%s" stroke-linecap="square" stroke-linejoin="round"/>`,
		d, c.color, formatNum(c.strokeWidth),
	))
	c.path.Reset()
}

// Fill flushes the accumulated path as a filled, unstroked element using
// the current color, then clears the path buffer.
func (c *Canvas) Fill() {
	d := strings.TrimSpace(c.path.String())
	if d == "" {
		return
	}
	c.elements = append(c.elements, fmt.Sprintf(`<path d="%s" fill="%s"/>`, d, c.color))
	c.path.Reset()
}

// Bytes renders the full SVG document: a fixed-size viewBox matching the
// source raster, with every emitted element in emission order.
func (c *Canvas) Bytes() []byte {
	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>`+"\n")
	fmt.Fprintf(&sb, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`+"\n",
		c.width, c.height, c.width, c.height)
	for _, e := range c.elements {
		sb.WriteString(e)
		sb.WriteString("\n")
	}
	sb.WriteString("</svg>\n")
	return []byte(sb.String())
}
