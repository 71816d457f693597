// Package pipeline wires every vectorization stage together in sequence:
// black-layer extraction, connected-component labelling and area
// filtering, text detection and erasure, thinning, graph extraction, node
// fusion, polyline simplification, stroke-width estimation, optional
// colour-polygon recovery, and SVG emission. It owns every large buffer
// the run touches; stages themselves stay free of global state so the
// whole thing can be called repeatedly (e.g. from tests) without leaking
// data between runs.
//
// The driver runs its stages one after another on a single goroutine:
// several stages here (labelling, text clustering, graph extraction,
// fusion) depend on deterministic row-major visitation order, and
// reordering any of their internal work across goroutines would make the
// emitted SVG depend on scheduling. Where the pipeline can and does use
// worker-pool parallelism (modeled on the teacher's floodfill.go
// compositing pattern) is limited to stages with no such ordering
// dependency, such as per-region mean-colour sampling in colorpoly.
package pipeline

import (
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/mvgraph/mapvec/internal/colorpoly"
	"github.com/mvgraph/mapvec/internal/components"
	"github.com/mvgraph/mapvec/internal/config"
	"github.com/mvgraph/mapvec/internal/errs"
	"github.com/mvgraph/mapvec/internal/raster"
	"github.com/mvgraph/mapvec/internal/svgwriter"
	"github.com/mvgraph/mapvec/internal/text"
	"github.com/mvgraph/mapvec/internal/thinning"
	"github.com/mvgraph/mapvec/internal/vector"
)

// Result carries diagnostics alongside the rendered document, useful for
// tests and for the CLI's summary line.
type Result struct {
	SVG            []byte
	ComponentCount int
	TextComponents int
	LineCount      int
	ColorPolygons  int
}

// Run executes the full pipeline over a decoded image and returns the
// rendered SVG document.
func Run(img image.Image, cfg *config.Config) (*Result, error) {
	color, err := raster.FromImage(img)
	if err != nil {
		return nil, err
	}

	var black *raster.Bitmap
	if cfg.AdaptiveThreshold {
		black, err = raster.AdaptiveBlackLayer(color, cfg.AdaptiveWindow, cfg.AdaptiveOffset)
	} else {
		black, err = raster.BlackLayer(color, cfg.Threshold)
	}
	if err != nil {
		return nil, err
	}
	dumpDebug(cfg.DebugDir, "01-black-layer.png", black)

	_, comps, err := components.Label(black)
	if err != nil {
		return nil, err
	}
	if len(comps) == 0 {
		// No foreground pixels at all: per spec this is success with an
		// empty SVG document, not a pipeline error.
		canvas := svgwriter.NewCanvas(color.Width, color.Height)
		return &Result{SVG: canvas.Bytes()}, nil
	}
	comps = components.AreaFilter(comps, cfg.AreaRatio)
	if len(comps) == 0 {
		return nil, fmt.Errorf("%w: area filter removed every component", errs.ErrDegenerateComponent)
	}

	textComps, geometryComps := text.Classify(comps, black.Width, black.Height, cfg.Text)
	text.EraseComponents(black, textComps)
	dumpDebug(cfg.DebugDir, "02-text-erased.png", black)

	preThin := black.Clone()
	thinned := thinning.Thin(black)
	dumpDebug(cfg.DebugDir, "03-thinned.png", thinned)

	graph := vector.Extract(thinned)
	vector.Fuse(graph)
	simplified := vector.Refine(graph, cfg.Epsilon)

	var polys []colorpoly.Polygon
	if cfg.ColorPoly.Enabled {
		polys, err = colorpoly.Recover(color, cfg.ColorPoly)
		if err != nil {
			return nil, err
		}
	}

	canvas := svgwriter.NewCanvas(color.Width, color.Height)
	emitColorPolygons(canvas, polys)
	emitLines(canvas, graph, simplified, preThin, thinned, cfg.StrokeWindow)

	_ = geometryComps // retained for callers that want the surviving non-text component list

	return &Result{
		SVG:            canvas.Bytes(),
		ComponentCount: len(comps),
		TextComponents: len(textComps),
		LineCount:      len(graph.Lines),
		ColorPolygons:  len(polys),
	}, nil
}

func emitColorPolygons(canvas *svgwriter.Canvas, polys []colorpoly.Polygon) {
	for _, p := range polys {
		if len(p.Points) == 0 {
			continue
		}
		canvas.SetRGB(p.R, p.G, p.B)
		canvas.MoveTo(float64(p.Points[0].Col), float64(p.Points[0].Row))
		for _, pt := range p.Points[1:] {
			canvas.LineTo(float64(pt.Col), float64(pt.Row))
		}
		canvas.ClosePath()
		canvas.Fill()
	}
}

func emitLines(canvas *svgwriter.Canvas, graph *vector.Graph, simplified [][]raster.Pixel, preThin, thinned *raster.Bitmap, strokeWindow int) {
	canvas.SetRGB(0, 0, 0)
	for i, line := range graph.Lines {
		pts := simplified[i]
		if len(pts) == 0 {
			continue
		}
		width := vector.SegmentStrokeWidth(preThin, thinned, line.Points[0], line.Points[len(line.Points)-1], strokeWindow)
		if len(pts) == 1 || (len(pts) == 2 && pts[0] == pts[1]) {
			canvas.FillRect(float64(pts[0].Col)-0.5, float64(pts[0].Row)-0.5, 1, 1)
			continue
		}
		canvas.SetStrokeWidth(width)
		canvas.MoveTo(float64(pts[0].Col), float64(pts[0].Row))
		for _, pt := range pts[1:] {
			canvas.LineTo(float64(pt.Col), float64(pt.Row))
		}
		canvas.Stroke()
	}
}

func dumpDebug(dir, name string, bin *raster.Bitmap) {
	if dir == "" {
		return
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return
	}
	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return
	}
	defer f.Close()
	_ = encodeDebugPNG(f, bin)
}
