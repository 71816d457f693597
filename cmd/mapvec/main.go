// Command mapvec converts a scanned map raster into an SVG vector
// drawing: it thresholds the scan to a black/white layer, discards small
// noise components and detected text labels, thins the remaining strokes
// to a skeleton, extracts and simplifies the resulting polylines, and
// emits them (plus optional recovered colour polygons) as SVG.
package main

import (
	"fmt"
	"image"
	"os"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"

	"github.com/mvgraph/mapvec/internal/config"
	"github.com/mvgraph/mapvec/internal/errs"
	"github.com/mvgraph/mapvec/internal/pipeline"
)

func main() {
	if len(os.Args) > 1 && os.Args[1] == "version" {
		runVersion(os.Args[2:])
		return
	}

	cfg, err := config.Parse(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "mapvec: %s\n", err)
		fmt.Fprintf(os.Stderr, "usage: mapvec -o out.svg [flags] input-image\n")
		os.Exit(1)
	}

	if err := run(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "mapvec: %s\n", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	f, err := os.Open(cfg.InputPath)
	if err != nil {
		return fmt.Errorf("%w: %s", errs.ErrInputNotFound, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return fmt.Errorf("%w: %s", errs.ErrUnsupportedFormat, err)
	}

	res, err := pipeline.Run(img, cfg)
	if err != nil {
		return err
	}

	out, err := os.Create(cfg.OutputPath)
	if err != nil {
		return fmt.Errorf("cant open output %s: %w", cfg.OutputPath, err)
	}
	defer out.Close()

	if _, err := out.Write(res.SVG); err != nil {
		return fmt.Errorf("cant write output %s: %w", cfg.OutputPath, err)
	}

	fmt.Printf("%s: %d components (%d text), %d lines, %d colour polygons -> %s\n",
		cfg.InputPath, res.ComponentCount, res.TextComponents, res.LineCount, res.ColorPolygons, cfg.OutputPath)
	return nil
}
