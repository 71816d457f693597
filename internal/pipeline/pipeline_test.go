package pipeline

import (
	"bytes"
	"image"
	"image/color"
	"testing"

	"github.com/mvgraph/mapvec/internal/config"
)

func diagonalImage(n int) image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, n, n))
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			img.Set(x, y, color.NRGBA{255, 255, 255, 255})
		}
	}
	for i := 0; i < n; i++ {
		img.Set(i, i, color.NRGBA{0, 0, 0, 255})
	}
	return img
}

func baseConfig() *config.Config {
	cfg, err := config.Parse([]string{"-o", "out.svg", "in.png"})
	if err != nil {
		panic(err)
	}
	return cfg
}

func TestRunDiagonalLineProducesSVG(t *testing.T) {
	cfg := baseConfig()
	res, err := Run(diagonalImage(5), cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.Contains(res.SVG, []byte("<svg")) {
		t.Fatalf("expected an SVG document, got: %s", res.SVG)
	}
	if res.LineCount == 0 {
		t.Errorf("expected at least one extracted line")
	}
}

func TestRunEmptyImageProducesEmptySVG(t *testing.T) {
	cfg := baseConfig()
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.Set(x, y, color.NRGBA{255, 255, 255, 255})
		}
	}
	res, err := Run(img, cfg)
	if err != nil {
		t.Fatalf("an all-white image should succeed with an empty SVG, got error: %v", err)
	}
	if !bytes.Contains(res.SVG, []byte("<svg")) {
		t.Fatalf("expected an SVG document, got: %s", res.SVG)
	}
	if res.LineCount != 0 || res.ComponentCount != 0 {
		t.Errorf("expected no components or lines, got %d components, %d lines", res.ComponentCount, res.LineCount)
	}
}
