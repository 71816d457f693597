package colorpoly

import (
	"testing"

	"github.com/mvgraph/mapvec/internal/raster"
)

func TestRecoverDisabledReturnsNil(t *testing.T) {
	src := raster.NewColorBitmap(4, 4)
	polys, err := Recover(src, Params{Enabled: false})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if polys != nil {
		t.Fatalf("expected nil polygons when disabled, got %v", polys)
	}
}

func TestRecoverFindsUniformRegion(t *testing.T) {
	src := raster.NewColorBitmap(10, 10)
	for row := 0; row < 10; row++ {
		for col := 0; col < 10; col++ {
			src.Set(row, col, 40, 180, 60) // a saturated green block
		}
	}
	p := DefaultParams()
	p.Enabled = true
	polys, err := Recover(src, p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(polys) == 0 {
		t.Fatalf("expected at least one recovered polygon for a uniform color block")
	}
}
