package thinning

import (
	"testing"

	"github.com/mvgraph/mapvec/internal/raster"
)

func TestThinPreservesThinLine(t *testing.T) {
	b := raster.NewBitmap(5, 5)
	for col := 0; col < 5; col++ {
		b.SetBlack(2, col, true)
	}
	out := Thin(b)
	for col := 0; col < 5; col++ {
		if !out.IsBlack(2, col) {
			t.Errorf("expected already-thin row to survive unchanged at col %d", col)
		}
	}
}

func TestThinReducesBlock(t *testing.T) {
	b := raster.NewBitmap(6, 6)
	for row := 1; row <= 4; row++ {
		for col := 1; col <= 4; col++ {
			b.SetBlack(row, col, true)
		}
	}
	out := Thin(b)
	before, after := 0, 0
	for row := 0; row < 6; row++ {
		for col := 0; col < 6; col++ {
			if b.IsBlack(row, col) {
				before++
			}
			if out.IsBlack(row, col) {
				after++
			}
		}
	}
	if after >= before {
		t.Errorf("expected thinning to reduce a solid block, before=%d after=%d", before, after)
	}
	if after == 0 {
		t.Errorf("thinning should not erase a connected region entirely")
	}
}

func TestThinDoesNotMutateInput(t *testing.T) {
	b := raster.NewBitmap(6, 6)
	for row := 1; row <= 4; row++ {
		for col := 1; col <= 4; col++ {
			b.SetBlack(row, col, true)
		}
	}
	snapshot := b.Clone()
	_ = Thin(b)
	for i := range b.Pix {
		if b.Pix[i] != snapshot.Pix[i] {
			t.Fatalf("Thin mutated its input bitmap")
		}
	}
}
