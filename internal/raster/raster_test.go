package raster

import "testing"

func TestBlackLayerThreshold(t *testing.T) {
	src := NewColorBitmap(3, 1)
	src.Set(0, 0, 10, 10, 10)   // black
	src.Set(0, 1, 200, 200, 200) // white
	src.Set(0, 2, 180, 180, 180) // boundary: black (<=)

	bin, err := BlackLayer(src, DefaultThreshold)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bin.IsBlack(0, 0) {
		t.Errorf("expected (0,0) black")
	}
	if bin.IsBlack(0, 1) {
		t.Errorf("expected (0,1) white")
	}
	if !bin.IsBlack(0, 2) {
		t.Errorf("expected (0,2) black at boundary threshold")
	}
}

func TestBitmapValidate(t *testing.T) {
	b := NewBitmap(2, 2)
	if err := b.Validate(); err != nil {
		t.Fatalf("freshly constructed bitmap should validate: %v", err)
	}
	b.Pix[0] = 128
	if err := b.Validate(); err == nil {
		t.Fatalf("expected validation error for non-binary sample")
	}
}

func TestAdaptiveBlackLayerFindsInkOnUnevenBackground(t *testing.T) {
	// a 9x1 strip fading from white to mid-gray background, with one dark
	// ink pixel sitting in the brighter half; a fixed global threshold at
	// DefaultThreshold would also mark the dimmest background pixel (175)
	// black, while the local mean separates ink from background.
	src := NewColorBitmap(9, 1)
	for x := 0; x < 9; x++ {
		bg := uint8(255 - x*10)
		src.Set(0, x, bg, bg, bg)
	}
	src.Set(0, 2, 150, 150, 150) // ink: well below its local background of ~235

	bin, err := AdaptiveBlackLayer(src, 5, 20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bin.IsBlack(0, 2) {
		t.Errorf("expected local ink pixel to be classified black")
	}
	if bin.IsBlack(0, 0) {
		t.Errorf("expected smooth background pixel to stay white")
	}
}

func TestBitmapClone(t *testing.T) {
	b := NewBitmap(2, 2)
	b.SetBlack(0, 0, true)
	c := b.Clone()
	c.SetBlack(0, 0, false)
	if !b.IsBlack(0, 0) {
		t.Fatalf("clone mutation leaked into original")
	}
}
