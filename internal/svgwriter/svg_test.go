package svgwriter

import (
	"bytes"
	"testing"
)

func TestCanvasStrokedLine(t *testing.T) {
	c := NewCanvas(10, 10)
	c.SetRGB(0, 0, 0)
	c.SetStrokeWidth(1)
	c.MoveTo(0, 0)
	c.LineTo(4, 4)
	c.Stroke()
	out := c.Bytes()
	if !bytes.Contains(out, []byte(`stroke="#000000"`)) {
		t.Errorf("expected stroke color in output: %s", out)
	}
	if !bytes.Contains(out, []byte(`M0 0 L4 4`)) {
		t.Errorf("expected path data in output: %s", out)
	}
}

func TestCanvasSinglePixelRect(t *testing.T) {
	c := NewCanvas(10, 10)
	c.SetRGB(0, 0, 0)
	c.FillRect(2-0.5, 3-0.5, 1, 1)
	out := c.Bytes()
	if !bytes.Contains(out, []byte(`x="1.5" y="2.5" width="1" height="1"`)) {
		t.Errorf("expected offset 1x1 rect in output: %s", out)
	}
}

func TestCanvasFillThenStrokeOrder(t *testing.T) {
	c := NewCanvas(10, 10)
	c.SetRGB(100, 100, 100)
	c.MoveTo(0, 0)
	c.LineTo(1, 1)
	c.ClosePath()
	c.Fill()
	c.SetRGB(0, 0, 0)
	c.MoveTo(0, 0)
	c.LineTo(5, 5)
	c.Stroke()
	out := c.Bytes()
	fillIdx := bytes.Index(out, []byte(`fill="#646464"`))
	strokeIdx := bytes.Index(out, []byte(`stroke="#000000"`))
	if fillIdx == -1 || strokeIdx == -1 || fillIdx > strokeIdx {
		t.Errorf("expected fill element before stroke element, got: %s", out)
	}
}
