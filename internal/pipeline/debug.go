package pipeline

import (
	"image"
	"image/color"
	"image/png"
	"io"

	"github.com/mvgraph/mapvec/internal/raster"
)

// encodeDebugPNG renders a binary raster as a grayscale PNG for
// --debug-dir inspection, replacing the reference tool's OpenCV preview
// windows with plain image files that work the same in a headless CI run.
func encodeDebugPNG(w io.Writer, bin *raster.Bitmap) error {
	img := image.NewGray(image.Rect(0, 0, bin.Width, bin.Height))
	for row := 0; row < bin.Height; row++ {
		for col := 0; col < bin.Width; col++ {
			v := color.Gray{Y: 255}
			if bin.IsBlack(row, col) {
				v = color.Gray{Y: 0}
			}
			img.SetGray(col, row, v)
		}
	}
	return png.Encode(w, img)
}
