// Package preview shows rendered plans inline in sixel capable terminals.
package preview

import (
	"bytes"
	"fmt"
	"image"
	"image/color/palette"
	"image/draw"
	"image/png"
	"io"

	"github.com/BourgeoisBear/rasterm"
	xdraw "golang.org/x/image/draw"
)

// Scale resizes img to the given pixel width, keeping the aspect ratio.
// Images already narrower than width are returned unchanged.
func Scale(img image.Image, width int) image.Image {
	bounds := img.Bounds()
	if width <= 0 || bounds.Dx() <= width {
		return img
	}
	height := max(bounds.Dy()*width/bounds.Dx(), 1)

	scaled := image.NewRGBA(image.Rect(0, 0, width, height))
	xdraw.BiLinear.Scale(scaled, scaled.Bounds(), img, bounds, xdraw.Over, nil)
	return scaled
}

// WriteSixel dithers img to the Plan9 palette and writes it as sixel data.
func WriteSixel(w io.Writer, img image.Image, width int) error {
	img = Scale(img, width)
	bounds := img.Bounds()

	paletted := image.NewPaletted(bounds, palette.Plan9)
	draw.FloydSteinberg.Draw(paletted, bounds, img, bounds.Min)

	if err := rasterm.SixelWriteImage(w, paletted); err != nil {
		return fmt.Errorf("failed to encode sixel: %w", err)
	}
	return nil
}

// WritePNG decodes a PNG and writes it as sixel data.
func WritePNG(w io.Writer, data []byte, width int) error {
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to decode PNG: %w", err)
	}
	return WriteSixel(w, img, width)
}
