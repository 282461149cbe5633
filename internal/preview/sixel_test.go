package preview

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func checker(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if (x/4+y/4)%2 == 0 {
				img.Set(x, y, color.RGBA{0xff, 0x3d, 0x3d, 0xff})
			} else {
				img.Set(x, y, color.Black)
			}
		}
	}
	return img
}

func TestScale(t *testing.T) {
	tests := []struct {
		name         string
		w, h, width  int
		wantW, wantH int
	}{
		{"shrinks keeping aspect", 200, 100, 50, 50, 25},
		{"narrow image untouched", 40, 30, 100, 40, 30},
		{"zero width untouched", 40, 30, 0, 40, 30},
		{"never zero height", 400, 1, 10, 10, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := Scale(checker(tt.w, tt.h), tt.width).Bounds()
			assert.Equal(t, tt.wantW, b.Dx())
			assert.Equal(t, tt.wantH, b.Dy())
		})
	}
}

func TestWritePNG(t *testing.T) {
	var encoded bytes.Buffer
	require.NoError(t, png.Encode(&encoded, checker(64, 32)))

	var out bytes.Buffer
	require.NoError(t, WritePNG(&out, encoded.Bytes(), 32))

	// DCS introducer and string terminator
	assert.Contains(t, out.String(), "\x1bP")
	assert.Contains(t, out.String(), "\x1b\\")
}

func TestWritePNGRejectsGarbage(t *testing.T) {
	var out bytes.Buffer
	assert.Error(t, WritePNG(&out, []byte("not a png"), 32))
	assert.Zero(t, out.Len())
}
