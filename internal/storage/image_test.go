package storage_test

import (
	"bytes"
	"image"
	"image/color"
	"image/gif"
	"image/png"
	"testing"

	"github.com/alex/dev-tools-portal/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFitWithin(t *testing.T) {
	tests := []struct {
		name       string
		w, h       int
		maxW, maxH int
		wantW      int
		wantH      int
	}{
		{name: "already fits", w: 100, h: 50, maxW: 200, maxH: 200, wantW: 100, wantH: 50},
		{name: "exact fit", w: 200, h: 200, maxW: 200, maxH: 200, wantW: 200, wantH: 200},
		{name: "wide image bound by width", w: 1000, h: 500, maxW: 200, maxH: 200, wantW: 200, wantH: 100},
		{name: "tall image bound by height", w: 500, h: 1000, maxW: 200, maxH: 200, wantW: 100, wantH: 200},
		{name: "square into rectangle", w: 600, h: 600, maxW: 300, maxH: 150, wantW: 150, wantH: 150},
		{name: "rounding", w: 3, h: 1000, maxW: 500, maxH: 500, wantW: 2, wantH: 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := storage.FitWithin(tt.w, tt.h, tt.maxW, tt.maxH)
			assert.Equal(t, tt.wantW, w)
			assert.Equal(t, tt.wantH, h)
		})
	}
}

func encodePNG(t *testing.T, width, height int, fill color.Color) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, fill)
		}
	}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func encodeGIF(t *testing.T, width, height, frames int) []byte {
	t.Helper()

	palette := color.Palette{color.White, color.Black}
	out := &gif.GIF{Config: image.Config{Width: width, Height: height}}
	for i := 0; i < frames; i++ {
		frame := image.NewPaletted(image.Rect(0, 0, width, height), palette)
		out.Image = append(out.Image, frame)
		out.Delay = append(out.Delay, 10)
		out.Disposal = append(out.Disposal, gif.DisposalNone)
	}

	var buf bytes.Buffer
	require.NoError(t, gif.EncodeAll(&buf, out))
	return buf.Bytes()
}

func TestResizeImage_PNGBecomesJPEG(t *testing.T) {
	data := encodePNG(t, 800, 400, color.RGBA{R: 200, G: 10, B: 10, A: 255})

	resized, err := storage.ResizeImage(data, 200, 200, storage.ResizeOptions{})
	require.NoError(t, err)

	cfg, format, err := image.DecodeConfig(bytes.NewReader(resized))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
	assert.Equal(t, 200, cfg.Width)
	assert.Equal(t, 100, cfg.Height)
}

func TestResizeImage_SmallImageStillFlattened(t *testing.T) {
	// No shrinking needed, but the output is normalized to JPEG regardless
	data := encodePNG(t, 50, 50, color.White)

	resized, err := storage.ResizeImage(data, 200, 200, storage.ResizeOptions{})
	require.NoError(t, err)

	cfg, format, err := image.DecodeConfig(bytes.NewReader(resized))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
	assert.Equal(t, 50, cfg.Width)
	assert.Equal(t, 50, cfg.Height)
}

func TestResizeImage_GIFStaysGIF(t *testing.T) {
	data := encodeGIF(t, 400, 400, 3)

	resized, err := storage.ResizeImage(data, 100, 100, storage.ResizeOptions{})
	require.NoError(t, err)

	out, err := gif.DecodeAll(bytes.NewReader(resized))
	require.NoError(t, err)
	assert.Equal(t, 100, out.Config.Width)
	assert.Equal(t, 100, out.Config.Height)
	// Animation survives: same frame count and delays
	assert.Len(t, out.Image, 3)
	assert.Equal(t, []int{10, 10, 10}, out.Delay)
}

func TestResizeImage_GIFAlreadyFitsIsPassedThrough(t *testing.T) {
	data := encodeGIF(t, 80, 60, 2)

	resized, err := storage.ResizeImage(data, 100, 100, storage.ResizeOptions{})
	require.NoError(t, err)
	assert.Equal(t, data, resized)
}

func TestResizeImage_RejectsGarbage(t *testing.T) {
	_, err := storage.ResizeImage([]byte("not an image"), 100, 100, storage.ResizeOptions{})
	assert.Error(t, err)
}
