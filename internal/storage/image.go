package storage

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	_ "image/jpeg"
	_ "image/png"
	"math"

	"github.com/disintegration/imaging"
)

type ResizeOptions struct {
	// Background fills behind transparent pixels when flattening; white when nil.
	Background color.Color
}

// FitWithin returns dimensions that fit inside maxWidth x maxHeight while
// preserving aspect ratio. Images already inside the box keep their size.
func FitWithin(width, height, maxWidth, maxHeight int) (int, int) {
	if width <= maxWidth && height <= maxHeight {
		return width, height
	}

	if width*maxHeight > height*maxWidth {
		return maxWidth, int(math.Round(float64(maxWidth) * float64(height) / float64(width)))
	}
	return int(math.Round(float64(maxHeight) * float64(width) / float64(height))), maxHeight
}

// ResizeImage shrinks an image to fit maxWidth x maxHeight. GIFs stay GIFs
// with every frame resized; everything else is flattened onto the background
// color and re-encoded as JPEG at quality 90.
func ResizeImage(data []byte, maxWidth, maxHeight int, opts ResizeOptions) ([]byte, error) {
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	if format == "gif" {
		return resizeGIF(data, maxWidth, maxHeight)
	}

	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	resized := imaging.Fit(img, maxWidth, maxHeight, imaging.Lanczos)

	background := opts.Background
	if background == nil {
		background = color.White
	}
	flattened := imaging.New(resized.Bounds().Dx(), resized.Bounds().Dy(), background)
	flattened = imaging.Overlay(flattened, resized, image.Point{}, 1.0)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, flattened, imaging.JPEG, imaging.JPEGQuality(90)); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}

func resizeGIF(data []byte, maxWidth, maxHeight int) ([]byte, error) {
	src, err := gif.DecodeAll(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode gif: %w", err)
	}

	width, height := src.Config.Width, src.Config.Height
	targetWidth, targetHeight := FitWithin(width, height, maxWidth, maxHeight)
	if targetWidth == width && targetHeight == height {
		return data, nil
	}

	out := &gif.GIF{
		LoopCount: src.LoopCount,
		Delay:     src.Delay,
		Disposal:  src.Disposal,
		Config: image.Config{
			ColorModel: src.Config.ColorModel,
			Width:      targetWidth,
			Height:     targetHeight,
		},
	}

	for _, frame := range src.Image {
		resized := imaging.Resize(frame, targetWidth, targetHeight, imaging.NearestNeighbor)
		paletted := image.NewPaletted(image.Rect(0, 0, targetWidth, targetHeight), frame.Palette)
		draw.Draw(paletted, paletted.Bounds(), resized, image.Point{}, draw.Src)
		out.Image = append(out.Image, paletted)
	}

	var buf bytes.Buffer
	if err := gif.EncodeAll(&buf, out); err != nil {
		return nil, fmt.Errorf("encode gif: %w", err)
	}
	return buf.Bytes(), nil
}
