package storage

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// ContentType of every object the uploader writes.
const ContentType = "image/jpeg"

// DefaultMaxPixels bounds the decoded size of one input image (about 100MB as RGBA).
const DefaultMaxPixels = 25_000_000

var (
	ErrUndecodableImage = errors.New("image format not recognised")
	ErrImageTooLarge    = errors.New("image dimensions exceed the pixel limit")
)

// Compress decodes any registered image format, fits it inside a
// maxDim x maxDim box without upscaling and re-encodes it as JPEG.
// Transparent areas are flattened onto white. Inputs whose header declares
// more than maxPixels pixels (<=0 means DefaultMaxPixels) are refused
// before any pixel data is allocated.
func Compress(raw []byte, maxDim, quality, maxPixels int) ([]byte, error) {
	if maxPixels <= 0 {
		maxPixels = DefaultMaxPixels
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUndecodableImage, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 || int64(cfg.Width)*int64(cfg.Height) > int64(maxPixels) {
		return nil, fmt.Errorf("%w: %dx%d", ErrImageTooLarge, cfg.Width, cfg.Height)
	}

	src, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUndecodableImage, err)
	}

	w, h := fitWithin(src.Bounds().Dx(), src.Bounds().Dy(), maxDim)
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	if w == src.Bounds().Dx() && h == src.Bounds().Dy() {
		draw.Draw(dst, dst.Bounds(), src, src.Bounds().Min, draw.Over)
	} else {
		draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}

// fitWithin scales (w, h) down to fit a box x box square, keeping the aspect
// ratio. Sizes already inside the box are returned unchanged.
func fitWithin(w, h, box int) (int, int) {
	if box <= 0 || (w <= box && h <= box) {
		return w, h
	}
	if w >= h {
		nh := h * box / w
		if nh < 1 {
			nh = 1
		}
		return box, nh
	}
	nw := w * box / h
	if nw < 1 {
		nw = 1
	}
	return nw, box
}
