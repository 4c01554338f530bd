package imageprocessor

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	"image/png"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// Processor downscales oversized raster images
type Processor struct {
	quality      int // JPEG quality (1-100)
	maxDimension int
}

func NewProcessor(quality, maxDimension int) *Processor {
	if quality <= 0 || quality > 100 {
		quality = 85
	}
	if maxDimension <= 0 {
		maxDimension = 1024
	}
	return &Processor{
		quality:      quality,
		maxDimension: maxDimension,
	}
}

// Fit shrinks jpeg and png images whose longest side exceeds the configured maximum.
// Other formats, and images already within bounds, are returned unchanged with resized=false.
func (p *Processor) Fit(data []byte) (out []byte, resized bool, err error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, false, fmt.Errorf("failed to decode image header: %w", err)
	}
	if format != "jpeg" && format != "png" {
		return data, false, nil
	}
	if cfg.Width <= p.maxDimension && cfg.Height <= p.maxDimension {
		return data, false, nil
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, false, fmt.Errorf("failed to decode image: %w", err)
	}
	scaled := p.resize(img, p.maxDimension, p.maxDimension)

	var buf bytes.Buffer
	switch format {
	case "jpeg":
		if err := jpeg.Encode(&buf, scaled, &jpeg.Options{Quality: p.quality}); err != nil {
			return nil, false, fmt.Errorf("failed to encode JPEG: %w", err)
		}
	case "png":
		if err := png.Encode(&buf, scaled); err != nil {
			return nil, false, fmt.Errorf("failed to encode PNG: %w", err)
		}
	}
	return buf.Bytes(), true, nil
}

// resize resizes an image maintaining aspect ratio
func (p *Processor) resize(img image.Image, maxWidth, maxHeight int) image.Image {
	bounds := img.Bounds()
	ratio := float64(bounds.Dx()) / float64(bounds.Dy())

	newWidth := maxWidth
	newHeight := maxHeight
	if float64(maxWidth)/float64(maxHeight) > ratio {
		newWidth = int(float64(maxHeight) * ratio)
	} else {
		newHeight = int(float64(maxWidth) / ratio)
	}
	if newWidth < 1 {
		newWidth = 1
	}
	if newHeight < 1 {
		newHeight = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, newWidth, newHeight))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
	return dst
}

// Dimensions returns the width and height without decoding pixel data
func Dimensions(data []byte) (width, height int, err error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return 0, 0, fmt.Errorf("failed to decode image: %w", err)
	}
	return cfg.Width, cfg.Height, nil
}
