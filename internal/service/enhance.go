package service

import (
	"bytes"
	"fmt"
	"image"

	"github.com/anthonynsimon/bild/adjust"
	"github.com/anthonynsimon/bild/effect"
	"github.com/disintegration/imaging"
)

// EnhanceService runs the local image filters: upscaling and outpainting
// canvas extension. No external provider is involved.
type EnhanceService struct{}

// NewEnhanceService creates a new EnhanceService
func NewEnhanceService() *EnhanceService {
	return &EnhanceService{}
}

// Upscale resizes the image by the given factor with Lanczos resampling,
// then sharpens and lifts contrast slightly to compensate for the
// interpolation softness. Factor is clamped to [1, 4].
func (s *EnhanceService) Upscale(data []byte, factor int) ([]byte, error) {
	if factor < 1 {
		factor = 2
	}
	if factor > 4 {
		factor = 4
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	resized := imaging.Resize(img, bounds.Dx()*factor, bounds.Dy()*factor, imaging.Lanczos)

	enhanced := effect.Sharpen(resized)
	final := adjust.Contrast(enhanced, 0.1)

	return encodePNG(final)
}

// Outpaint extends the canvas by padding pixels on every side. The
// original is pasted centered over a blurred, stretched copy of itself
// so the extended regions blend instead of showing hard borders.
func (s *EnhanceService) Outpaint(data []byte, padding int) ([]byte, error) {
	if padding <= 0 {
		padding = 128
	}
	if padding > 1024 {
		padding = 1024
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	newW := bounds.Dx() + 2*padding
	newH := bounds.Dy() + 2*padding

	background := imaging.Blur(imaging.Resize(img, newW, newH, imaging.Lanczos), 12)
	composed := imaging.PasteCenter(background, img)

	return encodePNG(composed)
}

func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	return buf.Bytes(), nil
}
