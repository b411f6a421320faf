package wad3

import (
	"fmt"
	"image"

	"github.com/disintegration/gift"
	"github.com/nfnt/resize"
)

// Tint scales each color channel of a resampled buffer. The identity tint is
// {1, 1, 1}.
type Tint struct {
	R, G, B float64
}

// IdentityTint leaves colors unchanged.
func IdentityTint() Tint {
	return Tint{R: 1, G: 1, B: 1}
}

// Sampler produces tinted, resized RGB buffers and resolves nearest palette
// entries. CPUSampler is the portable reference implementation; a
// hardware-accelerated resampler can satisfy the same interface.
type Sampler interface {
	// Resample scales img to width x height, applies the tint, and returns a
	// packed RGB buffer (3 bytes per pixel, top-to-bottom rows).
	Resample(img image.Image, tint Tint, width, height int) ([]byte, error)

	// NearestIndex returns the index of the palette entry closest to c.
	NearestIndex(c RGB, palette []RGB) int
}

// CPUSampler implements Sampler with bilinear resampling and a per-channel
// color filter.
type CPUSampler struct{}

// Resample scales the image with bilinear interpolation and multiplies each
// channel by the tint, clamping to [0, 1]. Alpha is dropped; callers that
// care about transparency rely on the palette sentinel instead.
func (CPUSampler) Resample(img image.Image, tint Tint, width, height int) ([]byte, error) {
	if img == nil {
		return nil, ErrNilImage
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}

	resized := resize.Resize(uint(width), uint(height), img, resize.Bilinear)

	g := gift.New(gift.ColorFunc(func(r0, g0, b0, a0 float32) (float32, float32, float32, float32) {
		return clampUnit(r0 * float32(tint.R)),
			clampUnit(g0 * float32(tint.G)),
			clampUnit(b0 * float32(tint.B)),
			a0
	}))
	tinted := image.NewNRGBA(g.Bounds(resized.Bounds()))
	g.Draw(tinted, resized)

	buf := make([]byte, width*height*3)
	i := 0
	for y := 0; y < height; y++ {
		row := tinted.Pix[y*tinted.Stride : y*tinted.Stride+width*4]
		for x := 0; x < width; x++ {
			buf[i] = row[x*4]
			buf[i+1] = row[x*4+1]
			buf[i+2] = row[x*4+2]
			i += 3
		}
	}

	return buf, nil
}

// NearestIndex matches by minimum squared RGB distance, ties to the lowest
// index.
func (CPUSampler) NearestIndex(c RGB, palette []RGB) int {
	return nearestIndex(c, palette)
}

func clampUnit(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
