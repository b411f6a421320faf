package wad3

import "fmt"

// Palettize maps a packed RGB buffer (3 bytes per pixel, top-to-bottom rows)
// to palette index bytes using the CPU nearest-color match.
//
// Destination row y is taken from source row height-1-y; the writer and
// reader share this vertical-flip convention so round-tripped textures
// display correctly.
func Palettize(rgb []byte, width, height int, palette []RGB) ([]byte, error) {
	return palettizeWith(CPUSampler{}, rgb, width, height, palette)
}

// palettizeWith maps one mip level through the sampler's nearest-index
// capability.
func palettizeWith(s Sampler, rgb []byte, width, height int, palette []RGB) ([]byte, error) {
	if len(palette) == 0 {
		return nil, ErrEmptyPalette
	}
	if width < 0 || height < 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	if len(rgb) != width*height*3 {
		return nil, fmt.Errorf("%w: %d bytes for %dx%d, want %d", ErrBufferSizeMismatch, len(rgb), width, height, width*height*3)
	}

	out := make([]byte, width*height)
	for y := 0; y < height; y++ {
		src := (height - 1 - y) * width
		dst := y * width
		for x := 0; x < width; x++ {
			o := (src + x) * 3
			out[dst+x] = byte(s.NearestIndex(RGB{rgb[o], rgb[o+1], rgb[o+2]}, palette))
		}
	}

	return out, nil
}

// nearestIndex finds the palette entry with minimum squared RGB distance to
// c, breaking ties by lowest index.
func nearestIndex(c RGB, palette []RGB) int {
	best := 0
	bestDist := 1 << 30
	for i, p := range palette {
		dr := int(c.R) - int(p.R)
		dg := int(c.G) - int(p.G)
		db := int(c.B) - int(p.B)
		d := dr*dr + dg*dg + db*db
		if d < bestDist {
			best, bestDist = i, d
		}
	}

	return best
}
