package wad3

import (
	"fmt"
	"sort"
)

// placeholderGray pads palette slots left unused by the quantizer.
var placeholderGray = RGB{128, 128, 128}

// colorBucket is transient working state of one quantization call: the
// distinct colors of a region of color space with their pixel counts.
type colorBucket struct {
	counts map[RGB]int
}

type rgbChannel int

const (
	channelR rgbChannel = iota
	channelG
	channelB
)

// Quantize reduces a pixel buffer to a palette of exactly targetSize colors
// using median-cut over the distinct input colors. targetSize must be in
// [2, 256].
//
// The final palette slot is reserved for a transparency sentinel: the cut
// runs against a budget of targetSize-1 buckets and the caller overwrites the
// last slot. Slots beyond the produced buckets are padded with a fixed gray
// placeholder, so the result always has exactly targetSize entries.
//
// The partition is irregular and order dependent rather than a balanced
// binary tree: each pass scans buckets left to right and stops early once a
// further split would exceed the bucket budget.
func Quantize(pixels []RGB, targetSize int) ([]RGB, error) {
	if targetSize < 2 || targetSize > PaletteSize {
		return nil, fmt.Errorf("%w: %d", ErrInvalidTargetSize, targetSize)
	}
	if len(pixels) == 0 {
		return nil, ErrNoPixels
	}

	root := &colorBucket{counts: make(map[RGB]int)}
	for _, p := range pixels {
		root.counts[p]++
	}

	effective := targetSize - 1

	buckets := []*colorBucket{root}
	for i := 0; i < effective && len(buckets) < effective; i++ {
		split := splitPass(buckets, effective)
		if len(split) == len(buckets) {
			break
		}
		buckets = split
	}

	palette := make([]RGB, 0, targetSize)
	for _, b := range buckets {
		palette = append(palette, b.average())
	}
	for len(palette) < targetSize {
		palette = append(palette, placeholderGray)
	}

	return palette, nil
}

// splitPass runs one left-to-right scan over the buckets, splitting each one
// whose widest channel has nonzero range. The scan stops early as soon as
// splitting would push the total bucket count past limit; the remaining
// buckets pass through unchanged.
func splitPass(buckets []*colorBucket, limit int) []*colorBucket {
	next := make([]*colorBucket, 0, len(buckets)+1)
	for i, b := range buckets {
		// Total after this split counts the buckets not yet scanned.
		if len(next)+2+(len(buckets)-i-1) > limit {
			next = append(next, buckets[i:]...)
			break
		}

		channel, spread := b.widestChannel()
		if spread == 0 {
			next = append(next, b)
			continue
		}

		lo, hi := b.split(channel)
		next = append(next, lo, hi)
	}

	return next
}

// widestChannel finds the channel with the largest value range across the
// bucket's distinct colors (not weighted by pixel count). Ties prefer red,
// then green, else blue.
func (b *colorBucket) widestChannel() (rgbChannel, int) {
	minC := RGB{255, 255, 255}
	var maxC RGB
	for c := range b.counts {
		minC.R = min(minC.R, c.R)
		minC.G = min(minC.G, c.G)
		minC.B = min(minC.B, c.B)
		maxC.R = max(maxC.R, c.R)
		maxC.G = max(maxC.G, c.G)
		maxC.B = max(maxC.B, c.B)
	}

	r := int(maxC.R) - int(minC.R)
	g := int(maxC.G) - int(minC.G)
	bl := int(maxC.B) - int(minC.B)

	switch {
	case r >= g && r >= bl:
		return channelR, r
	case g >= bl:
		return channelG, g
	default:
		return channelB, bl
	}
}

// split sorts the bucket's distinct colors along the given channel and cuts
// the list at its midpoint by distinct-color count, not cumulative pixel
// weight.
func (b *colorBucket) split(channel rgbChannel) (*colorBucket, *colorBucket) {
	colors := make([]RGB, 0, len(b.counts))
	for c := range b.counts {
		colors = append(colors, c)
	}

	sort.Slice(colors, func(i, j int) bool {
		vi, vj := colors[i].channel(channel), colors[j].channel(channel)
		if vi != vj {
			return vi < vj
		}
		// Full-color order keeps the cut deterministic across map iteration.
		return colors[i].packed() < colors[j].packed()
	})

	mid := len(colors) / 2

	return bucketOf(colors[:mid], b.counts), bucketOf(colors[mid:], b.counts)
}

// average is the bucket's representative color: the pixel-count-weighted
// mean of its member colors.
func (b *colorBucket) average() RGB {
	var r, g, bl, n uint64
	for c, count := range b.counts {
		r += uint64(c.R) * uint64(count)
		g += uint64(c.G) * uint64(count)
		bl += uint64(c.B) * uint64(count)
		n += uint64(count)
	}
	if n == 0 {
		return placeholderGray
	}

	return RGB{uint8(r / n), uint8(g / n), uint8(bl / n)}
}

func bucketOf(colors []RGB, counts map[RGB]int) *colorBucket {
	b := &colorBucket{counts: make(map[RGB]int, len(colors))}
	for _, c := range colors {
		b.counts[c] = counts[c]
	}
	return b
}

func (c RGB) channel(ch rgbChannel) uint8 {
	switch ch {
	case channelR:
		return c.R
	case channelG:
		return c.G
	default:
		return c.B
	}
}

func (c RGB) packed() uint32 {
	return uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}
