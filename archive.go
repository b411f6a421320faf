package wad3

import (
	"fmt"
	"image"
)

// TransparentColor is the palette sentinel marking transparent pixels. A
// palette entry equal to this color decodes to alpha 0. GoldSrc convention
// uses magic blue.
var TransparentColor = RGB{B: 255}

// TextureSource describes one texture to build into an archive. A zero Tint
// is treated as the identity; zero Width/Height fall back to the image
// bounds. The format convention expects dimensions that are multiples of 16,
// but this is not enforced.
type TextureSource struct {
	Name   string
	Image  image.Image
	Tint   Tint
	Width  int
	Height int
}

// BuildOptions configures archive building. Nil options use the CPU sampler
// and a full 256-color palette.
type BuildOptions struct {
	// Sampler supplies resampling and nearest-color matching.
	Sampler Sampler
	// TargetColors is the palette budget including the reserved sentinel
	// slot. Zero means 256.
	TargetColors int
}

// DecodedTexture is one archive texture expanded back to full color.
type DecodedTexture struct {
	Name    string
	Width   int
	Height  int
	Image   *image.NRGBA
	Palette Palette
}

// BuildArchive quantizes and palettizes each source into a mip texture lump
// and returns the composed archive, ready for Serialize.
func BuildArchive(name string, sources []TextureSource) (*Archive, error) {
	return BuildArchiveWithOptions(name, sources, nil)
}

// BuildArchiveWithOptions builds an archive with the given options. Nil opts
// uses defaults.
func BuildArchiveWithOptions(name string, sources []TextureSource, opts *BuildOptions) (*Archive, error) {
	sampler := Sampler(CPUSampler{})
	targetColors := PaletteSize
	if opts != nil {
		if opts.Sampler != nil {
			sampler = opts.Sampler
		}
		if opts.TargetColors != 0 {
			targetColors = opts.TargetColors
		}
	}

	archive := &Archive{Name: name, Entries: make([]*Entry, 0, len(sources))}
	for i, src := range sources {
		tex, err := buildTexture(sampler, src, targetColors)
		if err != nil {
			return nil, fmt.Errorf("texture %d %q: %w", i, src.Name, err)
		}

		archive.Entries = append(archive.Entries, &Entry{
			Name:    tex.Name,
			Type:    LumpTypeMip,
			Texture: tex,
		})
	}

	return archive, nil
}

// buildTexture resamples one source at all four mip resolutions, quantizes
// the base level to a palette, and maps every level to palette indices.
func buildTexture(sampler Sampler, src TextureSource, targetColors int) (*MipTexture, error) {
	if src.Image == nil {
		return nil, ErrNilImage
	}

	width, height := src.Width, src.Height
	if width == 0 && height == 0 {
		bounds := src.Image.Bounds()
		width, height = bounds.Dx(), bounds.Dy()
	}
	if width <= 0 || height <= 0 || width > maxTextureDim || height > maxTextureDim {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}

	tint := src.Tint
	if tint == (Tint{}) {
		tint = IdentityTint()
	}

	base, err := sampler.Resample(src.Image, tint, width, height)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrResample, err)
	}

	pixels := make([]RGB, width*height)
	for i := range pixels {
		pixels[i] = RGB{base[i*3], base[i*3+1], base[i*3+2]}
	}

	colors, err := Quantize(pixels, targetColors)
	if err != nil {
		return nil, err
	}

	w32, err := u32FromInt(width)
	if err != nil {
		return nil, err
	}
	h32, err := u32FromInt(height)
	if err != nil {
		return nil, err
	}

	tex := &MipTexture{Name: truncateName(src.Name), Width: w32, Height: h32}
	for i, c := range colors {
		tex.Palette[i] = c
	}
	for i := len(colors); i < PaletteSize; i++ {
		tex.Palette[i] = placeholderGray
	}
	tex.Palette[PaletteSize-1] = TransparentColor

	// Opaque pixels match against the first 255 slots only, so nothing maps
	// onto the reserved transparency index.
	opaque := tex.Palette[:PaletteSize-1]

	for k := 0; k < MipLevels; k++ {
		mipW := mipDimension(width, k)
		mipH := mipDimension(height, k)
		if mipW == 0 || mipH == 0 {
			tex.Mips[k] = []byte{}
			continue
		}

		buf := base
		if k > 0 {
			if buf, err = sampler.Resample(src.Image, tint, mipW, mipH); err != nil {
				return nil, fmt.Errorf("%w: level %d: %v", ErrResample, k, err)
			}
		}

		indices, err := palettizeWith(sampler, buf, mipW, mipH, opaque)
		if err != nil {
			return nil, err
		}
		tex.Mips[k] = indices
	}

	return tex, nil
}

// DecodeArchive expands every texture lump back to RGBA through its stored
// palette. Pixels indexing a palette entry equal to TransparentColor decode
// with alpha 0. Opaque (compressed or unknown-type) lumps are skipped.
func DecodeArchive(archive *Archive) ([]DecodedTexture, error) {
	decoded := make([]DecodedTexture, 0, len(archive.Entries))
	for i, entry := range archive.Entries {
		if entry.Texture == nil {
			continue
		}

		img, err := expandTexture(entry.Texture)
		if err != nil {
			return nil, fmt.Errorf("lump %d %q: %w", i, entry.Name, err)
		}

		decoded = append(decoded, DecodedTexture{
			Name:    entry.Texture.Name,
			Width:   int(entry.Texture.Width),
			Height:  int(entry.Texture.Height),
			Image:   img,
			Palette: entry.Texture.Palette,
		})
	}

	return decoded, nil
}

// expandTexture converts a texture's base mip level to NRGBA, undoing the
// palettizer's vertical flip and substituting the transparency sentinel
// before any consumer sees the pixels.
func expandTexture(t *MipTexture) (*image.NRGBA, error) {
	width, height := int(t.Width), int(t.Height)
	if want := width * height; len(t.Mips[0]) != want {
		return nil, fmt.Errorf("%w: level 0 has %d bytes, want %d", ErrMipSizeMismatch, len(t.Mips[0]), want)
	}

	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		src := (height - 1 - y) * width
		for x := 0; x < width; x++ {
			c := t.Palette[t.Mips[0][src+x]]
			o := img.PixOffset(x, y)
			img.Pix[o] = c.R
			img.Pix[o+1] = c.G
			img.Pix[o+2] = c.B
			if c == TransparentColor {
				img.Pix[o+3] = 0
			} else {
				img.Pix[o+3] = 255
			}
		}
	}

	return img, nil
}
