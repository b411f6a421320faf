package wad3

import (
	"errors"
	"image/color"
	"testing"
)

func TestBuildArchiveSolidRedEndToEnd(t *testing.T) {
	t.Parallel()

	img := solidImage(color.NRGBA{R: 255, A: 255}, 32, 32)

	archive, err := BuildArchive("export", []TextureSource{
		{Name: "red", Image: img, Tint: IdentityTint(), Width: 32, Height: 32},
	})
	if err != nil {
		t.Fatalf("BuildArchive: %v", err)
	}

	data, err := Serialize(archive)
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	parsed, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	tex := parsed.Entries[0].Texture
	if tex == nil {
		t.Fatalf("expected a decoded texture lump")
	}

	slot := tex.Mips[0][0]
	for k := 0; k < MipLevels; k++ {
		for i, idx := range tex.Mips[k] {
			if idx != slot {
				t.Fatalf("level %d index %d: got slot %d, want %d", k, i, idx, slot)
			}
		}
	}
	if tex.Palette[slot] != (RGB{R: 255}) {
		t.Fatalf("palette slot %d: got %+v, want pure red", slot, tex.Palette[slot])
	}

	decoded, err := DecodeArchive(parsed)
	if err != nil {
		t.Fatalf("DecodeArchive: %v", err)
	}
	if len(decoded) != 1 {
		t.Fatalf("decoded count: got %d, want 1", len(decoded))
	}

	out := decoded[0].Image
	for y := 0; y < 32; y++ {
		for x := 0; x < 32; x++ {
			got := out.NRGBAAt(x, y)
			if got != (color.NRGBA{R: 255, A: 255}) {
				t.Fatalf("pixel (%d,%d): got %+v, want opaque red", x, y, got)
			}
		}
	}
}

func TestBuildArchiveMipLevelLengths(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		width  int
		height int
	}{
		{name: "square", width: 32, height: 32},
		{name: "wide", width: 64, height: 16},
		{name: "small", width: 8, height: 8},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			img := solidImage(color.NRGBA{G: 128, A: 255}, tc.width, tc.height)
			archive, err := BuildArchive("mips", []TextureSource{
				{Name: tc.name, Image: img, Width: tc.width, Height: tc.height},
			})
			if err != nil {
				t.Fatalf("BuildArchive: %v", err)
			}

			tex := archive.Entries[0].Texture
			for k := 0; k < MipLevels; k++ {
				want := (tc.width >> k) * (tc.height >> k)
				if len(tex.Mips[k]) != want {
					t.Fatalf("level %d: got %d bytes, want %d", k, len(tex.Mips[k]), want)
				}
			}
		})
	}
}

func TestBuildArchiveReservesSentinelSlot(t *testing.T) {
	t.Parallel()

	// A mostly-blue image must not map any opaque pixel onto the reserved
	// transparency index, even though the sentinel is magic blue.
	img := solidImage(color.NRGBA{B: 255, A: 255}, 16, 16)
	archive, err := BuildArchive("blue", []TextureSource{{Name: "sky", Image: img}})
	if err != nil {
		t.Fatalf("BuildArchive: %v", err)
	}

	tex := archive.Entries[0].Texture
	if tex.Palette[PaletteSize-1] != TransparentColor {
		t.Fatalf("sentinel slot: got %+v, want %+v", tex.Palette[PaletteSize-1], TransparentColor)
	}
	for k := 0; k < MipLevels; k++ {
		for i, idx := range tex.Mips[k] {
			if int(idx) == PaletteSize-1 {
				t.Fatalf("level %d index %d maps to the transparency slot", k, i)
			}
		}
	}
}

func TestDecodeArchiveTransparencySentinel(t *testing.T) {
	t.Parallel()

	tex := &MipTexture{Name: "glass", Width: 2, Height: 2}
	tex.Palette[0] = RGB{R: 50, G: 60, B: 70}
	tex.Palette[255] = TransparentColor
	tex.Mips[0] = []byte{255, 0, 0, 255}
	tex.Mips[1] = []byte{255}
	tex.Mips[2] = []byte{}
	tex.Mips[3] = []byte{}

	archive := &Archive{Entries: []*Entry{{Name: "glass", Type: LumpTypeMip, Texture: tex}}}

	decoded, err := DecodeArchive(archive)
	if err != nil {
		t.Fatalf("DecodeArchive: %v", err)
	}

	img := decoded[0].Image
	transparent := 0
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			px := img.NRGBAAt(x, y)
			switch px.A {
			case 0:
				if px.B != 255 || px.R != 0 {
					t.Fatalf("transparent pixel (%d,%d) kept wrong color: %+v", x, y, px)
				}
				transparent++
			case 255:
				if (RGB{px.R, px.G, px.B}) != tex.Palette[0] {
					t.Fatalf("opaque pixel (%d,%d): %+v", x, y, px)
				}
			default:
				t.Fatalf("pixel (%d,%d) has partial alpha %d", x, y, px.A)
			}
		}
	}
	if transparent != 2 {
		t.Fatalf("transparent pixels: got %d, want 2", transparent)
	}
}

func TestDecodeArchiveSkipsOpaqueLumps(t *testing.T) {
	t.Parallel()

	archive := &Archive{Entries: []*Entry{
		{Name: "packed", Type: LumpTypeMip, Compressed: true, Raw: []byte{1, 2, 3}},
		{Name: "other", Type: LumpType(0x40), Raw: []byte{4, 5}},
	}}

	decoded, err := DecodeArchive(archive)
	if err != nil {
		t.Fatalf("DecodeArchive: %v", err)
	}
	if len(decoded) != 0 {
		t.Fatalf("expected no decoded textures, got %d", len(decoded))
	}
}

func TestBuildArchiveValidation(t *testing.T) {
	t.Parallel()

	img := solidImage(color.NRGBA{A: 255}, 4, 4)

	tests := []struct {
		name    string
		sources []TextureSource
		opts    *BuildOptions
		wantErr error
	}{
		{
			name:    "nil-image",
			sources: []TextureSource{{Name: "x"}},
			wantErr: ErrNilImage,
		},
		{
			name:    "negative-width",
			sources: []TextureSource{{Name: "x", Image: img, Width: -1, Height: 4}},
			wantErr: ErrInvalidDimensions,
		},
		{
			name:    "target-colors-too-large",
			sources: []TextureSource{{Name: "x", Image: img, Width: 4, Height: 4}},
			opts:    &BuildOptions{TargetColors: 300},
			wantErr: ErrInvalidTargetSize,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := BuildArchiveWithOptions("bad", tc.sources, tc.opts)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected error %v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestBuildArchiveDefaultsToImageBounds(t *testing.T) {
	t.Parallel()

	img := solidImage(color.NRGBA{R: 40, G: 80, B: 120, A: 255}, 48, 16)
	archive, err := BuildArchive("defaults", []TextureSource{{Name: "auto", Image: img}})
	if err != nil {
		t.Fatalf("BuildArchive: %v", err)
	}

	tex := archive.Entries[0].Texture
	if tex.Width != 48 || tex.Height != 16 {
		t.Fatalf("dimensions: got %dx%d, want 48x16", tex.Width, tex.Height)
	}
}
