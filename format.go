package wad3

import (
	"bytes"
	"unicode/utf8"
)

const (
	// Magic identifies a WAD3 archive.
	Magic = "WAD3"
	// NameLen is the fixed on-disk length of lump and texture names.
	NameLen = 16
	// MipLevels is the number of mip levels stored per texture.
	MipLevels = 4
	// PaletteSize is the fixed number of palette entries per texture.
	PaletteSize = 256

	headerSize   = 12
	dirEntrySize = 32
	// Texture lump prefix: name, width, height, four mip offsets.
	mipHeaderSize = NameLen + 4 + 4 + 4*MipLevels
	paletteBytes  = PaletteSize * 3
)

// LumpType identifies the payload kind of a directory entry.
type LumpType byte

const (
	// LumpTypeRaw is a raw texture lump.
	LumpTypeRaw LumpType = 0x42
	// LumpTypeMip is a mip texture lump.
	LumpTypeMip LumpType = 0x43
)

// RGB is one 24-bit palette color.
type RGB struct {
	R, G, B uint8
}

// Palette is the fixed 256-entry color table shared by a texture's mip levels.
type Palette [PaletteSize]RGB

// MipTexture is an indexed texture: four mip levels of palette indices plus
// the shared palette. Mip level k holds (Width>>k)*(Height>>k) index bytes.
type MipTexture struct {
	Name    string
	Width   uint32
	Height  uint32
	Mips    [MipLevels][]byte
	Palette Palette
}

// Entry is one named lump of an archive. Texture is set for decoded texture
// lumps; compressed and unknown-type lumps keep their body in Raw and
// round-trip unchanged.
type Entry struct {
	Name       string
	Type       LumpType
	Compressed bool
	DiskSize   uint32
	FullSize   uint32
	Texture    *MipTexture
	Raw        []byte
}

// Archive is an ordered set of lumps. It exclusively owns its entries and
// their texture payloads.
type Archive struct {
	Name    string
	Entries []*Entry
}

// header is the on-disk archive header.
type header struct {
	Magic     [4]byte
	LumpCount int32
	DirOffset int32
}

// dirEntry is one on-disk directory record.
type dirEntry struct {
	Offset     int32
	DiskSize   int32
	FullSize   int32
	Type       byte
	Compressed byte
	Pad        int16
	Name       [NameLen]byte
}

// trimName extracts a lump name from its NUL-padded on-disk form. A name
// using all 16 bytes has no terminator.
func trimName(raw []byte) string {
	if i := bytes.IndexByte(raw, 0); i >= 0 {
		return string(raw[:i])
	}
	return string(raw)
}

// truncateName clips a name to at most NameLen bytes on a rune boundary, so
// multi-byte sequences are never split. Truncation is silent and lossy.
func truncateName(name string) string {
	if len(name) <= NameLen {
		return name
	}
	cut := NameLen
	for cut > 0 && !utf8.RuneStart(name[cut]) {
		cut--
	}
	return name[:cut]
}

// packName lays a name into its fixed NUL-padded on-disk form.
func packName(name string) [NameLen]byte {
	var out [NameLen]byte
	copy(out[:], truncateName(name))
	return out
}
