package wad3

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// maxTextureDim bounds declared texture dimensions so a hostile lump cannot
// force multi-gigabyte allocations.
const maxTextureDim = 1 << 15

// ReadFile reads and parses a WAD3 archive file. The archive name is the
// file base name without extension.
func ReadFile(path string) (*Archive, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrOpenFile, path, err)
	}

	archive, err := Parse(data)
	if err != nil {
		return nil, err
	}

	base := filepath.Base(path)
	archive.Name = strings.TrimSuffix(base, filepath.Ext(base))

	return archive, nil
}

// Parse parses a WAD3 archive from a byte buffer.
//
// Any malformed header, directory record or lump body aborts the whole parse;
// no partial Archive is returned. Texture lumps are decoded into MipTextures;
// compressed and unknown-type lumps are retained opaque in Entry.Raw.
func Parse(data []byte) (*Archive, error) {
	if len(data) < headerSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrArchiveTooShort, len(data))
	}

	var hdr header
	if err := binary.Read(bytes.NewReader(data[:headerSize]), binary.LittleEndian, &hdr); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrArchiveTooShort, err)
	}

	if string(hdr.Magic[:]) != Magic {
		return nil, fmt.Errorf("%w: %q", ErrBadMagic, hdr.Magic[:])
	}
	if hdr.LumpCount < 0 {
		return nil, fmt.Errorf("%w: %d", ErrLumpCount, hdr.LumpCount)
	}
	if hdr.DirOffset < 0 || int64(hdr.DirOffset)+int64(hdr.LumpCount)*dirEntrySize > int64(len(data)) {
		return nil, fmt.Errorf("%w: %d lumps at offset %d", ErrDirectoryBounds, hdr.LumpCount, hdr.DirOffset)
	}

	directory := make([]dirEntry, hdr.LumpCount)
	if err := binary.Read(bytes.NewReader(data[hdr.DirOffset:]), binary.LittleEndian, &directory); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDirectoryBounds, err)
	}

	archive := &Archive{Entries: make([]*Entry, 0, len(directory))}
	for i, rec := range directory {
		entry, err := parseLump(data, rec)
		if err != nil {
			return nil, fmt.Errorf("lump %d %q: %w", i, trimName(rec.Name[:]), err)
		}
		archive.Entries = append(archive.Entries, entry)
	}

	return archive, nil
}

// parseLump decodes one directory record and its body.
func parseLump(data []byte, rec dirEntry) (*Entry, error) {
	if rec.Offset < 0 || rec.DiskSize < 0 || int64(rec.Offset)+int64(rec.DiskSize) > int64(len(data)) {
		return nil, fmt.Errorf("%w: offset %d size %d", ErrLumpBounds, rec.Offset, rec.DiskSize)
	}

	entry := &Entry{
		Name:       trimName(rec.Name[:]),
		Type:       LumpType(rec.Type),
		Compressed: rec.Compressed != 0,
		DiskSize:   uint32(rec.DiskSize),
		FullSize:   uint32(rec.FullSize),
	}

	body := data[rec.Offset : int(rec.Offset)+int(rec.DiskSize)]

	texture := entry.Type == LumpTypeMip || entry.Type == LumpTypeRaw
	if !texture || entry.Compressed {
		entry.Raw = append([]byte(nil), body...)
		return entry, nil
	}

	tex, err := decodeMipTexture(body)
	if err != nil {
		return nil, err
	}
	entry.Texture = tex

	return entry, nil
}

// decodeMipTexture decodes a texture lump body. Mip offsets are relative to
// the lump start. The palette may be preceded by an optional uint16
// colors-used field (always 256 when present).
func decodeMipTexture(body []byte) (*MipTexture, error) {
	if len(body) < mipHeaderSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrLumpTooShort, len(body))
	}

	tex := &MipTexture{
		Name:   trimName(body[:NameLen]),
		Width:  binary.LittleEndian.Uint32(body[NameLen:]),
		Height: binary.LittleEndian.Uint32(body[NameLen+4:]),
	}

	if tex.Width == 0 || tex.Height == 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, tex.Width, tex.Height)
	}
	if tex.Width > maxTextureDim || tex.Height > maxTextureDim {
		return nil, fmt.Errorf("%w: %dx%d", ErrSizeOverflow, tex.Width, tex.Height)
	}

	var offsets [MipLevels]uint32
	for k := range offsets {
		offsets[k] = binary.LittleEndian.Uint32(body[NameLen+8+4*k:])
	}

	for k := 0; k < MipLevels; k++ {
		n := mipLen(tex.Width, tex.Height, k)
		start := int64(offsets[k])
		if start+int64(n) > int64(len(body)) {
			return nil, fmt.Errorf("%w: level %d at %d needs %d bytes", ErrMipBounds, k, offsets[k], n)
		}
		mip := make([]byte, n)
		copy(mip, body[start:start+int64(n)])
		tex.Mips[k] = mip
	}

	palPos := int(offsets[MipLevels-1]) + mipLen(tex.Width, tex.Height, MipLevels-1)
	if len(body)-palPos >= paletteBytes+2 && binary.LittleEndian.Uint16(body[palPos:]) == PaletteSize {
		palPos += 2
	}
	if palPos+paletteBytes > len(body) {
		return nil, fmt.Errorf("%w: at %d", ErrPaletteBounds, palPos)
	}

	for i := range tex.Palette {
		o := palPos + i*3
		tex.Palette[i] = RGB{body[o], body[o+1], body[o+2]}
	}

	return tex, nil
}
