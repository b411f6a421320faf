package wad3

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"os"
)

// WriteFile serializes an archive and writes it to a file.
func WriteFile(archive *Archive, path string) error {
	data, err := Serialize(archive)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("%w: %q: %v", ErrWriteFile, path, err)
	}

	return nil
}

// Serialize encodes an archive to WAD3 bytes. The layout is deterministic:
// header, directory at offset 12, then lump bodies back to back, so the same
// archive always yields identical bytes.
//
// Names longer than 16 bytes are silently truncated on a rune boundary in
// both the directory record and the texture lump body.
func Serialize(archive *Archive) ([]byte, error) {
	bodies := make([][]byte, len(archive.Entries))
	for i, entry := range archive.Entries {
		if entry.Texture == nil {
			bodies[i] = entry.Raw
			continue
		}

		body, err := encodeMipTexture(entry.Texture)
		if err != nil {
			return nil, fmt.Errorf("lump %d %q: %w", i, entry.Name, err)
		}
		bodies[i] = body
	}

	count, err := i32FromInt(len(archive.Entries))
	if err != nil {
		return nil, err
	}

	total := headerSize + dirEntrySize*len(archive.Entries)
	for _, body := range bodies {
		total += len(body)
	}

	buf := bytes.NewBuffer(make([]byte, 0, total))

	hdr := header{LumpCount: count, DirOffset: headerSize}
	copy(hdr.Magic[:], Magic)
	if err := binary.Write(buf, binary.LittleEndian, &hdr); err != nil {
		return nil, err
	}

	offset := headerSize + dirEntrySize*len(archive.Entries)
	for i, entry := range archive.Entries {
		rec, err := directoryRecord(entry, offset, len(bodies[i]))
		if err != nil {
			return nil, fmt.Errorf("lump %d %q: %w", i, entry.Name, err)
		}
		if err := binary.Write(buf, binary.LittleEndian, &rec); err != nil {
			return nil, err
		}
		offset += len(bodies[i])
	}

	for _, body := range bodies {
		buf.Write(body)
	}

	return buf.Bytes(), nil
}

// directoryRecord builds the on-disk directory record for one entry at the
// given body offset. Texture lumps always store diskSize == fullSize; opaque
// lumps keep their declared full size so compressed entries round-trip.
func directoryRecord(entry *Entry, offset, bodyLen int) (dirEntry, error) {
	off32, err := i32FromInt(offset)
	if err != nil {
		return dirEntry{}, err
	}
	disk32, err := i32FromInt(bodyLen)
	if err != nil {
		return dirEntry{}, err
	}

	full32 := disk32
	if entry.Texture == nil && entry.FullSize != 0 {
		if full32, err = i32FromInt(int(entry.FullSize)); err != nil {
			return dirEntry{}, err
		}
	}

	rec := dirEntry{
		Offset:   off32,
		DiskSize: disk32,
		FullSize: full32,
		Type:     byte(entry.Type),
		Name:     packName(entry.Name),
	}
	if entry.Compressed {
		rec.Compressed = 1
	}

	return rec, nil
}

// encodeMipTexture encodes a texture lump body: NUL-padded name, dimensions,
// four mip offsets relative to the lump start, the mip payloads back to back,
// a uint16 colors-used field, then the 768-byte palette.
func encodeMipTexture(t *MipTexture) ([]byte, error) {
	if t.Width == 0 || t.Height == 0 || t.Width > maxTextureDim || t.Height > maxTextureDim {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, t.Width, t.Height)
	}
	for k := 0; k < MipLevels; k++ {
		if want := mipLen(t.Width, t.Height, k); len(t.Mips[k]) != want {
			return nil, fmt.Errorf("%w: level %d has %d bytes, want %d", ErrMipSizeMismatch, k, len(t.Mips[k]), want)
		}
	}

	buf := bytes.NewBuffer(make([]byte, 0, textureLumpLen(t)))

	name := packName(t.Name)
	buf.Write(name[:])
	_ = binary.Write(buf, binary.LittleEndian, t.Width)
	_ = binary.Write(buf, binary.LittleEndian, t.Height)

	var offsets [MipLevels]uint32
	next := uint32(mipHeaderSize)
	for k := 0; k < MipLevels; k++ {
		offsets[k] = next
		next += uint32(len(t.Mips[k]))
	}
	_ = binary.Write(buf, binary.LittleEndian, offsets)

	for k := 0; k < MipLevels; k++ {
		buf.Write(t.Mips[k])
	}

	_ = binary.Write(buf, binary.LittleEndian, uint16(PaletteSize))
	for _, c := range t.Palette {
		buf.Write([]byte{c.R, c.G, c.B})
	}

	return buf.Bytes(), nil
}
