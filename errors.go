package wad3

import "errors"

var (
	// ErrArchiveTooShort indicates the input is smaller than a WAD3 header.
	ErrArchiveTooShort = errors.New("archive too short")
	// ErrBadMagic indicates the archive magic is not "WAD3".
	ErrBadMagic = errors.New("bad archive magic")
	// ErrLumpCount indicates a negative lump count in the header.
	ErrLumpCount = errors.New("invalid lump count")
	// ErrDirectoryBounds indicates the directory exceeds the archive bounds.
	ErrDirectoryBounds = errors.New("directory out of bounds")
	// ErrLumpBounds indicates a lump body exceeds the archive bounds.
	ErrLumpBounds = errors.New("lump body out of bounds")
	// ErrLumpTooShort indicates a texture lump is smaller than its header.
	ErrLumpTooShort = errors.New("texture lump too short")
	// ErrMipBounds indicates mip data exceeds the lump bounds.
	ErrMipBounds = errors.New("mip data out of bounds")
	// ErrPaletteBounds indicates the palette exceeds the lump bounds.
	ErrPaletteBounds = errors.New("palette out of bounds")
	// ErrSizeOverflow indicates a size or dimension exceeds supported limits.
	ErrSizeOverflow = errors.New("size overflow")
	// ErrInvalidDimensions indicates unusable texture dimensions.
	ErrInvalidDimensions = errors.New("invalid texture dimensions")
	// ErrInvalidTargetSize indicates a palette target size outside [2, 256].
	ErrInvalidTargetSize = errors.New("invalid palette target size")
	// ErrNoPixels indicates an empty pixel buffer was given to the quantizer.
	ErrNoPixels = errors.New("no pixels to quantize")
	// ErrMipSizeMismatch indicates mip payload length does not match its level.
	ErrMipSizeMismatch = errors.New("mip size mismatch")
	// ErrBufferSizeMismatch indicates a pixel buffer length mismatch.
	ErrBufferSizeMismatch = errors.New("pixel buffer size mismatch")
	// ErrEmptyPalette indicates palettizing against an empty palette.
	ErrEmptyPalette = errors.New("empty palette")
	// ErrNilImage indicates a nil source image.
	ErrNilImage = errors.New("nil source image")
	// ErrResample indicates the sampler failed to produce a buffer.
	ErrResample = errors.New("resample failed")
	// ErrOpenFile indicates an archive file open failed.
	ErrOpenFile = errors.New("open file failed")
	// ErrWriteFile indicates an archive file write failed.
	ErrWriteFile = errors.New("write file failed")
)
