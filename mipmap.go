package wad3

// mipDimension calculates the dimension of a mipmap level. Levels divide by
// two with integer floor; small textures can reach zero on the tail levels.
func mipDimension(base, level int) int {
	return base >> level
}

// mipLen calculates the index-byte count of a mipmap level.
func mipLen(width, height uint32, level int) int {
	return int(width>>level) * int(height>>level)
}

// textureLumpLen calculates the encoded body length of a mip texture:
// header, four mip payloads, colors-used field, palette.
func textureLumpLen(t *MipTexture) int {
	n := mipHeaderSize
	for k := 0; k < MipLevels; k++ {
		n += mipLen(t.Width, t.Height, k)
	}
	return n + 2 + paletteBytes
}
