/*
Package wad3 implements the GoldSrc WAD3 texture archive container read/write
together with a median-cut palette quantizer and mipmap palettizer.

A WAD3 archive stores named lumps; each texture lump holds four progressively
half-sized levels of palette-index bytes plus a shared 256-color RGB palette.
All integers on the wire are little-endian.

The package focuses on practical workflows: parse an archive into decoded
indexed textures, build a new archive from full-color images by quantizing
each one down to a 256-entry palette, and expand stored textures back to RGBA
with the transparency sentinel applied. Compressed lumps are retained as
opaque payloads and round-trip unchanged; decoding them is out of scope.
*/
package wad3
