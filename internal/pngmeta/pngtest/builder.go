// Package pngtest builds small PNG datastreams for tests.
package pngtest

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"hash/crc32"
)

// signature duplicates pngmeta.Signature so this package stays import-free.
const signature = "\x89PNG\r\n\x1a\n"

// Builder appends chunks after the PNG signature.
type Builder struct {
	buf bytes.Buffer
}

// New returns a builder holding only the signature.
func New() *Builder {
	b := &Builder{}
	b.buf.WriteString(signature)
	return b
}

// Chunk appends a chunk with a valid CRC.
func (b *Builder) Chunk(tag string, data []byte) *Builder {
	var hdr [8]byte
	binary.BigEndian.PutUint32(hdr[:4], uint32(len(data)))
	copy(hdr[4:], tag)
	b.buf.Write(hdr[:])
	b.buf.Write(data)

	crc := crc32.NewIEEE()
	crc.Write(hdr[4:])
	crc.Write(data)
	var sum [4]byte
	binary.BigEndian.PutUint32(sum[:], crc.Sum32())
	b.buf.Write(sum[:])
	return b
}

// IHDR appends a 1x1 truecolour header.
func (b *Builder) IHDR() *Builder {
	return b.Chunk("IHDR", []byte{0, 0, 0, 1, 0, 0, 0, 1, 8, 2, 0, 0, 0})
}

// Text appends a tEXt chunk. keyword and value must already be Latin-1 bytes.
func (b *Builder) Text(keyword, value string) *Builder {
	data := append([]byte(keyword), 0)
	data = append(data, value...)
	return b.Chunk("tEXt", data)
}

// IText appends an uncompressed iTXt chunk with empty language and
// translated keyword.
func (b *Builder) IText(keyword, value string) *Builder {
	return b.ITextFlag(keyword, value, 0)
}

// ITextFlag appends an iTXt chunk with the given compression flag.
// value is written verbatim; it is not compressed.
func (b *Builder) ITextFlag(keyword, value string, flag byte) *Builder {
	data := append([]byte(keyword), 0, flag, 0)
	data = append(data, "en"...)
	data = append(data, 0)
	data = append(data, keyword...)
	data = append(data, 0)
	data = append(data, value...)
	return b.Chunk("iTXt", data)
}

// Card appends a tEXt chara chunk holding base64(json).
func (b *Builder) Card(json string) *Builder {
	return b.Text("chara", base64.StdEncoding.EncodeToString([]byte(json)))
}

// IEND appends the terminating chunk.
func (b *Builder) IEND() *Builder {
	return b.Chunk("IEND", nil)
}

// Raw appends bytes verbatim.
func (b *Builder) Raw(p []byte) *Builder {
	b.buf.Write(p)
	return b
}

// Bytes returns a copy of the datastream built so far.
func (b *Builder) Bytes() []byte {
	return bytes.Clone(b.buf.Bytes())
}

// CardPNG is shorthand for a minimal PNG carrying json as a chara entry.
func CardPNG(json string) []byte {
	return New().IHDR().Card(json).IEND().Bytes()
}
