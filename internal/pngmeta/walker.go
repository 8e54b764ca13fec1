package pngmeta

import (
	"errors"

	"github.com/chyinan/Kokoro-Engine-sub000/internal/codec"
	"github.com/chyinan/Kokoro-Engine-sub000/internal/core/domain"
)

// Signature is the fixed eight-byte header of every PNG datastream
// (89 50 4E 47 0D 0A 1A 0A).
const Signature = "\x89PNG\r\n\x1a\n"

const (
	// chunkHeaderLen covers the length and type fields.
	chunkHeaderLen = 8
	chunkCRCLen    = 4
)

// Chunk types the package knows by name.
const (
	TypeIEND = "IEND"
	TypeTEXt = "tEXt"
	TypeITXt = "iTXt"
)

// ErrStop can be returned from a WalkFunc to end the walk early.
// Walk then returns nil.
var ErrStop = errors.New("pngmeta: stop walk")

// Chunk is one length-prefixed segment of a PNG datastream.
type Chunk struct {
	// Type is the four-byte ASCII tag, e.g. "tEXt".
	Type string

	// Length is the declared payload length.
	Length uint32

	// Data is the payload. It aliases the walked buffer.
	Data []byte

	// Offset is the position of the chunk's length field in the buffer.
	Offset int
}

// WalkFunc is called for every chunk in file order.
type WalkFunc func(c Chunk) error

// IsPNG reports whether data starts with the PNG signature.
func IsPNG(data []byte) bool {
	return len(data) >= len(Signature) && string(data[:len(Signature)]) == Signature
}

// Walk validates the signature of data and calls fn for each chunk,
// stopping after IEND or at the end of the buffer.
//
// It returns a *domain.FormatError matching domain.ErrNotPNG when the
// signature is wrong, and one matching domain.ErrTruncated when a chunk
// (payload plus CRC) would extend past the buffer.
func Walk(data []byte, fn WalkFunc) error {
	if !IsPNG(data) {
		return domain.NewNotPNGError()
	}

	offset := len(Signature)
	for offset < len(data) {
		if len(data)-offset < chunkHeaderLen {
			return domain.NewTruncatedError(offset)
		}

		length := codec.ReadU32BE(data[offset : offset+4])
		tag := string(data[offset+4 : offset+8])

		start := offset + chunkHeaderLen
		// uint64 keeps a hostile length from wrapping on 32-bit ints.
		if uint64(start)+uint64(length)+chunkCRCLen > uint64(len(data)) {
			return domain.NewTruncatedError(offset)
		}
		end := start + int(length)

		err := fn(Chunk{
			Type:   tag,
			Length: length,
			Data:   data[start:end:end],
			Offset: offset,
		})
		if err != nil {
			if errors.Is(err, ErrStop) {
				return nil
			}
			return err
		}

		if tag == TypeIEND {
			return nil
		}
		offset = end + chunkCRCLen
	}

	return nil
}

// Chunks returns every chunk of data in file order.
func Chunks(data []byte) ([]Chunk, error) {
	var chunks []Chunk
	err := Walk(data, func(c Chunk) error {
		chunks = append(chunks, c)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return chunks, nil
}
