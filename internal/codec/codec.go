// Package codec holds the byte and text primitives the card pipeline is
// built on: big-endian reads, Latin-1 and UTF-8 decoding, and a
// whitespace-tolerant base64 decoder.
package codec

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// utf8BOM is stripped from the front of UTF-8 input before decoding.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ReadU32BE reads a big-endian uint32 from the first four bytes of b.
// The caller must ensure len(b) >= 4.
func ReadU32BE(b []byte) uint32 {
	return binary.BigEndian.Uint32(b)
}

// DecodeLatin1 maps every byte to the code point of the same value.
// It cannot fail.
func DecodeLatin1(b []byte) string {
	out, _ := charmap.ISO8859_1.NewDecoder().Bytes(b)
	return string(out)
}

// EncodeLatin1 is the inverse of DecodeLatin1. It fails when s holds a
// code point above U+00FF.
func EncodeLatin1(s string) ([]byte, error) {
	return charmap.ISO8859_1.NewEncoder().Bytes([]byte(s))
}

// DecodeUTF8 decodes b as UTF-8, dropping a leading byte order mark and
// replacing invalid sequences with U+FFFD. It never fails.
func DecodeUTF8(b []byte) string {
	b = bytes.TrimPrefix(b, utf8BOM)
	if utf8.Valid(b) {
		return string(b)
	}
	out, _ := unicode.UTF8.NewDecoder().Bytes(b)
	return string(out)
}

// DecodeBase64 decodes standard-alphabet base64. ASCII whitespace is
// ignored and trailing padding is optional, so both "QQ==" and "QQ" decode.
func DecodeBase64(s string) ([]byte, error) {
	s = strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\n', '\f', '\r':
			return -1
		}
		return r
	}, s)

	if len(s)%4 == 0 {
		return base64.StdEncoding.DecodeString(s)
	}
	return base64.RawStdEncoding.DecodeString(s)
}
