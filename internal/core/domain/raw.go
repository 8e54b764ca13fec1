package domain

import (
	"path/filepath"
	"strings"
)

// RawCard is a character card as handed over by the I/O layer:
// the bytes of a file plus the name used to pick a decoder.
type RawCard struct {
	// Filename is the original file name or path.
	Filename string

	// Content is the raw bytes.
	Content []byte
}

// Ext returns the lower-cased file extension including the dot,
// or an empty string when the filename has none.
func (r RawCard) Ext() string {
	return strings.ToLower(filepath.Ext(r.Filename))
}

// WarningCode classifies a non-fatal decode condition.
type WarningCode string

const (
	// WarnCompressedText marks a compressed iTXt value that was decoded
	// without decompression and is likely garbage.
	WarnCompressedText WarningCode = "compressed_text"

	// WarnPlainPayload marks a chara value that was not base64 and was
	// read as plain JSON text.
	WarnPlainPayload WarningCode = "plain_payload"

	// WarnMojibakeRepaired marks a payload whose Latin-1 mis-decoding was undone.
	WarnMojibakeRepaired WarningCode = "mojibake_repaired"
)

// Warning is a recovered, non-fatal condition met while decoding a card.
type Warning struct {
	Code    WarningCode
	Message string
}

// String formats the warning for display.
func (w Warning) String() string {
	return string(w.Code) + ": " + w.Message
}
