package card

import (
	"unicode/utf8"

	"github.com/chyinan/Kokoro-Engine-sub000/internal/codec"
	"github.com/chyinan/Kokoro-Engine-sub000/internal/core/domain"
	"github.com/chyinan/Kokoro-Engine-sub000/internal/pngmeta"
)

// Keyword is the PNG text keyword that carries the card.
const Keyword = "chara"

// Encoding describes how the chara value was stored.
type Encoding string

const (
	// EncodingBase64 is the usual base64-wrapped JSON.
	EncodingBase64 Encoding = "base64"

	// EncodingPlain is JSON stored directly as text.
	EncodingPlain Encoding = "plain"
)

// Payload is the decoded card embedded in a PNG.
type Payload struct {
	// Document is the parsed card.
	Document Document

	// Text is the JSON text that was parsed.
	Text string

	// Encoding is how the chara value was stored.
	Encoding Encoding

	// Repaired is set when RepairMojibake changed the text.
	Repaired bool

	// Warnings lists recovered decode problems.
	Warnings []domain.Warning
}

// ExtractPayload finds the chara entry in keywords and parses it.
//
// The value is base64-decoded when possible and read as plain JSON text
// otherwise. The result then goes through RepairMojibake before parsing.
// A missing entry yields domain.ErrNoEmbeddedData; unparseable JSON
// yields domain.ErrInvalidJSON.
func ExtractPayload(keywords *pngmeta.KeywordMap) (*Payload, error) {
	entry, ok := keywords.Get(Keyword)
	if !ok {
		return nil, domain.NewNoEmbeddedDataError()
	}

	p := &Payload{}
	if entry.Compressed {
		p.Warnings = append(p.Warnings, domain.Warning{
			Code:    domain.WarnCompressedText,
			Message: "chara iTXt entry is compressed and was decoded without inflating",
		})
	}

	text, enc := decodeValue(entry.Value)
	p.Encoding = enc
	if enc == EncodingPlain {
		p.Warnings = append(p.Warnings, domain.Warning{
			Code:    domain.WarnPlainPayload,
			Message: "chara value is not base64, reading it as plain JSON",
		})
	}

	repaired, changed := RepairMojibake(text)
	p.Text = repaired
	p.Repaired = changed
	if changed && enc == EncodingPlain {
		p.Warnings = append(p.Warnings, domain.Warning{
			Code:    domain.WarnMojibakeRepaired,
			Message: "chara text was UTF-8 read as Latin-1 and has been re-decoded",
		})
	}

	doc, err := ParseDocument(repaired)
	if err != nil {
		return nil, err
	}
	p.Document = doc
	return p, nil
}

// decodeValue base64-decodes value, reading the bytes as Latin-1 so each
// byte becomes one code point. Values that are not base64 are returned
// unchanged as plain text.
func decodeValue(value string) (string, Encoding) {
	b, err := codec.DecodeBase64(value)
	if err != nil {
		return value, EncodingPlain
	}
	return codec.DecodeLatin1(b), EncodingBase64
}

// RepairMojibake undoes UTF-8 text having been read one byte per code
// point. Each code point of s is taken as a byte and the bytes are decoded
// as UTF-8. If s holds a code point above U+00FF, or the bytes are not
// valid UTF-8, s is returned unchanged. The boolean reports a change.
func RepairMojibake(s string) (string, bool) {
	b, err := codec.EncodeLatin1(s)
	if err != nil || !utf8.Valid(b) {
		return s, false
	}
	out := string(b)
	return out, out != s
}
