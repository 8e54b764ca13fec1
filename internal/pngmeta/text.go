package pngmeta

import (
	"bytes"

	"github.com/chyinan/Kokoro-Engine-sub000/internal/codec"
)

// TextEntry is a decoded tEXt or iTXt keyword/value pair.
type TextEntry struct {
	// Keyword is never empty.
	Keyword string

	// Value is the decoded text.
	Value string

	// ChunkType is the chunk the entry came from.
	ChunkType string

	// Compressed is set for iTXt entries whose compression flag was
	// non-zero. Value is then the raw compressed bytes read as UTF-8.
	Compressed bool
}

// KeywordMap maps keywords to the latest entry seen for them.
// Keys keep the order in which they first appeared.
type KeywordMap struct {
	order   []string
	entries map[string]TextEntry
}

// NewKeywordMap creates an empty keyword map.
func NewKeywordMap() *KeywordMap {
	return &KeywordMap{
		entries: make(map[string]TextEntry),
	}
}

// Set stores e, replacing any earlier entry with the same keyword.
// Entries with an empty keyword are ignored.
func (m *KeywordMap) Set(e TextEntry) {
	if e.Keyword == "" {
		return
	}
	if _, ok := m.entries[e.Keyword]; !ok {
		m.order = append(m.order, e.Keyword)
	}
	m.entries[e.Keyword] = e
}

// Get returns the entry for keyword.
func (m *KeywordMap) Get(keyword string) (TextEntry, bool) {
	e, ok := m.entries[keyword]
	return e, ok
}

// Value returns the text stored under keyword.
func (m *KeywordMap) Value(keyword string) (string, bool) {
	e, ok := m.entries[keyword]
	return e.Value, ok
}

// Keywords returns the keywords in first-seen order.
func (m *KeywordMap) Keywords() []string {
	out := make([]string, len(m.order))
	copy(out, m.order)
	return out
}

// Entries returns the current entries in first-seen keyword order.
func (m *KeywordMap) Entries() []TextEntry {
	out := make([]TextEntry, 0, len(m.order))
	for _, k := range m.order {
		out = append(out, m.entries[k])
	}
	return out
}

// Len returns the number of keywords.
func (m *KeywordMap) Len() int {
	return len(m.order)
}

// DecodeText walks data and collects every tEXt and iTXt entry into one
// map. A later chunk overwrites an earlier one with the same keyword,
// whichever of the two types either is. Text chunks that cannot be split
// into a keyword and a value are skipped.
func DecodeText(data []byte) (*KeywordMap, error) {
	m := NewKeywordMap()
	err := Walk(data, func(c Chunk) error {
		if e, ok := DecodeChunk(c); ok {
			m.Set(e)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}

// DecodeChunk decodes a single tEXt or iTXt chunk. It reports false for
// other chunk types and for text chunks missing a keyword separator.
func DecodeChunk(c Chunk) (TextEntry, bool) {
	var (
		e  TextEntry
		ok bool
	)
	switch c.Type {
	case TypeTEXt:
		e, ok = decodeTEXt(c.Data)
	case TypeITXt:
		e, ok = decodeITXt(c.Data)
	default:
		return TextEntry{}, false
	}
	if !ok || e.Keyword == "" {
		return TextEntry{}, false
	}
	e.ChunkType = c.Type
	return e, true
}

// decodeTEXt splits "keyword \0 text"; both halves are Latin-1.
func decodeTEXt(data []byte) (TextEntry, bool) {
	sep := bytes.IndexByte(data, 0)
	if sep < 0 {
		return TextEntry{}, false
	}
	return TextEntry{
		Keyword: codec.DecodeLatin1(data[:sep]),
		Value:   codec.DecodeLatin1(data[sep+1:]),
	}, true
}

// decodeITXt parses
//
//	keyword \0 flag method language \0 translated-keyword \0 text
//
// The method byte is ignored.
func decodeITXt(data []byte) (TextEntry, bool) {
	sep := bytes.IndexByte(data, 0)
	if sep < 0 {
		return TextEntry{}, false
	}
	keyword := codec.DecodeLatin1(data[:sep])

	pos := sep + 1
	if len(data)-pos < 2 {
		return TextEntry{}, false
	}
	compressed := data[pos] != 0
	pos += 2

	// Language tag, then translated keyword.
	for range 2 {
		end := bytes.IndexByte(data[pos:], 0)
		if end < 0 {
			return TextEntry{}, false
		}
		pos += end + 1
	}

	return TextEntry{
		Keyword:    keyword,
		Value:      codec.DecodeUTF8(data[pos:]),
		Compressed: compressed,
	}, true
}
