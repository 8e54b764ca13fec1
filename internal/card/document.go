package card

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/chyinan/Kokoro-Engine-sub000/internal/core/domain"
)

// Document is a parsed card: a JSON object with typed, optional field access.
type Document struct {
	fields map[string]json.RawMessage
}

// Value is a single JSON value taken from a Document.
type Value struct {
	raw json.RawMessage
}

// ParseDocument parses text as a card document. The top-level value must
// be a JSON object. Failures are returned as a *domain.CardError matching
// domain.ErrInvalidJSON.
func ParseDocument(text string) (Document, error) {
	return parseDocument([]byte(text))
}

func parseDocument(data []byte) (Document, error) {
	var raw json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return Document{}, domain.NewInvalidJSONError(err)
	}

	v := Value{raw: raw}
	doc, ok := v.Object()
	if !ok {
		return Document{}, domain.NewInvalidJSONError(
			fmt.Errorf("card must be a JSON object, got %s", v.kind()))
	}
	return doc, nil
}

// Field returns the value stored under name. The boolean is false when the
// field is absent; a present null is returned with IsNull true.
func (d Document) Field(name string) (Value, bool) {
	raw, ok := d.fields[name]
	if !ok {
		return Value{}, false
	}
	return Value{raw: raw}, true
}

// Has reports whether name is present and not null.
func (d Document) Has(name string) bool {
	v, ok := d.Field(name)
	return ok && !v.IsNull()
}

// String returns the field as a string when it holds a JSON string.
func (d Document) String(name string) (string, bool) {
	v, ok := d.Field(name)
	if !ok {
		return "", false
	}
	return v.String()
}

// Object returns the field as a Document when it holds a JSON object.
func (d Document) Object(name string) (Document, bool) {
	v, ok := d.Field(name)
	if !ok {
		return Document{}, false
	}
	return v.Object()
}

// Len returns the number of top-level fields.
func (d Document) Len() int {
	return len(d.fields)
}

// IsNull reports whether the value is JSON null.
func (v Value) IsNull() bool {
	return v.kind() == "null"
}

// String returns the value when it is a JSON string.
func (v Value) String() (string, bool) {
	if v.kind() != "string" {
		return "", false
	}
	var s string
	if err := json.Unmarshal(v.raw, &s); err != nil {
		return "", false
	}
	return s, true
}

// Text renders the value as text: strings as-is, every other value as
// its compact JSON form, null as "".
func (v Value) Text() string {
	switch v.kind() {
	case "null", "":
		return ""
	case "string":
		s, _ := v.String()
		return s
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, v.raw); err != nil {
		return string(v.raw)
	}
	return buf.String()
}

// Object returns the value as a Document when it is a JSON object.
func (v Value) Object() (Document, bool) {
	if v.kind() != "object" {
		return Document{}, false
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(v.raw, &fields); err != nil {
		return Document{}, false
	}
	return Document{fields: fields}, true
}

// kind names the JSON type of the value from its first significant byte.
func (v Value) kind() string {
	trimmed := bytes.TrimLeft(v.raw, " \t\r\n")
	if len(trimmed) == 0 {
		return ""
	}
	switch trimmed[0] {
	case '{':
		return "object"
	case '[':
		return "array"
	case '"':
		return "string"
	case 't', 'f':
		return "boolean"
	case 'n':
		return "null"
	default:
		return "number"
	}
}
