package card

import (
	"strings"

	"github.com/chyinan/Kokoro-Engine-sub000/internal/core/domain"
)

// Markers that identify a v3 card.
const (
	specV3        = "chara_card_v3"
	specVersionV3 = "3.0"
)

// sectionSeparator joins persona sections with a blank line.
const sectionSeparator = "\n\n"

// personaSection is one part of the assembled persona. The first
// non-empty string among fields is used, behind prefix.
type personaSection struct {
	prefix string
	fields []string
}

// personaSections lists the persona parts in output order.
var personaSections = []personaSection{
	{fields: []string{"system_prompt"}},
	{fields: []string{"description", "char_persona"}},
	{prefix: "Personality: ", fields: []string{"personality"}},
	{prefix: "Scenario: ", fields: []string{"scenario", "world_scenario"}},
	{prefix: "First greeting: ", fields: []string{"first_mes", "char_greeting"}},
	{prefix: "Example dialogue:\n", fields: []string{"mes_example", "example_dialogue"}},
}

// Normalise maps a card document of any supported dialect onto the
// canonical profile.
func Normalise(doc Document) domain.CharacterProfile {
	d := fields(doc)
	return domain.CharacterProfile{
		Name:         name(d),
		Persona:      persona(d),
		UserNickname: domain.UserPlaceholder,
		SourceFormat: sourceFormat(doc, d),
	}
}

// fields returns the object holding the card fields: data for nested
// cards, the document itself for flat ones.
func fields(doc Document) Document {
	if data, ok := doc.Object("data"); ok {
		return data
	}
	return doc
}

// name coalesces name, then char_name. Only absent or null moves on to
// the next candidate; an empty string is kept.
func name(d Document) string {
	for _, key := range []string{"name", "char_name"} {
		if v, ok := d.Field(key); ok && !v.IsNull() {
			return v.Text()
		}
	}
	return domain.UnnamedCharacter
}

func persona(d Document) string {
	parts := make([]string, 0, len(personaSections))
	for _, s := range personaSections {
		text := firstNonEmpty(d, s.fields...)
		if text == "" {
			continue
		}
		parts = append(parts, s.prefix+text)
	}
	return strings.Join(parts, sectionSeparator)
}

// firstNonEmpty returns the first field holding a non-empty string.
func firstNonEmpty(d Document, keys ...string) string {
	for _, key := range keys {
		if s, ok := d.String(key); ok && s != "" {
			return s
		}
	}
	return ""
}

// sourceFormat reports v3 when the root spec or the field object's
// spec_version says so. Flat v1 cards have no marker and read as v2.
func sourceFormat(root, d Document) domain.SourceFormat {
	if spec, ok := root.String("spec"); ok && spec == specV3 {
		return domain.SourceFormatTavernV3
	}
	if version, ok := d.String("spec_version"); ok && version == specVersionV3 {
		return domain.SourceFormatTavernV3
	}
	return domain.SourceFormatTavernV2
}
