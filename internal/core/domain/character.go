package domain

import "time"

// UserPlaceholder is the template variable stored as a profile's user
// nickname. It is resolved by the chat layer, never by the importer.
const UserPlaceholder = "{{user}}"

// UnnamedCharacter is the name given to cards that carry neither
// name nor char_name.
const UnnamedCharacter = "Unnamed Character"

// SourceFormat identifies the card dialect a profile was read from.
type SourceFormat string

const (
	// SourceFormatTavernV2 covers v2 cards and legacy flat v1 cards,
	// which carry no version marker.
	SourceFormatTavernV2 SourceFormat = "tavern-v2"

	// SourceFormatTavernV3 covers cards marked chara_card_v3 or spec_version 3.0.
	SourceFormatTavernV3 SourceFormat = "tavern-v3"
)

// String returns the wire value of the format.
func (f SourceFormat) String() string {
	return string(f)
}

// IsValid reports whether f is one of the known formats.
func (f SourceFormat) IsValid() bool {
	switch f {
	case SourceFormatTavernV2, SourceFormatTavernV3:
		return true
	default:
		return false
	}
}

// CharacterProfile is the canonical record produced by a successful card parse.
// It carries no identity; the import service assigns that when storing it.
type CharacterProfile struct {
	// Name is the character's display name.
	Name string `json:"name"`

	// Persona is the assembled persona prompt.
	Persona string `json:"persona"`

	// UserNickname is always UserPlaceholder.
	UserNickname string `json:"userNickname"`

	// SourceFormat is the dialect the card was read as.
	SourceFormat SourceFormat `json:"sourceFormat"`
}

// Character is a stored character profile.
type Character struct {
	// ID is the unique identifier assigned on import.
	ID string `json:"id"`

	// Profile is the imported profile.
	Profile CharacterProfile `json:"profile"`

	// SourceFile is the filename the card was imported from.
	SourceFile string `json:"sourceFile"`

	// CreatedAt is when the character was first imported.
	CreatedAt time.Time `json:"createdAt"`

	// UpdatedAt is when the character was last updated.
	UpdatedAt time.Time `json:"updatedAt"`
}
