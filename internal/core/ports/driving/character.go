package driving

import (
	"context"

	"github.com/chyinan/Kokoro-Engine-sub000/internal/core/domain"
)

// CharacterService imports character cards and manages stored characters.
type CharacterService interface {
	// Parse decodes a card without storing it.
	Parse(ctx context.Context, filename string, data []byte) (*ParsedCard, error)

	// ParseFile reads a card from disk and decodes it without storing it.
	ParseFile(ctx context.Context, path string) (*ParsedCard, error)

	// Import decodes a card and stores the resulting character.
	Import(ctx context.Context, filename string, data []byte) (*ImportResult, error)

	// ImportFile reads a card from disk and imports it.
	ImportFile(ctx context.Context, path string) (*ImportResult, error)

	// List returns all stored characters.
	List(ctx context.Context) ([]domain.Character, error)

	// Get retrieves a character by ID.
	Get(ctx context.Context, id string) (*domain.Character, error)

	// Delete removes a character.
	Delete(ctx context.Context, id string) error

	// SupportedExtensions returns the card file extensions that can be imported.
	SupportedExtensions() []string
}

// ParsedCard is a decoded card that has not been stored.
type ParsedCard struct {
	// Profile is the canonical profile.
	Profile domain.CharacterProfile

	// Parser is the name of the parser that decoded the card.
	Parser string

	// Warnings lists recovered decode problems.
	Warnings []domain.Warning
}

// ImportResult describes a completed import.
type ImportResult struct {
	// Character is the stored character.
	Character domain.Character

	// Parser is the name of the parser that decoded the card.
	Parser string

	// Warnings lists recovered decode problems.
	Warnings []domain.Warning
}
