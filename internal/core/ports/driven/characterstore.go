package driven

import (
	"context"

	"github.com/chyinan/Kokoro-Engine-sub000/internal/core/domain"
)

// CharacterStore persists imported characters.
type CharacterStore interface {
	// Save stores or updates a character.
	Save(ctx context.Context, character *domain.Character) error

	// Get retrieves a character by ID.
	// Returns domain.ErrNotFound if it does not exist.
	Get(ctx context.Context, id string) (*domain.Character, error)

	// List returns all characters, oldest first.
	List(ctx context.Context) ([]domain.Character, error)

	// Delete removes a character.
	// Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, id string) error
}
