package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/chyinan/Kokoro-Engine-sub000/internal/core/domain"
	"github.com/chyinan/Kokoro-Engine-sub000/internal/core/ports/driven"
)

// Ensure CharacterStore implements the interface.
var _ driven.CharacterStore = (*CharacterStore)(nil)

// CharacterStore is an in-memory implementation of driven.CharacterStore.
type CharacterStore struct {
	mu         sync.RWMutex
	characters map[string]domain.Character
}

// NewCharacterStore creates a new in-memory character store.
func NewCharacterStore() *CharacterStore {
	return &CharacterStore{
		characters: make(map[string]domain.Character),
	}
}

// Save stores or updates a character.
func (s *CharacterStore) Save(_ context.Context, character *domain.Character) error {
	if character == nil || character.ID == "" {
		return domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.characters[character.ID] = *character
	return nil
}

// Get retrieves a character by ID.
func (s *CharacterStore) Get(_ context.Context, id string) (*domain.Character, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	character, ok := s.characters[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &character, nil
}

// List returns all characters, oldest first.
func (s *CharacterStore) List(_ context.Context) ([]domain.Character, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]domain.Character, 0, len(s.characters))
	for _, c := range s.characters {
		result = append(result, c)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].ID < result[j].ID
		}
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}

// Delete removes a character.
func (s *CharacterStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.characters[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.characters, id)
	return nil
}
