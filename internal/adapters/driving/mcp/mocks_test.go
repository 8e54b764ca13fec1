package mcp

import (
	"context"

	"github.com/chyinan/Kokoro-Engine-sub000/internal/core/domain"
	"github.com/chyinan/Kokoro-Engine-sub000/internal/core/ports/driving"
)

// mockCharacterService is a mock implementation of driving.CharacterService.
// It records the last card it was handed.
type mockCharacterService struct {
	parsed     *driving.ParsedCard
	imported   *driving.ImportResult
	characters []domain.Character
	character  *domain.Character
	err        error

	gotFilename string
	gotData     []byte
	gotPath     string
	gotID       string
}

func (m *mockCharacterService) Parse(_ context.Context, filename string, data []byte) (*driving.ParsedCard, error) {
	m.gotFilename, m.gotData = filename, data
	return m.parsed, m.err
}

func (m *mockCharacterService) ParseFile(_ context.Context, path string) (*driving.ParsedCard, error) {
	m.gotPath = path
	return m.parsed, m.err
}

func (m *mockCharacterService) Import(_ context.Context, filename string, data []byte) (*driving.ImportResult, error) {
	m.gotFilename, m.gotData = filename, data
	return m.imported, m.err
}

func (m *mockCharacterService) ImportFile(_ context.Context, path string) (*driving.ImportResult, error) {
	m.gotPath = path
	return m.imported, m.err
}

func (m *mockCharacterService) List(_ context.Context) ([]domain.Character, error) {
	return m.characters, m.err
}

func (m *mockCharacterService) Get(_ context.Context, id string) (*domain.Character, error) {
	m.gotID = id
	return m.character, m.err
}

func (m *mockCharacterService) Delete(_ context.Context, _ string) error {
	return m.err
}

func (m *mockCharacterService) SupportedExtensions() []string {
	return []string{".json", ".png"}
}
