package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/chyinan/Kokoro-Engine-sub000/internal/core/domain"
	"github.com/chyinan/Kokoro-Engine-sub000/internal/core/ports/driven"
	"github.com/chyinan/Kokoro-Engine-sub000/internal/core/ports/driving"
	"github.com/chyinan/Kokoro-Engine-sub000/internal/logger"
)

// Ensure CharacterService implements the interface.
var _ driving.CharacterService = (*CharacterService)(nil)

var log = logger.Named("import")

// CharacterService imports character cards and manages stored characters.
type CharacterService struct {
	registry driven.ParserRegistry
	store    driven.CharacterStore
	settings driving.SettingsService
	now      func() time.Time
}

// NewCharacterService creates a new character service.
// settings may be nil, in which case the default import limits apply.
func NewCharacterService(
	registry driven.ParserRegistry,
	store driven.CharacterStore,
	settings driving.SettingsService,
) *CharacterService {
	return &CharacterService{
		registry: registry,
		store:    store,
		settings: settings,
		now:      time.Now,
	}
}

// Parse decodes a card without storing it.
func (s *CharacterService) Parse(ctx context.Context, filename string, data []byte) (*driving.ParsedCard, error) {
	if s.registry == nil {
		return nil, domain.ErrNotImplemented
	}
	if filename == "" {
		return nil, fmt.Errorf("%w: filename is required", domain.ErrInvalidInput)
	}
	if err := s.checkSize(int64(len(data))); err != nil {
		return nil, err
	}

	log.Debug("dispatching %s (%d bytes)", filename, len(data))
	res, err := s.registry.Parse(ctx, &domain.RawCard{Filename: filename, Content: data})
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filepath.Base(filename), err)
	}

	for _, w := range res.Warnings {
		log.Warn("%s: %s", filepath.Base(filename), w)
	}
	log.Debug("%s decoded by %s parser as %s", filename, res.Parser, res.Profile.SourceFormat)

	return &driving.ParsedCard{
		Profile:  res.Profile,
		Parser:   res.Parser,
		Warnings: res.Warnings,
	}, nil
}

// Import decodes a card and stores the resulting character.
func (s *CharacterService) Import(ctx context.Context, filename string, data []byte) (*driving.ImportResult, error) {
	if s.store == nil {
		return nil, domain.ErrNotImplemented
	}

	parsed, err := s.Parse(ctx, filename, data)
	if err != nil {
		return nil, err
	}

	now := s.now()
	character := domain.Character{
		ID:         uuid.New().String(),
		Profile:    parsed.Profile,
		SourceFile: filepath.Base(filename),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.store.Save(ctx, &character); err != nil {
		return nil, fmt.Errorf("save character: %w", err)
	}
	log.Info("imported %q as %s", character.Profile.Name, character.ID)

	return &driving.ImportResult{
		Character: character,
		Parser:    parsed.Parser,
		Warnings:  parsed.Warnings,
	}, nil
}

// ParseFile reads a card from disk and decodes it without storing it.
// Files over the configured size limit are rejected before being read.
func (s *CharacterService) ParseFile(ctx context.Context, path string) (*driving.ParsedCard, error) {
	data, err := s.readFile(path)
	if err != nil {
		return nil, err
	}
	return s.Parse(ctx, path, data)
}

// ImportFile reads a card from disk and imports it.
// Files over the configured size limit are rejected before being read.
func (s *CharacterService) ImportFile(ctx context.Context, path string) (*driving.ImportResult, error) {
	if s.store == nil {
		return nil, domain.ErrNotImplemented
	}
	data, err := s.readFile(path)
	if err != nil {
		return nil, err
	}
	return s.Import(ctx, path, data)
}

func (s *CharacterService) readFile(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", domain.ErrInvalidInput, path)
	}
	if err := s.checkSize(info.Size()); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}

// List returns all stored characters, oldest first.
func (s *CharacterService) List(ctx context.Context) ([]domain.Character, error) {
	if s.store == nil {
		return nil, domain.ErrNotImplemented
	}
	return s.store.List(ctx)
}

// Get retrieves a character by ID.
func (s *CharacterService) Get(ctx context.Context, id string) (*domain.Character, error) {
	if s.store == nil {
		return nil, domain.ErrNotImplemented
	}
	if id == "" {
		return nil, domain.ErrInvalidInput
	}
	return s.store.Get(ctx, id)
}

// Delete removes a character.
func (s *CharacterService) Delete(ctx context.Context, id string) error {
	if s.store == nil {
		return domain.ErrNotImplemented
	}
	if id == "" {
		return domain.ErrInvalidInput
	}
	return s.store.Delete(ctx, id)
}

// SupportedExtensions returns the card file extensions that can be imported.
func (s *CharacterService) SupportedExtensions() []string {
	if s.registry == nil {
		return nil
	}
	exts := s.registry.SupportedExtensions()
	sort.Strings(exts)
	return exts
}

func (s *CharacterService) checkSize(size int64) error {
	limits := domain.DefaultAppSettings().Import
	if s.settings != nil {
		if settings, err := s.settings.Get(); err == nil {
			limits = settings.Import
		}
	}
	if !limits.Allows(size) {
		return domain.NewFileTooLargeError(size, limits.MaxFileSize)
	}
	return nil
}
