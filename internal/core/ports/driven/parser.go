package driven

import (
	"context"

	"github.com/chyinan/Kokoro-Engine-sub000/internal/core/domain"
)

// CardParser turns the bytes of one card file format into a profile.
// Each parser handles specific file extensions (e.g., ".png").
type CardParser interface {
	// Name identifies the parser in logs and output (e.g., "png").
	Name() string

	// SupportedExtensions returns the lower-case extensions, with dot,
	// this parser handles.
	SupportedExtensions() []string

	// Priority returns the selection priority (higher = preferred).
	// Built-in parsers return 50; overrides should return more.
	Priority() int

	// Parse decodes raw into a canonical profile.
	Parse(ctx context.Context, raw *domain.RawCard) (*ParseResult, error)
}

// ParseResult contains the output of a card parse.
type ParseResult struct {
	// Profile is the canonical profile.
	Profile domain.CharacterProfile

	// Parser is the Name of the parser that produced the profile.
	Parser string

	// Warnings lists recovered, non-fatal decode problems.
	Warnings []domain.Warning
}
