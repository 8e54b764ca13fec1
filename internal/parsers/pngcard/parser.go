// Package pngcard parses character cards embedded in PNG text chunks.
package pngcard

import (
	"context"

	"github.com/chyinan/Kokoro-Engine-sub000/internal/card"
	"github.com/chyinan/Kokoro-Engine-sub000/internal/core/domain"
	"github.com/chyinan/Kokoro-Engine-sub000/internal/core/ports/driven"
	"github.com/chyinan/Kokoro-Engine-sub000/internal/pngmeta"
)

// Ensure Parser implements the interface.
var _ driven.CardParser = (*Parser)(nil)

// Parser handles .png card files.
type Parser struct{}

// New creates a PNG card parser.
func New() *Parser {
	return &Parser{}
}

// Name returns the parser name.
func (p *Parser) Name() string {
	return "png"
}

// SupportedExtensions returns the extensions this parser handles.
func (p *Parser) SupportedExtensions() []string {
	return []string{".png"}
}

// Priority returns the selection priority.
func (p *Parser) Priority() int {
	return 50
}

// Parse reads the text chunks, extracts the chara payload and normalises it.
func (p *Parser) Parse(_ context.Context, raw *domain.RawCard) (*driven.ParseResult, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	keywords, err := pngmeta.DecodeText(raw.Content)
	if err != nil {
		return nil, err
	}

	payload, err := card.ExtractPayload(keywords)
	if err != nil {
		return nil, err
	}

	return &driven.ParseResult{
		Profile:  card.Normalise(payload.Document),
		Parser:   p.Name(),
		Warnings: payload.Warnings,
	}, nil
}
