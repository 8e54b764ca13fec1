// Package jsoncard parses character cards stored as bare JSON files.
package jsoncard

import (
	"context"

	"github.com/chyinan/Kokoro-Engine-sub000/internal/card"
	"github.com/chyinan/Kokoro-Engine-sub000/internal/codec"
	"github.com/chyinan/Kokoro-Engine-sub000/internal/core/domain"
	"github.com/chyinan/Kokoro-Engine-sub000/internal/core/ports/driven"
)

// Ensure Parser implements the interface.
var _ driven.CardParser = (*Parser)(nil)

// Parser handles .json card files.
type Parser struct{}

// New creates a JSON card parser.
func New() *Parser {
	return &Parser{}
}

// Name returns the parser name.
func (p *Parser) Name() string {
	return "json"
}

// SupportedExtensions returns the extensions this parser handles.
func (p *Parser) SupportedExtensions() []string {
	return []string{".json"}
}

// Priority returns the selection priority.
func (p *Parser) Priority() int {
	return 50
}

// Parse decodes the content as UTF-8 JSON and normalises it.
func (p *Parser) Parse(_ context.Context, raw *domain.RawCard) (*driven.ParseResult, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	doc, err := card.ParseDocument(codec.DecodeUTF8(raw.Content))
	if err != nil {
		return nil, err
	}

	return &driven.ParseResult{
		Profile: card.Normalise(doc),
		Parser:  p.Name(),
	}, nil
}
