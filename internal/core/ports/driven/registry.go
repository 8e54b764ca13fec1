package driven

import (
	"context"

	"github.com/chyinan/Kokoro-Engine-sub000/internal/core/domain"
)

// ParserRegistry selects the appropriate parser for a card file.
// It dispatches on the lower-cased file extension, preferring the
// highest-priority parser registered for it.
type ParserRegistry interface {
	// Parse decodes raw using the best matching parser. Unknown extensions
	// fail with domain.ErrUnsupportedFormat before any bytes are read.
	Parse(ctx context.Context, raw *domain.RawCard) (*ParseResult, error)

	// Register adds a parser to the registry.
	Register(parser CardParser)

	// SupportedExtensions returns all extensions that can be parsed.
	SupportedExtensions() []string
}
