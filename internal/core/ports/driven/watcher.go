package driven

import (
	"context"

	"github.com/chyinan/Kokoro-Engine-sub000/internal/core/domain"
)

// CardWatcher reports card files as they appear or change in a location.
type CardWatcher interface {
	// Root returns the watched location.
	Root() string

	// Validate checks the location exists and can be watched.
	Validate(ctx context.Context) error

	// Scan returns the cards already present in the location.
	Scan(ctx context.Context) ([]domain.RawCard, error)

	// Watch listens for new or rewritten card files until ctx is cancelled.
	Watch(ctx context.Context) (<-chan domain.RawCard, error)

	// Close releases resources.
	Close() error
}
