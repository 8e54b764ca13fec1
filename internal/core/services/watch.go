package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/chyinan/Kokoro-Engine-sub000/internal/core/domain"
	"github.com/chyinan/Kokoro-Engine-sub000/internal/core/ports/driven"
	"github.com/chyinan/Kokoro-Engine-sub000/internal/core/ports/driving"
)

// Ensure WatchService implements the interface.
var _ driving.WatchService = (*WatchService)(nil)

// WatcherFactory creates a card watcher for a directory.
type WatcherFactory func(dir string, exts []string) driven.CardWatcher

// WatchService feeds watched card files into the character service.
// Files are imported one at a time in arrival order.
type WatchService struct {
	characters driving.CharacterService
	newWatcher WatcherFactory
}

// NewWatchService creates a new watch service.
func NewWatchService(characters driving.CharacterService, newWatcher WatcherFactory) *WatchService {
	return &WatchService{
		characters: characters,
		newWatcher: newWatcher,
	}
}

// Watch imports cards dropped into dir until ctx is cancelled.
// Import failures are reported and do not stop the watch.
func (s *WatchService) Watch(
	ctx context.Context,
	dir string,
	includeExisting bool,
	report func(driving.WatchEvent),
) error {
	if s.characters == nil || s.newWatcher == nil {
		return domain.ErrNotImplemented
	}
	if dir == "" {
		return fmt.Errorf("%w: watch directory is required", domain.ErrInvalidInput)
	}
	if report == nil {
		report = func(driving.WatchEvent) {}
	}

	w := s.newWatcher(dir, s.characters.SupportedExtensions())
	defer w.Close()

	if err := w.Validate(ctx); err != nil {
		return err
	}

	// Start watching before the scan so files landing in between are not missed.
	cards, err := w.Watch(ctx)
	if err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	if includeExisting {
		existing, err := w.Scan(ctx)
		if err != nil {
			return fmt.Errorf("scan %s: %w", dir, err)
		}
		log.Info("importing %d existing card(s) from %s", len(existing), dir)
		for _, card := range existing {
			report(s.importCard(ctx, card))
		}
	}

	log.Info("watching %s", dir)
	for {
		select {
		case <-ctx.Done():
			return nil
		case card, ok := <-cards:
			if !ok {
				if err := ctx.Err(); err != nil && !errors.Is(err, context.Canceled) {
					return err
				}
				return nil
			}
			report(s.importCard(ctx, card))
		}
	}
}

func (s *WatchService) importCard(ctx context.Context, card domain.RawCard) driving.WatchEvent {
	result, err := s.characters.Import(ctx, card.Filename, card.Content)
	if err != nil {
		log.Warn("%v", err)
		return driving.WatchEvent{Path: card.Filename, Err: err}
	}
	return driving.WatchEvent{Path: card.Filename, Result: result}
}
