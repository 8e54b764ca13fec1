package parsers

import (
	"context"
	"sort"
	"sync"

	"github.com/chyinan/Kokoro-Engine-sub000/internal/core/domain"
	"github.com/chyinan/Kokoro-Engine-sub000/internal/core/ports/driven"
)

// Ensure Registry implements the interface.
var _ driven.ParserRegistry = (*Registry)(nil)

// Registry maps file extensions to card parsers.
type Registry struct {
	mu      sync.RWMutex
	parsers map[string][]driven.CardParser
}

// NewRegistry creates an empty parser registry.
func NewRegistry() *Registry {
	return &Registry{
		parsers: make(map[string][]driven.CardParser),
	}
}

// Register adds a parser for each extension it supports.
// Parsers for the same extension are kept ordered by priority, highest first.
func (r *Registry) Register(p driven.CardParser) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, ext := range p.SupportedExtensions() {
		list := append(r.parsers[ext], p)
		sort.SliceStable(list, func(i, j int) bool {
			return list[i].Priority() > list[j].Priority()
		})
		r.parsers[ext] = list
	}
}

// Parse decodes raw with the highest-priority parser for its extension.
// The content is not inspected when no parser matches.
func (r *Registry) Parse(ctx context.Context, raw *domain.RawCard) (*driven.ParseResult, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	ext := raw.Ext()
	p := r.lookup(ext)
	if p == nil {
		return nil, domain.NewUnsupportedFormatError(ext)
	}
	return p.Parse(ctx, raw)
}

// Lookup returns the parser that would handle filename, if any.
func (r *Registry) Lookup(filename string) (driven.CardParser, bool) {
	p := r.lookup(domain.RawCard{Filename: filename}.Ext())
	return p, p != nil
}

// SupportedExtensions returns all registered extensions, sorted.
func (r *Registry) SupportedExtensions() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	exts := make([]string, 0, len(r.parsers))
	for ext := range r.parsers {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

func (r *Registry) lookup(ext string) driven.CardParser {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := r.parsers[ext]
	if len(list) == 0 {
		return nil
	}
	return list[0]
}
