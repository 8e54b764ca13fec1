package parsers

import (
	"github.com/chyinan/Kokoro-Engine-sub000/internal/parsers/jsoncard"
	"github.com/chyinan/Kokoro-Engine-sub000/internal/parsers/pngcard"
)

// RegisterDefaults registers the built-in card parsers with the registry.
func RegisterDefaults(r *Registry) {
	r.Register(jsoncard.New())
	r.Register(pngcard.New())
}

// NewDefaultRegistry returns a registry holding the built-in parsers.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	RegisterDefaults(r)
	return r
}
