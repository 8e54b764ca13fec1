package mcp

import (
	"github.com/chyinan/Kokoro-Engine-sub000/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Characters imports cards and reads stored characters.
	Characters driving.CharacterService

	// AllowPaths permits tools to read card files from the local filesystem.
	// When false, cards must be sent inline as base64.
	AllowPaths bool
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Characters == nil {
		return ErrMissingCharacterService
	}
	return nil
}
