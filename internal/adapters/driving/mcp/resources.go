package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/chyinan/Kokoro-Engine-sub000/internal/core/domain"
)

const (
	// URIScheme is the custom URI scheme for Kokoro resources.
	uriScheme = "kokoro://"

	charactersPath = "characters"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	// Static resource for listing characters.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + charactersPath,
		Name:        "characters",
		Description: "List of all imported characters",
		MIMEType:    "application/json",
	}, s.handleCharactersResource)

	// Template for a single character.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + charactersPath + "/{characterId}",
		Name:        "character",
		Description: "Profile of a specific imported character",
		MIMEType:    "application/json",
	}, s.handleCharacterResource)
}

// handleCharactersResource returns a summary of all stored characters.
func (s *Server) handleCharactersResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	characters, err := s.ports.Characters.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing characters: %w", err)
	}

	type characterInfo struct {
		ID           string `json:"id"`
		Name         string `json:"name"`
		SourceFormat string `json:"sourceFormat"`
		SourceFile   string `json:"sourceFile"`
		URI          string `json:"uri"`
	}

	infos := make([]characterInfo, len(characters))
	for i := range characters {
		c := &characters[i]
		infos[i] = characterInfo{
			ID:           c.ID,
			Name:         c.Profile.Name,
			SourceFormat: c.Profile.SourceFormat.String(),
			SourceFile:   c.SourceFile,
			URI:          characterURI(c.ID),
		}
	}

	return jsonResult(req.Params.URI, infos)
}

// handleCharacterResource returns the full record of one character.
func (s *Server) handleCharacterResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	// Extract characterId from URI: kokoro://characters/{characterId}
	id := extractCharacterID(req.Params.URI)
	if id == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	character, err := s.ports.Characters.Get(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	if err != nil {
		return nil, fmt.Errorf("getting character: %w", err)
	}

	return jsonResult(req.Params.URI, character)
}

func jsonResult(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling %s: %w", uri, err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

func characterURI(id string) string {
	return uriScheme + charactersPath + "/" + id
}

// extractCharacterID extracts the character ID from a URI like kokoro://characters/{characterId}.
func extractCharacterID(uri string) string {
	const prefix = uriScheme + charactersPath + "/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	id := strings.TrimPrefix(uri, prefix)
	if strings.Contains(id, "/") {
		return ""
	}
	return id
}
