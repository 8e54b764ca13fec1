package mcp

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/chyinan/Kokoro-Engine-sub000/internal/codec"
	"github.com/chyinan/Kokoro-Engine-sub000/internal/connectors/filesystem"
	"github.com/chyinan/Kokoro-Engine-sub000/internal/core/domain"
	"github.com/chyinan/Kokoro-Engine-sub000/internal/core/ports/driving"
)

// CardInput is the input schema shared by the card tools.
type CardInput struct {
	Filename      string `json:"filename,omitempty" jsonschema:"card file name; its extension (.png or .json) selects the decoder"`
	ContentBase64 string `json:"content_base64,omitempty" jsonschema:"the card file bytes, base64 encoded"`
	Path          string `json:"path,omitempty" jsonschema:"path of a card file on the local machine, if enabled"`
}

// ParseOutput is the output schema for the parse_character tool.
type ParseOutput struct {
	Profile  domain.CharacterProfile `json:"profile"`
	Parser   string                  `json:"parser"`
	Warnings []string                `json:"warnings,omitempty"`
}

// ImportOutput is the output schema for the import_character tool.
type ImportOutput struct {
	ID         string                  `json:"id"`
	Profile    domain.CharacterProfile `json:"profile"`
	SourceFile string                  `json:"source_file"`
	Parser     string                  `json:"parser"`
	Warnings   []string                `json:"warnings,omitempty"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "parse_character",
		Description: "Decode a character card (PNG or JSON) into a profile without saving it",
	}, s.handleParse)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "import_character",
		Description: "Decode a character card (PNG or JSON) and save it as a character",
	}, s.handleImport)
}

// handleParse handles the parse_character tool invocation.
func (s *Server) handleParse(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input CardInput,
) (*mcp.CallToolResult, ParseOutput, error) {
	path, local, err := s.localPath(input)
	if err != nil {
		return nil, ParseOutput{}, err
	}

	var parsed *driving.ParsedCard
	if local {
		parsed, err = s.ports.Characters.ParseFile(ctx, path)
	} else {
		var filename string
		var data []byte
		filename, data, err = inlineCard(input)
		if err == nil {
			parsed, err = s.ports.Characters.Parse(ctx, filename, data)
		}
	}
	if err != nil {
		return nil, ParseOutput{}, err
	}

	return nil, ParseOutput{
		Profile:  parsed.Profile,
		Parser:   parsed.Parser,
		Warnings: warningStrings(parsed.Warnings),
	}, nil
}

// handleImport handles the import_character tool invocation.
func (s *Server) handleImport(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input CardInput,
) (*mcp.CallToolResult, ImportOutput, error) {
	path, local, err := s.localPath(input)
	if err != nil {
		return nil, ImportOutput{}, err
	}

	var result *driving.ImportResult
	if local {
		result, err = s.ports.Characters.ImportFile(ctx, path)
	} else {
		var filename string
		var data []byte
		filename, data, err = inlineCard(input)
		if err == nil {
			result, err = s.ports.Characters.Import(ctx, filename, data)
		}
	}
	if err != nil {
		return nil, ImportOutput{}, err
	}

	return nil, ImportOutput{
		ID:         result.Character.ID,
		Profile:    result.Character.Profile,
		SourceFile: result.Character.SourceFile,
		Parser:     result.Parser,
		Warnings:   warningStrings(result.Warnings),
	}, nil
}

// localPath returns the resolved local path when the input names one.
func (s *Server) localPath(input CardInput) (string, bool, error) {
	if (input.ContentBase64 != "") == (input.Path != "") {
		return "", false, ErrCardSource
	}
	if input.Path == "" {
		return "", false, nil
	}
	if !s.ports.AllowPaths {
		return "", false, ErrPathsDisabled
	}
	path, err := filesystem.ResolvePath(input.Path)
	if err != nil {
		return "", false, fmt.Errorf("resolving path: %w", err)
	}
	return path, true, nil
}

// inlineCard decodes the base64 card sent with the call.
func inlineCard(input CardInput) (string, []byte, error) {
	if input.Filename == "" {
		return "", nil, fmt.Errorf("%w: filename is required with content_base64", domain.ErrInvalidInput)
	}
	data, err := codec.DecodeBase64(input.ContentBase64)
	if err != nil {
		return "", nil, fmt.Errorf("%w: content_base64 is not valid base64", domain.ErrInvalidInput)
	}
	return filepath.Base(input.Filename), data, nil
}

func warningStrings(warnings []domain.Warning) []string {
	if len(warnings) == 0 {
		return nil
	}
	out := make([]string, len(warnings))
	for i, w := range warnings {
		out[i] = w.String()
	}
	return out
}
