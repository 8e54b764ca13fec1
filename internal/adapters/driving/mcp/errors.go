// Package mcp provides an MCP (Model Context Protocol) server adapter for Kokoro.
// It lets AI assistants import character cards and read stored characters.
package mcp

import "errors"

// ErrMissingCharacterService is returned when the character service is not provided.
var ErrMissingCharacterService = errors.New("mcp: character service is required")

// ErrCardSource is returned when a tool call names neither or both of
// content and path.
var ErrCardSource = errors.New("exactly one of content_base64 or path is required")

// ErrPathsDisabled is returned when a tool names a local path but the
// server was started without filesystem access.
var ErrPathsDisabled = errors.New("reading local paths is disabled; send content_base64 instead")
