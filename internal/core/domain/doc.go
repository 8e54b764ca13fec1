// Package domain defines the core business entities for Kokoro.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - CharacterProfile: The canonical record produced from a character card
//   - Character: A stored profile with identity and timestamps
//   - RawCard: Opaque card bytes plus the filename they came from
//   - FormatError, CardError: Typed failures of the import pipeline
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
