// Package parsers dispatches character card files to the parser that
// handles their format. Each parser knows how to turn one file format
// into a canonical profile.
//
// Parsers are registered with the Registry at startup.
package parsers
