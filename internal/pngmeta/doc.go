// Package pngmeta walks the chunk stream of a PNG file and decodes its
// textual metadata (tEXt and iTXt chunks) into a keyword map.
//
// The walker works on an in-memory buffer. It checks the signature, yields
// each chunk in file order and stops after IEND. Chunk CRCs are skipped and
// never verified. Compressed iTXt values are not inflated; they are decoded
// as-is and flagged so callers can warn about them.
package pngmeta
