package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotImplemented indicates a collaborator was not configured.
	ErrNotImplemented = errors.New("not implemented")

	// ErrFileTooLarge indicates a card file exceeds the configured import limit.
	ErrFileTooLarge = errors.New("file too large")

	// Format Errors.

	// ErrNotPNG indicates the input does not start with the PNG signature.
	ErrNotPNG = errors.New("not a PNG file")

	// ErrTruncated indicates a chunk extends past the end of the buffer.
	ErrTruncated = errors.New("truncated PNG chunk")

	// ErrUnsupportedFormat indicates the file extension has no decoder.
	ErrUnsupportedFormat = errors.New("unsupported file format")

	// Card Errors.

	// ErrNoEmbeddedData indicates a PNG carries no chara text entry.
	ErrNoEmbeddedData = errors.New("no embedded character data")

	// ErrInvalidJSON indicates the card payload is not valid JSON.
	ErrInvalidJSON = errors.New("invalid card JSON")
)

// NewFileTooLargeError reports a file of size bytes over limit.
func NewFileTooLargeError(size, limit int64) error {
	return fmt.Errorf("%w: %d bytes exceeds limit of %d", ErrFileTooLarge, size, limit)
}

// FormatErrorKind enumerates container-level failures.
type FormatErrorKind int

const (
	// FormatNotPNG is a signature mismatch.
	FormatNotPNG FormatErrorKind = iota

	// FormatTruncated is a chunk that would read past the buffer.
	FormatTruncated

	// FormatUnsupported is an unrecognised file extension.
	FormatUnsupported
)

// FormatError reports a failure to read the file container.
type FormatError struct {
	Kind FormatErrorKind

	// Ext is the offending extension for FormatUnsupported.
	Ext string

	// Offset is the byte offset of the failing chunk for FormatTruncated.
	Offset int
}

// NewNotPNGError returns a FormatError for a signature mismatch.
func NewNotPNGError() *FormatError {
	return &FormatError{Kind: FormatNotPNG}
}

// NewTruncatedError returns a FormatError for a chunk starting at offset.
func NewTruncatedError(offset int) *FormatError {
	return &FormatError{Kind: FormatTruncated, Offset: offset}
}

// NewUnsupportedFormatError returns a FormatError for extension ext.
func NewUnsupportedFormatError(ext string) *FormatError {
	return &FormatError{Kind: FormatUnsupported, Ext: ext}
}

func (e *FormatError) Error() string {
	switch e.Kind {
	case FormatNotPNG:
		return ErrNotPNG.Error()
	case FormatTruncated:
		return fmt.Sprintf("%s at offset %d", ErrTruncated, e.Offset)
	case FormatUnsupported:
		if e.Ext == "" {
			return ErrUnsupportedFormat.Error() + ": no extension"
		}
		return fmt.Sprintf("%s: %s", ErrUnsupportedFormat, e.Ext)
	default:
		return "format error"
	}
}

// Is matches the sentinel for the error's kind.
func (e *FormatError) Is(target error) bool {
	switch e.Kind {
	case FormatNotPNG:
		return target == ErrNotPNG
	case FormatTruncated:
		return target == ErrTruncated
	case FormatUnsupported:
		return target == ErrUnsupportedFormat
	default:
		return false
	}
}

// CardErrorKind enumerates payload-level failures.
type CardErrorKind int

const (
	// CardNoEmbeddedData is a PNG without a chara entry.
	CardNoEmbeddedData CardErrorKind = iota

	// CardInvalidJSON is a payload the JSON parser rejected.
	CardInvalidJSON
)

// CardError reports a failure to extract or parse the card payload.
type CardError struct {
	Kind CardErrorKind

	// Detail is the parser's message for CardInvalidJSON.
	Detail string

	// Err is the underlying cause, if any.
	Err error
}

// NewNoEmbeddedDataError returns a CardError for a missing chara entry.
func NewNoEmbeddedDataError() *CardError {
	return &CardError{Kind: CardNoEmbeddedData}
}

// NewInvalidJSONError returns a CardError wrapping a parser failure.
func NewInvalidJSONError(err error) *CardError {
	detail := ""
	if err != nil {
		detail = err.Error()
	}
	return &CardError{Kind: CardInvalidJSON, Detail: detail, Err: err}
}

func (e *CardError) Error() string {
	switch e.Kind {
	case CardNoEmbeddedData:
		return ErrNoEmbeddedData.Error()
	case CardInvalidJSON:
		if e.Detail == "" {
			return ErrInvalidJSON.Error()
		}
		return ErrInvalidJSON.Error() + ": " + e.Detail
	default:
		return "card error"
	}
}

// Is matches the sentinel for the error's kind.
func (e *CardError) Is(target error) bool {
	switch e.Kind {
	case CardNoEmbeddedData:
		return target == ErrNoEmbeddedData
	case CardInvalidJSON:
		return target == ErrInvalidJSON
	default:
		return false
	}
}

// Unwrap returns the underlying cause.
func (e *CardError) Unwrap() error {
	return e.Err
}
