package verification

import (
	"errors"
	"fmt"
)

// ErrQRNotFound is returned by the locator when every transform/backend
// combination has been exhausted. Recoverable: the orchestrator falls back
// to OCR.
var ErrQRNotFound = errors.New("qr code not found")

// ErrNoIdentifier is returned by the OCR fallback when no language attempt
// yields any identifier. Terminal: the document is rejected.
var ErrNoIdentifier = errors.New("unable to extract identifier")

// RenderError means a PDF could not be rasterized at any resolution.
type RenderError struct {
	Path string
	Err  error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render %s: %v", e.Path, e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }

// UnreadableImageError means an image file could not be decoded.
type UnreadableImageError struct {
	Path string
	Err  error
}

func (e *UnreadableImageError) Error() string {
	return fmt.Sprintf("unreadable image %s: %v", e.Path, e.Err)
}

func (e *UnreadableImageError) Unwrap() error { return e.Err }

// ParseError means no QR payload encoding yielded a plausible identity
// record. Recoverable: triggers the OCR fallback.
type ParseError struct {
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("qr payload parse: %s", e.Reason)
}
