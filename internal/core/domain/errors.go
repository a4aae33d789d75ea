package domain

import (
	"context"
	"errors"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported format")
	ErrEmptyInput        = errors.New("file is empty")
	ErrInvalidInput      = errors.New("invalid input")
	ErrNotImplemented    = errors.New("not implemented")
	ErrUnknownBackend    = errors.New("unknown backend")
	ErrInvalidPassword   = errors.New("invalid password")
	ErrTooManyAttempts   = errors.New("too many login attempts")
	ErrSessionNotFound   = errors.New("session not found")
	ErrArtifactNotFound  = errors.New("artifact not found")
)

type ErrorKind string

const (
	KindUnsupportedFormat ErrorKind = "unsupported_format"
	KindInvalidInput      ErrorKind = "invalid_input"
	KindNotImplemented    ErrorKind = "not_implemented"
	KindCancelled         ErrorKind = "cancelled"
	KindInternal          ErrorKind = "internal"
)

// Classify maps an error onto the row-level error kinds shown in batch results.
func Classify(err error) ErrorKind {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrUnsupportedFormat), errors.Is(err, ErrEmptyInput):
		return KindUnsupportedFormat
	case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrUnknownBackend):
		return KindInvalidInput
	case errors.Is(err, ErrNotImplemented):
		return KindNotImplemented
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return KindCancelled
	default:
		return KindInternal
	}
}
