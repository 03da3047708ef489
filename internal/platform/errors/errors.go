package apperrors

import "errors"

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrNotFound          = errors.New("not found")
	ErrMissingColumn     = errors.New("missing column")
	ErrUnknownTopic      = errors.New("unknown topic")
	ErrUnsupportedFormat = errors.New("unsupported format")
	ErrPluginUnavailable = errors.New("plugin unavailable")
)
