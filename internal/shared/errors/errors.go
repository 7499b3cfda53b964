package errors

import "errors"

var (
	ErrMissingAPIID   = errors.New("TELEGRAM_API_ID environment variable is required")
	ErrInvalidAPIID   = errors.New("TELEGRAM_API_ID must be an integer")
	ErrMissingAPIHash = errors.New("TELEGRAM_API_HASH environment variable is required")
	ErrEmptyDocument  = errors.New("document has no content to download")
)
