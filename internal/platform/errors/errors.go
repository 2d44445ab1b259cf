package apperrors

import "errors"

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrNotFound           = errors.New("not found")
	ErrMalformedRecord    = errors.New("malformed record")
	ErrUnsupportedSchema  = errors.New("unsupported schema version")
	ErrNoProfile          = errors.New("no ritual profile; run `ritualcoach profile set` first")
	ErrUnknownStorageKind = errors.New("unknown storage backend")
)
