package service

import "errors"

var (
	ErrInvalidInput         = errors.New("invalid input")
	ErrNotFound             = errors.New("not found")
	ErrMissingAPIKey        = errors.New("missing API key for provider")
	ErrProviderNotSupported = errors.New("provider not supported")
)
