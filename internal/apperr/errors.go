// Package apperr holds the sentinel errors shared across Folio packages.
package apperr

import "errors"

var (
	ErrNotFound = errors.New("not found")
	ErrInvalid  = errors.New("invalid input")
	ErrDelivery = errors.New("delivery failed")
)
