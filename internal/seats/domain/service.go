package domain

import (
	"context"
	"errors"
)

type Service interface {
	// Flatten decodes a raw seat payload and produces the flat seat table.
	// A decode or timestamp failure aborts the whole payload.
	Flatten(ctx context.Context, raw []byte) (*Table, error)
}

var (
	ErrMalformedJSON = errors.New("malformed_json")
	ErrInvalidShape  = errors.New("invalid_payload_shape")
	ErrInvalidDate   = errors.New("invalid_date")
)
