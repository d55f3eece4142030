package domain

import (
	"context"
	"errors"
)

type Service interface {
	// Flatten decodes a raw usage-metrics JSON array and produces the three
	// flat tables. It is a pure function of raw apart from the report
	// stamp: a decode or date failure aborts the whole batch and no table
	// is produced.
	Flatten(ctx context.Context, raw []byte) (*Tables, error)
}

var (
	ErrMalformedJSON = errors.New("malformed_json")
	ErrInvalidShape  = errors.New("invalid_payload_shape")
	ErrInvalidDate   = errors.New("invalid_date")
)
