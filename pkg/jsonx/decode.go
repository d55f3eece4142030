// Package jsonx decodes raw payloads with the error split the pipeline
// needs: text that is not JSON versus JSON of the wrong shape.
package jsonx

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

var (
	// ErrSyntax means the input is not valid JSON text.
	ErrSyntax = errors.New("invalid json")
	// ErrShape means the JSON parsed but a field has the wrong type.
	ErrShape = errors.New("unexpected json shape")
)

// Decode unmarshals raw into dst, classifying failures as ErrSyntax or
// ErrShape. Unknown fields are ignored; absent fields keep zero values.
func Decode(raw []byte, dst any) error {
	err := json.Unmarshal(raw, dst)
	if err == nil {
		return nil
	}

	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return fmt.Errorf("%w at offset %d: %v", ErrSyntax, syntaxErr.Offset, syntaxErr)
	}
	if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: truncated input", ErrSyntax)
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		field := typeErr.Field
		if field == "" {
			field = "(root)"
		}
		return fmt.Errorf("%w: field %s got %s, want %s", ErrShape, field, typeErr.Value, typeErr.Type)
	}

	return fmt.Errorf("%w: %v", ErrShape, err)
}
