package jsonx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeOK(t *testing.T) {
	var dst struct {
		Name string `json:"name"`
	}
	require.NoError(t, Decode([]byte(`{"name":"x","extra":1}`), &dst))
	assert.Equal(t, "x", dst.Name)
}

func TestDecodeSyntaxError(t *testing.T) {
	var dst map[string]any
	for _, raw := range []string{`{"name": `, `not json`, `{`} {
		err := Decode([]byte(raw), &dst)
		assert.ErrorIs(t, err, ErrSyntax, "input %q", raw)
	}
}

func TestDecodeShapeError(t *testing.T) {
	var dst struct {
		Count int64 `json:"count"`
	}
	err := Decode([]byte(`{"count":"many"}`), &dst)
	assert.ErrorIs(t, err, ErrShape)

	var list []int
	err = Decode([]byte(`{"a":1}`), &list)
	assert.ErrorIs(t, err, ErrShape)
}
