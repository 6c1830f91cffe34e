package ident

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tinoosan/booksapi/internal/errs"
)

func TestDecode_RoundTrip(t *testing.T) {
	id := New()
	got, err := Decode(Encode(id))
	require.NoError(t, err)
	assert.Equal(t, id, got)
	assert.Len(t, Encode(id), 24)
}

func TestDecode_AcceptsUppercaseHex(t *testing.T) {
	id := New()
	got, err := Decode(strings.ToUpper(Encode(id)))
	require.NoError(t, err)
	assert.Equal(t, id, got)
}

func TestDecode_RejectsMalformed(t *testing.T) {
	for _, in := range []string{"", "1", "abc", "67a36d9a198cd394f628c25", "67a36d9a198cd394f628c25cz", "67a36d9a198cd394f628c25c0", "zza36d9a198cd394f628c25c"} {
		_, err := Decode(in)
		assert.ErrorIs(t, err, errs.ErrInvalidID, "input %q", in)
	}
}

func TestEncodeRef_NilIsEmpty(t *testing.T) {
	assert.Equal(t, "", EncodeRef(Nil))
	id := New()
	assert.Equal(t, id.Hex(), EncodeRef(id))
}

func TestMustDecode_Panics(t *testing.T) {
	assert.Panics(t, func() { MustDecode("nope") })
}
