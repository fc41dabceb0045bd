//go:build !ios && !android && (amd64 || arm64)

package reapgo

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/obinnaokechukwu/reapgo/errors"
)

func TestGuidHostLayout(t *testing.T) {
	// {00112233-4455-6677-8899-AABBCCDDEEFF} as a Windows GUID struct.
	raw := [16]byte{
		0x33, 0x22, 0x11, 0x00,
		0x55, 0x44,
		0x77, 0x66,
		0x88, 0x99, 0xAA, 0xBB, 0xCC, 0xDD, 0xEE, 0xFF,
	}
	g := GuidFromRaw(raw)
	assert.Equal(t, "{00112233-4455-6677-8899-AABBCCDDEEFF}", g.String())
	assert.Equal(t, uuid.MustParse("00112233-4455-6677-8899-aabbccddeeff"), g.UUID())
	assert.Equal(t, raw, g.Raw())
}

func TestParseGuid(t *testing.T) {
	g, err := ParseGuid("{00112233-4455-6677-8899-AABBCCDDEEFF}")
	require.NoError(t, err)
	h, err := ParseGuid("00112233-4455-6677-8899-aabbccddeeff")
	require.NoError(t, err)
	assert.Equal(t, g, h)

	for _, bad := range []string{"", "{}", "{00112233-4455-6677-8899-AABBCCDDEEF}", "{zz112233-4455-6677-8899-AABBCCDDEEFF}"} {
		_, err := ParseGuid(bad)
		assert.ErrorIs(t, err, errors.ErrInvalidArgument, bad)
	}

	assert.True(t, Guid{}.IsZero())
	assert.Equal(t, "{00000000-0000-0000-0000-000000000000}", Guid{}.String())
}
