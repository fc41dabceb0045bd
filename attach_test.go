//go:build !ios && !android && (amd64 || arm64)

package reapgo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/obinnaokechukwu/reapgo/config"
)

func TestAttachWithoutHost(t *testing.T) {
	_, _, err := Attach(0, config.Default())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = Get()
	assert.ErrorIs(t, err, ErrNotLoaded)
	assert.NoError(t, Detach())
}
