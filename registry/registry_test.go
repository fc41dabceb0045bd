//go:build !ios && !android && (amd64 || arm64)

package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/obinnaokechukwu/reapgo/errors"
	"github.com/obinnaokechukwu/reapgo/raw"
	"github.com/obinnaokechukwu/reapgo/raw/rawtest"
)

func TestRegisterAndLookup(t *testing.T) {
	host := rawtest.NewHost()
	r := New(host)

	reg, err := r.Register(raw.Gaccel, 50001, "Say hello", "hello")
	require.NoError(t, err)
	assert.True(t, reg.Live())
	assert.Equal(t, uintptr(50001), reg.Key())
	assert.Equal(t, 1, host.Live(raw.Gaccel))

	got, ok := r.Lookup(raw.Gaccel, 50001)
	require.True(t, ok)
	assert.Same(t, reg, got)
	assert.Equal(t, "hello", got.Value())

	_, ok = r.Lookup(raw.Gaccel, 50002)
	assert.False(t, ok)
	_, ok = r.Lookup(raw.HookCommand, 50001)
	assert.False(t, ok)
}

func TestAtMostOneLiveRegistrationPerIdentity(t *testing.T) {
	host := rawtest.NewHost()
	r := New(host)

	_, err := r.Register(raw.HookCommand, 0, "", nil)
	require.NoError(t, err)

	_, err = r.Register(raw.HookCommand, 0, "", nil)
	assert.True(t, errors.Is(err, errors.ErrRegistration))
	assert.Equal(t, 1, host.Live(raw.HookCommand), "duplicate must not reach the host")
	assert.Equal(t, 1, r.Len())
}

func TestHostRejectionLeavesNoEntry(t *testing.T) {
	host := rawtest.NewHost()
	host.RejectAdd(raw.ControlSurface, true)
	r := New(host)

	_, err := r.Register(raw.ControlSurface, 0, "mcu", nil)
	assert.True(t, errors.IsHostRejected(err))
	assert.Zero(t, r.Len())
}

func TestUnregisterIsIdempotent(t *testing.T) {
	host := rawtest.NewHost()
	r := New(host)

	reg, err := r.Register(raw.Gaccel, 50001, "Say hello", nil)
	require.NoError(t, err)

	require.NoError(t, reg.Unregister())
	assert.False(t, reg.Live())
	assert.NoError(t, reg.Unregister())
	assert.NoError(t, r.Unregister(reg))
	assert.NoError(t, r.Unregister(nil))

	assert.Equal(t, 1, host.Calls("Remove"))
	assert.Zero(t, host.DoubleRemovals())
	assert.Zero(t, r.Len())

	_, ok := r.Lookup(raw.Gaccel, 50001)
	assert.False(t, ok)

	// The identity is free again.
	_, err = r.Register(raw.Gaccel, 50001, "Say hello", nil)
	assert.NoError(t, err)
}

func TestHostRefusedRemovalStillDropsEntry(t *testing.T) {
	host := rawtest.NewHost()
	core, logs := observer.New(zap.WarnLevel)
	r := New(host, WithLogger(zap.New(core)))

	reg, err := r.Register(raw.ControlSurface, 0, "mcu", nil)
	require.NoError(t, err)

	host.RejectRemove(raw.ControlSurface, true)
	err = reg.Unregister()
	assert.True(t, errors.IsHostRejected(err))
	assert.Zero(t, r.Len())
	assert.Equal(t, 1, logs.FilterMessage("host refused removal").Len())

	assert.NoError(t, reg.Unregister(), "second call is a no-op")
	assert.Equal(t, 1, host.Calls("Remove"))
}

func TestControlSurfacesGetDistinctKeys(t *testing.T) {
	r := New(rawtest.NewHost())

	a, err := r.Register(raw.ControlSurface, 0, "a", nil)
	require.NoError(t, err)
	b, err := r.Register(raw.ControlSurface, 0, "b", nil)
	require.NoError(t, err)

	assert.NotEqual(t, a.Key(), b.Key())
	assert.NotZero(t, a.Key())
}

func TestAudioSlots(t *testing.T) {
	host := rawtest.NewHost()
	r := New(host, WithAudioSlots(2))
	assert.Equal(t, 2, r.AudioSlots())

	a, err := r.Register(raw.AudioHook, 99, "", "a")
	require.NoError(t, err)
	b, err := r.Register(raw.AudioHook, 99, "", "b")
	require.NoError(t, err)
	assert.Equal(t, uintptr(0), a.Key())
	assert.Equal(t, uintptr(1), b.Key())

	_, err = r.Register(raw.AudioHook, 0, "", "c")
	assert.True(t, errors.Is(err, errors.ErrRegistration))

	assert.Same(t, a, r.Audio(0))
	assert.Same(t, b, r.Audio(1))
	assert.Nil(t, r.Audio(2))

	require.NoError(t, a.Unregister())
	assert.Nil(t, r.Audio(0))

	c, err := r.Register(raw.AudioHook, 0, "", "c")
	require.NoError(t, err)
	assert.Equal(t, uintptr(0), c.Key(), "freed slot is reused")
}

func TestAudioLookupDoesNotAllocate(t *testing.T) {
	r := New(rawtest.NewHost())
	_, err := r.Register(raw.AudioHook, 0, "", nil)
	require.NoError(t, err)

	allocs := testing.AllocsPerRun(100, func() {
		if r.Audio(0) == nil {
			t.Fatal("slot 0 should be live")
		}
	})
	assert.Zero(t, allocs)
}

func TestTeardownEmptiesRegistry(t *testing.T) {
	host := rawtest.NewHost()
	r := New(host)

	_, err := r.Register(raw.HookCommand, 0, "", nil)
	require.NoError(t, err)
	gaccel, err := r.Register(raw.Gaccel, 50001, "Say hello", nil)
	require.NoError(t, err)
	_, err = r.Register(raw.ControlSurface, 0, "mcu", nil)
	require.NoError(t, err)
	_, err = r.Register(raw.AudioHook, 0, "", nil)
	require.NoError(t, err)

	// Explicitly removed entries are skipped by teardown.
	require.NoError(t, gaccel.Unregister())

	require.NoError(t, r.Teardown())
	assert.Zero(t, r.Len())
	assert.Zero(t, host.Live(0))
	assert.Zero(t, host.DoubleRemovals())
	assert.Equal(t, 4, host.Calls("Remove"))
	assert.True(t, r.Closed())

	// A second teardown has nothing left to do.
	require.NoError(t, r.Teardown())
	assert.Equal(t, 4, host.Calls("Remove"))

	_, err = r.Register(raw.HookCommand, 0, "", nil)
	assert.True(t, errors.Is(err, errors.ErrRegistration))
}

func TestTeardownIsNewestFirst(t *testing.T) {
	host := rawtest.NewHost()
	r := New(host)

	first, err := r.Register(raw.HookCommand, 0, "", nil)
	require.NoError(t, err)
	second, err := r.Register(raw.ToggleAction, 0, "", nil)
	require.NoError(t, err)

	regs := r.Registrations(0)
	require.Len(t, regs, 2)
	assert.Same(t, first, regs[0])
	assert.Same(t, second, regs[1])

	host.RejectRemove(raw.HookCommand, true)
	host.RejectRemove(raw.ToggleAction, true)

	err = r.Teardown()
	errs := multierr.Errors(err)
	require.Len(t, errs, 2)
	assert.Contains(t, errs[0].Error(), "toggleaction")
	assert.Contains(t, errs[1].Error(), "hookcommand2")
	assert.Zero(t, r.Len())
}
