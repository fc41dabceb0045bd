//go:build !ios && !android && (amd64 || arm64)

package reapgo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/obinnaokechukwu/reapgo/errors"
	"github.com/obinnaokechukwu/reapgo/raw"
)

func TestRegisterAndRunAction(t *testing.T) {
	s, _, tok := newTestSession(t)

	var runs int
	on := false
	id, reg, err := s.RegisterAction(tok, "toggle_thing", Action{
		Description: "Toggle the thing",
		Run: func(ctx MainContext) {
			runs++
			on = !on
			assert.True(t, ctx.Token.Valid())
		},
		Toggle: func(MainContext) bool { return on },
	})
	require.NoError(t, err)
	assert.Equal(t, "Toggle the thing", reg.Name())

	looked, err := s.LookupCommand(tok, "_REAPGO_toggle_thing")
	require.NoError(t, err)
	assert.Equal(t, id, looked)

	state, err := s.ToggleState(tok, MainSection, id)
	require.NoError(t, err)
	assert.Equal(t, ToggleOff, state)

	require.NoError(t, s.RunAction(tok, id))
	assert.Equal(t, 1, runs)
	state, err = s.ToggleState(tok, MainSection, id)
	require.NoError(t, err)
	assert.Equal(t, ToggleOn, state)

	require.NoError(t, reg.Unregister())
	require.NoError(t, s.RunAction(tok, id))
	assert.Equal(t, 1, runs, "unregistered actions do not run")
	state, err = s.ToggleState(tok, MainSection, id)
	require.NoError(t, err)
	assert.Equal(t, ToggleNone, state)
}

func TestRegisterActionErrors(t *testing.T) {
	s, host, tok := newTestSession(t)

	_, _, err := s.RegisterAction(tok, "", Action{Run: func(MainContext) {}})
	assert.ErrorIs(t, err, errors.ErrInvalidArgument)

	_, _, err = s.RegisterAction(tok, "no_run", Action{})
	assert.ErrorIs(t, err, errors.ErrInvalidArgument)

	_, _, err = s.RegisterAction(tok, "dup", Action{Run: func(MainContext) {}})
	require.NoError(t, err)
	_, _, err = s.RegisterAction(tok, "dup", Action{Run: func(MainContext) {}})
	assert.ErrorIs(t, err, errors.ErrRegistration)

	host.RejectAdd(raw.Gaccel, true)
	_, _, err = s.RegisterAction(tok, "rejected", Action{Run: func(MainContext) {}})
	assert.Error(t, err)
	host.RejectAdd(raw.Gaccel, false)

	host.EnterAudioThread()
	_, _, err = s.RegisterAction(tok, "audio", Action{Run: func(MainContext) {}})
	assert.ErrorIs(t, err, ErrThreadViolation)
	host.EnterMainThread()

	_, err = s.LookupCommand(tok, "_NOPE")
	assert.ErrorIs(t, err, ErrHostRejected)
	assert.ErrorIs(t, s.RunAction(tok, 0), errors.ErrInvalidArgument)
}

func TestPanickingActionIsContained(t *testing.T) {
	s, host, tok := newTestSession(t)

	id, _, err := s.RegisterAction(tok, "bad", Action{
		Run:    func(MainContext) { panic("run") },
		Toggle: func(MainContext) bool { panic("toggle") },
	})
	require.NoError(t, err)

	assert.NotPanics(t, func() {
		assert.False(t, host.FireCommand(id.Raw(), 0))
		assert.Equal(t, int32(ToggleNone), host.FireToggle(id.Raw()))
	})
	panics, _ := s.Stats()
	assert.EqualValues(t, 2, panics)
}

func TestObservePostCommand(t *testing.T) {
	s, _, tok := newTestSession(t)

	id, _, err := s.RegisterAction(tok, "noop", Action{Run: func(MainContext) {}})
	require.NoError(t, err)

	var seen []string
	first, err := s.ObservePostCommand(tok, func(_ MainContext, got CommandID, _ int32) {
		assert.Equal(t, id, got)
		seen = append(seen, "first")
	})
	require.NoError(t, err)
	_, err = s.ObservePostCommand(tok, func(MainContext, CommandID, int32) {
		seen = append(seen, "second")
	})
	require.NoError(t, err)

	require.NoError(t, s.RunAction(tok, id))
	assert.Equal(t, []string{"first", "second"}, seen)

	first.Cancel()
	first.Cancel()
	seen = nil
	require.NoError(t, s.RunAction(tok, id))
	assert.Equal(t, []string{"second"}, seen)

	_, err = s.ObservePostCommand(tok, nil)
	assert.ErrorIs(t, err, errors.ErrInvalidArgument)
}
