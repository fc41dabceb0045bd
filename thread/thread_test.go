//go:build !ios && !android && (amd64 || arm64)

package thread

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/obinnaokechukwu/reapgo/errors"
)

type fakeThreads struct {
	id atomic.Uint64
}

func (f *fakeThreads) current() ID    { return ID(f.id.Load()) }
func (f *fakeThreads) switchTo(id ID) { f.id.Store(uint64(id)) }

func newFakeGuard() (*Guard, *fakeThreads) {
	ft := &fakeThreads{}
	ft.switchTo(1)
	g := NewGuard(ft.current)
	g.BindMain()
	return g, ft
}

func TestMainTokenOnMainThread(t *testing.T) {
	g, _ := newFakeGuard()

	tok, err := g.Main()
	require.NoError(t, err)
	assert.True(t, tok.Valid())
	assert.NoError(t, tok.Check("op"))
	assert.Equal(t, MainThreadOnly, tok.Class())
}

func TestMainTokenOffMainThread(t *testing.T) {
	g, ft := newFakeGuard()

	tok, err := g.Main()
	require.NoError(t, err)

	ft.switchTo(2)
	_, err = g.Main()
	assert.True(t, errors.IsThreadViolation(err))

	err = tok.Check("get track name")
	assert.True(t, errors.Is(err, errors.ErrThreadViolation))
	assert.Contains(t, err.Error(), "get track name")

	ft.switchTo(1)
	assert.NoError(t, tok.Check("get track name"))
}

func TestUnidentifiedThreadGetsNoMainToken(t *testing.T) {
	ft := &fakeThreads{}
	g := NewGuard(ft.current)
	g.BindMain()

	assert.False(t, g.OnMain())
	_, err := g.Main()
	require.Error(t, err)
	assert.True(t, errors.IsThreadViolation(err))
	assert.Contains(t, err.Error(), "thread identity unavailable")

	// Every thread reports NoThread, so none of them may pass as main.
	tok := MainToken{guard: g}
	assert.False(t, tok.Valid())
}

func TestMainTokenAfterUnbind(t *testing.T) {
	g, _ := newFakeGuard()
	tok, err := g.Main()
	require.NoError(t, err)

	g.Unbind()
	assert.False(t, tok.Valid())
	assert.True(t, errors.IsThreadViolation(tok.Check("op")))
}

func TestZeroTokensAreInvalid(t *testing.T) {
	var m MainToken
	var a AudioToken

	assert.False(t, m.Valid())
	assert.False(t, a.Valid())
	assert.True(t, errors.IsThreadViolation(m.Check("op")))
	assert.True(t, errors.IsThreadViolation(a.Check("op")))
}

func TestAudioTokenExpiresWithScope(t *testing.T) {
	var s Scope
	assert.False(t, s.Active())

	tok := s.Enter()
	assert.True(t, s.Active())
	assert.NoError(t, tok.Check("read midi"))

	s.Exit()
	assert.False(t, s.Active())
	assert.True(t, errors.IsThreadViolation(tok.Check("read midi")))

	// A later callback does not revive an escaped token.
	next := s.Enter()
	defer s.Exit()
	assert.False(t, tok.Valid())
	assert.True(t, next.Valid())
}

func TestAudioTokenCheckDoesNotAllocate(t *testing.T) {
	var s Scope
	allocs := testing.AllocsPerRun(100, func() {
		tok := s.Enter()
		if tok.Check("op") != nil {
			t.Fatal("token should be valid")
		}
		s.Exit()
	})
	assert.Zero(t, allocs)
}

func TestRequire(t *testing.T) {
	g, ft := newFakeGuard()
	main, err := g.Main()
	require.NoError(t, err)

	var s Scope
	audio := s.Enter()
	defer s.Exit()

	tests := []struct {
		name    string
		class   Class
		tok     Token
		wantErr bool
	}{
		{"any without token", Any, nil, false},
		{"main with main", MainThreadOnly, main, false},
		{"main with audio", MainThreadOnly, audio, true},
		{"main without token", MainThreadOnly, nil, true},
		{"audio with audio", AudioThreadOnly, audio, false},
		{"audio with main", AudioThreadOnly, main, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Require("op", tt.class, tt.tok)
			if tt.wantErr {
				assert.True(t, errors.IsThreadViolation(err), "got %v", err)
			} else {
				assert.NoError(t, err)
			}
		})
	}

	ft.switchTo(7)
	assert.True(t, errors.IsThreadViolation(Require("op", MainThreadOnly, main)))
}

func TestOSThreadGuard(t *testing.T) {
	g := NewGuard(nil)
	_, err := g.Main()
	assert.True(t, errors.IsThreadViolation(err), "unbound guard must not mint tokens")
}

func TestClassString(t *testing.T) {
	assert.Equal(t, "any", Any.String())
	assert.Equal(t, "main", MainThreadOnly.String())
	assert.Equal(t, "audio", AudioThreadOnly.String())
	assert.Equal(t, "unknown", Class(42).String())
}
