//go:build !ios && !android && (amd64 || arm64)

package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSentinelMatching(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
		check    func(error) bool
	}{
		{"invalidated", Invalidated("track name", "MediaTrack*"), ErrInvalidated, IsInvalidated},
		{"thread", ThreadViolation("track name", "not on main thread"), ErrThreadViolation, IsThreadViolation},
		{"unknown", UnknownVariant("AutomationMode", int32(9)), ErrUnknownVariant, IsUnknownVariant},
		{"rejected", HostRejected("create send", "returned -1"), ErrHostRejected, IsHostRejected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, stderrors.Is(tt.err, tt.sentinel))
			assert.True(t, tt.check(tt.err))

			wrapped := fmt.Errorf("outer: %w", tt.err)
			assert.True(t, stderrors.Is(wrapped, tt.sentinel))
			assert.True(t, tt.check(wrapped))
		})
	}
}

func TestKindsDoNotCrossMatch(t *testing.T) {
	err := Invalidated("op", "MediaTrack*")
	assert.False(t, stderrors.Is(err, ErrThreadViolation))
	assert.False(t, IsHostRejected(err))
	assert.Equal(t, Kind(""), KindOf(stderrors.New("plain")))
}

func TestErrorMessage(t *testing.T) {
	err := &Error{
		Kind:   KindHostRejected,
		Op:     "TrackFX_AddByName",
		Detail: "returned -1",
		Cause:  stderrors.New("boom"),
	}
	assert.Equal(t, "reapgo: TrackFX_AddByName: host_rejected: returned -1 (caused by: boom)", err.Error())
	assert.Equal(t, "reapgo: convert AutomationMode: unknown_variant (value 9)",
		UnknownVariant("AutomationMode", 9).Error())
}

func TestUnwrap(t *testing.T) {
	cause := stderrors.New("root")
	err := Registration("register audio hook", "no free slot", cause)
	assert.ErrorIs(t, err, cause)
	assert.ErrorIs(t, err, ErrRegistration)
}

func TestFatalPanics(t *testing.T) {
	assert.PanicsWithValue(t, "reapgo: internal invariant violated: slot table corrupt", func() {
		Fatal("slot table corrupt")
	})
}
