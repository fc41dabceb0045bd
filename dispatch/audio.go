//go:build !ios && !android && (amd64 || arm64)

package dispatch

import (
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/obinnaokechukwu/reapgo/raw"
	"github.com/obinnaokechukwu/reapgo/registry"
	"github.com/obinnaokechukwu/reapgo/thread"
)

// AudioContext is handed to audio handlers. Its token expires when the
// handler returns.
type AudioContext struct {
	Token        thread.AudioToken
	Slot         uintptr
	Block        raw.AudioBlock
	Registration *registry.Registration
}

// AudioHandler runs on the realtime audio thread, once before and once
// after the host processes each block. It must not block or allocate.
type AudioHandler interface {
	OnAudioBuffer(ctx AudioContext)
}

// AudioFunc adapts a function to AudioHandler.
type AudioFunc func(ctx AudioContext)

// OnAudioBuffer implements AudioHandler.
func (f AudioFunc) OnAudioBuffer(ctx AudioContext) { f(ctx) }

// audioState is allocated at registration so dispatch never allocates.
type audioState struct {
	handler   AudioHandler
	scope     thread.Scope
	failures  atomic.Uint32
	trippedAt atomic.Int64
}

// RegisterAudioHook registers h as a hardware audio hook.
func (d *Dispatcher) RegisterAudioHook(tok thread.MainToken, h AudioHandler) (*registry.Registration, error) {
	const op = "register audio hook"
	if err := checkRegister(op, tok); err != nil {
		return nil, err
	}
	if h == nil {
		return nil, invalidHandler(op)
	}
	return d.reg.Register(raw.AudioHook, 0, "", &audioState{handler: h})
}

// OnAudioBuffer implements raw.Callbacks. Apart from a recovered panic it
// neither locks nor allocates.
func (d *Dispatcher) OnAudioBuffer(slot uintptr, block raw.AudioBlock) {
	reg := d.reg.Audio(slot)
	if reg == nil {
		return
	}
	st, _ := reg.Value().(*audioState)
	if st == nil || !d.audioAllowed(st) {
		return
	}

	tok := st.scope.Enter()
	defer st.scope.Exit()
	defer d.recoverAudio(st, slot)

	st.handler.OnAudioBuffer(AudioContext{Token: tok, Slot: slot, Block: block, Registration: reg})
	if st.failures.Load() != 0 {
		st.failures.Store(0)
	}
}

// audioAllowed is the audio thread's circuit breaker. It only reads the
// clock while tripped.
func (d *Dispatcher) audioAllowed(st *audioState) bool {
	if !d.firewall.Enabled {
		return true
	}
	tripped := st.trippedAt.Load()
	if tripped == 0 {
		return true
	}
	if time.Now().UnixNano()-tripped < int64(d.firewall.Cooldown) {
		d.skipped.Add(1)
		return false
	}
	// Half-open: one more failure trips it again.
	st.trippedAt.Store(0)
	st.failures.Store(d.firewall.FailureThreshold - 1)
	return true
}

func (d *Dispatcher) recoverAudio(st *audioState, slot uintptr) {
	p := recover()
	if p == nil {
		return
	}
	d.panics.Add(1)
	log := d.logger()
	log.Error("recovered handler panic",
		zap.Stringer("kind", raw.AudioHook),
		zap.Uintptr("key", slot),
		zap.Any("panic", p))
	if d.firewall.Enabled && st.failures.Add(1) >= d.firewall.FailureThreshold {
		st.trippedAt.Store(time.Now().UnixNano())
		log.Error("audio hook disabled after repeated panics",
			zap.Uintptr("key", slot),
			zap.Duration("cooldown", d.firewall.Cooldown))
	}
}
