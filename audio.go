//go:build !ios && !android && (amd64 || arm64)

package reapgo

import (
	"github.com/obinnaokechukwu/reapgo/dispatch"
	"github.com/obinnaokechukwu/reapgo/errors"
	"github.com/obinnaokechukwu/reapgo/raw"
)

// AudioHook runs on the realtime audio thread, once before (IsPost false)
// and once after (IsPost true) the host processes each block. It must not
// block, allocate or call main-thread operations.
type AudioHook interface {
	OnAudioBuffer(args AudioHookArgs)
}

// AudioHookFunc adapts a function to AudioHook.
type AudioHookFunc func(args AudioHookArgs)

// OnAudioBuffer implements AudioHook.
func (f AudioHookFunc) OnAudioBuffer(args AudioHookArgs) { f(args) }

// AudioHookArgs describes one invocation. Nothing in it may be used after
// the hook returns.
type AudioHookArgs struct {
	Token      AudioToken
	IsPost     bool
	Length     int32
	SampleRate Hz
	Register   AudioHookRegister
}

// AudioHookRegister gives access to the hook's channel buffers.
type AudioHookRegister struct {
	fns     raw.Functions
	h       raw.Handle
	length  int32
	inputs  int32
	outputs int32
}

// InputChannels returns the number of input channels.
func (r AudioHookRegister) InputChannels() int32 { return r.inputs }

// OutputChannels returns the number of output channels.
func (r AudioHookRegister) OutputChannels() int32 { return r.outputs }

// Input returns the samples of input channel ch for this block.
func (r AudioHookRegister) Input(tok AudioToken, ch int32) ([]float64, error) {
	return r.buffer(tok, "audio input buffer", false, ch, r.inputs)
}

// Output returns the samples of output channel ch for this block. Writes
// go to the hardware output.
func (r AudioHookRegister) Output(tok AudioToken, ch int32) ([]float64, error) {
	return r.buffer(tok, "audio output buffer", true, ch, r.outputs)
}

func (r AudioHookRegister) buffer(tok AudioToken, op string, output bool, ch, n int32) ([]float64, error) {
	if err := tok.Check(op); err != nil {
		return nil, err
	}
	if ch < 0 || ch >= n {
		return nil, errors.InvalidArgument(op, "channel out of range", ch)
	}
	buf := r.fns.AudioBuffer(r.h, output, ch, r.length)
	if buf == nil {
		return nil, errors.HostRejected(op, "no buffer")
	}
	return buf, nil
}

type audioAdapter struct {
	fns  raw.Functions
	hook AudioHook
}

func (a *audioAdapter) OnAudioBuffer(ctx dispatch.AudioContext) {
	b := ctx.Block
	a.hook.OnAudioBuffer(AudioHookArgs{
		Token:      ctx.Token,
		IsPost:     b.IsPost,
		Length:     b.Length,
		SampleRate: Hz(b.SampleRate),
		Register: AudioHookRegister{
			fns:     a.fns,
			h:       b.Register,
			length:  b.Length,
			inputs:  b.InputChannels,
			outputs: b.OutputChannels,
		},
	})
}

// RegisterAudioHook registers h as a hardware audio hook. A hook that
// panics repeatedly is disabled for the configured cooldown.
func (s *Session) RegisterAudioHook(tok MainToken, h AudioHook) (*Registration, error) {
	if h == nil {
		return nil, errors.InvalidArgument("register audio hook", "audio hook is nil", nil)
	}
	return s.disp.RegisterAudioHook(tok, &audioAdapter{fns: s.fns, hook: h})
}
