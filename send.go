//go:build !ios && !android && (amd64 || arm64)

package reapgo

import (
	"math"

	"github.com/obinnaokechukwu/reapgo/enums"
	"github.com/obinnaokechukwu/reapgo/errors"
	"github.com/obinnaokechukwu/reapgo/handle"
	"github.com/obinnaokechukwu/reapgo/raw"
)

// Send is a send, receive or hardware output of a track, addressed by its
// index within the category. Removing an earlier route shifts the index.
type Send struct {
	s   *Session
	ref handle.Send
}

// SendCount returns the number of routes in category.
func (t Track) SendCount(tok MainToken, category enums.TrackSendCategory) (int, error) {
	var n int
	err := t.use(tok, "send count", func(fns raw.Functions, tr raw.Handle) error {
		n = int(fns.GetTrackNumSends(tr, category.Raw()))
		return nil
	})
	return n, err
}

// Send returns the route at idx of category. It is validated on use.
func (t Track) Send(category enums.TrackSendCategory, idx int) Send {
	return Send{s: t.s, ref: handle.NewSend(t.ref, category, int32(idx))}
}

// Sends returns every route of category.
func (t Track) Sends(tok MainToken, category enums.TrackSendCategory) ([]Send, error) {
	n, err := t.SendCount(tok, category)
	if err != nil {
		return nil, err
	}
	out := make([]Send, n)
	for i := range out {
		out[i] = t.Send(category, i)
	}
	return out, nil
}

// CreateSend adds a send from t to dest.
func (t Track) CreateSend(tok MainToken, dest Track) (Send, error) {
	const op = "create send"
	if dest.s == nil {
		return Send{}, errors.Invalidated(op, "track")
	}
	var snd Send
	err := t.use(tok, op, func(fns raw.Functions, src raw.Handle) error {
		return dest.use(tok, op, func(_ raw.Functions, dst raw.Handle) error {
			if src == dst {
				return errors.InvalidArgument(op, "a track cannot send to itself", nil)
			}
			idx := fns.CreateTrackSend(src, dst)
			if idx < 0 {
				return errors.HostRejected(op, "send not created")
			}
			snd = t.Send(enums.SendCategorySend, int(idx))
			return nil
		})
	})
	return snd, err
}

// CreateHardwareOutput adds a hardware output to t.
func (t Track) CreateHardwareOutput(tok MainToken) (Send, error) {
	const op = "create hardware output"
	var snd Send
	err := t.use(tok, op, func(fns raw.Functions, src raw.Handle) error {
		idx := fns.CreateTrackSend(src, raw.Null)
		if idx < 0 {
			return errors.HostRejected(op, "hardware output not created")
		}
		snd = t.Send(enums.SendCategoryHardwareOutput, int(idx))
		return nil
	})
	return snd, err
}

// Ref returns the underlying reference.
func (s Send) Ref() handle.Send { return s.ref }

func (s Send) String() string { return s.ref.String() }

// Track returns the track owning the route.
func (s Send) Track() Track { return Track{s: s.s, ref: s.ref.Track()} }

// Category returns the route category.
func (s Send) Category() enums.TrackSendCategory { return s.ref.Category() }

func (s Send) use(tok MainToken, op string, fn func(fns raw.Functions, v handle.ValidatedSend) error) error {
	if s.s == nil {
		return errors.Invalidated(op, "send")
	}
	v, err := handle.ResolveSend(s.s.gate, tok, op, s.ref)
	if err != nil {
		return err
	}
	return fn(s.s.fns, v)
}

func (s Send) value(tok MainToken, op, param string) (float64, error) {
	var out float64
	err := s.use(tok, op, func(fns raw.Functions, v handle.ValidatedSend) error {
		out = fns.GetTrackSendInfoValue(v.Track.Raw(), v.Category, v.Index, param)
		return nil
	})
	return out, err
}

func (s Send) setValue(tok MainToken, op, param string, value float64) error {
	return s.use(tok, op, func(fns raw.Functions, v handle.ValidatedSend) error {
		if !fns.SetTrackSendInfoValue(v.Track.Raw(), v.Category, v.Index, param, value) {
			return errors.HostRejected(op, param)
		}
		return nil
	})
}

// Volume returns the send level as a linear gain.
func (s Send) Volume(tok MainToken) (float64, error) {
	return s.value(tok, "send volume", raw.SendVolume)
}

func (s Send) SetVolume(tok MainToken, gain float64) error {
	const op = "set send volume"
	if math.IsNaN(gain) || gain < 0 {
		return errors.InvalidArgument(op, "gain must be non-negative", gain)
	}
	return s.setValue(tok, op, raw.SendVolume, gain)
}

// Pan returns the send pan in -1..1.
func (s Send) Pan(tok MainToken) (float64, error) {
	return s.value(tok, "send pan", raw.SendPan)
}

func (s Send) SetPan(tok MainToken, pan float64) error {
	const op = "set send pan"
	if math.IsNaN(pan) || pan < -1 || pan > 1 {
		return errors.InvalidArgument(op, "pan must be within -1..1", pan)
	}
	return s.setValue(tok, op, raw.SendPan, pan)
}

func (s Send) Muted(tok MainToken) (bool, error) {
	v, err := s.value(tok, "send mute", raw.SendMute)
	return v != 0, err
}

func (s Send) SetMuted(tok MainToken, muted bool) error {
	var v float64
	if muted {
		v = 1
	}
	return s.setValue(tok, "set send mute", raw.SendMute, v)
}

// Remove deletes the route. Later routes of the category shift down.
func (s Send) Remove(tok MainToken) error {
	const op = "remove send"
	return s.use(tok, op, func(fns raw.Functions, v handle.ValidatedSend) error {
		if !fns.RemoveTrackSend(v.Track.Raw(), v.Category, v.Index) {
			return errors.HostRejected(op, "send not removed")
		}
		return nil
	})
}
