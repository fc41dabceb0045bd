//go:build !ios && !android && (amd64 || arm64)

package reapgo

import (
	"math"

	"github.com/obinnaokechukwu/reapgo/enums"
	"github.com/obinnaokechukwu/reapgo/errors"
	"github.com/obinnaokechukwu/reapgo/handle"
	"github.com/obinnaokechukwu/reapgo/raw"
)

// Track is a reference to a track. It stays usable as a value after the
// track is deleted; every operation then fails with ErrInvalidated.
type Track struct {
	s   *Session
	ref handle.Ref[handle.Track]
}

func (s *Session) track(proj, h raw.Handle) Track {
	return Track{s: s, ref: handle.New[handle.Track](proj, h)}
}

// Ref returns the underlying reference.
func (t Track) Ref() handle.Ref[handle.Track] { return t.ref }

func (t Track) String() string { return t.ref.String() }

// Same reports whether t and o were obtained from the same host pointer.
func (t Track) Same(o Track) bool { return t.ref.Same(o.ref) }

// IsValid reports whether the track still exists.
func (t Track) IsValid(tok MainToken) bool {
	return t.s != nil && tok.Valid() && handle.Alive(t.s.gate, t.ref)
}

func (t Track) use(tok MainToken, op string, fn func(fns raw.Functions, tr raw.Handle) error) error {
	if t.s == nil {
		return errors.Invalidated(op, "track")
	}
	return handle.Use(t.s.gate, tok, op, t.ref, func(v handle.Validated[handle.Track]) error {
		return fn(t.s.fns, v.Raw())
	})
}

func (t Track) useValidated(tok MainToken, op string, fn func(fns raw.Functions, v handle.Validated[handle.Track]) error) error {
	if t.s == nil {
		return errors.Invalidated(op, "track")
	}
	return handle.Use(t.s.gate, tok, op, t.ref, func(v handle.Validated[handle.Track]) error {
		return fn(t.s.fns, v)
	})
}

func (t Track) value(tok MainToken, op, param string) (float64, error) {
	var v float64
	err := t.use(tok, op, func(fns raw.Functions, tr raw.Handle) error {
		v = fns.GetMediaTrackInfoValue(tr, param)
		return nil
	})
	return v, err
}

func (t Track) setValue(tok MainToken, op, param string, v float64) error {
	return t.use(tok, op, func(fns raw.Functions, tr raw.Handle) error {
		if !fns.SetMediaTrackInfoValue(tr, param, v) {
			return errors.HostRejected(op, param)
		}
		return nil
	})
}

func (t Track) flag(tok MainToken, op, param string) (bool, error) {
	v, err := t.value(tok, op, param)
	return v != 0, err
}

func (t Track) setFlag(tok MainToken, op, param string, on bool) error {
	var v float64
	if on {
		v = 1
	}
	return t.setValue(tok, op, param, v)
}

// Name returns the track name.
func (t Track) Name(tok MainToken) (string, error) {
	const op = "track name"
	var name string
	err := t.use(tok, op, func(fns raw.Functions, tr raw.Handle) error {
		buf := make([]byte, stringBufSize)
		if !fns.GetSetMediaTrackInfoString(tr, raw.TrackName, buf, false) {
			return errors.HostRejected(op, raw.TrackName)
		}
		name = cString(buf)
		return nil
	})
	return name, err
}

// SetName renames the track.
func (t Track) SetName(tok MainToken, name string) error {
	const op = "set track name"
	if err := checkString(op, name); err != nil {
		return err
	}
	return t.use(tok, op, func(fns raw.Functions, tr raw.Handle) error {
		if !fns.GetSetMediaTrackInfoString(tr, raw.TrackName, cBuffer(name), true) {
			return errors.HostRejected(op, raw.TrackName)
		}
		return nil
	})
}

// Volume returns the volume as a linear gain, 1 being 0 dB.
func (t Track) Volume(tok MainToken) (float64, error) {
	return t.value(tok, "track volume", raw.TrackVolume)
}

// SetVolume sets the linear gain.
func (t Track) SetVolume(tok MainToken, gain float64) error {
	const op = "set track volume"
	if math.IsNaN(gain) || gain < 0 {
		return errors.InvalidArgument(op, "gain must be non-negative", gain)
	}
	return t.setValue(tok, op, raw.TrackVolume, gain)
}

// Pan returns the pan position in -1..1.
func (t Track) Pan(tok MainToken) (float64, error) {
	return t.value(tok, "track pan", raw.TrackPan)
}

// SetPan sets the pan position.
func (t Track) SetPan(tok MainToken, pan float64) error {
	const op = "set track pan"
	if math.IsNaN(pan) || pan < -1 || pan > 1 {
		return errors.InvalidArgument(op, "pan must be within -1..1", pan)
	}
	return t.setValue(tok, op, raw.TrackPan, pan)
}

func (t Track) Muted(tok MainToken) (bool, error) {
	return t.flag(tok, "track mute", raw.TrackMute)
}

func (t Track) SetMuted(tok MainToken, muted bool) error {
	return t.setFlag(tok, "set track mute", raw.TrackMute, muted)
}

// Soloed reports any solo mode.
func (t Track) Soloed(tok MainToken) (bool, error) {
	return t.flag(tok, "track solo", raw.TrackSolo)
}

// SetSoloed sets plain solo or clears any solo mode.
func (t Track) SetSoloed(tok MainToken, soloed bool) error {
	return t.setFlag(tok, "set track solo", raw.TrackSolo, soloed)
}

func (t Track) Armed(tok MainToken) (bool, error) {
	return t.flag(tok, "track arm", raw.TrackRecArm)
}

func (t Track) SetArmed(tok MainToken, armed bool) error {
	return t.setFlag(tok, "set track arm", raw.TrackRecArm, armed)
}

func (t Track) Selected(tok MainToken) (bool, error) {
	return t.flag(tok, "track selected", raw.TrackSelected)
}

func (t Track) SetSelected(tok MainToken, selected bool) error {
	return t.setFlag(tok, "set track selected", raw.TrackSelected, selected)
}

// InputMonitoring returns the record monitoring mode.
func (t Track) InputMonitoring(tok MainToken) (enums.InputMonitoringMode, error) {
	v, err := t.value(tok, "track input monitoring", raw.TrackRecMonitor)
	if err != nil {
		return 0, err
	}
	return enums.ParseInputMonitoringMode(int32(v))
}

func (t Track) SetInputMonitoring(tok MainToken, mode enums.InputMonitoringMode) error {
	return t.setValue(tok, "set track input monitoring", raw.TrackRecMonitor, float64(mode.Raw()))
}

// RecordingInput returns the record input.
func (t Track) RecordingInput(tok MainToken) (enums.RecordingInput, error) {
	v, err := t.value(tok, "track recording input", raw.TrackRecInput)
	if err != nil {
		return enums.RecordingInput{}, err
	}
	return enums.ParseRecordingInput(int32(v))
}

func (t Track) SetRecordingInput(tok MainToken, in enums.RecordingInput) error {
	return t.setValue(tok, "set track recording input", raw.TrackRecInput, float64(in.Raw()))
}

// AutomationMode returns the track's automation mode.
func (t Track) AutomationMode(tok MainToken) (enums.AutomationMode, error) {
	v, err := t.value(tok, "track automation mode", raw.TrackAutoMode)
	if err != nil {
		return 0, err
	}
	return enums.ParseAutomationMode(int32(v))
}

func (t Track) SetAutomationMode(tok MainToken, mode enums.AutomationMode) error {
	const op = "set track automation mode"
	if _, err := enums.ParseAutomationMode(mode.Raw()); err != nil {
		return errors.InvalidArgument(op, "unknown automation mode", mode.Raw())
	}
	return t.setValue(tok, op, raw.TrackAutoMode, float64(mode.Raw()))
}

// GUID returns the track's persistent identity.
func (t Track) GUID(tok MainToken) (Guid, error) {
	const op = "track guid"
	var g Guid
	err := t.use(tok, op, func(fns raw.Functions, tr raw.Handle) error {
		b, ok := fns.GetTrackGUID(tr)
		if !ok {
			return errors.HostRejected(op, "no guid")
		}
		g = GuidFromRaw(b)
		return nil
	})
	return g, err
}

// Index returns the zero-based position in the project, or -1 for the
// master track.
func (t Track) Index(tok MainToken) (int, error) {
	const op = "track index"
	v, err := t.value(tok, op, raw.TrackNumber)
	if err != nil {
		return 0, err
	}
	switch {
	case v == -1:
		return -1, nil
	case v < 1:
		return 0, errors.HostRejected(op, "track is not in its project")
	}
	return int(v) - 1, nil
}

// IsMaster reports whether t is a master track.
func (t Track) IsMaster(tok MainToken) (bool, error) {
	v, err := t.value(tok, "track is master", raw.TrackNumber)
	return v == -1, err
}

// Delete removes the track from its project. t is invalid afterwards.
func (t Track) Delete(tok MainToken) error {
	return t.use(tok, "delete track", func(fns raw.Functions, tr raw.Handle) error {
		fns.DeleteTrack(tr)
		return nil
	})
}

// Project returns the project the track was obtained from.
func (t Track) Project() Project {
	return Project{s: t.s, ref: t.ref.Project()}
}
