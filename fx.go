//go:build !ios && !android && (amd64 || arm64)

package reapgo

import (
	"github.com/obinnaokechukwu/reapgo/errors"
	"github.com/obinnaokechukwu/reapgo/handle"
	"github.com/obinnaokechukwu/reapgo/raw"
)

// FX is a plug-in instance on a track's FX chain or record input chain.
// It is identified by its GUID, so it keeps working when the chain is
// reordered.
type FX struct {
	s   *Session
	ref handle.FX
}

// FXCount returns the length of the normal FX chain.
func (t Track) FXCount(tok MainToken) (int, error) {
	var n int
	err := t.use(tok, "fx count", func(fns raw.Functions, tr raw.Handle) error {
		n = int(fns.TrackFXGetCount(tr))
		return nil
	})
	return n, err
}

// InputFXCount returns the length of the record input chain.
func (t Track) InputFXCount(tok MainToken) (int, error) {
	var n int
	err := t.use(tok, "input fx count", func(fns raw.Functions, tr raw.Handle) error {
		n = int(fns.TrackFXGetRecCount(tr))
		return nil
	})
	return n, err
}

// FX returns the FX at idx of the normal chain.
func (t Track) FX(tok MainToken, idx int) (FX, error) {
	return t.fxAt(tok, "get fx", idx, false)
}

// InputFX returns the FX at idx of the record input chain.
func (t Track) InputFX(tok MainToken, idx int) (FX, error) {
	return t.fxAt(tok, "get input fx", idx, true)
}

func (t Track) fxAt(tok MainToken, op string, idx int, input bool) (FX, error) {
	var f FX
	err := t.use(tok, op, func(fns raw.Functions, tr raw.Handle) error {
		var count int32
		if input {
			count = fns.TrackFXGetRecCount(tr)
		} else {
			count = fns.TrackFXGetCount(tr)
		}
		if idx < 0 || idx >= int(count) {
			return errors.InvalidArgument(op, "fx index out of range", idx)
		}
		f = t.identifyFX(fns, tr, int32(idx), input)
		return nil
	})
	return f, err
}

func (t Track) identifyFX(fns raw.Functions, tr raw.Handle, idx int32, input bool) FX {
	ref := handle.NewFX(t.ref, idx, input)
	q := idx
	if input {
		q |= raw.InputFXFlag
	}
	if g, ok := fns.TrackFXGetFXGUID(tr, q); ok {
		ref = ref.WithGUID(g)
	}
	return FX{s: t.s, ref: ref}
}

// AddFX appends a new instance of the named plug-in.
func (t Track) AddFX(tok MainToken, name string, input bool) (FX, error) {
	return t.addFX(tok, "add fx", name, input, -1)
}

// FindOrAddFX returns the first instance of the named plug-in, adding one
// if there is none.
func (t Track) FindOrAddFX(tok MainToken, name string, input bool) (FX, error) {
	return t.addFX(tok, "find or add fx", name, input, 1)
}

func (t Track) addFX(tok MainToken, op, name string, input bool, instantiate int32) (FX, error) {
	if name == "" {
		return FX{}, errors.InvalidArgument(op, "fx name is empty", name)
	}
	if err := checkString(op, name); err != nil {
		return FX{}, err
	}
	var f FX
	err := t.use(tok, op, func(fns raw.Functions, tr raw.Handle) error {
		idx := fns.TrackFXAddByName(tr, name, input, instantiate)
		if idx < 0 {
			return errors.HostRejected(op, "plug-in "+name+" not available")
		}
		f = t.identifyFX(fns, tr, idx&^raw.InputFXFlag, input)
		return nil
	})
	return f, err
}

// FXByGUID locates an FX on either chain.
func (t Track) FXByGUID(tok MainToken, g Guid) (FX, error) {
	const op = "fx by guid"
	for _, input := range [2]bool{false, true} {
		f := FX{s: t.s, ref: handle.NewFX(t.ref, 0, input).WithGUID(g.Raw())}
		if _, err := f.resolve(tok, op); err == nil {
			return f, nil
		} else if !errors.IsInvalidated(err) {
			return FX{}, err
		}
	}
	return FX{}, errors.Invalidated(op, "fx")
}

// Ref returns the underlying reference.
func (f FX) Ref() handle.FX { return f.ref }

func (f FX) String() string { return f.ref.String() }

// Track returns the track owning the chain.
func (f FX) Track() Track { return Track{s: f.s, ref: f.ref.Track()} }

// IsInput reports whether f is on the record input chain.
func (f FX) IsInput() bool { return f.ref.IsInput() }

func (f FX) resolve(tok MainToken, op string) (handle.ValidatedFX, error) {
	if f.s == nil {
		return handle.ValidatedFX{}, errors.Invalidated(op, "fx")
	}
	return handle.ResolveFX(f.s.gate, tok, op, f.ref)
}

func (f FX) use(tok MainToken, op string, fn func(fns raw.Functions, tr raw.Handle, idx int32) error) error {
	v, err := f.resolve(tok, op)
	if err != nil {
		return err
	}
	return fn(f.s.fns, v.Track.Raw(), v.Index)
}

// Index returns the current position in the chain.
func (f FX) Index(tok MainToken) (int, error) {
	v, err := f.resolve(tok, "fx index")
	if err != nil {
		return 0, err
	}
	return int(v.Index &^ raw.InputFXFlag), nil
}

// GUID returns the FX identity.
func (f FX) GUID(tok MainToken) (Guid, error) {
	const op = "fx guid"
	var g Guid
	err := f.use(tok, op, func(fns raw.Functions, tr raw.Handle, idx int32) error {
		b, ok := fns.TrackFXGetFXGUID(tr, idx)
		if !ok {
			return errors.HostRejected(op, "no guid")
		}
		g = GuidFromRaw(b)
		return nil
	})
	return g, err
}

// Name returns the display name.
func (f FX) Name(tok MainToken) (string, error) {
	const op = "fx name"
	var name string
	err := f.use(tok, op, func(fns raw.Functions, tr raw.Handle, idx int32) error {
		buf := make([]byte, stringBufSize)
		if !fns.TrackFXGetFXName(tr, idx, buf) {
			return errors.HostRejected(op, "no name")
		}
		name = cString(buf)
		return nil
	})
	return name, err
}

func (f FX) Enabled(tok MainToken) (bool, error) {
	var on bool
	err := f.use(tok, "fx enabled", func(fns raw.Functions, tr raw.Handle, idx int32) error {
		on = fns.TrackFXGetEnabled(tr, idx)
		return nil
	})
	return on, err
}

func (f FX) SetEnabled(tok MainToken, enabled bool) error {
	return f.use(tok, "set fx enabled", func(fns raw.Functions, tr raw.Handle, idx int32) error {
		fns.TrackFXSetEnabled(tr, idx, enabled)
		return nil
	})
}

// ParamCount returns the number of parameters.
func (f FX) ParamCount(tok MainToken) (int, error) {
	var n int
	err := f.use(tok, "fx param count", func(fns raw.Functions, tr raw.Handle, idx int32) error {
		n = int(fns.TrackFXGetNumParams(tr, idx))
		return nil
	})
	return n, err
}

// Param returns the normalized value of parameter param.
func (f FX) Param(tok MainToken, param int) (NormalizedValue, error) {
	const op = "fx param"
	var v NormalizedValue
	err := f.use(tok, op, func(fns raw.Functions, tr raw.Handle, idx int32) error {
		if param < 0 || param >= int(fns.TrackFXGetNumParams(tr, idx)) {
			return errors.InvalidArgument(op, "parameter index out of range", param)
		}
		v = NormalizedValue(fns.TrackFXGetParamNormalized(tr, idx, int32(param)))
		return nil
	})
	return v, err
}

// SetParam sets parameter param.
func (f FX) SetParam(tok MainToken, param int, v NormalizedValue) error {
	const op = "set fx param"
	if _, err := NewNormalizedValue(float64(v)); err != nil {
		return err
	}
	return f.use(tok, op, func(fns raw.Functions, tr raw.Handle, idx int32) error {
		if param < 0 || param >= int(fns.TrackFXGetNumParams(tr, idx)) {
			return errors.InvalidArgument(op, "parameter index out of range", param)
		}
		if !fns.TrackFXSetParamNormalized(tr, idx, int32(param), float64(v)) {
			return errors.HostRejected(op, "parameter not set")
		}
		return nil
	})
}

// Delete removes the FX from its chain. f is invalid afterwards.
func (f FX) Delete(tok MainToken) error {
	const op = "delete fx"
	return f.use(tok, op, func(fns raw.Functions, tr raw.Handle, idx int32) error {
		if !fns.TrackFXDelete(tr, idx) {
			return errors.HostRejected(op, "fx not deleted")
		}
		return nil
	})
}
