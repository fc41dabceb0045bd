//go:build !ios && !android && (amd64 || arm64)

package handle

import (
	"fmt"

	"github.com/obinnaokechukwu/reapgo/enums"
	"github.com/obinnaokechukwu/reapgo/errors"
	"github.com/obinnaokechukwu/reapgo/raw"
	"github.com/obinnaokechukwu/reapgo/thread"
)

// FX refers to one FX of a track's normal or input chain.
//
// FX have no pointer of their own. An FX is identified by its GUID when one
// is known and by its chain index otherwise; a GUID-identified FX follows
// reordering within its chain.
type FX struct {
	track   Ref[Track]
	index   int32
	input   bool
	guid    [16]byte
	hasGUID bool
}

// NewFX refers to the FX at index of track's chain.
func NewFX(track Ref[Track], index int32, input bool) FX {
	return FX{track: track, index: index, input: input}
}

// WithGUID returns a copy identified by guid.
func (f FX) WithGUID(guid [16]byte) FX {
	f.guid = guid
	f.hasGUID = true
	return f
}

// Track returns the track owning the chain.
func (f FX) Track() Ref[Track] { return f.track }

// Index returns the chain index the reference was last known at.
func (f FX) Index() int32 { return f.index }

// IsInput reports whether f lives on the record input chain.
func (f FX) IsInput() bool { return f.input }

// GUID returns the identifying GUID, if any.
func (f FX) GUID() ([16]byte, bool) { return f.guid, f.hasGUID }

func (f FX) String() string {
	chain := "fx"
	if f.input {
		chain = "input fx"
	}
	return fmt.Sprintf("%s %d on %s", chain, f.index, f.track)
}

// ValidatedFX is an FX that resolved to a live chain slot.
type ValidatedFX struct {
	Track Validated[Track]
	// Index is the host's FX index, including the input chain flag.
	Index int32
}

func queryIndex(index int32, input bool) int32 {
	if input {
		return index | raw.InputFXFlag
	}
	return index
}

// ResolveFX validates the track and locates f in its chain.
func ResolveFX(g *Gate, tok thread.Token, op string, f FX) (ValidatedFX, error) {
	tr, err := Check(g, tok, op, f.track)
	if err != nil {
		return ValidatedFX{}, err
	}

	var count int32
	if f.input {
		count = g.fns.TrackFXGetRecCount(tr.ptr)
	} else {
		count = g.fns.TrackFXGetCount(tr.ptr)
	}

	if !f.hasGUID {
		if f.index < 0 || f.index >= count {
			return ValidatedFX{}, errors.Invalidated(op, "fx")
		}
		return ValidatedFX{Track: tr, Index: queryIndex(f.index, f.input)}, nil
	}

	// Try the last known index first, then scan the chain.
	if f.index >= 0 && f.index < count {
		if id, ok := g.fns.TrackFXGetFXGUID(tr.ptr, queryIndex(f.index, f.input)); ok && id == f.guid {
			return ValidatedFX{Track: tr, Index: queryIndex(f.index, f.input)}, nil
		}
	}
	for i := int32(0); i < count; i++ {
		if id, ok := g.fns.TrackFXGetFXGUID(tr.ptr, queryIndex(i, f.input)); ok && id == f.guid {
			return ValidatedFX{Track: tr, Index: queryIndex(i, f.input)}, nil
		}
	}
	return ValidatedFX{}, errors.Invalidated(op, "fx")
}

// WithValidFX resolves f and runs fn with it.
func WithValidFX[R any](g *Gate, tok thread.Token, op string, f FX, fn func(ValidatedFX) (R, error)) (R, error) {
	v, err := ResolveFX(g, tok, op, f)
	if err != nil {
		var zero R
		return zero, err
	}
	return fn(v)
}

// Send refers to one send, receive or hardware output of a track.
type Send struct {
	track    Ref[Track]
	category enums.TrackSendCategory
	index    int32
}

// NewSend refers to the index-th route of category on track.
func NewSend(track Ref[Track], category enums.TrackSendCategory, index int32) Send {
	return Send{track: track, category: category, index: index}
}

// Track returns the owning track.
func (s Send) Track() Ref[Track] { return s.track }

// Category returns the route category.
func (s Send) Category() enums.TrackSendCategory { return s.category }

// Index returns the route index within its category.
func (s Send) Index() int32 { return s.index }

func (s Send) String() string {
	return fmt.Sprintf("%s %d on %s", s.category, s.index, s.track)
}

// ValidatedSend is a Send whose track is live and whose index exists.
type ValidatedSend struct {
	Track    Validated[Track]
	Category int32
	Index    int32
}

// ResolveSend validates the track and bounds-checks the route index.
func ResolveSend(g *Gate, tok thread.Token, op string, s Send) (ValidatedSend, error) {
	tr, err := Check(g, tok, op, s.track)
	if err != nil {
		return ValidatedSend{}, err
	}
	cat := s.category.Raw()
	if s.index < 0 || s.index >= g.fns.GetTrackNumSends(tr.ptr, cat) {
		return ValidatedSend{}, errors.Invalidated(op, "send")
	}
	return ValidatedSend{Track: tr, Category: cat, Index: s.index}, nil
}

// WithValidSend resolves s and runs fn with it.
func WithValidSend[R any](g *Gate, tok thread.Token, op string, s Send, fn func(ValidatedSend) (R, error)) (R, error) {
	v, err := ResolveSend(g, tok, op, s)
	if err != nil {
		var zero R
		return zero, err
	}
	return fn(v)
}
