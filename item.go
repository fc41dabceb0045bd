//go:build !ios && !android && (amd64 || arm64)

package reapgo

import (
	"math"

	"github.com/obinnaokechukwu/reapgo/errors"
	"github.com/obinnaokechukwu/reapgo/handle"
	"github.com/obinnaokechukwu/reapgo/raw"
)

// Item is a media item on a track.
type Item struct {
	s   *Session
	ref handle.Ref[handle.Item]
}

// Take is one take of a media item.
type Take struct {
	s   *Session
	ref handle.Ref[handle.Take]
}

// ItemCount returns the number of media items on t.
func (t Track) ItemCount(tok MainToken) (int, error) {
	var n int
	err := t.use(tok, "item count", func(fns raw.Functions, tr raw.Handle) error {
		n = int(fns.CountTrackMediaItems(tr))
		return nil
	})
	return n, err
}

// Item returns the media item at idx.
func (t Track) Item(tok MainToken, idx int) (Item, error) {
	const op = "get item"
	var it Item
	err := t.useValidated(tok, op, func(fns raw.Functions, v handle.Validated[handle.Track]) error {
		tr := v.Raw()
		if idx < 0 || idx >= int(fns.CountTrackMediaItems(tr)) {
			return errors.InvalidArgument(op, "item index out of range", idx)
		}
		h := fns.GetTrackMediaItem(tr, int32(idx))
		if h == raw.Null {
			return errors.HostRejected(op, "no item returned")
		}
		it = Item{s: t.s, ref: handle.Child[handle.Item](v, h)}
		return nil
	})
	return it, err
}

// Items returns every media item of t.
func (t Track) Items(tok MainToken) ([]Item, error) {
	var out []Item
	err := t.useValidated(tok, "items", func(fns raw.Functions, v handle.Validated[handle.Track]) error {
		tr := v.Raw()
		n := fns.CountTrackMediaItems(tr)
		out = make([]Item, 0, n)
		for i := int32(0); i < n; i++ {
			if h := fns.GetTrackMediaItem(tr, i); h != raw.Null {
				out = append(out, Item{s: t.s, ref: handle.Child[handle.Item](v, h)})
			}
		}
		return nil
	})
	return out, err
}

// Ref returns the underlying reference.
func (it Item) Ref() handle.Ref[handle.Item] { return it.ref }

func (it Item) String() string { return it.ref.String() }

func (it Item) use(tok MainToken, op string, fn func(fns raw.Functions, h raw.Handle) error) error {
	if it.s == nil {
		return errors.Invalidated(op, "item")
	}
	return handle.Use(it.s.gate, tok, op, it.ref, func(v handle.Validated[handle.Item]) error {
		return fn(it.s.fns, v.Raw())
	})
}

func (it Item) value(tok MainToken, op, param string) (float64, error) {
	var v float64
	err := it.use(tok, op, func(fns raw.Functions, h raw.Handle) error {
		v = fns.GetMediaItemInfoValue(h, param)
		return nil
	})
	return v, err
}

func (it Item) setValue(tok MainToken, op, param string, v float64) error {
	return it.use(tok, op, func(fns raw.Functions, h raw.Handle) error {
		if !fns.SetMediaItemInfoValue(h, param, v) {
			return errors.HostRejected(op, param)
		}
		return nil
	})
}

// Position returns the start in seconds.
func (it Item) Position(tok MainToken) (float64, error) {
	return it.value(tok, "item position", raw.ItemPosition)
}

func (it Item) SetPosition(tok MainToken, seconds float64) error {
	const op = "set item position"
	if math.IsNaN(seconds) || seconds < 0 {
		return errors.InvalidArgument(op, "position must be non-negative", seconds)
	}
	return it.setValue(tok, op, raw.ItemPosition, seconds)
}

// Length returns the length in seconds.
func (it Item) Length(tok MainToken) (float64, error) {
	return it.value(tok, "item length", raw.ItemLength)
}

func (it Item) SetLength(tok MainToken, seconds float64) error {
	const op = "set item length"
	if math.IsNaN(seconds) || seconds < 0 {
		return errors.InvalidArgument(op, "length must be non-negative", seconds)
	}
	return it.setValue(tok, op, raw.ItemLength, seconds)
}

func (it Item) Muted(tok MainToken) (bool, error) {
	v, err := it.value(tok, "item mute", raw.ItemMute)
	return v != 0, err
}

func (it Item) SetMuted(tok MainToken, muted bool) error {
	var v float64
	if muted {
		v = 1
	}
	return it.setValue(tok, "set item mute", raw.ItemMute, v)
}

// ActiveTake returns the active take. ok is false for empty items.
func (it Item) ActiveTake(tok MainToken) (take Take, ok bool, err error) {
	const op = "active take"
	if it.s == nil {
		return Take{}, false, errors.Invalidated(op, "item")
	}
	err = handle.Use(it.s.gate, tok, op, it.ref, func(v handle.Validated[handle.Item]) error {
		tk := it.s.fns.GetActiveTake(v.Raw())
		if tk == raw.Null {
			return nil
		}
		take, ok = Take{s: it.s, ref: handle.Child[handle.Take](v, tk)}, true
		return nil
	})
	return take, ok, err
}

// Ref returns the underlying reference.
func (tk Take) Ref() handle.Ref[handle.Take] { return tk.ref }

func (tk Take) String() string { return tk.ref.String() }

func (tk Take) use(tok MainToken, op string, fn func(fns raw.Functions, h raw.Handle) error) error {
	if tk.s == nil {
		return errors.Invalidated(op, "take")
	}
	return handle.Use(tk.s.gate, tok, op, tk.ref, func(v handle.Validated[handle.Take]) error {
		return fn(tk.s.fns, v.Raw())
	})
}

// Name returns the take name.
func (tk Take) Name(tok MainToken) (string, error) {
	const op = "take name"
	var name string
	err := tk.use(tok, op, func(fns raw.Functions, h raw.Handle) error {
		buf := make([]byte, stringBufSize)
		if !fns.GetSetMediaItemTakeInfoString(h, raw.TakeName, buf, false) {
			return errors.HostRejected(op, raw.TakeName)
		}
		name = cString(buf)
		return nil
	})
	return name, err
}

// SetName renames the take.
func (tk Take) SetName(tok MainToken, name string) error {
	const op = "set take name"
	if err := checkString(op, name); err != nil {
		return err
	}
	return tk.use(tok, op, func(fns raw.Functions, h raw.Handle) error {
		if !fns.GetSetMediaItemTakeInfoString(h, raw.TakeName, cBuffer(name), true) {
			return errors.HostRejected(op, raw.TakeName)
		}
		return nil
	})
}
