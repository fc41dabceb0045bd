//go:build !ios && !android && (amd64 || arm64)

package reapgo

import (
	"bytes"
	"strings"

	"github.com/obinnaokechukwu/reapgo/enums"
	"github.com/obinnaokechukwu/reapgo/errors"
	"github.com/obinnaokechukwu/reapgo/handle"
	"github.com/obinnaokechukwu/reapgo/raw"
)

const stringBufSize = 4096

// Project is a project tab.
type Project struct {
	s   *Session
	ref handle.Ref[handle.Project]
}

// CurrentProject returns the active project tab.
func (s *Session) CurrentProject(tok MainToken) (Project, error) {
	const op = "current project"
	if err := tok.Check(op); err != nil {
		return Project{}, err
	}
	p := s.fns.EnumProjects(raw.CurrentProject)
	if p == raw.Null {
		return Project{}, errors.HostRejected(op, "no project open")
	}
	return s.project(p), nil
}

// Projects returns every open project tab.
func (s *Session) Projects(tok MainToken) ([]Project, error) {
	if err := tok.Check("projects"); err != nil {
		return nil, err
	}
	var out []Project
	for i := int32(0); ; i++ {
		p := s.fns.EnumProjects(i)
		if p == raw.Null {
			return out, nil
		}
		out = append(out, s.project(p))
	}
}

func (s *Session) project(p raw.Handle) Project {
	return Project{s: s, ref: handle.New[handle.Project](raw.Null, p)}
}

// Ref returns the underlying reference.
func (p Project) Ref() handle.Ref[handle.Project] { return p.ref }

func (p Project) String() string { return p.ref.String() }

// IsValid reports whether the project is still open.
func (p Project) IsValid(tok MainToken) bool {
	return p.s != nil && tok.Valid() && handle.Alive(p.s.gate, p.ref)
}

func (p Project) use(tok MainToken, op string, fn func(fns raw.Functions, proj raw.Handle) error) error {
	if p.s == nil {
		return errors.Invalidated(op, "project")
	}
	return handle.Use(p.s.gate, tok, op, p.ref, func(v handle.Validated[handle.Project]) error {
		return fn(p.s.fns, v.Raw())
	})
}

// TrackCount returns the number of tracks, not counting the master track.
func (p Project) TrackCount(tok MainToken) (int, error) {
	var n int
	err := p.use(tok, "track count", func(fns raw.Functions, proj raw.Handle) error {
		n = int(fns.CountTracks(proj))
		return nil
	})
	return n, err
}

// Track returns the track at idx.
func (p Project) Track(tok MainToken, idx int) (Track, error) {
	const op = "get track"
	var t Track
	err := p.use(tok, op, func(fns raw.Functions, proj raw.Handle) error {
		if idx < 0 || idx >= int(fns.CountTracks(proj)) {
			return errors.InvalidArgument(op, "track index out of range", idx)
		}
		h := fns.GetTrack(proj, int32(idx))
		if h == raw.Null {
			return errors.HostRejected(op, "no track returned")
		}
		t = p.s.track(proj, h)
		return nil
	})
	return t, err
}

// Tracks returns all tracks in order.
func (p Project) Tracks(tok MainToken) ([]Track, error) {
	var out []Track
	err := p.use(tok, "tracks", func(fns raw.Functions, proj raw.Handle) error {
		n := fns.CountTracks(proj)
		out = make([]Track, 0, n)
		for i := int32(0); i < n; i++ {
			if h := fns.GetTrack(proj, i); h != raw.Null {
				out = append(out, p.s.track(proj, h))
			}
		}
		return nil
	})
	return out, err
}

// MasterTrack returns the master track.
func (p Project) MasterTrack(tok MainToken) (Track, error) {
	const op = "master track"
	var t Track
	err := p.use(tok, op, func(fns raw.Functions, proj raw.Handle) error {
		h := fns.GetMasterTrack(proj)
		if h == raw.Null {
			return errors.HostRejected(op, "no master track")
		}
		t = p.s.track(proj, h)
		return nil
	})
	return t, err
}

// InsertTrack inserts a track at idx and returns it. An out of range idx
// appends. The host only inserts into the current project.
func (p Project) InsertTrack(tok MainToken, idx int, wantDefaults bool) (Track, error) {
	const op = "insert track"
	var t Track
	err := p.use(tok, op, func(fns raw.Functions, proj raw.Handle) error {
		if fns.EnumProjects(raw.CurrentProject) != proj {
			return errors.HostRejected(op, "project is not the current project")
		}
		n := int(fns.CountTracks(proj))
		if idx < 0 || idx > n {
			idx = n
		}
		fns.InsertTrackAtIndex(int32(idx), wantDefaults)
		h := fns.GetTrack(proj, int32(idx))
		if h == raw.Null || int(fns.CountTracks(proj)) != n+1 {
			return errors.HostRejected(op, "track was not inserted")
		}
		t = p.s.track(proj, h)
		return nil
	})
	return t, err
}

// PlayState returns the transport state.
func (p Project) PlayState(tok MainToken) (enums.FlagSet[enums.PlayState], error) {
	var st enums.FlagSet[enums.PlayState]
	err := p.use(tok, "play state", func(fns raw.Functions, proj raw.Handle) error {
		st = enums.ToTyped[enums.PlayState](uint32(fns.GetPlayStateEx(proj)))
		return nil
	})
	return st, err
}

// MarkDirty flags the project as modified.
func (p Project) MarkDirty(tok MainToken) error {
	return p.use(tok, "mark project dirty", func(fns raw.Functions, proj raw.Handle) error {
		fns.MarkProjectDirty(proj)
		return nil
	})
}

// Undo reverts the last undo point. It reports false when there was
// nothing to undo.
func (p Project) Undo(tok MainToken) (bool, error) {
	var ok bool
	err := p.use(tok, "undo", func(fns raw.Functions, proj raw.Handle) error {
		ok = fns.UndoDoUndo2(proj) != 0
		return nil
	})
	return ok, err
}

// Redo reapplies the last undone point. It reports false when there was
// nothing to redo.
func (p Project) Redo(tok MainToken) (bool, error) {
	var ok bool
	err := p.use(tok, "redo", func(fns raw.Functions, proj raw.Handle) error {
		ok = fns.UndoDoRedo2(proj) != 0
		return nil
	})
	return ok, err
}

// UndoBlock runs fn inside one undo point labelled label. The block is
// closed even when fn fails or panics.
func UndoBlock(tok MainToken, proj Project, label string, scope enums.UndoScope, fn func() error) error {
	const op = "undo block"
	if fn == nil {
		return errors.InvalidArgument(op, "function is nil", nil)
	}
	if err := checkString(op, label); err != nil {
		return err
	}
	return proj.use(tok, op, func(fns raw.Functions, h raw.Handle) error {
		fns.UndoBeginBlock2(h)
		defer fns.UndoEndBlock2(h, label, scope.Raw())
		return fn()
	})
}

func cString(buf []byte) string {
	if i := bytes.IndexByte(buf, 0); i >= 0 {
		return string(buf[:i])
	}
	return string(buf)
}

func cBuffer(s string) []byte {
	buf := make([]byte, len(s)+1)
	copy(buf, s)
	return buf
}

func checkString(op, s string) error {
	if strings.IndexByte(s, 0) >= 0 {
		return errors.InvalidArgument(op, "string contains a NUL byte", s)
	}
	return nil
}
