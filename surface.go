//go:build !ios && !android && (amd64 || arm64)

package reapgo

import (
	"go.uber.org/zap"

	"github.com/obinnaokechukwu/reapgo/dispatch"
	"github.com/obinnaokechukwu/reapgo/enums"
	"github.com/obinnaokechukwu/reapgo/errors"
	"github.com/obinnaokechukwu/reapgo/raw"
)

// ControlSurface receives the host's control surface notifications. All
// methods run on the main thread. Embed BaseSurface to implement only the
// notifications of interest.
//
// Track arguments refer to the track the host reported; they are
// validated on use like any other Track.
type ControlSurface interface {
	// Run is called periodically, about 30 times per second.
	Run(ctx MainContext)
	CloseNoReset(ctx MainContext)
	SetTrackListChange(ctx MainContext)
	SetSurfaceVolume(ctx MainContext, t Track, volume float64)
	SetSurfacePan(ctx MainContext, t Track, pan float64)
	SetSurfaceMute(ctx MainContext, t Track, mute bool)
	SetSurfaceSelected(ctx MainContext, t Track, selected bool)
	SetSurfaceSolo(ctx MainContext, t Track, solo bool)
	SetSurfaceRecArm(ctx MainContext, t Track, armed bool)
	SetPlayState(ctx MainContext, play, pause, rec bool)
	SetRepeatState(ctx MainContext, repeat bool)
	SetTrackTitle(ctx MainContext, t Track, title string)
	SetAutoMode(ctx MainContext, mode enums.AutomationMode)
	ResetCachedVolPanStates(ctx MainContext)
	OnTrackSelection(ctx MainContext, t Track)
	// GetTouchState reports whether the fader (or the pan knob when isPan
	// is set) of t is being touched.
	GetTouchState(ctx MainContext, t Track, isPan bool) bool
	IsKeyDown(ctx MainContext, key int32) bool
	// Extended handles CSURF_EXT calls. Return 0 for unhandled calls.
	Extended(ctx MainContext, ev ExtendedEvent) int32
}

// BaseSurface implements every ControlSurface method as a no-op.
type BaseSurface struct{}

func (BaseSurface) Run(MainContext)                               {}
func (BaseSurface) CloseNoReset(MainContext)                      {}
func (BaseSurface) SetTrackListChange(MainContext)                {}
func (BaseSurface) SetSurfaceVolume(MainContext, Track, float64)  {}
func (BaseSurface) SetSurfacePan(MainContext, Track, float64)     {}
func (BaseSurface) SetSurfaceMute(MainContext, Track, bool)       {}
func (BaseSurface) SetSurfaceSelected(MainContext, Track, bool)   {}
func (BaseSurface) SetSurfaceSolo(MainContext, Track, bool)       {}
func (BaseSurface) SetSurfaceRecArm(MainContext, Track, bool)     {}
func (BaseSurface) SetPlayState(MainContext, bool, bool, bool)    {}
func (BaseSurface) SetRepeatState(MainContext, bool)              {}
func (BaseSurface) SetTrackTitle(MainContext, Track, string)      {}
func (BaseSurface) SetAutoMode(MainContext, enums.AutomationMode) {}
func (BaseSurface) ResetCachedVolPanStates(MainContext)           {}
func (BaseSurface) OnTrackSelection(MainContext, Track)           {}
func (BaseSurface) GetTouchState(MainContext, Track, bool) bool   { return false }
func (BaseSurface) IsKeyDown(MainContext, int32) bool             { return false }
func (BaseSurface) Extended(MainContext, ExtendedEvent) int32     { return 0 }

// ExtendedEvent is one CSURF_EXT call.
//
// Code is the decoded call code; Known is false for codes this package
// does not name, in which case only RawCode is meaningful. The remaining
// fields carry the call's arguments as the host passed them: Track for
// calls addressing a track, Ints and Floats for dereferenced integer and
// double arguments.
type ExtendedEvent struct {
	Code     enums.SurfaceExt
	Known    bool
	RawCode  int32
	Track    Track
	HasTrack bool
	Ints     [2]int32
	Floats   [2]float64
	// Set is true when the host passed a value to set rather than a null
	// query argument.
	Set bool
}

// surfaceAdapter turns raw surface events into ControlSurface calls.
type surfaceAdapter struct {
	s       *Session
	surface ControlSurface
}

// RegisterControlSurface registers cs with the host under typeName.
func (s *Session) RegisterControlSurface(tok MainToken, typeName string, cs ControlSurface) (*Registration, error) {
	const op = "register control surface"
	if cs == nil {
		return nil, errors.InvalidArgument(op, "control surface is nil", nil)
	}
	if typeName == "" {
		return nil, errors.InvalidArgument(op, "type name is empty", typeName)
	}
	if err := checkString(op, typeName); err != nil {
		return nil, err
	}
	return s.disp.RegisterSurface(tok, typeName, &surfaceAdapter{s: s, surface: cs})
}

func boolInt(b bool) int32 {
	if b {
		return 1
	}
	return 0
}

func (a *surfaceAdapter) SurfaceEvent(ctx dispatch.MainContext, ev raw.SurfaceEvent) int32 {
	cs := a.surface
	tr := a.s.track(raw.Null, ev.Track)

	switch ev.Kind {
	case raw.SurfaceRun:
		cs.Run(ctx)
	case raw.SurfaceCloseNoReset:
		cs.CloseNoReset(ctx)
	case raw.SurfaceSetTrackListChange:
		cs.SetTrackListChange(ctx)
	case raw.SurfaceSetVolume:
		cs.SetSurfaceVolume(ctx, tr, ev.Value)
	case raw.SurfaceSetPan:
		cs.SetSurfacePan(ctx, tr, ev.Value)
	case raw.SurfaceSetMute:
		cs.SetSurfaceMute(ctx, tr, ev.Flag)
	case raw.SurfaceSetSelected:
		cs.SetSurfaceSelected(ctx, tr, ev.Flag)
	case raw.SurfaceSetSolo:
		cs.SetSurfaceSolo(ctx, tr, ev.Flag)
	case raw.SurfaceSetRecArm:
		cs.SetSurfaceRecArm(ctx, tr, ev.Flag)
	case raw.SurfaceSetPlayState:
		cs.SetPlayState(ctx, ev.Play, ev.Pause, ev.Rec)
	case raw.SurfaceSetRepeatState:
		cs.SetRepeatState(ctx, ev.Flag)
	case raw.SurfaceSetTrackTitle:
		cs.SetTrackTitle(ctx, tr, ev.Text)
	case raw.SurfaceSetAutoMode:
		mode, err := enums.ParseAutomationMode(ev.Int)
		if err != nil {
			a.s.Logger().Warn("ignoring unknown automation mode", zap.Int32("mode", ev.Int))
			return 0
		}
		cs.SetAutoMode(ctx, mode)
	case raw.SurfaceResetCachedVolPanStates:
		cs.ResetCachedVolPanStates(ctx)
	case raw.SurfaceOnTrackSelection:
		cs.OnTrackSelection(ctx, tr)
	case raw.SurfaceGetTouchState:
		return boolInt(cs.GetTouchState(ctx, tr, ev.Int != 0))
	case raw.SurfaceIsKeyDown:
		return boolInt(cs.IsKeyDown(ctx, ev.Int))
	case raw.SurfaceExtended:
		return cs.Extended(ctx, a.extended(ev.Ext))
	}
	return 0
}

func (a *surfaceAdapter) extended(x raw.ExtArgs) ExtendedEvent {
	ev := ExtendedEvent{
		RawCode:  x.Code,
		HasTrack: x.Track != raw.Null,
		Ints:     x.Ints,
		Floats:   x.Floats,
		Set:      x.Set,
	}
	if code, err := enums.ParseSurfaceExt(x.Code); err == nil {
		ev.Code, ev.Known = code, true
	}
	if ev.HasTrack {
		ev.Track = a.s.track(raw.Null, x.Track)
	}
	return ev
}
