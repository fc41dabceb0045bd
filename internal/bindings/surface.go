//go:build !ios && !android && (amd64 || arm64)

package bindings

import (
	"runtime"
	"unsafe"

	"github.com/ebitengine/purego"

	"github.com/obinnaokechukwu/reapgo/enums"
	"github.com/obinnaokechukwu/reapgo/internal/platform"
	"github.com/obinnaokechukwu/reapgo/raw"
)

// IReaperControlSurface vtable slots, in declaration order. The virtual
// destructor is declared last.
const (
	slotGetTypeString = iota
	slotGetDescString
	slotGetConfigString
	slotCloseNoReset
	slotRun
	slotSetTrackListChange
	slotSetSurfaceVolume
	slotSetSurfacePan
	slotSetSurfaceMute
	slotSetSurfaceSelected
	slotSetSurfaceSolo
	slotSetSurfaceRecArm
	slotSetPlayState
	slotSetRepeatState
	slotSetTrackTitle
	slotGetTouchState
	slotSetAutoMode
	slotResetCachedVolPanStates
	slotOnTrackSelection
	slotIsKeyDown
	slotExtended
	slotDestructor

	surfaceVtableLen = slotDestructor + platform.DestructorSlots
)

// surfaceObject is the C++ object handed to csurf_inst. The host only
// reads the vtable pointer.
type surfaceObject struct {
	vtbl     uintptr
	key      uintptr
	typeName *byte
	desc     *byte
}

var (
	surfaceVtable [surfaceVtableLen]uintptr
	emptyCString  = []byte{0}
)

func newSurfaceObject(p *runtime.Pinner, key uintptr, typeName string) uintptr {
	name := nulTerminated(typeName)
	obj := &surfaceObject{
		vtbl:     uintptr(unsafe.Pointer(&surfaceVtable[0])),
		key:      key,
		typeName: &name[0],
		desc:     &name[0],
	}
	p.Pin(&name[0])
	p.Pin(obj)
	return uintptr(unsafe.Pointer(obj))
}

// cBool reads a C++ bool argument, of which only the low byte is defined.
func cBool(v uintptr) bool { return v&0xff != 0 }

func fireSurface(this unsafe.Pointer, ev raw.SurfaceEvent) int32 {
	_, cb := sink()
	if cb == nil || this == nil {
		return 0
	}
	return cb.SurfaceEvent((*surfaceObject)(this).key, ev)
}

func simpleSurfaceCall(kind raw.SurfaceEventKind) uintptr {
	return purego.NewCallback(func(_ purego.CDecl, this unsafe.Pointer) {
		defer guard("csurf")
		fireSurface(this, raw.SurfaceEvent{Kind: kind})
	})
}

func trackValueCall(kind raw.SurfaceEventKind) uintptr {
	return purego.NewCallback(func(_ purego.CDecl, this, track unsafe.Pointer, v float64) {
		defer guard("csurf")
		fireSurface(this, raw.SurfaceEvent{Kind: kind, Track: raw.Handle(uintptr(track)), Value: v})
	})
}

func trackFlagCall(kind raw.SurfaceEventKind) uintptr {
	return purego.NewCallback(func(_ purego.CDecl, this, track unsafe.Pointer, flag uintptr) {
		defer guard("csurf")
		fireSurface(this, raw.SurfaceEvent{Kind: kind, Track: raw.Handle(uintptr(track)), Flag: cBool(flag)})
	})
}

func initSurfaceVtable() {
	v := &surfaceVtable
	v[slotGetTypeString] = purego.NewCallback(func(_ purego.CDecl, this unsafe.Pointer) *byte {
		return (*surfaceObject)(this).typeName
	})
	v[slotGetDescString] = purego.NewCallback(func(_ purego.CDecl, this unsafe.Pointer) *byte {
		return (*surfaceObject)(this).desc
	})
	v[slotGetConfigString] = purego.NewCallback(func(_ purego.CDecl, this unsafe.Pointer) *byte {
		return &emptyCString[0]
	})
	v[slotCloseNoReset] = simpleSurfaceCall(raw.SurfaceCloseNoReset)
	v[slotRun] = simpleSurfaceCall(raw.SurfaceRun)
	v[slotSetTrackListChange] = simpleSurfaceCall(raw.SurfaceSetTrackListChange)
	v[slotSetSurfaceVolume] = trackValueCall(raw.SurfaceSetVolume)
	v[slotSetSurfacePan] = trackValueCall(raw.SurfaceSetPan)
	v[slotSetSurfaceMute] = trackFlagCall(raw.SurfaceSetMute)
	v[slotSetSurfaceSelected] = trackFlagCall(raw.SurfaceSetSelected)
	v[slotSetSurfaceSolo] = trackFlagCall(raw.SurfaceSetSolo)
	v[slotSetSurfaceRecArm] = trackFlagCall(raw.SurfaceSetRecArm)
	v[slotSetPlayState] = purego.NewCallback(func(_ purego.CDecl, this unsafe.Pointer, play, pause, rec uintptr) {
		defer guard("csurf")
		fireSurface(this, raw.SurfaceEvent{Kind: raw.SurfaceSetPlayState, Play: cBool(play), Pause: cBool(pause), Rec: cBool(rec)})
	})
	v[slotSetRepeatState] = purego.NewCallback(func(_ purego.CDecl, this unsafe.Pointer, rep uintptr) {
		defer guard("csurf")
		fireSurface(this, raw.SurfaceEvent{Kind: raw.SurfaceSetRepeatState, Flag: cBool(rep)})
	})
	v[slotSetTrackTitle] = purego.NewCallback(func(_ purego.CDecl, this, track unsafe.Pointer, title *byte) {
		defer guard("csurf")
		fireSurface(this, raw.SurfaceEvent{Kind: raw.SurfaceSetTrackTitle, Track: raw.Handle(uintptr(track)), Text: cString(title)})
	})
	v[slotGetTouchState] = purego.NewCallback(func(_ purego.CDecl, this, track unsafe.Pointer, isPan int32) (r uintptr) {
		defer guard("csurf")
		return uintptr(fireSurface(this, raw.SurfaceEvent{Kind: raw.SurfaceGetTouchState, Track: raw.Handle(uintptr(track)), Int: isPan}))
	})
	v[slotSetAutoMode] = purego.NewCallback(func(_ purego.CDecl, this unsafe.Pointer, mode int32) {
		defer guard("csurf")
		fireSurface(this, raw.SurfaceEvent{Kind: raw.SurfaceSetAutoMode, Int: mode})
	})
	v[slotResetCachedVolPanStates] = simpleSurfaceCall(raw.SurfaceResetCachedVolPanStates)
	v[slotOnTrackSelection] = purego.NewCallback(func(_ purego.CDecl, this, track unsafe.Pointer) {
		defer guard("csurf")
		fireSurface(this, raw.SurfaceEvent{Kind: raw.SurfaceOnTrackSelection, Track: raw.Handle(uintptr(track))})
	})
	v[slotIsKeyDown] = purego.NewCallback(func(_ purego.CDecl, this unsafe.Pointer, key int32) (r uintptr) {
		defer guard("csurf")
		return uintptr(fireSurface(this, raw.SurfaceEvent{Kind: raw.SurfaceIsKeyDown, Int: key}))
	})
	v[slotExtended] = purego.NewCallback(func(_ purego.CDecl, this unsafe.Pointer, call int32, p1, p2, p3 unsafe.Pointer) (r int32) {
		defer guard("csurf")
		return fireSurface(this, raw.SurfaceEvent{Kind: raw.SurfaceExtended, Ext: decodeExt(call, p1, p2, p3)})
	})
	// Surfaces are owned by Go; the host never deletes them.
	dtor := purego.NewCallback(func(_ purego.CDecl, this unsafe.Pointer) {})
	for i := slotDestructor; i < surfaceVtableLen; i++ {
		v[i] = dtor
	}
}

// extArg says how to read one void* parameter of an Extended call.
type extArg uint8

const (
	extNone   extArg = iota
	extTrack         // MediaTrack*
	extInt           // int*
	extDouble        // double*
	extFlag          // pointer used as a boolean
)

var extLayouts = map[enums.SurfaceExt][3]extArg{
	enums.SurfaceExtSetInputMonitor:      {extTrack, extInt},
	enums.SurfaceExtSetMetronome:         {extFlag},
	enums.SurfaceExtSetAutoRecArm:        {extFlag},
	enums.SurfaceExtSetRecMode:           {extInt},
	enums.SurfaceExtSetSendVolume:        {extTrack, extInt, extDouble},
	enums.SurfaceExtSetSendPan:           {extTrack, extInt, extDouble},
	enums.SurfaceExtSetFxEnabled:         {extTrack, extInt, extFlag},
	enums.SurfaceExtSetFxParam:           {extTrack, extInt, extDouble},
	enums.SurfaceExtSetFxParamRecFx:      {extTrack, extInt, extDouble},
	enums.SurfaceExtSetBpmAndPlayRate:    {extDouble, extDouble},
	enums.SurfaceExtSetLastTouchedFx:     {extTrack, extInt, extInt},
	enums.SurfaceExtSetFocusedFx:         {extTrack, extInt, extInt},
	enums.SurfaceExtSetLastTouchedTrack:  {extTrack},
	enums.SurfaceExtSetMixerScroll:       {extTrack},
	enums.SurfaceExtSetRecvVolume:        {extTrack, extInt, extDouble},
	enums.SurfaceExtSetRecvPan:           {extTrack, extInt, extDouble},
	enums.SurfaceExtSetFxOpen:            {extTrack, extInt, extFlag},
	enums.SurfaceExtSetFxChange:          {extTrack},
	enums.SurfaceExtTrackFxPresetChanged: {extTrack, extInt},
}

// decodeExt dereferences the parameters of an Extended call according to
// its code. Parameters of unknown codes are left out.
func decodeExt(code int32, p1, p2, p3 unsafe.Pointer) raw.ExtArgs {
	x := raw.ExtArgs{Code: code, Set: p3 != nil}
	layout, ok := extLayouts[enums.SurfaceExt(code)]
	if !ok {
		return x
	}
	var ints, floats int
	for i, p := range [3]unsafe.Pointer{p1, p2, p3} {
		switch layout[i] {
		case extTrack:
			x.Track = raw.Handle(uintptr(p))
		case extInt:
			if p != nil && ints < len(x.Ints) {
				x.Ints[ints] = *(*int32)(p)
			}
			ints++
		case extDouble:
			if p != nil && floats < len(x.Floats) {
				x.Floats[floats] = *(*float64)(p)
			}
			floats++
		case extFlag:
			if ints < len(x.Ints) && p != nil {
				x.Ints[ints] = 1
			}
			ints++
		}
	}
	return x
}
