//go:build !ios && !android && (amd64 || arm64)

package enums

import (
	"fmt"

	"github.com/obinnaokechukwu/reapgo/errors"
)

// SurfaceExt is a control-surface extension call code (CSURF_EXT_*).
type SurfaceExt int32

const (
	SurfaceExtSetInputMonitor      SurfaceExt = 0x00010001
	SurfaceExtSetMetronome         SurfaceExt = 0x00010002
	SurfaceExtSetAutoRecArm        SurfaceExt = 0x00010003
	SurfaceExtSetRecMode           SurfaceExt = 0x00010004
	SurfaceExtSetSendVolume        SurfaceExt = 0x00010005
	SurfaceExtSetSendPan           SurfaceExt = 0x00010006
	SurfaceExtSetFxEnabled         SurfaceExt = 0x00010007
	SurfaceExtSetFxParam           SurfaceExt = 0x00010008
	SurfaceExtSetBpmAndPlayRate    SurfaceExt = 0x00010009
	SurfaceExtSetLastTouchedFx     SurfaceExt = 0x0001000A
	SurfaceExtSetFocusedFx         SurfaceExt = 0x0001000B
	SurfaceExtSetLastTouchedTrack  SurfaceExt = 0x0001000C
	SurfaceExtSetMixerScroll       SurfaceExt = 0x0001000D
	SurfaceExtSetRecvVolume        SurfaceExt = 0x00010010
	SurfaceExtSetRecvPan           SurfaceExt = 0x00010011
	SurfaceExtSetFxOpen            SurfaceExt = 0x00010012
	SurfaceExtSetFxChange          SurfaceExt = 0x00010013
	SurfaceExtSetProjectMarkerChg  SurfaceExt = 0x00010014
	SurfaceExtTrackFxPresetChanged SurfaceExt = 0x00010015
	SurfaceExtSetFxParamRecFx      SurfaceExt = 0x00010018
	SurfaceExtReset                SurfaceExt = 0x0001FFFF
)

var surfaceExtNames = map[SurfaceExt]string{
	SurfaceExtSetInputMonitor:      "SETINPUTMONITOR",
	SurfaceExtSetMetronome:         "SETMETRONOME",
	SurfaceExtSetAutoRecArm:        "SETAUTORECARM",
	SurfaceExtSetRecMode:           "SETRECMODE",
	SurfaceExtSetSendVolume:        "SETSENDVOLUME",
	SurfaceExtSetSendPan:           "SETSENDPAN",
	SurfaceExtSetFxEnabled:         "SETFXENABLED",
	SurfaceExtSetFxParam:           "SETFXPARAM",
	SurfaceExtSetBpmAndPlayRate:    "SETBPMANDPLAYRATE",
	SurfaceExtSetLastTouchedFx:     "SETLASTTOUCHEDFX",
	SurfaceExtSetFocusedFx:         "SETFOCUSEDFX",
	SurfaceExtSetLastTouchedTrack:  "SETLASTTOUCHEDTRACK",
	SurfaceExtSetMixerScroll:       "SETMIXERSCROLL",
	SurfaceExtSetRecvVolume:        "SETRECVVOLUME",
	SurfaceExtSetRecvPan:           "SETRECVPAN",
	SurfaceExtSetFxOpen:            "SETFXOPEN",
	SurfaceExtSetFxChange:          "SETFXCHANGE",
	SurfaceExtSetProjectMarkerChg:  "SETPROJECTMARKERCHANGE",
	SurfaceExtTrackFxPresetChanged: "TRACKFX_PRESET_CHANGED",
	SurfaceExtSetFxParamRecFx:      "SETFXPARAM_RECFX",
	SurfaceExtReset:                "RESET",
}

// ParseSurfaceExt converts a raw extension call code.
func ParseSurfaceExt(raw int32) (SurfaceExt, error) {
	if _, ok := surfaceExtNames[SurfaceExt(raw)]; !ok {
		return 0, errors.UnknownVariant("SurfaceExt", raw)
	}
	return SurfaceExt(raw), nil
}

// Raw returns the value the host uses.
func (e SurfaceExt) Raw() int32 { return int32(e) }

// String returns the CSURF_EXT_ suffix.
func (e SurfaceExt) String() string {
	if name, ok := surfaceExtNames[e]; ok {
		return "CSURF_EXT_" + name
	}
	return fmt.Sprintf("SurfaceExt(%#x)", int32(e))
}
