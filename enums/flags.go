//go:build !ios && !android && (amd64 || arm64)

package enums

import "fmt"

// ProjectPart is a part of a project an undoable operation may have touched.
type ProjectPart uint32

const (
	ProjectPartFreeze   ProjectPart = 1 << 0 // UNDO_STATE_FREEZE
	ProjectPartFx       ProjectPart = 1 << 1 // UNDO_STATE_FX
	ProjectPartItems    ProjectPart = 1 << 2 // UNDO_STATE_ITEMS
	ProjectPartMiscCfg  ProjectPart = 1 << 3 // UNDO_STATE_MISCCFG: loop selection, markers, regions, extensions
	ProjectPartTrackCfg ProjectPart = 1 << 4 // UNDO_STATE_TRACKCFG: vol/pan/routing, all envelopes
)

// KnownBits implements Flag.
func (ProjectPart) KnownBits() uint32 { return 0x1f }

// String returns the flag name.
func (p ProjectPart) String() string {
	switch p {
	case ProjectPartFreeze:
		return "Freeze"
	case ProjectPartFx:
		return "Fx"
	case ProjectPartItems:
		return "Items"
	case ProjectPartMiscCfg:
		return "MiscCfg"
	case ProjectPartTrackCfg:
		return "TrackCfg"
	default:
		return fmt.Sprintf("ProjectPart(%#x)", uint32(p))
	}
}

// UndoStateAll is the raw "everything could have changed" undo scope.
const UndoStateAll int32 = -1

// UndoScope defines what an undo point covers.
type UndoScope struct {
	all   bool
	parts FlagSet[ProjectPart]
}

// UndoAll covers everything. Safest, but produces large undo states.
func UndoAll() UndoScope {
	return UndoScope{all: true}
}

// UndoScoped covers only the given parts.
func UndoScoped(parts ...ProjectPart) UndoScope {
	return UndoScope{parts: FlagsOf(parts...)}
}

// IsAll reports whether the scope covers everything.
func (u UndoScope) IsAll() bool { return u.all }

// Parts returns the covered parts. Empty for UndoAll.
func (u UndoScope) Parts() FlagSet[ProjectPart] { return u.parts }

// Raw converts the scope to the integer the host expects.
func (u UndoScope) Raw() int32 {
	if u.all {
		return UndoStateAll
	}
	return int32(u.parts.Raw())
}

// ParseUndoScope converts a raw undo flag value.
func ParseUndoScope(raw int32) UndoScope {
	if raw == UndoStateAll {
		return UndoAll()
	}
	return UndoScope{parts: ToTyped[ProjectPart](uint32(raw))}
}

// InsertMediaFlag controls how a media file is inserted.
type InsertMediaFlag uint32

const (
	InsertMediaStretchLoopToFitTimeSelection    InsertMediaFlag = 4
	InsertMediaTryToMatchTempo1X                InsertMediaFlag = 8
	InsertMediaTryToMatchTempo05X               InsertMediaFlag = 16
	InsertMediaTryToMatchTempo2X                InsertMediaFlag = 32
	InsertMediaDontPreservePitch                InsertMediaFlag = 64
	InsertMediaNoLoopSectionIfStartPctEndPctSet InsertMediaFlag = 128
	InsertMediaForceLoop                        InsertMediaFlag = 256
	InsertMediaMoveSourceToPreferredPosition    InsertMediaFlag = 4096
)

// KnownBits implements Flag.
func (InsertMediaFlag) KnownBits() uint32 { return 4 | 8 | 16 | 32 | 64 | 128 | 256 | 4096 }

// String returns the flag name.
func (f InsertMediaFlag) String() string {
	switch f {
	case InsertMediaStretchLoopToFitTimeSelection:
		return "StretchLoopToFitTimeSelection"
	case InsertMediaTryToMatchTempo1X:
		return "TryToMatchTempo1X"
	case InsertMediaTryToMatchTempo05X:
		return "TryToMatchTempo05X"
	case InsertMediaTryToMatchTempo2X:
		return "TryToMatchTempo2X"
	case InsertMediaDontPreservePitch:
		return "DontPreservePitch"
	case InsertMediaNoLoopSectionIfStartPctEndPctSet:
		return "NoLoopSectionIfStartPctEndPctSet"
	case InsertMediaForceLoop:
		return "ForceLoop"
	case InsertMediaMoveSourceToPreferredPosition:
		return "MoveSourceToPreferredPosition"
	default:
		return fmt.Sprintf("InsertMediaFlag(%#x)", uint32(f))
	}
}

// PlayState is a transport state bit as returned by GetPlayStateEx.
type PlayState uint32

const (
	PlayStatePlaying   PlayState = 1
	PlayStatePaused    PlayState = 2
	PlayStateRecording PlayState = 4
)

// KnownBits implements Flag.
func (PlayState) KnownBits() uint32 { return 7 }

// String returns the flag name.
func (p PlayState) String() string {
	switch p {
	case PlayStatePlaying:
		return "Playing"
	case PlayStatePaused:
		return "Paused"
	case PlayStateRecording:
		return "Recording"
	default:
		return fmt.Sprintf("PlayState(%#x)", uint32(p))
	}
}
