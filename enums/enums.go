//go:build !ios && !android && (amd64 || arm64)

package enums

import (
	"fmt"

	"github.com/obinnaokechukwu/reapgo/errors"
)

// AutomationMode is the automation mode of a track.
type AutomationMode int32

const (
	AutomationTrimRead     AutomationMode = 0
	AutomationRead         AutomationMode = 1
	AutomationTouch        AutomationMode = 2
	AutomationWrite        AutomationMode = 3
	AutomationLatch        AutomationMode = 4
	AutomationLatchPreview AutomationMode = 5
)

// ParseAutomationMode converts a raw I_AUTOMODE value.
func ParseAutomationMode(raw int32) (AutomationMode, error) {
	if raw < int32(AutomationTrimRead) || raw > int32(AutomationLatchPreview) {
		return 0, errors.UnknownVariant("AutomationMode", raw)
	}
	return AutomationMode(raw), nil
}

// Raw returns the value the host expects.
func (m AutomationMode) Raw() int32 { return int32(m) }

// String returns the mode name.
func (m AutomationMode) String() string {
	switch m {
	case AutomationTrimRead:
		return "trim/read"
	case AutomationRead:
		return "read"
	case AutomationTouch:
		return "touch"
	case AutomationWrite:
		return "write"
	case AutomationLatch:
		return "latch"
	case AutomationLatchPreview:
		return "latch preview"
	default:
		return fmt.Sprintf("AutomationMode(%d)", int32(m))
	}
}

// Raw values of GetGlobalAutomationOverride outside the mode range.
const (
	RawNoAutomationOverride     int32 = -1
	RawAutomationOverrideBypass int32 = 6
)

// AutomationOverride is a global override of all track automation modes.
// Either every automation is bypassed, or every track uses one mode.
type AutomationOverride struct {
	bypass bool
	mode   AutomationMode
}

// OverrideBypass bypasses all automation.
func OverrideBypass() AutomationOverride {
	return AutomationOverride{bypass: true}
}

// OverrideMode forces every track into mode.
func OverrideMode(mode AutomationMode) AutomationOverride {
	return AutomationOverride{mode: mode}
}

// IsBypass reports whether all automation is bypassed.
func (o AutomationOverride) IsBypass() bool { return o.bypass }

// Mode returns the forced mode, if any.
func (o AutomationOverride) Mode() (AutomationMode, bool) {
	return o.mode, !o.bypass
}

// Raw returns the value the host expects.
func (o AutomationOverride) Raw() int32 {
	if o.bypass {
		return RawAutomationOverrideBypass
	}
	return o.mode.Raw()
}

// String describes the override.
func (o AutomationOverride) String() string {
	if o.bypass {
		return "bypass"
	}
	return o.mode.String()
}

// ParseAutomationOverride converts a raw global override value. present is
// false when the host reports no override.
func ParseAutomationOverride(raw int32) (o AutomationOverride, present bool, err error) {
	switch raw {
	case RawNoAutomationOverride:
		return AutomationOverride{}, false, nil
	case RawAutomationOverrideBypass:
		return OverrideBypass(), true, nil
	}
	mode, err := ParseAutomationMode(raw)
	if err != nil {
		return AutomationOverride{}, false, errors.UnknownVariant("AutomationOverride", raw)
	}
	return OverrideMode(mode), true, nil
}

// InputMonitoringMode is the record monitoring mode of a track (I_RECMON).
type InputMonitoringMode int32

const (
	InputMonitoringOff            InputMonitoringMode = 0
	InputMonitoringNormal         InputMonitoringMode = 1
	InputMonitoringNotWhenPlaying InputMonitoringMode = 2
)

// ParseInputMonitoringMode converts a raw I_RECMON value.
func ParseInputMonitoringMode(raw int32) (InputMonitoringMode, error) {
	switch InputMonitoringMode(raw) {
	case InputMonitoringOff, InputMonitoringNormal, InputMonitoringNotWhenPlaying:
		return InputMonitoringMode(raw), nil
	}
	return 0, errors.UnknownVariant("InputMonitoringMode", raw)
}

// Raw returns the value the host expects.
func (m InputMonitoringMode) Raw() int32 { return int32(m) }

// String returns the mode name.
func (m InputMonitoringMode) String() string {
	switch m {
	case InputMonitoringOff:
		return "off"
	case InputMonitoringNormal:
		return "normal"
	case InputMonitoringNotWhenPlaying:
		return "not when playing"
	default:
		return fmt.Sprintf("InputMonitoringMode(%d)", int32(m))
	}
}

// TrackSendCategory selects receives, sends or hardware outputs of a track.
type TrackSendCategory int32

const (
	SendCategoryReceive        TrackSendCategory = -1
	SendCategorySend           TrackSendCategory = 0
	SendCategoryHardwareOutput TrackSendCategory = 1
)

// ParseTrackSendCategory converts a raw send category.
func ParseTrackSendCategory(raw int32) (TrackSendCategory, error) {
	switch TrackSendCategory(raw) {
	case SendCategoryReceive, SendCategorySend, SendCategoryHardwareOutput:
		return TrackSendCategory(raw), nil
	}
	return 0, errors.UnknownVariant("TrackSendCategory", raw)
}

// Raw returns the value the host expects.
func (c TrackSendCategory) Raw() int32 { return int32(c) }

// String returns the category name.
func (c TrackSendCategory) String() string {
	switch c {
	case SendCategoryReceive:
		return "receive"
	case SendCategorySend:
		return "send"
	case SendCategoryHardwareOutput:
		return "hardware output"
	default:
		return fmt.Sprintf("TrackSendCategory(%d)", int32(c))
	}
}
