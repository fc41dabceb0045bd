//go:build !ios && !android && (amd64 || arm64)

package reapgo

import (
	"math"

	"github.com/obinnaokechukwu/reapgo/errors"
)

// CommandID identifies an action. Zero is never a valid command.
type CommandID int32

// NewCommandID checks that v is a usable command id.
func NewCommandID(v int32) (CommandID, error) {
	if v == 0 {
		return 0, errors.InvalidArgument("command id", "must not be zero", v)
	}
	return CommandID(v), nil
}

// Raw returns the host value.
func (c CommandID) Raw() int32 { return int32(c) }

// SectionID identifies an action list section.
type SectionID int32

// MainSection is the main action list.
const MainSection SectionID = 0

// Raw returns the host value.
func (s SectionID) Raw() int32 { return int32(s) }

// MidiInputDeviceID is a MIDI input device index. Values 62 and 63 are
// reserved for the virtual keyboard and "all devices" selectors.
type MidiInputDeviceID uint8

// MaxMidiInputDevices bounds MidiInputDeviceID.
const MaxMidiInputDevices = 63

// NewMidiInputDeviceID checks v.
func NewMidiInputDeviceID(v int) (MidiInputDeviceID, error) {
	if v < 0 || v >= MaxMidiInputDevices {
		return 0, errors.InvalidArgument("midi input device id", "out of range", v)
	}
	return MidiInputDeviceID(v), nil
}

// Raw returns the host value.
func (d MidiInputDeviceID) Raw() int32 { return int32(d) }

// MidiOutputDeviceID is a MIDI output device index.
type MidiOutputDeviceID uint8

// NewMidiOutputDeviceID checks v.
func NewMidiOutputDeviceID(v int) (MidiOutputDeviceID, error) {
	if v < 0 || v > math.MaxUint8 {
		return 0, errors.InvalidArgument("midi output device id", "out of range", v)
	}
	return MidiOutputDeviceID(v), nil
}

// Raw returns the host value.
func (d MidiOutputDeviceID) Raw() int32 { return int32(d) }

// NormalizedValue is an FX parameter value. It is usually within 0..1, but
// some plug-ins report values above 1, so only negatives are rejected.
type NormalizedValue float64

// NewNormalizedValue checks v.
func NewNormalizedValue(v float64) (NormalizedValue, error) {
	if math.IsNaN(v) || v < 0 {
		return 0, errors.InvalidArgument("normalized value", "must be a non-negative number", v)
	}
	return NormalizedValue(v), nil
}

// Get returns the float value.
func (v NormalizedValue) Get() float64 { return float64(v) }

// Hz is a frequency, usually a sample rate.
type Hz float64

// NewHz checks that v is a positive finite frequency.
func NewHz(v float64) (Hz, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return 0, errors.InvalidArgument("frequency", "must be positive", v)
	}
	return Hz(v), nil
}

// Get returns the float value.
func (h Hz) Get() float64 { return float64(h) }
