//go:build !ios && !android && (amd64 || arm64)

package enums

import (
	"fmt"

	"github.com/obinnaokechukwu/reapgo/errors"
)

// RecordingInputKind distinguishes the I_RECINPUT encodings.
type RecordingInputKind int

const (
	RecordingInputNone RecordingInputKind = iota
	RecordingInputMono
	RecordingInputStereo
	RecordingInputMultichannel
	RecordingInputMidi
)

const (
	recInputMidiFlag   = 4096
	recInputMultiFlag  = 2048
	recInputStereoFlag = 1024
	recInputIndexMask  = 1023

	// MidiAllDevices and MidiAllChannels are the "any" selectors of a MIDI
	// recording input.
	MidiAllDevices  = 63
	MidiAllChannels = 0
	// MidiVirtualKeyboard is the device index of the virtual MIDI keyboard.
	MidiVirtualKeyboard = 62
)

// RecordingInput is the record input of a track.
//
// For audio inputs Index is the first input channel (ReaRoute/loopback
// channels start at 512). For MIDI inputs Device is 0..61, MidiVirtualKeyboard
// or MidiAllDevices, and Channel is 1..16 or MidiAllChannels.
type RecordingInput struct {
	Kind    RecordingInputKind
	Index   int32
	Device  int32
	Channel int32
}

// MidiRecordingInput selects a MIDI device and channel.
func MidiRecordingInput(device, channel int32) (RecordingInput, error) {
	if device < 0 || device > MidiAllDevices {
		return RecordingInput{}, errors.InvalidArgument("midi recording input", "device out of range", device)
	}
	if channel < 0 || channel > 16 {
		return RecordingInput{}, errors.InvalidArgument("midi recording input", "channel out of range", channel)
	}
	return RecordingInput{Kind: RecordingInputMidi, Device: device, Channel: channel}, nil
}

// ParseRecordingInput converts a raw I_RECINPUT value.
func ParseRecordingInput(raw int32) (RecordingInput, error) {
	switch {
	case raw < 0:
		return RecordingInput{Kind: RecordingInputNone}, nil
	case raw&recInputMidiFlag != 0:
		if raw>>11 != 2 {
			return RecordingInput{}, errors.UnknownVariant("RecordingInput", raw)
		}
		return RecordingInput{
			Kind:    RecordingInputMidi,
			Channel: raw & 0x1f,
			Device:  (raw >> 5) & 0x3f,
		}, nil
	case raw&recInputMultiFlag != 0:
		return RecordingInput{Kind: RecordingInputMultichannel, Index: raw & recInputIndexMask}, nil
	case raw&recInputStereoFlag != 0:
		return RecordingInput{Kind: RecordingInputStereo, Index: raw & recInputIndexMask}, nil
	case raw > recInputIndexMask:
		return RecordingInput{}, errors.UnknownVariant("RecordingInput", raw)
	default:
		return RecordingInput{Kind: RecordingInputMono, Index: raw}, nil
	}
}

// Raw returns the value the host expects.
func (r RecordingInput) Raw() int32 {
	switch r.Kind {
	case RecordingInputMono:
		return r.Index & recInputIndexMask
	case RecordingInputStereo:
		return recInputStereoFlag | r.Index&recInputIndexMask
	case RecordingInputMultichannel:
		return recInputMultiFlag | r.Index&recInputIndexMask
	case RecordingInputMidi:
		return recInputMidiFlag | (r.Device&0x3f)<<5 | r.Channel&0x1f
	default:
		return -1
	}
}

// String describes the input.
func (r RecordingInput) String() string {
	switch r.Kind {
	case RecordingInputNone:
		return "none"
	case RecordingInputMono:
		return fmt.Sprintf("mono %d", r.Index)
	case RecordingInputStereo:
		return fmt.Sprintf("stereo %d", r.Index)
	case RecordingInputMultichannel:
		return fmt.Sprintf("multichannel %d", r.Index)
	case RecordingInputMidi:
		dev, ch := "all", "all"
		if r.Device != MidiAllDevices {
			dev = fmt.Sprint(r.Device)
		}
		if r.Channel != MidiAllChannels {
			ch = fmt.Sprint(r.Channel)
		}
		return "midi " + dev + "/" + ch
	default:
		return fmt.Sprintf("RecordingInput(%d)", int(r.Kind))
	}
}
