//go:build !ios && !android && (amd64 || arm64)

package reapgo

import (
	"github.com/obinnaokechukwu/reapgo/enums"
	"github.com/obinnaokechukwu/reapgo/errors"
)

// ShowConsoleMsg appends msg to the host's console window.
func (s *Session) ShowConsoleMsg(tok MainToken, msg string) error {
	const op = "show console message"
	if err := tok.Check(op); err != nil {
		return err
	}
	if err := checkString(op, msg); err != nil {
		return err
	}
	s.fns.ShowConsoleMsg(msg)
	return nil
}

// AppVersion returns the host version string, e.g. "7.27/linux-x86_64".
func (s *Session) AppVersion() string {
	return s.fns.GetAppVersion()
}

// MidiInputCount returns the number of MIDI input device slots.
func (s *Session) MidiInputCount(tok MainToken) (int, error) {
	if err := tok.Check("midi input count"); err != nil {
		return 0, err
	}
	return int(s.fns.GetMaxMidiInputs()), nil
}

// MidiOutputCount returns the number of MIDI output device slots.
func (s *Session) MidiOutputCount(tok MainToken) (int, error) {
	if err := tok.Check("midi output count"); err != nil {
		return 0, err
	}
	return int(s.fns.GetMaxMidiOutputs()), nil
}

// MidiInputName returns the name of input device dev. ok is false when no
// such device exists.
func (s *Session) MidiInputName(tok MainToken, dev MidiInputDeviceID) (name string, ok bool, err error) {
	if err := tok.Check("midi input name"); err != nil {
		return "", false, err
	}
	buf := make([]byte, 256)
	if !s.fns.GetMIDIInputName(dev.Raw(), buf) {
		return "", false, nil
	}
	return cString(buf), true, nil
}

// MidiOutputName returns the name of output device dev. ok is false when
// no such device exists.
func (s *Session) MidiOutputName(tok MainToken, dev MidiOutputDeviceID) (name string, ok bool, err error) {
	if err := tok.Check("midi output name"); err != nil {
		return "", false, err
	}
	buf := make([]byte, 256)
	if !s.fns.GetMIDIOutputName(dev.Raw(), buf) {
		return "", false, nil
	}
	return cString(buf), true, nil
}

// GlobalAutomationOverride returns the global automation override. ok is
// false when none is set.
func (s *Session) GlobalAutomationOverride(tok MainToken) (o enums.AutomationOverride, ok bool, err error) {
	if err := tok.Check("global automation override"); err != nil {
		return o, false, err
	}
	return enums.ParseAutomationOverride(s.fns.GetGlobalAutomationOverride())
}

// SetGlobalAutomationOverride overrides the automation mode of all tracks.
func (s *Session) SetGlobalAutomationOverride(tok MainToken, o enums.AutomationOverride) error {
	const op = "set global automation override"
	if err := tok.Check(op); err != nil {
		return err
	}
	if mode, ok := o.Mode(); ok {
		if _, err := enums.ParseAutomationMode(mode.Raw()); err != nil {
			return errors.InvalidArgument(op, "unknown automation mode", mode.Raw())
		}
	}
	s.fns.SetGlobalAutomationOverride(o.Raw())
	return nil
}

// ClearGlobalAutomationOverride removes the global override.
func (s *Session) ClearGlobalAutomationOverride(tok MainToken) error {
	if err := tok.Check("clear global automation override"); err != nil {
		return err
	}
	s.fns.SetGlobalAutomationOverride(enums.RawNoAutomationOverride)
	return nil
}
