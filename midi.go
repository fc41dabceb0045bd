//go:build !ios && !android && (amd64 || arm64)

package reapgo

import (
	"gitlab.com/gomidi/midi/v2"

	"github.com/obinnaokechukwu/reapgo/errors"
	"github.com/obinnaokechukwu/reapgo/raw"
)

// MidiEvent is a short MIDI message (up to 3 bytes) with its position in
// the current audio block. It is a plain value, so reading and sending
// events does not allocate.
type MidiEvent struct {
	FrameOffset int32
	size        int32
	msg         [3]byte
}

// NewMidiEvent builds an event from a message of one to three bytes.
func NewMidiEvent(frameOffset int32, msg midi.Message) (MidiEvent, error) {
	const op = "new midi event"
	if len(msg) == 0 || len(msg) > 3 {
		return MidiEvent{}, errors.InvalidArgument(op, "short messages have 1 to 3 bytes", len(msg))
	}
	if frameOffset < 0 {
		return MidiEvent{}, errors.InvalidArgument(op, "frame offset must be non-negative", frameOffset)
	}
	ev := MidiEvent{FrameOffset: frameOffset, size: int32(len(msg))}
	copy(ev.msg[:], msg)
	return ev, nil
}

func midiEventFromRaw(r raw.MIDIEvent) MidiEvent {
	ev := MidiEvent{FrameOffset: r.FrameOffset, size: min(max(r.Size, 0), 3)}
	copy(ev.msg[:], r.Message[:3])
	return ev
}

// Status returns the status byte.
func (e MidiEvent) Status() byte { return e.msg[0] }

// Len returns the message length in bytes.
func (e MidiEvent) Len() int { return int(e.size) }

// Bytes returns the message bytes. Only the first Len are meaningful.
func (e MidiEvent) Bytes() [3]byte { return e.msg }

// Message converts the event for use with the midi package. It allocates.
func (e MidiEvent) Message() midi.Message {
	return midi.Message(append([]byte(nil), e.msg[:e.size]...))
}

// LongMidiEvent carries a message of up to 256 bytes, typically SysEx.
// Pass it by pointer; it is too large to copy on the audio thread.
type LongMidiEvent struct {
	FrameOffset int32
	size        int
	data        [raw.MaxLongMidiSize]byte
}

// NewLongMidiEvent copies msg into a long event.
func NewLongMidiEvent(frameOffset int32, msg midi.Message) (*LongMidiEvent, error) {
	ev := &LongMidiEvent{}
	if err := ev.Set(frameOffset, msg); err != nil {
		return nil, err
	}
	return ev, nil
}

// Set overwrites the event in place so a preallocated event can be reused
// on the audio thread.
func (e *LongMidiEvent) Set(frameOffset int32, msg []byte) error {
	if len(msg) == 0 || len(msg) > raw.MaxLongMidiSize {
		return errors.InvalidArgument("long midi event", "message must have 1 to 256 bytes", len(msg))
	}
	e.FrameOffset = frameOffset
	e.size = copy(e.data[:], msg)
	return nil
}

// Bytes returns the message bytes. The slice aliases e.
func (e *LongMidiEvent) Bytes() []byte { return e.data[:e.size] }

// MidiInput is an open MIDI input device, usable during one audio hook
// invocation.
type MidiInput struct {
	fns  raw.Functions
	list raw.Handle
	tok  AudioToken
}

// MidiInput returns the input device dev. ok is false if the device is
// not open.
func (s *Session) MidiInput(tok AudioToken, dev MidiInputDeviceID) (in MidiInput, ok bool, err error) {
	if err := tok.Check("midi input"); err != nil {
		return MidiInput{}, false, err
	}
	h := s.fns.GetMidiInput(dev.Raw())
	if h == raw.Null {
		return MidiInput{}, false, nil
	}
	list := s.fns.MidiInputGetReadBuf(h)
	if list == raw.Null {
		return MidiInput{}, false, nil
	}
	return MidiInput{fns: s.fns, list: list, tok: tok}, true, nil
}

// Events iterates the events received for the current block.
func (in MidiInput) Events() MidiEventIterator {
	return MidiEventIterator{in: in}
}

// MidiEventIterator walks a MIDI read buffer by byte position.
//
//	it := in.Events()
//	for ev, ok := it.Next(); ok; ev, ok = it.Next() {
//		...
//	}
type MidiEventIterator struct {
	in   MidiInput
	bpos int32
	done bool
}

// Next returns the next event. It stops early once the audio callback
// that produced the input has returned.
func (it *MidiEventIterator) Next() (MidiEvent, bool) {
	if it.done || !it.in.tok.Valid() || it.in.list == raw.Null {
		it.done = true
		return MidiEvent{}, false
	}
	ev, next, ok := it.in.fns.MidiEventListEnumItems(it.in.list, it.bpos)
	if !ok {
		it.done = true
		return MidiEvent{}, false
	}
	it.bpos = next
	return midiEventFromRaw(ev), true
}

// MidiOutput is an open MIDI output device, usable during one audio hook
// invocation.
type MidiOutput struct {
	fns raw.Functions
	h   raw.Handle
	tok AudioToken
}

// MidiOutput returns the output device dev. ok is false if the device is
// not open.
func (s *Session) MidiOutput(tok AudioToken, dev MidiOutputDeviceID) (out MidiOutput, ok bool, err error) {
	if err := tok.Check("midi output"); err != nil {
		return MidiOutput{}, false, err
	}
	h := s.fns.GetMidiOutput(dev.Raw())
	if h == raw.Null {
		return MidiOutput{}, false, nil
	}
	return MidiOutput{fns: s.fns, h: h, tok: tok}, true, nil
}

// Send queues a short message.
func (o MidiOutput) Send(ev MidiEvent) error {
	const op = "send midi"
	if err := o.tok.Check(op); err != nil {
		return err
	}
	if o.h == raw.Null {
		return errors.Invalidated(op, "midi output")
	}
	o.fns.MidiOutputSend(o.h, ev.msg[0], ev.msg[1], ev.msg[2], ev.FrameOffset)
	return nil
}

// SendLong queues a long message.
func (o MidiOutput) SendLong(ev *LongMidiEvent) error {
	const op = "send long midi"
	if err := o.tok.Check(op); err != nil {
		return err
	}
	if o.h == raw.Null {
		return errors.Invalidated(op, "midi output")
	}
	if ev == nil || ev.size == 0 {
		return errors.InvalidArgument(op, "empty event", nil)
	}
	o.fns.MidiOutputSendMsg(o.h, ev.Bytes(), ev.FrameOffset)
	return nil
}
