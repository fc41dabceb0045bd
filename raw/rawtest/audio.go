//go:build !ios && !android && (amd64 || arm64)

package rawtest

import (
	"github.com/obinnaokechukwu/reapgo/raw"
)

// AddMidiInput opens a MIDI input device.
func (h *Host) AddMidiInput(dev int32, name string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	in := &midiInput{name: name}
	in.handle = h.alloc("", raw.Null)
	in.list = h.alloc("", raw.Null)
	h.midiIn[dev] = in
	h.midiInLists[in.list] = in
}

// AddMidiOutput opens a MIDI output device.
func (h *Host) AddMidiOutput(dev int32, name string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := &midiOutput{name: name}
	out.handle = h.alloc("", raw.Null)
	h.midiOut[dev] = out
	h.midiOutByH[out.handle] = out
}

// QueueMidiInput replaces the read buffer of an input device.
func (h *Host) QueueMidiInput(dev int32, events ...raw.MIDIEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if in := h.midiIn[dev]; in != nil {
		in.events = append(in.events[:0], events...)
	}
}

// SentMidi returns every message sent to an output device.
func (h *Host) SentMidi(dev int32) [][]byte {
	h.mu.Lock()
	defer h.mu.Unlock()
	if out := h.midiOut[dev]; out != nil {
		return append([][]byte(nil), out.sent...)
	}
	return nil
}

func (h *Host) GetMaxMidiInputs() int32 {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.record("GetMaxMidiInputs")
	return 63
}

func (h *Host) GetMaxMidiOutputs() int32 {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.record("GetMaxMidiOutputs")
	return 63
}

func (h *Host) GetMIDIInputName(dev int32, buf []byte) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.record("GetMIDIInputName")
	in := h.midiIn[dev]
	if in == nil {
		return false
	}
	writeString(buf, in.name)
	return true
}

func (h *Host) GetMIDIOutputName(dev int32, buf []byte) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.record("GetMIDIOutputName")
	out := h.midiOut[dev]
	if out == nil {
		return false
	}
	writeString(buf, out.name)
	return true
}

func (h *Host) GetMidiInput(dev int32) raw.Handle {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.record("GetMidiInput")
	if in := h.midiIn[dev]; in != nil {
		return in.handle
	}
	return raw.Null
}

func (h *Host) GetMidiOutput(dev int32) raw.Handle {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.record("GetMidiOutput")
	if out := h.midiOut[dev]; out != nil {
		return out.handle
	}
	return raw.Null
}

func (h *Host) MidiInputGetReadBuf(input raw.Handle) raw.Handle {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.record("MidiInputGetReadBuf")
	for _, in := range h.midiIn {
		if in.handle == input {
			return in.list
		}
	}
	return raw.Null
}

// MidiEventListEnumItems treats bpos as an event index.
func (h *Host) MidiEventListEnumItems(list raw.Handle, bpos int32) (raw.MIDIEvent, int32, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.record("MidiEventListEnumItems")
	in := h.midiInLists[list]
	if in == nil || bpos < 0 || int(bpos) >= len(in.events) {
		return raw.MIDIEvent{}, bpos, false
	}
	return in.events[bpos], bpos + 1, true
}

func (h *Host) MidiOutputSend(output raw.Handle, status, data1, data2 byte, frameOffset int32) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.record("MidiOutputSend")
	if out := h.midiOutByH[output]; out != nil {
		out.sent = append(out.sent, []byte{status, data1, data2})
	}
}

func (h *Host) MidiOutputSendMsg(output raw.Handle, msg []byte, frameOffset int32) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.record("MidiOutputSendMsg")
	if out := h.midiOutByH[output]; out != nil {
		out.sent = append(out.sent, append([]byte(nil), msg...))
	}
}

func (h *Host) AudioBuffer(register raw.Handle, output bool, channel, length int32) []float64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.record("AudioBuffer")
	r := h.regs[register]
	if r == nil || r.kind != raw.AudioHook {
		return nil
	}
	dir := 0
	if output {
		dir = 1
	}
	if channel < 0 || int(channel) >= len(r.bufs[dir]) {
		return nil
	}
	buf := r.bufs[dir][channel]
	if int(length) < len(buf) {
		buf = buf[:length]
	}
	return buf
}
