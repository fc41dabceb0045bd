//go:build !ios && !android && (amd64 || arm64)

package bindings

import (
	"unsafe"

	"github.com/ebitengine/purego"

	"github.com/obinnaokechukwu/reapgo/internal/platform"
	"github.com/obinnaokechukwu/reapgo/raw"
)

// Virtual method slots. midi_Input and midi_Output declare their
// destructor first, MIDI_eventlist last.
const (
	slotInputGetReadBuf    = platform.DestructorSlots + 4
	slotOutputSendMsg      = platform.DestructorSlots + 2
	slotOutputSend         = platform.DestructorSlots + 3
	slotEventListEnumItems = 1
)

// midiEventHeader mirrors the fixed part of MIDI_event_t.
type midiEventHeader struct {
	frameOffset int32
	size        int32
	msg         [4]byte
}

// longMidiEvent is a MIDI_event_t with room for the largest long message.
type longMidiEvent struct {
	frameOffset int32
	size        int32
	msg         [raw.MaxLongMidiSize]byte
}

// virtualMethod returns the address of slot in the vtable of the C++
// object at obj.
func virtualMethod(obj unsafe.Pointer, slot int) uintptr {
	vtbl := *(*unsafe.Pointer)(obj)
	return *(*uintptr)(unsafe.Add(vtbl, uintptr(slot)*platform.PointerSize))
}

// object turns a host handle back into the pointer it was made from.
func object(h raw.Handle) unsafe.Pointer {
	return *(*unsafe.Pointer)(unsafe.Pointer(&h))
}

// The methods below run on the audio thread. They use SyscallN and
// preallocated scratch space so they do not allocate.

func (h *Host) MidiInputGetReadBuf(input raw.Handle) raw.Handle {
	if input == raw.Null {
		return raw.Null
	}
	r, _, _ := purego.SyscallN(virtualMethod(object(input), slotInputGetReadBuf), uintptr(input))
	return raw.Handle(r)
}

func (h *Host) MidiEventListEnumItems(list raw.Handle, bpos int32) (raw.MIDIEvent, int32, bool) {
	if list == raw.Null {
		return raw.MIDIEvent{}, bpos, false
	}
	h.bpos = bpos
	r, _, _ := purego.SyscallN(virtualMethod(object(list), slotEventListEnumItems),
		uintptr(list), uintptr(unsafe.Pointer(&h.bpos)))
	if r == 0 {
		return raw.MIDIEvent{}, h.bpos, false
	}
	ev := (*midiEventHeader)(unsafe.Pointer(r))
	return raw.MIDIEvent{FrameOffset: ev.frameOffset, Size: ev.size, Message: ev.msg}, h.bpos, true
}

func (h *Host) MidiOutputSend(output raw.Handle, status, data1, data2 byte, frameOffset int32) {
	if output == raw.Null {
		return
	}
	purego.SyscallN(virtualMethod(object(output), slotOutputSend),
		uintptr(output), uintptr(status), uintptr(data1), uintptr(data2), uintptr(frameOffset))
}

func (h *Host) MidiOutputSendMsg(output raw.Handle, msg []byte, frameOffset int32) {
	if output == raw.Null || len(msg) == 0 {
		return
	}
	ev := &h.longMsg
	ev.frameOffset = frameOffset
	ev.size = int32(copy(ev.msg[:], msg))
	purego.SyscallN(virtualMethod(object(output), slotOutputSendMsg),
		uintptr(output), uintptr(unsafe.Pointer(ev)), uintptr(frameOffset))
}

// AudioBuffer calls the GetBuffer pointer the host filled into the hook's
// audio_hook_register_t.
func (h *Host) AudioBuffer(register raw.Handle, output bool, channel, length int32) []float64 {
	if register == raw.Null || length <= 0 {
		return nil
	}
	reg := (*audioHookRegister)(unsafe.Pointer(register))
	if reg.getBuffer == 0 {
		return nil
	}
	n := reg.inputNch
	if output {
		n = reg.outputNch
	}
	if channel < 0 || channel >= n {
		return nil
	}
	r, _, _ := purego.SyscallN(reg.getBuffer, boolArg(output), uintptr(channel))
	if r == 0 {
		return nil
	}
	return unsafe.Slice((*float64)(unsafe.Pointer(r)), length)
}
