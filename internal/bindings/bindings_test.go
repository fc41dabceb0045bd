//go:build !ios && !android && (amd64 || arm64)

package bindings

import (
	stderrors "errors"
	"testing"
	"unsafe"

	"github.com/obinnaokechukwu/reapgo/enums"
	"github.com/obinnaokechukwu/reapgo/errors"
	"github.com/obinnaokechukwu/reapgo/internal/platform"
	"github.com/obinnaokechukwu/reapgo/raw"
)

func TestNativeLayouts(t *testing.T) {
	if got := unsafe.Sizeof(gaccelRegister{}); got != 16 {
		t.Errorf("gaccel_register_t size = %d, want 16", got)
	}
	if got := unsafe.Offsetof(gaccelRegister{}.cmd); got != 4 {
		t.Errorf("ACCEL.cmd offset = %d, want 4", got)
	}
	if got := unsafe.Offsetof(gaccelRegister{}.desc); got != 8 {
		t.Errorf("desc offset = %d, want 8", got)
	}
	if got := unsafe.Offsetof(audioHookRegister{}.inputNch); got != 24 {
		t.Errorf("input_nch offset = %d, want 24", got)
	}
	if got := unsafe.Offsetof(audioHookRegister{}.getBuffer); got != 32 {
		t.Errorf("GetBuffer offset = %d, want 32", got)
	}
	if got := unsafe.Offsetof(pluginInfo{}.getFunc); got != 24 {
		t.Errorf("GetFunc offset = %d, want 24", got)
	}
	if got := unsafe.Sizeof(midiEventHeader{}); got != 12 {
		t.Errorf("MIDI_event_t header size = %d, want 12", got)
	}
	if surfaceVtableLen != 21+platform.DestructorSlots {
		t.Errorf("surface vtable has %d slots", surfaceVtableLen)
	}
}

func TestCString(t *testing.T) {
	b := nulTerminated("Track 1")
	if len(b) != 8 || b[7] != 0 {
		t.Fatalf("nulTerminated = %v", b)
	}
	if got := cString(&b[0]); got != "Track 1" {
		t.Errorf("cString = %q", got)
	}
	if got := cString(nil); got != "" {
		t.Errorf("cString(nil) = %q", got)
	}
	if bufPtr(nil) != nil {
		t.Error("bufPtr of an empty buffer must be nil")
	}
}

func TestCBool(t *testing.T) {
	if !cBool(1) || cBool(0) {
		t.Error("cBool misreads 0/1")
	}
	// Only the low byte carries the value.
	if cBool(0xABCD00) {
		t.Error("cBool must ignore garbage above the low byte")
	}
}

func TestDecodeExt(t *testing.T) {
	var track byte
	fxParam := int32(2<<16 | 5)
	value := 0.25

	x := decodeExt(enums.SurfaceExtSetFxParam.Raw(), unsafe.Pointer(&track), unsafe.Pointer(&fxParam), unsafe.Pointer(&value))
	if x.Track != raw.Handle(uintptr(unsafe.Pointer(&track))) {
		t.Error("track not decoded")
	}
	if x.Ints[0] != fxParam || x.Floats[0] != 0.25 || !x.Set {
		t.Errorf("decoded %+v", x)
	}

	bpm, rate := 120.0, 1.5
	x = decodeExt(enums.SurfaceExtSetBpmAndPlayRate.Raw(), unsafe.Pointer(&bpm), unsafe.Pointer(&rate), nil)
	if x.Floats != [2]float64{120, 1.5} || x.Set || x.Track != raw.Null {
		t.Errorf("decoded %+v", x)
	}

	x = decodeExt(enums.SurfaceExtSetMetronome.Raw(), unsafe.Pointer(&track), nil, nil)
	if x.Ints[0] != 1 {
		t.Errorf("metronome flag not decoded: %+v", x)
	}

	x = decodeExt(0x7fff0000, unsafe.Pointer(&track), unsafe.Pointer(&fxParam), nil)
	if x.Code != 0x7fff0000 || x.Track != raw.Null || x.Ints[0] != 0 {
		t.Errorf("unknown codes must not be dereferenced: %+v", x)
	}
}

func TestVirtualMethod(t *testing.T) {
	vtbl := [4]uintptr{10, 20, 30, 40}
	obj := struct{ vptr unsafe.Pointer }{unsafe.Pointer(&vtbl[0])}
	if got := virtualMethod(unsafe.Pointer(&obj), 2); got != 30 {
		t.Errorf("virtualMethod = %d, want 30", got)
	}
}

func TestTrampolines(t *testing.T) {
	initTrampolines()
	for name, cb := range map[string]uintptr{
		"hookcommand2":    cbHookCommand,
		"toggleaction":    cbToggleAction,
		"hookpostcommand": cbHookPostCommand,
		"audio hook":      cbAudioBuffer,
	} {
		if cb == 0 {
			t.Errorf("%s trampoline not created", name)
		}
	}
	for i, fn := range surfaceVtable {
		if fn == 0 {
			t.Errorf("surface vtable slot %d is empty", i)
		}
	}
}

func TestAttachRejectsBadInfo(t *testing.T) {
	if _, err := Attach(0, nil); !stderrors.Is(err, errors.ErrInvalidArgument) {
		t.Errorf("Attach(0) = %v", err)
	}
	info := &pluginInfo{callerVersion: PluginVersion - 1}
	if _, err := Attach(uintptr(unsafe.Pointer(info)), nil); !stderrors.Is(err, errors.ErrHostRejected) {
		t.Errorf("Attach with old version = %v", err)
	}
	info = &pluginInfo{callerVersion: PluginVersion}
	if _, err := Attach(uintptr(unsafe.Pointer(info)), nil); !stderrors.Is(err, errors.ErrHostRejected) {
		t.Errorf("Attach without GetFunc = %v", err)
	}
}

func TestDetachedHostIsInert(t *testing.T) {
	h := &Host{regs: make(map[raw.Handle]*native)}
	h.SetCallbacks(nil)
	if _, cb := sink(); cb != nil {
		t.Error("no callbacks expected without an attached host")
	}
	if h.Remove(raw.Gaccel, 1234) {
		t.Error("removing an unknown handle must fail")
	}
	if h.AudioBuffer(raw.Null, true, 0, 512) != nil {
		t.Error("null register must not yield a buffer")
	}
	if h.MidiInputGetReadBuf(raw.Null) != raw.Null {
		t.Error("null input must not yield a buffer")
	}
}
