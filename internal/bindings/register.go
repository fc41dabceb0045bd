//go:build !ios && !android && (amd64 || arm64)

package bindings

import (
	"math"
	"runtime"
	"sync"
	"unsafe"

	"github.com/ebitengine/purego"
	"go.uber.org/zap"

	"github.com/obinnaokechukwu/reapgo/raw"
)

// gaccelRegister mirrors gaccel_register_t: an ACCEL followed by the
// action description.
type gaccelRegister struct {
	fVirt byte
	_     byte
	key   uint16
	cmd   uint16
	_     uint16
	desc  uintptr
}

// audioHookRegister mirrors audio_hook_register_t. The host fills the
// channel counts and getBuffer.
type audioHookRegister struct {
	onAudioBuffer uintptr
	userdata1     uintptr
	userdata2     uintptr
	inputNch      int32
	outputNch     int32
	getBuffer     uintptr
}

// native is one registration handed to the host. Everything the host
// keeps a pointer to is pinned until it is removed.
type native struct {
	kind     raw.Kind
	register string
	info     uintptr
	pinner   runtime.Pinner
}

var registerNames = map[raw.Kind]string{
	raw.HookCommand:     "hookcommand2",
	raw.ToggleAction:    "toggleaction",
	raw.HookPostCommand: "hookpostcommand",
	raw.Gaccel:          "gaccel",
	raw.ControlSurface:  "csurf_inst",
}

// Native trampolines. purego callbacks are a limited process-wide
// resource, so each signature is created once and shared.
var (
	trampolineOnce    sync.Once
	cbHookCommand     uintptr
	cbToggleAction    uintptr
	cbHookPostCommand uintptr
	cbAudioBuffer     uintptr
)

func initTrampolines() {
	trampolineOnce.Do(func() {
		cbHookCommand = purego.NewCallback(hookCommandTrampoline)
		cbToggleAction = purego.NewCallback(toggleActionTrampoline)
		cbHookPostCommand = purego.NewCallback(hookPostCommandTrampoline)
		cbAudioBuffer = purego.NewCallback(audioBufferTrampoline)
		initSurfaceVtable()
	})
}

// guard keeps a panic from unwinding into host frames.
func guard(entry string) {
	if p := recover(); p != nil {
		if h := current.Load(); h != nil {
			h.log.Error("panic reached a native entry point",
				zap.String("entry", entry),
				zap.Any("panic", p))
		}
	}
}

// hookcommand2: bool (KbdSectionInfo*, int command, int val, int valhw,
// int relmode, HWND). Only the main section is handled. C++ bool results
// are returned in the low byte of a word.
func hookCommandTrampoline(_ purego.CDecl, sec unsafe.Pointer, command, val, valhw, relmode int32, hwnd unsafe.Pointer) (handled uintptr) {
	defer guard("hookcommand2")
	if sec != nil && *(*int32)(sec) != raw.MainSection {
		return 0
	}
	_, cb := sink()
	if cb == nil {
		return 0
	}
	return boolArg(cb.HookCommand(command, relmode))
}

// toggleaction: int (int command).
func toggleActionTrampoline(_ purego.CDecl, command int32) (state int32) {
	state = -1
	defer guard("toggleaction")
	_, cb := sink()
	if cb == nil {
		return -1
	}
	return cb.ToggleAction(command)
}

// hookpostcommand: void (int command, int flag).
func hookPostCommandTrampoline(_ purego.CDecl, command, flag int32) {
	defer guard("hookpostcommand")
	if _, cb := sink(); cb != nil {
		cb.HookPostCommand(command, flag)
	}
}

// OnAudioBuffer: void (bool isPost, int len, double srate,
// audio_hook_register_t*). Runs on the audio thread.
func audioBufferTrampoline(_ purego.CDecl, isPost uintptr, length int32, srate float64, reg unsafe.Pointer) {
	defer guard("audio hook")
	_, cb := sink()
	if cb == nil || reg == nil {
		return
	}
	r := (*audioHookRegister)(reg)
	cb.OnAudioBuffer(r.userdata1, raw.AudioBlock{
		Register:       raw.Handle(uintptr(reg)),
		IsPost:         cBool(isPost),
		Length:         length,
		SampleRate:     srate,
		InputChannels:  r.inputNch,
		OutputChannels: r.outputNch,
	})
}

// AllocateCommandID implements raw.Registrar. It returns 0 when the host
// refuses.
func (h *Host) AllocateCommandID(name string) int32 {
	b := nulTerminated(name)
	id := hostRegister("command_id", uintptr(unsafe.Pointer(&b[0])))
	runtime.KeepAlive(b)
	return id
}

// Add implements raw.Registrar.
func (h *Host) Add(kind raw.Kind, key uintptr, name string) (raw.Handle, bool) {
	n := &native{kind: kind, register: registerNames[kind]}

	switch kind {
	case raw.HookCommand:
		n.info = cbHookCommand
	case raw.ToggleAction:
		n.info = cbToggleAction
	case raw.HookPostCommand:
		n.info = cbHookPostCommand
	case raw.Gaccel:
		if key == 0 || key > math.MaxUint16 {
			h.log.Warn("command id does not fit an accelerator", zap.Uintptr("command", key))
			return raw.Null, false
		}
		desc := nulTerminated(name)
		g := &gaccelRegister{cmd: uint16(key), desc: uintptr(unsafe.Pointer(&desc[0]))}
		n.pinner.Pin(&desc[0])
		n.pinner.Pin(g)
		n.info = uintptr(unsafe.Pointer(g))
	case raw.ControlSurface:
		n.info = newSurfaceObject(&n.pinner, key, name)
	case raw.AudioHook:
		reg := &audioHookRegister{onAudioBuffer: cbAudioBuffer, userdata1: key}
		n.pinner.Pin(reg)
		n.info = uintptr(unsafe.Pointer(reg))
	default:
		return raw.Null, false
	}

	var ok bool
	if kind == raw.AudioHook {
		ok = audioRegHardwareHook(true, n.info) != 0
	} else {
		ok = hostRegister(n.register, n.info) != 0
	}
	if !ok {
		n.pinner.Unpin()
		return raw.Null, false
	}

	hd := raw.Handle(n.info)
	h.mu.Lock()
	h.regs[hd] = n
	h.mu.Unlock()
	return hd, true
}

// Remove implements raw.Registrar. The host does not report whether an
// unregistration matched, so Remove only fails for handles it never
// handed out.
func (h *Host) Remove(kind raw.Kind, hd raw.Handle) bool {
	h.mu.Lock()
	n := h.regs[hd]
	if n == nil || n.kind != kind {
		h.mu.Unlock()
		return false
	}
	delete(h.regs, hd)
	h.mu.Unlock()

	if kind == raw.AudioHook {
		audioRegHardwareHook(false, n.info)
	} else {
		hostRegister("-"+n.register, n.info)
	}
	n.pinner.Unpin()
	return true
}

var (
	_ raw.Registrar    = (*Host)(nil)
	_ raw.CallbackSink = (*Host)(nil)
)
