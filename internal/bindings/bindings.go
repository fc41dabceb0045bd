//go:build !ios && !android && (amd64 || arm64)

// Package bindings implements the raw layer on top of a running host
// process using purego: host functions are resolved through the plugin
// info's GetFunc pointer and host callbacks land in purego trampolines.
package bindings

import (
	"sync"
	"sync/atomic"
	"unsafe"

	"github.com/ebitengine/purego"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/obinnaokechukwu/reapgo/errors"
	"github.com/obinnaokechukwu/reapgo/raw"
)

// PluginVersion is the plugin info version this package understands
// (REAPER_PLUGIN_VERSION).
const PluginVersion = 0x20E

// pluginInfo mirrors reaper_plugin_info_t.
type pluginInfo struct {
	callerVersion int32
	_             int32
	hwndMain      uintptr
	register      uintptr
	getFunc       uintptr
}

// Host is the raw layer backed by the host process. It implements
// raw.Functions, raw.Registrar and raw.CallbackSink.
type Host struct {
	log *zap.Logger

	mu   sync.Mutex
	regs map[raw.Handle]*native

	callbacks atomic.Pointer[callbackBox]

	// Scratch space for the audio thread, which is never reentered.
	bpos    int32
	longMsg longMidiEvent
}

type callbackBox struct{ cb raw.Callbacks }

var (
	attachMu sync.Mutex
	attached *Host
	current  atomic.Pointer[Host]
)

// Host entry points used by Register and the function table.
var (
	hostRegister func(name string, info uintptr) int32
	hostGetFunc  func(name string) uintptr
)

// Attach binds every host function the raw layer needs. info is the
// address of the reaper_plugin_info_t the host passed to the extension
// entry point. Only one host can be attached per process.
func Attach(info uintptr, log *zap.Logger) (*Host, error) {
	const op = "attach"
	if info == 0 {
		return nil, errors.InvalidArgument(op, "plugin info is null", info)
	}
	if log == nil {
		log = zap.NewNop()
	}

	attachMu.Lock()
	defer attachMu.Unlock()
	if attached != nil {
		return nil, errors.Registration(op, "a host is already attached", nil)
	}

	pi := (*pluginInfo)(unsafe.Pointer(info))
	if pi.callerVersion != PluginVersion {
		return nil, errors.HostRejected(op, "unsupported plugin info version")
	}
	if pi.register == 0 || pi.getFunc == 0 {
		return nil, errors.HostRejected(op, "plugin info lacks Register or GetFunc")
	}
	purego.RegisterFunc(&hostRegister, pi.register)
	purego.RegisterFunc(&hostGetFunc, pi.getFunc)

	if err := bindFunctions(hostGetFunc); err != nil {
		return nil, err
	}
	initTrampolines()

	h := &Host{log: log, regs: make(map[raw.Handle]*native)}
	attached = h
	current.Store(h)
	log.Info("attached to host", zap.String("version", getAppVersion()))
	return h, nil
}

// Detach forgets the attached host. Registrations must already be removed;
// the host may keep calling trampolines until then, and they return
// defaults once detached.
func (h *Host) Detach() {
	attachMu.Lock()
	defer attachMu.Unlock()
	if attached != h {
		return
	}
	current.Store(nil)
	attached = nil

	h.mu.Lock()
	left := len(h.regs)
	h.mu.Unlock()
	if left > 0 {
		h.log.Warn("detached with live registrations", zap.Int("count", left))
	}
}

// SetCallbacks implements raw.CallbackSink.
func (h *Host) SetCallbacks(cb raw.Callbacks) {
	if cb == nil {
		h.callbacks.Store(nil)
		return
	}
	h.callbacks.Store(&callbackBox{cb: cb})
}

// sink returns the callbacks of the attached host, or nil.
func sink() (*Host, raw.Callbacks) {
	h := current.Load()
	if h == nil {
		return nil, nil
	}
	box := h.callbacks.Load()
	if box == nil {
		return h, nil
	}
	return h, box.cb
}

// binding ties a host function name to the variable it is bound to.
// Exactly one of fn and addr is set: fn receives a purego wrapper, addr
// the bare address for calls made with SyscallN.
type binding struct {
	name string
	fn   any
	addr *uintptr
}

func bindFunctions(getFunc func(string) uintptr) error {
	var err error
	for _, b := range functionTable() {
		p := getFunc(b.name)
		if p == 0 {
			err = multierr.Append(err, errors.HostRejected("bind", "host does not export "+b.name))
			continue
		}
		if b.addr != nil {
			*b.addr = p
			continue
		}
		purego.RegisterFunc(b.fn, p)
	}
	return err
}

// cString reads a NUL-terminated string owned by the host.
func cString(p *byte) string {
	if p == nil {
		return ""
	}
	n := 0
	for *(*byte)(unsafe.Add(unsafe.Pointer(p), n)) != 0 {
		n++
	}
	return string(unsafe.Slice(p, n))
}

// bufPtr returns the address of buf's first byte for host string getters.
func bufPtr(buf []byte) *byte {
	if len(buf) == 0 {
		return nil
	}
	return &buf[0]
}

// nulTerminated returns s as a NUL-terminated byte slice.
func nulTerminated(s string) []byte {
	b := make([]byte, len(s)+1)
	copy(b, s)
	return b
}

func boolArg(b bool) uintptr {
	if b {
		return 1
	}
	return 0
}
