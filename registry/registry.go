//go:build !ios && !android && (amd64 || arm64)

// Package registry keeps track of everything registered with the host so
// that all of it can be unregistered before the handlers go away.
//
// Every entry mirrors one host-side registration. Entries are added only
// after the host accepted them and removed only after the host was asked to
// forget them, so the host never calls into a handler the registry no
// longer holds. Audio hooks live in a fixed slot table that the audio
// thread reads without locks or allocation.
package registry

import (
	"sync"
	"sync/atomic"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/obinnaokechukwu/reapgo/errors"
	"github.com/obinnaokechukwu/reapgo/internal/handles"
	"github.com/obinnaokechukwu/reapgo/raw"
)

// DefaultAudioSlots is the audio hook capacity when none is configured.
const DefaultAudioSlots = 8

// MaxAudioSlots bounds the audio hook slot table.
const MaxAudioSlots = 64

type state int32

const (
	statePending state = iota
	stateLive
	stateRemoving
	stateRemoved
)

// Registration is one live binding between a handler and a host callback
// slot. It is owned by the Registry.
type Registration struct {
	kind  raw.Kind
	key   uintptr
	name  string
	value any
	seq   uintptr
	host  raw.Handle
	state atomic.Int32
	reg   *Registry
}

// Kind returns the host registration kind.
func (r *Registration) Kind() raw.Kind { return r.kind }

// Key returns the identity the native trampoline hands back.
func (r *Registration) Key() uintptr { return r.key }

// Name returns the registration name.
func (r *Registration) Name() string { return r.name }

// Value returns the dispatcher state bound at registration time.
func (r *Registration) Value() any { return r.value }

// Live reports whether the host may currently invoke this registration.
func (r *Registration) Live() bool { return state(r.state.Load()) == stateLive }

// Unregister removes the registration from the host and the registry.
// Calling it again is a no-op.
func (r *Registration) Unregister() error {
	return r.reg.Unregister(r)
}

type identity struct {
	kind raw.Kind
	key  uintptr
}

// Registry is the process-wide registration table.
type Registry struct {
	registrar raw.Registrar
	log       *zap.Logger

	mu     sync.RWMutex
	index  map[identity]*Registration
	all    *handles.Table[*Registration]
	used   []bool
	closed bool

	// slots is written on the main thread under mu and read lock-free by
	// the audio thread.
	slots []atomic.Pointer[Registration]
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(r *Registry) {
		if l != nil {
			r.log = l
		}
	}
}

// WithAudioSlots sets the audio hook capacity, clamped to 1..MaxAudioSlots.
func WithAudioSlots(n int) Option {
	return func(r *Registry) {
		n = min(max(n, 1), MaxAudioSlots)
		r.slots = make([]atomic.Pointer[Registration], n)
		r.used = make([]bool, n)
	}
}

// New creates a registry registering through registrar.
func New(registrar raw.Registrar, opts ...Option) *Registry {
	r := &Registry{
		registrar: registrar,
		log:       zap.NewNop(),
		index:     make(map[identity]*Registration),
		all:       handles.NewTable[*Registration](),
	}
	WithAudioSlots(DefaultAudioSlots)(r)
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// SetLogger replaces the logger.
func (r *Registry) SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	r.mu.Lock()
	r.log = l
	r.mu.Unlock()
}

func (r *Registry) logger() *zap.Logger {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.log
}

// AudioSlots returns the capacity of the audio slot table.
func (r *Registry) AudioSlots() int {
	return len(r.slots)
}

// Register registers a binding with the host and records it.
//
// key is the caller's identity for Gaccel (the command id) and is ignored
// for ControlSurface and AudioHook, which get a key assigned: a fresh
// surface id or a free audio slot. The global hooks use key 0. value is
// handed back by Lookup and Audio.
func (r *Registry) Register(kind raw.Kind, key uintptr, name string, value any) (*Registration, error) {
	const op = "register"

	reg := &Registration{kind: kind, name: name, value: value, reg: r}

	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil, errors.Registration(op, "registry is closed", nil)
	}
	reg.seq = r.all.Register(reg)
	switch kind {
	case raw.ControlSurface:
		key = reg.seq
	case raw.AudioHook:
		slot, ok := r.freeSlotLocked()
		if !ok {
			r.all.Unregister(reg.seq)
			r.mu.Unlock()
			return nil, errors.Registration(op, "no free audio hook slot", nil)
		}
		r.used[slot] = true
		key = uintptr(slot)
	}
	reg.key = key
	id := identity{kind, key}
	if _, dup := r.index[id]; dup {
		r.all.Unregister(reg.seq)
		r.mu.Unlock()
		return nil, &errors.Error{Kind: errors.KindRegistration, Op: op, Detail: kind.String() + " already registered", Value: key}
	}
	r.index[id] = reg
	r.mu.Unlock()

	// The host may call back synchronously, so it is not called under mu.
	h, ok := r.registrar.Add(kind, key, name)

	r.mu.Lock()
	if !ok {
		r.dropLocked(reg)
		r.mu.Unlock()
		return nil, errors.HostRejected(op, "host refused "+kind.String()+" registration")
	}
	reg.host = h
	if r.closed {
		// Teardown started while the host was adding it.
		r.mu.Unlock()
		r.registrar.Remove(kind, h)
		r.mu.Lock()
		r.dropLocked(reg)
		r.mu.Unlock()
		return nil, errors.Registration(op, "registry is closed", nil)
	}
	reg.state.Store(int32(stateLive))
	if kind == raw.AudioHook {
		r.slots[key].Store(reg)
	}
	log := r.log
	r.mu.Unlock()

	log.Debug("registered",
		zap.Stringer("kind", kind),
		zap.Uintptr("key", key),
		zap.String("name", name))
	return reg, nil
}

func (r *Registry) freeSlotLocked() (int, bool) {
	for i, used := range r.used {
		if !used {
			return i, true
		}
	}
	return 0, false
}

func (r *Registry) dropLocked(reg *Registration) {
	if _, ok := r.all.Unregister(reg.seq); !ok {
		errors.Fatal("registration missing from table during removal")
	}
	delete(r.index, identity{reg.kind, reg.key})
	if reg.kind == raw.AudioHook {
		r.slots[reg.key].Store(nil)
		r.used[reg.key] = false
	}
	reg.state.Store(int32(stateRemoved))
}

// Unregister asks the host to forget reg, then drops it. A registration
// that is already gone is a no-op. If the host refuses, the entry is still
// dropped and the refusal is returned.
func (r *Registry) Unregister(reg *Registration) error {
	if reg == nil {
		return nil
	}

	r.mu.Lock()
	if !reg.state.CompareAndSwap(int32(stateLive), int32(stateRemoving)) {
		r.mu.Unlock()
		return nil
	}
	if reg.kind == raw.AudioHook {
		// Stop dispatching before the host is told; a block that starts in
		// between finds an empty slot.
		r.slots[reg.key].Store(nil)
	}
	r.mu.Unlock()

	ok := r.registrar.Remove(reg.kind, reg.host)

	r.mu.Lock()
	r.dropLocked(reg)
	log := r.log
	r.mu.Unlock()

	if !ok {
		log.Warn("host refused removal",
			zap.Stringer("kind", reg.kind),
			zap.Uintptr("key", reg.key),
			zap.String("name", reg.name))
		return errors.HostRejected("unregister", "host refused to remove "+reg.kind.String())
	}
	log.Debug("unregistered",
		zap.Stringer("kind", reg.kind),
		zap.Uintptr("key", reg.key))
	return nil
}

// Lookup returns the live registration of kind under key. It neither
// blocks on the host nor allocates.
func (r *Registry) Lookup(kind raw.Kind, key uintptr) (*Registration, bool) {
	r.mu.RLock()
	reg := r.index[identity{kind, key}]
	r.mu.RUnlock()
	if reg == nil || !reg.Live() {
		return nil, false
	}
	return reg, true
}

// Audio returns the audio hook in slot, or nil. It is lock-free and does
// not allocate; it is the only registry method the audio thread may call.
func (r *Registry) Audio(slot uintptr) *Registration {
	if slot >= uintptr(len(r.slots)) {
		return nil
	}
	return r.slots[slot].Load()
}

// Registrations returns the live registrations of kind, oldest first. Zero
// selects every kind.
func (r *Registry) Registrations(kind raw.Kind) []*Registration {
	ids := r.all.IDs()
	out := make([]*Registration, 0, len(ids))
	for i := len(ids) - 1; i >= 0; i-- {
		reg, ok := r.all.Lookup(ids[i])
		if ok && reg.Live() && (kind == 0 || reg.kind == kind) {
			out = append(out, reg)
		}
	}
	return out
}

// Len returns the number of entries, including ones being registered or
// removed.
func (r *Registry) Len() int {
	return r.all.Count()
}

// Closed reports whether Teardown ran.
func (r *Registry) Closed() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.closed
}

// Teardown unregisters every entry, newest first, and refuses further
// registrations. Errors from individual removals are combined; every entry
// is dropped regardless.
func (r *Registry) Teardown() error {
	r.mu.Lock()
	r.closed = true
	r.mu.Unlock()

	var err error
	for _, id := range r.all.IDs() {
		reg, ok := r.all.Lookup(id)
		if !ok {
			continue
		}
		err = multierr.Append(err, r.Unregister(reg))
	}
	return err
}
