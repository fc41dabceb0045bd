//go:build !ios && !android && (amd64 || arm64)

// Package dispatch routes host-initiated callbacks to user handlers.
//
// A Dispatcher implements raw.Callbacks. For every native callback it looks
// up the registration by the key the trampoline handed back, builds a
// callback context carrying the thread token for that callback kind and
// runs the handler. A panic never crosses back into the host: it is
// recovered at this boundary, logged and the callback behaves as a no-op
// for that invocation.
//
// Handlers that panic repeatedly are isolated by a circuit breaker
// (gobreaker on the main thread, an atomic failure counter on the audio
// thread) so a broken handler does not flood the log at 30 Hz.
package dispatch

import (
	stderrors "errors"
	"sync"
	"sync/atomic"

	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"

	"github.com/obinnaokechukwu/reapgo/config"
	"github.com/obinnaokechukwu/reapgo/errors"
	"github.com/obinnaokechukwu/reapgo/raw"
	"github.com/obinnaokechukwu/reapgo/registry"
	"github.com/obinnaokechukwu/reapgo/thread"
)

// MainContext is handed to every main-thread handler. It must not be kept
// after the handler returns.
type MainContext struct {
	Token        thread.MainToken
	Registration *registry.Registration
}

// Dispatcher turns native callbacks into handler calls.
type Dispatcher struct {
	reg      *registry.Registry
	guard    *thread.Guard
	firewall config.FirewallConfig
	log      atomic.Pointer[zap.Logger]

	obsMu        sync.Mutex
	nextObserver uintptr
	observers    atomic.Pointer[[]*postObserver]

	panics  atomic.Uint64
	skipped atomic.Uint64
}

var _ raw.Callbacks = (*Dispatcher)(nil)

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(d *Dispatcher) { d.SetLogger(l) }
}

// WithFirewall configures handler isolation.
func WithFirewall(fw config.FirewallConfig) Option {
	return func(d *Dispatcher) { d.firewall = fw }
}

// New creates a dispatcher resolving registrations in reg and minting
// main tokens from guard.
func New(reg *registry.Registry, guard *thread.Guard, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		reg:      reg,
		guard:    guard,
		firewall: config.Default().Firewall,
	}
	d.log.Store(zap.NewNop())
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// SetLogger replaces the logger.
func (d *Dispatcher) SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	d.log.Store(l)
}

func (d *Dispatcher) logger() *zap.Logger {
	return d.log.Load()
}

// Panics returns the number of handler panics recovered so far.
func (d *Dispatcher) Panics() uint64 { return d.panics.Load() }

// Skipped returns the number of invocations skipped by a tripped firewall.
func (d *Dispatcher) Skipped() uint64 { return d.skipped.Load() }

// Registry returns the registry the dispatcher resolves keys in.
func (d *Dispatcher) Registry() *registry.Registry { return d.reg }

// InstallHooks registers the global command, toggle and post-command hooks
// with the host. Installing twice is a no-op.
func (d *Dispatcher) InstallHooks(tok thread.MainToken) error {
	if err := tok.Check("install hooks"); err != nil {
		return err
	}
	for _, kind := range []raw.Kind{raw.HookCommand, raw.ToggleAction, raw.HookPostCommand} {
		if _, ok := d.reg.Lookup(kind, 0); ok {
			continue
		}
		if _, err := d.reg.Register(kind, 0, "", nil); err != nil {
			return err
		}
	}
	return nil
}

var errHandlerPanicked = stderrors.New("handler panicked")

// breaker returns a breaker for one registration, or nil when the firewall
// is off.
func (d *Dispatcher) breaker(name string) *gobreaker.CircuitBreaker[struct{}] {
	if !d.firewall.Enabled {
		return nil
	}
	threshold := d.firewall.FailureThreshold
	return gobreaker.NewCircuitBreaker[struct{}](gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Timeout:     d.firewall.Cooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			d.logger().Info("handler firewall state changed",
				zap.String("handler", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
		},
	})
}

// invoke runs fn behind the breaker and the panic boundary. It reports
// whether fn ran to completion.
func (d *Dispatcher) invoke(br *gobreaker.CircuitBreaker[struct{}], kind raw.Kind, key uintptr, fn func()) bool {
	if br == nil {
		return d.protect(kind, key, fn)
	}
	_, err := br.Execute(func() (struct{}, error) {
		if !d.protect(kind, key, fn) {
			return struct{}{}, errHandlerPanicked
		}
		return struct{}{}, nil
	})
	if stderrors.Is(err, gobreaker.ErrOpenState) || stderrors.Is(err, gobreaker.ErrTooManyRequests) {
		d.skipped.Add(1)
		return false
	}
	return err == nil
}

func (d *Dispatcher) protect(kind raw.Kind, key uintptr, fn func()) (ok bool) {
	defer func() {
		if p := recover(); p != nil {
			d.panics.Add(1)
			d.logger().Error("recovered handler panic",
				zap.Stringer("kind", kind),
				zap.Uintptr("key", key),
				zap.Any("panic", p),
				zap.Stack("stack"))
			ok = false
		}
	}()
	fn()
	return true
}

// mainContext mints the context for a main-thread callback. The host only
// calls these on its main thread; if it does not, the call is dropped.
func (d *Dispatcher) mainContext(kind raw.Kind, reg *registry.Registration) (MainContext, bool) {
	tok, err := d.guard.Main()
	if err != nil {
		d.logger().Warn("main-thread callback arrived off the main thread",
			zap.Stringer("kind", kind),
			zap.Error(err))
		return MainContext{}, false
	}
	return MainContext{Token: tok, Registration: reg}, true
}

func checkRegister(op string, tok thread.MainToken) error {
	return tok.Check(op)
}

func invalidHandler(op string) error {
	return errors.InvalidArgument(op, "handler must not be nil", nil)
}
