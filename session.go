//go:build !ios && !android && (amd64 || arm64)

package reapgo

import (
	"sync"

	"go.uber.org/zap"

	"github.com/obinnaokechukwu/reapgo/config"
	"github.com/obinnaokechukwu/reapgo/dispatch"
	"github.com/obinnaokechukwu/reapgo/errors"
	"github.com/obinnaokechukwu/reapgo/handle"
	"github.com/obinnaokechukwu/reapgo/raw"
	"github.com/obinnaokechukwu/reapgo/registry"
	"github.com/obinnaokechukwu/reapgo/thread"
)

type sessionState int

const (
	stateInactive sessionState = iota
	stateActive
	stateClosed
)

// Session owns everything reapgo registered with one host.
type Session struct {
	fns       raw.Functions
	registrar raw.Registrar
	cfg       config.Config
	guard     *thread.Guard
	gate      *handle.Gate
	reg       *registry.Registry
	disp      *dispatch.Dispatcher

	mu    sync.Mutex
	log   *zap.Logger
	state sessionState
}

type options struct {
	logger  *zap.Logger
	threads thread.Identifier
}

// Option configures a Session.
type Option func(*options)

// WithLogger sets the session logger. It defaults to the package logger.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithThreadIdentifier replaces OS thread identification, for simulated
// hosts.
func WithThreadIdentifier(id thread.Identifier) Option {
	return func(o *options) { o.threads = id }
}

// New creates an inactive session over a raw layer.
func New(fns raw.Functions, registrar raw.Registrar, cfg config.Config, opts ...Option) (*Session, error) {
	if fns == nil || registrar == nil {
		return nil, errors.InvalidArgument("new session", "raw layer is required", nil)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	o := options{logger: Logger()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = zap.NewNop()
	}

	guard := thread.NewGuard(o.threads)
	reg := registry.New(registrar,
		registry.WithAudioSlots(cfg.AudioHookSlots),
		registry.WithLogger(o.logger.Named("registry")))
	disp := dispatch.New(reg, guard,
		dispatch.WithFirewall(cfg.Firewall),
		dispatch.WithLogger(o.logger.Named("dispatch")))

	return &Session{
		fns:       fns,
		registrar: registrar,
		cfg:       cfg,
		guard:     guard,
		gate:      handle.NewGate(fns),
		reg:       reg,
		disp:      disp,
		log:       o.logger,
	}, nil
}

// Activate binds the session to the calling thread as the host's main
// thread, connects the native callbacks and installs the global command
// hooks. It must be called on the main thread. Activating an active
// session returns a fresh token.
func (s *Session) Activate() (MainToken, error) {
	const op = "activate"

	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case stateClosed:
		return MainToken{}, errors.Registration(op, "session is closed", nil)
	case stateActive:
		return s.guard.Main()
	}

	s.guard.BindMain()
	tok, err := s.guard.Main()
	if err != nil {
		s.guard.Unbind()
		return MainToken{}, err
	}
	if sink, ok := s.registrar.(raw.CallbackSink); ok {
		sink.SetCallbacks(s.disp)
	}
	if err := s.disp.InstallHooks(tok); err != nil {
		s.guard.Unbind()
		return MainToken{}, err
	}
	s.state = stateActive
	s.log.Info("session activated", zap.String("host", s.fns.GetAppVersion()))
	return tok, nil
}

// Active reports whether the session is activated and not closed.
func (s *Session) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state == stateActive
}

// MainToken returns a main token when called on the main thread.
func (s *Session) MainToken() (MainToken, error) {
	return s.guard.Main()
}

// Close unregisters everything from the host, newest first, and
// invalidates every main token of the session. Closing twice is a no-op.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == stateClosed {
		return nil
	}
	s.state = stateClosed

	err := s.reg.Teardown()
	if sink, ok := s.registrar.(raw.CallbackSink); ok {
		sink.SetCallbacks(nil)
	}
	s.guard.Unbind()
	if err != nil {
		s.log.Warn("session closed with errors", zap.Error(err))
	} else {
		s.log.Info("session closed")
	}
	return err
}

// Config returns the session configuration.
func (s *Session) Config() config.Config { return s.cfg }

// Registry exposes the registration table, for inspection.
func (s *Session) Registry() *registry.Registry { return s.reg }

// Stats reports recovered handler panics and firewall skips.
func (s *Session) Stats() (panics, skipped uint64) {
	return s.disp.Panics(), s.disp.Skipped()
}

// Logger returns the session logger.
func (s *Session) Logger() *zap.Logger {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.log
}

// SetLogger replaces the logger of the session, its registry and its
// dispatcher.
func (s *Session) SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	s.mu.Lock()
	s.log = l
	s.mu.Unlock()
	s.reg.SetLogger(l.Named("registry"))
	s.disp.SetLogger(l.Named("dispatch"))
}

var (
	globalMu sync.Mutex
	global   *Session
)

// Load makes s the process-wide session. The host is a per-process
// singleton, so only one session can be loaded at a time.
func Load(s *Session) error {
	if s == nil {
		return errors.InvalidArgument("load session", "session is nil", nil)
	}
	globalMu.Lock()
	defer globalMu.Unlock()
	if global != nil {
		return errors.Registration("load session", "a session is already loaded", nil)
	}
	global = s
	return nil
}

// Get returns the loaded session.
func Get() (*Session, error) {
	globalMu.Lock()
	defer globalMu.Unlock()
	if global == nil {
		return nil, &errors.Error{Kind: errors.KindNotLoaded, Op: "get session", Detail: "no session loaded"}
	}
	return global, nil
}

// Unload closes and forgets the loaded session. It is a no-op when none
// is loaded.
func Unload() error {
	globalMu.Lock()
	s := global
	global = nil
	globalMu.Unlock()
	if s == nil {
		return nil
	}
	return s.Close()
}
