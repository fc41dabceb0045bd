//go:build !ios && !android && (amd64 || arm64)

// Package reapgo is a safe layer over the REAPER extension API.
//
// It turns the host's raw function table into typed operations that
// revalidate their handles on every use and refuse to run on the wrong
// thread, and it turns the host's native callbacks (actions, control
// surfaces, audio hooks) into calls of ordinary Go handlers.
//
// A Session is created once per process, usually from the extension entry
// point, and activated on the host's main thread:
//
//	s, err := reapgo.New(fns, registrar, config.Default())
//	tok, err := s.Activate()
//	proj, err := s.CurrentProject(tok)
//	track, err := proj.Track(tok, 0)
//	name, err := track.Name(tok)
//
// Every operation takes the thread token of the class it requires. Main
// tokens come from Session.Activate, Session.MainToken or the context of a
// main-thread callback; audio tokens only exist inside an audio hook.
package reapgo

import (
	"github.com/obinnaokechukwu/reapgo/dispatch"
	"github.com/obinnaokechukwu/reapgo/errors"
	"github.com/obinnaokechukwu/reapgo/registry"
	"github.com/obinnaokechukwu/reapgo/thread"
)

// Version is the reapgo release.
const Version = "0.1.0"

// Re-export common types for convenience
type (
	// MainToken proves execution on the host's main thread.
	MainToken = thread.MainToken

	// AudioToken proves execution inside an audio hook.
	AudioToken = thread.AudioToken

	// Registration is a live binding with the host. Unregister it to remove
	// it early; Session.Close removes the rest.
	Registration = registry.Registration

	// MainContext is the context of a main-thread callback.
	MainContext = dispatch.MainContext

	// Subscription cancels a post-command observer.
	Subscription = dispatch.Subscription
)

// Re-export error sentinels
var (
	ErrInvalidated     = errors.ErrInvalidated
	ErrThreadViolation = errors.ErrThreadViolation
	ErrUnknownVariant  = errors.ErrUnknownVariant
	ErrHostRejected    = errors.ErrHostRejected
	ErrRegistration    = errors.ErrRegistration
	ErrNotLoaded       = errors.ErrNotLoaded
	ErrInvalidArgument = errors.ErrInvalidArgument
)
