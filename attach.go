//go:build !ios && !android && (amd64 || arm64)

package reapgo

import (
	"go.uber.org/multierr"

	"github.com/obinnaokechukwu/reapgo/config"
	"github.com/obinnaokechukwu/reapgo/internal/bindings"
)

var attachedHost *bindings.Host

// Attach connects to the running host through the reaper_plugin_info_t at
// info, the argument of the extension entry point, and loads an activated
// session over it. It must be called on the host's main thread.
func Attach(info uintptr, cfg config.Config, opts ...Option) (*Session, MainToken, error) {
	h, err := bindings.Attach(info, Logger().Named("bindings"))
	if err != nil {
		return nil, MainToken{}, err
	}

	s, err := New(h, h, cfg, opts...)
	if err != nil {
		h.Detach()
		return nil, MainToken{}, err
	}
	tok, err := s.Activate()
	if err != nil {
		h.Detach()
		return nil, MainToken{}, err
	}
	if err := Load(s); err != nil {
		err = multierr.Append(err, s.Close())
		h.Detach()
		return nil, MainToken{}, err
	}

	globalMu.Lock()
	attachedHost = h
	globalMu.Unlock()
	return s, tok, nil
}

// Detach unloads the session and releases the host. Extensions call it
// when the entry point is invoked with a null info pointer.
func Detach() error {
	err := Unload()

	globalMu.Lock()
	h := attachedHost
	attachedHost = nil
	globalMu.Unlock()
	if h != nil {
		h.Detach()
	}
	return err
}
