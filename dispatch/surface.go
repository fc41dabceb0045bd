//go:build !ios && !android && (amd64 || arm64)

package dispatch

import (
	"github.com/sony/gobreaker/v2"

	"github.com/obinnaokechukwu/reapgo/raw"
	"github.com/obinnaokechukwu/reapgo/registry"
	"github.com/obinnaokechukwu/reapgo/thread"
)

// SurfaceHandler receives every call the host makes on a control surface.
// The return value matters for GetTouchState, IsKeyDown and Extended only.
type SurfaceHandler interface {
	SurfaceEvent(ctx MainContext, ev raw.SurfaceEvent) int32
}

type surfaceState struct {
	handler SurfaceHandler
	breaker *gobreaker.CircuitBreaker[struct{}]
}

// RegisterSurface registers a control surface. typeName identifies it to
// the host.
func (d *Dispatcher) RegisterSurface(tok thread.MainToken, typeName string, h SurfaceHandler) (*registry.Registration, error) {
	const op = "register control surface"
	if err := checkRegister(op, tok); err != nil {
		return nil, err
	}
	if h == nil {
		return nil, invalidHandler(op)
	}
	st := &surfaceState{handler: h, breaker: d.breaker(typeName)}
	return d.reg.Register(raw.ControlSurface, 0, typeName, st)
}

// SurfaceEvent implements raw.Callbacks. Events for unknown or removed
// surfaces return 0.
func (d *Dispatcher) SurfaceEvent(key uintptr, ev raw.SurfaceEvent) int32 {
	reg, ok := d.reg.Lookup(raw.ControlSurface, key)
	if !ok {
		return 0
	}
	st, _ := reg.Value().(*surfaceState)
	if st == nil {
		return 0
	}
	ctx, ok := d.mainContext(raw.ControlSurface, reg)
	if !ok {
		return 0
	}
	var res int32
	if !d.invoke(st.breaker, raw.ControlSurface, key, func() { res = st.handler.SurfaceEvent(ctx, ev) }) {
		return 0
	}
	return res
}
