//go:build !ios && !android && (amd64 || arm64)

package dispatch

import (
	"github.com/sony/gobreaker/v2"

	"github.com/obinnaokechukwu/reapgo/errors"
	"github.com/obinnaokechukwu/reapgo/raw"
	"github.com/obinnaokechukwu/reapgo/registry"
	"github.com/obinnaokechukwu/reapgo/thread"
)

// Toggle states reported to the host.
const (
	ToggleNone int32 = -1
	ToggleOff  int32 = 0
	ToggleOn   int32 = 1
)

// Action is a command shown in the host's action list.
type Action struct {
	// Description is the action list label.
	Description string
	// Run is invoked when the action is triggered.
	Run func(ctx MainContext)
	// Toggle reports the on/off state for menus and toolbars. Nil means the
	// action is not a toggle.
	Toggle func(ctx MainContext) int32
}

type actionState struct {
	action  Action
	breaker *gobreaker.CircuitBreaker[struct{}]
}

// RegisterAction binds a to an allocated command id and adds it to the
// action list.
func (d *Dispatcher) RegisterAction(tok thread.MainToken, command int32, a Action) (*registry.Registration, error) {
	const op = "register action"
	if err := checkRegister(op, tok); err != nil {
		return nil, err
	}
	if command == 0 {
		return nil, errors.InvalidArgument(op, "command id must not be zero", command)
	}
	if a.Run == nil {
		return nil, invalidHandler(op)
	}
	st := &actionState{action: a, breaker: d.breaker(a.Description)}
	return d.reg.Register(raw.Gaccel, uintptr(command), a.Description, st)
}

func (d *Dispatcher) action(command int32) (*registry.Registration, *actionState) {
	reg, ok := d.reg.Lookup(raw.Gaccel, uintptr(command))
	if !ok {
		return nil, nil
	}
	st, _ := reg.Value().(*actionState)
	return reg, st
}

// HookCommand implements raw.Callbacks. It reports whether the command
// belongs to a registered action and ran without panicking.
func (d *Dispatcher) HookCommand(command, flag int32) bool {
	reg, st := d.action(command)
	if st == nil {
		return false
	}
	ctx, ok := d.mainContext(raw.HookCommand, reg)
	if !ok {
		return false
	}
	return d.invoke(st.breaker, raw.Gaccel, reg.Key(), func() { st.action.Run(ctx) })
}

// ToggleAction implements raw.Callbacks.
func (d *Dispatcher) ToggleAction(command int32) int32 {
	reg, st := d.action(command)
	if st == nil || st.action.Toggle == nil {
		return ToggleNone
	}
	ctx, ok := d.mainContext(raw.ToggleAction, reg)
	if !ok {
		return ToggleNone
	}
	state := ToggleNone
	if !d.invoke(st.breaker, raw.ToggleAction, reg.Key(), func() { state = st.action.Toggle(ctx) }) {
		return ToggleNone
	}
	return state
}

// PostCommandFunc observes every command the host executes.
type PostCommandFunc func(ctx MainContext, command, flag int32)

type postObserver struct {
	id      uintptr
	fn      PostCommandFunc
	breaker *gobreaker.CircuitBreaker[struct{}]
}

// Subscription cancels a post-command observer.
type Subscription struct {
	d  *Dispatcher
	id uintptr
}

// Cancel stops the observer. Cancelling twice is a no-op.
func (s Subscription) Cancel() {
	if s.d == nil {
		return
	}
	d := s.d
	d.obsMu.Lock()
	defer d.obsMu.Unlock()
	cur := d.loadObservers()
	for i, o := range cur {
		if o.id == s.id {
			next := make([]*postObserver, 0, len(cur)-1)
			next = append(next, cur[:i]...)
			next = append(next, cur[i+1:]...)
			d.observers.Store(&next)
			return
		}
	}
}

// ObservePostCommand adds an observer called after every command, in
// subscription order. The post-command hook must be installed, see
// InstallHooks.
func (d *Dispatcher) ObservePostCommand(tok thread.MainToken, fn PostCommandFunc) (Subscription, error) {
	const op = "observe post command"
	if err := checkRegister(op, tok); err != nil {
		return Subscription{}, err
	}
	if fn == nil {
		return Subscription{}, invalidHandler(op)
	}

	d.obsMu.Lock()
	defer d.obsMu.Unlock()
	d.nextObserver++
	o := &postObserver{id: d.nextObserver, fn: fn, breaker: d.breaker("post-command observer")}
	// Copy on write: dispatch iterates the published slice without locking.
	cur := d.loadObservers()
	next := make([]*postObserver, len(cur), len(cur)+1)
	copy(next, cur)
	next = append(next, o)
	d.observers.Store(&next)
	return Subscription{d: d, id: o.id}, nil
}

func (d *Dispatcher) loadObservers() []*postObserver {
	if p := d.observers.Load(); p != nil {
		return *p
	}
	return nil
}

// HookPostCommand implements raw.Callbacks.
func (d *Dispatcher) HookPostCommand(command, flag int32) {
	reg, ok := d.reg.Lookup(raw.HookPostCommand, 0)
	if !ok {
		return
	}
	obs := d.loadObservers()
	if len(obs) == 0 {
		return
	}
	ctx, ok := d.mainContext(raw.HookPostCommand, reg)
	if !ok {
		return
	}
	for _, o := range obs {
		d.invoke(o.breaker, raw.HookPostCommand, o.id, func() { o.fn(ctx, command, flag) })
	}
}
