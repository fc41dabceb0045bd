//go:build !ios && !android && (amd64 || arm64)

package reapgo

import (
	"github.com/obinnaokechukwu/reapgo/dispatch"
	"github.com/obinnaokechukwu/reapgo/errors"
	"github.com/obinnaokechukwu/reapgo/raw"
)

// ToggleState is the on/off state of an action as shown in menus and
// toolbars.
type ToggleState int32

const (
	ToggleNone ToggleState = ToggleState(dispatch.ToggleNone)
	ToggleOff  ToggleState = ToggleState(dispatch.ToggleOff)
	ToggleOn   ToggleState = ToggleState(dispatch.ToggleOn)
)

func (t ToggleState) String() string {
	switch t {
	case ToggleNone:
		return "none"
	case ToggleOff:
		return "off"
	case ToggleOn:
		return "on"
	default:
		return "unknown"
	}
}

// Action is an entry of the host's action list.
type Action struct {
	// Description is the label shown in the action list.
	Description string
	// Run is called when the action is triggered.
	Run func(ctx MainContext)
	// Toggle, if set, makes the action a toggle and reports its state.
	Toggle func(ctx MainContext) bool
}

// RegisterAction adds a to the action list under the command name derived
// from key and the configured prefix. Registering the same key again
// fails until the first registration is removed.
func (s *Session) RegisterAction(tok MainToken, key string, a Action) (CommandID, *Registration, error) {
	const op = "register action"
	if err := tok.Check(op); err != nil {
		return 0, nil, err
	}
	if key == "" {
		return 0, nil, errors.InvalidArgument(op, "action key is empty", key)
	}
	if err := checkString(op, key); err != nil {
		return 0, nil, err
	}
	if err := checkString(op, a.Description); err != nil {
		return 0, nil, err
	}

	name := s.cfg.CommandName(key)
	id := s.registrar.AllocateCommandID(name)
	if id == 0 {
		return 0, nil, errors.HostRejected(op, "no command id for "+name)
	}

	da := dispatch.Action{Description: a.Description, Run: a.Run}
	if a.Toggle != nil {
		toggle := a.Toggle
		da.Toggle = func(ctx MainContext) int32 {
			if toggle(ctx) {
				return dispatch.ToggleOn
			}
			return dispatch.ToggleOff
		}
	}
	reg, err := s.disp.RegisterAction(tok, id, da)
	if err != nil {
		return 0, nil, err
	}
	return CommandID(id), reg, nil
}

// RunAction triggers a command in the main section, on the current
// project.
func (s *Session) RunAction(tok MainToken, id CommandID) error {
	const op = "run action"
	if err := tok.Check(op); err != nil {
		return err
	}
	if id == 0 {
		return errors.InvalidArgument(op, "command id must not be zero", 0)
	}
	s.fns.MainOnCommandEx(id.Raw(), 0, raw.Null)
	return nil
}

// ToggleState queries the toggle state of a command.
func (s *Session) ToggleState(tok MainToken, section SectionID, id CommandID) (ToggleState, error) {
	const op = "toggle state"
	if err := tok.Check(op); err != nil {
		return ToggleNone, err
	}
	v := s.fns.GetToggleCommandStateEx(section.Raw(), id.Raw())
	switch ToggleState(v) {
	case ToggleNone, ToggleOff, ToggleOn:
		return ToggleState(v), nil
	}
	return ToggleNone, errors.UnknownVariant("ToggleState", v)
}

// LookupCommand resolves a named command, such as "_SWS_ABOUT" or a
// command name registered by RegisterAction.
func (s *Session) LookupCommand(tok MainToken, name string) (CommandID, error) {
	const op = "lookup command"
	if err := tok.Check(op); err != nil {
		return 0, err
	}
	if err := checkString(op, name); err != nil {
		return 0, err
	}
	id := s.fns.NamedCommandLookup(name)
	if id == 0 {
		return 0, errors.HostRejected(op, "unknown command "+name)
	}
	return CommandID(id), nil
}

// ObservePostCommand calls fn after the host executed any command.
// Observers run in subscription order.
func (s *Session) ObservePostCommand(tok MainToken, fn func(ctx MainContext, id CommandID, flag int32)) (Subscription, error) {
	if fn == nil {
		return s.disp.ObservePostCommand(tok, nil)
	}
	return s.disp.ObservePostCommand(tok, func(ctx MainContext, command, flag int32) {
		fn(ctx, CommandID(command), flag)
	})
}
