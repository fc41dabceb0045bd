//go:build !ios && !android && (amd64 || arm64)

// Package thread implements capability tokens that prove the caller runs on
// the thread class an operation requires.
//
// The host has two relevant execution contexts: a main thread, where most
// host calls are legal, and a realtime audio thread, where only the audio
// hook runs. Operations declare their class by the token type they accept.
// A token that cannot be backed by the current context fails with a thread
// violation; nothing is ever marshalled to another thread.
//
// Tokens are values and are cheap to copy. The zero value of every token is
// invalid, so a token cannot be forged by declaring a variable.
package thread

import (
	"sync/atomic"

	"github.com/obinnaokechukwu/reapgo/errors"
	"github.com/obinnaokechukwu/reapgo/internal/platform"
)

// Class is the thread class an operation requires.
type Class int

const (
	// Any operations are safe on every thread and take no token.
	Any Class = iota
	// MainThreadOnly operations require a MainToken.
	MainThreadOnly
	// AudioThreadOnly operations require an AudioToken.
	AudioThreadOnly
)

func (c Class) String() string {
	switch c {
	case Any:
		return "any"
	case MainThreadOnly:
		return "main"
	case AudioThreadOnly:
		return "audio"
	default:
		return "unknown"
	}
}

// ID identifies an OS thread.
type ID uint64

// NoThread is reported by an Identifier that cannot tell threads apart.
// No token is ever backed by it.
const NoThread ID = 0

// Identifier reports the thread the caller is running on.
type Identifier func() ID

// OSThread is the Identifier backed by the operating system.
func OSThread() ID {
	return ID(platform.CurrentThreadID())
}

// Token is implemented by MainToken and AudioToken only.
type Token interface {
	// Class reports the thread class the token proves.
	Class() Class
	// Check returns a thread violation for op when the token is not backed
	// by the current context.
	Check(op string) error

	sealed()
}

// Guard ties main tokens to the thread a session was activated on.
type Guard struct {
	current Identifier
	main    atomic.Uint64
	bound   atomic.Bool
}

// NewGuard creates a guard. A nil identifier selects OSThread.
func NewGuard(current Identifier) *Guard {
	if current == nil {
		current = OSThread
	}
	return &Guard{current: current}
}

// BindMain records the calling thread as the main thread.
func (g *Guard) BindMain() {
	g.main.Store(uint64(g.current()))
	g.bound.Store(true)
}

// Unbind forgets the main thread. Every main token minted by this guard
// becomes invalid.
func (g *Guard) Unbind() {
	g.bound.Store(false)
}

// OnMain reports whether the caller runs on the bound main thread.
func (g *Guard) OnMain() bool {
	id := g.current()
	return id != NoThread && g.bound.Load() && ID(g.main.Load()) == id
}

// Main returns a main token if the caller runs on the main thread.
func (g *Guard) Main() (MainToken, error) {
	if g.current() == NoThread {
		detail := "thread identity unavailable"
		if err := platform.ThreadIdentityError(); err != nil {
			detail += ": " + err.Error()
		}
		return MainToken{}, errors.ThreadViolation("acquire main token", detail)
	}
	if !g.OnMain() {
		return MainToken{}, errors.ThreadViolation("acquire main token", "not on the main thread")
	}
	return MainToken{guard: g}, nil
}

// MainToken proves execution on the host's main thread. It is re-checked
// on every use, so a token carried to another thread stops working there.
type MainToken struct {
	guard *Guard
}

// Class implements Token.
func (MainToken) Class() Class { return MainThreadOnly }

// Check implements Token.
func (t MainToken) Check(op string) error {
	if t.guard == nil {
		return errors.ThreadViolation(op, "zero main token")
	}
	if !t.guard.OnMain() {
		return errors.ThreadViolation(op, "main token used off the main thread")
	}
	return nil
}

// Valid reports whether Check would succeed.
func (t MainToken) Valid() bool {
	return t.guard != nil && t.guard.OnMain()
}

func (MainToken) sealed() {}

// Scope is the lifetime of one audio callback invocation. The dispatcher
// owns one scope per audio hook slot, allocated at registration time.
//
// The epoch is odd while a callback runs. Exit advances it, so a token that
// escaped its callback never validates again.
type Scope struct {
	epoch atomic.Uint64
}

// Enter starts a callback and returns its token.
func (s *Scope) Enter() AudioToken {
	return AudioToken{scope: s, epoch: s.epoch.Add(1)}
}

// Exit ends the callback started by the last Enter.
func (s *Scope) Exit() {
	s.epoch.Add(1)
}

// Active reports whether a callback is running in this scope.
func (s *Scope) Active() bool {
	return s.epoch.Load()%2 == 1
}

// AudioToken proves execution inside an audio hook callback. It is only
// valid until that callback returns.
type AudioToken struct {
	scope *Scope
	epoch uint64
}

// Class implements Token.
func (AudioToken) Class() Class { return AudioThreadOnly }

// Check implements Token. It does not allocate on success.
func (t AudioToken) Check(op string) error {
	if t.scope == nil {
		return errors.ThreadViolation(op, "zero audio token")
	}
	if t.scope.epoch.Load() != t.epoch {
		return errors.ThreadViolation(op, "audio token used outside its callback")
	}
	return nil
}

// Valid reports whether Check would succeed.
func (t AudioToken) Valid() bool {
	return t.scope != nil && t.scope.epoch.Load() == t.epoch
}

func (AudioToken) sealed() {}

// Require checks that tok proves class c for op.
func Require(op string, c Class, tok Token) error {
	if c == Any {
		return nil
	}
	if tok == nil {
		return errors.ThreadViolation(op, "no token for "+c.String()+" thread operation")
	}
	if tok.Class() != c {
		return errors.ThreadViolation(op, c.String()+" thread operation called with "+tok.Class().String()+" token")
	}
	return tok.Check(op)
}
