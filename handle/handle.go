//go:build !ios && !android && (amd64 || arm64)

// Package handle models non-owning references to host objects.
//
// The host owns every object and may free it at any time without notice,
// after which the same address can be reused for an unrelated object. A Ref
// therefore carries no validity state at all: the only way to reach the raw
// pointer is WithValid, which asks the host's liveness probe on every use.
package handle

import (
	"fmt"

	"github.com/obinnaokechukwu/reapgo/errors"
	"github.com/obinnaokechukwu/reapgo/raw"
	"github.com/obinnaokechukwu/reapgo/thread"
)

// Kind is implemented by the marker types below. TypeName is the struct
// name the liveness probe expects.
type Kind interface {
	TypeName() string
	KindName() string
}

// Object kinds.
type (
	Project  struct{}
	Track    struct{}
	Item     struct{}
	Take     struct{}
	Envelope struct{}
)

func (Project) TypeName() string  { return raw.TypeProject }
func (Project) KindName() string  { return "project" }
func (Track) TypeName() string    { return raw.TypeTrack }
func (Track) KindName() string    { return "track" }
func (Item) TypeName() string     { return raw.TypeItem }
func (Item) KindName() string     { return "item" }
func (Take) TypeName() string     { return raw.TypeTake }
func (Take) KindName() string     { return "take" }
func (Envelope) TypeName() string { return raw.TypeEnvelope }
func (Envelope) KindName() string { return "envelope" }

// Ref is a typed reference to a host object of kind K. The zero Ref denotes
// nothing and never validates.
type Ref[K Kind] struct {
	ptr  raw.Handle
	proj raw.Handle
}

// New wraps a raw pointer. proj scopes the liveness probe to one project;
// raw.Null accepts the object in any open project.
func New[K Kind](proj, ptr raw.Handle) Ref[K] {
	return Ref[K]{ptr: ptr, proj: proj}
}

// IsZero reports whether r denotes nothing.
func (r Ref[K]) IsZero() bool {
	return r.ptr == raw.Null
}

// Same reports whether r and o were created from the same host pointer.
// The answer only means "same object" if both are valid right now.
func (r Ref[K]) Same(o Ref[K]) bool {
	return r.ptr == o.ptr
}

// Project returns the project the probe is scoped to.
func (r Ref[K]) Project() Ref[Project] {
	return Ref[Project]{ptr: r.proj}
}

func (r Ref[K]) String() string {
	var k K
	return fmt.Sprintf("%s(%#x)", k.KindName(), uintptr(r.ptr))
}

// Validated is a Ref that passed its liveness probe. It must not be kept
// beyond the function it was handed to.
type Validated[K Kind] struct {
	ptr  raw.Handle
	proj raw.Handle
}

// Raw returns the host pointer.
func (v Validated[K]) Raw() raw.Handle { return v.ptr }

// ProjectRaw returns the project pointer the probe was scoped to, or
// raw.Null.
func (v Validated[K]) ProjectRaw() raw.Handle { return v.proj }

// Ref returns the unvalidated reference v came from.
func (v Validated[K]) Ref() Ref[K] { return Ref[K]{ptr: v.ptr, proj: v.proj} }

// Child wraps ptr, an object reached through parent, with the same probe
// scope as parent.
func Child[C Kind, K Kind](parent Validated[K], ptr raw.Handle) Ref[C] {
	return Ref[C]{ptr: ptr, proj: parent.proj}
}

// Gate runs the liveness probe in front of every host call.
type Gate struct {
	fns raw.Functions
}

// NewGate creates a gate probing through fns.
func NewGate(fns raw.Functions) *Gate {
	return &Gate{fns: fns}
}

// Functions returns the raw function table behind the gate.
func (g *Gate) Functions() raw.Functions {
	return g.fns
}

// Alive asks the host whether r still denotes a live object. It checks no
// thread token; callers on a foreign thread must hold one.
func Alive[K Kind](g *Gate, r Ref[K]) bool {
	if r.ptr == raw.Null {
		return false
	}
	var k K
	return g.fns.ValidatePtr2(r.proj, r.ptr, k.TypeName())
}

// Check validates the thread token and then r, in that order. Neither step
// reaches the host beyond the probe.
func Check[K Kind](g *Gate, tok thread.Token, op string, r Ref[K]) (Validated[K], error) {
	if tok == nil {
		return Validated[K]{}, errors.ThreadViolation(op, "no thread token")
	}
	if err := tok.Check(op); err != nil {
		return Validated[K]{}, err
	}
	if !Alive(g, r) {
		var k K
		return Validated[K]{}, errors.Invalidated(op, k.KindName())
	}
	return Validated[K]{ptr: r.ptr, proj: r.proj}, nil
}

// WithValid revalidates r and runs fn with the validated reference. When
// the token or the probe fails, fn is not called and no host call is made.
func WithValid[K Kind, R any](g *Gate, tok thread.Token, op string, r Ref[K], fn func(Validated[K]) (R, error)) (R, error) {
	v, err := Check(g, tok, op, r)
	if err != nil {
		var zero R
		return zero, err
	}
	return fn(v)
}

// Use is WithValid for functions without a result.
func Use[K Kind](g *Gate, tok thread.Token, op string, r Ref[K], fn func(Validated[K]) error) error {
	v, err := Check(g, tok, op, r)
	if err != nil {
		return err
	}
	return fn(v)
}
