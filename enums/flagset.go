//go:build !ios && !android && (amd64 || arm64)

// Package enums converts between the host's bitmask integers / enumerated
// codes and typed flag sets / closed enumerations.
//
// Flag sets round-trip losslessly: bits this package does not know are kept
// as opaque extra bits, since the host may define flags newer than this
// package. Enumerations fail explicitly with an unknown-variant error rather
// than defaulting.
package enums

import (
	"fmt"
	"math/bits"
	"strings"
)

// Flag is implemented by single-bit flag types.
//
// KnownBits reports the union of every bit the type defines; it must not
// depend on the receiver value.
type Flag interface {
	~uint32
	KnownBits() uint32
	String() string
}

// FlagSet is a typed set of flags over a raw 32-bit mask.
type FlagSet[T Flag] struct {
	bits uint32
}

// FlagsOf builds a set containing the given flags.
func FlagsOf[T Flag](flags ...T) FlagSet[T] {
	var s FlagSet[T]
	for _, f := range flags {
		s.bits |= uint32(f)
	}
	return s
}

// ToTyped wraps a raw host mask. Every bit is kept, known or not.
func ToTyped[T Flag](raw uint32) FlagSet[T] {
	return FlagSet[T]{bits: raw}
}

// ToRaw returns the raw host mask, including extra bits.
func ToRaw[T Flag](s FlagSet[T]) uint32 {
	return s.bits
}

// Raw returns the raw host mask, including extra bits.
func (s FlagSet[T]) Raw() uint32 {
	return s.bits
}

// Has reports whether every bit of f is set.
func (s FlagSet[T]) Has(f T) bool {
	return s.bits&uint32(f) == uint32(f)
}

// IsEmpty reports whether no bit is set.
func (s FlagSet[T]) IsEmpty() bool {
	return s.bits == 0
}

// With returns a copy with the given flags added.
func (s FlagSet[T]) With(flags ...T) FlagSet[T] {
	for _, f := range flags {
		s.bits |= uint32(f)
	}
	return s
}

// Without returns a copy with the given flags removed.
func (s FlagSet[T]) Without(flags ...T) FlagSet[T] {
	for _, f := range flags {
		s.bits &^= uint32(f)
	}
	return s
}

// Known returns only the bits T defines.
func (s FlagSet[T]) Known() FlagSet[T] {
	var zero T
	return FlagSet[T]{bits: s.bits & zero.KnownBits()}
}

// Extra returns the bits T does not define.
func (s FlagSet[T]) Extra() uint32 {
	var zero T
	return s.bits &^ zero.KnownBits()
}

// Flags returns the known flags that are set, lowest bit first.
func (s FlagSet[T]) Flags() []T {
	known := s.Known().bits
	out := make([]T, 0, bits.OnesCount32(known))
	for known != 0 {
		low := known & -known
		out = append(out, T(low))
		known &^= low
	}
	return out
}

// String renders the set as "A|B" with any extra bits in hex.
func (s FlagSet[T]) String() string {
	if s.bits == 0 {
		return "0"
	}
	var parts []string
	for _, f := range s.Flags() {
		parts = append(parts, f.String())
	}
	if extra := s.Extra(); extra != 0 {
		parts = append(parts, fmt.Sprintf("%#x", extra))
	}
	return strings.Join(parts, "|")
}
