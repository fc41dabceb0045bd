//go:build linux && !android && (amd64 || arm64)

package platform

import "golang.org/x/sys/unix"

// DestructorSlots is the number of vtable entries a virtual destructor
// occupies. The Itanium ABI emits a complete and a deleting destructor.
const DestructorSlots = 2

func currentThreadID() ThreadID {
	return ThreadID(unix.Gettid())
}

func threadIdentityError() error { return nil }
