//go:build windows && (amd64 || arm64)

package platform

import "golang.org/x/sys/windows"

// DestructorSlots is the number of vtable entries a virtual destructor
// occupies. MSVC emits a single scalar deleting destructor.
const DestructorSlots = 1

func currentThreadID() ThreadID {
	return ThreadID(windows.GetCurrentThreadId())
}

func threadIdentityError() error { return nil }
