//go:build (darwin || freebsd) && !ios && (amd64 || arm64)

package platform

import (
	"fmt"
	"sync"

	"github.com/ebitengine/purego"
)

// DestructorSlots is the number of vtable entries a virtual destructor
// occupies (Itanium ABI).
const DestructorSlots = 2

var (
	pthreadOnce sync.Once
	pthreadSelf func() uintptr
	pthreadErr  error
)

func libcName() string {
	if GOOS() == "darwin" {
		return "/usr/lib/libSystem.B.dylib"
	}
	return "libc.so.7"
}

func loadPthreadSelf() {
	lib, err := purego.Dlopen(libcName(), purego.RTLD_NOW|purego.RTLD_GLOBAL)
	if err != nil {
		pthreadErr = fmt.Errorf("opening %s: %w", libcName(), err)
		return
	}
	sym, err := purego.Dlsym(lib, "pthread_self")
	if err != nil {
		pthreadErr = fmt.Errorf("resolving pthread_self: %w", err)
		return
	}
	purego.RegisterFunc(&pthreadSelf, sym)
}

// currentThreadID uses pthread_self, which is unique among live threads.
// It returns 0 when pthread_self is unavailable, see threadIdentityError.
func currentThreadID() ThreadID {
	pthreadOnce.Do(loadPthreadSelf)
	if pthreadSelf == nil {
		return 0
	}
	return ThreadID(pthreadSelf())
}

func threadIdentityError() error {
	pthreadOnce.Do(loadPthreadSelf)
	return pthreadErr
}
