//go:build !ios && !android && (amd64 || arm64)

// Package platform provides platform facts reapgo depends on: OS thread
// identity, the C++ vtable layout the host expects from control surfaces,
// and extension file naming.
package platform

import (
	"runtime"
	"strings"
	"unsafe"
)

// Is64Bit indicates whether the platform is 64-bit.
// reapgo only supports 64-bit platforms due to purego limitations.
const Is64Bit = unsafe.Sizeof(uintptr(0)) == 8

// PointerSize is the size of a native pointer in bytes.
const PointerSize = unsafe.Sizeof(uintptr(0))

// LibraryExtension is the file extension for shared libraries on this platform.
var LibraryExtension string

// ExtensionPrefix is the file name prefix the host requires for extensions
// it loads from its UserPlugins directory.
const ExtensionPrefix = "reaper_"

func init() {
	switch runtime.GOOS {
	case "darwin":
		LibraryExtension = ".dylib"
	case "windows":
		LibraryExtension = ".dll"
	default: // linux, freebsd, etc.
		LibraryExtension = ".so"
	}
}

// FormatExtensionName returns the platform-specific extension filename.
//
// Examples:
//   - Linux:   FormatExtensionName("sws") -> "reaper_sws.so"
//   - macOS:   FormatExtensionName("sws") -> "reaper_sws.dylib"
//   - Windows: FormatExtensionName("sws") -> "reaper_sws.dll"
func FormatExtensionName(name string) string {
	if !strings.HasPrefix(name, ExtensionPrefix) {
		name = ExtensionPrefix + name
	}
	return name + LibraryExtension
}

// ThreadID identifies an OS thread.
type ThreadID uint64

// CurrentThreadID returns the id of the OS thread running the caller.
//
// The value is only meaningful while the goroutine stays on its thread,
// which holds for the whole duration of a host callback.
func CurrentThreadID() ThreadID {
	return currentThreadID()
}

// ThreadIdentityError reports why threads cannot be told apart on this
// platform. CurrentThreadID returns 0 for every thread when it is non-nil.
func ThreadIdentityError() error {
	return threadIdentityError()
}

// GOOS returns the current operating system.
func GOOS() string {
	return runtime.GOOS
}

// GOARCH returns the current architecture.
func GOARCH() string {
	return runtime.GOARCH
}
