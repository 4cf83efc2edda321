// Package lua provides Golua integration for go-sdl-lua.
// This file defines common error types and the native error reporter.
package lua

import (
	"errors"
	"fmt"

	rt "github.com/arnodel/golua/runtime"

	"github.com/opd-ai/go-sdl-lua/internal/sdl"
)

var (
	// ErrNilRuntime is returned when a nil runtime is passed to a function that requires one.
	ErrNilRuntime = errors.New("runtime cannot be nil")

	// ErrNotAHandle is returned when a value that is not a native handle is
	// passed where one is expected.
	ErrNotAHandle = errors.New("value is not a native handle")

	// ErrWrongHandleType is returned when a handle of one native type is
	// passed where a different type is expected.
	ErrWrongHandleType = errors.New("handle has wrong native type")

	// ErrNotABuffer is returned when a value that is not a byte buffer is
	// passed to the buffer bridge.
	ErrNotABuffer = errors.New("value is not a byte buffer")
)

// MakeSDLError combines an operation name with the native library's current
// last-error string into one descriptive error. It reads, but does not
// clear, the last-error state, so it must be called promptly after the
// failing operation.
func MakeSDLError(op string) error {
	return fmt.Errorf("%s: %s", op, sdl.GetError())
}

// raiseSDLError is MakeSDLError shaped for binding call sites: Golua raises
// the returned error in the calling script.
//
//	return raiseSDLError("SDL_SetVideoMode")
func raiseSDLError(op string) (rt.Cont, error) {
	return nil, MakeSDLError(op)
}
