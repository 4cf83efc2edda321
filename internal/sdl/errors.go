package sdl

import (
	"fmt"
	"sync"
)

// The library keeps a single process-wide last-error string, like
// SDL_GetError. Callers that care about an error message must read it
// promptly after the failing call, before another operation overwrites it.
var (
	errMu   sync.Mutex
	lastErr string
)

// SetError records the library's last-error string and returns an error
// carrying the same message, so call sites can do `return sdl.SetError(...)`.
func SetError(format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	errMu.Lock()
	lastErr = msg
	errMu.Unlock()
	return fmt.Errorf("%s", msg)
}

// GetError returns the last-error string. Reading does not clear it.
func GetError() string {
	errMu.Lock()
	defer errMu.Unlock()
	return lastErr
}

// ClearError resets the last-error string.
func ClearError() {
	errMu.Lock()
	lastErr = ""
	errMu.Unlock()
}
