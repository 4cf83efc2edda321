// Package lua provides Golua integration for go-sdl-lua.
// This file implements the buffer bridge: extracting a raw pointer and byte
// length from a Lua byte-buffer value so native calls can consume
// caller-supplied bytes without copying.
package lua

import (
	"fmt"
	"unsafe"

	rt "github.com/arnodel/golua/runtime"
)

// bufferPointerAndLength extracts the raw pointer and byte length from a
// Lua byte-buffer value (a Lua string). The pair must not be retained
// beyond the binding call that obtained it: the buffer belongs to the Lua
// side and may move or be collected afterwards. An empty buffer yields a
// nil pointer and length zero.
func bufferPointerAndLength(v rt.Value) (unsafe.Pointer, int, error) {
	s, ok := v.TryString()
	if !ok {
		return nil, 0, fmt.Errorf("%w (string expected)", ErrNotABuffer)
	}
	if len(s) == 0 {
		return nil, 0, nil
	}
	return unsafe.Pointer(unsafe.StringData(s)), len(s), nil
}

// bufferView adapts a (pointer, length) pair into a read-only byte slice
// for copy call sites. The view is subject to the same lifetime rule as the
// pair itself.
func bufferView(p unsafe.Pointer, n int) []byte {
	if p == nil || n == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(p), n)
}
