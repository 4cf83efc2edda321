// Package lua provides Golua integration for go-sdl-lua.
// This file implements the handle projection mechanism: native SDL
// structures are exposed to Lua as opaque userdata whose fields are
// computed on every read through a per-type, lazily built shape.
package lua

import (
	"fmt"
	"sync"
	"unsafe"

	rt "github.com/arnodel/golua/runtime"

	"github.com/opd-ai/go-sdl-lua/internal/sdl"
)

// TypeTag identifies which native struct a handle wraps. The tag makes a
// wrong-type unwrap a cheap comparison instead of an unchecked cast.
type TypeTag uint8

const (
	TagSurface TypeTag = iota
	TagRect
	TagPixelFormat
	TagJoystick
	TagFont
	numTags
)

// String returns the tag name used in error messages and __tostring.
func (t TypeTag) String() string {
	switch t {
	case TagSurface:
		return "surface"
	case TagRect:
		return "rect"
	case TagPixelFormat:
		return "pixelformat"
	case TagJoystick:
		return "joystick"
	case TagFont:
		return "font"
	default:
		return "unknown"
	}
}

// handle is the payload stored inside a userdata. It carries exactly one
// native pointer, set at construction and never reassigned. Holding the
// pointer keeps the native struct reachable for the Go runtime, but the
// handle never frees it: ownership stays with the sdl package.
type handle struct {
	tag TypeTag
	ptr unsafe.Pointer
}

// fieldReader reads one native field through an already-unwrapped pointer
// and converts it to a Lua value. Nested struct fields wrap a fresh handle
// on every read; there is deliberately no identity caching.
type fieldReader func(p unsafe.Pointer) rt.Value

// shape is the per-type descriptor: the metatable shared by every userdata
// of the type, plus the accessor set its __index dispatches to. Built at
// most once per process via the Once, then immutable.
type shape struct {
	once   sync.Once
	meta   *rt.Table
	fields map[string]fieldReader
}

var shapes [numTags]shape

// descriptor returns the memoized shape metatable for tag, building it on
// first use. Safe under concurrent first use.
func descriptor(tag TypeTag) *rt.Table {
	s := &shapes[tag]
	s.once.Do(func() {
		s.fields = fieldReaders(tag)
		s.meta = buildMeta(tag, s.fields)
	})
	return s.meta
}

// fieldNames returns the projected field names for a tag, for introspection
// and tests.
func fieldNames(tag TypeTag) []string {
	descriptor(tag)
	names := make([]string, 0, len(shapes[tag].fields))
	for name := range shapes[tag].fields {
		names = append(names, name)
	}
	return names
}

// buildMeta constructs the shared metatable for one native type. __index is
// a function, not a table, so field reads are computed properties that
// dereference live native memory at read time. The __metatable field blocks
// scripts from reaching the real metatable and tampering with the shape.
func buildMeta(tag TypeTag, fields map[string]fieldReader) *rt.Table {
	index := rt.NewGoFunction(func(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
		args := c.Args()
		if len(args) < 2 {
			return c.PushingNext1(t.Runtime, rt.NilValue), nil
		}
		p, err := unwrap(args[0], tag)
		if err != nil {
			return nil, err
		}
		key, ok := args[1].TryString()
		if !ok {
			return c.PushingNext1(t.Runtime, rt.NilValue), nil
		}
		reader, ok := fields[key]
		if !ok {
			// Unprojected fields read as nil, like absent table keys.
			return c.PushingNext1(t.Runtime, rt.NilValue), nil
		}
		return c.PushingNext1(t.Runtime, reader(p)), nil
	}, "sdl."+tag.String()+".__index", 2, false)
	rt.SolemnlyDeclareCompliance(rt.ComplyMemSafe|rt.ComplyCpuSafe, index)

	tostring := rt.NewGoFunction(func(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
		return c.PushingNext1(t.Runtime, rt.StringValue("sdl."+tag.String())), nil
	}, "sdl."+tag.String()+".__tostring", 1, false)
	rt.SolemnlyDeclareCompliance(rt.ComplyMemSafe|rt.ComplyCpuSafe, tostring)

	meta := rt.NewTable()
	meta.Set(rt.StringValue("__index"), rt.FunctionValue(index))
	meta.Set(rt.StringValue("__tostring"), rt.FunctionValue(tostring))
	meta.Set(rt.StringValue("__metatable"), rt.StringValue("sdl."+tag.String()))
	return meta
}

// wrap creates a new userdata carrying the native pointer and the type's
// shared shape. The pointer must be non-nil; callers are responsible. No
// ownership transfers: the native memory is not copied or retained beyond
// the pointer itself, and two wraps of the same pointer produce two
// distinct userdata.
func wrap(tag TypeTag, ptr unsafe.Pointer) rt.Value {
	ud := rt.NewUserData(&handle{tag: tag, ptr: ptr}, descriptor(tag))
	return rt.UserDataValue(ud)
}

// unwrap recovers the native pointer stored at construction. It fails
// loudly on anything that is not a handle of the expected type.
func unwrap(v rt.Value, tag TypeTag) (unsafe.Pointer, error) {
	ud, ok := v.TryUserData()
	if !ok {
		return nil, fmt.Errorf("%w (%s expected)", ErrNotAHandle, tag)
	}
	h, ok := ud.Value().(*handle)
	if !ok {
		return nil, fmt.Errorf("%w (%s expected)", ErrNotAHandle, tag)
	}
	if h.tag != tag {
		return nil, fmt.Errorf("%w: want %s, got %s", ErrWrongHandleType, tag, h.tag)
	}
	return h.ptr, nil
}

// WrapSurface projects a native surface as a Lua handle.
func WrapSurface(s *sdl.Surface) rt.Value {
	return wrap(TagSurface, unsafe.Pointer(s))
}

// UnwrapSurface recovers the surface pointer from a handle.
func UnwrapSurface(v rt.Value) (*sdl.Surface, error) {
	p, err := unwrap(v, TagSurface)
	if err != nil {
		return nil, err
	}
	return (*sdl.Surface)(p), nil
}

// WrapRect projects a native rectangle as a Lua handle.
func WrapRect(r *sdl.Rect) rt.Value {
	return wrap(TagRect, unsafe.Pointer(r))
}

// UnwrapRect recovers the rectangle pointer from a handle.
func UnwrapRect(v rt.Value) (*sdl.Rect, error) {
	p, err := unwrap(v, TagRect)
	if err != nil {
		return nil, err
	}
	return (*sdl.Rect)(p), nil
}

// WrapPixelFormat projects a native pixel format as a Lua handle.
func WrapPixelFormat(f *sdl.PixelFormat) rt.Value {
	return wrap(TagPixelFormat, unsafe.Pointer(f))
}

// UnwrapPixelFormat recovers the pixel format pointer from a handle.
func UnwrapPixelFormat(v rt.Value) (*sdl.PixelFormat, error) {
	p, err := unwrap(v, TagPixelFormat)
	if err != nil {
		return nil, err
	}
	return (*sdl.PixelFormat)(p), nil
}

// WrapJoystick projects a joystick as an opaque pass-through handle.
func WrapJoystick(j *sdl.Joystick) rt.Value {
	return wrap(TagJoystick, unsafe.Pointer(j))
}

// UnwrapJoystick recovers the joystick pointer from a handle.
func UnwrapJoystick(v rt.Value) (*sdl.Joystick, error) {
	p, err := unwrap(v, TagJoystick)
	if err != nil {
		return nil, err
	}
	return (*sdl.Joystick)(p), nil
}

// WrapFont projects a font as an opaque pass-through handle.
func WrapFont(f *sdl.Font) rt.Value {
	return wrap(TagFont, unsafe.Pointer(f))
}

// UnwrapFont recovers the font pointer from a handle.
func UnwrapFont(v rt.Value) (*sdl.Font, error) {
	p, err := unwrap(v, TagFont)
	if err != nil {
		return nil, err
	}
	return (*sdl.Font)(p), nil
}

// fieldReaders returns the accessor set for one native type. The projected
// fields are a deliberate subset of the native struct: only what scripts
// need. Joystick and Font register empty sets; their handles pass through
// native calls opaquely.
func fieldReaders(tag TypeTag) map[string]fieldReader {
	switch tag {
	case TagSurface:
		return map[string]fieldReader{
			"flags": func(p unsafe.Pointer) rt.Value {
				return rt.IntValue(int64((*sdl.Surface)(p).Flags))
			},
			"format": func(p unsafe.Pointer) rt.Value {
				return WrapPixelFormat((*sdl.Surface)(p).Format)
			},
			"w": func(p unsafe.Pointer) rt.Value {
				return rt.IntValue(int64((*sdl.Surface)(p).W))
			},
			"h": func(p unsafe.Pointer) rt.Value {
				return rt.IntValue(int64((*sdl.Surface)(p).H))
			},
			"pitch": func(p unsafe.Pointer) rt.Value {
				return rt.IntValue(int64((*sdl.Surface)(p).Pitch))
			},
			"clip_rect": func(p unsafe.Pointer) rt.Value {
				return WrapRect(&(*sdl.Surface)(p).ClipRect)
			},
		}
	case TagRect:
		return map[string]fieldReader{
			"x": func(p unsafe.Pointer) rt.Value {
				return rt.IntValue(int64((*sdl.Rect)(p).X))
			},
			"y": func(p unsafe.Pointer) rt.Value {
				return rt.IntValue(int64((*sdl.Rect)(p).Y))
			},
			"w": func(p unsafe.Pointer) rt.Value {
				return rt.IntValue(int64((*sdl.Rect)(p).W))
			},
			"h": func(p unsafe.Pointer) rt.Value {
				return rt.IntValue(int64((*sdl.Rect)(p).H))
			},
		}
	case TagPixelFormat:
		return map[string]fieldReader{
			"bitsPerPixel": func(p unsafe.Pointer) rt.Value {
				return rt.IntValue(int64((*sdl.PixelFormat)(p).BitsPerPixel))
			},
			"bytesPerPixel": func(p unsafe.Pointer) rt.Value {
				return rt.IntValue(int64((*sdl.PixelFormat)(p).BytesPerPixel))
			},
			"colorkey": func(p unsafe.Pointer) rt.Value {
				return rt.IntValue(int64((*sdl.PixelFormat)(p).Colorkey))
			},
			"alpha": func(p unsafe.Pointer) rt.Value {
				return rt.IntValue(int64((*sdl.PixelFormat)(p).Alpha))
			},
		}
	default:
		// Joystick and Font: reserved extension point, no projected fields.
		return map[string]fieldReader{}
	}
}
