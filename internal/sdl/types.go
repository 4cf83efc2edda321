// Package sdl implements the SDL 1.2-style surface, pixel format, font and
// event model that the Lua bindings project into scripts. It is a pure Go
// reimplementation: this package owns every structure it hands out, and all
// mutation happens through its functions. The binding layer only ever holds
// pointers to these structures; it never allocates or frees them.
package sdl

// Surface and init flags, matching the SDL 1.2 constants scripts expect.
const (
	SWSURFACE   uint32 = 0x00000000
	HWSURFACE   uint32 = 0x00000001
	SRCCOLORKEY uint32 = 0x00001000
	SRCALPHA    uint32 = 0x00010000
	DOUBLEBUF   uint32 = 0x40000000
	FULLSCREEN  uint32 = 0x80000000
)

// Init subsystem flags.
const (
	InitVideo      uint32 = 0x00000020
	InitJoystick   uint32 = 0x00000200
	InitEverything uint32 = 0x0000FFFF
)

// Rect is a rectangle in surface coordinates.
type Rect struct {
	X, Y int32
	W, H int32
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// intersect returns the overlap of two rectangles.
func intersect(a, b Rect) Rect {
	x1, y1 := max32(a.X, b.X), max32(a.Y, b.Y)
	x2, y2 := min32(a.X+a.W, b.X+b.W), min32(a.Y+a.H, b.Y+b.H)
	if x2 <= x1 || y2 <= y1 {
		return Rect{}
	}
	return Rect{X: x1, Y: y1, W: x2 - x1, H: y2 - y1}
}

func max32(a, b int32) int32 {
	if a > b {
		return a
	}
	return b
}

func min32(a, b int32) int32 {
	if a < b {
		return a
	}
	return b
}

// PixelFormat describes the pixel layout of a surface. Every surface this
// package creates is 32-bit RGBA with one byte per channel in R,G,B,A order.
type PixelFormat struct {
	BitsPerPixel  uint8
	BytesPerPixel uint8

	Rmask, Gmask, Bmask, Amask     uint32
	Rshift, Gshift, Bshift, Ashift uint8

	// Colorkey is the transparent pixel value used when SRCCOLORKEY is set
	// on the owning surface. Alpha is the per-surface alpha applied when
	// SRCALPHA is set.
	Colorkey uint32
	Alpha    uint8
}

func newPixelFormat() *PixelFormat {
	return &PixelFormat{
		BitsPerPixel:  32,
		BytesPerPixel: 4,
		Rmask:         0xFF000000,
		Gmask:         0x00FF0000,
		Bmask:         0x0000FF00,
		Amask:         0x000000FF,
		Rshift:        24,
		Gshift:        16,
		Bshift:        8,
		Ashift:        0,
		Alpha:         0xFF,
	}
}

// Surface is a block of pixels owned by this package. Pitch is the length in
// bytes of one row. ClipRect bounds all draw and blit operations.
type Surface struct {
	Flags    uint32
	Format   *PixelFormat
	W, H     int32
	Pitch    int32
	ClipRect Rect
	Pixels   []byte
}

// Bounds returns the full surface rectangle.
func (s *Surface) Bounds() Rect {
	return Rect{W: s.W, H: s.H}
}

// Color is an 8-bit-per-channel color used by the font renderer.
type Color struct {
	R, G, B, A uint8
}
