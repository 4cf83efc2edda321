package sdl

import "sync"

var (
	stateMu     sync.Mutex
	initialized uint32
	video       *Surface
	frame       uint64
)

// Init initializes the requested subsystems. The pure Go implementation has
// no hardware to probe, so this records the requested flags and succeeds.
func Init(flags uint32) error {
	stateMu.Lock()
	initialized |= flags
	stateMu.Unlock()
	return nil
}

// WasInit reports which of the given subsystems are initialized.
func WasInit(flags uint32) uint32 {
	stateMu.Lock()
	defer stateMu.Unlock()
	if flags == 0 {
		flags = InitEverything
	}
	return initialized & flags
}

// Quit shuts down all subsystems and drops the video surface.
func Quit() {
	stateMu.Lock()
	initialized = 0
	video = nil
	stateMu.Unlock()
	drainEvents()
}

// SetVideoMode creates (or replaces) the video surface. Only 32 bpp is
// supported; a bpp of 0 selects it.
func SetVideoMode(w, h, bpp int32, flags uint32) (*Surface, error) {
	if w <= 0 || h <= 0 {
		return nil, SetError("SetVideoMode: invalid size %dx%d", w, h)
	}
	if bpp != 0 && bpp != 32 {
		return nil, SetError("SetVideoMode: unsupported depth %d", bpp)
	}
	s, err := CreateRGBSurface(flags, w, h, 32)
	if err != nil {
		return nil, err
	}
	stateMu.Lock()
	video = s
	stateMu.Unlock()
	return s, nil
}

// VideoSurface returns the current video surface, or nil before SetVideoMode.
func VideoSurface() *Surface {
	stateMu.Lock()
	defer stateMu.Unlock()
	return video
}

// Flip presents the video surface. The display layer reads the surface
// pixels on its own schedule, so presenting just advances the frame counter.
func Flip(s *Surface) error {
	if s == nil {
		return SetError("Flip: nil surface")
	}
	stateMu.Lock()
	frame++
	stateMu.Unlock()
	return nil
}

// FrameCount returns the number of Flip calls since startup.
func FrameCount() uint64 {
	stateMu.Lock()
	defer stateMu.Unlock()
	return frame
}

// UpdateRect marks a region of the surface as changed. The display layer
// re-reads the whole surface every frame, so this only validates arguments.
func UpdateRect(s *Surface, r Rect) error {
	if s == nil {
		return SetError("UpdateRect: nil surface")
	}
	return nil
}
