// Package display presents the SDL video surface in a window using Ebiten
// and feeds window input back into the SDL event queue. The Lua side never
// sees this package; it only observes the events it produces.
package display

import (
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/opd-ai/go-sdl-lua/internal/sdl"
)

// Config contains display window options.
type Config struct {
	// Title is the window title.
	Title string
	// Width and Height are the fallback window size used before the script
	// calls SetVideoMode.
	Width, Height int
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() Config {
	return Config{
		Title:  "go-sdl-lua",
		Width:  640,
		Height: 480,
	}
}

// Presenter implements ebiten.Game. Each frame it re-reads the current
// video surface's pixels and pushes input events into the SDL queue.
type Presenter struct {
	config Config
	keys   []ebiten.Key
	mu     sync.Mutex
}

// NewPresenter creates a Presenter with the provided configuration.
func NewPresenter(config Config) *Presenter {
	if config.Width <= 0 || config.Height <= 0 {
		def := DefaultConfig()
		config.Width, config.Height = def.Width, def.Height
	}
	return &Presenter{config: config}
}

// Update polls window input and translates it into SDL events.
func (p *Presenter) Update() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.keys = inpututil.AppendJustPressedKeys(p.keys[:0])
	for _, k := range p.keys {
		sdl.PushEvent(sdl.Event{Type: sdl.KeyDown, Key: int(k)})
	}
	p.keys = inpututil.AppendJustReleasedKeys(p.keys[:0])
	for _, k := range p.keys {
		sdl.PushEvent(sdl.Event{Type: sdl.KeyUp, Key: int(k)})
	}

	x, y := ebiten.CursorPosition()
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		sdl.PushEvent(sdl.Event{Type: sdl.MouseButtonDown, X: int32(x), Y: int32(y), Button: 1})
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		sdl.PushEvent(sdl.Event{Type: sdl.MouseButtonUp, X: int32(x), Y: int32(y), Button: 1})
	}

	if ebiten.IsWindowBeingClosed() {
		sdl.PushEvent(sdl.Event{Type: sdl.QuitEvent})
		return ebiten.Termination
	}
	return nil
}

// Draw copies the video surface's pixels onto the screen.
func (p *Presenter) Draw(screen *ebiten.Image) {
	s := sdl.VideoSurface()
	if s == nil || s.Pixels == nil {
		return
	}
	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
	if int(s.W) != w || int(s.H) != h {
		return
	}
	screen.WritePixels(s.Pixels)
}

// Layout sizes the screen to the video surface, falling back to the
// configured window size before SetVideoMode.
func (p *Presenter) Layout(outsideWidth, outsideHeight int) (int, int) {
	if s := sdl.VideoSurface(); s != nil {
		return int(s.W), int(s.H)
	}
	return p.config.Width, p.config.Height
}

// Run opens the window and blocks until the window closes or the game loop
// returns an error. Must be called from the main goroutine.
func Run(config Config) error {
	ebiten.SetWindowTitle(config.Title)
	ebiten.SetWindowSize(config.Width, config.Height)
	ebiten.SetWindowClosingHandled(true)
	return ebiten.RunGame(NewPresenter(config))
}
