package lua

import (
	"strings"
	"testing"
)

// newTTFTestRuntime creates a runtime with both the sdl and ttf modules.
func newTTFTestRuntime(t *testing.T) *SDLRuntime {
	t.Helper()
	r := newSDLTestRuntime(t)
	if _, err := NewTTFModule(r); err != nil {
		t.Fatalf("NewTTFModule failed: %v", err)
	}
	return r
}

func TestTTFModuleRejectsNilRuntime(t *testing.T) {
	if _, err := NewTTFModule(nil); err != ErrNilRuntime {
		t.Errorf("NewTTFModule(nil) = %v, want ErrNilRuntime", err)
	}
}

func TestTTFInitAndWasInit(t *testing.T) {
	r := newTTFTestRuntime(t)

	result, err := r.ExecuteString("test", `
		ttf.init()
		local during = ttf.wasInit()
		ttf.quit()
		return during, ttf.wasInit()
	`)
	if err != nil {
		t.Fatalf("script failed: %v", err)
	}
	if during, _ := result.TryBool(); !during {
		t.Error("wasInit = false after init")
	}
}

func TestDefaultFontMetrics(t *testing.T) {
	r := newTTFTestRuntime(t)

	result, err := r.ExecuteString("test", `
		local f = ttf.openDefaultFont(16)
		return ttf.fontHeight(f)
	`)
	if err != nil {
		t.Fatalf("script failed: %v", err)
	}
	if got, _ := result.TryInt(); got <= 0 {
		t.Errorf("fontHeight = %d, want > 0", got)
	}
}

func TestSizeText(t *testing.T) {
	r := newTTFTestRuntime(t)

	result, err := r.ExecuteString("test", `
		local f = ttf.openDefaultFont(16)
		local w, h = ttf.sizeText(f, 'Hello, world')
		return w > 0 and h > 0 and w
	`)
	if err != nil {
		t.Fatalf("script failed: %v", err)
	}
	if got, ok := result.TryInt(); !ok || got <= 0 {
		t.Errorf("sizeText width = %v, want a positive integer", result)
	}
}

func TestRenderTextReturnsSurfaceHandle(t *testing.T) {
	r := newTTFTestRuntime(t)

	_, err := r.ExecuteString("test", `
		local f = ttf.openDefaultFont(14)
		rendered = ttf.renderText(f, 'Hi', 255, 255, 255)
	`)
	if err != nil {
		t.Fatalf("script failed: %v", err)
	}

	s, err := UnwrapSurface(r.GetGlobal("rendered"))
	if err != nil {
		t.Fatalf("rendered text is not a surface handle: %v", err)
	}
	if s.W <= 0 || s.H <= 0 {
		t.Errorf("rendered surface is %dx%d, want positive dimensions", s.W, s.H)
	}

	// Some pixel should carry glyph coverage.
	covered := false
	for _, b := range s.Pixels {
		if b != 0 {
			covered = true
			break
		}
	}
	if !covered {
		t.Error("rendered surface has no coverage at all")
	}
}

func TestOpenFontMissingFile(t *testing.T) {
	r := newTTFTestRuntime(t)

	_, err := r.ExecuteString("test", `ttf.openFont('/no/such/font.ttf', 12)`)
	if err == nil {
		t.Fatal("expected error opening a missing font")
	}
	if !strings.Contains(err.Error(), "TTF_OpenFont") {
		t.Errorf("error = %v, want it to name TTF_OpenFont", err)
	}
}

func TestFontHandleIsOpaque(t *testing.T) {
	r := newTTFTestRuntime(t)

	result, err := r.ExecuteString("test", `
		local f = ttf.openDefaultFont(12)
		return f.size == nil and tostring(f)
	`)
	if err != nil {
		t.Fatalf("script failed: %v", err)
	}
	if got, _ := result.TryString(); got != "sdl.font" {
		t.Errorf("tostring(font) = %q, want %q", got, "sdl.font")
	}
}
