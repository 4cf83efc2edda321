package sdl

import "testing"

func TestTTFInitState(t *testing.T) {
	if err := InitTTF(); err != nil {
		t.Fatalf("InitTTF failed: %v", err)
	}
	if !WasInitTTF() {
		t.Error("WasInitTTF = false after InitTTF")
	}
	QuitTTF()
	if WasInitTTF() {
		t.Error("WasInitTTF = true after QuitTTF")
	}
}

func TestDefaultFont(t *testing.T) {
	f, err := DefaultFont(16)
	if err != nil {
		t.Fatalf("DefaultFont failed: %v", err)
	}
	if f.Height() <= 0 {
		t.Errorf("Height = %d, want > 0", f.Height())
	}
}

func TestOpenFontInvalid(t *testing.T) {
	if _, err := OpenFont("/no/such/font.ttf", 12); err == nil {
		t.Error("expected error opening a missing font file")
	}
	if _, err := OpenFontData([]byte("not a font"), 12); err == nil {
		t.Error("expected error parsing junk font data")
	}
	if _, err := DefaultFont(0); err == nil {
		t.Error("expected error for size 0")
	}
}

func TestSizeText(t *testing.T) {
	f, err := DefaultFont(16)
	if err != nil {
		t.Fatalf("DefaultFont failed: %v", err)
	}

	w, h, err := SizeText(f, "Hello")
	if err != nil {
		t.Fatalf("SizeText failed: %v", err)
	}
	if w <= 0 || h <= 0 {
		t.Errorf("SizeText = %dx%d, want positive dimensions", w, h)
	}

	wide, _, err := SizeText(f, "Hello Hello Hello")
	if err != nil {
		t.Fatalf("SizeText failed: %v", err)
	}
	if wide <= w {
		t.Errorf("longer text measured %d, want wider than %d", wide, w)
	}

	if _, _, err := SizeText(nil, "x"); err == nil {
		t.Error("expected error measuring with a nil font")
	}
}

func TestRenderText(t *testing.T) {
	f, err := DefaultFont(14)
	if err != nil {
		t.Fatalf("DefaultFont failed: %v", err)
	}

	s, err := RenderText(f, "Hi", Color{R: 0, G: 255, B: 0, A: 255})
	if err != nil {
		t.Fatalf("RenderText failed: %v", err)
	}
	if s.W <= 0 || s.H <= 0 {
		t.Fatalf("rendered surface is %dx%d, want positive dimensions", s.W, s.H)
	}

	// Glyph coverage should land in the green channel only.
	var green, red bool
	for i := 0; i < len(s.Pixels); i += 4 {
		if s.Pixels[i+1] != 0 {
			green = true
		}
		if s.Pixels[i] != 0 {
			red = true
		}
	}
	if !green {
		t.Error("rendered text has no green coverage")
	}
	if red {
		t.Error("rendered text leaked into the red channel")
	}

	if _, err := RenderText(nil, "x", Color{}); err == nil {
		t.Error("expected error rendering with a nil font")
	}
}
