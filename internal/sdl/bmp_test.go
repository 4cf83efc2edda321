package sdl

import (
	"path/filepath"
	"testing"
)

func TestBMPRoundTrip(t *testing.T) {
	s := mustSurface(t, 5, 3)
	FillRect(s, nil, MapRGB(s, 10, 200, 30))
	FillRect(s, &Rect{X: 2, Y: 1, W: 1, H: 1}, MapRGB(s, 255, 0, 0))

	path := filepath.Join(t.TempDir(), "roundtrip.bmp")
	if err := SaveBMP(s, path); err != nil {
		t.Fatalf("SaveBMP failed: %v", err)
	}

	loaded, err := LoadBMP(path)
	if err != nil {
		t.Fatalf("LoadBMP failed: %v", err)
	}
	if loaded.W != 5 || loaded.H != 3 {
		t.Fatalf("loaded surface is %dx%d, want 5x3", loaded.W, loaded.H)
	}

	off := loaded.pixelAt(0, 0)
	if loaded.Pixels[off] != 10 || loaded.Pixels[off+1] != 200 || loaded.Pixels[off+2] != 30 {
		t.Errorf("background pixel = %v, want [10 200 30]", loaded.Pixels[off:off+3])
	}
	off = loaded.pixelAt(2, 1)
	if loaded.Pixels[off] != 255 || loaded.Pixels[off+1] != 0 || loaded.Pixels[off+2] != 0 {
		t.Errorf("marked pixel = %v, want [255 0 0]", loaded.Pixels[off:off+3])
	}
}

func TestLoadBMPMissingFile(t *testing.T) {
	if _, err := LoadBMP("/no/such/file.bmp"); err == nil {
		t.Error("expected error loading a missing file")
	}
	if GetError() == "" {
		t.Error("failed load did not record a last-error message")
	}
	ClearError()
}

func TestSaveBMPFreedSurface(t *testing.T) {
	s := mustSurface(t, 2, 2)
	FreeSurface(s)
	if err := SaveBMP(s, filepath.Join(t.TempDir(), "x.bmp")); err == nil {
		t.Error("expected error saving a freed surface")
	}
}
