package main

import (
	"os"
	"path/filepath"
	"testing"
)

func writeScript(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "script.lua")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing script failed: %v", err)
	}
	return path
}

func TestVersionFlag(t *testing.T) {
	if code := run([]string{"-v"}); code != 0 {
		t.Errorf("run(-v) = %d, want 0", code)
	}
}

func TestMissingScript(t *testing.T) {
	if code := run([]string{}); code != 1 {
		t.Errorf("run with no script = %d, want 1", code)
	}
	if code := run([]string{"/no/such/script.lua"}); code != 1 {
		t.Errorf("run with a missing script = %d, want 1", code)
	}
}

func TestHeadlessScriptRuns(t *testing.T) {
	path := writeScript(t, `
		sdl.init(SDL_INIT_VIDEO)
		local s = sdl.createRGBSurface(sdl.SWSURFACE, 4, 4, 32)
		sdl.fillRect(s, nil, sdl.mapRGB(s, 1, 2, 3))
		sdl.quit()
	`)
	if code := run([]string{"-headless", path}); code != 0 {
		t.Errorf("run(-headless) = %d, want 0", code)
	}
}

func TestHeadlessScriptError(t *testing.T) {
	path := writeScript(t, `error('deliberate failure')`)
	if code := run([]string{"-headless", path}); code != 1 {
		t.Errorf("run with a failing script = %d, want 1", code)
	}
}

func TestBadFlag(t *testing.T) {
	if code := run([]string{"-no-such-flag"}); code != 2 {
		t.Errorf("run with an unknown flag = %d, want 2", code)
	}
}
