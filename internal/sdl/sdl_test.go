package sdl

import "testing"

func TestInitAndQuit(t *testing.T) {
	defer Quit()

	if err := Init(InitVideo); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if WasInit(InitVideo) != InitVideo {
		t.Error("WasInit does not report the video subsystem")
	}
	if WasInit(InitJoystick) != 0 {
		t.Error("WasInit reports a subsystem that was never initialized")
	}

	if err := Init(InitJoystick); err != nil {
		t.Fatalf("second Init failed: %v", err)
	}
	if WasInit(0) != InitVideo|InitJoystick {
		t.Errorf("WasInit(0) = %#x, want both subsystems", WasInit(0))
	}

	Quit()
	if WasInit(0) != 0 {
		t.Error("WasInit reports subsystems after Quit")
	}
}

func TestSetVideoMode(t *testing.T) {
	defer Quit()

	s, err := SetVideoMode(64, 48, 32, SWSURFACE)
	if err != nil {
		t.Fatalf("SetVideoMode failed: %v", err)
	}
	if s.W != 64 || s.H != 48 {
		t.Errorf("video surface is %dx%d, want 64x48", s.W, s.H)
	}
	if VideoSurface() != s {
		t.Error("VideoSurface does not return the surface SetVideoMode created")
	}

	// bpp 0 selects the native depth.
	if _, err := SetVideoMode(8, 8, 0, SWSURFACE); err != nil {
		t.Errorf("SetVideoMode with bpp 0 failed: %v", err)
	}
}

func TestSetVideoModeInvalid(t *testing.T) {
	if _, err := SetVideoMode(0, 48, 32, 0); err == nil {
		t.Error("expected error for zero width")
	}
	if _, err := SetVideoMode(64, 48, 8, 0); err == nil {
		t.Error("expected error for 8 bpp")
	}
}

func TestFlipAdvancesFrameCount(t *testing.T) {
	defer Quit()

	s, err := SetVideoMode(8, 8, 32, SWSURFACE)
	if err != nil {
		t.Fatalf("SetVideoMode failed: %v", err)
	}
	before := FrameCount()
	if err := Flip(s); err != nil {
		t.Fatalf("Flip failed: %v", err)
	}
	if FrameCount() != before+1 {
		t.Errorf("FrameCount advanced by %d, want 1", FrameCount()-before)
	}

	if err := Flip(nil); err == nil {
		t.Error("expected error flipping a nil surface")
	}
}

func TestUpdateRect(t *testing.T) {
	s := mustSurface(t, 4, 4)
	if err := UpdateRect(s, Rect{W: 2, H: 2}); err != nil {
		t.Errorf("UpdateRect failed: %v", err)
	}
	if err := UpdateRect(nil, Rect{}); err == nil {
		t.Error("expected error updating a nil surface")
	}
}

func TestErrorState(t *testing.T) {
	ClearError()
	if GetError() != "" {
		t.Fatalf("GetError after ClearError = %q", GetError())
	}

	err := SetError("op failed: %d", 7)
	if err == nil || err.Error() != "op failed: 7" {
		t.Errorf("SetError returned %v, want %q", err, "op failed: 7")
	}
	if GetError() != "op failed: 7" {
		t.Errorf("GetError = %q, want %q", GetError(), "op failed: 7")
	}

	// Reading does not clear.
	if GetError() != "op failed: 7" {
		t.Error("GetError cleared the error state")
	}
	ClearError()
	if GetError() != "" {
		t.Error("ClearError left the error state set")
	}
}
