package sdl

import "testing"

func TestJoystickRegistry(t *testing.T) {
	before := NumJoysticks()
	idx := RegisterJoystick("Flight Stick", 3, 10)
	if NumJoysticks() != before+1 {
		t.Fatalf("NumJoysticks = %d, want %d", NumJoysticks(), before+1)
	}

	j, err := JoystickOpen(idx)
	if err != nil {
		t.Fatalf("JoystickOpen failed: %v", err)
	}
	if j.Name() != "Flight Stick" {
		t.Errorf("Name = %q, want %q", j.Name(), "Flight Stick")
	}
	if j.NumAxes() != 3 || j.NumButtons() != 10 {
		t.Errorf("device has %d axes and %d buttons, want 3 and 10", j.NumAxes(), j.NumButtons())
	}
	if !j.Opened() {
		t.Error("device is not marked open after JoystickOpen")
	}

	j.Close()
	if j.Opened() {
		t.Error("device is still marked open after Close")
	}
}

func TestJoystickOpenOutOfRange(t *testing.T) {
	if _, err := JoystickOpen(-1); err == nil {
		t.Error("expected error for a negative index")
	}
	if _, err := JoystickOpen(1 << 20); err == nil {
		t.Error("expected error for an index past the registry")
	}
	if GetError() == "" {
		t.Error("failed open did not record a last-error message")
	}
	ClearError()
}
