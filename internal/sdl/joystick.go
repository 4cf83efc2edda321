package sdl

import "sync"

// Joystick is an opened input device. Lua sees joysticks as opaque handles
// with no projected fields; all reads go through the functions below.
type Joystick struct {
	index   int
	name    string
	axes    int
	buttons int
	open    bool
}

var (
	joyMu  sync.Mutex
	sticks []*Joystick
)

// RegisterJoystick announces a device to the registry. The display layer
// registers devices it discovers; tests register fakes. Returns the device
// index.
func RegisterJoystick(name string, axes, buttons int) int {
	joyMu.Lock()
	defer joyMu.Unlock()
	j := &Joystick{index: len(sticks), name: name, axes: axes, buttons: buttons}
	sticks = append(sticks, j)
	return j.index
}

// NumJoysticks returns the number of registered devices.
func NumJoysticks() int {
	joyMu.Lock()
	defer joyMu.Unlock()
	return len(sticks)
}

// JoystickOpen opens the device at the given index.
func JoystickOpen(index int) (*Joystick, error) {
	joyMu.Lock()
	defer joyMu.Unlock()
	if index < 0 || index >= len(sticks) {
		return nil, SetError("JoystickOpen: no joystick at index %d", index)
	}
	j := sticks[index]
	j.open = true
	return j, nil
}

// Name returns the device name.
func (j *Joystick) Name() string { return j.name }

// NumAxes returns the number of axes.
func (j *Joystick) NumAxes() int { return j.axes }

// NumButtons returns the number of buttons.
func (j *Joystick) NumButtons() int { return j.buttons }

// Opened reports whether the device is currently open.
func (j *Joystick) Opened() bool {
	joyMu.Lock()
	defer joyMu.Unlock()
	return j.open
}

// Close marks the device closed. The Joystick struct stays valid.
func (j *Joystick) Close() {
	joyMu.Lock()
	j.open = false
	joyMu.Unlock()
}
