// Package lua provides Golua integration for go-sdl-lua.
// This file implements the 'sdl' module: every native SDL operation is
// exposed both in the sdl table and as an SDL_*-prefixed global, with
// surfaces, rects, pixel formats and joysticks crossing the boundary as
// projected handles.
package lua

import (
	rt "github.com/arnodel/golua/runtime"

	"github.com/opd-ai/go-sdl-lua/internal/sdl"
)

// SDLModule registers the SDL API in a Lua runtime.
type SDLModule struct {
	runtime *SDLRuntime
}

// NewSDLModule creates an SDLModule and registers the sdl table, the SDL_*
// global functions and the SDL constants in the provided runtime.
func NewSDLModule(runtime *SDLRuntime) (*SDLModule, error) {
	if runtime == nil {
		return nil, ErrNilRuntime
	}
	m := &SDLModule{runtime: runtime}
	m.registerModule()
	return m, nil
}

// binding pairs a module-table name with its global SDL_* alias.
type binding struct {
	name   string
	global string
	fn     rt.GoFunctionFunc
	nArgs  int
}

func (m *SDLModule) bindings() []binding {
	return []binding{
		{"init", "SDL_Init", m.init, 1},
		{"quit", "SDL_Quit", m.quit, 0},
		{"wasInit", "SDL_WasInit", m.wasInit, 1},
		{"getError", "SDL_GetError", m.getError, 0},
		{"clearError", "SDL_ClearError", m.clearError, 0},
		{"setVideoMode", "SDL_SetVideoMode", m.setVideoMode, 4},
		{"getVideoSurface", "SDL_GetVideoSurface", m.getVideoSurface, 0},
		{"createRGBSurface", "SDL_CreateRGBSurface", m.createRGBSurface, 4},
		{"freeSurface", "SDL_FreeSurface", m.freeSurface, 1},
		{"newRect", "SDL_NewRect", m.newRect, 4},
		{"fillRect", "SDL_FillRect", m.fillRect, 3},
		{"blitSurface", "SDL_BlitSurface", m.blitSurface, 4},
		{"setClipRect", "SDL_SetClipRect", m.setClipRect, 2},
		{"mapRGB", "SDL_MapRGB", m.mapRGB, 4},
		{"mapRGBA", "SDL_MapRGBA", m.mapRGBA, 5},
		{"setColorKey", "SDL_SetColorKey", m.setColorKey, 3},
		{"setAlpha", "SDL_SetAlpha", m.setAlpha, 3},
		{"flip", "SDL_Flip", m.flip, 1},
		{"updateRect", "SDL_UpdateRect", m.updateRect, 5},
		{"loadBMP", "SDL_LoadBMP", m.loadBMP, 1},
		{"saveBMP", "SDL_SaveBMP", m.saveBMP, 2},
		{"writePixels", "SDL_WritePixels", m.writePixels, 2},
		{"pollEvent", "SDL_PollEvent", m.pollEvent, 0},
		{"pushEvent", "SDL_PushEvent", m.pushEvent, 2},
		{"numJoysticks", "SDL_NumJoysticks", m.numJoysticks, 0},
		{"joystickOpen", "SDL_JoystickOpen", m.joystickOpen, 1},
		{"joystickName", "SDL_JoystickName", m.joystickName, 1},
		{"joystickNumAxes", "SDL_JoystickNumAxes", m.joystickNumAxes, 1},
		{"joystickNumButtons", "SDL_JoystickNumButtons", m.joystickNumButtons, 1},
		{"joystickClose", "SDL_JoystickClose", m.joystickClose, 1},
	}
}

// registerModule builds the sdl table, registers it as a global and in
// package.loaded, and installs the SDL_* global aliases and constants.
func (m *SDLModule) registerModule() {
	table := rt.NewTable()
	for _, b := range m.bindings() {
		goFunc := rt.NewGoFunction(b.fn, b.name, b.nArgs, false)
		rt.SolemnlyDeclareCompliance(rt.ComplyMemSafe|rt.ComplyCpuSafe, goFunc)
		table.Set(rt.StringValue(b.name), rt.FunctionValue(goFunc))
		m.runtime.SetGoFunction(b.global, b.fn, b.nArgs, false)
	}
	m.registerConstants(table)
	tableVal := rt.TableValue(table)
	m.runtime.SetGlobal("sdl", tableVal)

	// Also register in package.loaded so require('sdl') returns the module
	// where the package library is available.
	pkgVal := m.runtime.Runtime().Registry(rt.StringValue("package"))
	if pkgTable, ok := pkgVal.TryTable(); ok {
		if loaded, ok := pkgTable.Get(rt.StringValue("loaded")).TryTable(); ok {
			loaded.Set(rt.StringValue("sdl"), tableVal)
		}
	}
}

// registerConstants installs SDL constants in the module table and as
// globals under their C names.
func (m *SDLModule) registerConstants(table *rt.Table) {
	consts := []struct {
		name  string
		value int64
	}{
		{"SWSURFACE", int64(sdl.SWSURFACE)},
		{"HWSURFACE", int64(sdl.HWSURFACE)},
		{"SRCCOLORKEY", int64(sdl.SRCCOLORKEY)},
		{"SRCALPHA", int64(sdl.SRCALPHA)},
		{"DOUBLEBUF", int64(sdl.DOUBLEBUF)},
		{"FULLSCREEN", int64(sdl.FULLSCREEN)},
		{"INIT_VIDEO", int64(sdl.InitVideo)},
		{"INIT_JOYSTICK", int64(sdl.InitJoystick)},
		{"INIT_EVERYTHING", int64(sdl.InitEverything)},
		{"QUIT", int64(sdl.QuitEvent)},
		{"KEYDOWN", int64(sdl.KeyDown)},
		{"KEYUP", int64(sdl.KeyUp)},
		{"MOUSEMOTION", int64(sdl.MouseMotion)},
		{"MOUSEBUTTONDOWN", int64(sdl.MouseButtonDown)},
		{"MOUSEBUTTONUP", int64(sdl.MouseButtonUp)},
	}
	for _, c := range consts {
		table.Set(rt.StringValue(c.name), rt.IntValue(c.value))
		m.runtime.SetGlobal("SDL_"+c.name, rt.IntValue(c.value))
	}
}

// optionalRectArg interprets argument i as a rect handle or nil.
func optionalRectArg(c *rt.GoCont, i int) (*sdl.Rect, error) {
	args := c.Args()
	if i >= len(args) || args[i].IsNil() {
		return nil, nil
	}
	return UnwrapRect(args[i])
}

// arg returns argument i, or nil when absent.
func arg(c *rt.GoCont, i int) rt.Value {
	args := c.Args()
	if i < len(args) {
		return args[i]
	}
	return rt.NilValue
}

// --- Core ---

func (m *SDLModule) init(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	flags, err := c.IntArg(0)
	if err != nil {
		return nil, err
	}
	if err := sdl.Init(uint32(flags)); err != nil {
		return raiseSDLError("SDL_Init")
	}
	return c.Next(), nil
}

func (m *SDLModule) quit(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	sdl.Quit()
	return c.Next(), nil
}

func (m *SDLModule) wasInit(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	flags, err := c.IntArg(0)
	if err != nil {
		return nil, err
	}
	return c.PushingNext1(t.Runtime, rt.IntValue(int64(sdl.WasInit(uint32(flags))))), nil
}

func (m *SDLModule) getError(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	return c.PushingNext1(t.Runtime, rt.StringValue(sdl.GetError())), nil
}

func (m *SDLModule) clearError(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	sdl.ClearError()
	return c.Next(), nil
}

// --- Surfaces ---

func (m *SDLModule) setVideoMode(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	w, err := c.IntArg(0)
	if err != nil {
		return nil, err
	}
	h, err := c.IntArg(1)
	if err != nil {
		return nil, err
	}
	bpp, err := c.IntArg(2)
	if err != nil {
		return nil, err
	}
	flags, err := c.IntArg(3)
	if err != nil {
		return nil, err
	}
	s, err := sdl.SetVideoMode(int32(w), int32(h), int32(bpp), uint32(flags))
	if err != nil {
		return raiseSDLError("SDL_SetVideoMode")
	}
	return c.PushingNext1(t.Runtime, WrapSurface(s)), nil
}

func (m *SDLModule) getVideoSurface(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	s := sdl.VideoSurface()
	if s == nil {
		return c.PushingNext1(t.Runtime, rt.NilValue), nil
	}
	return c.PushingNext1(t.Runtime, WrapSurface(s)), nil
}

func (m *SDLModule) createRGBSurface(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	flags, err := c.IntArg(0)
	if err != nil {
		return nil, err
	}
	w, err := c.IntArg(1)
	if err != nil {
		return nil, err
	}
	h, err := c.IntArg(2)
	if err != nil {
		return nil, err
	}
	bpp, err := c.IntArg(3)
	if err != nil {
		return nil, err
	}
	s, err := sdl.CreateRGBSurface(uint32(flags), int32(w), int32(h), int32(bpp))
	if err != nil {
		return raiseSDLError("SDL_CreateRGBSurface")
	}
	return c.PushingNext1(t.Runtime, WrapSurface(s)), nil
}

func (m *SDLModule) freeSurface(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	s, err := UnwrapSurface(arg(c, 0))
	if err != nil {
		return nil, err
	}
	sdl.FreeSurface(s)
	return c.Next(), nil
}

// newRect allocates a native rectangle and hands back its handle, so
// scripts can build rects to pass into fill and blit calls.
func (m *SDLModule) newRect(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	x, err := c.IntArg(0)
	if err != nil {
		return nil, err
	}
	y, err := c.IntArg(1)
	if err != nil {
		return nil, err
	}
	w, err := c.IntArg(2)
	if err != nil {
		return nil, err
	}
	h, err := c.IntArg(3)
	if err != nil {
		return nil, err
	}
	r := &sdl.Rect{X: int32(x), Y: int32(y), W: int32(w), H: int32(h)}
	return c.PushingNext1(t.Runtime, WrapRect(r)), nil
}

func (m *SDLModule) fillRect(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	s, err := UnwrapSurface(arg(c, 0))
	if err != nil {
		return nil, err
	}
	r, err := optionalRectArg(c, 1)
	if err != nil {
		return nil, err
	}
	pixel, err := c.IntArg(2)
	if err != nil {
		return nil, err
	}
	if err := sdl.FillRect(s, r, uint32(pixel)); err != nil {
		return raiseSDLError("SDL_FillRect")
	}
	return c.Next(), nil
}

func (m *SDLModule) blitSurface(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	src, err := UnwrapSurface(arg(c, 0))
	if err != nil {
		return nil, err
	}
	srcRect, err := optionalRectArg(c, 1)
	if err != nil {
		return nil, err
	}
	dst, err := UnwrapSurface(arg(c, 2))
	if err != nil {
		return nil, err
	}
	dstRect, err := optionalRectArg(c, 3)
	if err != nil {
		return nil, err
	}
	if err := sdl.BlitSurface(src, srcRect, dst, dstRect); err != nil {
		return raiseSDLError("SDL_BlitSurface")
	}
	return c.Next(), nil
}

func (m *SDLModule) setClipRect(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	s, err := UnwrapSurface(arg(c, 0))
	if err != nil {
		return nil, err
	}
	r, err := optionalRectArg(c, 1)
	if err != nil {
		return nil, err
	}
	sdl.SetClipRect(s, r)
	return c.Next(), nil
}

func (m *SDLModule) mapRGB(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	s, err := UnwrapSurface(arg(c, 0))
	if err != nil {
		return nil, err
	}
	r, err := c.IntArg(1)
	if err != nil {
		return nil, err
	}
	g, err := c.IntArg(2)
	if err != nil {
		return nil, err
	}
	b, err := c.IntArg(3)
	if err != nil {
		return nil, err
	}
	return c.PushingNext1(t.Runtime, rt.IntValue(int64(sdl.MapRGB(s, uint8(r), uint8(g), uint8(b))))), nil
}

func (m *SDLModule) mapRGBA(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	s, err := UnwrapSurface(arg(c, 0))
	if err != nil {
		return nil, err
	}
	r, err := c.IntArg(1)
	if err != nil {
		return nil, err
	}
	g, err := c.IntArg(2)
	if err != nil {
		return nil, err
	}
	b, err := c.IntArg(3)
	if err != nil {
		return nil, err
	}
	a, err := c.IntArg(4)
	if err != nil {
		return nil, err
	}
	return c.PushingNext1(t.Runtime, rt.IntValue(int64(sdl.MapRGBA(s, uint8(r), uint8(g), uint8(b), uint8(a))))), nil
}

func (m *SDLModule) setColorKey(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	s, err := UnwrapSurface(arg(c, 0))
	if err != nil {
		return nil, err
	}
	flag, err := c.IntArg(1)
	if err != nil {
		return nil, err
	}
	key, err := c.IntArg(2)
	if err != nil {
		return nil, err
	}
	sdl.SetColorKey(s, uint32(flag), uint32(key))
	return c.Next(), nil
}

func (m *SDLModule) setAlpha(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	s, err := UnwrapSurface(arg(c, 0))
	if err != nil {
		return nil, err
	}
	flag, err := c.IntArg(1)
	if err != nil {
		return nil, err
	}
	alpha, err := c.IntArg(2)
	if err != nil {
		return nil, err
	}
	sdl.SetAlpha(s, uint32(flag), uint8(alpha))
	return c.Next(), nil
}

func (m *SDLModule) flip(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	s, err := UnwrapSurface(arg(c, 0))
	if err != nil {
		return nil, err
	}
	if err := sdl.Flip(s); err != nil {
		return raiseSDLError("SDL_Flip")
	}
	return c.Next(), nil
}

func (m *SDLModule) updateRect(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	s, err := UnwrapSurface(arg(c, 0))
	if err != nil {
		return nil, err
	}
	x, err := c.IntArg(1)
	if err != nil {
		return nil, err
	}
	y, err := c.IntArg(2)
	if err != nil {
		return nil, err
	}
	w, err := c.IntArg(3)
	if err != nil {
		return nil, err
	}
	h, err := c.IntArg(4)
	if err != nil {
		return nil, err
	}
	r := sdl.Rect{X: int32(x), Y: int32(y), W: int32(w), H: int32(h)}
	if err := sdl.UpdateRect(s, r); err != nil {
		return raiseSDLError("SDL_UpdateRect")
	}
	return c.Next(), nil
}

func (m *SDLModule) loadBMP(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	path, err := c.StringArg(0)
	if err != nil {
		return nil, err
	}
	s, err := sdl.LoadBMP(path)
	if err != nil {
		return raiseSDLError("SDL_LoadBMP")
	}
	return c.PushingNext1(t.Runtime, WrapSurface(s)), nil
}

func (m *SDLModule) saveBMP(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	s, err := UnwrapSurface(arg(c, 0))
	if err != nil {
		return nil, err
	}
	path, err := c.StringArg(1)
	if err != nil {
		return nil, err
	}
	if err := sdl.SaveBMP(s, path); err != nil {
		return raiseSDLError("SDL_SaveBMP")
	}
	return c.Next(), nil
}

// writePixels copies caller-supplied bytes into a surface through the
// buffer bridge. The (pointer, length) pair is consumed within this call
// and never retained.
func (m *SDLModule) writePixels(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	s, err := UnwrapSurface(arg(c, 0))
	if err != nil {
		return nil, err
	}
	p, n, err := bufferPointerAndLength(arg(c, 1))
	if err != nil {
		return nil, err
	}
	if s.Pixels == nil {
		sdl.SetError("WritePixels: surface has been freed")
		return raiseSDLError("SDL_WritePixels")
	}
	copied := copy(s.Pixels, bufferView(p, n))
	return c.PushingNext1(t.Runtime, rt.IntValue(int64(copied))), nil
}

// --- Events ---

func (m *SDLModule) pollEvent(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	ev, ok := sdl.PollEvent()
	if !ok {
		return c.PushingNext1(t.Runtime, rt.NilValue), nil
	}
	evTable := rt.NewTable()
	evTable.Set(rt.StringValue("type"), rt.IntValue(int64(ev.Type)))
	evTable.Set(rt.StringValue("key"), rt.IntValue(int64(ev.Key)))
	evTable.Set(rt.StringValue("x"), rt.IntValue(int64(ev.X)))
	evTable.Set(rt.StringValue("y"), rt.IntValue(int64(ev.Y)))
	evTable.Set(rt.StringValue("button"), rt.IntValue(int64(ev.Button)))
	return c.PushingNext1(t.Runtime, rt.TableValue(evTable)), nil
}

func (m *SDLModule) pushEvent(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	evType, err := c.IntArg(0)
	if err != nil {
		return nil, err
	}
	key, err := c.IntArg(1)
	if err != nil {
		return nil, err
	}
	if err := sdl.PushEvent(sdl.Event{Type: sdl.EventType(evType), Key: int(key)}); err != nil {
		return raiseSDLError("SDL_PushEvent")
	}
	return c.Next(), nil
}

// --- Joysticks ---

func (m *SDLModule) numJoysticks(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	return c.PushingNext1(t.Runtime, rt.IntValue(int64(sdl.NumJoysticks()))), nil
}

func (m *SDLModule) joystickOpen(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	index, err := c.IntArg(0)
	if err != nil {
		return nil, err
	}
	j, err := sdl.JoystickOpen(int(index))
	if err != nil {
		return raiseSDLError("SDL_JoystickOpen")
	}
	return c.PushingNext1(t.Runtime, WrapJoystick(j)), nil
}

func (m *SDLModule) joystickName(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	j, err := UnwrapJoystick(arg(c, 0))
	if err != nil {
		return nil, err
	}
	return c.PushingNext1(t.Runtime, rt.StringValue(j.Name())), nil
}

func (m *SDLModule) joystickNumAxes(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	j, err := UnwrapJoystick(arg(c, 0))
	if err != nil {
		return nil, err
	}
	return c.PushingNext1(t.Runtime, rt.IntValue(int64(j.NumAxes()))), nil
}

func (m *SDLModule) joystickNumButtons(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	j, err := UnwrapJoystick(arg(c, 0))
	if err != nil {
		return nil, err
	}
	return c.PushingNext1(t.Runtime, rt.IntValue(int64(j.NumButtons()))), nil
}

func (m *SDLModule) joystickClose(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	j, err := UnwrapJoystick(arg(c, 0))
	if err != nil {
		return nil, err
	}
	j.Close()
	return c.Next(), nil
}
