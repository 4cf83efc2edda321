// Package lua provides Golua integration for go-sdl-lua.
// This file implements the 'ttf' module. Fonts cross the boundary as opaque
// handles with no projected fields; rendered text comes back as a surface
// handle.
package lua

import (
	rt "github.com/arnodel/golua/runtime"

	"github.com/opd-ai/go-sdl-lua/internal/sdl"
)

// TTFModule registers the font API in a Lua runtime.
type TTFModule struct {
	runtime *SDLRuntime
}

// NewTTFModule creates a TTFModule and registers the ttf table and the
// TTF_* global functions in the provided runtime.
func NewTTFModule(runtime *SDLRuntime) (*TTFModule, error) {
	if runtime == nil {
		return nil, ErrNilRuntime
	}
	m := &TTFModule{runtime: runtime}
	m.registerModule()
	return m, nil
}

func (m *TTFModule) bindings() []binding {
	return []binding{
		{"init", "TTF_Init", m.init, 0},
		{"quit", "TTF_Quit", m.quit, 0},
		{"wasInit", "TTF_WasInit", m.wasInit, 0},
		{"openFont", "TTF_OpenFont", m.openFont, 2},
		{"openDefaultFont", "TTF_OpenDefaultFont", m.openDefaultFont, 1},
		{"fontHeight", "TTF_FontHeight", m.fontHeight, 1},
		{"sizeText", "TTF_SizeText", m.sizeText, 2},
		{"renderText", "TTF_RenderText", m.renderText, 5},
	}
}

func (m *TTFModule) registerModule() {
	table := rt.NewTable()
	for _, b := range m.bindings() {
		goFunc := rt.NewGoFunction(b.fn, b.name, b.nArgs, false)
		rt.SolemnlyDeclareCompliance(rt.ComplyMemSafe|rt.ComplyCpuSafe, goFunc)
		table.Set(rt.StringValue(b.name), rt.FunctionValue(goFunc))
		m.runtime.SetGoFunction(b.global, b.fn, b.nArgs, false)
	}
	tableVal := rt.TableValue(table)
	m.runtime.SetGlobal("ttf", tableVal)

	pkgVal := m.runtime.Runtime().Registry(rt.StringValue("package"))
	if pkgTable, ok := pkgVal.TryTable(); ok {
		if loaded, ok := pkgTable.Get(rt.StringValue("loaded")).TryTable(); ok {
			loaded.Set(rt.StringValue("ttf"), tableVal)
		}
	}
}

func (m *TTFModule) init(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	if err := sdl.InitTTF(); err != nil {
		return raiseSDLError("TTF_Init")
	}
	return c.Next(), nil
}

func (m *TTFModule) quit(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	sdl.QuitTTF()
	return c.Next(), nil
}

func (m *TTFModule) wasInit(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	return c.PushingNext1(t.Runtime, rt.BoolValue(sdl.WasInitTTF())), nil
}

func (m *TTFModule) openFont(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	path, err := c.StringArg(0)
	if err != nil {
		return nil, err
	}
	size, err := c.IntArg(1)
	if err != nil {
		return nil, err
	}
	f, err := sdl.OpenFont(path, int(size))
	if err != nil {
		return raiseSDLError("TTF_OpenFont")
	}
	return c.PushingNext1(t.Runtime, WrapFont(f)), nil
}

func (m *TTFModule) openDefaultFont(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	size, err := c.IntArg(0)
	if err != nil {
		return nil, err
	}
	f, err := sdl.DefaultFont(int(size))
	if err != nil {
		return raiseSDLError("TTF_OpenDefaultFont")
	}
	return c.PushingNext1(t.Runtime, WrapFont(f)), nil
}

func (m *TTFModule) fontHeight(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	f, err := UnwrapFont(arg(c, 0))
	if err != nil {
		return nil, err
	}
	return c.PushingNext1(t.Runtime, rt.IntValue(int64(f.Height()))), nil
}

func (m *TTFModule) sizeText(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	f, err := UnwrapFont(arg(c, 0))
	if err != nil {
		return nil, err
	}
	text, err := c.StringArg(1)
	if err != nil {
		return nil, err
	}
	w, h, err := sdl.SizeText(f, text)
	if err != nil {
		return raiseSDLError("TTF_SizeText")
	}
	return c.PushingNext(t.Runtime, rt.IntValue(int64(w)), rt.IntValue(int64(h))), nil
}

// renderText handles ttf.renderText(font, text, r, g, b) and returns a
// freshly wrapped surface handle.
func (m *TTFModule) renderText(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	f, err := UnwrapFont(arg(c, 0))
	if err != nil {
		return nil, err
	}
	text, err := c.StringArg(1)
	if err != nil {
		return nil, err
	}
	r, err := c.IntArg(2)
	if err != nil {
		return nil, err
	}
	g, err := c.IntArg(3)
	if err != nil {
		return nil, err
	}
	b, err := c.IntArg(4)
	if err != nil {
		return nil, err
	}
	s, err := sdl.RenderText(f, text, sdl.Color{R: uint8(r), G: uint8(g), B: uint8(b), A: 0xFF})
	if err != nil {
		return raiseSDLError("TTF_RenderText")
	}
	return c.PushingNext1(t.Runtime, WrapSurface(s)), nil
}
