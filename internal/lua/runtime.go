// Package lua provides Golua integration for go-sdl-lua.
// It implements the Lua runtime environment with resource limits and the
// handle projection mechanism that exposes native SDL structures to scripts.
package lua

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/arnodel/golua/lib"
	rt "github.com/arnodel/golua/runtime"
)

// RuntimeConfig contains configuration options for the Lua runtime.
type RuntimeConfig struct {
	// CPULimit is the CPU instruction limit for Lua execution.
	// 0 means unlimited.
	CPULimit uint64
	// MemoryLimit is the maximum memory in bytes that Lua can allocate.
	// 0 means unlimited.
	MemoryLimit uint64
	// Stdout is the writer for Lua print output.
	// If nil, output is only captured internally.
	Stdout io.Writer
}

// DefaultConfig returns a RuntimeConfig with sensible default values.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		CPULimit:    10_000_000,
		MemoryLimit: 50 * 1024 * 1024, // 50 MB
		Stdout:      os.Stdout,
	}
}

// SDLRuntime wraps a Golua runtime for script execution with resource
// limits. All handle wrapping and module registration goes through it.
type SDLRuntime struct {
	config  RuntimeConfig
	runtime *rt.Runtime
	output  *bytes.Buffer
	cleanup func()
	mu      sync.RWMutex
}

// New creates a new SDLRuntime with the specified configuration.
// The runtime is initialized with the Lua standard libraries.
func New(config RuntimeConfig) (*SDLRuntime, error) {
	output := &bytes.Buffer{}
	var stdout io.Writer = output
	if config.Stdout != nil {
		stdout = io.MultiWriter(config.Stdout, output)
	}

	runtime := rt.New(stdout)
	cleanup := lib.LoadAll(runtime)

	return &SDLRuntime{
		config:  config,
		runtime: runtime,
		output:  output,
		cleanup: cleanup,
	}, nil
}

// LoadString compiles a Lua chunk. The returned closure runs via Execute.
func (sr *SDLRuntime) LoadString(name, code string) (*rt.Closure, error) {
	sr.mu.Lock()
	defer sr.mu.Unlock()

	closure, err := sr.runtime.CompileAndLoadLuaChunk(
		name,
		[]byte(code),
		rt.TableValue(sr.runtime.GlobalEnv()),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load Lua code: %w", err)
	}
	return closure, nil
}

// LoadFile reads and compiles a Lua file from disk.
func (sr *SDLRuntime) LoadFile(path string) (*rt.Closure, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read Lua file %s: %w", path, err)
	}

	sr.mu.Lock()
	defer sr.mu.Unlock()

	closure, err := sr.runtime.CompileAndLoadLuaChunk(
		path,
		content,
		rt.TableValue(sr.runtime.GlobalEnv()),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load Lua file %s: %w", path, err)
	}
	return closure, nil
}

// Execute runs a compiled closure within the configured resource limits.
func (sr *SDLRuntime) Execute(closure *rt.Closure) (rt.Value, error) {
	sr.mu.Lock()
	defer sr.mu.Unlock()

	ctx := rt.RuntimeContextDef{
		HardLimits: rt.RuntimeResources{
			Cpu:    sr.config.CPULimit,
			Memory: sr.config.MemoryLimit,
		},
	}
	sr.runtime.PushContext(ctx)
	defer sr.runtime.PopContext()

	thread := sr.runtime.MainThread()
	result, err := rt.Call1(thread, rt.FunctionValue(closure))
	if err != nil {
		return rt.NilValue, fmt.Errorf("Lua execution error: %w", err)
	}
	return result, nil
}

// ExecuteString compiles and executes a Lua code string.
func (sr *SDLRuntime) ExecuteString(name, code string) (rt.Value, error) {
	closure, err := sr.LoadString(name, code)
	if err != nil {
		return rt.NilValue, err
	}
	return sr.Execute(closure)
}

// ExecuteFile loads and executes a Lua file.
func (sr *SDLRuntime) ExecuteFile(path string) (rt.Value, error) {
	closure, err := sr.LoadFile(path)
	if err != nil {
		return rt.NilValue, err
	}
	return sr.Execute(closure)
}

// GetGlobal retrieves a global variable from the Lua environment.
func (sr *SDLRuntime) GetGlobal(name string) rt.Value {
	sr.mu.RLock()
	defer sr.mu.RUnlock()
	return sr.runtime.GlobalEnv().Get(rt.StringValue(name))
}

// SetGlobal sets a global variable in the Lua environment.
func (sr *SDLRuntime) SetGlobal(name string, value rt.Value) {
	sr.mu.Lock()
	defer sr.mu.Unlock()
	sr.runtime.GlobalEnv().Set(rt.StringValue(name), value)
}

// SetGoFunction registers a Go function in the Lua global environment.
// The function is declared memory- and CPU-safe for use under limits.
func (sr *SDLRuntime) SetGoFunction(name string, fn rt.GoFunctionFunc, nArgs int, hasVarArgs bool) {
	sr.mu.Lock()
	defer sr.mu.Unlock()

	goFunc := rt.NewGoFunction(fn, name, nArgs, hasVarArgs)
	rt.SolemnlyDeclareCompliance(rt.ComplyMemSafe|rt.ComplyCpuSafe, goFunc)
	sr.runtime.GlobalEnv().Set(rt.StringValue(name), rt.FunctionValue(goFunc))
}

// CallFunction calls a Lua function by name with the given arguments.
func (sr *SDLRuntime) CallFunction(name string, args ...rt.Value) (rt.Value, error) {
	sr.mu.Lock()
	defer sr.mu.Unlock()

	fn := sr.runtime.GlobalEnv().Get(rt.StringValue(name))
	if fn == rt.NilValue {
		return rt.NilValue, fmt.Errorf("function %s not found", name)
	}

	ctx := rt.RuntimeContextDef{
		HardLimits: rt.RuntimeResources{
			Cpu:    sr.config.CPULimit,
			Memory: sr.config.MemoryLimit,
		},
	}
	sr.runtime.PushContext(ctx)
	defer sr.runtime.PopContext()

	thread := sr.runtime.MainThread()
	result, err := rt.Call1(thread, fn, args...)
	if err != nil {
		return rt.NilValue, fmt.Errorf("failed to call function %s: %w", name, err)
	}
	return result, nil
}

// Output returns the captured output from Lua print statements.
func (sr *SDLRuntime) Output() string {
	sr.mu.RLock()
	defer sr.mu.RUnlock()
	return sr.output.String()
}

// ClearOutput clears the captured output buffer.
func (sr *SDLRuntime) ClearOutput() {
	sr.mu.Lock()
	defer sr.mu.Unlock()
	sr.output.Reset()
}

// Runtime returns the underlying Golua runtime.
// Use with caution as this bypasses thread-safety protections.
func (sr *SDLRuntime) Runtime() *rt.Runtime {
	sr.mu.RLock()
	defer sr.mu.RUnlock()
	return sr.runtime
}

// Config returns the current runtime configuration.
func (sr *SDLRuntime) Config() RuntimeConfig {
	sr.mu.RLock()
	defer sr.mu.RUnlock()
	return sr.config
}

// Close releases resources associated with the runtime.
// The runtime should not be used after calling Close.
func (sr *SDLRuntime) Close() error {
	sr.mu.Lock()
	defer sr.mu.Unlock()

	if sr.cleanup != nil {
		sr.cleanup()
		sr.cleanup = nil
	}
	return nil
}
