// Package main provides the entry point for sdl-lua, a Lua scripting host
// exposing an SDL 1.2 style API. Scripts run in a sandboxed Golua runtime
// and the video surface is presented with Ebiten.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/opd-ai/go-sdl-lua/internal/display"
	"github.com/opd-ai/go-sdl-lua/internal/lua"
	"github.com/opd-ai/go-sdl-lua/internal/sdl"
	"github.com/opd-ai/go-sdl-lua/internal/watch"
)

// Version is the current version of sdl-lua.
// This default value can be overridden at build time using:
//
//	go build -ldflags "-X main.Version=x.y.z"
var Version = "0.1.0-dev"

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("sdl-lua", flag.ContinueOnError)
	version := fs.Bool("v", false, "Print version and exit")
	headless := fs.Bool("headless", false, "Run the script without opening a window")
	watchScript := fs.Bool("watch", false, "Re-run the script when it changes on disk")
	title := fs.String("title", "", "Window title (defaults to the script name)")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	if *version {
		fmt.Printf("sdl-lua version %s\n", Version)
		return 0
	}

	scriptPath := fs.Arg(0)
	if scriptPath == "" {
		fmt.Fprintln(os.Stderr, "No script specified.")
		fmt.Fprintln(os.Stderr, "Usage: sdl-lua [flags] <script.lua>")
		return 1
	}
	if _, err := os.Stat(scriptPath); err != nil {
		if os.IsNotExist(err) {
			fmt.Fprintf(os.Stderr, "Script not found: %s\n", scriptPath)
		} else {
			fmt.Fprintf(os.Stderr, "Error accessing script %s: %v\n", scriptPath, err)
		}
		return 1
	}

	runtime, err := lua.New(lua.DefaultConfig())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating Lua runtime: %v\n", err)
		return 1
	}
	defer runtime.Close()

	if _, err := lua.NewSDLModule(runtime); err != nil {
		fmt.Fprintf(os.Stderr, "Error registering sdl module: %v\n", err)
		return 1
	}
	if _, err := lua.NewTTFModule(runtime); err != nil {
		fmt.Fprintf(os.Stderr, "Error registering ttf module: %v\n", err)
		return 1
	}

	runScript := func() error {
		_, err := runtime.ExecuteFile(scriptPath)
		return err
	}

	if err := runScript(); err != nil {
		fmt.Fprintf(os.Stderr, "Script error: %v\n", err)
		return 1
	}
	if out := runtime.Output(); out != "" {
		fmt.Print(out)
	}

	var watcher *watch.ScriptWatcher
	if *watchScript {
		watcher, err = watch.New(scriptPath, watch.DefaultDebounce,
			func() error {
				runtime.ClearOutput()
				if err := runScript(); err != nil {
					return err
				}
				if out := runtime.Output(); out != "" {
					fmt.Print(out)
				}
				return nil
			},
			func(err error) {
				fmt.Fprintf(os.Stderr, "Reload error: %v\n", err)
			})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error watching script: %v\n", err)
			return 1
		}
		defer watcher.Stop()
	}

	if *headless {
		if watcher != nil {
			// Watch mode without a window: block until interrupted.
			select {}
		}
		return 0
	}

	config := display.DefaultConfig()
	if *title != "" {
		config.Title = *title
	} else {
		config.Title = scriptPath
	}
	if s := sdl.VideoSurface(); s != nil {
		config.Width, config.Height = int(s.W), int(s.H)
	}
	if err := display.Run(config); err != nil {
		fmt.Fprintf(os.Stderr, "Display error: %v\n", err)
		return 1
	}
	return 0
}
