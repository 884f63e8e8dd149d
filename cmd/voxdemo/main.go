// Command voxdemo opens a window and orbits a randomly generated, meshed
// voxel volume.
package main

import (
	"flag"
	"fmt"
	"image"
	"os"
	"runtime"
	"time"

	"voxmesh/internal/app"
	"voxmesh/internal/assets"
	"voxmesh/internal/config"
	"voxmesh/internal/graphics"
	"voxmesh/internal/input"
	"voxmesh/internal/logger"
	"voxmesh/internal/profiling"

	"github.com/go-gl/glfw/v3.3/glfw"
	"go.uber.org/zap"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	var flags config.Flags
	flags.Bind(flag.CommandLine)
	flag.Parse()

	cfg, err := config.Load(&flags)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(cfg); err != nil {
		logger.Log.Error("voxdemo stopped", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("glfw init: %w", err)
	}
	defer glfw.Terminate()

	window, err := setupWindow(cfg.Window)
	if err != nil {
		return err
	}
	defer window.Destroy()
	config.SetFPSLimit(cfg.Window.FPSLimit)

	loader := assets.NewLoader(
		assets.WithLogger(logger.Named("assets")),
		assets.WithValidator(cfg.Atlas.CheckImage),
	)
	defer loader.Close()

	images := func(path string) (*image.RGBA, error) { return loader.Load(path).Image() }
	fbw, fbh := window.GetFramebufferSize()
	r, err := graphics.NewRenderer(fbw, fbh, cfg.Camera.FOV, images, logger.Named("graphics"))
	if err != nil {
		return err
	}
	defer r.Dispose()

	window.SetFramebufferSizeCallback(func(_ *glfw.Window, w, h int) {
		r.SetViewport(w, h)
	})
	im := input.NewInputManager()
	im.SetKeyCallback(window)

	a := app.New(cfg, loader, logger.Named("app"))
	limiter := app.NewFPSLimiter()
	uploaded := false
	frames := 0
	lastReport := time.Now()

	for !window.ShouldClose() {
		if im.JustPressed(input.ActionQuit) {
			window.SetShouldClose(true)
		}
		im.PostUpdate()

		if err := a.Update(glfw.GetTime()); err != nil {
			return err
		}
		if a.State() == app.StateRun {
			if !uploaded {
				func() { defer profiling.Track("graphics.Upload")(); r.Upload(a.Scene()) }()
				uploaded = true
			}
			if err := r.Render(a.Scene(), a.Orbit().View()); err != nil {
				return err
			}
		}

		func() { defer profiling.Track("glfw.SwapBuffers")(); window.SwapBuffers() }()
		func() { defer profiling.Track("glfw.PollEvents")(); glfw.PollEvents() }()
		frames++

		if time.Since(lastReport) >= time.Second {
			logger.Log.Debug("frame stats", append([]zap.Field{zap.Int("fps", frames)}, profiling.Fields(3)...)...)
			frames = 0
			lastReport = time.Now()
		}
		limiter.Wait(a.State() == app.StateLoading)
	}
	return nil
}
