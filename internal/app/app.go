// Package app drives the demo: wait for the atlas, build the scene once,
// then animate the camera every frame.
package app

import (
	"fmt"

	"voxmesh/internal/assets"
	"voxmesh/internal/camera"
	"voxmesh/internal/config"
	"voxmesh/internal/profiling"
	"voxmesh/internal/scene"

	"go.uber.org/zap"
)

type AppState int

const (
	StateLoading AppState = iota
	StateRun
	StateFailed
)

func (s AppState) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateRun:
		return "run"
	case StateFailed:
		return "failed"
	}
	return fmt.Sprintf("AppState(%d)", int(s))
}

type App struct {
	cfg     *config.Config
	log     *zap.Logger
	texture *assets.Texture

	state AppState
	err   error
	setup *Setup
	orbit *camera.Orbit

	frames uint64
}

// New starts loading the atlas texture and returns an app in StateLoading.
func New(cfg *config.Config, loader *assets.Loader, log *zap.Logger) *App {
	if log == nil {
		log = zap.NewNop()
	}
	return &App{
		cfg:     cfg,
		log:     log,
		texture: loader.Load(cfg.Assets.Texture),
		state:   StateLoading,
		orbit:   camera.NewOrbit(cfg.Camera.Speed, cfg.Camera.Radius, cfg.Camera.Height),
	}
}

func (a *App) State() AppState { return a.state }

// Err is the error that moved the app to StateFailed.
func (a *App) Err() error { return a.err }

// Scene is nil until the app reaches StateRun.
func (a *App) Scene() *scene.Scene {
	if a.setup == nil {
		return nil
	}
	return a.setup.Scene
}

func (a *App) Setup() *Setup { return a.setup }

func (a *App) Orbit() *camera.Orbit { return a.orbit }

// Texture is the atlas load this app is waiting on.
func (a *App) Texture() *assets.Texture { return a.texture }

// Update advances one frame. elapsed is seconds since start. It returns the
// load or setup error once the app has failed, and on every call after.
func (a *App) Update(elapsed float64) error {
	profiling.ResetFrame()
	defer profiling.Track("app.Update")()
	a.frames++

	switch a.state {
	case StateLoading:
		switch a.texture.Poll() {
		case assets.Loading:
			return nil
		case assets.Failed:
			a.fail(a.texture.Err())
			return a.err
		}
		setup, err := BuildScene(a.cfg, a.texture.Path, a.log)
		if err != nil {
			a.fail(err)
			return a.err
		}
		a.setup = setup
		a.state = StateRun
		a.log.Debug("state change", zap.Stringer("state", a.state), zap.Uint64("frame", a.frames))
		fallthrough
	case StateRun:
		a.orbit.Update(elapsed)
		a.setup.Scene.Camera = a.orbit.Transform()
	case StateFailed:
		return a.err
	}
	return nil
}

func (a *App) fail(err error) {
	a.state = StateFailed
	a.err = fmt.Errorf("app setup: %w", err)
	a.log.Error("state change", zap.Stringer("state", a.state), zap.Error(err))
}
