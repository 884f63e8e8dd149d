// Package config handles demo configuration loading and management.
package config

import (
	"fmt"

	"voxmesh/internal/atlas"
)

// MaxWorldSize bounds world.size; the grid holds size³ voxels.
const MaxWorldSize = 256

// Config holds all settings.
type Config struct {
	Window  WindowConfig  `yaml:"window"`
	World   WorldConfig   `yaml:"world"`
	Mesh    MeshConfig    `yaml:"mesh"`
	Atlas   atlas.Layout  `yaml:"atlas"`
	Assets  AssetsConfig  `yaml:"assets"`
	Camera  CameraConfig  `yaml:"camera"`
	Logging LoggingConfig `yaml:"logging"`
	Export  ExportConfig  `yaml:"export"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Width    int    `yaml:"width"`
	Height   int    `yaml:"height"`
	Title    string `yaml:"title"`
	VSync    bool   `yaml:"vsync"`
	FPSLimit int    `yaml:"fps_limit"`
}

// WorldConfig controls grid generation.
type WorldConfig struct {
	Size uint32 `yaml:"size"`
	Seed int64  `yaml:"seed"` // 0 picks a time-based seed
}

// MeshConfig selects the meshing algorithm.
type MeshConfig struct {
	Algorithm string  `yaml:"algorithm"` // visible | greedy
	VoxelSize float32 `yaml:"voxel_size"`
}

// AssetsConfig holds asset paths.
type AssetsConfig struct {
	Texture string `yaml:"texture"`
}

// CameraConfig drives the orbit animation.
type CameraConfig struct {
	Speed  float32 `yaml:"speed"`
	Radius float32 `yaml:"radius"`
	Height float32 `yaml:"height"`
	FOV    float32 `yaml:"fov"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// ExportConfig holds headless export settings.
type ExportConfig struct {
	Out string `yaml:"out"`
}

// Default returns the built-in settings: a 22³ grid, visible-face meshing
// and a 64px-tile 1024px atlas.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Width:    1280,
			Height:   720,
			Title:    "voxmesh",
			VSync:    true,
			FPSLimit: 0,
		},
		World: WorldConfig{
			Size: 22,
		},
		Mesh: MeshConfig{
			Algorithm: "visible",
			VoxelSize: 1,
		},
		Atlas: atlas.DefaultLayout(),
		Assets: AssetsConfig{
			Texture: "assets/uv_checker.png",
		},
		Camera: CameraConfig{
			Speed:  0.3,
			Radius: 50,
			Height: 30,
			FOV:    60,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		Export: ExportConfig{
			Out: "voxels.glb",
		},
	}
}

// Validate rejects settings the demo cannot run with.
func (c *Config) Validate() error {
	if c.World.Size < 3 || c.World.Size > MaxWorldSize {
		return fmt.Errorf("config: world.size %d, want 3..%d", c.World.Size, MaxWorldSize)
	}
	switch c.Mesh.Algorithm {
	case "visible", "greedy":
	default:
		return fmt.Errorf("config: mesh.algorithm %q, want visible or greedy", c.Mesh.Algorithm)
	}
	if c.Mesh.VoxelSize <= 0 {
		return fmt.Errorf("config: mesh.voxel_size must be positive")
	}
	if err := c.Atlas.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if c.Assets.Texture == "" {
		return fmt.Errorf("config: assets.texture is empty")
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("config: window size %dx%d", c.Window.Width, c.Window.Height)
	}
	return nil
}
