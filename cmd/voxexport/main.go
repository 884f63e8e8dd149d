// Command voxexport generates and meshes a voxel volume without opening a
// window and writes the demo scene to a binary glTF file.
package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"os"
	"time"

	"voxmesh/internal/app"
	"voxmesh/internal/assets"
	"voxmesh/internal/config"
	"voxmesh/internal/export"
	"voxmesh/internal/logger"
	"voxmesh/internal/profiling"

	"go.uber.org/zap"
)

const loadTimeout = 30 * time.Second

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
		logger.Log.Error("export failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	loader := assets.NewLoader(
		assets.WithLogger(logger.Named("assets")),
		assets.WithValidator(cfg.Atlas.CheckImage),
	)
	defer loader.Close()

	ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
	defer cancel()
	tex := loader.Load(cfg.Assets.Texture)
	if _, err := tex.Wait(ctx); err != nil {
		return err
	}

	setup, err := app.BuildScene(cfg, tex.Path, logger.Named("app"))
	if err != nil {
		return err
	}

	images := func(path string) (*image.RGBA, error) { return loader.Load(path).Image() }
	func() {
		defer profiling.Track("export.SaveGLB")()
		err = export.SaveGLB(cfg.Export.Out, setup.Scene, images)
	}()
	if err != nil {
		return fmt.Errorf("write %s: %w", cfg.Export.Out, err)
	}

	logger.Log.Info("exported",
		zap.String("path", cfg.Export.Out),
		zap.Int64("seed", setup.Seed),
		zap.Int("quads", setup.Mesh.NumQuads()),
		zap.String("timings", profiling.TopN(3)),
	)
	return nil
}
