package config

import "flag"

// Flags are command-line overrides. Zero values leave the config untouched.
type Flags struct {
	Config  string
	Debug   bool
	Seed    int64
	Greedy  bool
	Texture string
	Out     string
	LogFile string
}

// Bind registers the flags on fs.
func (f *Flags) Bind(fs *flag.FlagSet) {
	fs.StringVar(&f.Config, "config", "", "Path to config file")
	fs.BoolVar(&f.Debug, "debug", false, "Enable debug logging")
	fs.Int64Var(&f.Seed, "seed", 0, "World generation seed (0 = random)")
	fs.BoolVar(&f.Greedy, "greedy", false, "Use greedy meshing")
	fs.StringVar(&f.Texture, "texture", "", "Atlas texture path")
	fs.StringVar(&f.Out, "out", "", "Output .glb path (export only)")
	fs.StringVar(&f.LogFile, "log-file", "", "Also write logs to this file")
}

// apply applies flag overrides to the config.
func (f *Flags) apply(cfg *Config) {
	if f.Debug {
		cfg.Logging.Level = "debug"
	}
	if f.Seed != 0 {
		cfg.World.Seed = f.Seed
	}
	if f.Greedy {
		cfg.Mesh.Algorithm = "greedy"
	}
	if f.Texture != "" {
		cfg.Assets.Texture = f.Texture
	}
	if f.Out != "" {
		cfg.Export.Out = f.Out
	}
	if f.LogFile != "" {
		cfg.Logging.LogFile = f.LogFile
	}
}
