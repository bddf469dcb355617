package cli

import (
	"context"
	"log/slog"

	"github.com/TheMisteMince/MVP-API/internal/build"
	"github.com/TheMisteMince/MVP-API/internal/manifest"
	"github.com/TheMisteMince/MVP-API/internal/runtime"
)

// Represents the 'mvpd build' command.
type BuildCmd struct {
	Descriptor string `arg:"" default:"build.yaml" help:"Path to the image descriptor." placeholder:"PATH"`
	Output     string `short:"o" help:"Override the configured output directory." placeholder:"DIR"`
	NoCache    bool   `help:"Discard cached dependency layers before building."`
}

// Executes the build command.
//
// Loads the descriptor, runs the two-step pipeline against containerd, and
// reports the exported archive path.
func (c *BuildCmd) Run(ctx context.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	d, err := manifest.LoadDescriptor(c.Descriptor)
	if err != nil {
		return err
	}

	if c.NoCache {
		if err := build.PurgeCache(cfg.Build.CacheDir); err != nil {
			return err
		}
		slog.Info("layer cache purged", "dir", cfg.Build.CacheDir)
	}

	rt, err := runtime.New(cfg.Runtime.Address, cfg.Runtime.Namespace)
	if err != nil {
		return err
	}
	defer rt.Close()

	output := cfg.Build.Output
	if c.Output != "" {
		output = c.Output
	}

	result, err := build.Run(ctx, rt, build.Options{
		Descriptor: d,
		Output:     output,
		CacheDir:   cfg.Build.CacheDir,
	})
	if err != nil {
		return err
	}

	slog.Info("image built",
		"image", result.Image,
		"deps_key", result.DepsKey,
		"deps_cached", result.DepsCached,
	)
	return nil
}
