package cli

import (
	"context"
	"log/slog"

	"github.com/TheMisteMince/MVP-API/internal/build"
	"github.com/TheMisteMince/MVP-API/internal/launch"
	"github.com/TheMisteMince/MVP-API/internal/manifest"
	"github.com/TheMisteMince/MVP-API/internal/runtime"
)

// Represents the 'mvpd up' command.
type UpCmd struct {
	Descriptor string `arg:"" default:"build.yaml" help:"Path to the image descriptor." placeholder:"PATH"`
	Archive    string `short:"a" help:"Override the archive path derived from the descriptor." placeholder:"PATH"`
}

// Executes the up command.
//
// Imports the built archive named by the descriptor, starts its container,
// and blocks until the context is cancelled. The command fails if the entry
// point exits or never starts listening within the startup timeout.
func (c *UpCmd) Run(ctx context.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	d, err := manifest.LoadDescriptor(c.Descriptor)
	if err != nil {
		return err
	}

	archive := c.Archive
	if archive == "" {
		archive = build.ImagePath(cfg.Build.Output)
	}

	rt, err := runtime.New(cfg.Runtime.Address, cfg.Runtime.Namespace)
	if err != nil {
		return err
	}
	defer rt.Close()

	ctr, err := launch.Run(ctx, rt, launch.Options{
		Archive:        archive,
		ContainerID:    d.Image,
		Address:        d.Entrypoint.Address(),
		StartupTimeout: cfg.Launch.StartupTimeout,
	})
	if err != nil {
		return err
	}

	slog.Info("serving", "address", d.Entrypoint.Address(), "container", ctr.ID())

	<-ctx.Done()

	slog.Info("shutting down")
	ctr.Destroy(context.Background())
	return nil
}
