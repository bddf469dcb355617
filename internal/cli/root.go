package cli

import (
	"context"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/TheMisteMince/MVP-API/internal"
	"github.com/TheMisteMince/MVP-API/internal/config"
)

// Represents the root command for the mvpd binary.
var RootCmd struct {
	Quiet   bool       `short:"q" help:"Suppress informational output."`
	Verbose bool       `short:"v" help:"Enable verbose output."`
	Debug   bool       `short:"d" help:"Enable debug output."`
	Config  string     `short:"c" help:"Path to a config file." placeholder:"PATH"`
	Serve   ServeCmd   `cmd:"" help:"Serve the product API."`
	Build   BuildCmd   `cmd:"" help:"Build an application image from a descriptor."`
	Up      UpCmd      `cmd:"" help:"Launch a built image and wait for it to become ready."`
	Version VersionCmd `cmd:"" help:"Show version information."`
}

// Parses arguments and runs the selected subcommand.
func Execute() error {

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	kongCtx := kong.Parse(&RootCmd,
		kong.Name(internal.Name),
		kong.Description("Builds, launches, and serves the MVP product API.\n\nImages are assembled from a declarative descriptor and run under containerd."),
		kong.UsageOnError(),
		kong.Vars{
			"version": internal.VersionString(),
		},
		kong.BindTo(ctx, (*context.Context)(nil)),
	)

	return kongCtx.Run()
}

// Loads configuration and installs the global logger.
//
// CLI flags take precedence over the configured log level; build-time
// defaults from linker flags rank below both.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(RootCmd.Config)
	if err != nil {
		return nil, err
	}

	if RootCmd.Debug {
		internal.SetDebug(true)
	}
	if RootCmd.Quiet {
		internal.SetQuiet(true)
	}
	if RootCmd.Verbose {
		internal.SetVerbose(true)
	}

	switch {
	case internal.IsDebug():
		cfg.Log.Level = "debug"
	case internal.IsQuiet():
		cfg.Log.Level = "warn"
	case internal.IsVerbose():
		cfg.Log.Level = "info"
	}

	slog.SetDefault(config.SetupLogger(cfg))
	return cfg, nil
}
