package main

import (
	"errors"
	"log/slog"
	"os"

	"github.com/TheMisteMince/MVP-API/internal"
	"github.com/TheMisteMince/MVP-API/internal/build"
	"github.com/TheMisteMince/MVP-API/internal/cli"
	"github.com/TheMisteMince/MVP-API/internal/launch"
	"github.com/TheMisteMince/MVP-API/internal/manifest"
	"github.com/TheMisteMince/MVP-API/internal/runtime"
	"github.com/TheMisteMince/MVP-API/internal/server"
)

// Exit codes by failure class.
const (
	exitSuccess  = 0
	exitConfig   = 1
	exitManifest = 2
	exitBuild    = 3
	exitRuntime  = 4
	exitLaunch   = 5
	exitServer   = 6
)

// The entry point for the mvpd binary.
//
// Initializes logging, displays startup information, and executes the root
// command. If any error occurs during execution, it exits with a non-zero code.
func main() {
	slog.SetDefault(logger())

	slog.Debug("build", "version", internal.VersionString())

	slog.Debug("mvpd is running",
		"pid", os.Getpid(),
		"cwd", cwd(),
		"args", os.Args,
	)

	if err := cli.Execute(); err != nil {
		slog.Error(err.Error())
		os.Exit(exitCode(err))
	}
}

// Maps an error to its exit code by failure class.
//
// Errors that match no class are treated as configuration problems, the
// only kind left once manifest, build, runtime, launch, and server errors
// are accounted for.
func exitCode(err error) int {
	switch {
	case errors.Is(err, manifest.ErrManifest):
		return exitManifest
	case errors.Is(err, build.ErrBuild),
		errors.Is(err, build.ErrInstall),
		errors.Is(err, build.ErrCopy),
		errors.Is(err, build.ErrFileSystemOperation):
		return exitBuild
	case errors.Is(err, runtime.ErrRuntime):
		return exitRuntime
	case errors.Is(err, launch.ErrLaunch),
		errors.Is(err, launch.ErrExitedEarly),
		errors.Is(err, launch.ErrStartTimeout):
		return exitLaunch
	case errors.Is(err, server.ErrServer):
		return exitServer
	default:
		return exitConfig
	}
}

// Creates a stderr logger seeded from build-time linker flags.
//
// The logger is replaced once configuration is loaded during cli.Execute.
func logger() *slog.Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel(),
	})
	return slog.New(handler).WithGroup(internal.Name)
}

// Returns the log level derived from build-time linker flags.
func logLevel() slog.Level {
	if internal.IsDebug() {
		return slog.LevelDebug
	}
	if internal.IsQuiet() {
		return slog.LevelWarn
	}
	return slog.LevelInfo
}

// Returns the current working directory or "(unknown)".
func cwd() string {
	cwd, err := os.Getwd()
	if err != nil {
		return "(unknown)"
	}
	return cwd
}
