package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/TheMisteMince/MVP-API/internal/paths"
	"github.com/TheMisteMince/MVP-API/internal/product"
	"github.com/TheMisteMince/MVP-API/internal/server"
)

// Represents the 'mvpd serve' command.
type ServeCmd struct{}

// Executes the serve command.
//
// Opens the product store, starts the HTTP server, and blocks until the
// context is cancelled (e.g. via SIGINT or SIGTERM).
func (c *ServeCmd) Run(ctx context.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	cleanup, err := writePIDFile()
	if err != nil {
		return err
	}
	defer cleanup()

	store, err := product.OpenStore(cfg.Database.DSN)
	if err != nil {
		return err
	}
	defer store.Close()

	slog.Info("mvpd is serving", "address", cfg.Server.Address())
	return server.New(cfg, store).Run(ctx)
}

// Records the server's PID under the runtime directory.
//
// Returns a cleanup func that removes the file on shutdown.
func writePIDFile() (func(), error) {
	path := paths.PIDFile()
	if err := os.MkdirAll(paths.Runtime(), paths.DefaultDirMode); err != nil {
		return nil, fmt.Errorf("create runtime directory: %w", err)
	}
	pid := strconv.Itoa(os.Getpid())
	if err := os.WriteFile(path, []byte(pid+"\n"), paths.DefaultFileMode); err != nil {
		return nil, fmt.Errorf("write pid file: %w", err)
	}
	return func() { os.Remove(path) }, nil
}
