package launch

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"time"

	"github.com/TheMisteMince/MVP-API/internal/runtime"
)

// How often the bind address is probed while waiting for the listener.
const probeInterval = 250 * time.Millisecond

// How long a single TCP probe may take.
const probeTimeout = time.Second

// Controls a container launch.
type Options struct {
	Archive        string        // Path to the built OCI archive.
	ContainerID    string        // ID for the serving container.
	Address        string        // host:port the entry point binds to.
	StartupTimeout time.Duration // How long to wait for the listener.
}

// Imports the built archive and starts its serving container, waiting until
// the entry point's listener is reachable.
//
// The container runs the entry point baked into the image config. If the
// task exits before the listener comes up (entry-point module missing,
// application object absent, bind failure), the container is destroyed and
// the task's exit code is reported. If the startup deadline passes without
// a reachable listener, the container is likewise destroyed. A single
// attempt is made; retrying is the operator's decision.
func Run(ctx context.Context, rt *runtime.Runtime, opts Options) (*runtime.Container, error) {
	tag, err := rt.ImportImage(ctx, opts.Archive, "")
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLaunch, err)
	}

	ctr, exitC, err := rt.LaunchContainer(ctx, tag, opts.ContainerID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLaunch, err)
	}

	// Flatten the containerd exit status into a plain exit code so the
	// readiness loop doesn't depend on containerd types.
	exited := make(chan int, 1)
	go func() {
		status := <-exitC
		code, _, err := status.Result()
		if err != nil {
			code = 255
		}
		exited <- int(code)
	}()

	slog.Info("waiting for listener", "address", opts.Address, "timeout", opts.StartupTimeout)

	if err := waitReady(ctx, opts.Address, opts.StartupTimeout, exited); err != nil {
		ctr.Destroy(ctx)
		return nil, err
	}

	slog.Info("application ready", "address", opts.Address, "container", ctr.ID())
	return ctr, nil
}

// Blocks until a TCP connection to addr succeeds, the task exits, the
// deadline passes, or the context is cancelled.
//
// Task exit always wins over further probing: a process that died can never
// become ready, so the error carries its exit code instead of a timeout.
func waitReady(ctx context.Context, addr string, timeout time.Duration, exited <-chan int) error {
	deadline := time.NewTimer(timeout)
	defer deadline.Stop()

	ticker := time.NewTicker(probeInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("%w: %w", ErrLaunch, ctx.Err())
		case code := <-exited:
			return fmt.Errorf("%w: entry point exited with code %d before %s became reachable", ErrExitedEarly, code, addr)
		case <-deadline.C:
			return fmt.Errorf("%w: %s not reachable after %s", ErrStartTimeout, addr, timeout)
		case <-ticker.C:
			if probe(addr) {
				return nil
			}
		}
	}
}

// Attempts a single TCP connection to addr.
func probe(addr string) bool {
	conn, err := net.DialTimeout("tcp", addr, probeTimeout)
	if err != nil {
		return false
	}
	conn.Close()
	return true
}
