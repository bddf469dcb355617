package build

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/TheMisteMince/MVP-API/internal/manifest"
	"github.com/TheMisteMince/MVP-API/internal/paths"
	"github.com/TheMisteMince/MVP-API/internal/runtime"
)

// Filename of the OCI archive produced by a build.
const imageFilename = "image.tar"

// Default shell used to run the installer command inside the build container.
const defaultShell = "/bin/sh"

// Returns the path of the archive a build writes into the output directory.
func ImagePath(output string) string {
	return filepath.Join(output, imageFilename)
}

// Controls pipeline execution.
type Options struct {
	Descriptor *manifest.Descriptor // Image descriptor to build.
	Output     string               // Directory for the exported image.
	CacheDir   string               // Directory for cached dependency-layer archives.
}

// Returned after successful pipeline execution.
type Result struct {
	Image      string // Path to the exported OCI archive.
	DepsKey    string // Cache key of the dependency layer.
	DepsCached bool   // Whether the dependency layer was served from cache.
}

// Executes the build pipeline against the container runtime.
//
// The pipeline has two strictly ordered steps. Step one produces the
// dependency layer: the dependency manifest alone is copied into the image
// and the installer runs. Step two overlays the application source tree on
// the dependency layer and bakes in the entry point. The dependency layer
// is cached under a key derived only from its own inputs, never from the
// source tree, so unrelated source changes cannot invalidate it.
func Run(ctx context.Context, rt *runtime.Runtime, opts Options) (*Result, error) {
	d := opts.Descriptor

	deps, err := manifest.LoadDependencies(d.Dependencies.Manifest)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(opts.Output, paths.DefaultDirMode); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFileSystemOperation, err)
	}

	p := &pipeline{
		rt:    rt,
		d:     d,
		deps:  deps,
		cache: newLayerCache(opts.CacheDir),
	}
	defer p.destroyContainers(ctx)

	slog.Info("building image",
		"image", d.Image,
		"base", d.Base,
		"dependencies", deps.Len(),
	)

	depsLayer, cached, key, err := p.dependencyLayer(ctx)
	if err != nil {
		return nil, err
	}

	output := ImagePath(opts.Output)
	if err := p.sourceLayer(ctx, depsLayer, output); err != nil {
		return nil, err
	}

	return &Result{
		Image:      output,
		DepsKey:    key.String(),
		DepsCached: cached,
	}, nil
}

// Holds shared state across the pipeline's steps.
type pipeline struct {
	rt         *runtime.Runtime     // Container runtime for image and container operations.
	d          *manifest.Descriptor // Descriptor being built.
	deps       *manifest.DependencySet
	cache      *layerCache
	containers []*runtime.Container // Step containers, destroyed after the build completes.
}

// Produces the dependency layer and returns the path to its archive.
//
// On a cache hit the archive is returned as-is and no container is started.
// On a miss, a build container is started from the base archive, the
// dependency manifest is copied into the workdir, and the installer runs.
// Installer failure aborts the build; the partial cache entry is discarded
// so no runnable artifact remains.
func (p *pipeline) dependencyLayer(ctx context.Context) (string, bool, layerKey, error) {
	baseDigest, err := archiveDigest(p.d.Base)
	if err != nil {
		return "", false, layerKey{}, fmt.Errorf("%w: %w", ErrBuild, err)
	}

	key := dependencyLayerKey(baseDigest, p.d, p.deps)

	if path, ok := p.cache.lookup(key); ok {
		slog.Info("dependency layer cached", "key", key)
		return path, true, key, nil
	}

	ctr, err := p.rt.StartBuildContainer(ctx, p.d.Base, p.containerID("deps"))
	if err != nil {
		return "", false, key, fmt.Errorf("%w: %w", ErrBuild, err)
	}
	p.containers = append(p.containers, ctr)

	if err := ctr.MkdirAll(ctx, p.d.Workdir); err != nil {
		return "", false, key, fmt.Errorf("%w: %w", ErrBuild, err)
	}

	if err := copyFile(ctx, ctr, p.d.Dependencies.Manifest, p.d.Workdir); err != nil {
		return "", false, key, err
	}

	if err := p.runInstaller(ctx, ctr); err != nil {
		return "", false, key, err
	}

	if err := ctr.Stop(ctx); err != nil {
		return "", false, key, fmt.Errorf("%w: %w", ErrBuild, err)
	}

	path, err := p.cache.store(key, func(tmp string) error {
		return ctr.Export(ctx, tmp, runtime.ExportOptions{})
	})
	if err != nil {
		return "", false, key, fmt.Errorf("%w: %w", ErrBuild, err)
	}

	slog.Info("dependency layer built", "key", key)
	return path, false, key, nil
}

// Runs the rendered installer command inside the build container.
func (p *pipeline) runInstaller(ctx context.Context, ctr *runtime.Container) error {
	command := p.deps.InstallCommand(p.d.Dependencies.Installer)
	slog.Debug("installing dependencies", "command", command)

	result, err := ctr.Exec(ctx, defaultShell, command, environ(p.d.Env), p.d.Workdir)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInstall, err)
	}
	if result.ExitCode != 0 {
		return fmt.Errorf("%w: exit code %d: %s", ErrInstall, result.ExitCode, result.Stderr)
	}
	return nil
}

// Overlays the source tree on the dependency layer and exports the final
// image with the entry point, environment, and working directory baked in.
func (p *pipeline) sourceLayer(ctx context.Context, depsLayer, output string) error {
	ctr, err := p.rt.StartBuildContainer(ctx, depsLayer, p.containerID("source"))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuild, err)
	}
	p.containers = append(p.containers, ctr)

	if err := copyTree(ctx, ctr, p.d.Source, p.d.Workdir); err != nil {
		return err
	}

	if err := ctr.Stop(ctx); err != nil {
		return fmt.Errorf("%w: %w", ErrBuild, err)
	}

	err = ctr.Export(ctx, output, runtime.ExportOptions{
		Entrypoint: p.d.Entrypoint.Command(),
		Env:        p.d.Env,
		Workdir:    p.d.Workdir,
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuild, err)
	}

	return nil
}

// Destroys all step containers.
func (p *pipeline) destroyContainers(ctx context.Context) {
	for _, ctr := range p.containers {
		ctr.Destroy(ctx)
	}
}

// Returns a unique container ID for a step, scoped to this image.
func (p *pipeline) containerID(step string) string {
	return fmt.Sprintf("%s-%s", p.d.Image, step)
}

// Formats an env map as "key=value" entries.
func environ(env map[string]string) []string {
	entries := make([]string, 0, len(env))
	for k, v := range env {
		entries = append(entries, k+"="+v)
	}
	return entries
}
