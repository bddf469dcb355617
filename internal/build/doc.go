// Package build orchestrates the image build pipeline.
//
// A build turns an image descriptor into a runnable OCI archive in two
// strictly ordered steps. The dependency step copies the dependency
// manifest alone into a container started from the base archive and runs
// the installer; the result is committed as the dependency layer. The
// source step overlays the application source tree on that layer and
// bakes the entry point, environment, and working directory into the
// image config.
//
// Dependency layers are cached by content: the cache key is a digest over
// the base archive, the installer command, the build environment, and the
// sorted dependency pairs. The source tree never contributes to the key,
// so editing application code cannot invalidate the dependency layer.
// Installer failure aborts the build before any artifact is produced.
//
// Container operations are delegated to the runtime package.
//
// Example usage:
//
//	result, err := build.Run(ctx, rt, build.Options{
//	    Descriptor: descriptor,
//	    Output:     "dist",
//	    CacheDir:   paths.LayerCache(),
//	})
//	if err != nil {
//	    return err
//	}
package build
