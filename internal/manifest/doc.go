// Package manifest defines the declarative inputs to the build pipeline.
//
// Two files drive a build. The image descriptor (build.yaml) selects a base
// runtime archive, names the dependency manifest and its installer command,
// points at the application source tree, and fixes the process entry point:
// launcher, module, attribute, bind host, and bind port. The dependency
// manifest (requirements.yaml) is a flat mapping of package name to version
// constraint.
//
// Both files are parsed strictly: unknown descriptor fields and malformed
// dependency entries are rejected at load time, before any container is
// started.
package manifest
