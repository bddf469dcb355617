package manifest

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Describes how to assemble and launch an application image.
//
// The descriptor is the declarative input to the build pipeline: a base
// runtime archive, a dependency manifest with an installer command, a source
// tree, and the fixed entry-point tuple baked into the image.
type Descriptor struct {
	Image        string            `yaml:"image"`        // Name of the image to produce.
	Base         string            `yaml:"base"`         // Path to the base runtime OCI archive.
	Workdir      string            `yaml:"workdir"`      // Working directory inside the image.
	Env          map[string]string `yaml:"env"`          // Environment applied to install and launch.
	Dependencies Dependencies      `yaml:"dependencies"` // Dependency manifest and installer.
	Source       string            `yaml:"source"`       // Root of the application source tree.
	Entrypoint   Entrypoint        `yaml:"entrypoint"`   // Process started on container start.
}

// Names the dependency manifest and the command that installs it.
type Dependencies struct {
	Manifest  string `yaml:"manifest"`  // Path to the name/version manifest file.
	Installer string `yaml:"installer"` // Install command; package specs are appended.
}

// The fixed process configuration baked into the image.
//
// Set once at build time, read once at container start, immutable for the
// life of the running process.
type Entrypoint struct {
	Launcher  string `yaml:"launcher"`  // Server-launch mechanism (e.g., "uvicorn").
	Module    string `yaml:"module"`    // Importable module containing the application object.
	Attribute string `yaml:"attribute"` // Name of the application object within the module.
	Host      string `yaml:"host"`      // Bind host (a loopback address).
	Port      int    `yaml:"port"`      // Bind port.
}

// Renders the startup command for the image.
//
// The command names the launcher, the module:attribute target, and the fixed
// bind host and port, in that order.
func (e Entrypoint) Command() []string {
	return []string{
		e.Launcher,
		e.Module + ":" + e.Attribute,
		"--host", e.Host,
		"--port", strconv.Itoa(e.Port),
	}
}

// Returns the bind address in host:port form.
func (e Entrypoint) Address() string {
	return fmt.Sprintf("%s:%d", e.Host, e.Port)
}

// Reads and validates an image descriptor from a YAML file.
//
// Unknown fields are rejected. The base archive, dependency manifest, and
// source paths are resolved relative to the descriptor's directory so the
// caller can use the descriptor from any working directory.
func LoadDescriptor(path string) (*Descriptor, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrManifest, err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)

	var d Descriptor
	if err := dec.Decode(&d); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrManifest, path, err)
	}

	if err := d.validate(); err != nil {
		return nil, err
	}

	dir := filepath.Dir(path)
	d.Base = resolve(dir, d.Base)
	d.Dependencies.Manifest = resolve(dir, d.Dependencies.Manifest)
	d.Source = resolve(dir, d.Source)

	return &d, nil
}

// Checks the descriptor for missing or out-of-range fields.
func (d *Descriptor) validate() error {
	switch {
	case d.Image == "":
		return fmt.Errorf("%w: image name is required", ErrManifest)
	case d.Base == "":
		return fmt.Errorf("%w: base archive is required", ErrManifest)
	case d.Workdir == "" || !filepath.IsAbs(d.Workdir):
		return fmt.Errorf("%w: workdir must be an absolute path, got %q", ErrManifest, d.Workdir)
	case d.Dependencies.Manifest == "":
		return fmt.Errorf("%w: dependency manifest is required", ErrManifest)
	case d.Dependencies.Installer == "":
		return fmt.Errorf("%w: installer command is required", ErrManifest)
	case d.Source == "":
		return fmt.Errorf("%w: source root is required", ErrManifest)
	}
	return d.Entrypoint.validate()
}

// Checks the entry-point tuple for missing or out-of-range fields.
func (e Entrypoint) validate() error {
	switch {
	case e.Launcher == "":
		return fmt.Errorf("%w: entrypoint launcher is required", ErrManifest)
	case e.Module == "":
		return fmt.Errorf("%w: entrypoint module is required", ErrManifest)
	case e.Attribute == "":
		return fmt.Errorf("%w: entrypoint attribute is required", ErrManifest)
	case e.Host == "":
		return fmt.Errorf("%w: entrypoint host is required", ErrManifest)
	case e.Port < 1 || e.Port > 65535:
		return fmt.Errorf("%w: entrypoint port %d out of range", ErrManifest, e.Port)
	}
	return nil
}

// Joins a relative path with the descriptor directory. Absolute paths are
// returned unchanged.
func resolve(dir, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(dir, path)
}
