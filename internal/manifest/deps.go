package manifest

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// A single declared dependency.
type Dependency struct {
	Name    string // Package name.
	Version string // Version constraint. Empty means unpinned.
}

// Returns the package spec passed to the installer (e.g., "fastapi==0.110.0").
func (d Dependency) Spec() string {
	if d.Version == "" {
		return d.Name
	}
	return d.Name + "==" + d.Version
}

// The declared dependency set: package names mapped to version constraints.
//
// The zero value is an empty set.
type DependencySet struct {
	deps map[string]string
}

// Reads a dependency manifest from a YAML file.
//
// The file is a flat mapping of package name to version constraint. An empty
// file yields an empty set; a file with duplicate keys or non-scalar values
// is rejected.
func LoadDependencies(path string) (*DependencySet, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrManifest, err)
	}

	deps := make(map[string]string)
	if err := yaml.Unmarshal(b, &deps); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrManifest, path, err)
	}

	for name := range deps {
		if strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("%w: %s: empty package name", ErrManifest, path)
		}
	}

	return &DependencySet{deps: deps}, nil
}

// Returns the number of declared dependencies.
func (s *DependencySet) Len() int {
	return len(s.deps)
}

// Returns the dependencies sorted by package name.
//
// The ordering is deterministic so that rendered install commands and cache
// keys do not depend on map iteration or manifest line order.
func (s *DependencySet) Sorted() []Dependency {
	deps := make([]Dependency, 0, len(s.deps))
	for name, version := range s.deps {
		deps = append(deps, Dependency{Name: name, Version: version})
	}
	sort.Slice(deps, func(i, j int) bool { return deps[i].Name < deps[j].Name })
	return deps
}

// Renders the full install command for the given installer prefix.
//
// Package specs are appended to the installer command in sorted order.
func (s *DependencySet) InstallCommand(installer string) string {
	parts := []string{installer}
	for _, d := range s.Sorted() {
		parts = append(parts, d.Spec())
	}
	return strings.Join(parts, " ")
}
