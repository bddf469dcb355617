package build

import (
	"os"
	"sort"
	"strings"

	"github.com/TheMisteMince/MVP-API/internal/manifest"
	"github.com/opencontainers/go-digest"
)

// Identifies a cached dependency layer by the content of its inputs.
type layerKey struct {
	digest digest.Digest
}

// Returns the key in canonical digest form (e.g., "sha256:ab12...").
func (k layerKey) String() string {
	return k.digest.String()
}

// Computes the cache key for a dependency layer.
//
// The key covers everything that determines the layer's content: the base
// archive digest, the installer command, the working directory, the build
// environment, and the canonicalized dependency pairs. The application
// source tree is deliberately absent, so unrelated source changes never
// invalidate the layer. Dependency pairs and environment entries are
// serialized in sorted order, making the key independent of declaration
// order.
func dependencyLayerKey(base digest.Digest, d *manifest.Descriptor, deps *manifest.DependencySet) layerKey {
	var b strings.Builder

	b.WriteString("base " + base.String() + "\n")
	b.WriteString("installer " + d.Dependencies.Installer + "\n")
	b.WriteString("workdir " + d.Workdir + "\n")

	env := make([]string, 0, len(d.Env))
	for k, v := range d.Env {
		env = append(env, k+"="+v)
	}
	sort.Strings(env)
	for _, e := range env {
		b.WriteString("env " + e + "\n")
	}

	for _, dep := range deps.Sorted() {
		b.WriteString("dep " + dep.Spec() + "\n")
	}

	return layerKey{digest: digest.FromString(b.String())}
}

// Computes the content digest of an archive file.
func archiveDigest(path string) (digest.Digest, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	return digest.FromReader(f)
}
