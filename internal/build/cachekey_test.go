package build

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/TheMisteMince/MVP-API/internal/manifest"
	"github.com/opencontainers/go-digest"
)

// Writes a dependency manifest to a temp file and loads it.
func loadDeps(t *testing.T, content string) *manifest.DependencySet {
	t.Helper()
	path := filepath.Join(t.TempDir(), "requirements.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	deps, err := manifest.LoadDependencies(path)
	if err != nil {
		t.Fatalf("LoadDependencies: %v", err)
	}
	return deps
}

func testDescriptor() *manifest.Descriptor {
	return &manifest.Descriptor{
		Image:   "mvp-api",
		Base:    "base.tar",
		Workdir: "/opt/app",
		Dependencies: manifest.Dependencies{
			Manifest:  "requirements.yaml",
			Installer: "pip install --no-cache-dir",
		},
		Source: ".",
		Entrypoint: manifest.Entrypoint{
			Launcher:  "uvicorn",
			Module:    "main",
			Attribute: "app",
			Host:      "127.0.0.1",
			Port:      8000,
		},
	}
}

func TestDependencyLayerKeyDeterministic(t *testing.T) {
	base := digest.FromString("base")
	deps := loadDeps(t, "fastapi: 0.110.0\nuvicorn: 0.29.0\n")

	a := dependencyLayerKey(base, testDescriptor(), deps)
	b := dependencyLayerKey(base, testDescriptor(), deps)

	if a != b {
		t.Fatalf("key not deterministic: %s != %s", a, b)
	}
}

func TestDependencyLayerKeyOrderIndependent(t *testing.T) {
	base := digest.FromString("base")
	forward := loadDeps(t, "fastapi: 0.110.0\nuvicorn: 0.29.0\n")
	reversed := loadDeps(t, "uvicorn: 0.29.0\nfastapi: 0.110.0\n")

	a := dependencyLayerKey(base, testDescriptor(), forward)
	b := dependencyLayerKey(base, testDescriptor(), reversed)

	if a != b {
		t.Fatalf("key depends on declaration order: %s != %s", a, b)
	}
}

func TestDependencyLayerKeyIgnoresSource(t *testing.T) {
	base := digest.FromString("base")
	deps := loadDeps(t, "fastapi: 0.110.0\n")

	d1 := testDescriptor()
	d2 := testDescriptor()
	d2.Source = "some/other/tree"
	d2.Entrypoint.Module = "other"

	a := dependencyLayerKey(base, d1, deps)
	b := dependencyLayerKey(base, d2, deps)

	if a != b {
		t.Fatalf("key changed with source tree: %s != %s", a, b)
	}
}

func TestDependencyLayerKeySensitivity(t *testing.T) {
	base := digest.FromString("base")
	deps := loadDeps(t, "fastapi: 0.110.0\n")
	want := dependencyLayerKey(base, testDescriptor(), deps)

	t.Run("dependency version", func(t *testing.T) {
		bumped := loadDeps(t, "fastapi: 0.111.0\n")
		if got := dependencyLayerKey(base, testDescriptor(), bumped); got == want {
			t.Fatal("key unchanged after version bump")
		}
	})

	t.Run("added dependency", func(t *testing.T) {
		extra := loadDeps(t, "fastapi: 0.110.0\nmotor: 3.4.0\n")
		if got := dependencyLayerKey(base, testDescriptor(), extra); got == want {
			t.Fatal("key unchanged after adding dependency")
		}
	})

	t.Run("installer command", func(t *testing.T) {
		d := testDescriptor()
		d.Dependencies.Installer = "pip install"
		if got := dependencyLayerKey(base, d, deps); got == want {
			t.Fatal("key unchanged after installer change")
		}
	})

	t.Run("base digest", func(t *testing.T) {
		other := digest.FromString("other-base")
		if got := dependencyLayerKey(other, testDescriptor(), deps); got == want {
			t.Fatal("key unchanged after base change")
		}
	})

	t.Run("build environment", func(t *testing.T) {
		d := testDescriptor()
		d.Env = map[string]string{"PIP_INDEX_URL": "https://mirror.example"}
		if got := dependencyLayerKey(base, d, deps); got == want {
			t.Fatal("key unchanged after env change")
		}
	})
}

func TestArchiveDigest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "base.tar")
	if err := os.WriteFile(path, []byte("archive-bytes"), 0644); err != nil {
		t.Fatal(err)
	}

	got, err := archiveDigest(path)
	if err != nil {
		t.Fatalf("archiveDigest: %v", err)
	}
	if want := digest.FromString("archive-bytes"); got != want {
		t.Fatalf("digest = %s, want %s", got, want)
	}
}

func TestArchiveDigestMissingFile(t *testing.T) {
	if _, err := archiveDigest(filepath.Join(t.TempDir(), "absent.tar")); err == nil {
		t.Fatal("expected error for missing archive")
	}
}
