package manifest

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

// Writes a dependency manifest into a temp directory.
func writeDeps(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "requirements.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadDependencies(t *testing.T) {
	path := writeDeps(t, "uvicorn: 0.29.0\nfastapi: 0.110.0\nmotor: 3.4.0\n")

	deps, err := LoadDependencies(path)
	if err != nil {
		t.Fatalf("LoadDependencies: %v", err)
	}
	if deps.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", deps.Len())
	}

	want := []Dependency{
		{Name: "fastapi", Version: "0.110.0"},
		{Name: "motor", Version: "3.4.0"},
		{Name: "uvicorn", Version: "0.29.0"},
	}
	if got := deps.Sorted(); !reflect.DeepEqual(got, want) {
		t.Fatalf("Sorted() = %v, want %v", got, want)
	}
}

func TestLoadDependenciesEmpty(t *testing.T) {
	deps, err := LoadDependencies(writeDeps(t, ""))
	if err != nil {
		t.Fatalf("LoadDependencies: %v", err)
	}
	if deps.Len() != 0 {
		t.Fatalf("Len() = %d, want 0", deps.Len())
	}
}

func TestLoadDependenciesMissing(t *testing.T) {
	if _, err := LoadDependencies(filepath.Join(t.TempDir(), "absent.yaml")); !errors.Is(err, ErrManifest) {
		t.Fatalf("LoadDependencies = %v, want ErrManifest", err)
	}
}

func TestLoadDependenciesNonScalar(t *testing.T) {
	if _, err := LoadDependencies(writeDeps(t, "fastapi:\n  pinned: true\n")); !errors.Is(err, ErrManifest) {
		t.Fatalf("LoadDependencies = %v, want ErrManifest", err)
	}
}

func TestDependencySpec(t *testing.T) {
	if got := (Dependency{Name: "fastapi", Version: "0.110.0"}).Spec(); got != "fastapi==0.110.0" {
		t.Errorf("Spec() = %q, want %q", got, "fastapi==0.110.0")
	}
	if got := (Dependency{Name: "fastapi"}).Spec(); got != "fastapi" {
		t.Errorf("Spec() = %q, want %q", got, "fastapi")
	}
}

func TestInstallCommand(t *testing.T) {
	deps, err := LoadDependencies(writeDeps(t, "uvicorn: 0.29.0\nfastapi: 0.110.0\n"))
	if err != nil {
		t.Fatal(err)
	}

	want := "pip install --no-cache-dir fastapi==0.110.0 uvicorn==0.29.0"
	if got := deps.InstallCommand("pip install --no-cache-dir"); got != want {
		t.Fatalf("InstallCommand() = %q, want %q", got, want)
	}
}
