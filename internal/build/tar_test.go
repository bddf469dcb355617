package build

import (
	"archive/tar"
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"
)

// Builds a small source tree for archive tests.
func writeTree(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	if err := os.MkdirAll(filepath.Join(dir, "pkg"), 0755); err != nil {
		t.Fatal(err)
	}
	files := map[string]string{
		"main.py":       "app = object()\n",
		"pkg/helper.py": "def help(): pass\n",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

// Reads all entries from a tar stream into name -> content.
func readTar(t *testing.T, b []byte) map[string]string {
	t.Helper()
	entries := make(map[string]string)

	tr := tar.NewReader(bytes.NewReader(b))
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatal(err)
		}
		content, err := io.ReadAll(tr)
		if err != nil {
			t.Fatal(err)
		}
		entries[hdr.Name] = string(content)
	}
	return entries
}

func archiveDir(t *testing.T, dir string) []byte {
	t.Helper()
	var buf bytes.Buffer
	tw := tar.NewWriter(&buf)
	if err := writeDirToTar(tw, dir); err != nil {
		t.Fatalf("writeDirToTar: %v", err)
	}
	tw.Close()
	return buf.Bytes()
}

func TestWriteDirToTarLayout(t *testing.T) {
	dir := writeTree(t)
	entries := readTar(t, archiveDir(t, dir))

	if got := entries["main.py"]; got != "app = object()\n" {
		t.Fatalf("main.py content = %q", got)
	}
	if got := entries["pkg/helper.py"]; got != "def help(): pass\n" {
		t.Fatalf("pkg/helper.py content = %q", got)
	}
	if _, ok := entries[filepath.Base(dir)]; ok {
		t.Fatal("archive contains the root directory as an entry")
	}
}

func TestWriteDirToTarSymlink(t *testing.T) {
	dir := writeTree(t)
	if err := os.Symlink("main.py", filepath.Join(dir, "app.py")); err != nil {
		t.Fatal(err)
	}

	tr := tar.NewReader(bytes.NewReader(archiveDir(t, dir)))
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatal(err)
		}
		if hdr.Name != "app.py" {
			continue
		}
		if hdr.Typeflag != tar.TypeSymlink {
			t.Fatalf("app.py typeflag = %v, want symlink", hdr.Typeflag)
		}
		if hdr.Linkname != "main.py" {
			t.Fatalf("app.py linkname = %q, want %q", hdr.Linkname, "main.py")
		}
		return
	}
	t.Fatal("archive is missing the symlink entry")
}

func TestWriteDirToTarDeterministic(t *testing.T) {
	dir := writeTree(t)

	a := archiveDir(t, dir)
	b := archiveDir(t, dir)

	if !bytes.Equal(a, b) {
		t.Fatal("identical trees produced different archives")
	}
}

func TestWriteFileToTarName(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "requirements.yaml")
	if err := os.WriteFile(src, []byte("fastapi: 0.110.0\n"), 0644); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	tw := tar.NewWriter(&buf)
	if err := writeFileToTar(tw, src, "requirements.yaml"); err != nil {
		t.Fatalf("writeFileToTar: %v", err)
	}
	tw.Close()

	entries := readTar(t, buf.Bytes())
	if len(entries) != 1 {
		t.Fatalf("len(entries) = %d, want 1", len(entries))
	}
	if got := entries["requirements.yaml"]; got != "fastapi: 0.110.0\n" {
		t.Fatalf("content = %q", got)
	}
}
