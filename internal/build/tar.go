package build

import (
	"archive/tar"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/TheMisteMince/MVP-API/internal/runtime"
)

// Copies a single file from the host into the container's destDir.
//
// The file keeps its base name. Used for the dependency manifest, which is
// copied alone before the rest of the source tree.
func copyFile(ctx context.Context, ctr *runtime.Container, src, destDir string) error {
	info, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrCopy, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%w: %s is a directory", ErrCopy, src)
	}

	return streamTar(ctx, ctr, destDir, func(tw *tar.Writer) error {
		return writeFileToTar(tw, src, filepath.Base(src))
	})
}

// Copies the contents of a host directory into the container's destDir.
//
// Entries are archived relative to the directory root, so the tree overlays
// destDir directly rather than appearing under an extra path component.
func copyTree(ctx context.Context, ctr *runtime.Container, srcDir, destDir string) error {
	info, err := os.Stat(srcDir)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrCopy, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", ErrCopy, srcDir)
	}

	return streamTar(ctx, ctr, destDir, func(tw *tar.Writer) error {
		return writeDirToTar(tw, srcDir)
	})
}

// Pipes a tar stream produced by write into the container at destDir.
func streamTar(ctx context.Context, ctr *runtime.Container, destDir string, write func(*tar.Writer) error) error {
	pr, pw := io.Pipe()

	go func() {
		tw := tar.NewWriter(pw)
		writeErr := write(tw)
		tw.Close()
		pw.CloseWithError(writeErr)
	}()

	if err := ctr.CopyTo(ctx, pr, destDir); err != nil {
		return fmt.Errorf("%w: %w", ErrCopy, err)
	}

	return nil
}

// Writes a directory tree to a tar writer, entries relative to hostDir.
//
// WalkDir visits entries in lexical order, so the archive layout is
// deterministic for identical input trees.
func writeDirToTar(tw *tar.Writer, hostDir string) error {
	return filepath.WalkDir(hostDir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == hostDir {
			return nil
		}

		relPath, err := filepath.Rel(hostDir, path)
		if err != nil {
			return err
		}

		return writeTarEntry(tw, path, filepath.ToSlash(relPath), d)
	})
}

// Writes a single file, directory, or symlink entry to a tar writer.
func writeTarEntry(tw *tar.Writer, hostPath, archivePath string, d os.DirEntry) error {
	info, err := d.Info()
	if err != nil {
		return err
	}

	// Symlink headers need the link target or they extract as dangling links.
	var link string
	if info.Mode()&os.ModeSymlink != 0 {
		link, err = os.Readlink(hostPath)
		if err != nil {
			return err
		}
	}

	header, err := tar.FileInfoHeader(info, link)
	if err != nil {
		return err
	}
	header.Name = archivePath

	if err := tw.WriteHeader(header); err != nil {
		return err
	}

	if info.Mode().IsRegular() {
		f, err := os.Open(hostPath)
		if err != nil {
			return err
		}
		defer f.Close()
		_, err = io.Copy(tw, f)
		return err
	}

	return nil
}

// Writes a single file to a tar writer with the given archive name.
func writeFileToTar(tw *tar.Writer, hostPath, name string) error {
	info, err := os.Stat(hostPath)
	if err != nil {
		return err
	}

	header, err := tar.FileInfoHeader(info, "")
	if err != nil {
		return err
	}
	header.Name = name

	if err := tw.WriteHeader(header); err != nil {
		return err
	}

	f, err := os.Open(hostPath)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = io.Copy(tw, f)
	return err
}
