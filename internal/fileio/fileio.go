// Package fileio is the filesystem boundary of the sync engine.
//
// Everything the engine reads or writes goes through FileIO so tests can
// substitute an in-memory implementation and count operations.
package fileio

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// BOM is the UTF-8 byte order mark written at the start of every document.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// FileIO is the file capability consumed by the engine.
type FileIO interface {
	// Exists reports whether path names an existing file.
	Exists(path string) bool

	// ReadAllText returns the file content without a leading BOM.
	ReadAllText(path string) (string, error)

	// WriteAllText replaces the file content, creating parent directories.
	WriteAllText(path, content string) error

	// Delete removes the file. Deleting a missing file is not an error.
	Delete(path string) error
}

// OS implements FileIO on the local filesystem.
type OS struct {
	// NoBOM disables the byte order mark on write.
	NoBOM bool
}

// NewOS returns a FileIO that writes UTF-8 with a BOM.
func NewOS() *OS {
	return &OS{}
}

// Exists implements FileIO.
func (o *OS) Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// ReadAllText implements FileIO.
func (o *OS) ReadAllText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(bytes.TrimPrefix(data, BOM)), nil
}

// WriteAllText implements FileIO.
//
// The content goes to a temp file in the target directory first and is then
// renamed over the target, so readers never observe a partial document.
func (o *OS) WriteAllText(path, content string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create dir %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp for %s: %w", path, err)
	}
	tmpName := tmp.Name()
	defer func() {
		// No-op after a successful rename.
		_ = os.Remove(tmpName)
	}()

	if !o.NoBOM {
		if _, err := tmp.Write(BOM); err != nil {
			tmp.Close()
			return fmt.Errorf("write %s: %w", path, err)
		}
	}
	if _, err := tmp.WriteString(content); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("chmod %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("rename %s: %w", path, err)
	}
	return nil
}

// Delete implements FileIO.
func (o *OS) Delete(path string) error {
	err := os.Remove(path)
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("delete %s: %w", path, err)
}
