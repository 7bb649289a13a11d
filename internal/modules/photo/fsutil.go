package photo

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// clearDir removes everything inside root but keeps root. Individual failures
// are skipped after relaxing permissions; only an unreadable root is an error.
// Symlinks are removed without following them.
func clearDir(root string) error {
	entries, err := os.ReadDir(root)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		removeBestEffort(filepath.Join(root, entry.Name()), entry.Type())
	}
	return nil
}

func removeBestEffort(path string, typ fs.FileMode) {
	switch {
	case typ&fs.ModeSymlink != 0:
		_ = os.Remove(path)
		return
	case !typ.IsDir():
		_ = os.Chmod(path, 0o666)
		_ = os.Remove(path)
		return
	}
	_ = os.Chmod(path, 0o777)
	if entries, err := os.ReadDir(path); err == nil {
		for _, entry := range entries {
			removeBestEffort(filepath.Join(path, entry.Name()), entry.Type())
		}
	}
	_ = os.Remove(path)
}

// copyTree copies the contents of src into dst, overwriting files and
// preserving mode and modification time. A missing src copies nothing.
func copyTree(src, dst string) error {
	if _, err := os.Stat(src); errors.Is(err, fs.ErrNotExist) {
		return os.MkdirAll(dst, 0o755)
	}
	return filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)

		info, err := os.Stat(path)
		if err != nil {
			return err
		}
		switch {
		case d.IsDir():
			return os.MkdirAll(target, info.Mode().Perm()|0o700)
		case info.IsDir():
			// symlinked directory
			return nil
		default:
			return copyFile(path, target, info)
		}
	})
}

func copyFile(src, dst string, info fs.FileInfo) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm()|0o200)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	_ = os.Chmod(dst, info.Mode().Perm())
	return os.Chtimes(dst, info.ModTime(), info.ModTime())
}
