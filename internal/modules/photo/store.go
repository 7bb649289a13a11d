package photo

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"
)

const maxCollisionAttempts = 100

// LocalStore keeps the gallery as files in dir, seeded from origin. Directory
// membership is the source of truth. Operations are not synchronised.
type LocalStore struct {
	origin string
	dir    string
	now    func() time.Time
}

func NewLocalStore(origin, dir string) *LocalStore {
	return &LocalStore{origin: origin, dir: dir, now: time.Now}
}

func (s *LocalStore) Dir() string { return s.dir }

// EnsureSeeded copies origin into the working directory the first time it is
// needed. Once the directory exists, even empty, it is never reseeded.
func (s *LocalStore) EnsureSeeded() error {
	_, err := os.Stat(s.dir)
	if err == nil {
		return nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}

	if info, err := os.Stat(s.origin); err == nil && info.IsDir() {
		if err := copyTree(s.origin, s.dir); err != nil {
			return fmt.Errorf("%w: seed: %w", ErrIO, err)
		}
		return nil
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}
	return nil
}

func (s *LocalStore) List() ([]Photo, error) {
	if err := s.EnsureSeeded(); err != nil {
		return nil, err
	}
	return listImages(s.dir)
}

// Upload stores r under a sanitised form of filename and returns the stored
// name. An existing file is never overwritten; the new upload is renamed.
func (s *LocalStore) Upload(filename string, r io.Reader) (string, error) {
	if r == nil || strings.TrimSpace(filename) == "" {
		return "", ErrNoFile
	}
	if !isAllowed(filename) {
		return "", ErrExtNotAllowed
	}
	if err := s.EnsureSeeded(); err != nil {
		return "", err
	}

	name := storedName(filename)
	f, name, err := s.createExclusive(name)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrIO, err)
	}

	target := filepath.Join(s.dir, name)
	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		_ = os.Remove(target)
		return "", fmt.Errorf("%w: write %s: %w", ErrIO, name, err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(target)
		return "", fmt.Errorf("%w: close %s: %w", ErrIO, name, err)
	}
	return name, nil
}

func (s *LocalStore) createExclusive(name string) (*os.File, string, error) {
	const flags = os.O_WRONLY | os.O_CREATE | os.O_EXCL
	f, err := os.OpenFile(filepath.Join(s.dir, name), flags, 0o644)
	if err == nil {
		return f, name, nil
	}
	if !errors.Is(err, fs.ErrExist) {
		return nil, "", err
	}

	stamp := strconv.FormatInt(s.now().Unix(), 10)
	candidate := collisionName(name, stamp)
	for i := 1; i <= maxCollisionAttempts; i++ {
		f, err = os.OpenFile(filepath.Join(s.dir, candidate), flags, 0o644)
		if err == nil {
			return f, candidate, nil
		}
		if !errors.Is(err, fs.ErrExist) {
			return nil, "", err
		}
		candidate = collisionName(name, stamp+"_"+strconv.Itoa(i))
	}
	return nil, "", fmt.Errorf("no free name for %s", name)
}

func (s *LocalStore) Delete(filename string) error {
	name, err := checkName(filename)
	if err != nil {
		return err
	}
	if err := s.EnsureSeeded(); err != nil {
		return err
	}

	target := filepath.Join(s.dir, name)
	info, err := os.Stat(target)
	if errors.Is(err, fs.ErrNotExist) || (err == nil && info.IsDir()) {
		return ErrPhotoNotFound
	}
	if err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}
	if err := os.Remove(target); err != nil {
		return fmt.Errorf("%w: remove %s: %w", ErrIO, name, err)
	}
	return nil
}

// ResetToOrigin empties the working directory and copies origin back in.
// There is no rollback: a failed copy leaves a partial gallery.
func (s *LocalStore) ResetToOrigin() error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("%w: %w", ErrClearFailed, err)
	}
	if err := clearDir(s.dir); err != nil {
		return fmt.Errorf("%w: %w", ErrClearFailed, err)
	}
	if err := copyTree(s.origin, s.dir); err != nil {
		return fmt.Errorf("%w: %w", ErrRestoreFailed, err)
	}
	return nil
}

// Path resolves filename to a file inside the working directory.
func (s *LocalStore) Path(filename string) (string, error) {
	name, err := checkName(filename)
	if err != nil {
		return "", err
	}
	if err := s.EnsureSeeded(); err != nil {
		return "", err
	}
	target := filepath.Join(s.dir, name)
	info, err := os.Stat(target)
	if err != nil || info.IsDir() {
		return "", ErrPhotoNotFound
	}
	return target, nil
}

// listImages returns allowed image files directly in dir, sorted
// case-insensitively. A missing dir yields an empty list.
func listImages(dir string) ([]Photo, error) {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return []Photo{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}

	photos := make([]Photo, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !isAllowed(entry.Name()) {
			continue
		}
		p := Photo{Name: entry.Name()}
		if info, err := entry.Info(); err == nil {
			p.Version = info.ModTime().Unix()
		}
		photos = append(photos, p)
	}
	sort.SliceStable(photos, func(i, j int) bool {
		a, b := strings.ToLower(photos[i].Name), strings.ToLower(photos[j].Name)
		if a == b {
			return photos[i].Name < photos[j].Name
		}
		return a < b
	})
	return photos, nil
}

// Gallery is a read-only image directory.
type Gallery struct {
	dir string
}

func NewGallery(dir string) *Gallery {
	return &Gallery{dir: dir}
}

func (g *Gallery) List() ([]Photo, error) {
	return listImages(g.dir)
}
