package photo

import (
	"errors"
	"io"
)

var (
	ErrNoFile        = errors.New("please choose a file")
	ErrExtNotAllowed = errors.New("file extension is not allowed")
	ErrInvalidName   = errors.New("invalid file name")
	ErrPhotoNotFound = errors.New("file does not exist")
	ErrIO            = errors.New("photo storage failure")
	ErrClearFailed   = errors.New("failed to clear the photo directory")
	ErrRestoreFailed = errors.New("failed to restore the original photos")
)

// Photo is a file in a gallery directory. Version is the modification time in
// Unix seconds, 0 when unknown.
type Photo struct {
	Name    string
	Version int64
}

// Item is the public list shape.
type Item struct {
	URL  string `json:"url"`
	Name string `json:"name"`
}

// Store is the mutable gallery.
type Store interface {
	EnsureSeeded() error
	List() ([]Photo, error)
	Upload(filename string, r io.Reader) (string, error)
	Delete(filename string) error
	ResetToOrigin() error
	Path(filename string) (string, error)
}
