package storage

import (
	"context"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

type FileSystem struct {
	perm os.FileMode

	existsMu sync.RWMutex
	exists   map[string]struct{}
}

var _ Engine = (*FileSystem)(nil)

func NewFileSystem() *FileSystem {
	return &FileSystem{
		perm:   0666,
		exists: make(map[string]struct{}),
	}
}

func (f *FileSystem) Get(_ context.Context, path string) (io.ReadCloser, error) {
	r, err := os.Open(path)
	if err != nil {
		return nil, fileErr(err)
	}
	return r, nil
}

// Put truncates or creates path, making its directory if needed.
func (f *FileSystem) Put(_ context.Context, path string) (io.WriteCloser, error) {
	if err := f.checkPath(path); err != nil {
		return nil, fileErr(err)
	}
	w, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, f.perm)
	if err != nil {
		return nil, fileErr(err)
	}
	return w, nil
}

func (f *FileSystem) Exists(_ context.Context, path string) (bool, error) {
	_, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fileErr(err)
	}
	return true, nil
}

// List returns the paths of the files below dir whose names match the
// glob pattern.
func (f *FileSystem) List(_ context.Context, dir, pattern string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ok, err := filepath.Match(pattern, d.Name())
		if ok {
			paths = append(paths, path)
		}
		return err
	})
	return paths, fileErr(err)
}

func (f *FileSystem) checkPath(path string) error {
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	f.existsMu.RLock()
	_, ok := f.exists[dir]
	f.existsMu.RUnlock()
	if ok {
		return nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	f.existsMu.Lock()
	f.exists[dir] = struct{}{}
	f.existsMu.Unlock()
	return nil
}

func fileErr(err error) error {
	if os.IsNotExist(err) {
		return fs.ErrNotExist
	}
	return err
}
