// Package kv provides key-value backends for the todo store.
package kv

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"syscall"
)

// ErrInvalidKey is returned when a key has no usable file name.
var ErrInvalidKey = errors.New("invalid key")

var unsafeKeyChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// File stores each key in its own JSON file inside a directory.
// Every call holds an exclusive flock on a shared lock file, and writes go
// through a temp file and rename so readers never see a partial value.
type File struct {
	dir string
}

// NewFile returns a File backend rooted at dir. The directory is created on
// first write.
func NewFile(dir string) *File {
	return &File{dir: dir}
}

// Dir returns the backend directory.
func (f *File) Dir() string {
	return f.dir
}

// Path returns the file holding key.
func (f *File) Path(key string) (string, error) {
	name := strings.Trim(unsafeKeyChars.ReplaceAllString(key, "_"), "_.")
	if name == "" {
		return "", fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return filepath.Join(f.dir, name+".json"), nil
}

func (f *File) lockPath() string {
	return filepath.Join(f.dir, "kv.lock")
}

// Get reads key. ok is false when no file exists for it.
func (f *File) Get(ctx context.Context, key string) ([]byte, bool, error) {
	path, err := f.Path(key)
	if err != nil {
		return nil, false, err
	}
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	if _, err := os.Stat(f.dir); os.IsNotExist(err) {
		return nil, false, nil
	}

	var data []byte
	var ok bool
	err = f.withLock(func() error {
		read, err := os.ReadFile(path)
		if os.IsNotExist(err) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read %s: %w", filepath.Base(path), err)
		}
		data, ok = read, true
		return nil
	})
	return data, ok, err
}

// Set replaces the value of key. Writing an identical value is skipped.
func (f *File) Set(ctx context.Context, key string, value []byte) error {
	path, err := f.Path(key)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(f.dir, 0755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	return f.withLock(func() error {
		if existing, err := os.ReadFile(path); err == nil {
			if bytes.Equal(existing, value) {
				return nil
			}
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("read %s: %w", filepath.Base(path), err)
		}
		return writeAtomic(path, value)
	})
}

// Remove deletes key. Removing a missing key is not an error.
func (f *File) Remove(ctx context.Context, key string) error {
	path, err := f.Path(key)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := os.Stat(f.dir); os.IsNotExist(err) {
		return nil
	}

	return f.withLock(func() error {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("remove %s: %w", filepath.Base(path), err)
		}
		return nil
	})
}

func (f *File) withLock(fn func() error) error {
	lockFile, err := os.OpenFile(f.lockPath(), os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return fmt.Errorf("open lock file: %w", err)
	}
	defer lockFile.Close()

	if err := syscall.Flock(int(lockFile.Fd()), syscall.LOCK_EX); err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	defer syscall.Flock(int(lockFile.Fd()), syscall.LOCK_UN)

	return fn()
}

func writeAtomic(path string, data []byte) error {
	tmpFile, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	name := tmpFile.Name()
	_, err = tmpFile.Write(data)
	if err1 := tmpFile.Close(); err1 != nil && err == nil {
		err = err1
	}
	if err != nil {
		os.Remove(name)
		return fmt.Errorf("write temp file: %w", err)
	}

	if err := os.Rename(name, path); err != nil {
		os.Remove(name)
		return fmt.Errorf("rename %s: %w", filepath.Base(path), err)
	}
	return nil
}
