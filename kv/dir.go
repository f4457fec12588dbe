package kv

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Dir is a Store keeping each key in its own "<key>.json" file of a
// directory.
//
// Values are written to a temporary file renamed over the previous one, so a
// failed write leaves the previous value intact.
type Dir struct {
	path string
}

// NewDir returns a Dir store rooted at path. The directory is created on the
// first Set.
func NewDir(path string) (*Dir, error) {
	if path == "" {
		return nil, errors.New("empty storage directory")
	}
	return &Dir{path: path}, nil
}

// Path returns the root directory.
func (d *Dir) Path() string { return d.path }

func (d *Dir) file(key string) (string, error) {
	if key == "" || strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return "", fmt.Errorf("invalid key %q", key)
	}
	return filepath.Join(d.path, key+".json"), nil
}

func (d *Dir) Get(key string) (string, bool, error) {
	name, err := d.file(key)
	if err != nil {
		return "", false, err
	}
	data, err := os.ReadFile(name)
	if errors.Is(err, fs.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("could not read %q: %w", name, err)
	}
	return string(data), true, nil
}

func (d *Dir) Set(key, value string) error {
	name, err := d.file(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(d.path, 0755); err != nil {
		return fmt.Errorf("could not create storage directory %q: %w", d.path, err)
	}
	tmp, err := os.CreateTemp(d.path, key+".*.tmp")
	if err != nil {
		return fmt.Errorf("error opening temporary file for %q: %w", name, err)
	}
	defer os.Remove(tmp.Name()) // no-op once renamed

	if _, err := tmp.WriteString(value); err != nil {
		tmp.Close()
		return fmt.Errorf("could not write %q: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("could not write %q: %w", name, err)
	}
	if err := os.Rename(tmp.Name(), name); err != nil {
		return fmt.Errorf("could not replace %q: %w", name, err)
	}
	return nil
}

func (d *Dir) Remove(key string) error {
	name, err := d.file(key)
	if err != nil {
		return err
	}
	if err := os.Remove(name); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("could not remove %q: %w", name, err)
	}
	return nil
}
