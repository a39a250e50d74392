// Package fsys is the filesystem gateway the detectors read projects through.
// All paths are absolute OS paths.
package fsys

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// ErrNotFound is returned by ReadJSON when the file does not exist
var ErrNotFound = fs.ErrNotExist

// ParseError reports a file that exists but could not be decoded
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// FS is the set of primitives the detection pipeline needs
type FS interface {
	FindUp(names []string, cwd, stopAt string) (string, error)
	FindUpMultiple(name, cwd, stopAt string) ([]string, error)
	ReadJSON(path string, v any) error
	GracefullyReadFile(path string) (string, error)
	Exists(path string) bool
	IsDir(path string) bool
	Glob(dir, pattern string) ([]string, error)
}

// OS implements FS on top of the local filesystem
type OS struct{}

// NewOS returns the local filesystem gateway
func NewOS() *OS {
	return &OS{}
}

// FindUp returns the first path matching any of names, searching cwd and then
// each parent until stopAt (inclusive) or the filesystem root. Names may be
// glob patterns. An empty string means nothing was found.
func (o *OS) FindUp(names []string, cwd, stopAt string) (string, error) {
	var found string
	err := walkUp(cwd, stopAt, func(dir string) (bool, error) {
		for _, name := range names {
			match, err := o.matchIn(dir, name)
			if err != nil {
				return false, err
			}
			if match != "" {
				found = match
				return true, nil
			}
		}
		return false, nil
	})
	return found, err
}

// FindUpMultiple returns every ancestor match of name, nearest first
func (o *OS) FindUpMultiple(name, cwd, stopAt string) ([]string, error) {
	var found []string
	err := walkUp(cwd, stopAt, func(dir string) (bool, error) {
		match, err := o.matchIn(dir, name)
		if err != nil {
			return false, err
		}
		if match != "" {
			found = append(found, match)
		}
		return false, nil
	})
	return found, err
}

// ReadJSON decodes the file at path into v. Missing files wrap ErrNotFound,
// malformed content is a *ParseError.
func (o *OS) ReadJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("read %s: %w", path, ErrNotFound)
		}
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return &ParseError{Path: path, Err: err}
	}
	return nil
}

// GracefullyReadFile returns "" with a nil error when the file is missing
func (o *OS) GracefullyReadFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(data), nil
}

// Exists checks if anything exists at path
func (o *OS) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// IsDir checks if a directory exists at path
func (o *OS) IsDir(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.IsDir()
}

// Glob expands a doublestar pattern relative to dir and returns slash
// separated paths relative to dir, in lexical order.
func (o *OS) Glob(dir, pattern string) ([]string, error) {
	matches, err := doublestar.Glob(os.DirFS(dir), pattern, doublestar.WithFailOnIOErrors())
	if err != nil {
		return nil, fmt.Errorf("glob %q in %s: %w", pattern, dir, err)
	}
	return matches, nil
}

func (o *OS) matchIn(dir, name string) (string, error) {
	if !isPattern(name) {
		p := filepath.Join(dir, name)
		if _, err := os.Stat(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrPermission) {
				return "", nil
			}
			return "", err
		}
		return p, nil
	}

	matches, err := doublestar.Glob(os.DirFS(dir), name)
	if err != nil {
		return "", fmt.Errorf("glob %q in %s: %w", name, dir, err)
	}
	if len(matches) == 0 {
		return "", nil
	}
	return filepath.Join(dir, filepath.FromSlash(matches[0])), nil
}

// walkUp calls visit for cwd and each parent directory. It stops when visit
// returns true, after visiting stopAt, or at the filesystem root.
func walkUp(cwd, stopAt string, visit func(dir string) (bool, error)) error {
	dir := filepath.Clean(cwd)
	if stopAt != "" {
		stopAt = filepath.Clean(stopAt)
	}
	for {
		done, err := visit(dir)
		if err != nil || done {
			return err
		}
		if dir == stopAt {
			return nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return nil
		}
		dir = parent
	}
}

func isPattern(name string) bool {
	return strings.ContainsAny(name, "*?[{")
}
