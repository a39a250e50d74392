// Package frameworks holds the framework detectors and the relevance
// resolver that picks the frameworks that matter for each package.
package frameworks

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"

	"golang.org/x/sync/errgroup"

	"buildinfo/pkg/detector/fsys"
	"buildinfo/pkg/detector/helpers"
)

// FSReader provides the filesystem primitives framework detection needs
type FSReader interface {
	Exists(path string) bool
	ReadJSON(path string, v any) error
}

// Target is one package to evaluate. Path is the key in the result map,
// empty for a project that is not a workspace.
type Target struct {
	Path string
	Dir  string
}

// PathError is a target that could not be evaluated. Its entry in the
// result is empty.
type PathError struct {
	Path string
	Err  error
}

func (e *PathError) Error() string {
	return fmt.Sprintf("%s: %v", cmp.Or(e.Path, "."), e.Err)
}

func (e *PathError) Unwrap() error {
	return e.Err
}

// Detect evaluates the registry against every target concurrently.
// hoistedDir is the workspace root whose dependencies every member can see,
// or "" when there is none. The result has exactly one entry per target;
// a target that fails is passed to onPathError and keeps an empty entry.
func Detect(ctx context.Context, fs FSReader, targets []Target, hoistedDir string, onPathError func(*PathError)) (map[string][]DetectedFramework, error) {
	return DetectWith(ctx, fs, Registry, targets, hoistedDir, onPathError)
}

// DetectWith is Detect with an explicit registry
func DetectWith(ctx context.Context, fs FSReader, registry []Framework, targets []Target, hoistedDir string, onPathError func(*PathError)) (map[string][]DetectedFramework, error) {
	hoisted := map[string]string{}
	if hoistedDir != "" {
		var err error
		if hoisted, err = loadDependencies(fs, hoistedDir); err != nil {
			return nil, err
		}
	}

	var mu sync.Mutex
	result := make(map[string][]DetectedFramework, len(targets))

	g, ctx := errgroup.WithContext(ctx)
	for _, target := range targets {
		g.Go(func() error {
			detected, err := detectTarget(ctx, fs, registry, target, hoisted)
			if err != nil {
				if ctxErr := ctx.Err(); ctxErr != nil {
					return ctxErr
				}
				if onPathError != nil {
					onPathError(&PathError{Path: target.Path, Err: err})
				}
				detected = []DetectedFramework{}
			}
			mu.Lock()
			result[target.Path] = detected
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return result, nil
}

func detectTarget(ctx context.Context, fs FSReader, registry []Framework, target Target, hoisted map[string]string) (detected []DetectedFramework, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("detection panicked: %v", r)
		}
	}()
	return DetectPath(ctx, fs, registry, target, hoisted)
}

// DetectPath runs every detector against one target and resolves the
// matches. The result is never nil.
func DetectPath(ctx context.Context, fs FSReader, registry []Framework, target Target, hoisted map[string]string) ([]DetectedFramework, error) {
	own, err := loadDependencies(fs, target.Dir)
	if err != nil {
		return nil, err
	}
	deps := helpers.MergeDeps(hoisted, own)

	found := make([]*DetectedFramework, len(registry))

	g, ctx := errgroup.WithContext(ctx)
	for i, fw := range registry {
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("%s detector panicked: %v", fw.ID, r)
				}
			}()
			if err := ctx.Err(); err != nil {
				return err
			}
			detected, ok := NewDetectionBuilder(fw, fs, target.Dir, deps).
				CheckExcludedDependencies().
				CheckDependencies().
				CheckConfigFiles().
				Build(target.Path, i)
			if ok {
				found[i] = &detected
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	matches := []DetectedFramework{}
	for _, d := range found {
		if d != nil {
			matches = append(matches, *d)
		}
	}
	return Resolve(matches), nil
}

// loadDependencies reads dependencies and devDependencies from
// dir/package.json. A missing manifest has no dependencies.
func loadDependencies(fs FSReader, dir string) (map[string]string, error) {
	var pkg struct {
		Dependencies    map[string]string `json:"dependencies"`
		DevDependencies map[string]string `json:"devDependencies"`
	}
	if err := fs.ReadJSON(filepath.Join(dir, "package.json"), &pkg); err != nil {
		if errors.Is(err, fsys.ErrNotFound) {
			return map[string]string{}, nil
		}
		return nil, err
	}

	return helpers.MergeDeps(pkg.Dependencies, pkg.DevDependencies), nil
}
