// Package workspaces resolves multi-package JavaScript workspaces declared in
// package.json or pnpm-workspace.yaml.
package workspaces

import (
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"

	"buildinfo/pkg/detector/fsys"
	"buildinfo/pkg/detector/packagemanagers"
)

// WorkspacePackage is a member package relative to the workspace root
type WorkspacePackage struct {
	Path string `json:"path"`
	Name string `json:"name,omitempty"`
}

// Workspace is a repository root managing several packages
type Workspace struct {
	RootDir  string             `json:"rootDir"`
	IsRoot   bool               `json:"isRoot"`
	Patterns []string           `json:"patterns"`
	Packages []WorkspacePackage `json:"packages"`
}

// FSReader provides the filesystem primitives workspace detection needs
type FSReader interface {
	FindUpMultiple(name, cwd, stopAt string) ([]string, error)
	ReadJSON(path string, v any) error
	GracefullyReadFile(path string) (string, error)
	Exists(path string) bool
	Glob(dir, pattern string) ([]string, error)
}

// Detect finds the uppermost workspace declaration between baseDir and
// stopAt and expands its members. A nil result means no workspace applies.
func Detect(fs FSReader, pm *packagemanagers.PackageManager, baseDir, stopAt string) (*Workspace, error) {
	if pm == nil {
		return nil, nil
	}

	rootDir, patterns, err := findDeclaration(fs, pm, baseDir, stopAt)
	if err != nil || patterns == nil {
		return nil, err
	}

	packages, err := expand(fs, rootDir, patterns)
	if err != nil {
		return nil, err
	}

	return &Workspace{
		RootDir:  rootDir,
		IsRoot:   filepath.Clean(rootDir) == filepath.Clean(baseDir),
		Patterns: patterns,
		Packages: packages,
	}, nil
}

// findDeclaration returns the root directory and member globs of the
// uppermost manifest that declares them. patterns is nil when none does.
// Malformed manifests are skipped; the uppermost one is returned only when no
// other manifest declares a workspace.
func findDeclaration(fs FSReader, pm *packagemanagers.PackageManager, baseDir, stopAt string) (string, []string, error) {
	manifest := "package.json"
	if pm.Name == "pnpm" {
		manifest = "pnpm-workspace.yaml"
	}

	candidates, err := fs.FindUpMultiple(manifest, baseDir, stopAt)
	if err != nil {
		return "", nil, err
	}

	var skipped error
	// nearest first, so walk backwards for the uppermost declaration
	for i := len(candidates) - 1; i >= 0; i-- {
		var patterns []string
		if pm.Name == "pnpm" {
			patterns, err = readPnpmWorkspace(fs, candidates[i])
		} else {
			patterns, err = readPackageJSONWorkspaces(fs, candidates[i])
		}
		if err != nil {
			var parseErr *fsys.ParseError
			if !errors.As(err, &parseErr) {
				return "", nil, err
			}
			if skipped == nil {
				skipped = err
			}
			continue
		}
		if patterns != nil {
			return filepath.Dir(candidates[i]), patterns, nil
		}
	}
	return "", nil, skipped
}

func readPackageJSONWorkspaces(fs FSReader, manifest string) ([]string, error) {
	var pkg struct {
		Workspaces json.RawMessage `json:"workspaces"`
	}
	if err := fs.ReadJSON(manifest, &pkg); err != nil {
		return nil, err
	}
	if len(pkg.Workspaces) == 0 || string(pkg.Workspaces) == "null" {
		return nil, nil
	}

	var list []string
	if err := json.Unmarshal(pkg.Workspaces, &list); err == nil {
		return nonNil(list), nil
	}

	var object struct {
		Packages []string `json:"packages"`
	}
	if err := json.Unmarshal(pkg.Workspaces, &object); err != nil {
		return nil, &fsys.ParseError{Path: manifest, Err: fmt.Errorf("invalid workspaces field: %w", err)}
	}
	return nonNil(object.Packages), nil
}

func readPnpmWorkspace(fs FSReader, manifest string) ([]string, error) {
	content, err := fs.GracefullyReadFile(manifest)
	if err != nil {
		return nil, err
	}

	var ws struct {
		Packages []string `yaml:"packages"`
	}
	if err := yaml.Unmarshal([]byte(content), &ws); err != nil {
		return nil, &fsys.ParseError{Path: manifest, Err: err}
	}
	return nonNil(ws.Packages), nil
}

// expand resolves member globs into unique package directories that hold a
// package.json. Patterns starting with "!" exclude matches.
func expand(fs FSReader, rootDir string, patterns []string) ([]WorkspacePackage, error) {
	var includes, excludes []string
	for _, p := range patterns {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if strings.HasPrefix(p, "!") {
			excludes = append(excludes, cleanPattern(p[1:]))
			continue
		}
		includes = append(includes, cleanPattern(p))
	}

	seen := map[string]bool{}
	packages := []WorkspacePackage{}
	for _, pattern := range includes {
		matches, err := fs.Glob(rootDir, pattern)
		if err != nil {
			return nil, err
		}
		for _, match := range matches {
			match = path.Clean(match)
			if seen[match] || isExcluded(match, excludes) || strings.Contains("/"+match+"/", "/node_modules/") {
				continue
			}
			dir := filepath.Join(rootDir, filepath.FromSlash(match))
			manifest := filepath.Join(dir, "package.json")
			if !fs.Exists(manifest) {
				continue
			}
			seen[match] = true

			var pkg struct {
				Name string `json:"name"`
			}
			// the name is optional; a member with an unreadable manifest keeps an empty name
			_ = fs.ReadJSON(manifest, &pkg)
			packages = append(packages, WorkspacePackage{Path: match, Name: pkg.Name})
		}
	}

	slices.SortFunc(packages, func(a, b WorkspacePackage) int {
		return strings.Compare(a.Path, b.Path)
	})
	return packages, nil
}

func isExcluded(match string, excludes []string) bool {
	for _, ex := range excludes {
		if ok, _ := doublestar.Match(ex, match); ok {
			return true
		}
	}
	return false
}

func cleanPattern(p string) string {
	p = strings.TrimPrefix(strings.TrimSpace(p), "./")
	return strings.TrimSuffix(p, "/")
}

func nonNil(list []string) []string {
	if list == nil {
		return []string{}
	}
	return list
}
