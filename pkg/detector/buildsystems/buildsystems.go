// Package buildsystems detects monorepo and polyglot build tools by their
// marker files.
package buildsystems

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"
)

// BuildSystem describes a build tool and, once matched, where it was found
type BuildSystem struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Markers []string `json:"-"`
	// Dependency is the npm package the tool ships as, used to read its version
	Dependency   string `json:"-"`
	BuildCommand string `json:"buildCommand,omitempty"`
	Version      string `json:"version,omitempty"`
	Directory    string `json:"directory,omitempty"`
}

// FSReader provides the filesystem primitives build system detection needs
type FSReader interface {
	FindUp(names []string, cwd, stopAt string) (string, error)
	ReadJSON(path string, v any) error
}

// Registry is the fixed, ordered set of known build systems
var Registry = []BuildSystem{
	{ID: "bazel", Name: "Bazel", Markers: []string{"WORKSPACE", "WORKSPACE.bazel", "MODULE.bazel", ".bazelversion"}, BuildCommand: "bazel build //..."},
	{ID: "buck", Name: "Buck", Markers: []string{".buckconfig"}, BuildCommand: "buck2 build //..."},
	{ID: "gradle", Name: "Gradle", Markers: []string{"build.gradle", "build.gradle.kts", "settings.gradle", "settings.gradle.kts"}, BuildCommand: "./gradlew build"},
	{ID: "lage", Name: "Lage", Markers: []string{"lage.config.js"}, Dependency: "lage"},
	{ID: "lerna", Name: "Lerna", Markers: []string{"lerna.json"}, Dependency: "lerna"},
	{ID: "maven", Name: "Maven", Markers: []string{"pom.xml"}, BuildCommand: "mvn package"},
	{ID: "moon", Name: "moon", Markers: []string{".moon/workspace.yml"}, Dependency: "@moonrepo/cli"},
	{ID: "nix", Name: "Nix", Markers: []string{"flake.nix", "default.nix", "shell.nix"}, BuildCommand: "nix build"},
	{ID: "node", Name: "Node", Markers: []string{"package.json"}},
	{ID: "nx", Name: "Nx", Markers: []string{"nx.json"}, Dependency: "nx"},
	{ID: "pants", Name: "Pants", Markers: []string{"pants.toml"}, BuildCommand: "pants package ::"},
	{ID: "rush", Name: "Rush", Markers: []string{"rush.json"}, Dependency: "@microsoft/rush"},
	{ID: "turborepo", Name: "Turborepo", Markers: []string{"turbo.json", "turbo.jsonc"}, Dependency: "turbo"},
}

// Detect runs every registered detector concurrently. stopAt bounds the
// marker search and is the fallback location for tool versions. The result
// keeps registration order and is never nil.
func Detect(ctx context.Context, fs FSReader, baseDir, stopAt string) ([]BuildSystem, error) {
	return DetectWith(ctx, fs, Registry, baseDir, stopAt)
}

// DetectWith runs the given detectors concurrently
func DetectWith(ctx context.Context, fs FSReader, registry []BuildSystem, baseDir, stopAt string) ([]BuildSystem, error) {
	found := make([]*BuildSystem, len(registry))

	g, ctx := errgroup.WithContext(ctx)
	for i, bs := range registry {
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("%s detector panicked: %v", bs.ID, r)
				}
			}()
			if err := ctx.Err(); err != nil {
				return err
			}
			match, err := detectOne(fs, bs, baseDir, stopAt)
			if err != nil {
				return err
			}
			found[i] = match
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := []BuildSystem{}
	for _, bs := range found {
		if bs != nil {
			result = append(result, *bs)
		}
	}
	return result, nil
}

// Find returns the matched build system with the given id
func Find(systems []BuildSystem, id string) (BuildSystem, bool) {
	for _, bs := range systems {
		if bs.ID == id {
			return bs, true
		}
	}
	return BuildSystem{}, false
}

func detectOne(fs FSReader, bs BuildSystem, baseDir, stopAt string) (*BuildSystem, error) {
	marker, err := fs.FindUp(bs.Markers, baseDir, stopAt)
	if err != nil || marker == "" {
		return nil, err
	}

	match := bs
	match.Directory = markerDir(marker, bs.Markers)
	if bs.Dependency != "" {
		match.Version = readVersion(fs, match.Directory, bs.Dependency)
		if match.Version == "" && stopAt != "" && filepath.Clean(stopAt) != match.Directory {
			match.Version = readVersion(fs, stopAt, bs.Dependency)
		}
	}
	return &match, nil
}

// markerDir strips nested marker paths such as .moon/workspace.yml
func markerDir(marker string, markers []string) string {
	for _, m := range markers {
		if suffix := filepath.FromSlash(m); strings.HasSuffix(marker, string(filepath.Separator)+suffix) {
			return strings.TrimSuffix(marker, string(filepath.Separator)+suffix)
		}
	}
	return filepath.Dir(marker)
}

// readVersion looks the tool up in dir/package.json. Callers try the marker
// directory first, then the search boundary, which is the workspace root
// when the project is a workspace.
func readVersion(fs FSReader, dir, dependency string) string {
	var pkg struct {
		Dependencies    map[string]string `json:"dependencies"`
		DevDependencies map[string]string `json:"devDependencies"`
	}
	if err := fs.ReadJSON(filepath.Join(dir, "package.json"), &pkg); err != nil {
		return ""
	}
	if v := pkg.DevDependencies[dependency]; v != "" {
		return v
	}
	return pkg.Dependencies[dependency]
}
