package helpers

import (
	"encoding/json"
	"path/filepath"
	"strings"
)

// FSReader provides filesystem operations for helper functions
type FSReader interface {
	GracefullyReadFile(path string) (string, error)
	IsDir(path string) bool
}

// NextConfig represents parsed Next.js configuration
type NextConfig struct {
	OutputMode  string // "standalone", "export", or "default"
	Router      string // "app", "pages", or ""
	BuildOutput string // build output directory
}

// PackageJSON represents parsed package.json
type PackageJSON struct {
	Name           string            `json:"name"`
	PackageManager string            `json:"packageManager"`
	Scripts        map[string]string `json:"scripts"`
	Dependencies   map[string]string `json:"dependencies"`
	DevDeps        map[string]string `json:"devDependencies"`
}

// AllDependencies merges runtime and dev dependencies
func (p PackageJSON) AllDependencies() map[string]string {
	return MergeDeps(p.Dependencies, p.DevDeps)
}

// HasScript reports whether a non-empty script is declared
func (p PackageJSON) HasScript(name string) bool {
	return p.Scripts[name] != ""
}

// ParseNextConfig parses the Next.js configuration found in dir
func ParseNextConfig(fs FSReader, dir string) NextConfig {
	config := NextConfig{
		OutputMode:  "default",
		BuildOutput: ".next",
	}

	if fs.IsDir(filepath.Join(dir, "app")) || fs.IsDir(filepath.Join(dir, "src", "app")) {
		config.Router = "app"
	} else if fs.IsDir(filepath.Join(dir, "pages")) || fs.IsDir(filepath.Join(dir, "src", "pages")) {
		config.Router = "pages"
	}

	for _, configFile := range []string{"next.config.js", "next.config.mjs", "next.config.cjs", "next.config.ts"} {
		content := readFile(fs, filepath.Join(dir, configFile))
		if content == "" {
			continue
		}
		compact := strings.Join(strings.Fields(content), "")
		switch {
		case strings.Contains(compact, "output:'standalone'") || strings.Contains(compact, `output:"standalone"`):
			config.OutputMode = "standalone"
			config.BuildOutput = ".next/standalone"
		case strings.Contains(compact, "output:'export'") || strings.Contains(compact, `output:"export"`):
			config.OutputMode = "export"
			config.BuildOutput = "out"
		}
		break
	}

	return config
}

// ParsePackageJSON reads dir/package.json. A missing or malformed manifest
// yields an empty PackageJSON.
func ParsePackageJSON(fs FSReader, dir string) PackageJSON {
	content := readFile(fs, filepath.Join(dir, "package.json"))
	if content == "" {
		return PackageJSON{}
	}

	var pkg PackageJSON
	if err := json.Unmarshal([]byte(content), &pkg); err != nil {
		return PackageJSON{}
	}

	return pkg
}

// GetDevScript returns the script used to run a local dev server
func GetDevScript(pkg PackageJSON) string {
	for _, scriptName := range []string{"dev", "develop", "start", "serve"} {
		if pkg.HasScript(scriptName) {
			return scriptName
		}
	}
	return ""
}

// GetProductionBuildScript returns the preferred build script, or "" when
// the package declares none
func GetProductionBuildScript(pkg PackageJSON) string {
	priorities := []string{
		"build:prod",
		"build:production",
		"build",
	}

	for _, scriptName := range priorities {
		if pkg.HasScript(scriptName) {
			return scriptName
		}
	}

	return ""
}

// MergeDeps merges multiple dependency maps into a single map
func MergeDeps(deps ...map[string]string) map[string]string {
	merged := make(map[string]string)
	for _, d := range deps {
		for k, v := range d {
			merged[k] = v
		}
	}
	return merged
}

func readFile(fs FSReader, path string) string {
	content, err := fs.GracefullyReadFile(path)
	if err != nil {
		return ""
	}
	return content
}
