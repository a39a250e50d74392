package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"buildinfo/pkg/config"
	"buildinfo/pkg/detector"
)

func createTestProject(t *testing.T, files map[string]string) string {
	t.Helper()
	tmpDir := t.TempDir()

	for path, content := range files {
		fullPath := filepath.Join(tmpDir, path)
		if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
			t.Fatalf("Failed to create directory for %s: %v", path, err)
		}
		if err := os.WriteFile(fullPath, []byte(content), 0644); err != nil {
			t.Fatalf("Failed to write file %s: %v", fullPath, err)
		}
	}

	return tmpDir
}

func TestBuildProject(t *testing.T) {
	root := createTestProject(t, map[string]string{
		"package-lock.json": "{}",
		"package.json":      `{"name": "docs", "scripts": {"build": "astro build"}, "devDependencies": {"astro": "4.0.0"}}`,
		"astro.config.mjs":  "export default {}",
		".env.build":        "BUILDINFO_PACKAGE_MANAGER=pnpm\n",
	})
	t.Setenv("BUILDINFO_PACKAGE_MANAGER", "")
	os.Unsetenv("BUILDINFO_PACKAGE_MANAGER")

	opts := options{
		projectPath: root,
		root:        root,
		envFiles:    []string{filepath.Join(root, ".env.build")},
	}
	project, err := buildProject(opts, config.CatalogConfig{}, newLogger(io.Discard, false), detector.NewEvents())
	if err != nil {
		t.Fatalf("buildProject() error = %v", err)
	}

	if project.Root != root {
		t.Errorf("expected root %q, got %q", root, project.Root)
	}
	if pm := project.PackageManager(context.Background()); pm == nil || pm.Name != "pnpm" {
		t.Errorf("expected pnpm forced by the env file, got %+v", pm)
	}

	var buf bytes.Buffer
	if err := writeJSON(&buf, project.Summarize(context.Background())); err != nil {
		t.Fatalf("writeJSON() error = %v", err)
	}

	var decoded struct {
		PackageManager struct {
			Name string `json:"name"`
		} `json:"packageManager"`
		Frameworks map[string][]struct {
			ID         string `json:"id"`
			Confidence string `json:"confidence"`
		} `json:"frameworks"`
		Settings []struct {
			BuildCommand string `json:"buildCommand"`
		} `json:"settings"`
	}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded.PackageManager.Name != "pnpm" {
		t.Errorf("unexpected package manager %q", decoded.PackageManager.Name)
	}
	if fws := decoded.Frameworks[""]; len(fws) != 1 || fws[0].ID != "astro" {
		t.Errorf("unexpected frameworks %+v", decoded.Frameworks)
	}
	if len(decoded.Settings) != 1 || decoded.Settings[0].BuildCommand != "pnpm run build" {
		t.Errorf("unexpected settings %+v", decoded.Settings)
	}
}

func TestBuildProjectErrors(t *testing.T) {
	dir := t.TempDir()
	logger := newLogger(io.Discard, false)

	tests := []struct {
		name string
		opts options
	}{
		{"missing project", options{projectPath: filepath.Join(dir, "missing")}},
		{"root outside", options{projectPath: dir, root: t.TempDir()}},
		{"missing env file", options{projectPath: dir, root: dir, envFiles: []string{filepath.Join(dir, "nope.env")}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := buildProject(tt.opts, config.CatalogConfig{}, logger, detector.NewEvents()); err == nil {
				t.Error("expected an error")
			}
		})
	}
}
