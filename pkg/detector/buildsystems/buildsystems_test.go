package buildsystems

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"buildinfo/pkg/detector/fsys"
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

func ids(systems []BuildSystem) []string {
	out := []string{}
	for _, bs := range systems {
		out = append(out, bs.ID)
	}
	return out
}

func TestDetect(t *testing.T) {
	tests := []struct {
		name     string
		files    map[string]string
		baseDir  string
		expected []string
	}{
		{
			name:     "node only",
			files:    map[string]string{"package.json": "{}"},
			expected: []string{"node"},
		},
		{
			name: "monorepo tools coexist in registration order",
			files: map[string]string{
				"turbo.json":   "{}",
				"nx.json":      "{}",
				"package.json": "{}",
				"lerna.json":   "{}",
			},
			expected: []string{"lerna", "node", "nx", "turborepo"},
		},
		{
			name: "markers found above the base directory",
			files: map[string]string{
				"turbo.json":             "{}",
				"apps/web/package.json":  "{}",
				"apps/web/src/index.tsx": "",
			},
			baseDir:  "apps/web",
			expected: []string{"node", "turborepo"},
		},
		{
			name:     "polyglot build tools",
			files:    map[string]string{"WORKSPACE.bazel": "", "build.gradle.kts": "", ".moon/workspace.yml": ""},
			expected: []string{"bazel", "gradle", "moon"},
		},
		{
			name:     "nothing",
			files:    map[string]string{"README.md": "# hello"},
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := createTestProject(t, tt.files)

			got, err := Detect(context.Background(), fsys.NewOS(), filepath.Join(root, tt.baseDir), root)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			gotIDs := ids(got)
			if len(gotIDs) != len(tt.expected) {
				t.Fatalf("expected %v, got %v", tt.expected, gotIDs)
			}
			for i := range tt.expected {
				if gotIDs[i] != tt.expected[i] {
					t.Errorf("expected %v, got %v", tt.expected, gotIDs)
					break
				}
			}
		})
	}
}

func TestDetectReadsVersionAndDirectory(t *testing.T) {
	root := createTestProject(t, map[string]string{
		"package.json":          `{"devDependencies": {"turbo": "^2.0.4"}}`,
		"turbo.json":            "{}",
		"apps/web/package.json": "{}",
		".moon/workspace.yml":   "",
	})

	got, err := Detect(context.Background(), fsys.NewOS(), filepath.Join(root, "apps", "web"), root)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	turbo, ok := Find(got, "turborepo")
	if !ok {
		t.Fatalf("expected turborepo in %v", ids(got))
	}
	if turbo.Version != "^2.0.4" {
		t.Errorf("expected version ^2.0.4, got %q", turbo.Version)
	}
	if turbo.Directory != root {
		t.Errorf("expected directory %s, got %s", root, turbo.Directory)
	}

	moon, ok := Find(got, "moon")
	if !ok || moon.Directory != root {
		t.Errorf("expected moon at %s, got %+v", root, moon)
	}

	node, _ := Find(got, "node")
	if node.Directory != filepath.Join(root, "apps", "web") {
		t.Errorf("expected nearest package.json for node, got %s", node.Directory)
	}
}

func TestDetectReadsVersionFromWorkspaceRoot(t *testing.T) {
	root := createTestProject(t, map[string]string{
		"package.json":           `{"workspaces": ["apps/*"], "devDependencies": {"nx": "19.1.0"}}`,
		"apps/web/package.json":  `{"name": "web"}`,
		"apps/web/nx.json":       "{}",
		"apps/docs/package.json": `{"name": "docs", "devDependencies": {"nx": "18.0.0"}}`,
		"apps/docs/nx.json":      "{}",
	})

	tests := []struct {
		name     string
		baseDir  string
		expected string
	}{
		{"marker package.json without the tool", filepath.Join(root, "apps", "web"), "19.1.0"},
		{"marker package.json with the tool", filepath.Join(root, "apps", "docs"), "18.0.0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Detect(context.Background(), fsys.NewOS(), tt.baseDir, root)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			nx, ok := Find(got, "nx")
			if !ok {
				t.Fatalf("expected nx in %v", ids(got))
			}
			if nx.Directory != tt.baseDir {
				t.Errorf("expected directory %s, got %s", tt.baseDir, nx.Directory)
			}
			if nx.Version != tt.expected {
				t.Errorf("expected version %s, got %q", tt.expected, nx.Version)
			}
		})
	}
}

type failingFS struct{}

func (failingFS) FindUp([]string, string, string) (string, error) {
	return "", errors.New("disk on fire")
}

func (failingFS) ReadJSON(string, any) error {
	return errors.New("disk on fire")
}

func TestDetectPropagatesErrors(t *testing.T) {
	if _, err := Detect(context.Background(), failingFS{}, "/nowhere", "/nowhere"); err == nil {
		t.Fatal("expected an error")
	}
}
