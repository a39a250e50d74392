package workspaces

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"buildinfo/pkg/detector/fsys"
	"buildinfo/pkg/detector/packagemanagers"
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

func mustLookup(t *testing.T, name string) *packagemanagers.PackageManager {
	t.Helper()
	pm, ok := packagemanagers.Lookup(name)
	if !ok {
		t.Fatalf("unknown package manager %s", name)
	}
	return &pm
}

func TestDetectWithoutPackageManager(t *testing.T) {
	root := createTestProject(t, map[string]string{
		"package.json":            `{"workspaces": ["packages/*"]}`,
		"packages/a/package.json": `{"name": "a"}`,
	})

	ws, err := Detect(fsys.NewOS(), nil, root, root)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ws != nil {
		t.Fatalf("expected nil workspace without a package manager, got %+v", ws)
	}
}

func TestDetect(t *testing.T) {
	tests := []struct {
		name             string
		pm               string
		files            map[string]string
		baseDir          string
		expectedNil      bool
		expectedIsRoot   bool
		expectedPackages []WorkspacePackage
	}{
		{
			name: "npm array workspaces",
			pm:   "npm",
			files: map[string]string{
				"package.json":            `{"workspaces": ["packages/*"]}`,
				"packages/b/package.json": `{"name": "@scope/b"}`,
				"packages/a/package.json": `{"name": "@scope/a"}`,
				"packages/docs/README.md": "not a package",
			},
			expectedIsRoot: true,
			expectedPackages: []WorkspacePackage{
				{Path: "packages/a", Name: "@scope/a"},
				{Path: "packages/b", Name: "@scope/b"},
			},
		},
		{
			name: "yarn object workspaces with exclusion",
			pm:   "yarn",
			files: map[string]string{
				"package.json":                  `{"workspaces": {"packages": ["apps/*", "!apps/legacy"]}}`,
				"apps/web/package.json":         `{"name": "web"}`,
				"apps/legacy/package.json":      `{"name": "legacy"}`,
				"apps/web/node_modules/x/a.txt": "",
			},
			expectedIsRoot: true,
			expectedPackages: []WorkspacePackage{
				{Path: "apps/web", Name: "web"},
			},
		},
		{
			name: "pnpm workspace yaml",
			pm:   "pnpm",
			files: map[string]string{
				"package.json":             `{"name": "root"}`,
				"pnpm-workspace.yaml":      "packages:\n  - 'apps/*'\n  - 'packages/**'\n",
				"apps/site/package.json":   `{"name": "site"}`,
				"packages/ui/package.json": `{"name": "ui"}`,
			},
			expectedIsRoot: true,
			expectedPackages: []WorkspacePackage{
				{Path: "apps/site", Name: "site"},
				{Path: "packages/ui", Name: "ui"},
			},
		},
		{
			name: "base directory inside a workspace member",
			pm:   "npm",
			files: map[string]string{
				"package.json":                     `{"workspaces": ["packages/*"]}`,
				"packages/a/package.json":          `{"name": "a", "workspaces": ["nested/*"]}`,
				"packages/a/nested/x/package.json": `{"name": "x"}`,
			},
			baseDir:        "packages/a",
			expectedIsRoot: false,
			expectedPackages: []WorkspacePackage{
				{Path: "packages/a", Name: "a"},
			},
		},
		{
			name: "declared without members",
			pm:   "npm",
			files: map[string]string{
				"package.json": `{"workspaces": ["packages/*"]}`,
			},
			expectedIsRoot:   true,
			expectedPackages: []WorkspacePackage{},
		},
		{
			name:        "no declaration",
			pm:          "npm",
			files:       map[string]string{"package.json": `{"name": "app"}`},
			expectedNil: true,
		},
		{
			name:        "pnpm without workspace file",
			pm:          "pnpm",
			files:       map[string]string{"package.json": `{"workspaces": ["packages/*"]}`},
			expectedNil: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := createTestProject(t, tt.files)
			baseDir := filepath.Join(root, tt.baseDir)

			ws, err := Detect(fsys.NewOS(), mustLookup(t, tt.pm), baseDir, root)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if tt.expectedNil {
				if ws != nil {
					t.Fatalf("expected nil workspace, got %+v", ws)
				}
				return
			}
			if ws == nil {
				t.Fatal("expected a workspace, got nil")
			}
			if ws.RootDir != root {
				t.Errorf("expected root dir %s, got %s", root, ws.RootDir)
			}
			if ws.IsRoot != tt.expectedIsRoot {
				t.Errorf("expected IsRoot %v, got %v", tt.expectedIsRoot, ws.IsRoot)
			}
			if len(ws.Packages) != len(tt.expectedPackages) {
				t.Fatalf("expected packages %v, got %v", tt.expectedPackages, ws.Packages)
			}
			for i, pkg := range tt.expectedPackages {
				if ws.Packages[i] != pkg {
					t.Errorf("package %d: expected %+v, got %+v", i, pkg, ws.Packages[i])
				}
			}
		})
	}
}

func TestDetectMalformedManifest(t *testing.T) {
	root := createTestProject(t, map[string]string{
		"package.json": `{"workspaces": `,
	})

	ws, err := Detect(fsys.NewOS(), mustLookup(t, "npm"), root, root)
	if err == nil {
		t.Fatalf("expected an error for a malformed manifest, got %+v", ws)
	}
	var parseErr *fsys.ParseError
	if !errors.As(err, &parseErr) {
		t.Errorf("expected a parse error, got %v", err)
	}
}

func TestDetectSkipsMalformedAncestor(t *testing.T) {
	tests := []struct {
		name  string
		outer string
	}{
		{"invalid workspaces field", `{"workspaces": "oops"}`},
		{"truncated manifest", `{"workspaces": `},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := createTestProject(t, map[string]string{
				"package.json":                 tt.outer,
				"repo/package.json":            `{"workspaces": ["packages/*"]}`,
				"repo/packages/a/package.json": `{"name": "a"}`,
			})
			repo := filepath.Join(root, "repo")

			ws, err := Detect(fsys.NewOS(), mustLookup(t, "npm"), repo, root)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if ws == nil || ws.RootDir != repo {
				t.Fatalf("expected the workspace declared in repo/, got %+v", ws)
			}
			if len(ws.Packages) != 1 || ws.Packages[0].Name != "a" {
				t.Errorf("unexpected packages %+v", ws.Packages)
			}
		})
	}
}
