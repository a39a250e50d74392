package util

import (
	"os"
	"path/filepath"
	"testing"
)

func TestValidateProjectPath(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "package.json")
	if err := os.WriteFile(file, []byte("{}"), 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name        string
		path        string
		expected    string
		expectError bool
	}{
		{name: "directory", path: dir, expected: dir},
		{name: "unclean path", path: dir + "/./", expected: dir},
		{name: "file", path: file, expectError: true},
		{name: "missing", path: filepath.Join(dir, "missing"), expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateProjectPath(tt.path)
			if tt.expectError {
				if err == nil {
					t.Errorf("expected an error, got %q", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestResolveSearchRoot(t *testing.T) {
	repo := t.TempDir()
	if err := os.Mkdir(filepath.Join(repo, ".git"), 0755); err != nil {
		t.Fatal(err)
	}
	site := filepath.Join(repo, "site")
	if err := os.Mkdir(site, 0755); err != nil {
		t.Fatal(err)
	}
	other := t.TempDir()

	tests := []struct {
		name        string
		project     string
		root        string
		expected    string
		expectError bool
	}{
		{name: "repository root by default", project: site, expected: repo},
		{name: "explicit root", project: site, root: site, expected: site},
		{name: "root not containing the project", project: site, root: other, expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveSearchRoot(tt.project, tt.root)
			if tt.expectError {
				if err == nil {
					t.Errorf("expected an error, got %q", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}
