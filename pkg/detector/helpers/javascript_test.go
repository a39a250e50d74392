package helpers

import (
	"os"
	"path/filepath"
	"testing"
)

// mockFSReader implements FSReader for testing
type mockFSReader struct{}

func (m mockFSReader) GracefullyReadFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", nil
	}
	return string(data), nil
}

func (m mockFSReader) IsDir(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.IsDir()
}

func TestParseNextConfig(t *testing.T) {
	tests := []struct {
		name           string
		configContent  string
		configFile     string
		hasAppDir      bool
		hasPagesDir    bool
		expectedOutput string
		expectedRouter string
		expectedBuild  string
	}{
		{
			name:           "standalone mode with app router",
			configContent:  `module.exports = { output: 'standalone' }`,
			configFile:     "next.config.js",
			hasAppDir:      true,
			expectedOutput: "standalone",
			expectedRouter: "app",
			expectedBuild:  ".next/standalone",
		},
		{
			name:           "export mode with pages router",
			configContent:  `module.exports = { output: "export" }`,
			configFile:     "next.config.js",
			hasPagesDir:    true,
			expectedOutput: "export",
			expectedRouter: "pages",
			expectedBuild:  "out",
		},
		{
			name:           "default mode",
			configContent:  `module.exports = {}`,
			configFile:     "next.config.js",
			hasAppDir:      true,
			expectedOutput: "default",
			expectedRouter: "app",
			expectedBuild:  ".next",
		},
		{
			name:           "mjs config with export and no router",
			configContent:  "export default {\n  output:   'export',\n}",
			configFile:     "next.config.mjs",
			expectedOutput: "export",
			expectedRouter: "",
			expectedBuild:  "out",
		},
		{
			name:           "cjs config with export",
			configContent:  `module.exports = { output: 'export' }`,
			configFile:     "next.config.cjs",
			hasAppDir:      true,
			expectedOutput: "export",
			expectedRouter: "app",
			expectedBuild:  "out",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpDir := t.TempDir()

			os.WriteFile(filepath.Join(tmpDir, tt.configFile), []byte(tt.configContent), 0644)

			if tt.hasAppDir {
				os.Mkdir(filepath.Join(tmpDir, "app"), 0755)
			}
			if tt.hasPagesDir {
				os.Mkdir(filepath.Join(tmpDir, "pages"), 0755)
			}

			config := ParseNextConfig(mockFSReader{}, tmpDir)

			if config.OutputMode != tt.expectedOutput {
				t.Errorf("OutputMode = %v, want %v", config.OutputMode, tt.expectedOutput)
			}
			if config.Router != tt.expectedRouter {
				t.Errorf("Router = %v, want %v", config.Router, tt.expectedRouter)
			}
			if config.BuildOutput != tt.expectedBuild {
				t.Errorf("BuildOutput = %v, want %v", config.BuildOutput, tt.expectedBuild)
			}
		})
	}
}

func TestParsePackageJSON(t *testing.T) {
	tests := []struct {
		name             string
		packageJSON      string
		expectedName     string
		expectedScripts  map[string]string
		expectedHasDep   string
		expectedHasNoDep string
	}{
		{
			name: "full package.json",
			packageJSON: `{
				"name":    "web",
				"scripts": {
					"dev":   "next dev",
					"build": "next build"
				},
				"dependencies": {
					"next":  "^14.0.0",
					"react": "^18.0.0"
				},
				"devDependencies": {
					"typescript": "^5.0.0"
				}
			}`,
			expectedName: "web",
			expectedScripts: map[string]string{
				"dev":   "next dev",
				"build": "next build",
			},
			expectedHasDep:   "typescript",
			expectedHasNoDep: "vue",
		},
		{
			name:            "empty package.json",
			packageJSON:     `{}`,
			expectedScripts: map[string]string{},
		},
		{
			name:            "malformed package.json",
			packageJSON:     `{"name": `,
			expectedScripts: map[string]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpDir := t.TempDir()
			os.WriteFile(filepath.Join(tmpDir, "package.json"), []byte(tt.packageJSON), 0644)

			pkg := ParsePackageJSON(mockFSReader{}, tmpDir)

			if pkg.Name != tt.expectedName {
				t.Errorf("Name = %q, want %q", pkg.Name, tt.expectedName)
			}
			for k, v := range tt.expectedScripts {
				if pkg.Scripts[k] != v {
					t.Errorf("Script[%s] = %v, want %v", k, pkg.Scripts[k], v)
				}
			}

			deps := pkg.AllDependencies()
			if tt.expectedHasDep != "" {
				if _, exists := deps[tt.expectedHasDep]; !exists {
					t.Errorf("Expected dependency %s not found", tt.expectedHasDep)
				}
			}
			if tt.expectedHasNoDep != "" {
				if _, exists := deps[tt.expectedHasNoDep]; exists {
					t.Errorf("Unexpected dependency %s found", tt.expectedHasNoDep)
				}
			}
		})
	}
}

func TestParsePackageJSONMissing(t *testing.T) {
	pkg := ParsePackageJSON(mockFSReader{}, t.TempDir())
	if pkg.Name != "" || len(pkg.Scripts) != 0 {
		t.Errorf("expected empty PackageJSON, got %+v", pkg)
	}
}

func TestGetDevScript(t *testing.T) {
	tests := []struct {
		name     string
		scripts  map[string]string
		expected string
	}{
		{"dev over start", map[string]string{"start": "node index.js", "dev": "vite"}, "dev"},
		{"gatsby develop", map[string]string{"develop": "gatsby develop"}, "develop"},
		{"only start", map[string]string{"start": "node index.js"}, "start"},
		{"none", map[string]string{"lint": "eslint ."}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := GetDevScript(PackageJSON{Scripts: tt.scripts})
			if result != tt.expected {
				t.Errorf("GetDevScript() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestGetProductionBuildScript(t *testing.T) {
	tests := []struct {
		name     string
		scripts  map[string]string
		expected string
	}{
		{
			name: "has build:prod",
			scripts: map[string]string{
				"build":      "vite build",
				"build:prod": "vite build --mode production",
			},
			expected: "build:prod",
		},
		{
			name: "only build",
			scripts: map[string]string{
				"build": "next build",
			},
			expected: "build",
		},
		{
			name:     "no build script",
			scripts:  map[string]string{"start": "node index.js"},
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pkg := PackageJSON{
				Scripts: tt.scripts,
			}

			result := GetProductionBuildScript(pkg)
			if result != tt.expected {
				t.Errorf("GetProductionBuildScript() = %v, want %v", result, tt.expected)
			}
		})
	}
}
