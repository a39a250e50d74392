package util

import (
	"fmt"
	"os"
	"path/filepath"
)

// ValidateProjectPath validates and cleans a project path
// Returns the cleaned absolute path or an error
func ValidateProjectPath(projectPath string) (string, error) {
	projectPath = filepath.Clean(projectPath)

	info, err := os.Stat(projectPath)
	if err != nil {
		return "", fmt.Errorf("cannot access path '%s': %w", projectPath, err)
	}

	if !info.IsDir() {
		return "", fmt.Errorf("path '%s' is not a directory", projectPath)
	}

	absPath, err := filepath.Abs(projectPath)
	if err != nil {
		return projectPath, nil
	}

	return absPath, nil
}

// ResolveSearchRoot picks the upper boundary for detection. An explicit root
// must contain the project; without one the enclosing Git repository is used,
// and "" means unbounded.
func ResolveSearchRoot(projectPath, explicitRoot string) (string, error) {
	if explicitRoot == "" {
		return FindRepositoryRoot(projectPath), nil
	}

	root, err := ValidateProjectPath(explicitRoot)
	if err != nil {
		return "", err
	}
	rel, err := filepath.Rel(root, projectPath)
	if err != nil || !filepath.IsLocal(rel) && rel != "." {
		return "", fmt.Errorf("project path '%s' is not inside root '%s'", projectPath, root)
	}
	return root, nil
}
