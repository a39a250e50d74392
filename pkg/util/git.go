package util

import (
	"os"
	"path/filepath"
)

// IsGitRepository checks if the given path is the top of a Git repository.
// Worktrees and submodules use a .git file instead of a directory.
func IsGitRepository(projectPath string) bool {
	_, err := os.Stat(filepath.Join(projectPath, ".git"))
	return err == nil
}

// FindRepositoryRoot returns the nearest ancestor of projectPath (itself
// included) that is a Git repository, or "" when there is none
func FindRepositoryRoot(projectPath string) string {
	dir, err := filepath.Abs(projectPath)
	if err != nil {
		return ""
	}

	for {
		if IsGitRepository(dir) {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}
