package util

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
)

// LoadEnvFile reads and parses a .env file into a map of environment variables
func LoadEnvFile(filePath string) (map[string]string, error) {
	envVars, err := godotenv.Read(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read env file %s: %w", filePath, err)
	}
	return envVars, nil
}

// EnvSnapshot builds an immutable view of the environment from KEY=VALUE
// pairs (os.Environ) plus .env files. Values already present in environ win,
// and earlier files win over later ones.
func EnvSnapshot(environ []string, envFiles ...string) (map[string]string, error) {
	snapshot := make(map[string]string, len(environ))
	for _, kv := range environ {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || key == "" {
			continue
		}
		snapshot[key] = value
	}

	for _, file := range envFiles {
		envVars, err := LoadEnvFile(file)
		if err != nil {
			return nil, err
		}
		for key, value := range envVars {
			if _, exists := snapshot[key]; !exists {
				snapshot[key] = value
			}
		}
	}

	return snapshot, nil
}
