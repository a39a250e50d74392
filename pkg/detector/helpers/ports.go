package helpers

import (
	"path/filepath"
	"regexp"
	"strconv"
)

var (
	portFlagRegex      = regexp.MustCompile(`(?:-p|--port)\s+(\d+)`)
	portFlagEqualRegex = regexp.MustCompile(`(?:-p|--port)=(\d+)`)
	bindRegex          = regexp.MustCompile(`(?:--bind|--listen)\s+[^:]*:(\d+)`)
	envPortRegex       = regexp.MustCompile(`PORT=(\d+)`)
	configPortRegex    = regexp.MustCompile(`port\s*:\s*(\d+)`)
)

// DetectPortFromPackageJSON looks for an explicit port in the dev scripts
func DetectPortFromPackageJSON(pkg PackageJSON) int {
	for _, scriptName := range []string{"dev", "develop", "start", "serve"} {
		if script, exists := pkg.Scripts[scriptName]; exists {
			if port := extractPortFromCommand(script); port != 0 {
				return port
			}
		}
	}
	return 0
}

// DetectPortFromConfig scans framework config files in dir for a port key
func DetectPortFromConfig(fs FSReader, dir string, configFiles []string) int {
	for _, config := range configFiles {
		content := readFile(fs, filepath.Join(dir, config))
		if content == "" {
			continue
		}
		if matches := configPortRegex.FindStringSubmatch(content); len(matches) > 1 {
			if port := parsePort(matches[1]); port != 0 {
				return port
			}
		}
	}
	return 0
}

// DetectPort tries the package scripts first, then the given config files
func DetectPort(fs FSReader, dir string, pkg PackageJSON, configFiles []string) int {
	if port := DetectPortFromPackageJSON(pkg); port != 0 {
		return port
	}
	return DetectPortFromConfig(fs, dir, configFiles)
}

// extractPortFromCommand extracts port from command line arguments
func extractPortFromCommand(command string) int {
	for _, re := range []*regexp.Regexp{portFlagRegex, portFlagEqualRegex, bindRegex, envPortRegex} {
		if matches := re.FindStringSubmatch(command); len(matches) > 1 {
			if port := parsePort(matches[1]); port != 0 {
				return port
			}
		}
	}
	return 0
}

// parsePort returns 0 for anything outside 1-65535
func parsePort(portStr string) int {
	port, err := strconv.Atoi(portStr)
	if err != nil || port <= 0 || port > 65535 {
		return 0
	}
	return port
}
