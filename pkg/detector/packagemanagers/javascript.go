package packagemanagers

import (
	"path/filepath"
	"strings"
)

// EnvPackageManager forces a package manager by name
const EnvPackageManager = "BUILDINFO_PACKAGE_MANAGER"

// PackageManager describes a JavaScript package manager
type PackageManager struct {
	Name                 string   `json:"name"`
	DisplayName          string   `json:"displayName"`
	InstallCommand       string   `json:"installCommand"`
	RunCommand           string   `json:"runCommand"`
	LocalPackageCommand  string   `json:"localPackageCommand"`
	RemotePackageCommand []string `json:"remotePackageCommand"`
	LockFiles            []string `json:"lockFiles"`
	// Priority breaks ties when several lockfiles sit in the same directory; lower wins
	Priority    int    `json:"-"`
	ForceEnvVar string `json:"-"`
	// Version is set when the manager is pinned through the packageManager field
	Version string `json:"version,omitempty"`
}

// Available lists the known package managers in priority order
var Available = []PackageManager{
	{
		Name:                 "pnpm",
		DisplayName:          "pnpm",
		InstallCommand:       "pnpm install",
		RunCommand:           "pnpm run",
		LocalPackageCommand:  "pnpm",
		RemotePackageCommand: []string{"pnpm", "dlx"},
		LockFiles:            []string{"pnpm-lock.yaml"},
		Priority:             0,
		ForceEnvVar:          "BUILDINFO_USE_PNPM",
	},
	{
		Name:                 "yarn",
		DisplayName:          "Yarn",
		InstallCommand:       "yarn install",
		RunCommand:           "yarn run",
		LocalPackageCommand:  "yarn",
		RemotePackageCommand: []string{"yarn", "dlx"},
		LockFiles:            []string{"yarn.lock"},
		Priority:             1,
		ForceEnvVar:          "BUILDINFO_USE_YARN",
	},
	{
		Name:                 "bun",
		DisplayName:          "Bun",
		InstallCommand:       "bun install",
		RunCommand:           "bun run",
		LocalPackageCommand:  "bunx",
		RemotePackageCommand: []string{"bunx"},
		LockFiles:            []string{"bun.lockb", "bun.lock"},
		Priority:             2,
		ForceEnvVar:          "BUILDINFO_USE_BUN",
	},
	{
		Name:                 "npm",
		DisplayName:          "npm",
		InstallCommand:       "npm install",
		RunCommand:           "npm run",
		LocalPackageCommand:  "npx",
		RemotePackageCommand: []string{"npx"},
		LockFiles:            []string{"package-lock.json", "npm-shrinkwrap.json"},
		Priority:             3,
	},
}

// FSReader provides the filesystem primitives package manager detection needs
type FSReader interface {
	FindUpMultiple(name, cwd, stopAt string) ([]string, error)
	ReadJSON(path string, v any) error
}

// Lookup returns a copy of the named descriptor
func Lookup(name string) (PackageManager, bool) {
	for _, pm := range Available {
		if pm.Name == name {
			return pm, true
		}
	}
	return PackageManager{}, false
}

// DetectJS resolves the package manager for baseDir. Evidence is taken from
// the environment first, then the packageManager field of the nearest
// package.json, then the nearest directory holding a lockfile. A nil result
// with a nil error means no package manager applies.
func DetectJS(fs FSReader, baseDir, stopAt string, env map[string]string) (*PackageManager, error) {
	if pm := fromEnv(env); pm != nil {
		return pm, nil
	}

	pm, err := fromPackageManagerField(fs, baseDir, stopAt)
	if err != nil || pm != nil {
		return pm, err
	}

	return fromLockFiles(fs, baseDir, stopAt)
}

func fromEnv(env map[string]string) *PackageManager {
	if name := strings.TrimSpace(env[EnvPackageManager]); name != "" {
		if pm, ok := Lookup(strings.ToLower(name)); ok {
			return &pm
		}
	}
	for _, pm := range Available {
		if pm.ForceEnvVar != "" && strings.EqualFold(env[pm.ForceEnvVar], "true") {
			pm := pm
			return &pm
		}
	}
	return nil
}

func fromPackageManagerField(fs FSReader, baseDir, stopAt string) (*PackageManager, error) {
	manifests, err := fs.FindUpMultiple("package.json", baseDir, stopAt)
	if err != nil {
		return nil, err
	}
	if len(manifests) == 0 {
		return nil, nil
	}

	var pkg struct {
		PackageManager string `json:"packageManager"`
	}
	// A manifest that cannot be read here is left to the lockfile lookup
	if err := fs.ReadJSON(manifests[0], &pkg); err != nil || pkg.PackageManager == "" {
		return nil, nil
	}

	name, version := ParsePackageManagerField(pkg.PackageManager)
	pm, ok := Lookup(name)
	if !ok {
		return nil, nil
	}
	pm.Version = version
	return &pm, nil
}

func fromLockFiles(fs FSReader, baseDir, stopAt string) (*PackageManager, error) {
	var (
		best      *PackageManager
		bestDepth int
	)
	for _, pm := range Available {
		for _, lockFile := range pm.LockFiles {
			matches, err := fs.FindUpMultiple(lockFile, baseDir, stopAt)
			if err != nil {
				return nil, err
			}
			if len(matches) == 0 {
				continue
			}
			depth := distance(baseDir, filepath.Dir(matches[0]))
			if best == nil || depth < bestDepth || (depth == bestDepth && pm.Priority < best.Priority) {
				pm := pm
				best = &pm
				bestDepth = depth
			}
		}
	}
	return best, nil
}

// ParsePackageManagerField splits a corepack value like "pnpm@8.6.0+sha256.abc"
func ParsePackageManagerField(value string) (name, version string) {
	name, version, _ = strings.Cut(strings.TrimSpace(value), "@")
	version, _, _ = strings.Cut(version, "+")
	return name, version
}

// distance counts the directory levels between dir and its ancestor
func distance(dir, ancestor string) int {
	rel, err := filepath.Rel(ancestor, dir)
	if err != nil || rel == "." {
		return 0
	}
	return len(strings.Split(rel, string(filepath.Separator)))
}

// InstallCommand returns the install command, npm when pm is nil
func InstallCommand(pm *PackageManager) string {
	if pm == nil {
		return "npm install"
	}
	return pm.InstallCommand
}

// RunScriptCommand returns the command that runs a package.json script
func RunScriptCommand(pm *PackageManager, script string) string {
	if pm == nil {
		return "npm run " + script
	}
	return pm.RunCommand + " " + script
}

// WorkspaceRunCommand returns the command that runs a script of one
// workspace member from the workspace root. npm addresses members by path,
// the others by package name.
func WorkspaceRunCommand(pm *PackageManager, name, memberPath, script string) string {
	if name == "" {
		name = memberPath
	}
	switch {
	case pm == nil || pm.Name == "npm":
		return "npm run " + script + " --workspace " + memberPath
	case pm.Name == "yarn":
		return "yarn workspace " + name + " run " + script
	case pm.Name == "pnpm":
		return "pnpm --filter " + name + " run " + script
	case pm.Name == "bun":
		return "bun run --filter " + name + " " + script
	default:
		return RunScriptCommand(pm, script)
	}
}
