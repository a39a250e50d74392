// Package settings compiles per-package build settings from the results of
// the earlier detection stages.
package settings

import (
	"cmp"
	"path"
	"path/filepath"

	"buildinfo/pkg/catalog"
	"buildinfo/pkg/detector/buildsystems"
	"buildinfo/pkg/detector/frameworks"
	"buildinfo/pkg/detector/helpers"
	"buildinfo/pkg/detector/packagemanagers"
	"buildinfo/pkg/detector/workspaces"
)

// FrameworkRef identifies the framework a settings entry was derived from
type FrameworkRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Settings are the concrete build settings for one package
type Settings struct {
	Name             string            `json:"name"`
	PackagePath      string            `json:"packagePath"`
	BaseDirectory    string            `json:"baseDirectory"`
	InstallCommand   string            `json:"installCommand,omitempty"`
	BuildCommand     string            `json:"buildCommand"`
	DevCommand       string            `json:"devCommand,omitempty"`
	PublishDirectory string            `json:"publishDirectory,omitempty"`
	FrameworkPort    int               `json:"frameworkPort,omitempty"`
	Framework        *FrameworkRef     `json:"framework,omitempty"`
	BuildSystem      string            `json:"buildSystem,omitempty"`
	PackageManager   string            `json:"packageManager,omitempty"`
	Integrations     []string          `json:"integrations"`
	Meta             map[string]string `json:"meta,omitempty"`
}

// Input is everything the compiler reads from earlier stages.
// Targets carries the package order; Integrations is nil when no catalog is
// configured.
type Input struct {
	BaseDir        string
	Targets        []frameworks.Target
	PackageManager *packagemanagers.PackageManager
	Workspace      *workspaces.Workspace
	BuildSystems   []buildsystems.BuildSystem
	Frameworks     map[string][]frameworks.DetectedFramework
	Integrations   []catalog.Integration
}

// Compile produces at most one settings entry per target, in target order.
// A target with no usable signal yields no entry. The result is never nil.
func Compile(fs helpers.FSReader, in Input) []Settings {
	result := []Settings{}
	for _, target := range in.Targets {
		c := compiler{fs: fs, in: in, target: target, pkg: helpers.ParsePackageJSON(fs, target.Dir)}

		var (
			s  Settings
			ok bool
		)
		if detected := in.Frameworks[target.Path]; len(detected) > 0 {
			s, ok = c.fromFramework(detected[0]), true
		} else {
			s, ok = c.fallback()
		}
		if ok {
			result = append(result, s)
		}
	}
	return result
}

type compiler struct {
	fs     helpers.FSReader
	in     Input
	target frameworks.Target
	pkg    helpers.PackageJSON
}

func (c compiler) fromFramework(fw frameworks.DetectedFramework) Settings {
	s := c.base()
	s.Framework = &FrameworkRef{ID: fw.ID, Name: fw.Name}
	s.BuildCommand = cmp.Or(c.buildCommand(&s), fw.BuildCommand)
	s.DevCommand = cmp.Or(c.devCommand(), fw.DevCommand)

	publish := fw.PublishDir
	if fw.ID == "next" {
		next := helpers.ParseNextConfig(c.fs, c.target.Dir)
		publish = next.BuildOutput
		s.Meta["output_mode"] = next.OutputMode
		if next.Router != "" {
			s.Meta["router"] = next.Router
		}
	}
	if publish != "" {
		s.PublishDirectory = path.Join(c.target.Path, publish)
	}

	var configFiles []string
	if registered, ok := frameworks.Lookup(fw.ID); ok {
		configFiles = registered.ConfigFiles
	}
	s.FrameworkPort = cmp.Or(helpers.DetectPort(c.fs, c.target.Dir, c.pkg, configFiles), fw.Port)

	s.Integrations = catalog.ForFramework(c.in.Integrations, fw.ID)
	return s
}

// fallback infers settings without a framework: a package build script,
// or for the base directory the first build system with a generic command
func (c compiler) fallback() (Settings, bool) {
	s := c.base()
	if command := c.buildCommand(&s); command != "" {
		s.BuildCommand = command
		s.DevCommand = c.devCommand()
		return s, true
	}

	if c.target.Dir != c.in.BaseDir {
		return Settings{}, false
	}
	for _, bs := range c.in.BuildSystems {
		if bs.BuildCommand != "" {
			s.BuildCommand = bs.BuildCommand
			s.BuildSystem = bs.ID
			return s, true
		}
	}
	return Settings{}, false
}

func (c compiler) base() Settings {
	s := Settings{
		Name:          cmp.Or(c.pkg.Name, c.memberName(), filepath.Base(c.target.Dir)),
		PackagePath:   c.target.Path,
		BaseDirectory: c.target.Dir,
		Integrations:  []string{},
		Meta:          map[string]string{},
	}
	if c.in.Workspace != nil {
		s.BaseDirectory = c.in.Workspace.RootDir
	}
	if pm := c.in.PackageManager; pm != nil {
		s.PackageManager = pm.Name
		s.InstallCommand = pm.InstallCommand
		s.Meta["package_manager"] = pm.Name
	}
	if len(c.in.BuildSystems) > 0 {
		s.BuildSystem = c.in.BuildSystems[0].ID
	}
	return s
}

// buildCommand returns "" when the package declares no build script.
// Workspace members under turborepo or nx go through the monorepo tool.
func (c compiler) buildCommand(s *Settings) string {
	script := helpers.GetProductionBuildScript(c.pkg)
	if script == "" {
		return ""
	}
	if !c.isMember() {
		return packagemanagers.RunScriptCommand(c.in.PackageManager, script)
	}

	name := cmp.Or(c.pkg.Name, c.memberName(), c.target.Path)
	if _, ok := buildsystems.Find(c.in.BuildSystems, "turborepo"); ok {
		s.BuildSystem = "turborepo"
		s.Meta["monorepo"] = "turborepo"
		return "turbo run " + script + " --filter " + name
	}
	if _, ok := buildsystems.Find(c.in.BuildSystems, "nx"); ok {
		s.BuildSystem = "nx"
		s.Meta["monorepo"] = "nx"
		return "nx run " + name + ":" + script
	}
	return packagemanagers.WorkspaceRunCommand(c.in.PackageManager, c.pkg.Name, c.target.Path, script)
}

func (c compiler) devCommand() string {
	script := helpers.GetDevScript(c.pkg)
	if script == "" {
		return ""
	}
	if c.isMember() {
		return packagemanagers.WorkspaceRunCommand(c.in.PackageManager, c.pkg.Name, c.target.Path, script)
	}
	return packagemanagers.RunScriptCommand(c.in.PackageManager, script)
}

func (c compiler) isMember() bool {
	return c.in.Workspace != nil && c.target.Path != ""
}

func (c compiler) memberName() string {
	if c.in.Workspace == nil {
		return ""
	}
	for _, member := range c.in.Workspace.Packages {
		if member.Path == c.target.Path {
			return member.Name
		}
	}
	return ""
}
