// Package detector infers how to build a repository. A Project runs the
// detection stages (package manager, workspace, build systems, frameworks,
// settings) lazily, each at most once, pulling in upstream stages first.
package detector

import (
	"context"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"buildinfo/pkg/catalog"
	"buildinfo/pkg/detector/buildsystems"
	"buildinfo/pkg/detector/frameworks"
	"buildinfo/pkg/detector/fsys"
	"buildinfo/pkg/detector/packagemanagers"
	"buildinfo/pkg/detector/settings"
	"buildinfo/pkg/detector/workspaces"
)

// ProjectOptions configures a Project. Only BaseDir is required.
type ProjectOptions struct {
	FS       fsys.FS
	BaseDir  string
	Root     string
	Env      map[string]string
	Reporter ErrorReporter
	Catalog  catalog.Fetcher
	Logger   *log.Logger
	Events   *Events
}

// Project is the detection context for one repository
type Project struct {
	BaseDir string
	Root    string

	env      map[string]string
	fs       fsys.FS
	reporter ErrorReporter
	catalog  catalog.Fetcher
	logger   *log.Logger
	events   *Events

	packageManager stage[*packagemanagers.PackageManager]
	workspace      stage[*workspaces.Workspace]
	buildSystems   stage[[]buildsystems.BuildSystem]
	frameworks     stage[map[string][]frameworks.DetectedFramework]
	settings       stage[[]settings.Settings]
}

// NewProject creates a detection context. Root bounds every upward search;
// empty means the search may reach the filesystem root.
func NewProject(opts ProjectOptions) (*Project, error) {
	if opts.BaseDir == "" {
		return nil, fmt.Errorf("base directory is required")
	}
	baseDir, err := filepath.Abs(opts.BaseDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve base directory: %w", err)
	}

	root := opts.Root
	if root != "" {
		if root, err = filepath.Abs(root); err != nil {
			return nil, fmt.Errorf("failed to resolve root directory: %w", err)
		}
		if rel, err := filepath.Rel(root, baseDir); err != nil || !filepath.IsLocal(rel) && rel != "." {
			return nil, fmt.Errorf("base directory %s is outside root %s", baseDir, root)
		}
	}

	p := &Project{
		BaseDir:  baseDir,
		Root:     root,
		env:      maps.Clone(opts.Env),
		fs:       opts.FS,
		reporter: opts.Reporter,
		catalog:  opts.Catalog,
		logger:   opts.Logger,
		events:   opts.Events,
	}
	if p.env == nil {
		p.env = map[string]string{}
	}
	if p.fs == nil {
		p.fs = fsys.NewOS()
	}
	if p.logger == nil {
		p.logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "buildinfo"})
	}
	if p.reporter == nil {
		p.reporter = NewLogReporter(p.logger)
	}
	if p.events == nil {
		p.events = NewEvents()
	}
	return p, nil
}

// Env returns the value of key in the environment snapshot
func (p *Project) Env(key string) string {
	return p.env[key]
}

// Events returns the sink stage events are emitted on
func (p *Project) Events() *Events {
	return p.events
}

// StageState reports whether the named stage has run
func (p *Project) StageState(name string) StageState {
	switch name {
	case StagePackageManager:
		return p.packageManager.state()
	case StageWorkspace:
		return p.workspace.state()
	case StageBuildSystems:
		return p.buildSystems.state()
	case StageFrameworks:
		return p.frameworks.state()
	case StageSettings:
		return p.settings.state()
	}
	return StageNotRun
}

// PackageManager returns the package manager, nil when none applies
func (p *Project) PackageManager(ctx context.Context) *packagemanagers.PackageManager {
	return runStage(ctx, p, StagePackageManager, &p.packageManager, nil,
		func(ctx context.Context) (*packagemanagers.PackageManager, error) {
			return packagemanagers.DetectJS(p.fs, p.BaseDir, p.Root, p.env)
		})
}

// Workspace returns the workspace, nil when the project is not one
func (p *Project) Workspace(ctx context.Context) *workspaces.Workspace {
	return runStage(ctx, p, StageWorkspace, &p.workspace, nil,
		func(ctx context.Context) (*workspaces.Workspace, error) {
			pm := p.PackageManager(ctx)
			return workspaces.Detect(p.fs, pm, p.BaseDir, p.Root)
		})
}

// BuildSystems returns the matched build systems in registration order
func (p *Project) BuildSystems(ctx context.Context) []buildsystems.BuildSystem {
	return runStage(ctx, p, StageBuildSystems, &p.buildSystems, []buildsystems.BuildSystem{},
		func(ctx context.Context) ([]buildsystems.BuildSystem, error) {
			stopAt := p.Root
			if ws := p.Workspace(ctx); ws != nil {
				stopAt = ws.RootDir
			}
			return buildsystems.Detect(ctx, p.fs, p.BaseDir, stopAt)
		})
}

// Frameworks returns the relevant frameworks keyed by package path. The
// key is "" for a project that is not a workspace.
func (p *Project) Frameworks(ctx context.Context) map[string][]frameworks.DetectedFramework {
	return runStage(ctx, p, StageFrameworks, &p.frameworks, map[string][]frameworks.DetectedFramework{},
		func(ctx context.Context) (map[string][]frameworks.DetectedFramework, error) {
			p.BuildSystems(ctx)
			ws := p.Workspace(ctx)

			hoistedDir := ""
			if ws != nil {
				hoistedDir = ws.RootDir
			}
			return frameworks.Detect(ctx, p.fs, p.targets(ws), hoistedDir, func(pe *frameworks.PathError) {
				p.report(fmt.Errorf("%s: %w", StageFrameworks, pe), StageFrameworks)
			})
		})
}

// Settings returns the build settings, one entry per package with a usable
// signal, in package order
func (p *Project) Settings(ctx context.Context) []settings.Settings {
	return runStage(ctx, p, StageSettings, &p.settings, []settings.Settings{},
		func(ctx context.Context) ([]settings.Settings, error) {
			detected := p.Frameworks(ctx)
			ws := p.Workspace(ctx)

			var integrations []catalog.Integration
			if p.catalog != nil {
				var err error
				if integrations, err = p.catalog.AvailableIntegrations(ctx); err != nil {
					return nil, err
				}
			}

			return settings.Compile(p.fs, settings.Input{
				BaseDir:        p.BaseDir,
				Targets:        p.targets(ws),
				PackageManager: p.PackageManager(ctx),
				Workspace:      ws,
				BuildSystems:   p.BuildSystems(ctx),
				Frameworks:     detected,
				Integrations:   integrations,
			}), nil
		})
}

// targets lists the packages to evaluate: every member when the base
// directory is the workspace root, the base directory otherwise
func (p *Project) targets(ws *workspaces.Workspace) []frameworks.Target {
	if ws == nil {
		return []frameworks.Target{{Path: "", Dir: p.BaseDir}}
	}
	if !ws.IsRoot {
		rel, err := filepath.Rel(ws.RootDir, p.BaseDir)
		if err != nil {
			rel = ""
		}
		return []frameworks.Target{{Path: filepath.ToSlash(rel), Dir: p.BaseDir}}
	}

	targets := make([]frameworks.Target, 0, len(ws.Packages))
	for _, member := range ws.Packages {
		targets = append(targets, frameworks.Target{
			Path: member.Path,
			Dir:  filepath.Join(ws.RootDir, filepath.FromSlash(member.Path)),
		})
	}
	return targets
}

func (p *Project) report(err error, stageName string) {
	p.reporter.Report(err, Metadata{BaseDir: p.BaseDir, Root: p.Root, Stage: stageName})
}

// runStage memoizes detect in s. An error or panic is reported and turned
// into the degraded result; success emits the stage event.
func runStage[T any](ctx context.Context, p *Project, name string, s *stage[T], degraded T, detect func(context.Context) (T, error)) T {
	return s.get(func() (result T) {
		defer func() {
			if r := recover(); r != nil {
				p.report(fmt.Errorf("%s panicked: %v", name, r), name)
				result = degraded
			}
		}()

		start := time.Now()
		value, err := detect(ctx)
		if err != nil {
			p.report(fmt.Errorf("%s: %w", name, err), name)
			return degraded
		}

		p.logger.Debug("stage completed", "stage", name, "duration", time.Since(start))
		p.events.Emit(name, value)
		return value
	})
}
