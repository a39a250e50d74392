package detector

import (
	"context"

	"buildinfo/pkg/detector/buildsystems"
	"buildinfo/pkg/detector/frameworks"
	"buildinfo/pkg/detector/packagemanagers"
	"buildinfo/pkg/detector/settings"
	"buildinfo/pkg/detector/workspaces"
)

// Summary is the result of every stage, ready to be printed or encoded
type Summary struct {
	BaseDir        string                                    `json:"baseDir"`
	Root           string                                    `json:"root,omitempty"`
	PackageManager *packagemanagers.PackageManager           `json:"packageManager"`
	Workspace      *workspaces.Workspace                     `json:"workspace"`
	BuildSystems   []buildsystems.BuildSystem                `json:"buildSystems"`
	Frameworks     map[string][]frameworks.DetectedFramework `json:"frameworks"`
	Settings       []settings.Settings                       `json:"settings"`
	Stages         map[string]string                         `json:"stages"`
}

// Summarize runs every stage that has not run yet and collects the results
func (p *Project) Summarize(ctx context.Context) Summary {
	result := p.Settings(ctx)

	stages := make(map[string]string, len(Stages))
	for _, name := range Stages {
		stages[name] = p.StageState(name).String()
	}
	return Summary{
		BaseDir:        p.BaseDir,
		Root:           p.Root,
		PackageManager: p.PackageManager(ctx),
		Workspace:      p.Workspace(ctx),
		BuildSystems:   p.BuildSystems(ctx),
		Frameworks:     p.Frameworks(ctx),
		Settings:       result,
		Stages:         stages,
	}
}
