package frameworks

import "path/filepath"

// DetectionBuilder collects the evidence for one framework at one package
// directory and turns it into a DetectedFramework
type DetectionBuilder struct {
	framework Framework
	fs        FSReader
	dir       string
	deps      map[string]string

	excluded   bool
	dependency string
	version    string
	configFile string
}

// NewDetectionBuilder creates a builder for framework in dir. deps holds the
// dependencies visible from dir, hoisted ones included.
func NewDetectionBuilder(framework Framework, fs FSReader, dir string, deps map[string]string) *DetectionBuilder {
	return &DetectionBuilder{
		framework: framework,
		fs:        fs,
		dir:       dir,
		deps:      deps,
	}
}

// CheckExcludedDependencies vetoes the match if any excluded dependency is present
func (b *DetectionBuilder) CheckExcludedDependencies() *DetectionBuilder {
	for _, dep := range b.framework.ExcludedDependencies {
		if _, ok := b.deps[dep]; ok {
			b.excluded = true
			return b
		}
	}
	return b
}

// CheckDependencies records the first declared dependency that is installed
func (b *DetectionBuilder) CheckDependencies() *DetectionBuilder {
	for _, dep := range b.framework.Dependencies {
		if version, ok := b.deps[dep]; ok {
			b.dependency = dep
			b.version = version
			return b
		}
	}
	return b
}

// CheckConfigFiles records the first config file present in the package directory
func (b *DetectionBuilder) CheckConfigFiles() *DetectionBuilder {
	for _, config := range b.framework.ConfigFiles {
		if b.fs.Exists(filepath.Join(b.dir, filepath.FromSlash(config))) {
			b.configFile = config
			return b
		}
	}
	return b
}

// Build finalizes the builder. ok is false when the evidence is not enough
// for a match.
func (b *DetectionBuilder) Build(packagePath string, order int) (DetectedFramework, bool) {
	if b.excluded {
		return DetectedFramework{}, false
	}

	confidence := confidenceFor(b.dependency != "", b.configFile != "")
	if confidence == ConfidenceNone {
		return DetectedFramework{}, false
	}

	fw := b.framework
	return DetectedFramework{
		ID:                fw.ID,
		Name:              fw.Name,
		Category:          fw.Category,
		Confidence:        confidence,
		PackagePath:       packagePath,
		Dependency:        b.dependency,
		DependencyVersion: b.version,
		ConfigFile:        b.configFile,
		BuildCommand:      fw.BuildCommand,
		DevCommand:        fw.DevCommand,
		PublishDir:        fw.PublishDir,
		Port:              fw.Port,
		order:             order,
	}, true
}
