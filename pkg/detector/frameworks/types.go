package frameworks

import (
	"fmt"
	"strings"
)

// Category groups frameworks by the purpose they serve in a build
type Category string

const (
	CategoryStaticSiteGenerator Category = "static_site_generator"
	CategoryFrontendFramework   Category = "frontend_framework"
	CategoryBackend             Category = "backend"
	CategoryBuildTool           Category = "build_tool"
)

// Rank orders categories by relevance; lower ranks first
func (c Category) Rank() int {
	switch c {
	case CategoryStaticSiteGenerator:
		return 0
	case CategoryFrontendFramework:
		return 1
	case CategoryBackend:
		return 2
	case CategoryBuildTool:
		return 3
	default:
		return 4
	}
}

// Confidence is how strongly the evidence supports a match
type Confidence int

const (
	ConfidenceNone Confidence = iota
	// ConfidenceLow: dependency found, config file absent
	ConfidenceLow
	// ConfidenceMedium: config file found without a dependency
	ConfidenceMedium
	// ConfidenceHigh: dependency and config file found
	ConfidenceHigh
)

func (c Confidence) String() string {
	switch c {
	case ConfidenceLow:
		return "low"
	case ConfidenceMedium:
		return "medium"
	case ConfidenceHigh:
		return "high"
	default:
		return "none"
	}
}

func (c Confidence) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Confidence) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "low":
		*c = ConfidenceLow
	case "medium":
		*c = ConfidenceMedium
	case "high":
		*c = ConfidenceHigh
	case "none", "":
		*c = ConfidenceNone
	default:
		return fmt.Errorf("unknown confidence %q", text)
	}
	return nil
}

// confidenceFor derives the level from the evidence that produced a match
func confidenceFor(dependencyFound, configFound bool) Confidence {
	switch {
	case dependencyFound && configFound:
		return ConfidenceHigh
	case configFound:
		return ConfidenceMedium
	case dependencyFound:
		return ConfidenceLow
	default:
		return ConfidenceNone
	}
}

// Framework is a registered detector definition
type Framework struct {
	ID       string
	Name     string
	Category Category
	// Dependencies are npm packages, any one of which signals the framework
	Dependencies []string
	// ExcludedDependencies veto a match when present
	ExcludedDependencies []string
	ConfigFiles          []string

	BuildCommand string
	DevCommand   string
	PublishDir   string
	Port         int
}

// DetectedFramework is a framework matched at a package path
type DetectedFramework struct {
	ID                string     `json:"id"`
	Name              string     `json:"name"`
	Category          Category   `json:"category"`
	Confidence        Confidence `json:"confidence"`
	PackagePath       string     `json:"packagePath"`
	Dependency        string     `json:"dependency,omitempty"`
	DependencyVersion string     `json:"dependencyVersion,omitempty"`
	ConfigFile        string     `json:"configFile,omitempty"`

	BuildCommand string `json:"buildCommand,omitempty"`
	DevCommand   string `json:"devCommand,omitempty"`
	PublishDir   string `json:"publishDir,omitempty"`
	Port         int    `json:"port,omitempty"`

	// order is the registration index, the final tie-break
	order int
}
