package detection

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"buildinfo/pkg/detector"
	"buildinfo/pkg/detector/settings"
)

var (
	titleStyle        = lipgloss.NewStyle().Background(lipgloss.Color("#01FAC6")).Foreground(lipgloss.Color("#030303")).Bold(true).Padding(0, 1, 0)
	focusedStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#01FAC6")).Bold(true)
	selectedItemStyle = lipgloss.NewStyle().PaddingLeft(1).Foreground(lipgloss.Color("170")).Bold(true)
	descriptionStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#40BDA3"))
	helpStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	successStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("46")).Bold(true)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#01FAC6")).
			Padding(1, 2).
			Width(72)
)

// Render formats a detection summary for the terminal
func Render(summary detector.Summary) string {
	var s strings.Builder

	s.WriteString(titleStyle.Render("Build Detection Results"))
	s.WriteString("\n\n")

	var project strings.Builder
	field(&project, "Directory", summary.BaseDir)

	pm := "none"
	if summary.PackageManager != nil {
		pm = summary.PackageManager.DisplayName
		if summary.PackageManager.Version != "" {
			pm += " " + summary.PackageManager.Version
		}
	}
	field(&project, "Package manager", pm)

	if summary.Workspace != nil {
		field(&project, "Workspace", fmt.Sprintf("%d packages in %s", len(summary.Workspace.Packages), summary.Workspace.RootDir))
	}

	if len(summary.BuildSystems) > 0 {
		var names []string
		for _, bs := range summary.BuildSystems {
			name := bs.Name
			if bs.Version != "" {
				name += " " + bs.Version
			}
			names = append(names, name)
		}
		field(&project, "Build systems", strings.Join(names, ", "))
	}

	s.WriteString(boxStyle.Render(strings.TrimRight(project.String(), "\n")))
	s.WriteString("\n\n")

	if len(summary.Settings) == 0 {
		s.WriteString(helpStyle.Render("No build settings could be inferred."))
		s.WriteString("\n")
		return s.String()
	}

	for _, entry := range summary.Settings {
		s.WriteString(boxStyle.Render(renderSettings(entry)))
		s.WriteString("\n")
	}

	return s.String()
}

func renderSettings(entry settings.Settings) string {
	var content strings.Builder

	name := entry.Name
	if entry.PackagePath != "" {
		name += " (" + entry.PackagePath + ")"
	}
	content.WriteString(focusedStyle.Render(name))
	content.WriteString("\n\n")

	if entry.Framework != nil {
		field(&content, "Framework", entry.Framework.Name)
	}

	commands := []struct{ label, command string }{
		{"Install", entry.InstallCommand},
		{"Build", entry.BuildCommand},
		{"Dev", entry.DevCommand},
	}
	for _, c := range commands {
		if c.command == "" {
			continue
		}
		content.WriteString(successStyle.Render("  ✓ "))
		content.WriteString(descriptionStyle.Render(fmt.Sprintf("%-8s %s", c.label, c.command)))
		content.WriteString("\n")
	}

	if entry.PublishDirectory != "" {
		field(&content, "Publish", entry.PublishDirectory)
	}
	if entry.FrameworkPort != 0 {
		field(&content, "Port", fmt.Sprintf("%d", entry.FrameworkPort))
	}
	if len(entry.Integrations) > 0 {
		field(&content, "Integrations", strings.Join(entry.Integrations, ", "))
	}

	return strings.TrimRight(content.String(), "\n")
}

func field(b *strings.Builder, label, value string) {
	b.WriteString(focusedStyle.Render(label + ":"))
	b.WriteString(selectedItemStyle.Render(value))
	b.WriteString("\n")
}
