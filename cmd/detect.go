package cmd

import (
	"github.com/spf13/cobra"
)

// detectCmd runs the same detection as the root command
var detectCmd = &cobra.Command{
	Use:   "detect [PROJECT_PATH]",
	Short: "Detect package manager, workspace, build systems and frameworks",
	Long: Logo + `
Runs every detection stage against PROJECT_PATH (default: the current directory)
and prints the inferred build settings.`,
	Args: cobra.MaximumNArgs(1),
	Run:  runRootCommand,
}
