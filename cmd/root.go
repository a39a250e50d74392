package cmd

import (
	"cmp"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"buildinfo/cmd/ui/detection"
	"buildinfo/cmd/ui/spinner"
	"buildinfo/pkg/catalog"
	"buildinfo/pkg/config"
	"buildinfo/pkg/detector"
	"buildinfo/pkg/util"
)

const Version = "1.0.0"

var (
	jsonOutput bool
	verbose    bool
	rootFlag   string
	envFiles   []string
	catalogURL string

	logoStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#01FAC6")).Bold(true)
)

const Logo = `
█▄▄ █░█ █ █░░ █▀▄ █ █▄░█ █▀▀ █▀█
█▄█ █▄█ █ █▄▄ █▄▀ █ █░▀█ █▀░ █▄█
`

var rootCmd = &cobra.Command{
	Use:   "buildinfo [PROJECT_PATH]",
	Short: "Infer how to build a repository",
	Long: Logo + `
buildinfo inspects a repository and infers its package manager, workspace layout,
build systems and frameworks, then compiles concrete build settings for every package.`,
	Version: Version,
	Args:    cobra.MaximumNArgs(1),
	Run:     runRootCommand,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// options are the resolved inputs of one detection run
type options struct {
	projectPath string
	root        string
	envFiles    []string
	catalogURL  string
	verbose     bool
}

func runRootCommand(cmd *cobra.Command, args []string) {
	projectPath := "."
	if len(args) > 0 {
		projectPath = args[0]
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	opts := options{
		projectPath: projectPath,
		root:        rootFlag,
		envFiles:    append(append([]string{}, envFiles...), cfg.EnvFiles...),
		catalogURL:  cmp.Or(catalogURL, cfg.CatalogURL()),
		verbose:     verbose || cfg.Verbose,
	}

	logger := newLogger(os.Stderr, opts.verbose)
	events := detector.NewEvents()
	unsubscribe := events.OnEvent(func(event detector.Event) {
		logger.Debug("stage event", "stage", event.Name)
	})
	defer unsubscribe()

	project, err := buildProject(opts, cfg.Catalog, logger, events)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if jsonOutput || !isTerminal() {
		if err := writeJSON(os.Stdout, project.Summarize(ctx)); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	fmt.Printf("%s\n", logoStyle.Render(Logo))

	spinnerProgram := tea.NewProgram(spinner.InitialModel("Detecting package manager..."))
	stopProgress := events.OnEvent(func(event detector.Event) {
		spinnerProgram.Send(spinner.StageDoneMsg{Name: event.Name})
	})

	finished := make(chan struct{})
	go func() {
		defer close(finished)
		if _, err := spinnerProgram.Run(); err != nil {
			logger.Debug("spinner stopped", "err", err)
		}
	}()

	summary := project.Summarize(ctx)

	stopProgress()
	spinnerProgram.Send(spinner.DoneMsg{})
	<-finished

	fmt.Println(detection.Render(summary))
}

// buildProject turns the resolved options into a detection context
func buildProject(opts options, catalogCfg config.CatalogConfig, logger *log.Logger, events *detector.Events) (*detector.Project, error) {
	baseDir, err := util.ValidateProjectPath(opts.projectPath)
	if err != nil {
		return nil, err
	}

	root, err := util.ResolveSearchRoot(baseDir, opts.root)
	if err != nil {
		return nil, err
	}

	env, err := util.EnvSnapshot(os.Environ(), opts.envFiles...)
	if err != nil {
		return nil, err
	}

	projectOpts := detector.ProjectOptions{
		BaseDir: baseDir,
		Root:    root,
		Env:     env,
		Logger:  logger,
		Events:  events,
	}

	if opts.catalogURL != "" {
		client, err := catalog.NewClient(catalog.Options{
			URL:       opts.catalogURL,
			Timeout:   catalogCfg.Timeout(),
			RetryMax:  catalogCfg.MaxRetries,
			RetryWait: config.DefaultCatalogRetryWait,
			CacheSize: catalogCfg.CacheSize,
			Logger:    logger.WithPrefix("catalog"),
		})
		if err != nil {
			return nil, err
		}
		projectOpts.Catalog = client
	}

	logger.Debug("starting detection", "baseDir", baseDir, "root", root, "catalog", opts.catalogURL != "")
	return detector.NewProject(projectOpts)
}

func newLogger(w io.Writer, verbose bool) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{Prefix: "buildinfo"})
	if verbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

func writeJSON(w io.Writer, summary detector.Summary) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(summary); err != nil {
		return fmt.Errorf("failed to encode detection results: %w", err)
	}
	return nil
}

func isTerminal() bool {
	if os.Getenv("CI") != "" || os.Getenv("TERM") == "dumb" {
		return false
	}
	return term.IsTerminal(int(os.Stdout.Fd()))
}

func init() {
	rootCmd.SetVersionTemplate("buildinfo version {{.Version}}\n")

	rootCmd.AddCommand(detectCmd)

	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output results as JSON (disables the progress view)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log every detection stage")
	rootCmd.PersistentFlags().StringVar(&rootFlag, "root", "", "Upper boundary for upward searches (defaults to the enclosing git repository)")
	rootCmd.PersistentFlags().StringSliceVar(&envFiles, "env-file", nil, ".env files merged into the detection environment")
	rootCmd.PersistentFlags().StringVar(&catalogURL, "catalog-url", "", "Integrations catalog URL (overrides "+config.EnvCatalogURL+")")
}
