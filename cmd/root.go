// Package cmd provides the root command and CLI setup for croqujs.
package cmd

import (
	"context"
	"errors"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/takty/croqujs-sub000/internal/adapter"
	"github.com/takty/croqujs-sub000/internal/config"
	"github.com/takty/croqujs-sub000/internal/controller"
	"github.com/takty/croqujs-sub000/internal/domain"
	m "github.com/takty/croqujs-sub000/internal/model"
)

// Version is the semantic version (set via -ldflags).
var Version = "dev"

var fsAdapter adapter.SourceFSAdapter
var analyzer adapter.ScriptAnalyzer
var exporter domain.Exporter
var ui controller.UI
var logger *log.Logger
var cfg *config.Config
var cfgPath string

// Swapped in tests.
var loadConfig = config.Load
var newExporter = func(c *config.Config) domain.Exporter {
	return domain.NewExporter(fsAdapter, analyzer, domain.Options{
		LibraryRoot:  m.Path(c.ResolveLibraryRoot()),
		RuntimeShim:  m.Path(c.RuntimeShim),
		DefaultTitle: c.DefaultTitle,
		Logger:       logger,
	})
}
var newUI = func(cmd *cobra.Command) controller.UI {
	return controller.NewUI(cmd, controller.IsTTY(cmd.OutOrStdout()))
}

func init() {
	logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: config.AppName})
	fsAdapter = adapter.NewLocalSourceFSAdapter()
	analyzer = adapter.NewLocalScriptAnalyzer()
	cfg = config.DefaultConfig()
	ui = controller.NewUI(rootCmd, controller.IsTTY(os.Stdout))
	exporter = newExporter(cfg)
}

var cfgFileFlag string
var verboseFlag bool
var libraryRootFlag string

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "croqujs",
		Short: "Resolve and export sketch scripts",
		Long: `croqujs resolves the dependencies a sketch script declares in
comment directives and exports it as a library or as a runnable web page.

Directives:
  // @use ./math.js as MATH    wrap a script as a library under MATH
  // @need lib/turtle          copy a script next to the page
  // @import https://cdn/x.js  reference a remote script

Paths accept Go-style patterns:
  - ./...          recursively scan current directory
  - ./sketch/...   recursively scan sketch directory`,
		SilenceUsage:      true,
		PersistentPreRunE: setup,
	}
	cmd.PersistentFlags().StringVar(&cfgFileFlag, "config", "", "config file (default is ./"+config.ConfigFileName+")")
	cmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable debug logging")
	cmd.PersistentFlags().StringVar(&libraryRootFlag, "library-root", "", "directory searched after the script's own directory")

	return cmd
}

// setup loads the configuration and wires the exporter and UI for the command
// about to run.
func setup(cmd *cobra.Command, _ []string) error {
	loaded, path, err := loadConfig(cmd.Context(), config.LoadOptions{ConfigFilePath: cfgFileFlag})
	if err != nil {
		return err
	}

	if libraryRootFlag != "" {
		loaded.LibraryRoot = libraryRootFlag
	}

	logger.SetLevel(loaded.Level())

	if verboseFlag {
		logger.SetLevel(log.DebugLevel)
	}

	if path != "" {
		logger.Debug("config loaded", "path", path)
	}

	cfg = loaded
	cfgPath = path
	ui = newUI(cmd)
	exporter = newExporter(loaded)

	return nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(Version),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}

		os.Exit(1)
	}
}

// ExitError signals a non-zero exit code without forcing os.Exit in RunE handlers.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ExitError) Unwrap() error {
	return e.Err
}

func parsePaths(args []string) []m.Path {
	if len(args) == 0 {
		return []m.Path{"."}
	}

	paths := make([]m.Path, 0, len(args))
	for _, arg := range args {
		paths = append(paths, m.Path(arg))
	}

	return paths
}

func readDocument(path m.Path) (m.Document, error) {
	content, err := fsAdapter.ReadFile(path)
	if err != nil {
		return m.Document{}, err
	}

	return m.Document{Text: string(content), Origin: path}, nil
}
