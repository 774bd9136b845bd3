package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/takty/croqujs-sub000/internal/config"
	"github.com/takty/croqujs-sub000/internal/controller"
	controllermocks "github.com/takty/croqujs-sub000/internal/controller/mocks"
	"github.com/takty/croqujs-sub000/internal/domain"
	domainmocks "github.com/takty/croqujs-sub000/internal/domain/mocks"
)

// newTestRoot builds a fresh root command with the given subcommands and
// restores the package state afterwards.
func newTestRoot(t *testing.T, subcommands ...*cobra.Command) (*cobra.Command, *bytes.Buffer) {
	t.Helper()

	originalExporter, originalUI, originalCfg, originalCfgPath := exporter, ui, cfg, cfgPath
	t.Cleanup(func() {
		exporter, ui, cfg, cfgPath = originalExporter, originalUI, originalCfg, originalCfgPath
	})

	var buf bytes.Buffer

	cmd := newRootCmd()
	cmd.AddCommand(subcommands...)
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)

	return cmd, &buf
}

func useConfig(t *testing.T, c *config.Config, path string) {
	t.Helper()

	original := loadConfig
	loadConfig = func(context.Context, config.LoadOptions) (*config.Config, string, error) {
		return c, path, nil
	}

	t.Cleanup(func() { loadConfig = original })
}

func useMockExporter(t *testing.T) *domainmocks.MockExporter {
	t.Helper()

	mockExporter := domainmocks.NewMockExporter(t)

	original := newExporter
	newExporter = func(*config.Config) domain.Exporter { return mockExporter }

	t.Cleanup(func() { newExporter = original })

	return mockExporter
}

func useMockUI(t *testing.T) *controllermocks.MockUI {
	t.Helper()

	mockUI := controllermocks.NewMockUI(t)

	original := newUI
	newUI = func(*cobra.Command) controller.UI { return mockUI }

	t.Cleanup(func() { newUI = original })

	return mockUI
}

func writeScript(t *testing.T, path, contents string) string {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	return path
}

func exampleScript(t *testing.T, elem ...string) string {
	t.Helper()

	wd, err := os.Getwd()
	require.NoError(t, err)

	parts := append([]string{wd, "..", "examples"}, elem...)

	return filepath.Clean(filepath.Join(parts...))
}

func TestRootCmd_SetupAppliesFlags(t *testing.T) {
	useConfig(t, config.DefaultConfig(), "")

	var seen *config.Config

	original := newExporter
	newExporter = func(c *config.Config) domain.Exporter {
		seen = c
		return original(c)
	}
	t.Cleanup(func() { newExporter = original })

	cmd, _ := newTestRoot(t, newConfigCmd())
	cmd.SetArgs([]string{"--library-root", "/opt/lib", "--verbose", "config", "show"})

	require.NoError(t, cmd.Execute())

	require.NotNil(t, seen)
	assert.Equal(t, "/opt/lib", seen.LibraryRoot)
	assert.Equal(t, "/opt/lib", cfg.LibraryRoot)
}

func TestRootCmd_ConfigLoadError(t *testing.T) {
	cmd, _ := newTestRoot(t, newConfigCmd())
	cmd.SetArgs([]string{"--config", filepath.Join(t.TempDir(), "missing.toml"), "config", "show"})

	err := cmd.Execute()
	assert.ErrorIs(t, err, config.ErrConfigNotFound)
}

func TestConfigCmd_Show(t *testing.T) {
	useConfig(t, &config.Config{LibraryRoot: "/lib", DefaultTitle: "Untitled", Parallel: 2, LogLevel: "warn"}, "/etc/croqujs.toml")

	cmd, buf := newTestRoot(t, newConfigCmd())
	cmd.SetArgs([]string{"config", "show"})

	require.NoError(t, cmd.Execute())

	output := buf.String()
	assert.Contains(t, output, "# loaded from /etc/croqujs.toml")
	assert.Contains(t, output, "library_root")
	assert.Contains(t, output, "/lib")
	assert.Contains(t, output, "parallel = 2")
}

func TestParsePaths(t *testing.T) {
	assert.Len(t, parsePaths(nil), 1)
	assert.Equal(t, "./...", string(parsePaths([]string{"./..."})[0]))
}

func TestExitError(t *testing.T) {
	err := &ExitError{Code: 3, Err: domain.ErrUnresolved}

	assert.Equal(t, domain.ErrUnresolved.Error(), err.Error())
	assert.ErrorIs(t, err, domain.ErrUnresolved)
}
