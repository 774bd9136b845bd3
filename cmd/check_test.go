package cmd

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/takty/croqujs-sub000/internal/config"
	"github.com/takty/croqujs-sub000/internal/controller"
	m "github.com/takty/croqujs-sub000/internal/model"
)

func TestCheckCmd_ReportsUnresolved(t *testing.T) {
	useConfig(t, config.DefaultConfig(), "")
	mockExporter := useMockExporter(t)

	dir := t.TempDir()
	good := writeScript(t, filepath.Join(dir, "good.js"), "// @need a\n")
	bad := writeScript(t, filepath.Join(dir, "bad.js"), "// @need b\n")

	mockExporter.On("Check", mock.MatchedBy(func(doc m.Document) bool {
		return doc.Origin == m.Path(good)
	})).Return(m.CheckResult{})
	mockExporter.On("Check", mock.MatchedBy(func(doc m.Document) bool {
		return doc.Origin == m.Path(bad)
	})).Return(m.CheckResult{Unresolved: "b.js"})

	cmd, buf := newTestRoot(t, newCheckCmd())
	cmd.SetArgs([]string{"check", "--parallel", "2", dir})

	err := cmd.Execute()

	var exitErr *ExitError
	require.True(t, errors.As(err, &exitErr), "expected ExitError, got %v", err)
	assert.Equal(t, 1, exitErr.Code)
	assert.Contains(t, err.Error(), "1 of 2")

	output := buf.String()
	assert.Contains(t, output, good)
	assert.Contains(t, output, bad)
	assert.Contains(t, output, `unresolved "b.js"`)
}

func TestCheckCmd_DisplaysEveryResult(t *testing.T) {
	useConfig(t, &config.Config{Parallel: 1, LogLevel: "warn", DefaultTitle: "Untitled"}, "")
	mockExporter := useMockExporter(t)
	mockUI := useMockUI(t)

	dir := t.TempDir()
	path := writeScript(t, filepath.Join(dir, "main.js"), "// @need http://x/a.js\n")
	remote := []m.Declaration{{Kind: m.KindNeed, Target: "http://x/a.js", Remote: true}}

	mockExporter.On("Check", mock.Anything).Return(m.CheckResult{Remote: remote})

	want := controller.FileCheck{Path: m.Path(path), Result: m.CheckResult{Remote: remote}}
	mockUI.On("DisplayCheckStarted", 1).Return()
	mockUI.On("DisplayCheckResult", want).Return()
	mockUI.On("DisplayCheckSummary", []controller.FileCheck{want}).Return(nil)

	cmd, _ := newTestRoot(t, newCheckCmd())
	cmd.SetArgs([]string{"check", dir})

	require.NoError(t, cmd.Execute())
}

func TestCheckCmd_Examples(t *testing.T) {
	useConfig(t, config.DefaultConfig(), "")

	cmd, buf := newTestRoot(t, newCheckCmd())
	cmd.SetArgs([]string{"check", exampleScript(t, "basic")})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "FAILED 0")
}

func TestCheckCmd_LibraryRootFlag(t *testing.T) {
	useConfig(t, config.DefaultConfig(), "")

	dir := t.TempDir()
	writeScript(t, filepath.Join(dir, "main.js"), "// @need colors\n// @import shapes/circle\n")

	t.Run("without library root", func(t *testing.T) {
		cmd, _ := newTestRoot(t, newCheckCmd())
		cmd.SetArgs([]string{"check", "--library-root", t.TempDir(), dir})

		assert.Error(t, cmd.Execute())
	})

	t.Run("with library root", func(t *testing.T) {
		cmd, _ := newTestRoot(t, newCheckCmd())
		cmd.SetArgs([]string{"check", "--library-root", exampleScript(t, "library"), dir})

		assert.NoError(t, cmd.Execute())
	})
}

func TestCheckCmd_ReadError(t *testing.T) {
	useConfig(t, config.DefaultConfig(), "")

	cmd, _ := newTestRoot(t, newCheckCmd())
	cmd.SetArgs([]string{"check", filepath.Join(t.TempDir(), "missing.js")})

	assert.Error(t, cmd.Execute())
}
