package domain

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/require"

	"github.com/takty/croqujs-sub000/internal/adapter"
	m "github.com/takty/croqujs-sub000/internal/model"
)

func writeTestFile(t *testing.T, path, contents string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
}

func readTestFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	require.NoError(t, err)

	return string(content)
}

func testLogger() *log.Logger {
	return log.New(io.Discard)
}

func newLocalResolver(libraryRoot string) *Resolver {
	return NewResolver(adapter.NewLocalSourceFSAdapter(), m.Path(libraryRoot), testLogger())
}
