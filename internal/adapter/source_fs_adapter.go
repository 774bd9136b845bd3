// Package adapter contains filesystem and analysis adapters for the export engine.
package adapter

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	m "github.com/takty/croqujs-sub000/internal/model"
)

// ScriptExt is the extension of the scripts the engine works with.
const ScriptExt = ".js"

const dirPerm = 0o750

// SourceFSAdapter abstracts filesystem-specific operations that the domain layer
// relies on when resolving dependencies and writing bundles. It intentionally
// hides direct `os` access so the export logic can be tested without touching
// the disk.
type SourceFSAdapter interface {
	// Get collects script files for the provided roots. A root ending in
	// "/..." is scanned recursively.
	Get(roots []m.Path) ([]m.Path, error)

	// Walk traverses the provided root path. When recursive is false the
	// implementation should limit itself to the root directory (no sub-dirs).
	Walk(root m.Path, recursive bool, fn FilepathWalkFunc) error

	// ReadFile loads a file from disk and returns its contents.
	ReadFile(path m.Path) ([]byte, error)

	// WriteFile writes content to a file, creating missing parent
	// directories when the first attempt fails because of them.
	WriteFile(path m.Path, content []byte, perm os.FileMode) error

	// CopyFile copies a single file, creating missing parent directories of
	// dst the same way WriteFile does.
	CopyFile(src, dst m.Path) error

	// FileInfo returns metadata for a path so the domain can check existence or
	// distinguish between files and directories when necessary.
	FileInfo(path m.Path) (os.FileInfo, error)

	// JoinPath joins path elements into a single path.
	JoinPath(elem ...string) m.Path
}

// FilepathWalkFunc mirrors the callback shape used by filepath.Walk. It is
// defined here to avoid leaking the standard-library type directly into the
// domain layer.
type FilepathWalkFunc func(path string, info os.FileInfo, err error) error

// LocalSourceFSAdapter is the os-backed SourceFSAdapter.
type LocalSourceFSAdapter struct{}

// NewLocalSourceFSAdapter constructs a LocalSourceFSAdapter instance ready to
// be wired into the exporter.
func NewLocalSourceFSAdapter() *LocalSourceFSAdapter {
	return &LocalSourceFSAdapter{}
}

// Get collects script files for the provided roots, skipping duplicates.
func (a *LocalSourceFSAdapter) Get(roots []m.Path) ([]m.Path, error) {
	if len(roots) == 0 {
		return []m.Path{}, nil
	}

	seen := make(map[string]struct{})

	var scripts []m.Path

	add := func(path string) {
		if _, exists := seen[path]; exists {
			return
		}

		seen[path] = struct{}{}
		scripts = append(scripts, m.Path(path))
	}

	for _, root := range roots {
		rootPath, recursive, err := normalizeRootPath(string(root))
		if err != nil {
			return nil, err
		}

		info, err := a.FileInfo(m.Path(rootPath))
		if err != nil {
			return nil, fmt.Errorf("root path error: %w", err)
		}

		if !info.IsDir() {
			add(rootPath)
			continue
		}

		err = a.Walk(m.Path(rootPath), recursive, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			if info.IsDir() || !isScriptFile(path) {
				return nil
			}

			add(path)

			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	return scripts, nil
}

// Walk iterates over files under root, optionally descending into subdirectories.
func (a *LocalSourceFSAdapter) Walk(root m.Path, recursive bool, fn FilepathWalkFunc) error {
	rootStr := string(root)

	return filepath.Walk(rootStr, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return fn(path, info, err)
		}

		if info.IsDir() && path != rootStr {
			base := filepath.Base(path)
			if !recursive || base == ".git" || base == "node_modules" {
				return filepath.SkipDir
			}
		}

		return fn(path, info, nil)
	})
}

// ReadFile loads file contents from disk.
func (a *LocalSourceFSAdapter) ReadFile(path m.Path) ([]byte, error) {
	// #nosec G304 - reading user-declared dependencies is the purpose of this adapter
	return os.ReadFile(string(path))
}

// WriteFile writes content to path. If the parent directory is missing, every
// missing ancestor is created and the write is retried exactly once.
func (a *LocalSourceFSAdapter) WriteFile(path m.Path, content []byte, perm os.FileMode) error {
	dst := string(path)

	err := os.WriteFile(dst, content, perm)
	if err == nil || !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	if err := ensureDir(filepath.Dir(dst)); err != nil {
		return err
	}

	return os.WriteFile(dst, content, perm)
}

// CopyFile copies a single file, keeping its permission bits.
func (a *LocalSourceFSAdapter) CopyFile(src, dst m.Path) error {
	info, err := os.Stat(string(src))
	if err != nil {
		return err
	}

	content, err := a.ReadFile(src)
	if err != nil {
		return err
	}

	return a.WriteFile(dst, content, info.Mode().Perm())
}

// FileInfo returns os.FileInfo metadata for the given path.
func (a *LocalSourceFSAdapter) FileInfo(path m.Path) (os.FileInfo, error) {
	return os.Stat(string(path))
}

// JoinPath joins path elements into a single path.
func (a *LocalSourceFSAdapter) JoinPath(elem ...string) m.Path {
	return m.Path(filepath.Join(elem...))
}

// ensureDir creates dir and every missing ancestor, top-down. A directory
// created concurrently by someone else is not an error.
func ensureDir(dir string) error {
	var missing []string

	for d := dir; ; {
		if _, err := os.Stat(d); err == nil {
			break
		} else if !errors.Is(err, fs.ErrNotExist) {
			return err
		}

		missing = append(missing, d)

		parent := filepath.Dir(d)
		if parent == d {
			break
		}

		d = parent
	}

	for i := len(missing) - 1; i >= 0; i-- {
		if err := os.Mkdir(missing[i], dirPerm); err != nil && !errors.Is(err, fs.ErrExist) {
			return err
		}
	}

	return nil
}

func isScriptFile(path string) bool {
	return filepath.Ext(path) == ScriptExt
}

func normalizeRootPath(root string) (string, bool, error) {
	rootStr, recursive := parseRootPath(root)

	if strings.HasPrefix(rootStr, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", false, err
		}

		suffix := strings.TrimPrefix(rootStr, "~")
		suffix = strings.TrimPrefix(suffix, string(os.PathSeparator))
		rootStr = filepath.Join(home, suffix)
	}

	if rootStr == "" {
		rootStr = "."
	}

	abs, err := filepath.Abs(rootStr)
	if err != nil {
		return "", false, err
	}

	return abs, recursive, nil
}

func parseRootPath(rootStr string) (path string, recursive bool) {
	if rootStr == "..." {
		return ".", true
	}

	if strings.HasSuffix(rootStr, "/...") {
		return strings.TrimSuffix(rootStr, "/..."), true
	}

	return rootStr, false
}
