package domain

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/takty/croqujs-sub000/internal/adapter"
	m "github.com/takty/croqujs-sub000/internal/model"
)

// Resolver locates declared dependencies. A relative declaration is tried
// against the document's directory first and the bundled library root second.
type Resolver struct {
	fs          adapter.SourceFSAdapter
	libraryRoot m.Path
	logger      *log.Logger
}

// NewResolver constructs a Resolver. An empty libraryRoot disables the
// bundled-library fallback.
func NewResolver(fs adapter.SourceFSAdapter, libraryRoot m.Path, logger *log.Logger) *Resolver {
	return &Resolver{fs: fs, libraryRoot: libraryRoot, logger: logger}
}

// Locate returns the first candidate path that is an existing regular file.
// baseDir is empty for documents that were never saved.
func (r *Resolver) Locate(decl m.Declaration, baseDir m.Path) (m.Path, error) {
	if decl.Remote {
		return "", fmt.Errorf("%w: %s", ErrRemoteNotAllowed, decl.Target)
	}

	for _, candidate := range r.candidates(decl, baseDir) {
		info, err := r.fs.FileInfo(candidate)
		if err != nil || info.IsDir() {
			r.logger.Debug("candidate rejected", "target", decl.Target, "path", candidate)
			continue
		}

		r.logger.Debug("resolved", "target", decl.Target, "path", candidate)

		return candidate, nil
	}

	return "", &UnresolvedError{Path: decl.Target}
}

// Read returns the content of the first candidate that can be read.
func (r *Resolver) Read(decl m.Declaration, baseDir m.Path) (string, error) {
	if decl.Remote {
		return "", fmt.Errorf("%w: %s", ErrRemoteNotAllowed, decl.Target)
	}

	for _, candidate := range r.candidates(decl, baseDir) {
		content, err := r.fs.ReadFile(candidate)
		if err != nil {
			r.logger.Debug("candidate unreadable", "target", decl.Target, "path", candidate, "err", err)
			continue
		}

		r.logger.Debug("resolved", "target", decl.Target, "path", candidate)

		return string(content), nil
	}

	return "", &UnresolvedError{Path: decl.Target}
}

// CopyTo copies the located dependency into outDir at the path it was
// declared with and returns the destination.
func (r *Resolver) CopyTo(decl m.Declaration, baseDir, outDir m.Path) (m.Path, error) {
	src, err := r.Locate(decl, baseDir)
	if err != nil {
		return "", err
	}

	dst := r.fs.JoinPath(string(outDir), filepath.FromSlash(BundleRelPath(decl.Target)))
	if r.SameFile(src, dst) {
		return "", &WriteError{Path: dst, Err: ErrSameFile}
	}

	if err := r.fs.CopyFile(src, dst); err != nil {
		return "", &WriteError{Path: dst, Err: err}
	}

	r.logger.Debug("copied", "from", src, "to", dst)

	return dst, nil
}

// SameFile reports whether a and b name the same file, either by their
// cleaned absolute paths or, when both exist, by identity on disk.
func (r *Resolver) SameFile(a, b m.Path) bool {
	absA, errA := filepath.Abs(string(a))
	absB, errB := filepath.Abs(string(b))

	if errA == nil && errB == nil && absA == absB {
		return true
	}

	infoA, err := r.fs.FileInfo(a)
	if err != nil {
		return false
	}

	infoB, err := r.fs.FileInfo(b)
	if err != nil {
		return false
	}

	return os.SameFile(infoA, infoB)
}

func (r *Resolver) candidates(decl m.Declaration, baseDir m.Path) []m.Path {
	target := filepath.FromSlash(m.ToSlash(decl.Target))
	if filepath.IsAbs(target) {
		return []m.Path{m.Path(target)}
	}

	candidates := make([]m.Path, 0, 2)
	if baseDir != "" {
		candidates = append(candidates, r.fs.JoinPath(string(baseDir), target))
	}

	if r.libraryRoot != "" {
		candidates = append(candidates, r.fs.JoinPath(string(r.libraryRoot), target))
	}

	return candidates
}

// BundleRelPath returns the slash-separated path under which a declared
// dependency is stored in a bundle and referenced from the index document.
// Absolute declarations are stored by file name and leading "../" segments
// are dropped, so the result always stays inside the bundle.
func BundleRelPath(target string) string {
	p := path.Clean(m.ToSlash(target))
	if path.IsAbs(p) || filepath.IsAbs(target) || hasDriveLetter(p) {
		return path.Base(p)
	}

	for strings.HasPrefix(p, "../") {
		p = strings.TrimPrefix(p, "../")
	}

	return p
}

func hasDriveLetter(p string) bool {
	return len(p) >= 2 && p[1] == ':' && ('a' <= p[0] && p[0] <= 'z' || 'A' <= p[0] && p[0] <= 'Z')
}
