package domain

import (
	_ "embed"
	"fmt"
	"html"
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/charmbracelet/log"

	"github.com/takty/croqujs-sub000/internal/adapter"
	m "github.com/takty/croqujs-sub000/internal/model"
)

const (
	// IndexFileName is the entry document of a bundle.
	IndexFileName = "index.html"
	// ShimFileName is the name the built-in runtime shim is written under.
	ShimFileName = "croqujs-runtime.js"
	// DefaultTitle is used for documents that were never saved.
	DefaultTitle = "Untitled"

	pageHead = "<!DOCTYPE html>" + LineTerminator +
		"<html>" + LineTerminator +
		"<head>" + LineTerminator +
		`<meta charset="utf-8">` + LineTerminator +
		"<title>%s</title>" + LineTerminator
	pageScriptOpen = LineTerminator +
		"</head>" + LineTerminator +
		"<body>" + LineTerminator +
		"<script>" + LineTerminator
	pageTail = LineTerminator +
		"</script>" + LineTerminator +
		"</body>" + LineTerminator +
		"</html>" + LineTerminator
	scriptTag = `<script src="%s"></script>`
)

//go:embed assets/croqujs-runtime.js
var builtinShim []byte

// Assembler builds runnable web-page bundles.
type Assembler struct {
	fs           adapter.SourceFSAdapter
	analyzer     adapter.ScriptAnalyzer
	resolver     *Resolver
	packager     *Packager
	shim         m.Path
	defaultTitle string
	logger       *log.Logger
}

// NewAssembler constructs an Assembler. shim is the runtime shim file to
// inject; when empty the built-in shim is used.
func NewAssembler(
	fs adapter.SourceFSAdapter,
	analyzer adapter.ScriptAnalyzer,
	resolver *Resolver,
	packager *Packager,
	shim m.Path,
	defaultTitle string,
	logger *log.Logger,
) *Assembler {
	if defaultTitle == "" {
		defaultTitle = DefaultTitle
	}

	return &Assembler{
		fs:           fs,
		analyzer:     analyzer,
		resolver:     resolver,
		packager:     packager,
		shim:         shim,
		defaultTitle: defaultTitle,
		logger:       logger,
	}
}

// AssembleWebPage writes doc and its dependencies into outDir. Dependencies
// are processed in declaration order and the first failure aborts the
// assembly before the index document is written. Files written up to that
// point are left in place.
func (a *Assembler) AssembleWebPage(doc m.Document, outDir m.Path, injectShim bool) (m.PageResult, error) {
	baseDir, _ := doc.BaseDir()

	var tags []string

	if injectShim {
		src, err := a.writeShim(outDir)
		if err != nil {
			return m.PageResult{}, err
		}

		tags = append(tags, fmt.Sprintf(scriptTag, src))
	}

	for _, decl := range ParseDeclarations(doc.Text) {
		src, err := a.include(decl, baseDir, outDir)
		if err != nil {
			a.logger.Warn("assembly aborted", "target", decl.Target, "err", err)
			return m.PageResult{}, err
		}

		tags = append(tags, fmt.Sprintf(scriptTag, src))
	}

	prefix := fmt.Sprintf(pageHead, html.EscapeString(a.pageTitle(doc))) +
		strings.Join(tags, LineTerminator) +
		pageScriptOpen
	lines := splitLines(doc.Text)
	body := strings.Join(lines, LineTerminator)

	indexPath := a.fs.JoinPath(string(outDir), IndexFileName)
	if err := a.fs.WriteFile(indexPath, []byte(prefix+body+pageTail), filePerm); err != nil {
		return m.PageResult{}, &WriteError{Path: indexPath, Err: err}
	}

	a.logger.Info("page written", "path", indexPath, "dependencies", len(tags))

	return m.PageResult{
		Path:           indexPath,
		UserCodeOffset: utf8.RuneCountInString(prefix),
		UserCodeLine:   strings.Count(prefix, LineTerminator) + 1,
		UserCodeLength: utf8.RuneCountInString(body),
		UserCodeLines:  len(lines),
		Tags:           tags,
	}, nil
}

// include places one dependency into the bundle and returns the src of its
// inclusion tag.
func (a *Assembler) include(decl m.Declaration, baseDir, outDir m.Path) (string, error) {
	if decl.Remote {
		return decl.Target, nil
	}

	rel := BundleRelPath(decl.Target)

	if decl.Kind != m.KindUse {
		if _, err := a.resolver.CopyTo(decl, baseDir, outDir); err != nil {
			return "", err
		}

		return rel, nil
	}

	src, err := a.resolver.Locate(decl, baseDir)
	if err != nil {
		return "", err
	}

	dst := a.fs.JoinPath(string(outDir), filepath.FromSlash(rel))
	if a.resolver.SameFile(src, dst) {
		return "", &WriteError{Path: dst, Err: ErrSameFile}
	}

	content, err := a.resolver.Read(decl, baseDir)
	if err != nil {
		return "", err
	}

	if !a.packager.PackageAsLibrary(content, dst, decl.Alias, a.analyzer.FunctionNames(content)) {
		return "", &WriteError{Path: dst, Err: ErrNotWritten}
	}

	return rel, nil
}

func (a *Assembler) writeShim(outDir m.Path) (string, error) {
	if a.shim == "" {
		dst := a.fs.JoinPath(string(outDir), ShimFileName)
		if err := a.fs.WriteFile(dst, builtinShim, filePerm); err != nil {
			return "", &WriteError{Path: dst, Err: err}
		}

		return ShimFileName, nil
	}

	name := filepath.Base(string(a.shim))

	dst := a.fs.JoinPath(string(outDir), name)
	if err := a.fs.CopyFile(a.shim, dst); err != nil {
		return "", &WriteError{Path: dst, Err: err}
	}

	return name, nil
}

func (a *Assembler) pageTitle(doc m.Document) string {
	name := doc.BaseName()
	if name == "" {
		return a.defaultTitle
	}

	r, size := utf8.DecodeRuneInString(name)

	return string(unicode.ToUpper(r)) + name[size:]
}
