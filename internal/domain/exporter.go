// Package domain contains the dependency resolution and export logic.
package domain

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/takty/croqujs-sub000/internal/adapter"
	m "github.com/takty/croqujs-sub000/internal/model"
)

// Exporter defines the operations offered to export commands.
type Exporter interface {
	// Declarations lists the dependencies declared in doc.
	Declarations(doc m.Document) []m.Declaration
	// FunctionNames lists the top-level functions of source.
	FunctionNames(source string) []string
	// Check resolves every local dependency of doc without writing anything.
	Check(doc m.Document) m.CheckResult
	// ExportLibrary writes source wrapped as a library under namespace.
	ExportLibrary(source string, out m.Path, namespace string, functions []string) error
	// ExportWebPage writes a runnable bundle for doc into outDir.
	ExportWebPage(doc m.Document, outDir m.Path, injectShim bool) (m.PageResult, error)
	// Export dispatches on the kind of target.
	Export(doc m.Document, target m.ExportTarget) (m.ExportResult, error)
}

// Options configures an Exporter.
type Options struct {
	// LibraryRoot is searched after the document's own directory.
	LibraryRoot m.Path
	// RuntimeShim replaces the built-in runtime shim when set.
	RuntimeShim m.Path
	// DefaultTitle is the page title of documents without an origin.
	DefaultTitle string
	Logger       *log.Logger
}

type exporter struct {
	analyzer  adapter.ScriptAnalyzer
	resolver  *Resolver
	packager  *Packager
	assembler *Assembler
}

// NewExporter creates a new Exporter backed by the provided adapters.
func NewExporter(fs adapter.SourceFSAdapter, analyzer adapter.ScriptAnalyzer, opts Options) Exporter {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	resolver := NewResolver(fs, opts.LibraryRoot, logger)
	packager := NewPackager(fs, logger)

	return &exporter{
		analyzer:  analyzer,
		resolver:  resolver,
		packager:  packager,
		assembler: NewAssembler(fs, analyzer, resolver, packager, opts.RuntimeShim, opts.DefaultTitle, logger),
	}
}

func (e *exporter) Declarations(doc m.Document) []m.Declaration {
	return ParseDeclarations(doc.Text)
}

func (e *exporter) FunctionNames(source string) []string {
	return e.analyzer.FunctionNames(source)
}

// Check stops at the first local dependency that cannot be located. Remote
// declarations are collected but never looked up.
func (e *exporter) Check(doc m.Document) m.CheckResult {
	baseDir, _ := doc.BaseDir()
	remote := []m.Declaration{}

	for _, decl := range ParseDeclarations(doc.Text) {
		if decl.Remote {
			remote = append(remote, decl)
			continue
		}

		if _, err := e.resolver.Locate(decl, baseDir); err != nil {
			return m.CheckResult{Unresolved: decl.Target, Remote: remote}
		}
	}

	return m.CheckResult{Remote: remote}
}

func (e *exporter) ExportLibrary(source string, out m.Path, namespace string, functions []string) error {
	if !e.packager.PackageAsLibrary(source, out, namespace, functions) {
		return fmt.Errorf("%w: %s", ErrNotWritten, out)
	}

	return nil
}

func (e *exporter) ExportWebPage(doc m.Document, outDir m.Path, injectShim bool) (m.PageResult, error) {
	return e.assembler.AssembleWebPage(doc, outDir, injectShim)
}

func (e *exporter) Export(doc m.Document, target m.ExportTarget) (m.ExportResult, error) {
	switch t := target.(type) {
	case m.LibraryTarget:
		if err := e.ExportLibrary(doc.Text, t.Output, t.Namespace, t.Functions); err != nil {
			return m.ExportResult{}, err
		}

		return m.ExportResult{Library: t.Output}, nil
	case m.PageTarget:
		res, err := e.ExportWebPage(doc, t.OutputDir, t.InjectShim)
		if err != nil {
			return m.ExportResult{}, err
		}

		return m.ExportResult{Page: &res}, nil
	default:
		return m.ExportResult{}, fmt.Errorf("unsupported export target %T", target)
	}
}
