package domain

import (
	"strings"

	"github.com/charmbracelet/log"

	"github.com/takty/croqujs-sub000/internal/adapter"
	m "github.com/takty/croqujs-sub000/internal/model"
)

// LineTerminator joins every generated line.
const LineTerminator = "\n"

const filePerm = 0o644

// WrapLibrary wraps source in a closure assigned to namespace. The closure
// returns an object exposing each of functions under its own name.
func WrapLibrary(source, namespace string, functions []string) string {
	var b strings.Builder

	b.WriteString("var " + namespace + " = (function () {" + LineTerminator)

	for _, line := range splitLines(source) {
		b.WriteString("\t" + line + LineTerminator)
	}

	pairs := make([]string, 0, len(functions))
	for _, name := range functions {
		pairs = append(pairs, name+": "+name)
	}

	b.WriteString("\treturn {" + strings.Join(pairs, ", ") + "};" + LineTerminator)
	b.WriteString("}());" + LineTerminator)

	return b.String()
}

// Packager writes library wrappers.
type Packager struct {
	fs     adapter.SourceFSAdapter
	logger *log.Logger
}

// NewPackager constructs a Packager.
func NewPackager(fs adapter.SourceFSAdapter, logger *log.Logger) *Packager {
	return &Packager{fs: fs, logger: logger}
}

// PackageAsLibrary writes the wrapped source to out. Write errors are only
// logged: the result is whether out exists after the attempt.
func (p *Packager) PackageAsLibrary(source string, out m.Path, namespace string, functions []string) bool {
	content := WrapLibrary(source, namespace, functions)

	if err := p.fs.WriteFile(out, []byte(content), filePerm); err != nil {
		p.logger.Warn("library write failed", "path", out, "err", err)
	}

	if _, err := p.fs.FileInfo(out); err != nil {
		return false
	}

	p.logger.Debug("library written", "path", out, "namespace", namespace, "functions", len(functions))

	return true
}
