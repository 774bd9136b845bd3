// Package controller renders command results for the terminal.
package controller

import (
	m "github.com/takty/croqujs-sub000/internal/model"
)

// FileCheck is the dependency check outcome for one script.
type FileCheck struct {
	Path   m.Path
	Result m.CheckResult
	Err    error // set when the script itself could not be read
}

// OK reports whether the script was read and every local dependency resolved.
func (c FileCheck) OK() bool {
	return c.Err == nil && c.Result.OK()
}

// UI defines how command results are presented.
// Implementations can use different output methods (simple text, TUI, etc).
type UI interface {
	Start() error
	Close()
	DisplayDeclarations(path m.Path, decls []m.Declaration) error
	DisplayCheckStarted(total int)
	DisplayCheckResult(check FileCheck)
	DisplayCheckSummary(checks []FileCheck) error
	DisplayLibrary(out m.Path, namespace string, functions []string) error
	DisplayPage(res m.PageResult) error
}
