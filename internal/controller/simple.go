package controller

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	m "github.com/takty/croqujs-sub000/internal/model"
)

// SimpleUI implements UI using plain text tables.
type SimpleUI struct {
	cmd *cobra.Command
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// Start initializes the UI.
func (s *SimpleUI) Start() error {
	return nil
}

// Close finalizes the UI.
func (s *SimpleUI) Close() {}

// DisplayDeclarations prints one row per declaration.
func (s *SimpleUI) DisplayDeclarations(path m.Path, decls []m.Declaration) error {
	if len(decls) == 0 {
		s.printf("%s: no dependencies declared\n", path)
		return nil
	}

	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Kind", "Target", "Alias", "Remote"})
	table.SetBorder(false)
	table.SetCenterSeparator("")

	for _, decl := range decls {
		remote := ""
		if decl.Remote {
			remote = "yes"
		}

		table.Append([]string{string(decl.Kind), decl.Target, decl.Alias, remote})
	}

	table.Render()
	s.printf("%s\n%s", path, tableBuffer.String())

	return nil
}

// DisplayCheckStarted is a no-op; results are printed in the summary.
func (s *SimpleUI) DisplayCheckStarted(int) {}

// DisplayCheckResult is a no-op; results are printed in the summary.
func (s *SimpleUI) DisplayCheckResult(FileCheck) {}

// DisplayCheckSummary prints one row per checked script and a failure count.
func (s *SimpleUI) DisplayCheckSummary(checks []FileCheck) error {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Path", "Status", "Detail", "Remote"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER,
	})

	failed := 0

	for _, check := range checks {
		if !check.OK() {
			failed++
		}

		table.Append([]string{
			string(check.Path),
			checkStatus(check),
			checkDetail(check),
			fmt.Sprintf("%d", len(check.Result.Remote)),
		})
	}

	table.SetFooter([]string{
		fmt.Sprintf("Total Files %d", len(checks)),
		fmt.Sprintf("Failed %d", failed),
		"",
		"",
	})

	table.Render()
	s.printf("\n%s", tableBuffer.String())

	return nil
}

// DisplayLibrary prints where a library was written and what it exports.
func (s *SimpleUI) DisplayLibrary(out m.Path, namespace string, functions []string) error {
	s.printf("library written: %s\n", out)
	s.printf("namespace: %s\n", namespace)
	s.printf("exports: %s\n", exportList(functions))

	return nil
}

// DisplayPage prints where a page was written and where the user's code begins.
func (s *SimpleUI) DisplayPage(res m.PageResult) error {
	s.printf("page written: %s\n", res.Path)
	s.printf("dependencies: %d\n", len(res.Tags))
	s.printf("user code: line %d, offset %d\n", res.UserCodeLine, res.UserCodeOffset)

	return nil
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}

func checkStatus(check FileCheck) string {
	if check.OK() {
		return "ok"
	}

	return "failed"
}

func checkDetail(check FileCheck) string {
	switch {
	case check.Err != nil:
		return check.Err.Error()
	case check.Result.Unresolved != "":
		return fmt.Sprintf("unresolved %q", check.Result.Unresolved)
	default:
		return ""
	}
}

func exportList(functions []string) string {
	if len(functions) == 0 {
		return "(none)"
	}

	return strings.Join(functions, ", ")
}
