package controller

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const maxProgressWidth = 60

// checkModel shows progress while scripts are being checked. It quits as soon
// as the check is reported done; the summary is printed afterwards.
type checkModel struct {
	width       int
	progressBar progress.Model
	total       int
	completed   int
	failed      int
	current     string
	done        bool
}

func newCheckModel() checkModel {
	prog := progress.New(
		progress.WithDefaultGradient(),
		progress.WithWidth(40),
		progress.WithoutPercentage(),
	)

	return checkModel{progressBar: prog}
}

func (cm checkModel) Init() tea.Cmd {
	return nil
}

func (cm checkModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		cm.width = msg.Width

		cm.progressBar.Width = msg.Width - 4
		if cm.progressBar.Width > maxProgressWidth {
			cm.progressBar.Width = maxProgressWidth
		}

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return cm, tea.Quit
		}

	case checkStartedMsg:
		cm.total = msg.total
		cm.completed = 0
		cm.failed = 0

	case checkResultMsg:
		cm.completed++
		cm.current = string(msg.check.Path)

		if !msg.check.OK() {
			cm.failed++
		}

	case checkDoneMsg:
		cm.done = true
		return cm, tea.Quit
	}

	return cm, nil
}

func (cm checkModel) percent() float64 {
	if cm.total == 0 {
		return 0
	}

	return float64(cm.completed) / float64(cm.total)
}

func (cm checkModel) View() string {
	if cm.done {
		return ""
	}

	title := titleStyle.Render("Checking dependencies")

	summary := summaryStyle.Render(fmt.Sprintf(
		"Progress: %s / %s  •  Failed: %s",
		accentStyle.Render(fmt.Sprintf("%d", cm.completed)),
		accentStyle.Render(fmt.Sprintf("%d", cm.total)),
		failStyle.Render(fmt.Sprintf("%d", cm.failed)),
	))

	bar := lipgloss.NewStyle().Padding(0, 2).Render(cm.progressBar.ViewAs(cm.percent()))

	current := ""
	if cm.current != "" {
		current = dimStyle.Padding(1, 2, 0, 2).Render(cm.current)
	}

	return lipgloss.JoinVertical(lipgloss.Left, title, summary, bar, current) + "\n"
}

// renderCheckSummary renders the final check report.
func renderCheckSummary(checks []FileCheck) string {
	var b strings.Builder

	failed := 0

	for _, check := range checks {
		if check.OK() {
			fmt.Fprintf(&b, "  %s %s", okStyle.Render("✓"), check.Path)
		} else {
			failed++

			fmt.Fprintf(&b, "  %s %s  %s", failStyle.Render("✗"), check.Path, failStyle.Render(checkDetail(check)))
		}

		if n := len(check.Result.Remote); n > 0 {
			b.WriteString(dimStyle.Render(fmt.Sprintf("  (%d remote)", n)))
		}

		b.WriteString("\n")
	}

	b.WriteString("\n")

	status := okStyle.Render("all dependencies resolved")
	if failed > 0 {
		status = failStyle.Render(fmt.Sprintf("%d of %d failed", failed, len(checks)))
	}

	fmt.Fprintf(&b, "  %d file(s) checked, %s\n", len(checks), status)

	return b.String()
}
