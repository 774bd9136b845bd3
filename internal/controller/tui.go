package controller

import (
	"fmt"
	"io"
	"os"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	m "github.com/takty/croqujs-sub000/internal/model"
)

// TUI implements UI using Bubble Tea for interactive display.
type TUI struct {
	output io.Writer

	mu      sync.Mutex
	program *tea.Program
	started bool
	done    chan struct{}
	err     error
}

// NewTUI creates a new TUI.
func NewTUI(output io.Writer) *TUI {
	return &TUI{output: output}
}

// Start initializes the UI. The progress program is started lazily by the
// first check.
func (t *TUI) Start() error {
	return nil
}

// Close stops a running program and waits for it to exit.
func (t *TUI) Close() {
	t.mu.Lock()
	program := t.program
	t.mu.Unlock()

	if program == nil {
		return
	}

	program.Quit()
	t.Wait()
}

// Wait blocks until the running program exits.
func (t *TUI) Wait() {
	t.mu.Lock()
	done := t.done
	t.mu.Unlock()

	if done != nil {
		<-done
	}
}

// DisplayDeclarations lists declarations, paging when they do not fit.
func (t *TUI) DisplayDeclarations(path m.Path, decls []m.Declaration) error {
	model := newDeclarationsModel(path, decls)

	if f, ok := t.output.(*os.File); ok {
		width, height, err := term.GetSize(int(f.Fd()))
		if err == nil {
			model.setSize(width, height)
		}
	}

	// If list is small, just print and exit
	if !model.needsPagination() {
		_, err := fmt.Fprint(t.output, model.staticView())
		return err
	}

	program := tea.NewProgram(model, tea.WithOutput(t.output), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return err
	}

	return nil
}

// DisplayCheckStarted starts the progress display for total scripts.
func (t *TUI) DisplayCheckStarted(total int) {
	t.ensureStarted()
	t.send(checkStartedMsg{total: total})
}

// DisplayCheckResult advances the progress display.
func (t *TUI) DisplayCheckResult(check FileCheck) {
	t.send(checkResultMsg{check: check})
}

// DisplayCheckSummary ends the progress display and prints every result.
func (t *TUI) DisplayCheckSummary(checks []FileCheck) error {
	t.send(checkDoneMsg{})
	t.Wait()

	t.mu.Lock()
	err := t.err
	t.mu.Unlock()

	if err != nil {
		return err
	}

	_, err = fmt.Fprint(t.output, renderCheckSummary(checks))

	return err
}

// DisplayLibrary shows where a library was written and what it exports.
func (t *TUI) DisplayLibrary(out m.Path, namespace string, functions []string) error {
	_, err := fmt.Fprintf(t.output, "%s %s\n  %s %s\n  %s %s\n",
		okStyle.Render("✓ library written"), out,
		dimStyle.Render("namespace"), accentStyle.Render(namespace),
		dimStyle.Render("exports  "), exportList(functions),
	)

	return err
}

// DisplayPage shows where a page was written and where the user's code begins.
func (t *TUI) DisplayPage(res m.PageResult) error {
	_, err := fmt.Fprintf(t.output, "%s %s\n  %s %d\n  %s line %d, offset %d\n",
		okStyle.Render("✓ page written"), res.Path,
		dimStyle.Render("dependencies"), len(res.Tags),
		dimStyle.Render("user code   "), res.UserCodeLine, res.UserCodeOffset,
	)

	return err
}

func (t *TUI) ensureStarted() {
	t.mu.Lock()
	started := t.started
	t.mu.Unlock()

	if started {
		return
	}

	_ = t.startWithModel(newCheckModel())
}

func (t *TUI) startWithModel(model tea.Model) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.started {
		return nil
	}

	program := tea.NewProgram(model, tea.WithOutput(t.output), tea.WithInput(nil))
	done := make(chan struct{})

	t.program = program
	t.done = done
	t.started = true

	go func() {
		_, err := program.Run()

		t.mu.Lock()
		t.err = err
		t.mu.Unlock()

		close(done)
	}()

	return nil
}

func (t *TUI) send(msg tea.Msg) {
	t.mu.Lock()
	program := t.program
	t.mu.Unlock()

	if program == nil {
		return
	}

	program.Send(msg)
}
