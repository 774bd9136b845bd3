package controller

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	m "github.com/takty/croqujs-sub000/internal/model"
)

// Header: title (2 lines) and path (2 lines). Footer: help (2 lines).
const declarationsReservedLines = 6

type declarationItem struct {
	index int
	decl  m.Declaration
}

func (d declarationItem) FilterValue() string {
	return d.decl.Target
}

// declarationDelegate renders one declaration per row.
type declarationDelegate struct{}

func (d declarationDelegate) Height() int  { return 1 }
func (d declarationDelegate) Spacing() int { return 0 }
func (d declarationDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

func (d declarationDelegate) Render(w io.Writer, lm list.Model, index int, item list.Item) {
	di, ok := item.(declarationItem)
	if !ok {
		return
	}

	line := renderDeclaration(di)
	if index == lm.Index() {
		line = selectedStyle.Render(line)
	}

	_, _ = fmt.Fprint(w, line)
}

func renderDeclaration(di declarationItem) string {
	line := fmt.Sprintf("  %2d. %s %s", di.index+1, kindStyle.Render("@"+string(di.decl.Kind)), di.decl.Target)

	if di.decl.Alias != "" {
		line += " as " + aliasStyle.Render(di.decl.Alias)
	}

	if di.decl.Remote {
		line += dimStyle.Render("  (remote)")
	}

	return line
}

// declarationsModel lists the declarations of one script, paging through
// them when they do not fit the terminal.
type declarationsModel struct {
	path   m.Path
	items  []declarationItem
	list   list.Model
	width  int
	height int
}

func newDeclarationsModel(path m.Path, decls []m.Declaration) declarationsModel {
	items := make([]declarationItem, len(decls))
	listItems := make([]list.Item, len(decls))

	for i, decl := range decls {
		items[i] = declarationItem{index: i, decl: decl}
		listItems[i] = items[i]
	}

	l := list.New(listItems, declarationDelegate{}, 80, 10)
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)

	return declarationsModel{path: path, items: items, list: l}
}

func (dm *declarationsModel) setSize(width, height int) {
	dm.width = width
	dm.height = height

	perPage := height - declarationsReservedLines
	if perPage < 1 {
		perPage = 1
	}

	dm.list.SetSize(width, perPage)
}

// needsPagination returns true if the list is too large to fit on screen.
func (dm declarationsModel) needsPagination() bool {
	if dm.height == 0 || len(dm.items) == 0 {
		return false
	}

	return len(dm.items) > dm.height-declarationsReservedLines
}

func (dm declarationsModel) Init() tea.Cmd {
	return nil
}

func (dm declarationsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		dm.setSize(size.Width, size.Height)

		return dm, nil
	}

	var cmd tea.Cmd

	dm.list, cmd = dm.list.Update(msg)

	return dm, cmd
}

// View renders the paged list. staticView is used when everything fits.
func (dm declarationsModel) View() string {
	var b strings.Builder

	dm.renderHeader(&b)
	b.WriteString(dm.list.View())
	b.WriteString("\n\n")
	b.WriteString(dimStyle.Render("  ↑/k: up | ↓/j: down | ←/→: page | q: quit"))
	b.WriteString("\n")

	return b.String()
}

func (dm declarationsModel) staticView() string {
	var b strings.Builder

	dm.renderHeader(&b)

	if len(dm.items) == 0 {
		b.WriteString(dimStyle.Render("  no dependencies declared"))
		b.WriteString("\n")

		return b.String()
	}

	for _, item := range dm.items {
		b.WriteString(renderDeclaration(item))
		b.WriteString("\n")
	}

	return b.String()
}

func (dm declarationsModel) renderHeader(b *strings.Builder) {
	b.WriteString(titleStyle.Render(fmt.Sprintf("%d dependenc%s", len(dm.items), plural(len(dm.items), "y", "ies"))))
	b.WriteString("\n")
	b.WriteString(summaryStyle.Render(string(dm.path)))
	b.WriteString("\n")
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}

	return many
}
