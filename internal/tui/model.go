// Package tui implements the interactive matrix browser: a list view
// grouped by testability quadrant and a detail view with the full metric
// breakdown for the selected function.
package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/brandon-arrendondo/knots/internal/matrix"
	"github.com/brandon-arrendondo/knots/internal/metrics"
)

type viewMode int

const (
	modeList viewMode = iota
	modeDetail
)

// Model holds the TUI state for the matrix browser.
type Model struct {
	functions     []metrics.FunctionMetrics
	entries       []matrix.Entry
	cursor        int
	viewMode      viewMode
	width         int
	height        int
	statusMessage string
	quitting      bool
}

// NewModel builds a Model from the functions collected by a scan, listing
// them by quadrant (QUICK WINS, INVEST IN TESTS, ADD DOCS, REFACTOR) and in
// scan order within each quadrant.
func NewModel(functions []metrics.FunctionMetrics) Model {
	entries := matrix.CategorizeAll(functions)
	rank := map[matrix.Quadrant]int{matrix.QuickWins: 0, matrix.InvestTests: 1, matrix.AddDocs: 2, matrix.Refactor: 3}
	order := make([]int, len(entries))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return rank[entries[order[a]].Quadrant] < rank[entries[order[b]].Quadrant]
	})
	m := Model{
		functions: make([]metrics.FunctionMetrics, len(order)),
		entries:   make([]matrix.Entry, len(order)),
	}
	for i, j := range order {
		m.functions[i], m.entries[i] = functions[j], entries[j]
	}
	return m
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			MarginBottom(1)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("211"))

	selectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("170")).
			Background(lipgloss.Color("235"))

	normalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	quickWinsStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	investStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	addDocsStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	refactorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginTop(1)

	detailBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(1, 2)
)

func quadrantStyle(q matrix.Quadrant) lipgloss.Style {
	switch q {
	case matrix.QuickWins:
		return quickWinsStyle
	case matrix.InvestTests:
		return investStyle
	case matrix.AddDocs:
		return addDocsStyle
	default:
		return refactorStyle
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	}

	return m, nil
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.viewMode {
	case modeList:
		return m.handleListKeys(msg)
	case modeDetail:
		return m.handleDetailKeys(msg)
	}
	return m, nil
}

func (m Model) handleListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, key.NewBinding(key.WithKeys("q", "ctrl+c"))):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, key.NewBinding(key.WithKeys("up", "k"))):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, key.NewBinding(key.WithKeys("down", "j"))):
		if m.cursor < len(m.entries)-1 {
			m.cursor++
		}

	case key.Matches(msg, key.NewBinding(key.WithKeys("enter", "space"))):
		if m.cursor < len(m.entries) {
			m.viewMode = modeDetail
		}
	}

	return m, nil
}

func (m Model) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, key.NewBinding(key.WithKeys("q", "ctrl+c"))):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, key.NewBinding(key.WithKeys("esc", "backspace"))):
		m.viewMode = modeList
		m.statusMessage = ""
	}

	return m, nil
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	switch m.viewMode {
	case modeList:
		return m.renderList()
	case modeDetail:
		return m.renderDetail()
	}

	return ""
}

func (m Model) renderList() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Testability Matrix"))
	b.WriteString("\n\n")

	summary := fmt.Sprintf("%d function(s) analyzed", len(m.entries))
	b.WriteString(headerStyle.Render(summary))
	b.WriteString("\n\n")

	visibleStart := m.cursor - 10
	if visibleStart < 0 {
		visibleStart = 0
	}
	visibleEnd := visibleStart + 20
	if visibleEnd > len(m.entries) {
		visibleEnd = len(m.entries)
	}

	for i := visibleStart; i < visibleEnd; i++ {
		e := m.entries[i]

		prefix := "  "
		if i == m.cursor {
			prefix = "▶ "
		}

		quadrant := quadrantStyle(e.Quadrant).Render(fmt.Sprintf("%-16s", e.Quadrant))
		line := fmt.Sprintf("%s%s %-30s mccabe=%-3d score=%-3d", prefix, quadrant, truncate(e.Name, 28), e.Mccabe, e.TestScore)

		if i == m.cursor {
			line = selectedStyle.Render(line)
		} else {
			line = normalStyle.Render(line)
		}

		b.WriteString(line)
		b.WriteString("\n")
	}

	if visibleStart > 0 {
		b.WriteString(helpStyle.Render(fmt.Sprintf("  ... %d more above ...", visibleStart)))
		b.WriteString("\n")
	}
	if visibleEnd < len(m.entries) {
		b.WriteString(helpStyle.Render(fmt.Sprintf("  ... %d more below ...", len(m.entries)-visibleEnd)))
		b.WriteString("\n")
	}

	if m.statusMessage != "" {
		b.WriteString("\n")
		b.WriteString(m.statusMessage)
		b.WriteString("\n")
	}

	help := helpStyle.Render("↑/↓: Navigate | Enter: Details | q: Quit")
	b.WriteString("\n")
	b.WriteString(help)

	return b.String()
}

func (m Model) renderDetail() string {
	if m.cursor >= len(m.entries) || m.cursor >= len(m.functions) {
		return "No function selected"
	}

	e := m.entries[m.cursor]
	fn := m.functions[m.cursor]

	var b strings.Builder

	b.WriteString(titleStyle.Render("Function Details"))
	b.WriteString("\n\n")

	details := fmt.Sprintf(
		"Name:       %s\nLines:      %d-%d\nQuadrant:   %s\n\n"+
			"Cyclomatic: %d\nCognitive:  %d\nNesting:    %d\nSLOC:       %d\nReturns:    %d\n"+
			"ABC:        (%d, %d, %d), magnitude %.2f\n\n"+
			"Test Score: %d (%s, %s)\n"+
			"  signature=%d dependency=%d observable=%d implementation=%d documentation=%d\n",
		fn.Name, fn.LineStart, fn.LineEnd, quadrantStyle(e.Quadrant).Render(string(e.Quadrant)),
		fn.Cyclomatic, fn.Cognitive, fn.Nesting, fn.SLOC, fn.ReturnCount,
		fn.ABC.Assignments, fn.ABC.Branches, fn.ABC.Conditions, fn.ABC.Magnitude(),
		fn.TestScore.TotalScore, fn.TestScore.Classification(), fn.TestScore.AutomationLevel(),
		fn.TestScore.SignatureScore, fn.TestScore.DependencyScore, fn.TestScore.ObservableScore,
		fn.TestScore.ImplementationScore, fn.TestScore.DocumentationScore,
	)

	box := detailBoxStyle.Render(details)
	b.WriteString(box)

	help := helpStyle.Render("\nEsc: Back | q: Quit")
	b.WriteString(help)

	return b.String()
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
