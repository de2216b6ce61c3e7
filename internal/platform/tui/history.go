package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/btd6-randomizer/internal/storage"
)

// History layout constants
const (
	minWidthForSidebar = 100 // Minimum width to show mode stats sidebar
	sidebarWidth       = 26  // Width of mode stats sidebar
	maxHistoryRows     = 100 // Max rolls to load
)

// RollStore is the part of the roll history the TUI needs.
type RollStore interface {
	SaveRoll(roll storage.Roll) (string, error)
	RecentRolls(limit int) ([]storage.Roll, error)
	ModeCounts() ([]storage.ModeCount, error)
}

// Ensure Store implements RollStore
var _ RollStore = (*storage.Store)(nil)

// HistoryModel is the Bubble Tea model for the roll history screen.
type HistoryModel struct {
	store       RollStore
	rolls       []storage.Roll
	counts      []storage.ModeCount
	loadErr     error
	table       table.Model
	help        help.Model
	keyMapper   *KeyMapper
	width       int
	height      int
	quitting    bool
	showSidebar bool
}

// NewHistoryModel creates a history screen and loads recent rolls.
func NewHistoryModel(store RollStore, width, height int) HistoryModel {
	m := HistoryModel{
		store:       store,
		keyMapper:   NewKeyMapper(),
		help:        help.New(),
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}
	m.help.Width = width
	m.table = m.createTable()
	m.load()
	return m
}

// createTable creates a new table with appropriate columns.
func (m *HistoryModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Date", Width: 12},
		{Title: "Mode", Width: 18},
		{Title: "Map", Width: 20},
		{Title: "Hero", Width: 16},
		{Title: "Towers", Width: 30},
	}

	// Calculate available width for table
	tableWidth := m.width - 4 // Margins
	if m.showSidebar {
		tableWidth -= sidebarWidth + 3 // Sidebar + border + gap
	}

	// Towers column takes what is left
	fixed := 0
	for _, c := range columns[:4] {
		fixed += c.Width + 2
	}
	if rest := tableWidth - fixed - 2; rest > 10 {
		columns[4].Width = rest
	} else {
		columns[4].Width = 10
	}

	height := m.height - 8 // Leave room for header, help, and margins
	if height < 3 {
		height = 3
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(height),
	)

	// Table styles
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// load reads recent rolls and mode counts from the store.
func (m *HistoryModel) load() {
	m.rolls, m.counts, m.loadErr = nil, nil, nil
	if m.store != nil {
		m.rolls, m.loadErr = m.store.RecentRolls(maxHistoryRows)
		if m.loadErr == nil {
			m.counts, m.loadErr = m.store.ModeCounts()
		}
	}
	m.updateTableRows()
}

// updateTableRows updates the table with loaded rolls.
func (m *HistoryModel) updateTableRows() {
	rows := make([]table.Row, len(m.rolls))
	for i, r := range m.rolls {
		rows[i] = table.Row{
			r.CreatedAt.Local().Format("Jan 02 15:04"),
			r.Mode,
			r.Map,
			r.Hero,
			strings.Join(r.Towers, ", "),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the history model.
func (m HistoryModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the history screen.
func (m HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch m.keyMapper.MapKeyToMenuAction(msg) {
		case MenuActionQuit:
			m.quitting = true
			return m, tea.Quit

		case MenuActionBack, MenuActionHistory:
			return m, func() tea.Msg { return BackMsg{} }

		case MenuActionUp, MenuActionDown:
			// Pass to table for scrolling
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	// Pass other messages to table
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// Rolls returns the loaded rolls, newest first.
func (m HistoryModel) Rolls() []storage.Roll {
	return m.rolls
}

// IsQuitting returns true if user wants to quit entirely.
func (m HistoryModel) IsQuitting() bool {
	return m.quitting
}

// View renders the history screen.
func (m HistoryModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	title := fmt.Sprintf("ROLL HISTORY (%d)", len(m.rolls))
	b.WriteString(titleStyle.MarginBottom(1).Render(centerText(title, m.width)))
	b.WriteString("\n\n")

	content := panelStyle.Render(m.renderTableContent())
	if m.showSidebar {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.renderSidebar(), "  ", content))
	} else {
		b.WriteString(content)
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(historyHelp{m.keyMapper.Keys()})))

	return b.String()
}

// renderSidebar lists how often each mode came up.
func (m HistoryModel) renderSidebar() string {
	style := panelStyle.Width(sidebarWidth)

	var sb strings.Builder
	sb.WriteString("Modes rolled\n")
	sb.WriteString(strings.Repeat("-", sidebarWidth-4))
	sb.WriteString("\n")
	for _, c := range m.counts {
		name := truncate(c.Mode, sidebarWidth-10)
		sb.WriteString(fmt.Sprintf("%-*s %4d\n", sidebarWidth-10, name, c.Count))
	}
	return style.Render(strings.TrimRight(sb.String(), "\n"))
}

// renderTableContent renders the table or an empty message.
func (m HistoryModel) renderTableContent() string {
	emptyStyle := dimStyle.Italic(true).Padding(2, 4)

	switch {
	case m.store == nil:
		return emptyStyle.Render("History is unavailable.\nNo database is open.")
	case m.loadErr != nil:
		return errorStyle.Padding(2, 4).Render("Could not load history:\n" + m.loadErr.Error())
	case len(m.rolls) == 0:
		return emptyStyle.Render("No rolls recorded yet.\nRoll a setup to start the history!")
	}

	return m.table.View()
}
