package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/btd6-randomizer/internal/catalog"
	"github.com/vovakirdan/btd6-randomizer/internal/selector"
)

// Picker limits
const (
	maxPickerTowers     = 50
	maxPickerDuplicates = 10
	minListHeight       = 5
	pickerChrome        = 11 // Title, tabs, summary, help and margins
)

type section int

const (
	sectionModes section = iota
	sectionMaps
	sectionHeroes
	sectionOptions
	sectionCount
)

var sectionTitles = [sectionCount]string{"Modes", "Maps", "Heroes", "Options"}

// Rows of the options section
const (
	optionTowerCount = iota
	optionDuplicates
	optionMaxDuplicates
	optionRows
)

// RollRequestMsg asks the session to generate a configuration.
type RollRequestMsg struct {
	Restriction selector.Restriction
}

// ShowHistoryMsg asks the session to open the history screen.
type ShowHistoryMsg struct{}

// PickerModel is the Bubble Tea model for choosing a restriction.
type PickerModel struct {
	modes  []catalog.Mode
	maps   []catalog.Map
	heroes []catalog.Hero

	// Checked items of the modes, maps and heroes sections
	checked [sectionOptions][]bool

	section section
	cursor  [sectionCount]int
	offset  [sectionCount]int

	towerCount      int
	allowDuplicates bool
	maxDuplicates   int

	width     int
	height    int
	keyMapper *KeyMapper
	help      help.Model
	quitting  bool
}

// NewPickerModel creates a picker preloaded from a restriction.
// Items named in the restriction start checked; an empty list checks everything.
func NewPickerModel(cat *catalog.Catalog, initial selector.Restriction, width, height int) PickerModel {
	m := PickerModel{
		modes:           cat.Modes(),
		maps:            cat.Maps(),
		heroes:          cat.Heroes(),
		towerCount:      clamp(initial.TowerCount, 1, maxPickerTowers),
		allowDuplicates: initial.AllowDuplicates,
		maxDuplicates:   clamp(initial.MaxDuplicatesPerTower, 1, maxPickerDuplicates),
		width:           width,
		height:          height,
		keyMapper:       NewKeyMapper(),
		help:            help.New(),
	}
	m.help.Width = width

	m.checked[sectionModes] = checkNames(len(m.modes), func(i int) string { return m.modes[i].Name }, modeNames(initial.Modes))
	m.checked[sectionMaps] = checkNames(len(m.maps), func(i int) string { return m.maps[i].Name }, mapNames(initial.Maps))
	m.checked[sectionHeroes] = checkNames(len(m.heroes), func(i int) string { return m.heroes[i].Name }, heroNames(initial.Heroes))

	return m
}

// Init initializes the picker model.
func (m PickerModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the picker.
func (m PickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.scrollToCursor()
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for the picker.
func (m PickerModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor[m.section] > 0 {
			m.cursor[m.section]--
		}
		m.scrollToCursor()

	case MenuActionDown:
		if m.cursor[m.section] < m.sectionLen(m.section)-1 {
			m.cursor[m.section]++
		}
		m.scrollToCursor()

	case MenuActionPrevSection:
		m.section = (m.section + sectionCount - 1) % sectionCount

	case MenuActionNextSection:
		m.section = (m.section + 1) % sectionCount

	case MenuActionToggle:
		m.toggle()

	case MenuActionToggleAll:
		m.toggleAll()

	case MenuActionIncrease:
		m.adjust(1)

	case MenuActionDecrease:
		m.adjust(-1)

	case MenuActionRoll:
		r := m.Restriction()
		return m, func() tea.Msg { return RollRequestMsg{Restriction: r} }

	case MenuActionHistory:
		return m, func() tea.Msg { return ShowHistoryMsg{} }

	case MenuActionHelp:
		m.help.ShowAll = !m.help.ShowAll
	}

	return m, nil
}

func (m *PickerModel) toggle() {
	if m.section == sectionOptions {
		if m.cursor[sectionOptions] == optionDuplicates {
			m.allowDuplicates = !m.allowDuplicates
		}
		return
	}
	items := m.checked[m.section]
	i := m.cursor[m.section]
	items[i] = !items[i]
}

func (m *PickerModel) toggleAll() {
	if m.section == sectionOptions {
		return
	}
	items := m.checked[m.section]
	all := countChecked(items) == len(items)
	for i := range items {
		items[i] = !all
	}
}

func (m *PickerModel) adjust(delta int) {
	if m.section != sectionOptions {
		return
	}
	switch m.cursor[sectionOptions] {
	case optionTowerCount:
		m.towerCount = clamp(m.towerCount+delta, 1, maxPickerTowers)
	case optionDuplicates:
		m.allowDuplicates = delta > 0
	case optionMaxDuplicates:
		m.maxDuplicates = clamp(m.maxDuplicates+delta, 1, maxPickerDuplicates)
	}
}

func (m PickerModel) sectionLen(s section) int {
	switch s {
	case sectionModes:
		return len(m.modes)
	case sectionMaps:
		return len(m.maps)
	case sectionHeroes:
		return len(m.heroes)
	default:
		return optionRows
	}
}

func (m PickerModel) listHeight() int {
	h := m.height - pickerChrome
	if h < minListHeight {
		return minListHeight
	}
	return h
}

// scrollToCursor keeps the cursor row inside the visible window.
func (m *PickerModel) scrollToCursor() {
	s := m.section
	h := m.listHeight()
	if m.cursor[s] < m.offset[s] {
		m.offset[s] = m.cursor[s]
	}
	if m.cursor[s] >= m.offset[s]+h {
		m.offset[s] = m.cursor[s] - h + 1
	}
}

// Restriction builds the restriction described by the current selection.
// The result may be empty in some field; Generate reports that.
func (m PickerModel) Restriction() selector.Restriction {
	r := selector.Restriction{
		TowerCount:            m.towerCount,
		AllowDuplicates:       m.allowDuplicates,
		MaxDuplicatesPerTower: m.maxDuplicates,
	}
	for i, on := range m.checked[sectionModes] {
		if on {
			r.Modes = append(r.Modes, m.modes[i])
		}
	}
	for i, on := range m.checked[sectionMaps] {
		if on {
			r.Maps = append(r.Maps, m.maps[i])
		}
	}
	for i, on := range m.checked[sectionHeroes] {
		if on {
			r.Heroes = append(r.Heroes, m.heroes[i])
		}
	}
	return r
}

// IsQuitting returns true if user requested to quit.
func (m PickerModel) IsQuitting() bool {
	return m.quitting
}

// View renders the picker.
func (m PickerModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(titleStyle.Render(centerText("B T D 6   R A N D O M I Z E R", m.width)))
	b.WriteString("\n\n")

	b.WriteString(m.renderTabs())
	b.WriteString("\n\n")

	if m.section == sectionOptions {
		b.WriteString(m.renderOptions())
	} else {
		b.WriteString(m.renderList())
	}
	b.WriteString("\n")

	b.WriteString(m.renderSummary())
	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render(m.help.View(pickerHelp{m.keyMapper.Keys()})))

	return b.String()
}

func (m PickerModel) renderTabs() string {
	tabs := make([]string, sectionCount)
	for s := section(0); s < sectionCount; s++ {
		label := sectionTitles[s]
		if s != sectionOptions {
			label = fmt.Sprintf("%s %d/%d", label, countChecked(m.checked[s]), m.sectionLen(s))
		}
		if s == m.section {
			tabs[s] = headerStyle.Render(label)
		} else {
			tabs[s] = dimStyle.Render(" " + label + " ")
		}
	}
	return centerText(strings.Join(tabs, " "), m.width)
}

func (m PickerModel) renderList() string {
	s := m.section
	n := m.sectionLen(s)
	h := m.listHeight()

	start := m.offset[s]
	end := start + h
	if end > n {
		end = n
	}

	lines := make([]string, 0, h+2)
	if start > 0 {
		lines = append(lines, dimStyle.Render(fmt.Sprintf("  ... %d more", start)))
	}
	for i := start; i < end; i++ {
		name, note := m.item(s, i)
		line := fmt.Sprintf("%s %s", checkbox(m.checked[s][i]), name)
		if note != "" {
			line += "  " + dimStyle.Render(note)
		}
		if i == m.cursor[s] {
			line = cursorStyle.Render("> ") + line
		} else {
			line = "  " + line
		}
		lines = append(lines, line)
	}
	if end < n {
		lines = append(lines, dimStyle.Render(fmt.Sprintf("  ... %d more", n-end)))
	}

	return panelStyle.Render(strings.Join(lines, "\n"))
}

// item returns the label and dim note for row i of a list section.
func (m PickerModel) item(s section, i int) (string, string) {
	switch s {
	case sectionModes:
		mode := m.modes[i]
		if mode.Rule.IsRestricted() {
			return mode.Name, mode.Rule.String()
		}
		return mode.Name, ""
	case sectionMaps:
		if m.maps[i].HasWater {
			return m.maps[i].Name, "water"
		}
		return m.maps[i].Name, ""
	default:
		if m.heroes[i].RequiresWater {
			return m.heroes[i].Name, "needs water"
		}
		return m.heroes[i].Name, ""
	}
}

func (m PickerModel) renderOptions() string {
	rows := []string{
		fmt.Sprintf("Tower count        < %d >", m.towerCount),
		fmt.Sprintf("Allow duplicates   %s", checkbox(m.allowDuplicates)),
		fmt.Sprintf("Max per tower      < %d >", m.maxDuplicates),
	}
	if !m.allowDuplicates {
		rows[optionMaxDuplicates] = dimStyle.Render(rows[optionMaxDuplicates])
	}

	for i := range rows {
		if i == m.cursor[sectionOptions] {
			rows[i] = cursorStyle.Render("> ") + rows[i]
		} else {
			rows[i] = "  " + rows[i]
		}
	}
	return panelStyle.Render(strings.Join(rows, "\n"))
}

func (m PickerModel) renderSummary() string {
	dupes := "no duplicates"
	if m.allowDuplicates {
		dupes = fmt.Sprintf("up to %d of each", m.maxDuplicates)
	}
	summary := fmt.Sprintf("%d towers, %s", m.towerCount, dupes)

	var empty []string
	for s := sectionModes; s < sectionOptions; s++ {
		if countChecked(m.checked[s]) == 0 {
			empty = append(empty, strings.ToLower(sectionTitles[s]))
		}
	}
	if len(empty) > 0 {
		return lipgloss.JoinVertical(lipgloss.Left,
			dimStyle.Render(summary),
			errorStyle.Render("Nothing selected in: "+strings.Join(empty, ", ")),
		)
	}
	return dimStyle.Render(summary)
}

func checkNames(n int, name func(int) string, wanted []string) []bool {
	checked := make([]bool, n)
	if len(wanted) == 0 {
		for i := range checked {
			checked[i] = true
		}
		return checked
	}
	set := make(map[string]bool, len(wanted))
	for _, w := range wanted {
		set[w] = true
	}
	for i := range checked {
		checked[i] = set[name(i)]
	}
	return checked
}

func countChecked(items []bool) int {
	n := 0
	for _, on := range items {
		if on {
			n++
		}
	}
	return n
}

func modeNames(in []catalog.Mode) []string {
	names := make([]string, len(in))
	for i, v := range in {
		names[i] = v.Name
	}
	return names
}

func mapNames(in []catalog.Map) []string {
	names := make([]string, len(in))
	for i, v := range in {
		names[i] = v.Name
	}
	return names
}

func heroNames(in []catalog.Hero) []string {
	names := make([]string, len(in))
	for i, v := range in {
		names[i] = v.Name
	}
	return names
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
