package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/btd6-randomizer/internal/assets"
	"github.com/vovakirdan/btd6-randomizer/internal/catalog"
	"github.com/vovakirdan/btd6-randomizer/internal/selector"
)

const minWidthForRow = 80 // Minimum width to put mode, map and hero side by side

// RerollMsg asks the session to roll again with the same restriction.
type RerollMsg struct{}

// BackMsg asks the session to return to the picker.
type BackMsg struct{}

// ResultModel shows one generated configuration, or the reason there is none.
type ResultModel struct {
	result     selector.Result
	err        error
	seed       int64
	rollID     string
	images     []assets.Image
	showImages bool
	width      int
	height     int
	keyMapper  *KeyMapper
	help       help.Model
	quitting   bool
}

// NewResultModel creates a result screen. Pass a non-nil err to show a failure.
// images may be nil when no image index is configured.
func NewResultModel(res selector.Result, err error, seed int64, images assets.Lookup, width, height int) ResultModel {
	m := ResultModel{
		result:    res,
		err:       err,
		seed:      seed,
		width:     width,
		height:    height,
		keyMapper: NewKeyMapper(),
		help:      help.New(),
	}
	m.help.Width = width
	if err == nil && images != nil {
		m.images = assets.ForConfiguration(images, res.Configuration)
	}
	return m
}

// WithRollID records the history ID of the displayed roll.
func (m ResultModel) WithRollID(id string) ResultModel {
	m.rollID = id
	return m
}

// Init initializes the result model.
func (m ResultModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the result screen.
func (m ResultModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch m.keyMapper.MapKeyToMenuAction(msg) {
		case MenuActionQuit:
			m.quitting = true
			return m, tea.Quit
		case MenuActionReroll, MenuActionRoll:
			return m, func() tea.Msg { return RerollMsg{} }
		case MenuActionBack:
			return m, func() tea.Msg { return BackMsg{} }
		case MenuActionHistory:
			return m, func() tea.Msg { return ShowHistoryMsg{} }
		case MenuActionImages:
			m.showImages = !m.showImages
		case MenuActionHelp:
			m.help.ShowAll = !m.help.ShowAll
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
	}

	return m, nil
}

// Result returns the displayed result and error.
func (m ResultModel) Result() (selector.Result, error) {
	return m.result, m.err
}

// IsQuitting returns true if user requested to quit.
func (m ResultModel) IsQuitting() bool {
	return m.quitting
}

// View renders the result screen.
func (m ResultModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(titleStyle.Render(centerText("YOUR SETUP", m.width)))
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(errorStyle.Render("Could not generate a setup: " + m.err.Error()))
		b.WriteString("\n")
		b.WriteString(dimStyle.Render("Press esc to change the selection."))
	} else {
		b.WriteString(m.renderBoxes())
		b.WriteString(m.renderAdvisories())
		if m.showImages {
			b.WriteString(m.renderImages())
		}
		b.WriteString("\n")
		b.WriteString(dimStyle.Render(m.footer()))
	}

	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render(m.help.View(resultHelp{m.keyMapper.Keys()})))
	return b.String()
}

func (m ResultModel) renderBoxes() string {
	res := m.result

	mapNote := "dry"
	if res.Map.HasWater {
		mapNote = "water"
	}
	modeNote := "all towers"
	if res.Mode.Rule.IsRestricted() {
		modeNote = res.Mode.Rule.String()
	}

	boxWidth := 0
	wide := m.width >= minWidthForRow
	if wide {
		boxWidth = (m.width-6)/3 - 4
	}

	mode := fieldBox("MODE", res.Mode.Name+"\n"+dimStyle.Render(modeNote), colorMode, boxWidth)
	mp := fieldBox("MAP", res.Map.Name+"\n"+dimStyle.Render(mapNote), colorMap, boxWidth)
	hero := fieldBox("HERO", res.Hero.Name+"\n ", colorHero, boxWidth)

	var top string
	if wide {
		top = lipgloss.JoinHorizontal(lipgloss.Top, mode, " ", mp, " ", hero)
	} else {
		top = lipgloss.JoinVertical(lipgloss.Left, mode, mp, hero)
	}

	towersWidth := 0
	if wide {
		towersWidth = lipgloss.Width(top) - 4
	}
	towers := fieldBox(fmt.Sprintf("TOWERS (%d)", len(res.Towers)), strings.Join(towerLines(res.Towers), "\n"), colorTowers, towersWidth)

	return lipgloss.JoinVertical(lipgloss.Left, top, towers) + "\n"
}

// towerLines groups consecutive copies of a tower, e.g. "2x Dart Monkey".
// Towers arrive in canonical order so copies are adjacent.
func towerLines(towers []catalog.Tower) []string {
	var lines []string
	for i := 0; i < len(towers); {
		j := i + 1
		for j < len(towers) && towers[j].Name == towers[i].Name {
			j++
		}
		line := towers[i].Name
		if n := j - i; n > 1 {
			line = fmt.Sprintf("%dx %s", n, line)
		}
		lines = append(lines, line+"  "+dimStyle.Render(towers[i].Category.Title()))
		i = j
	}
	return lines
}

func (m ResultModel) renderAdvisories() string {
	if len(m.result.Advisories) == 0 {
		return ""
	}
	var b strings.Builder
	for _, a := range m.result.Advisories {
		b.WriteString(advisoryStyle.Render("! " + a.Message))
		b.WriteString("\n")
	}
	return b.String()
}

func (m ResultModel) renderImages() string {
	if len(m.images) == 0 {
		return dimStyle.Render("No images available.") + "\n"
	}
	var b strings.Builder
	for _, img := range m.images {
		b.WriteString(dimStyle.Render(fmt.Sprintf("%-6s %s: ", img.Kind, img.Name)))
		b.WriteString(img.URL)
		b.WriteString("\n")
	}
	return b.String()
}

func (m ResultModel) footer() string {
	s := fmt.Sprintf("seed %d", m.seed)
	if m.rollID != "" {
		s += "  id " + m.rollID
	}
	return s
}
