package tui

import (
	"io"
	"math/rand"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/btd6-randomizer/internal/assets"
	"github.com/vovakirdan/btd6-randomizer/internal/catalog"
	"github.com/vovakirdan/btd6-randomizer/internal/selector"
	"github.com/vovakirdan/btd6-randomizer/internal/storage"
)

type screen int

const (
	screenPicker screen = iota
	screenResult
	screenHistory
)

// SessionConfig describes one interactive session.
type SessionConfig struct {
	Catalog *catalog.Catalog
	Initial selector.Restriction // Starting picker state
	Store   RollStore            // nil disables history
	Images  assets.Lookup        // nil hides image URLs
	Seed    int64                // Seed of the first roll, 0 = time based
	User    string
	Width   int
	Height  int
	Logger  *log.Logger
}

// SessionModel manages the full session flow: picker -> result -> history.
// This is the top-level model for local and SSH sessions.
type SessionModel struct {
	cfg      SessionConfig
	selector *selector.Selector
	screen   screen
	picker   PickerModel
	result   ResultModel
	history  HistoryModel
	last     selector.Restriction
	rolls    int
	quitting bool
}

// NewSessionModel creates a new session model.
func NewSessionModel(cfg SessionConfig) SessionModel {
	if cfg.Logger == nil {
		cfg.Logger = log.New(io.Discard)
	}

	return SessionModel{
		cfg:      cfg,
		selector: selector.New(cfg.Catalog),
		screen:   screenPicker,
		picker:   NewPickerModel(cfg.Catalog, cfg.Initial, cfg.Width, cfg.Height),
		last:     cfg.Initial,
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.picker.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		// Handle window resize globally
		m.cfg.Width = msg.Width
		m.cfg.Height = msg.Height
		if m.screen != screenPicker {
			m.picker = updateAs(m.picker, msg)
		}

	case RollRequestMsg:
		m.last = msg.Restriction
		return m.roll(), nil

	case RerollMsg:
		return m.roll(), nil

	case BackMsg:
		m.screen = screenPicker
		return m, nil

	case ShowHistoryMsg:
		m.history = NewHistoryModel(m.cfg.Store, m.cfg.Width, m.cfg.Height)
		m.screen = screenHistory
		return m, m.history.Init()
	}

	var cmd tea.Cmd
	switch m.screen {
	case screenResult:
		m.result, cmd = updateWith(m.result, msg)
		m.quitting = m.result.IsQuitting()
	case screenHistory:
		m.history, cmd = updateWith(m.history, msg)
		m.quitting = m.history.IsQuitting()
	default:
		m.picker, cmd = updateWith(m.picker, msg)
		m.quitting = m.picker.IsQuitting()
	}

	return m, cmd
}

// roll generates a configuration for the last restriction and records it.
func (m SessionModel) roll() SessionModel {
	seed := m.nextSeed()
	m.rolls++

	res, err := m.selector.Generate(m.last, rand.New(rand.NewSource(seed)))
	result := NewResultModel(res, err, seed, m.cfg.Images, m.cfg.Width, m.cfg.Height)

	logger := m.cfg.Logger.With("user", m.cfg.User, "seed", seed)
	if err != nil {
		logger.Warn("roll failed", "error", err)
	} else {
		logger.Info("rolled", "mode", res.Mode.Name, "map", res.Map.Name, "hero", res.Hero.Name, "towers", len(res.Towers))
		if m.cfg.Store != nil {
			id, saveErr := m.cfg.Store.SaveRoll(storage.NewRoll(res, seed, m.cfg.User))
			if saveErr != nil {
				logger.Warn("could not save roll", "error", saveErr)
			} else {
				result = result.WithRollID(id)
			}
		}
	}

	m.result = result
	m.screen = screenResult
	return m
}

// nextSeed uses the configured seed for the first roll and the clock after.
func (m SessionModel) nextSeed() int64 {
	if m.rolls == 0 && m.cfg.Seed != 0 {
		return m.cfg.Seed
	}
	return time.Now().UnixNano()
}

// View renders the current screen.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenResult:
		return m.result.View()
	case screenHistory:
		return m.history.View()
	default:
		return m.picker.View()
	}
}

// IsQuitting returns true if user requested to quit.
func (m SessionModel) IsQuitting() bool {
	return m.quitting
}

// Rolls returns how many rolls this session has made.
func (m SessionModel) Rolls() int {
	return m.rolls
}

// RunSession runs an interactive session in the local terminal.
func RunSession(cfg SessionConfig) error {
	p := tea.NewProgram(
		NewSessionModel(cfg),
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}

// updateWith forwards msg to a sub-model and keeps its concrete type.
func updateWith[M tea.Model](model M, msg tea.Msg) (M, tea.Cmd) {
	next, cmd := model.Update(msg)
	if typed, ok := next.(M); ok {
		return typed, cmd
	}
	return model, cmd
}

func updateAs[M tea.Model](model M, msg tea.Msg) M {
	next, _ := updateWith(model, msg)
	return next
}
