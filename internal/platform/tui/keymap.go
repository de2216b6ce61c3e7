package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// MenuAction represents a screen action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionPrevSection
	MenuActionNextSection
	MenuActionToggle
	MenuActionToggleAll
	MenuActionIncrease
	MenuActionDecrease
	MenuActionRoll
	MenuActionReroll
	MenuActionImages
	MenuActionHistory
	MenuActionBack
	MenuActionHelp
	MenuActionQuit
)

// KeyMap holds every key binding used by the randomizer screens.
type KeyMap struct {
	Up          key.Binding
	Down        key.Binding
	PrevSection key.Binding
	NextSection key.Binding
	Toggle      key.Binding
	ToggleAll   key.Binding
	Increase    key.Binding
	Decrease    key.Binding
	Roll        key.Binding
	Reroll      key.Binding
	Images      key.Binding
	History     key.Binding
	Back        key.Binding
	Help        key.Binding
	Quit        key.Binding
}

// DefaultKeyMap returns default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k", "w"),
			key.WithHelp("up/k", "move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j", "s"),
			key.WithHelp("down/j", "move down"),
		),
		PrevSection: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("left/h", "prev section"),
		),
		NextSection: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("right/l", "next section"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" ", "x"),
			key.WithHelp("space", "toggle"),
		),
		ToggleAll: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "all/none"),
		),
		Increase: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "increase"),
		),
		Decrease: key.NewBinding(
			key.WithKeys("-", "_"),
			key.WithHelp("-", "decrease"),
		),
		Roll: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "roll"),
		),
		Reroll: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "re-roll"),
		),
		Images: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "images"),
		),
		History: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "history"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// KeyMapper translates Bubble Tea key messages to menu actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct {
	keys KeyMap
}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{keys: DefaultKeyMap()}
}

// Keys returns the bindings used by the mapper.
func (km *KeyMapper) Keys() KeyMap {
	return km.keys
}

// MapKeyToMenuAction translates a key to a menu action.
// Quit is checked first so ctrl+c always works.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	k := km.keys
	switch {
	case key.Matches(msg, k.Quit):
		return MenuActionQuit
	case key.Matches(msg, k.Up):
		return MenuActionUp
	case key.Matches(msg, k.Down):
		return MenuActionDown
	case key.Matches(msg, k.PrevSection):
		return MenuActionPrevSection
	case key.Matches(msg, k.NextSection):
		return MenuActionNextSection
	case key.Matches(msg, k.Toggle):
		return MenuActionToggle
	case key.Matches(msg, k.ToggleAll):
		return MenuActionToggleAll
	case key.Matches(msg, k.Increase):
		return MenuActionIncrease
	case key.Matches(msg, k.Decrease):
		return MenuActionDecrease
	case key.Matches(msg, k.Roll):
		return MenuActionRoll
	case key.Matches(msg, k.Reroll):
		return MenuActionReroll
	case key.Matches(msg, k.Images):
		return MenuActionImages
	case key.Matches(msg, k.History):
		return MenuActionHistory
	case key.Matches(msg, k.Back):
		return MenuActionBack
	case key.Matches(msg, k.Help):
		return MenuActionHelp
	}
	return MenuActionNone
}

// pickerHelp is the help.KeyMap shown under the picker.
type pickerHelp struct{ KeyMap }

func (k pickerHelp) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextSection, k.Toggle, k.Roll, k.History, k.Help, k.Quit}
}

func (k pickerHelp) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PrevSection, k.NextSection},
		{k.Toggle, k.ToggleAll, k.Increase, k.Decrease},
		{k.Roll, k.History, k.Help, k.Quit},
	}
}

// resultHelp is the help.KeyMap shown under a roll result.
type resultHelp struct{ KeyMap }

func (k resultHelp) ShortHelp() []key.Binding {
	return []key.Binding{k.Reroll, k.Images, k.Back, k.History, k.Quit}
}

func (k resultHelp) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Reroll, k.Images}, {k.Back, k.History, k.Quit}}
}

// historyHelp is the help.KeyMap shown under the history table.
type historyHelp struct{ KeyMap }

func (k historyHelp) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Back, k.Quit}
}

func (k historyHelp) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down}, {k.Back, k.Quit}}
}
