package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/fluffy-runner/internal/config"
)

// MenuChoice is what the player picked in the main menu.
type MenuChoice int

const (
	ChoiceNone MenuChoice = iota
	ChoicePlay
	ChoiceScores
	ChoiceQuit
)

// MenuItem is one selectable line of the main menu.
type MenuItem struct {
	Title  string
	Choice MenuChoice
	Preset config.DifficultyPreset
}

// MenuKeyMap defines the key bindings of the menu.
type MenuKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Scores key.Binding
	Quit   key.Binding
}

// DefaultMenuKeyMap returns default key bindings.
func DefaultMenuKeyMap() MenuKeyMap {
	return MenuKeyMap{
		Up:     key.NewBinding(key.WithKeys("up", "k", "w"), key.WithHelp("↑/k", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "j", "s"), key.WithHelp("↓/j", "down")),
		Select: key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "select")),
		Scores: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "scores")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c", "esc"), key.WithHelp("q", "quit")),
	}
}

// MenuModel is the Bubble Tea model for the main menu.
type MenuModel struct {
	items    []MenuItem
	cursor   int
	width    int
	height   int
	best     map[string]int
	keys     MenuKeyMap
	selected *MenuItem
}

// NewMenuModel creates the menu. best maps a mode to its leaderboard high
// score and may be nil.
func NewMenuModel(width, height int, best map[string]int) MenuModel {
	items := make([]MenuItem, 0, 6)
	for _, p := range []config.DifficultyPreset{config.DifficultyEasy, config.DifficultyNormal, config.DifficultyHard, config.DifficultyFixed} {
		items = append(items, MenuItem{Title: "Play " + string(p), Choice: ChoicePlay, Preset: p})
	}
	items = append(items,
		MenuItem{Title: "High scores", Choice: ChoiceScores},
		MenuItem{Title: "Quit", Choice: ChoiceQuit},
	)
	return MenuModel{
		items:  items,
		cursor: 1,
		width:  width,
		height: height,
		best:   best,
		keys:   DefaultMenuKeyMap(),
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.selected = &MenuItem{Choice: ChoiceQuit}
			return m, tea.Quit
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.items)-1 {
				m.cursor++
			}
		case key.Matches(msg, m.keys.Scores):
			m.selected = &MenuItem{Choice: ChoiceScores}
			return m, tea.Quit
		case key.Matches(msg, m.keys.Select):
			item := m.items[m.cursor]
			m.selected = &item
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.selected != nil {
		return ""
	}

	var b strings.Builder
	title := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	active := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	b.WriteString("\n")
	b.WriteString(centerText(title.Render("F L U F F Y   R U N N E R"), m.width, 25))
	b.WriteString("\n\n")

	for i, item := range m.items {
		line := item.Title
		if item.Choice == ChoicePlay && m.best[string(item.Preset)] > 0 {
			line = fmt.Sprintf("%-12s best %d", item.Title, m.best[string(item.Preset)])
		}
		if i == m.cursor {
			line = active.Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(centerText(line, m.width, 24))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := "↑/↓: navigate  enter: select  tab: scores  q: quit"
	b.WriteString(centerText(dim.Render(controls), m.width, len([]rune(controls))))
	b.WriteString("\n")
	return b.String()
}

// Selected returns the selected menu item, or nil if none was selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// centerText pads text so that a block of the given visible width is centered.
func centerText(text string, width, visible int) string {
	if visible >= width {
		return text
	}
	return strings.Repeat(" ", (width-visible)/2) + text
}

// RunMenu shows the menu and returns the choice.
func RunMenu(width, height int, best map[string]int) (MenuItem, error) {
	p := tea.NewProgram(NewMenuModel(width, height, best), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return MenuItem{Choice: ChoiceQuit}, err
	}
	m, ok := final.(MenuModel)
	if !ok || m.Selected() == nil {
		return MenuItem{Choice: ChoiceQuit}, nil
	}
	return *m.Selected(), nil
}
