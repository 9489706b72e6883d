package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"rollcall/internal/adapters/tui/styles"
	"rollcall/internal/domain"
)

// ResolveKeyMap defines key bindings for the resolve view
type ResolveKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Cancel key.Binding
}

var ResolveKeys = ResolveKeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	Select: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "select"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc", "q"),
		key.WithHelp("esc", "cancel"),
	),
}

// ResolveModel lets the user pick which roster identity an ambiguous file
// belongs to. Only identities the matcher itself proposed are offered.
type ResolveModel struct {
	ViewState
	match  *domain.MatchResult
	cursor int
}

// NewResolveModel creates a new resolve view model
func NewResolveModel() *ResolveModel {
	return &ResolveModel{}
}

// SetMatch sets the ambiguous match to resolve
func (m *ResolveModel) SetMatch(match *domain.MatchResult) {
	m.match = match
	m.cursor = 0
	m.ClearMessage()
}

// Init initializes the resolve view
func (m *ResolveModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the resolve view
func (m *ResolveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || m.match == nil {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, ResolveKeys.Cancel):
		return m, func() tea.Msg { return SwitchToPlanMsg{} }

	case key.Matches(keyMsg, ResolveKeys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(keyMsg, ResolveKeys.Down):
		if m.cursor < len(m.match.Candidates)-1 {
			m.cursor++
		}

	case key.Matches(keyMsg, ResolveKeys.Select):
		chosen := m.match.Candidates[m.cursor]
		source := m.match.File.OriginalPath
		return m, func() tea.Msg {
			return ResolvedMsg{Source: source, ID: chosen.ID}
		}
	}

	return m, nil
}

// View renders the resolve view
func (m *ResolveModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("Resolve ambiguous file"))
	b.WriteString("\n")

	if m.match == nil {
		b.WriteString(styles.MutedText.Render("Nothing to resolve."))
		return styles.App.Render(b.String())
	}

	b.WriteString(m.match.File.OriginalPath)
	b.WriteString("\n")
	b.WriteString(styles.Subtitle.Render(m.match.Reason))
	b.WriteString("\n\n")
	b.WriteString(styles.InputLabel.Render("Who is this?"))
	b.WriteString("\n")

	for i, c := range m.match.Candidates {
		line := fmt.Sprintf("  %s  %s", c.ID, c.DisplayName)
		if i == m.cursor {
			line = styles.EntrySelected.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(statusLine(ResolveKeys.Select, ResolveKeys.Cancel))

	return styles.App.Render(b.String())
}
