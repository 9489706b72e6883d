package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"rollcall/internal/adapters/tui/styles"
	"rollcall/internal/domain"
)

// ConfirmKeyMap defines key bindings for the confirmation view
type ConfirmKeyMap struct {
	Confirm key.Binding
	Cancel  key.Binding
}

var ConfirmKeys = ConfirmKeyMap{
	Confirm: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "confirm"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("n", "esc"),
		key.WithHelp("n/esc", "cancel"),
	),
}

// ConfirmModel asks before the plan is executed. Renames are a bulk
// filesystem mutation; the plan list alone is not consent.
type ConfirmModel struct {
	ViewState
	entries []domain.PlanEntry
	renames int
	skips   int
}

// NewConfirmModel creates a new confirmation model
func NewConfirmModel() *ConfirmModel {
	return &ConfirmModel{}
}

// SetPlan sets the plan about to be applied
func (m *ConfirmModel) SetPlan(entries []domain.PlanEntry) {
	m.entries = entries
	m.renames = 0
	m.skips = 0
	for _, e := range entries {
		if e.Action == domain.ActionRename && !e.NoOp {
			m.renames++
		} else {
			m.skips++
		}
	}
}

// Init initializes the confirmation view
func (m *ConfirmModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the confirmation view
func (m *ConfirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, ConfirmKeys.Cancel):
		return m, func() tea.Msg { return SwitchToPlanMsg{} }
	case key.Matches(keyMsg, ConfirmKeys.Confirm):
		return m, func() tea.Msg { return ConfirmApplyMsg{} }
	}
	return m, nil
}

// View renders the confirmation view
func (m *ConfirmModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("Apply renames"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("Rename %d files (%d skipped)?", m.renames, m.skips))
	b.WriteString("\n\n")
	b.WriteString(styles.HelpKey.Render("y"))
	b.WriteString(styles.HelpDesc.Render(" to confirm, "))
	b.WriteString(styles.HelpKey.Render("n"))
	b.WriteString(styles.HelpDesc.Render(" to cancel"))

	return styles.App.Render(b.String())
}
