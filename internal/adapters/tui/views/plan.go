package views

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"rollcall/internal/adapters/tui/styles"
	"rollcall/internal/application/commands"
	"rollcall/internal/domain"
)

// PlanKeyMap defines key bindings for the plan view
type PlanKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	NextPage key.Binding
	PrevPage key.Binding
	Resolve  key.Binding
	Apply    key.Binding
	Reload   key.Binding
	Undo     key.Binding
	Copy     key.Binding
	Help     key.Binding
	Quit     key.Binding
}

var PlanKeys = PlanKeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	NextPage: key.NewBinding(
		key.WithKeys("l", "right", "pgdown"),
		key.WithHelp("l/→", "next page"),
	),
	PrevPage: key.NewBinding(
		key.WithKeys("h", "left", "pgup"),
		key.WithHelp("h/←", "prev page"),
	),
	Resolve: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "resolve"),
	),
	Apply: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "apply"),
	),
	Reload: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reload"),
	),
	Undo: key.NewBinding(
		key.WithKeys("u"),
		key.WithHelp("u", "undo last batch"),
	),
	Copy: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "copy report"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// PlanModel shows the computed rename plan, one file per line.
type PlanModel struct {
	ViewState
	dir       string
	entries   []domain.PlanEntry
	summary   string
	paginator *Paginator
	loading   bool
}

// NewPlanModel creates a new plan view model
func NewPlanModel(dir string) *PlanModel {
	return &PlanModel{
		dir:       dir,
		paginator: NewPaginator(15),
		loading:   true,
	}
}

// SetPlan replaces the displayed plan
func (m *PlanModel) SetPlan(result *commands.PlanResult) {
	m.entries = result.Entries
	m.summary = result.Summary.String()
	m.paginator.SetTotal(len(result.Entries))
	m.loading = false
	m.ClearMessage()
}

// Selected returns the plan entry under the cursor, or nil.
func (m *PlanModel) Selected() *domain.PlanEntry {
	if len(m.entries) == 0 {
		return nil
	}
	return &m.entries[m.paginator.Cursor()]
}

// Init initializes the plan view
func (m *PlanModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the plan view
func (m *PlanModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, PlanKeys.Quit):
		return m, tea.Quit

	case key.Matches(keyMsg, PlanKeys.Up):
		m.paginator.CursorUp()

	case key.Matches(keyMsg, PlanKeys.Down):
		m.paginator.CursorDown()

	case key.Matches(keyMsg, PlanKeys.NextPage):
		m.paginator.NextPage()

	case key.Matches(keyMsg, PlanKeys.PrevPage):
		m.paginator.PrevPage()

	case key.Matches(keyMsg, PlanKeys.Resolve):
		if e := m.Selected(); e != nil && e.Action == domain.ActionSkipAmbiguous {
			cursor := m.paginator.Cursor()
			return m, func() tea.Msg { return SwitchToResolveMsg{Index: cursor} }
		}
		m.SetMessage("only ambiguous files can be resolved", true)

	case key.Matches(keyMsg, PlanKeys.Apply):
		return m, func() tea.Msg { return SwitchToConfirmMsg{} }

	case key.Matches(keyMsg, PlanKeys.Reload):
		m.loading = true
		return m, func() tea.Msg { return SwitchToPlanMsg{} }

	case key.Matches(keyMsg, PlanKeys.Undo):
		return m, func() tea.Msg { return RequestUndoMsg{} }

	case key.Matches(keyMsg, PlanKeys.Copy):
		if err := clipboard.WriteAll(m.report()); err != nil {
			m.SetMessage("copy failed: "+err.Error(), true)
		} else {
			m.SetMessage("report copied to clipboard", false)
		}

	case key.Matches(keyMsg, PlanKeys.Help):
		return m, func() tea.Msg { return SwitchToHelpMsg{} }
	}

	return m, nil
}

// View renders the plan view
func (m *PlanModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("Rollcall: " + m.dir))
	b.WriteString("\n")

	if m.loading {
		b.WriteString(styles.MutedText.Render("Computing plan..."))
		return styles.App.Render(b.String())
	}

	b.WriteString(styles.Subtitle.Render(m.summary))
	b.WriteString("\n\n")

	start, end := m.paginator.VisibleRange()
	for i := start; i < end; i++ {
		line := entryLine(m.entries[i])
		if i == m.paginator.Cursor() {
			line = styles.EntrySelected.Render(line)
		} else {
			line = entryStyle(m.entries[i]).Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	if m.paginator.TotalPages() > 1 {
		b.WriteString("\n")
		b.WriteString(styles.MutedText.Render(
			fmt.Sprintf("page %d/%d", m.paginator.CurrentPage(), m.paginator.TotalPages())))
	}

	if m.Message != "" {
		b.WriteString("\n\n")
		if m.MessageErr {
			b.WriteString(styles.ErrorMsg.Render(m.Message))
		} else {
			b.WriteString(styles.Success.Render(m.Message))
		}
	}

	b.WriteString("\n\n")
	b.WriteString(statusLine(
		PlanKeys.Resolve, PlanKeys.Apply, PlanKeys.Undo, PlanKeys.Copy, PlanKeys.Help, PlanKeys.Quit))

	return styles.App.Render(b.String())
}

func entryLine(e domain.PlanEntry) string {
	switch {
	case e.Action == domain.ActionRename && e.NoOp:
		return fmt.Sprintf("= %s  (already named)", e.SourcePath)
	case e.Action == domain.ActionRename:
		return fmt.Sprintf("→ %s  ⇒  %s", e.SourcePath, e.TargetPath)
	default:
		return fmt.Sprintf("✗ %s  [%s] %s", e.SourcePath, e.Action, e.Reason)
	}
}

func entryStyle(e domain.PlanEntry) lipgloss.Style {
	switch e.Action {
	case domain.ActionRename:
		if e.NoOp {
			return styles.EntryNoOp
		}
		return styles.EntryRename
	case domain.ActionSkipUnmatched:
		return styles.EntryUnmatched
	case domain.ActionSkipAmbiguous:
		return styles.EntryAmbiguous
	default:
		return styles.EntryConflict
	}
}

func (m *PlanModel) report() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Plan for %s: %s\n", m.dir, m.summary)
	for _, e := range m.entries {
		b.WriteString(entryLine(e))
		b.WriteByte('\n')
	}
	return b.String()
}

func statusLine(bindings ...key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		parts = append(parts,
			styles.HelpKey.Render(b.Help().Key)+" "+styles.HelpDesc.Render(b.Help().Desc))
	}
	return strings.Join(parts, styles.HelpDesc.Render(" • "))
}
