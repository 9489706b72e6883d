package views

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"rollcall/internal/adapters/tui/styles"
	"rollcall/internal/ports"
)

// ResultKeyMap defines key bindings for the result view
type ResultKeyMap struct {
	Back key.Binding
	Undo key.Binding
	Copy key.Binding
	Quit key.Binding
}

var ResultKeys = ResultKeyMap{
	Back: key.NewBinding(
		key.WithKeys("esc", "enter"),
		key.WithHelp("esc", "back to plan"),
	),
	Undo: key.NewBinding(
		key.WithKeys("u"),
		key.WithHelp("u", "undo"),
	),
	Copy: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "copy report"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// ResultModel shows per-file outcomes after a batch was applied or undone.
type ResultModel struct {
	ViewState
	title   string
	results []ports.EntryResult
	undone  bool
}

// NewResultModel creates a new result view model
func NewResultModel() *ResultModel {
	return &ResultModel{}
}

// SetApplied shows the outcome of an applied batch
func (m *ResultModel) SetApplied(message string, results []ports.EntryResult) {
	m.title = message
	m.results = results
	m.undone = false
	m.ClearMessage()
}

// SetUndone shows the outcome of an undo
func (m *ResultModel) SetUndone(message string, results []ports.EntryResult) {
	m.title = message
	m.results = results
	m.undone = true
	m.ClearMessage()
}

// Init initializes the result view
func (m *ResultModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the result view
func (m *ResultModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, ResultKeys.Quit):
		return m, tea.Quit

	case key.Matches(keyMsg, ResultKeys.Back):
		return m, func() tea.Msg { return SwitchToPlanMsg{} }

	case key.Matches(keyMsg, ResultKeys.Undo):
		if m.undone {
			m.SetMessage("this batch was already undone", true)
			return m, nil
		}
		return m, func() tea.Msg { return RequestUndoMsg{} }

	case key.Matches(keyMsg, ResultKeys.Copy):
		if err := clipboard.WriteAll(m.report()); err != nil {
			m.SetMessage("copy failed: "+err.Error(), true)
		} else {
			m.SetMessage("report copied to clipboard", false)
		}
	}

	return m, nil
}

// View renders the result view
func (m *ResultModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render(m.title))
	b.WriteString("\n")

	for _, r := range m.results {
		b.WriteString(resultLine(r))
		b.WriteString("\n")
	}

	if m.Message != "" {
		b.WriteString("\n")
		if m.MessageErr {
			b.WriteString(styles.ErrorMsg.Render(m.Message))
		} else {
			b.WriteString(styles.Success.Render(m.Message))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	keys := []key.Binding{ResultKeys.Back, ResultKeys.Copy, ResultKeys.Quit}
	if !m.undone {
		keys = append(keys, ResultKeys.Undo)
	}
	b.WriteString(statusLine(keys...))

	return styles.App.Render(b.String())
}

func resultLine(r ports.EntryResult) string {
	switch {
	case r.Err != nil:
		return styles.ErrorMsg.Render(fmt.Sprintf("! %s: %v", r.Entry.SourcePath, r.Err))
	case r.Renamed:
		return styles.EntryRename.Render(fmt.Sprintf("→ %s  ⇒  %s", r.Entry.SourcePath, r.Entry.TargetPath))
	default:
		return styles.EntryNoOp.Render(fmt.Sprintf("= %s  (skipped)", r.Entry.SourcePath))
	}
}

func (m *ResultModel) report() string {
	var b strings.Builder
	b.WriteString(m.title)
	b.WriteByte('\n')
	for _, r := range m.results {
		switch {
		case r.Err != nil:
			fmt.Fprintf(&b, "! %s: %v\n", r.Entry.SourcePath, r.Err)
		case r.Renamed:
			fmt.Fprintf(&b, "%s -> %s\n", r.Entry.SourcePath, r.Entry.TargetPath)
		default:
			fmt.Fprintf(&b, "%s (skipped)\n", r.Entry.SourcePath)
		}
	}
	return b.String()
}
