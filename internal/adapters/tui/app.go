package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"rollcall/internal/adapters/tui/views"
	"rollcall/internal/application/commands"
	"rollcall/internal/domain"
	"rollcall/internal/ports"
)

// ViewState represents the current view
type ViewState int

const (
	ViewPlan ViewState = iota
	ViewResolve
	ViewConfirm
	ViewResult
	ViewHelp
)

// Controller carries the collaborators and settings one interactive batch
// operates on.
type Controller struct {
	Source   ports.RosterSource
	Repo     ports.SubmissionRepository
	Journal  ports.BatchJournal
	Dir      string
	Template string
	Exts     []string
}

// App is the main TUI application model
type App struct {
	ctrl Controller

	state   ViewState
	plan    *views.PlanModel
	resolve *views.ResolveModel
	confirm *views.ConfirmModel
	result  *views.ResultModel
	help    *views.HelpModel

	lastPlan    *commands.PlanResult
	resolutions map[string]string

	width  int
	height int
}

// NewApp creates a new TUI application
func NewApp(ctrl Controller) *App {
	return &App{
		ctrl:        ctrl,
		state:       ViewPlan,
		plan:        views.NewPlanModel(ctrl.Dir),
		resolve:     views.NewResolveModel(),
		confirm:     views.NewConfirmModel(),
		result:      views.NewResultModel(),
		help:        views.NewHelpModel(),
		resolutions: make(map[string]string),
	}
}

// Init initializes the application
func (a *App) Init() tea.Cmd {
	return a.computePlan()
}

// Update handles messages for the application
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.plan.SetSize(msg.Width, msg.Height)
		a.resolve.SetSize(msg.Width, msg.Height)
		a.confirm.SetSize(msg.Width, msg.Height)
		a.result.SetSize(msg.Width, msg.Height)
		a.help.SetSize(msg.Width, msg.Height)
		return a, nil

	// View switching messages
	case views.SwitchToPlanMsg:
		a.state = ViewPlan
		return a, a.computePlan()

	case views.SwitchToResolveMsg:
		match := a.matchFor(msg.Index)
		if match == nil {
			return a, nil
		}
		a.resolve.SetMatch(match)
		a.state = ViewResolve
		return a, nil

	case views.SwitchToConfirmMsg:
		if a.lastPlan == nil {
			return a, nil
		}
		a.confirm.SetPlan(a.lastPlan.Entries)
		a.state = ViewConfirm
		return a, nil

	case views.SwitchToHelpMsg:
		a.state = ViewHelp
		return a, nil

	// Workflow messages
	case views.PlanLoadedMsg:
		a.lastPlan = msg.Result
		a.plan.SetPlan(msg.Result)
		a.state = ViewPlan
		return a, nil

	case views.ResolvedMsg:
		a.resolutions[msg.Source] = msg.ID
		a.state = ViewPlan
		return a, a.computePlan()

	case views.ConfirmApplyMsg:
		return a, a.apply()

	case views.RequestUndoMsg:
		return a, a.undo()

	case views.ApplyDoneMsg:
		a.result.SetApplied(msg.Result.Message, msg.Result.Results)
		a.state = ViewResult
		a.resolutions = make(map[string]string)
		return a, nil

	case views.UndoDoneMsg:
		a.result.SetUndone(msg.Result.Message, msg.Result.Results)
		a.state = ViewResult
		return a, nil

	case views.ErrMsg:
		a.state = ViewPlan
		a.plan.SetMessage(msg.Err.Error(), true)
		return a, nil
	}

	// Delegate to current view
	var cmd tea.Cmd
	switch a.state {
	case ViewPlan:
		_, cmd = a.plan.Update(msg)
	case ViewResolve:
		_, cmd = a.resolve.Update(msg)
	case ViewConfirm:
		_, cmd = a.confirm.Update(msg)
	case ViewResult:
		_, cmd = a.result.Update(msg)
	case ViewHelp:
		_, cmd = a.help.Update(msg)
	}

	return a, cmd
}

func (a *App) computePlan() tea.Cmd {
	ctrl := a.ctrl
	resolutions := make(map[string]string, len(a.resolutions))
	for k, v := range a.resolutions {
		resolutions[k] = v
	}

	return func() tea.Msg {
		cmd := commands.NewPlanCommand(ctrl.Source, ctrl.Repo, ctrl.Dir, ctrl.Template)
		cmd.Extensions = ctrl.Exts
		cmd.Resolutions = resolutions

		result, err := cmd.Execute(context.Background())
		if err != nil {
			return views.ErrMsg{Err: err}
		}
		return views.PlanLoadedMsg{Result: result}
	}
}

func (a *App) apply() tea.Cmd {
	if a.lastPlan == nil {
		return nil
	}
	ctrl := a.ctrl
	entries := a.lastPlan.Entries

	return func() tea.Msg {
		result, err := commands.NewApplyCommand(ctrl.Repo, ctrl.Journal, ctrl.Dir, entries).
			Execute(context.Background())
		if err != nil {
			if result != nil {
				// Renames happened but the journal write failed.
				result.Message = fmt.Sprintf("%s (warning: %v)", result.Message, err)
				return views.ApplyDoneMsg{Result: result}
			}
			return views.ErrMsg{Err: err}
		}
		return views.ApplyDoneMsg{Result: result}
	}
}

func (a *App) undo() tea.Cmd {
	ctrl := a.ctrl
	return func() tea.Msg {
		result, err := commands.NewUndoCommand(ctrl.Repo, ctrl.Journal).Execute(context.Background())
		if err != nil {
			return views.ErrMsg{Err: err}
		}
		return views.UndoDoneMsg{Result: result}
	}
}

// matchFor finds the match result behind the plan entry at index.
func (a *App) matchFor(index int) *domain.MatchResult {
	if a.lastPlan == nil || index < 0 || index >= len(a.lastPlan.Entries) {
		return nil
	}
	source := a.lastPlan.Entries[index].SourcePath
	for i := range a.lastPlan.Matches {
		if a.lastPlan.Matches[i].File.OriginalPath == source {
			return &a.lastPlan.Matches[i]
		}
	}
	return nil
}

// View renders the current view
func (a *App) View() string {
	switch a.state {
	case ViewResolve:
		return a.resolve.View()
	case ViewConfirm:
		return a.confirm.View()
	case ViewResult:
		return a.result.View()
	case ViewHelp:
		return a.help.View()
	default:
		return a.plan.View()
	}
}
