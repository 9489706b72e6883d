package views

import (
	"rollcall/internal/application/commands"
)

// ViewState is the state every rename view carries: terminal size plus a
// one-line status message rendered under the content.
type ViewState struct {
	Width      int
	Height     int
	Message    string
	MessageErr bool
}

// SetSize records the terminal dimensions on resize.
func (s *ViewState) SetSize(width, height int) {
	s.Width = width
	s.Height = height
}

// SetMessage sets the status line; isErr selects the error style.
func (s *ViewState) SetMessage(msg string, isErr bool) {
	s.Message = msg
	s.MessageErr = isErr
}

// ClearMessage blanks the status line.
func (s *ViewState) ClearMessage() {
	s.Message = ""
	s.MessageErr = false
}

// View switching messages, handled by the app model.

// SwitchToPlanMsg returns to the plan list.
type SwitchToPlanMsg struct{}

// SwitchToResolveMsg opens candidate selection for the plan entry at Index.
type SwitchToResolveMsg struct{ Index int }

// SwitchToConfirmMsg asks for confirmation before applying the plan.
type SwitchToConfirmMsg struct{}

// SwitchToHelpMsg shows the help view.
type SwitchToHelpMsg struct{}

// ResolvedMsg records the user's identity choice for an ambiguous file.
type ResolvedMsg struct {
	Source string
	ID     string
}

// ConfirmApplyMsg triggers plan execution.
type ConfirmApplyMsg struct{}

// RequestUndoMsg triggers reverting the last applied batch.
type RequestUndoMsg struct{}

// PlanLoadedMsg delivers a freshly computed plan.
type PlanLoadedMsg struct{ Result *commands.PlanResult }

// ApplyDoneMsg delivers the outcome of executing the plan.
type ApplyDoneMsg struct{ Result *commands.ApplyResult }

// UndoDoneMsg delivers the outcome of reverting the last batch.
type UndoDoneMsg struct{ Result *commands.UndoResult }

// ErrMsg carries an error to be shown in the active view.
type ErrMsg struct{ Err error }
