package undo

import tea "github.com/charmbracelet/bubbletea"

// TickMsg advances a controller's countdown by one step.
type TickMsg struct {
	ID  int
	Gen int
}

// graceMsg ends a countdown that reached zero.
type graceMsg struct {
	id  int
	gen int
}

// ShowMsg asks a controller to Show. A zero ID addresses every controller in
// the program.
type ShowMsg struct {
	ID       int
	Content  Content
	Seconds  int
	OnExpire Action
	OnUndo   Action
}

// HideMsg asks a controller to Hide.
type HideMsg struct{ ID int }

// UndoMsg asks a controller to Undo.
type UndoMsg struct{ ID int }

// TerminateMsg signals that the host program is about to exit. An Overlay
// hides its banner, letting a pending expire action run, then quits.
type TerminateMsg struct{}

// Terminate is a command hosts return instead of tea.Quit so a visible
// banner is resolved before the program exits.
func Terminate() tea.Msg {
	return TerminateMsg{}
}
