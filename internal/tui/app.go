package tui

import (
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jask/undoctl/internal/undo"
)

const (
	appMessage  = "UndoController message!"
	appSeconds  = 3
	appMarkdown = "**Archived** 3 notes. _Undo_ brings them back."
)

type focus int

const (
	focusButton focus = iota
	focusInput
)

// AppScreen is the smallest useful host: a button that shows the banner and
// a text field to prove the rest of the screen stays interactive.
type AppScreen struct {
	undo    *undo.Controller
	log     *slog.Logger
	mdStyle string

	input textinput.Model
	focus focus
	keys  appKeyMap
	help  help.Model
	last  string
	width int
}

// NewAppScreen builds the screen. mdStyle is the glamour style used for the
// markdown banner.
func NewAppScreen(ctrl *undo.Controller, undoKey key.Binding, mdStyle string, log *slog.Logger) *AppScreen {
	in := textinput.New()
	in.Placeholder = "Enter text"
	in.CharLimit = 120
	in.Width = 40

	return &AppScreen{
		undo:    ctrl,
		log:     log,
		mdStyle: mdStyle,
		input:   in,
		keys:    newAppKeyMap(undoKey),
		help:    help.New(),
	}
}

func (s *AppScreen) Init() tea.Cmd { return nil }

func (s *AppScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		s.width = m.Width
		s.help.Width = m.Width
		return s, nil
	case tea.KeyMsg:
		switch {
		case key.Matches(m, s.keys.ForceQuit):
			return s, undo.Terminate
		case key.Matches(m, s.keys.Focus):
			return s, s.toggleFocus()
		}
		if s.focus == focusInput {
			var cmd tea.Cmd
			s.input, cmd = s.input.Update(m)
			return s, cmd
		}
		switch {
		case key.Matches(m, s.keys.Quit):
			return s, undo.Terminate
		case key.Matches(m, s.keys.Press):
			return s, s.undo.ShowText(appMessage, s.onUndo, undo.Seconds(appSeconds), undo.OnExpire(s.onTimer))
		case key.Matches(m, s.keys.Markdown):
			content := undo.Markdown(appMarkdown, s.mdStyle, 0)
			return s, s.undo.Show(content, s.onUndo, undo.Seconds(appSeconds), undo.OnExpire(s.onTimer))
		}
	}
	return s, nil
}

func (s *AppScreen) onTimer() tea.Cmd {
	s.log.Info("Timer")
	s.last = "Timer"
	return nil
}

func (s *AppScreen) onUndo() tea.Cmd {
	s.log.Info("Undo!")
	s.last = "Undo!"
	return nil
}

func (s *AppScreen) toggleFocus() tea.Cmd {
	if s.focus == focusButton {
		s.focus = focusInput
		return s.input.Focus()
	}
	s.focus = focusButton
	s.input.Blur()
	return nil
}

// CapturingInput reports whether the text field has focus.
func (s *AppScreen) CapturingInput() bool { return s.focus == focusInput }

// Last is the most recent banner outcome, "Timer" or "Undo!".
func (s *AppScreen) Last() string { return s.last }

func (s *AppScreen) View() string {
	button := buttonStyle.Render("[ Show UndoController ]")
	if s.focus == focusButton {
		button = buttonFocusedStyle.Render("[ Show UndoController ]")
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("App example"))
	b.WriteString("\n\n")
	b.WriteString(button)
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().Padding(0, 1).Render(s.input.View()))
	b.WriteString("\n\n")
	last := "-"
	if s.last != "" {
		last = s.last
	}
	b.WriteString(mutedStyle.Render(" last action: ") + statusStyle.Render(last))
	b.WriteString("\n")
	b.WriteString(s.help.View(s.keys))
	return b.String()
}
