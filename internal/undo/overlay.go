package undo

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	colorText    lipgloss.Color = "#cdd6f4"
	colorMuted   lipgloss.Color = "#a6adc8"
	colorBorder  lipgloss.Color = "#585b70"
	colorAccent  lipgloss.Color = "#89b4fa"
	colorSurface lipgloss.Color = "#313244"
)

// KeyMap holds the banner's key bindings.
type KeyMap struct {
	Undo key.Binding
}

// DefaultKeyMap binds undo to u and ctrl+z.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Undo: key.NewBinding(key.WithKeys("u", "ctrl+z"), key.WithHelp("u", "undo")),
	}
}

// Styles for the banner.
type Styles struct {
	Banner    lipgloss.Style
	Countdown lipgloss.Style
	Content   lipgloss.Style
	Undo      lipgloss.Style
	Hint      lipgloss.Style
}

// DefaultStyles is the rounded, dark surface banner.
func DefaultStyles() Styles {
	return Styles{
		Banner: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Background(colorSurface).
			Padding(0, 1),
		// Fixed width so the banner does not jitter as the count shrinks.
		Countdown: lipgloss.NewStyle().Width(2).Align(lipgloss.Right).Bold(true).Foreground(colorAccent),
		Content:   lipgloss.NewStyle().Foreground(colorText),
		Undo:      lipgloss.NewStyle().Bold(true).Foreground(colorAccent),
		Hint:      lipgloss.NewStyle().Foreground(colorMuted),
	}
}

type rect struct {
	x, y, w, h int
}

func (r rect) contains(x, y int) bool {
	return r.w > 0 && x >= r.x && x < r.x+r.w && y >= r.y && y < r.y+r.h
}

// InputCapturer is implemented by hosts that can have a focused text field.
// While CapturingInput reports true, keys go to the host untouched and the
// banner can only be undone with the mouse.
type InputCapturer interface {
	CapturingInput() bool
}

// Overlay layers a controller's banner over a host model, bottom aligned.
type Overlay struct {
	host   tea.Model
	ctrl   *Controller
	keys   KeyMap
	styles Styles

	width  int
	height int

	// rendered content, keyed by the controller token
	token    int64
	rendered string
	bounds   rect
}

// OverlayOption configures an Overlay.
type OverlayOption func(*Overlay)

// WithKeyMap replaces the undo bindings.
func WithKeyMap(k KeyMap) OverlayOption {
	return func(o *Overlay) { o.keys = k }
}

// WithStyles replaces the banner styles.
func WithStyles(s Styles) OverlayOption {
	return func(o *Overlay) { o.styles = s }
}

// Attach wraps host so that c's banner is drawn above it.
func Attach(host tea.Model, c *Controller, opts ...OverlayOption) *Overlay {
	o := &Overlay{
		host:   host,
		ctrl:   c,
		keys:   DefaultKeyMap(),
		styles: DefaultStyles(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func (o *Overlay) Init() tea.Cmd {
	return o.host.Init()
}

func (o *Overlay) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		o.width, o.height = msg.Width, msg.Height
	case TerminateMsg:
		return o, tea.Sequence(o.ctrl.Hide(), tea.Quit)
	case tea.KeyMsg:
		if o.ctrl.Visible() && !o.hostCapturing() && key.Matches(msg, o.keys.Undo) {
			return o, o.ctrl.Undo()
		}
	case tea.MouseMsg:
		if o.ctrl.Visible() && msg.Button == tea.MouseButtonLeft &&
			msg.Action == tea.MouseActionRelease && o.bounds.contains(msg.X, msg.Y) {
			return o, o.ctrl.Undo()
		}
	}

	ctrlCmd := o.ctrl.Update(msg)
	var hostCmd tea.Cmd
	o.host, hostCmd = o.host.Update(msg)
	return o, tea.Batch(ctrlCmd, hostCmd)
}

func (o *Overlay) View() string {
	base := o.host.View()
	if !o.ctrl.Visible() {
		o.bounds = rect{}
		return base
	}
	banner := o.banner()
	if o.width <= 0 || o.height <= 0 {
		o.bounds = rect{}
		return lipgloss.JoinVertical(lipgloss.Left, base, banner)
	}

	lines := strings.Split(banner, "\n")
	w, h := maxLineWidth(lines), len(lines)
	in := o.ctrl.Insets()
	x := in.Left
	if avail := o.width - in.Left - in.Right; avail > w {
		x += (avail - w) / 2
	}
	y := o.height - in.Bottom - h
	if y < in.Top {
		y = in.Top
	}
	if y < 0 {
		y = 0
	}
	o.bounds = rect{x: x, y: y, w: w, h: h}
	return overlayAt(fitCanvas(base, o.width, o.height), banner, x, y, o.width, o.height)
}

func (o *Overlay) hostCapturing() bool {
	c, ok := o.host.(InputCapturer)
	return ok && c.CapturingInput()
}

// Close hides a banner that is still visible and runs the resulting command
// inline. Call it after the program has exited; it is best effort. Batched
// and sequenced commands are run in order, and a tea.Tick blocks for its
// full duration. Messages the commands produce are dropped.
func (o *Overlay) Close() {
	drain(o.ctrl.Hide())
}

// Host returns the wrapped model.
func (o *Overlay) Host() tea.Model { return o.host }

func (o *Overlay) banner() string {
	if tok := o.ctrl.Token(); tok != o.token {
		o.token = tok
		o.rendered = ""
		if c := o.ctrl.Content(); c != nil {
			o.rendered = c.View()
		}
	}

	undo := o.styles.Undo.Render("Undo")
	if help := o.keys.Undo.Help().Key; help != "" {
		undo += " " + o.styles.Hint.Render(fmt.Sprintf("(%s)", help))
	}
	row := lipgloss.JoinHorizontal(lipgloss.Center,
		o.styles.Countdown.Render(fmt.Sprintf("%d", o.ctrl.Seconds())),
		"  ",
		o.styles.Content.Render(o.rendered),
		"  ",
		undo,
	)
	return o.styles.Banner.Render(row)
}

var cmdType = reflect.TypeOf(tea.Cmd(nil))

func drain(cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		for _, c := range batch {
			drain(c)
		}
		return
	}
	// tea.Sequence wraps its commands in an unexported []tea.Cmd.
	v := reflect.ValueOf(msg)
	if v.Kind() != reflect.Slice || v.Type().Elem() != cmdType {
		return
	}
	for i := 0; i < v.Len(); i++ {
		c, _ := v.Index(i).Interface().(tea.Cmd)
		drain(c)
	}
}
