package undo

import (
	"io"
	"log/slog"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const (
	// DefaultSeconds is the banner lifetime when Show is given no duration.
	DefaultSeconds = 5
	// MaxSeconds is the hard ceiling for any banner lifetime.
	MaxSeconds = 99

	DefaultTickInterval = time.Second
	DefaultGraceDelay   = 200 * time.Millisecond
)

var lastID int64

func nextID() int {
	return int(atomic.AddInt64(&lastID, 1))
}

// Action is a banner callback. It runs on the Bubble Tea update loop and may
// return a command for follow-up work.
type Action func() tea.Cmd

// Insets are the banner margins, in terminal cells, from the edges of the
// view the banner is attached to.
type Insets struct {
	Top    int
	Right  int
	Bottom int
	Left   int
}

// DefaultInsets keeps the banner off the side edges and one row above the bottom.
func DefaultInsets() Insets {
	return Insets{Top: 0, Right: 2, Bottom: 1, Left: 2}
}

// Controller lets a user undo an action within a few seconds.
//
// A Controller is not safe for concurrent use. Call its methods from the
// Update loop of the program that renders it, or send it ShowMsg, HideMsg
// and UndoMsg through tea.Program.Send from other goroutines.
type Controller struct {
	id  int
	gen int

	insets         Insets
	defaultSeconds int
	maxSeconds     int
	tickInterval   time.Duration
	graceDelay     time.Duration
	now            func() time.Time
	log            *slog.Logger
	rec            Recorder

	visible  bool
	seconds  int
	content  Content
	onExpire Action
	onUndo   Action
	token    int64
}

// Option configures a Controller.
type Option func(*Controller)

// WithInsets sets the banner margins.
func WithInsets(in Insets) Option {
	return func(c *Controller) { c.insets = in }
}

// WithDefaultSeconds sets the lifetime used when Show gets no positive duration.
func WithDefaultSeconds(n int) Option {
	return func(c *Controller) {
		if n > 0 {
			c.defaultSeconds = n
		}
	}
}

// WithMaxSeconds lowers the lifetime ceiling. Values above MaxSeconds are ignored.
func WithMaxSeconds(n int) Option {
	return func(c *Controller) {
		if n > 0 && n <= MaxSeconds {
			c.maxSeconds = n
		}
	}
}

// WithTickInterval sets how long one countdown second lasts.
func WithTickInterval(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.tickInterval = d
		}
	}
}

// WithGraceDelay sets how long "0" stays on screen before expiry.
func WithGraceDelay(d time.Duration) Option {
	return func(c *Controller) {
		if d >= 0 {
			c.graceDelay = d
		}
	}
}

// WithLogger sets the logger for transition events.
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.log = l
		}
	}
}

// WithRecorder sets the outcome observer.
func WithRecorder(r Recorder) Option {
	return func(c *Controller) {
		if r != nil {
			c.rec = r
		}
	}
}

// WithClock replaces the time source used to derive instance tokens.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		if now != nil {
			c.now = now
		}
	}
}

// New creates an idle Controller.
func New(opts ...Option) *Controller {
	c := &Controller{
		id:             nextID(),
		insets:         DefaultInsets(),
		defaultSeconds: DefaultSeconds,
		maxSeconds:     MaxSeconds,
		tickInterval:   DefaultTickInterval,
		graceDelay:     DefaultGraceDelay,
		now:            time.Now,
		log:            slog.New(slog.NewTextHandler(io.Discard, nil)),
		rec:            nopRecorder{},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.defaultSeconds > c.maxSeconds {
		c.defaultSeconds = c.maxSeconds
	}
	return c
}

type showConfig struct {
	seconds  int
	onExpire Action
}

// ShowOption configures a single Show call.
type ShowOption func(*showConfig)

// Seconds sets the banner lifetime. Zero or negative keeps the default;
// values above the ceiling are clamped.
func Seconds(n int) ShowOption {
	return func(s *showConfig) { s.seconds = n }
}

// OnExpire sets the action run when the banner goes away without an undo.
func OnExpire(a Action) ShowOption {
	return func(s *showConfig) { s.onExpire = a }
}

// Show displays the banner with content and starts the countdown.
//
// If a banner is already visible, its expire action runs first, before any of
// the new state is applied. onUndo is required; a nil onUndo undoes nothing.
func (c *Controller) Show(content Content, onUndo Action, opts ...ShowOption) tea.Cmd {
	sc := showConfig{}
	for _, opt := range opts {
		opt(&sc)
	}

	var cmds []tea.Cmd
	if c.visible {
		prev := c.onExpire
		c.onExpire = nil
		c.rec.Record(OutcomeSuperseded, c.seconds)
		c.log.Debug("undo banner superseded", "id", c.id, "token", c.token, "remaining", c.seconds)
		cmds = append(cmds, run(prev))
	}

	if content == nil {
		content = Text("")
	}
	if onUndo == nil {
		onUndo = func() tea.Cmd { return nil }
	}
	c.token = c.nextToken()
	c.content = content
	c.seconds = c.clamp(sc.seconds)
	c.onExpire = sc.onExpire
	c.onUndo = onUndo

	c.gen++
	cmds = append(cmds, c.tick())
	c.visible = true

	c.rec.Record(OutcomeShown, c.seconds)
	c.log.Debug("undo banner shown", "id", c.id, "token", c.token, "seconds", c.seconds)
	return tea.Batch(cmds...)
}

// ShowText displays a plain message.
func (c *Controller) ShowText(msg string, onUndo Action, opts ...ShowOption) tea.Cmd {
	return c.Show(Text(msg), onUndo, opts...)
}

// Hide immediately ends the banner's lifetime as if it had expired: the
// expire action runs. It does nothing when the banner is not visible.
func (c *Controller) Hide() tea.Cmd {
	return c.dismiss(c.onExpire, OutcomeHidden)
}

// Undo ends the banner's lifetime through the undo action. The expire action
// never runs on this path. It does nothing when the banner is not visible.
func (c *Controller) Undo() tea.Cmd {
	return c.dismiss(c.onUndo, OutcomeUndone)
}

// Update advances the countdown and applies messages sent from other
// goroutines. Messages meant for other controllers are ignored.
func (c *Controller) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case TickMsg:
		if !c.current(msg.ID, msg.Gen) {
			return nil
		}
		if c.seconds > 0 {
			c.seconds--
		}
		if c.seconds > 0 {
			return c.tick()
		}
		id, gen := c.id, c.gen
		return tea.Tick(c.graceDelay, func(time.Time) tea.Msg {
			return graceMsg{id: id, gen: gen}
		})
	case graceMsg:
		if !c.current(msg.id, msg.gen) {
			return nil
		}
		return c.dismiss(c.onExpire, OutcomeExpired)
	case ShowMsg:
		if !c.addressed(msg.ID) {
			return nil
		}
		return c.Show(msg.Content, msg.OnUndo, Seconds(msg.Seconds), OnExpire(msg.OnExpire))
	case HideMsg:
		if !c.addressed(msg.ID) {
			return nil
		}
		return c.Hide()
	case UndoMsg:
		if !c.addressed(msg.ID) {
			return nil
		}
		return c.Undo()
	}
	return nil
}

// ID identifies this controller in messages.
func (c *Controller) ID() int { return c.id }

// Visible reports whether the banner is currently shown.
func (c *Controller) Visible() bool { return c.visible }

// Seconds is the time remaining before the banner disappears.
func (c *Controller) Seconds() int { return c.seconds }

// Content is what the banner displays, or nil when idle.
func (c *Controller) Content() Content { return c.content }

// Token changes on every Show and never decreases. Renderers key the
// banner's identity on it.
func (c *Controller) Token() int64 { return c.token }

// Insets are the margins given at construction.
func (c *Controller) Insets() Insets { return c.insets }

func (c *Controller) dismiss(action Action, outcome Outcome) tea.Cmd {
	if !c.visible {
		return nil
	}
	remaining := c.seconds
	c.visible = false
	c.reset()

	c.rec.Record(outcome, remaining)
	c.log.Debug("undo banner dismissed", "id", c.id, "token", c.token, "outcome", string(outcome), "remaining", remaining)
	return run(action)
}

// reset cancels the countdown and drops every transient field.
func (c *Controller) reset() {
	c.gen++
	c.seconds = 0
	c.content = nil
	c.onExpire = nil
	c.onUndo = nil
}

func (c *Controller) tick() tea.Cmd {
	id, gen := c.id, c.gen
	return tea.Tick(c.tickInterval, func(time.Time) tea.Msg {
		return TickMsg{ID: id, Gen: gen}
	})
}

func (c *Controller) current(id, gen int) bool {
	return c.visible && id == c.id && gen == c.gen
}

func (c *Controller) addressed(id int) bool {
	return id == 0 || id == c.id
}

func (c *Controller) clamp(n int) int {
	if n <= 0 {
		n = c.defaultSeconds
	}
	if n > c.maxSeconds {
		n = c.maxSeconds
	}
	return n
}

func (c *Controller) nextToken() int64 {
	t := c.now().UnixNano()
	if t <= c.token {
		t = c.token + 1
	}
	return t
}

func run(a Action) tea.Cmd {
	if a == nil {
		return nil
	}
	return a()
}
