package undo

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"
)

type hostStub struct {
	view string
	msgs []tea.Msg
}

func (h *hostStub) Init() tea.Cmd { return nil }

func (h *hostStub) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	h.msgs = append(h.msgs, msg)
	return h, nil
}

func (h *hostStub) View() string { return h.view }

func (h *hostStub) keys() []string {
	var out []string
	for _, m := range h.msgs {
		if k, ok := m.(tea.KeyMsg); ok {
			out = append(out, k.String())
		}
	}
	return out
}

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newOverlay(t *testing.T, width, height int) (*Overlay, *Controller, *hostStub) {
	t.Helper()
	host := &hostStub{view: "Elizabeth\nJames\nJennifer"}
	c := New()
	o := Attach(host, c)
	if width > 0 {
		o.Update(tea.WindowSizeMsg{Width: width, Height: height})
	}
	return o, c, host
}

func TestOverlayHiddenShowsHost(t *testing.T) {
	t.Parallel()

	o, _, host := newOverlay(t, 0, 0)
	require.Equal(t, host.view, o.View())
}

func TestOverlayRendersBannerAtBottom(t *testing.T) {
	t.Parallel()

	o, c, _ := newOverlay(t, 60, 12)
	c.ShowText("name deleted", nil, Seconds(7))

	lines := strings.Split(ansi.Strip(o.View()), "\n")
	require.Len(t, lines, 12)
	require.True(t, strings.HasPrefix(lines[0], "Elizabeth"))

	// three banner rows, one row of bottom inset
	require.Contains(t, lines[9], "name deleted")
	require.Contains(t, lines[9], "7")
	require.Contains(t, lines[9], "Undo (u)")
	require.Empty(t, strings.TrimSpace(lines[11]))
	for _, l := range lines {
		require.LessOrEqual(t, ansi.StringWidth(l), 60)
	}
}

func TestOverlayWithoutSizeAppendsBanner(t *testing.T) {
	t.Parallel()

	o, c, _ := newOverlay(t, 0, 0)
	c.ShowText("name deleted", nil)

	view := ansi.Strip(o.View())
	require.True(t, strings.HasPrefix(view, "Elizabeth"))
	require.Contains(t, view, "name deleted")
}

func TestOverlayUndoKey(t *testing.T) {
	t.Parallel()

	o, c, host := newOverlay(t, 60, 12)

	o.Update(runeKey("u"))
	require.Equal(t, []string{"u"}, host.keys())

	var undone, expired counter
	c.ShowText("x", undone.action(), OnExpire(expired.action()))
	o.Update(runeKey("u"))
	require.Equal(t, 1, undone.n)
	require.Zero(t, expired.n)
	require.False(t, c.Visible())
	require.Equal(t, []string{"u"}, host.keys(), "undo key must not reach the host")

	c.ShowText("y", undone.action())
	o.Update(tea.KeyMsg{Type: tea.KeyCtrlZ})
	require.Equal(t, 2, undone.n)
}

func TestOverlayForwardsTicks(t *testing.T) {
	t.Parallel()

	o, c, host := newOverlay(t, 60, 12)
	c.ShowText("x", nil, Seconds(3))
	o.Update(tick(c))
	require.Equal(t, 2, c.Seconds())
	require.Len(t, host.msgs, 2)
}

func TestOverlayMouseClickUndoes(t *testing.T) {
	t.Parallel()

	o, c, _ := newOverlay(t, 60, 12)
	var undone counter
	c.ShowText("name deleted", undone.action())
	_ = o.View()

	o.Update(tea.MouseMsg{X: 0, Y: 0, Button: tea.MouseButtonLeft, Action: tea.MouseActionRelease})
	require.Zero(t, undone.n)

	b := o.bounds
	o.Update(tea.MouseMsg{X: b.x + 1, Y: b.y + 1, Button: tea.MouseButtonLeft, Action: tea.MouseActionRelease})
	require.Equal(t, 1, undone.n)
}

func TestOverlayTerminateExpires(t *testing.T) {
	t.Parallel()

	o, c, _ := newOverlay(t, 60, 12)
	var expired, undone counter
	c.ShowText("x", undone.action(), OnExpire(expired.action()))

	_, cmd := o.Update(TerminateMsg{})
	require.NotNil(t, cmd)
	require.Equal(t, 1, expired.n)
	require.Zero(t, undone.n)
	require.False(t, c.Visible())

	o.Update(TerminateMsg{})
	require.Equal(t, 1, expired.n)
}

func TestOverlayCloseRunsExpireCommand(t *testing.T) {
	t.Parallel()

	o, c, _ := newOverlay(t, 0, 0)
	ran := false
	c.ShowText("x", nil, OnExpire(func() tea.Cmd {
		return func() tea.Msg {
			ran = true
			return nil
		}
	}))

	o.Close()
	require.True(t, ran)
	require.False(t, c.Visible())
	o.Close()
}

func TestOverlayRekeysContentOnShow(t *testing.T) {
	t.Parallel()

	o, c, _ := newOverlay(t, 60, 12)
	calls := 0
	c.Show(Func(func() string {
		calls++
		return "first"
	}), nil)
	_ = o.View()
	_ = o.View()
	require.Equal(t, 1, calls)

	c.ShowText("second", nil)
	view := ansi.Strip(o.View())
	require.Contains(t, view, "second")
	require.NotContains(t, view, "first")
}

type typingHost struct {
	hostStub
	typing bool
}

func (h *typingHost) CapturingInput() bool { return h.typing }

func TestOverlayUndoKeyYieldsToTypingHost(t *testing.T) {
	t.Parallel()

	host := &typingHost{typing: true}
	c := New()
	o := Attach(host, c)
	o.Update(tea.WindowSizeMsg{Width: 60, Height: 12})

	var undone counter
	c.ShowText("x", undone.action())
	o.Update(runeKey("u"))
	o.Update(tea.KeyMsg{Type: tea.KeyCtrlZ})
	require.Zero(t, undone.n)
	require.True(t, c.Visible())
	require.Equal(t, []string{"u", "ctrl+z"}, host.keys())

	// the banner stays clickable while the host is typing
	_ = o.View()
	b := o.bounds
	o.Update(tea.MouseMsg{X: b.x + 1, Y: b.y + 1, Button: tea.MouseButtonLeft, Action: tea.MouseActionRelease})
	require.Equal(t, 1, undone.n)

	host.typing = false
	c.ShowText("y", undone.action())
	o.Update(runeKey("u"))
	require.Equal(t, 2, undone.n)
}

func TestOverlayCloseRunsSequencedCommands(t *testing.T) {
	t.Parallel()

	o, c, _ := newOverlay(t, 0, 0)
	var order []string
	step := func(name string) tea.Cmd {
		return func() tea.Msg {
			order = append(order, name)
			return nil
		}
	}
	c.ShowText("x", nil, OnExpire(func() tea.Cmd {
		return tea.Sequence(step("purge"), tea.Batch(step("log"), step("notify")))
	}))

	o.Close()
	require.Equal(t, []string{"purge", "log", "notify"}, order)
}
