package tui

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/undoctl/internal/database"
	"github.com/jask/undoctl/internal/database/repository"
	"github.com/jask/undoctl/internal/undo"
)

const deleteWarning = "After deletion, the name cannot be restored!"

// nameItem implements list.Item.
type nameItem struct {
	name repository.Name
}

func (i nameItem) FilterValue() string { return i.name.Name }

type nameDelegate struct{}

func (d nameDelegate) Height() int                             { return 1 }
func (d nameDelegate) Spacing() int                            { return 0 }
func (d nameDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d nameDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	entry, ok := item.(nameItem)
	if !ok {
		return
	}
	if index == m.Index() {
		fmt.Fprint(w, selectedStyle.Render("> "+entry.name.Name))
		return
	}
	fmt.Fprint(w, itemStyle.Render(entry.name.Name))
}

type (
	namesMsg    []repository.Name
	deletedMsg  []repository.Name
	restoredMsg []repository.Name
	purgedMsg   struct {
		names []repository.Name
		count int64
	}
	errMsg struct{ error }
)

// ListScreen shows a names list where deleting a row can be undone for a few
// seconds. Rows are soft deleted until the banner expires.
type ListScreen struct {
	ctx   context.Context
	names *repository.NameRepo
	undo  *undo.Controller
	log   *slog.Logger

	list      list.Model
	filter    textinput.Model
	filtering bool
	all       []repository.Name
	keys      listKeyMap
	help      help.Model
	status    string
	statusErr bool
	width     int
	height    int
}

// NewListScreen builds the screen. undoKey is shown in the help line; the
// key itself is handled by the undo.Overlay wrapping the screen.
func NewListScreen(ctx context.Context, names *repository.NameRepo, ctrl *undo.Controller, undoKey key.Binding, log *slog.Logger) *ListScreen {
	l := list.New([]list.Item{}, nameDelegate{}, 0, 0)
	l.Title = "Names"
	l.Styles.Title = titleStyle
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()

	fi := textinput.New()
	fi.Prompt = "/"
	fi.Placeholder = "name"

	return &ListScreen{
		ctx:    ctx,
		names:  names,
		undo:   ctrl,
		log:    log,
		list:   l,
		filter: fi,
		keys:   newListKeyMap(undoKey),
		help:   help.New(),
	}
}

func (s *ListScreen) Init() tea.Cmd {
	return s.load()
}

func (s *ListScreen) load() tea.Cmd {
	return func() tea.Msg {
		rows, err := s.names.List(s.ctx)
		if err != nil {
			return errMsg{fmt.Errorf("load names: %w", err)}
		}
		return namesMsg(rows)
	}
}

func (s *ListScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		s.width, s.height = m.Width, m.Height
		s.help.Width = m.Width
		s.resize()
		return s, nil
	case namesMsg:
		s.all = []repository.Name(m)
		s.applyFilter()
		return s, nil
	case deletedMsg:
		deleted := []repository.Name(m)
		s.setStatus(fmt.Sprintf("Deleted %s", joinNames(deleted)), false)
		show := s.undo.ShowText(
			deleteWarning,
			func() tea.Cmd { return s.restoreCmd(deleted) },
			undo.OnExpire(func() tea.Cmd { return s.purgeCmd(deleted) }),
		)
		return s, tea.Batch(s.load(), show)
	case restoredMsg:
		s.setStatus(fmt.Sprintf("Restored %s", joinNames(m)), false)
		return s, s.load()
	case purgedMsg:
		s.log.Info("names purged", "names", joinNames(m.names), "count", m.count)
		s.setStatus(fmt.Sprintf("%s deleted permanently", joinNames(m.names)), false)
		return s, nil
	case errMsg:
		s.log.Error("names list", "error", m.error)
		s.setStatus("error: "+m.Error(), true)
		return s, nil
	case tea.KeyMsg:
		if s.filtering {
			return s.updateFilter(m)
		}
		switch {
		case key.Matches(m, s.keys.Quit):
			return s, undo.Terminate
		case key.Matches(m, s.keys.Delete):
			return s, s.deleteSelected()
		case key.Matches(m, s.keys.Filter):
			s.filtering = true
			s.resize()
			return s, s.filter.Focus()
		case key.Matches(m, s.keys.Cancel) && s.filter.Value() != "":
			s.filter.SetValue("")
			s.applyFilter()
			return s, nil
		}
	}

	var cmd tea.Cmd
	s.list, cmd = s.list.Update(msg)
	return s, cmd
}

// CapturingInput reports whether the filter query is being edited.
func (s *ListScreen) CapturingInput() bool { return s.filtering }

func (s *ListScreen) updateFilter(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(m, s.keys.Accept):
		s.filtering = false
		s.filter.Blur()
		s.resize()
		return s, nil
	case key.Matches(m, s.keys.Cancel):
		s.filtering = false
		s.filter.Blur()
		s.filter.SetValue("")
		s.resize()
		s.applyFilter()
		return s, nil
	}
	var cmd tea.Cmd
	s.filter, cmd = s.filter.Update(m)
	s.applyFilter()
	return s, cmd
}

func (s *ListScreen) deleteSelected() tea.Cmd {
	item, ok := s.list.SelectedItem().(nameItem)
	if !ok {
		return nil
	}
	name := item.name
	return func() tea.Msg {
		if err := s.names.SoftDelete(s.ctx, database.Now(), name.ID); err != nil {
			return errMsg{fmt.Errorf("delete %s: %w", name.Name, err)}
		}
		return deletedMsg{name}
	}
}

func (s *ListScreen) restoreCmd(names []repository.Name) tea.Cmd {
	return func() tea.Msg {
		if err := s.names.Restore(s.ctx, nameIDs(names)...); err != nil {
			return errMsg{fmt.Errorf("restore: %w", err)}
		}
		return restoredMsg(names)
	}
}

func (s *ListScreen) purgeCmd(names []repository.Name) tea.Cmd {
	return func() tea.Msg {
		n, err := s.names.Purge(s.ctx, nameIDs(names)...)
		if err != nil {
			return errMsg{fmt.Errorf("purge: %w", err)}
		}
		return purgedMsg{names: names, count: n}
	}
}

func (s *ListScreen) applyFilter() {
	ranked := rankNames(s.all, s.filter.Value())
	items := make([]list.Item, len(ranked))
	for i, n := range ranked {
		items[i] = nameItem{name: n}
	}
	s.list.SetItems(items)
	if s.list.Index() >= len(items) && len(items) > 0 {
		s.list.Select(len(items) - 1)
	}
}

func (s *ListScreen) setStatus(text string, isErr bool) {
	s.status = text
	s.statusErr = isErr
}

func (s *ListScreen) resize() {
	reserved := 2 // status + help
	if s.filtering {
		reserved++
	}
	h := s.height - reserved
	if h < 0 {
		h = 0
	}
	s.list.SetSize(s.width, h)
}

func (s *ListScreen) View() string {
	var b strings.Builder
	b.WriteString(s.list.View())
	if s.filtering {
		b.WriteString("\n" + s.filter.View())
	}
	b.WriteString("\n")
	if s.statusErr {
		b.WriteString(statusErrStyle.Render(s.status))
	} else {
		b.WriteString(statusStyle.Render(s.status))
	}
	b.WriteString("\n")
	if s.filtering {
		b.WriteString(s.help.View(filterKeyMap{s.keys}))
	} else {
		b.WriteString(s.help.View(s.keys))
	}
	return b.String()
}

// rankNames keeps names matching query and orders them by how close they
// are. Substring matches come first; a prefix within one typo still matches.
func rankNames(names []repository.Name, query string) []repository.Name {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return names
	}
	tolerance := 0
	if len([]rune(q)) >= 3 {
		tolerance = 1
	}

	type scored struct {
		name  repository.Name
		score int
	}
	var hits []scored
	for _, n := range names {
		lower := strings.ToLower(n.Name)
		if strings.Contains(lower, q) {
			hits = append(hits, scored{n, 0})
			continue
		}
		if d := levenshtein.ComputeDistance(q, runePrefix(lower, len([]rune(q)))); d <= tolerance {
			hits = append(hits, scored{n, d})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].score < hits[j].score })

	out := make([]repository.Name, len(hits))
	for i, h := range hits {
		out[i] = h.name
	}
	return out
}

func runePrefix(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

func joinNames(names []repository.Name) string {
	parts := make([]string, len(names))
	for i, n := range names {
		parts[i] = n.Name
	}
	return strings.Join(parts, ", ")
}

func nameIDs(names []repository.Name) []string {
	ids := make([]string, len(names))
	for i, n := range names {
		ids[i] = n.ID
	}
	return ids
}
