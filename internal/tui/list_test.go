package tui

import (
	"context"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"

	"github.com/jask/undoctl/internal/database"
	"github.com/jask/undoctl/internal/database/repository"
	"github.com/jask/undoctl/internal/logging"
	"github.com/jask/undoctl/internal/undo"
)

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newTestList(t *testing.T) (*ListScreen, *undo.Controller, *repository.NameRepo) {
	t.Helper()
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "names.db")
	require.NoError(t, database.RunMigrations(dbPath))
	db, err := database.Open(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, database.SeedDefaults(ctx, db))

	repo := repository.NewNameRepo(db)
	ctrl := undo.New()
	s := NewListScreen(ctx, repo, ctrl, undo.DefaultKeyMap().Undo, logging.NewNop())
	s.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	s.Update(s.Init()())
	require.Len(t, s.list.Items(), len(database.DefaultNames))
	return s, ctrl, repo
}

// deleteFirst presses the delete key and feeds the resulting messages back,
// leaving the banner visible.
func deleteFirst(t *testing.T, s *ListScreen) {
	t.Helper()
	_, cmd := s.Update(runeKey("d"))
	require.NotNil(t, cmd)
	msg := cmd()
	require.IsType(t, deletedMsg{}, msg)
	s.Update(msg)
	s.Update(s.load()())
}

func shownNames(s *ListScreen) []string {
	var out []string
	for _, it := range s.list.Items() {
		out = append(out, it.(nameItem).name.Name)
	}
	return out
}

func TestListDeleteThenUndo(t *testing.T) {
	t.Parallel()

	s, ctrl, repo := newTestList(t)
	deleteFirst(t, s)
	require.True(t, ctrl.Visible())
	require.Equal(t, deleteWarning, ctrl.Content().View())
	require.NotContains(t, shownNames(s), "Elizabeth")
	require.Contains(t, s.status, "Deleted Elizabeth")

	cmd := ctrl.Undo()
	require.NotNil(t, cmd)
	_, reload := s.Update(cmd())
	require.Contains(t, s.status, "Restored Elizabeth")
	s.Update(reload())

	require.Equal(t, database.DefaultNames, shownNames(s))
	n, err := repo.Count(context.Background())
	require.NoError(t, err)
	require.Equal(t, 10, n)
}

func TestListDeleteThenExpire(t *testing.T) {
	t.Parallel()

	s, ctrl, repo := newTestList(t)
	deleteFirst(t, s)

	cmd := ctrl.Hide()
	require.NotNil(t, cmd)
	s.Update(cmd())
	require.Contains(t, s.status, "Elizabeth deleted permanently")
	require.False(t, ctrl.Visible())

	n, err := repo.Count(context.Background())
	require.NoError(t, err)
	require.Equal(t, 9, n)
	require.Nil(t, ctrl.Undo())
}

func TestListQuitTerminates(t *testing.T) {
	t.Parallel()

	s, _, _ := newTestList(t)
	_, cmd := s.Update(runeKey("q"))
	require.NotNil(t, cmd)
	require.Equal(t, undo.TerminateMsg{}, cmd())
}

func TestListFilter(t *testing.T) {
	t.Parallel()

	s, _, _ := newTestList(t)
	s.Update(runeKey("/"))
	require.True(t, s.filtering)

	for _, r := range "lin" {
		s.Update(runeKey(string(r)))
	}
	require.Equal(t, []string{"Linda"}, shownNames(s))

	// typing a delete key while filtering edits the query instead
	s.Update(runeKey("d"))
	require.Equal(t, "lind", s.filter.Value())

	s.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.False(t, s.filtering)
	require.Len(t, shownNames(s), 10)
}

func TestListView(t *testing.T) {
	t.Parallel()

	s, _, _ := newTestList(t)
	view := ansi.Strip(s.View())
	require.Contains(t, view, "Names")
	require.Contains(t, view, "> Elizabeth")
	require.Contains(t, view, "delete")
}

func TestRankNames(t *testing.T) {
	t.Parallel()

	all := make([]repository.Name, len(database.DefaultNames))
	for i, n := range database.DefaultNames {
		all[i] = repository.Name{ID: database.NameID(n), Name: n, Position: i}
	}
	names := func(list []repository.Name) []string {
		out := make([]string, len(list))
		for i, n := range list {
			out[i] = n.Name
		}
		return out
	}

	require.Len(t, rankNames(all, ""), 10)
	require.Equal(t, []string{"Elizabeth", "Linda", "William"}, names(rankNames(all, "li")))
	require.Equal(t, []string{"James"}, names(rankNames(all, "jamrs")))
	require.Empty(t, rankNames(all, "zz"))
}

func TestListFilterTypingKeepsBanner(t *testing.T) {
	t.Parallel()

	s, ctrl, _ := newTestList(t)
	deleteFirst(t, s)
	o := undo.Attach(s, ctrl)
	o.Update(tea.WindowSizeMsg{Width: 80, Height: 24})

	o.Update(runeKey("/"))
	o.Update(runeKey("u"))
	require.Equal(t, "u", s.filter.Value())
	require.True(t, ctrl.Visible())

	o.Update(tea.KeyMsg{Type: tea.KeyEsc})
	_, cmd := o.Update(runeKey("u"))
	require.NotNil(t, cmd)
	require.False(t, ctrl.Visible())
}
