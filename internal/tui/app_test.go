package tui

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/steamrun/internal/domain"
	"github.com/mmcdole/steamrun/internal/query"
)

type fakeQuerier struct {
	results   []query.Result
	queries   []string
	performed []query.Action
	err       error
}

func (f *fakeQuerier) Query(text string) []query.Result {
	f.queries = append(f.queries, text)
	return f.results
}

func (f *fakeQuerier) Perform(a query.Action) error {
	f.performed = append(f.performed, a)
	return f.err
}

func appResult(id int, name string) query.Result {
	return query.Result{Kind: query.KindApp, Title: name, App: &domain.App{ID: id, Name: name}}
}

func newTestModel(q *fakeQuerier) Model {
	m := NewModel(q, nil, slog.New(slog.NewTextHandler(io.Discard, nil)))
	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return next.(Model)
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func TestModel_ResultsAndNavigation(t *testing.T) {
	q := &fakeQuerier{}
	m := newTestModel(q)
	m, _ = update(t, m, ResultsMsg{Query: "", Results: []query.Result{
		appResult(400, "Portal"), appResult(620, "Portal 2"),
	}})

	sel, ok := m.Selected()
	require.True(t, ok)
	assert.Equal(t, "Portal", sel.Title)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	sel, _ = m.Selected()
	assert.Equal(t, "Portal 2", sel.Title, "cursor stops at the last result")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyUp})
	sel, _ = m.Selected()
	assert.Equal(t, "Portal", sel.Title)

	assert.Contains(t, m.View(), "Portal 2")
}

func TestModel_StaleResultsIgnored(t *testing.T) {
	m := newTestModel(&fakeQuerier{})
	m.input.SetValue("hl2")

	m, _ = update(t, m, ResultsMsg{Query: "h", Results: []query.Result{appResult(1, "stale")}})
	_, ok := m.Selected()
	assert.False(t, ok)
}

func TestModel_TypingRunsQuery(t *testing.T) {
	q := &fakeQuerier{results: []query.Result{appResult(220, "Half-Life 2")}}
	m := newTestModel(q)

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("h")})
	require.NotNil(t, cmd)
	assert.Equal(t, "h", m.input.Value())

	msg := QueryCmd(q, "h")()
	assert.Equal(t, ResultsMsg{Query: "h", Results: q.results}, msg)
}

func TestModel_RunQuitsOnSuccess(t *testing.T) {
	q := &fakeQuerier{}
	m := newTestModel(q)
	m, _ = update(t, m, ResultsMsg{Results: []query.Result{appResult(440, "Team Fortress 2")}})

	_, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	done, ok := cmd().(ActionDoneMsg)
	require.True(t, ok)
	assert.Equal(t, "steam://rungameid/440", done.Action.Target)

	_, cmd = update(t, m, done)
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestModel_ActionFailureShowsStatus(t *testing.T) {
	q := &fakeQuerier{err: errors.New("xdg-open not found")}
	m := newTestModel(q)
	m, _ = update(t, m, ResultsMsg{Results: []query.Result{appResult(440, "Team Fortress 2")}})

	_, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlL})
	require.NotNil(t, cmd)
	m, cmd = update(t, m, cmd())
	assert.Nil(t, cmd)
	assert.True(t, m.statusErr)
	assert.Contains(t, m.View(), "xdg-open not found")
}

func TestModel_ErrorResultHasNoActions(t *testing.T) {
	m := newTestModel(&fakeQuerier{})
	m, _ = update(t, m, ResultsMsg{Results: []query.Result{
		query.ErrorResult(domain.ErrInstallationNotFound),
	}})

	_, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.Contains(t, m.View(), "Steam installation not found")
}

func TestHighlightMatches(t *testing.T) {
	plain := highlightMatches("Portal", nil, false)
	assert.Contains(t, plain, "Portal")

	lit := highlightMatches("Half-Life 2", []int{0, 5}, false)
	assert.Contains(t, lit, "H")
	assert.Contains(t, lit, "alf-")
}
