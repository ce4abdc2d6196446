// Package tui is the interactive launcher: type to filter installed Steam apps,
// pick one and run it.
package tui

import (
	"log/slog"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/steamrun/internal/query"
	"github.com/mmcdole/steamrun/internal/tui/styles"
)

// headerLines and footerLines are the rows not used by the result list.
const (
	headerLines = 2
	footerLines = 2
	rowLines    = 2
)

// Querier is the query service as seen by the UI
type Querier interface {
	Query(text string) []query.Result
	Perform(a query.Action) error
}

// Model is the main application model
type Model struct {
	svc     Querier
	changes <-chan struct{}
	logger  *slog.Logger
	keys    KeyMap

	input   textinput.Model
	results []query.Result
	cursor  int
	offset  int // First visible result
	loaded  bool

	status    string
	statusErr bool

	width  int
	height int
}

// NewModel creates the application model. changes may be nil to disable
// reloading when Steam files change.
func NewModel(svc Querier, changes <-chan struct{}, logger *slog.Logger) Model {
	if logger == nil {
		logger = slog.Default()
	}

	ti := textinput.New()
	ti.Placeholder = "Search installed games..."
	ti.CharLimit = 100
	ti.Prompt = "> "
	ti.PromptStyle = styles.PromptStyle
	ti.TextStyle = lipgloss.NewStyle().Foreground(styles.White)
	ti.PlaceholderStyle = styles.DimStyle
	ti.Focus()

	return Model{
		svc:     svc,
		changes: changes,
		logger:  logger,
		keys:    Keys,
		input:   ti,
	}
}

// Init starts the first query and the change watcher
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		QueryCmd(m.svc, ""),
		WaitForChangeCmd(m.changes),
	)
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = msg.Width - 4
		m.clampScroll()
		return m, nil

	case ResultsMsg:
		// Drop answers to queries the user has already typed past
		if msg.Query != m.input.Value() {
			return m, nil
		}
		m.setResults(msg.Results)
		return m, nil

	case ActionDoneMsg:
		if msg.Err != nil {
			m.logger.Error("action failed", "action", msg.Action.Title, "target", msg.Action.Target, "error", msg.Err)
			m.setStatus(msg.Action.Title+" failed: "+msg.Err.Error(), true)
			return m, nil
		}
		if msg.Action.Kind == query.ActionRun {
			return m, tea.Quit
		}
		m.setStatus(msg.Action.Title+": "+msg.Title, false)
		return m, nil

	case FilesChangedMsg:
		m.logger.Debug("steam files changed, refreshing")
		return m, tea.Batch(QueryCmd(m.svc, m.input.Value()), WaitForChangeCmd(m.changes))

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)
		return m, nil
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)
		return m, nil
	case key.Matches(msg, m.keys.PageUp):
		m.moveCursor(-m.visibleRows())
		return m, nil
	case key.Matches(msg, m.keys.PageDown):
		m.moveCursor(m.visibleRows())
		return m, nil
	case key.Matches(msg, m.keys.Run):
		return m, m.perform(query.ActionRun)
	case key.Matches(msg, m.keys.ShowInLibrary):
		return m, m.perform(query.ActionShowInLibrary)
	case key.Matches(msg, m.keys.OpenFolder):
		return m, m.perform(query.ActionOpenFolder)
	case key.Matches(msg, m.keys.Refresh):
		return m, QueryCmd(m.svc, m.input.Value())
	case key.Matches(msg, m.keys.Clear):
		m.input.SetValue("")
		return m, QueryCmd(m.svc, "")
	}

	prev := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != prev {
		m.status = ""
		return m, tea.Batch(cmd, QueryCmd(m.svc, m.input.Value()))
	}
	return m, cmd
}

// perform runs the selected result's action of the given kind, if it has one
func (m *Model) perform(kind query.ActionKind) tea.Cmd {
	r, ok := m.Selected()
	if !ok {
		return nil
	}
	for _, a := range query.Actions(r) {
		if a.Kind == kind {
			return PerformCmd(m.svc, a, r.Title)
		}
	}
	return nil
}

// Selected returns the highlighted result
func (m Model) Selected() (query.Result, bool) {
	if m.cursor < 0 || m.cursor >= len(m.results) {
		return query.Result{}, false
	}
	return m.results[m.cursor], true
}

func (m *Model) setResults(results []query.Result) {
	m.results = results
	m.loaded = true
	m.cursor = 0
	m.offset = 0
}

func (m *Model) setStatus(s string, isErr bool) {
	m.status = s
	m.statusErr = isErr
}

func (m *Model) moveCursor(delta int) {
	if len(m.results) == 0 {
		return
	}
	m.cursor = max(0, min(len(m.results)-1, m.cursor+delta))
	m.clampScroll()
}

// visibleRows returns how many results fit on screen
func (m Model) visibleRows() int {
	if m.height == 0 {
		return 10
	}
	return max(1, (m.height-headerLines-footerLines)/rowLines)
}

// clampScroll keeps the cursor inside the visible window
func (m *Model) clampScroll() {
	rows := m.visibleRows()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+rows {
		m.offset = m.cursor - rows + 1
	}
}
