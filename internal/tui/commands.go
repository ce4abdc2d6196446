package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/steamrun/internal/query"
)

// Command factories for async operations

// QueryCmd runs a query off the UI goroutine
func QueryCmd(svc Querier, text string) tea.Cmd {
	return func() tea.Msg {
		return ResultsMsg{Query: text, Results: svc.Query(text)}
	}
}

// PerformCmd runs an action for the result titled title
func PerformCmd(svc Querier, a query.Action, title string) tea.Cmd {
	return func() tea.Msg {
		return ActionDoneMsg{Action: a, Title: title, Err: svc.Perform(a)}
	}
}

// WaitForChangeCmd blocks until the watcher signals a change. A nil channel
// means watching is off.
func WaitForChangeCmd(changes <-chan struct{}) tea.Cmd {
	if changes == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-changes; !ok {
			return nil
		}
		return FilesChangedMsg{}
	}
}
