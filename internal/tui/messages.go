package tui

import "github.com/mmcdole/steamrun/internal/query"

// Message types for the TUI

// ResultsMsg carries the results of a query
type ResultsMsg struct {
	Query   string
	Results []query.Result
}

// ActionDoneMsg signals that an action was handed to the launcher
type ActionDoneMsg struct {
	Action query.Action
	Title  string
	Err    error
}

// FilesChangedMsg signals that Steam rewrote a watched file
type FilesChangedMsg struct{}
