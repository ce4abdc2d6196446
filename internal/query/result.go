package query

import (
	"fmt"
	"time"

	"github.com/mmcdole/steamrun/internal/domain"
	"github.com/mmcdole/steamrun/internal/launch"
)

// Kind identifies what a Result points at.
type Kind int

const (
	KindApp Kind = iota
	KindSourceMod
	KindShortcut
	KindError
)

func (k Kind) String() string {
	switch k {
	case KindApp:
		return "app"
	case KindSourceMod:
		return "sourcemod"
	case KindShortcut:
		return "shortcut"
	case KindError:
		return "error"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Result is one row shown to the user.
type Result struct {
	Kind     Kind
	Title    string
	Subtitle string
	Icon     string // Cached library artwork, "" when none

	// MatchedIndexes are byte offsets into Title that matched the query.
	MatchedIndexes []int
	Score          int

	App      *domain.App       // KindApp
	Mod      *domain.SourceMod // KindSourceMod
	Shortcut *domain.Shortcut  // KindShortcut
	Err      error             // KindError
}

// LastPlayed returns when the app was last run, zero for other kinds.
func (r Result) LastPlayed() time.Time {
	if r.App == nil {
		return time.Time{}
	}
	return r.App.LastPlayed
}

// ActionKind is something the user can do with a result.
type ActionKind int

const (
	ActionRun ActionKind = iota
	ActionShowInLibrary
	ActionOpenFolder
)

// Action is a runnable entry of a result's context menu.
type Action struct {
	Kind   ActionKind
	Title  string
	Key    string // Key binding shown next to the title
	Target string // URI for run and library actions, a directory for folders
}

// Actions lists what can be done with r, the default action first.
func Actions(r Result) []Action {
	switch r.Kind {
	case KindApp:
		actions := []Action{
			{Kind: ActionRun, Title: "Run", Key: "enter", Target: launch.AppURI(r.App.ID)},
			{Kind: ActionShowInLibrary, Title: "Show in Library", Key: "ctrl+l", Target: launch.LibraryURI(r.App.ID)},
		}
		if dir := r.App.InstallPath(); dir != "" {
			actions = append(actions, Action{Kind: ActionOpenFolder, Title: "Open Install Folder", Key: "ctrl+o", Target: dir})
		}
		return actions
	case KindSourceMod:
		return []Action{
			{Kind: ActionRun, Title: "Run", Key: "enter", Target: launch.SourceModURI(*r.Mod)},
			{Kind: ActionOpenFolder, Title: "Open Mod Folder", Key: "ctrl+o", Target: r.Mod.Path},
		}
	case KindShortcut:
		actions := []Action{
			{Kind: ActionRun, Title: "Run", Key: "enter", Target: launch.ShortcutURI(*r.Shortcut)},
		}
		if dir := unquote(r.Shortcut.StartDir); dir != "" {
			actions = append(actions, Action{Kind: ActionOpenFolder, Title: "Open Start Folder", Key: "ctrl+o", Target: dir})
		}
		return actions
	default:
		return nil
	}
}

// unquote strips the double quotes Steam writes around shortcut paths.
func unquote(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}

func appSubtitle(t domain.AppType, id int) string {
	return fmt.Sprintf("Steam %s (%d)", t, id)
}
