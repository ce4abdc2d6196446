package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/mmcdole/steamrun/internal/tui"
	"github.com/mmcdole/steamrun/internal/watch"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Open the interactive launcher",
	Args:  cobra.NoArgs,
	RunE:  runTUI,
}

func runTUI(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	var changes <-chan struct{}
	if a.cfg.UI.Watch {
		if w := a.startWatcher(ctx); w != nil {
			defer w.Close()
			changes = w.Changes()
		}
	}

	model := tui.NewModel(a.query, changes, a.logger)
	p := tea.NewProgram(model, tea.WithAltScreen())

	a.logger.Info("starting TUI")
	if _, err := p.Run(); err != nil {
		a.logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}
	a.logger.Info("shutting down")
	return nil
}

// startWatcher watches the installation's data directories. Watching is best
// effort: without an installation or on watcher errors the TUI runs without it.
func (a *app) startWatcher(ctx context.Context) *watch.Watcher {
	lib, err := a.library()
	if err != nil {
		return nil
	}
	folders, err := lib.ListLibraryFolders()
	if err != nil {
		a.logger.Warn("not watching library folders", "error", err)
	}

	w, err := watch.New(watch.Dirs(lib.InstallRoot(), folders), watch.DefaultDebounce, a.logger)
	if err != nil {
		a.logger.Warn("file watching unavailable", "error", err)
		return nil
	}
	a.logger.Info("watching steam files", "dirs", w.Watched())
	go func() {
		if err := w.Run(ctx); err != nil {
			a.logger.Warn("file watcher stopped", "error", err)
		}
	}()
	return w
}
