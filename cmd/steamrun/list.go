package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/mmcdole/steamrun/internal/config"
	"github.com/mmcdole/steamrun/internal/query"
)

var listCmd = &cobra.Command{
	Use:   "list [query]",
	Short: "Print installed apps, Source mods and shortcuts",
	Long: `Print what the launcher would show for query. Apps come first, most
recently played at the top, followed by Source mods and the current user's
non-Steam shortcuts. Multi-word titles also match their initials ("hl2").`,
	RunE: runList,
}

var listAll bool

func init() {
	listCmd.Flags().BoolVarP(&listAll, "all", "a", false, "Ignore ui.max_results and list every app")
}

func runList(cmd *cobra.Command, args []string) error {
	a, err := newApp(func(cfg *config.Config) {
		if listAll {
			cfg.UI.MaxResults = 0
		}
	})
	if err != nil {
		return err
	}
	defer a.Close()

	results := a.query.Query(strings.Join(args, " "))
	if len(results) == 1 && results[0].Kind == query.KindError {
		return errors.New(results[0].Subtitle)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "KIND\tID\tTITLE\tDETAIL\tLAST PLAYED\n")
	for _, r := range results {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", r.Kind, resultID(r), r.Title, r.Subtitle, lastPlayed(r.LastPlayed()))
	}
	return w.Flush()
}

func resultID(r query.Result) string {
	switch r.Kind {
	case query.KindApp:
		return fmt.Sprint(r.App.ID)
	case query.KindSourceMod:
		return fmt.Sprint(r.Mod.BaseAppID)
	case query.KindShortcut:
		return fmt.Sprint(r.Shortcut.GameID())
	default:
		return "-"
	}
}

// lastPlayed renders a play time relative to now. Steam writes 0 for never.
func lastPlayed(t time.Time) string {
	if t.IsZero() || t.Unix() == 0 {
		return "-"
	}
	return humanize.Time(t)
}
