package main

import (
	"fmt"
	"os"
	"slices"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/mmcdole/steamrun/internal/domain"
)

var foldersCmd = &cobra.Command{
	Use:   "folders",
	Short: "List Steam library folders",
	Long:  `List the library folders registered in libraryfolders.vdf with the space their apps use.`,
	Args:  cobra.NoArgs,
	RunE:  runFolders,
}

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "List Steam accounts that signed in on this machine",
	Args:  cobra.NoArgs,
	RunE:  runUsers,
}

var shortcutsCmd = &cobra.Command{
	Use:   "shortcuts",
	Short: "List a user's non-Steam shortcuts",
	Long:  `List the non-Steam games in a user's shortcuts.vdf. Defaults to the most recent user.`,
	Args:  cobra.NoArgs,
	RunE:  runShortcuts,
}

var shortcutsUser uint64

func init() {
	shortcutsCmd.Flags().Uint64VarP(&shortcutsUser, "user", "u", 0, "SteamID64 of the user (default: most recent)")
}

func runFolders(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	lib, err := a.library()
	if err != nil {
		return err
	}
	folders, err := lib.ListLibraryFolders()
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "PATH\tLABEL\tAPPS\tUSED\tCAPACITY\tVERIFIED\n")
	for _, f := range folders {
		var used int64
		for _, size := range f.Apps {
			used += size
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			f.Path,
			orDash(f.Label),
			humanize.Comma(int64(len(f.Apps))),
			humanize.Bytes(uint64(used)),
			capacity(f.TotalSize),
			lastPlayed(f.TimeLastUpdateVerified),
		)
	}
	return w.Flush()
}

func runUsers(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	lib, err := a.library()
	if err != nil {
		return err
	}
	users, err := lib.ListUsers()
	if err != nil {
		return err
	}

	ids := make([]uint64, 0, len(users))
	for id := range users {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "STEAMID\tACCOUNT\tPERSONA\tMOST RECENT\tOFFLINE\tLAST LOGIN\n")
	for _, id := range ids {
		u := users[id]
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
			u.SteamID, u.AccountName, u.PersonaName,
			yesNo(u.MostRecent), yesNo(u.WantsOfflineMode), lastPlayed(u.Timestamp))
	}
	return w.Flush()
}

func runShortcuts(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	lib, err := a.library()
	if err != nil {
		return err
	}

	var user domain.User
	if shortcutsUser != 0 {
		users, err := lib.ListUsers()
		if err != nil {
			return err
		}
		u, ok := users[shortcutsUser]
		if !ok {
			return fmt.Errorf("no user with SteamID %d in loginusers.vdf", shortcutsUser)
		}
		user = u
	} else {
		u, ok, err := lib.MostRecentUser()
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("no user is marked as most recent in loginusers.vdf")
		}
		user = u
	}

	shortcuts, err := lib.ListShortcuts(user)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "INDEX\tAPPID\tGAMEID\tNAME\tEXE\n")
	for _, s := range shortcuts {
		fmt.Fprintf(w, "%d\t%d\t%d\t%s\t%s\n", s.Index, uint32(s.AppID), s.GameID(), s.AppName, s.Exe)
	}
	return w.Flush()
}

func capacity(total int64) string {
	if total <= 0 {
		return "-"
	}
	return humanize.Bytes(uint64(total))
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func parseAppID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid app id %q", s)
	}
	return id, nil
}

func formatTime(t time.Time) string {
	if t.IsZero() || t.Unix() == 0 {
		return "-"
	}
	return t.Local().Format(time.RFC3339)
}
