package main

import (
	"fmt"
	"slices"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info [appid]",
	Short: "Display installation and cache details",
	Long: `Print the resolved install root, cache statistics and app counts. With an
app ID, print that app's appinfo.vdf record instead.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInfo,
}

func runInfo(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	lib, err := a.library()
	if err != nil {
		return err
	}
	if len(args) == 1 {
		return printAppInfo(a, args[0])
	}

	folders, err := lib.ListLibraryFolders()
	if err != nil {
		return err
	}
	apps, err := lib.ListAllApps()
	if err != nil {
		return err
	}
	var mods int
	for _, f := range folders {
		mods += len(lib.ListSourceMods(f))
	}

	fmt.Printf("Steam Installation\n")
	fmt.Printf("==================\n\n")
	fmt.Printf("Install Root:  %s\n", lib.InstallRoot())
	fmt.Printf("Folders:       %s\n", humanize.Comma(int64(len(folders))))
	fmt.Printf("Apps:          %s\n", humanize.Comma(int64(len(apps))))
	fmt.Printf("Source Mods:   %s\n", humanize.Comma(int64(mods)))

	fmt.Printf("\nCache\n")
	fmt.Printf("-----\n")
	if dir := a.cfg.CacheDir(); dir != "" {
		fmt.Printf("Directory:     %s\n", dir)
	} else {
		fmt.Printf("Directory:     (memory only)\n")
	}
	if a.store != nil {
		fmt.Printf("Entries:       %s\n", humanize.Comma(int64(len(a.store.Keys()))))
	}

	stats := lib.Stats()
	names := make([]string, 0, len(stats))
	for name := range stats {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		s := stats[name]
		fmt.Printf("  %-15s hits %d, restored %d, parsed %d\n", name+":", s.Hits, s.Restores, s.Computes)
	}
	return nil
}

func printAppInfo(a *app, arg string) error {
	id, err := parseAppID(arg)
	if err != nil {
		return err
	}
	info, ok, err := a.lib.AppInfo(id)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("app %d is not in appinfo.vdf", id)
	}

	fmt.Printf("App %d\n", info.ID)
	fmt.Printf("==========\n\n")
	fmt.Printf("Name:          %s\n", orDash(info.Name))
	fmt.Printf("Type:          %s\n", info.Type)
	fmt.Printf("Last Updated:  %s\n", formatTime(info.LastUpdated))
	fmt.Printf("Change Number: %s\n", humanize.Comma(int64(info.ChangeNumber)))
	fmt.Printf("Info State:    %d\n", info.InfoState)
	fmt.Printf("Token:         %d\n", info.Token)
	fmt.Printf("SHA1:          %s\n", info.SHA1)
	if info.BinarySHA1 != "" {
		fmt.Printf("Binary SHA1:   %s\n", info.BinarySHA1)
	}
	return nil
}
