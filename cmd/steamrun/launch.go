package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mmcdole/steamrun/internal/launch"
)

var launchCmd = &cobra.Command{
	Use:   "launch <appid>",
	Short: "Run an installed Steam app",
	Args:  cobra.ExactArgs(1),
	RunE:  runLaunch,
}

var launchLibrary bool

func init() {
	launchCmd.Flags().BoolVarP(&launchLibrary, "library", "l", false, "Show the app in the Steam library instead of running it")
}

func runLaunch(cmd *cobra.Command, args []string) error {
	id, err := parseAppID(args[0])
	if err != nil {
		return err
	}

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	uri := launch.AppURI(id)
	if launchLibrary {
		uri = launch.LibraryURI(id)
	}
	if err := a.launcher.Launch(uri); err != nil {
		return fmt.Errorf("launch %s: %w", uri, err)
	}
	fmt.Println(uri)
	return nil
}
