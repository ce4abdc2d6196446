package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// Version is set at build time via -ldflags
var Version = "dev"

var installDir string

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "steamrun",
	Short: "Find and launch installed Steam games",
	Long: `steamrun reads the local Steam installation (library folders, app
manifests, appinfo.vdf, login users and non-Steam shortcuts) and lets you
search and launch what is installed.

Without a subcommand it opens the interactive launcher when attached to a
terminal and prints the library otherwise.`,
	Args:          cobra.ArbitraryArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runRoot,
}

func init() {
	rootCmd.Version = Version
	rootCmd.PersistentFlags().StringVar(&installDir, "install-dir", "", "Steam install directory (overrides config and auto-detection)")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(foldersCmd)
	rootCmd.AddCommand(usersCmd)
	rootCmd.AddCommand(shortcutsCmd)
	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(launchCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(tuiCmd)
}

func runRoot(cmd *cobra.Command, args []string) error {
	if isInteractive() {
		return runTUI(cmd, args)
	}
	return runList(cmd, args)
}

func isInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}
