package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mmcdole/steamrun/internal/config"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the parse cache",
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete the persistent parse cache",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if err := config.ClearCache(cfg); err != nil {
			return err
		}
		fmt.Printf("Cleared %s\n", cfg.Cache.Dir)
		return nil
	},
}

var cacheInvalidateCmd = &cobra.Command{
	Use:   "invalidate [cache...]",
	Short: "Forget cached results for the current installation",
	Long: `Forget persisted parse results for the resolved installation so the next
run re-reads the files. Name caches (libraryfolders, assets, appinfo,
loginusers) to drop only those; with no names everything is dropped.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		lib, err := a.library()
		if err != nil {
			return err
		}
		defer lib.Reset()

		if len(args) == 0 {
			a.store.InvalidateAll()
			fmt.Println("Dropped all cached results")
			return nil
		}
		for _, name := range args {
			a.store.InvalidatePrefix(name + ":")
			fmt.Printf("Dropped %s\n", name)
		}
		return nil
	},
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the configuration file",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the current configuration to config.yaml",
	Long: `Write the effective configuration (defaults, the existing file and
STEAMRUN_* environment overrides) to config.yaml in the config directory.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if installDir != "" {
			cfg.Steam.InstallDir = installDir
		}
		path, err := config.SaveConfig(cfg, "")
		if err != nil {
			return err
		}
		fmt.Printf("Wrote %s\n", path)
		return nil
	},
}

func init() {
	cacheCmd.AddCommand(cacheClearCmd)
	cacheCmd.AddCommand(cacheInvalidateCmd)
	configCmd.AddCommand(configInitCmd)
}
