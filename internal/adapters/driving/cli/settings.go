package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change settings",
	Long: `Shows the settings in effect after applying config.toml and the
RFCDOCS_CACHE_DIR and LOG_LEVEL environment variables.`,
	Args: cobra.NoArgs,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective settings",
	Args:  cobra.NoArgs,
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change one setting in config.toml",
	Long: `Validates and stores a single setting in config.toml.

Keys:
  cache.dir, cache.backend (file, sqlite, memory),
  remote.index_url, remote.document_url (must contain {number}),
  remote.timeout_seconds, remote.requests_per_second, remote.retries,
  log.level (debug, info, warn, error), log.file`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

var settingsResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore default settings in config.toml",
	Args:  cobra.NoArgs,
	RunE:  runSettingsReset,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsResetCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	key, value := args[0], args[1]
	if err := settingsService.Update(key, value); err != nil {
		return fmt.Errorf("failed to set %s: %w (valid keys: %s)", key, err, strings.Join(settingsService.Keys(), ", "))
	}

	cmd.Printf("Set %s = %s\n", key, value)
	return nil
}

func runSettingsReset(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	defaults := settingsService.GetDefaults()
	if err := settingsService.Save(&defaults); err != nil {
		return fmt.Errorf("failed to reset settings: %w", err)
	}

	cmd.Println("Settings reset to defaults")
	return nil
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	dir := settings.Cache.Dir
	if cacheDir != "" {
		dir = cacheDir
	}
	if dir == "" {
		dir = "(default)"
	}

	cmd.Println("Cache")
	cmd.Printf("  Directory:   %s\n", dir)
	cmd.Printf("  Backend:     %s\n", settings.Cache.Backend)
	cmd.Println()
	cmd.Println("Remote")
	cmd.Printf("  Index URL:   %s\n", settings.Remote.IndexURL)
	cmd.Printf("  Document:    %s\n", settings.Remote.DocumentURL)
	cmd.Printf("  Timeout:     %s\n", settings.Remote.Timeout)
	cmd.Printf("  Rate limit:  %g req/s\n", settings.Remote.RequestsPerSecond)
	cmd.Printf("  Retries:     %d\n", settings.Remote.Retries)
	cmd.Println()
	cmd.Println("Logging")
	cmd.Printf("  Level:       %s\n", settings.Log.Level)
	cmd.Printf("  File:        %s\n", settings.Log.File)
	return nil
}
