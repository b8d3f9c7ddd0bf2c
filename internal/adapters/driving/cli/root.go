// Package cli provides the cobra command tree for rfcdocs.
package cli

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/rfcdocs/internal/core/ports/driving"
	"github.com/custodia-labs/rfcdocs/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

var (
	cacheDir  string
	configDir string
	verbose   bool
)

// Services used by commands. Wired in PersistentPreRunE unless already set.
var (
	rfcService      driving.RFCService
	settingsService driving.SettingsService
	cleanup         func()
)

// skipWiring marks commands that run without the service graph.
const skipWiring = "rfcdocs/skip-wiring"

var rootCmd = &cobra.Command{
	Use:   "rfcdocs",
	Short: "Cached access to IETF RFCs for AI assistants",
	Long: `rfcdocs keeps a local cache of the RFC Editor index and RFC texts and serves
them to AI assistants over the Model Context Protocol.

The index is downloaded once and reused until refreshed with
"rfcdocs index refresh". RFC texts are downloaded on first read and
served from the cache afterwards.`,
	SilenceUsage:       true,
	PersistentPreRunE:  setupServices,
	PersistentPostRunE: teardownServices,
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cacheDir, "cache-dir", "", "cache directory (default: $RFCDOCS_CACHE_DIR or ~/.cache/rfcdocs)",
	)
	rootCmd.PersistentFlags().StringVar(
		&configDir, "config-dir", "", "config directory (default: ~/.config/rfcdocs)",
	)
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// Execute runs the root command with the given build version.
func Execute(ctx context.Context, buildVersion string) error {
	if buildVersion != "" {
		version = buildVersion
	}
	// Command output goes to stdout; logs stay on stderr.
	rootCmd.SetOut(os.Stdout)
	return rootCmd.ExecuteContext(ctx)
}

func setupServices(cmd *cobra.Command, _ []string) error {
	if verbose {
		logger.SetVerbose(true)
	}
	if cmd.Annotations[skipWiring] == "true" || rfcService != nil {
		return nil
	}

	app, err := wire(Options{
		CacheDir:  cacheDir,
		ConfigDir: configDir,
		Verbose:   verbose,
	})
	if err != nil {
		return err
	}

	rfcService = app.RFC
	settingsService = app.Settings
	cleanup = func() {
		app.Close()
		rfcService = nil
		settingsService = nil
	}
	return nil
}

func teardownServices(_ *cobra.Command, _ []string) error {
	if cleanup != nil {
		cleanup()
		cleanup = nil
	}
	return nil
}
