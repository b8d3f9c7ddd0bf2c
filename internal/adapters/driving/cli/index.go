package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/rfcdocs/internal/core/domain"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Manage the cached RFC index",
}

var indexRefreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Download the latest RFC index",
	Long: `Downloads rfc-index.txt from the RFC Editor and replaces the cached
snapshot. When the download fails the cached snapshot is kept.`,
	Args: cobra.NoArgs,
	RunE: runIndexRefresh,
}

var indexStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the cached RFC index",
	Args:  cobra.NoArgs,
	RunE:  runIndexStatus,
}

func init() {
	indexCmd.AddCommand(indexRefreshCmd)
	indexCmd.AddCommand(indexStatusCmd)
	rootCmd.AddCommand(indexCmd)
}

func runIndexRefresh(cmd *cobra.Command, _ []string) error {
	if rfcService == nil {
		return errors.New("rfc service not configured")
	}

	status, err := rfcService.RefreshIndex(cmd.Context())
	if err != nil {
		return fmt.Errorf("refresh failed: %w", err)
	}

	printIndexStatus(cmd, status)
	return nil
}

func runIndexStatus(cmd *cobra.Command, _ []string) error {
	if rfcService == nil {
		return errors.New("rfc service not configured")
	}

	status, err := rfcService.IndexStatus(cmd.Context())
	if err != nil {
		return fmt.Errorf("status failed: %w", err)
	}

	printIndexStatus(cmd, status)
	return nil
}

func printIndexStatus(cmd *cobra.Command, status *domain.IndexStatus) {
	cmd.Printf("Entries:    %d\n", status.Count)
	cmd.Printf("Fetched at: %s\n", status.FetchedAt.Format(time.RFC3339))
	cmd.Printf("Source:     %s\n", status.Source)
	cmd.Printf("Cached:     %d documents\n", status.CachedDocuments)
}
