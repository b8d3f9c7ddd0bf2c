package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var countCmd = &cobra.Command{
	Use:   "count",
	Short: "Print the number of RFCs in the index",
	Args:  cobra.NoArgs,
	RunE:  runCount,
}

func init() {
	rootCmd.AddCommand(countCmd)
}

func runCount(cmd *cobra.Command, _ []string) error {
	if rfcService == nil {
		return errors.New("rfc service not configured")
	}

	n, err := rfcService.ListCount(cmd.Context())
	if err != nil {
		return fmt.Errorf("count failed: %w", err)
	}

	cmd.Println(n)
	return nil
}
