package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/rfcdocs/internal/core/domain"
)

var (
	getStartLine int
	getMaxLines  int
	getJSON      bool
)

var getCmd = &cobra.Command{
	Use:   "get [number]",
	Short: "Print lines from an RFC",
	Long: `Prints a window of lines from an RFC, downloading and caching the
text on first use. The number may be written as "2616" or "RFC 2616".

Examples:
  rfcdocs get 2616
  rfcdocs get 2616 --start-line 201 --max-lines 100`,
	Args: cobra.ExactArgs(1),
	RunE: runGet,
}

func init() {
	getCmd.Flags().IntVar(&getStartLine, "start-line", 1, "1-indexed line to start from")
	getCmd.Flags().IntVar(&getMaxLines, "max-lines", domain.DefaultMaxLines, "maximum number of lines to print")
	getCmd.Flags().BoolVar(&getJSON, "json", false, "output the page as JSON")
	rootCmd.AddCommand(getCmd)
}

func runGet(cmd *cobra.Command, args []string) error {
	if rfcService == nil {
		return errors.New("rfc service not configured")
	}

	page, err := rfcService.FetchDocument(cmd.Context(), args[0], getStartLine, getMaxLines)
	if err != nil {
		return fmt.Errorf("get failed: %w", err)
	}

	if getJSON {
		data, err := json.MarshalIndent(page, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal page: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	if page.Title != "" {
		cmd.Printf("RFC %d: %s\n\n", page.Number, page.Title)
	}
	if page.ReturnedCount > 0 {
		cmd.Println(page.Content)
	}
	cmd.Println()
	cmd.Printf("Lines %d-%d of %d", page.StartLine, page.EndLine, page.TotalLines)
	if page.HasMore {
		cmd.Printf(", continue with --start-line %d", page.NextStartLine)
	}
	cmd.Println()
	return nil
}
