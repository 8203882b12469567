package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jgrassler/XML-Invoice-Parser/internal/format"
)

var formatsCmd = &cobra.Command{
	Use:   "formats",
	Short: "List supported invoice dialects",
	Long: `List every registered invoice dialect in detection precedence order.

Detection is first-match: when an ambiguous document could match more
than one dialect, the one listed first wins.`,
	RunE: runFormats,
}

func init() {
	rootCmd.AddCommand(formatsCmd)
}

func runFormats(cmd *cobra.Command, args []string) error {
	registry := format.NewRegistry()
	for i, f := range registry.Formats() {
		fmt.Printf("%d. %s\n   %s\n", i+1, f.Dialect(), f.Supported())
	}
	return nil
}
