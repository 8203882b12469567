package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

var (
	version = "1.0.0"

	// Global flags
	verbose      bool
	outputFormat string
)

var rootCmd = &cobra.Command{
	Use:   "invoice-parser",
	Short: "Parse XML invoices into a normalized representation",
	Long: `Invoice Parser converts XML e-invoices from competing standards into one
normalized shape: document metadata plus an ordered list of line items.

Supported dialects:
  - UBL 2.x (XRechnung-UBL, Peppol BIS Billing)
  - UN/CEFACT CrossIndustryInvoice (ZUGFeRD 2.x, Factur-X, XRechnung-CII)
  - CrossIndustryDocument (ZUGFeRD 1.0)

Examples:
  # Parse a single invoice
  invoice-parser parse invoice.xml

  # Parse multiple invoices into one JSON document
  invoice-parser parse *.xml -o results.json

  # Show detection info without full extraction
  invoice-parser info invoice.xml

  # List supported dialects
  invoice-parser formats`,
	Version: version,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "format", "f", "json", "Output format (json, table)")
}

func printVerbose(format string, args ...interface{}) {
	if verbose {
		fmt.Fprintf(os.Stderr, format, args...)
	}
}

// collectFiles expands arguments into a file list, resolving glob
// patterns and descending one level into directories.
func collectFiles(args []string) ([]string, error) {
	var files []string

	for _, arg := range args {
		if strings.ContainsAny(arg, "*?[") {
			matches, err := filepath.Glob(arg)
			if err != nil {
				return nil, fmt.Errorf("invalid pattern %s: %w", arg, err)
			}
			files = append(files, matches...)
			continue
		}

		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}

		if info.IsDir() {
			entries, err := os.ReadDir(arg)
			if err != nil {
				return nil, err
			}
			for _, entry := range entries {
				if entry.IsDir() {
					continue
				}
				if strings.EqualFold(filepath.Ext(entry.Name()), ".xml") {
					files = append(files, filepath.Join(arg, entry.Name()))
				}
			}
			continue
		}

		files = append(files, arg)
	}

	return files, nil
}
