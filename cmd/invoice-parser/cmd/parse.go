package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/jgrassler/XML-Invoice-Parser/internal/format"
	"github.com/jgrassler/XML-Invoice-Parser/internal/model"
)

var outputFile string

var parseCmd = &cobra.Command{
	Use:   "parse [files...]",
	Short: "Parse XML invoice files",
	Long: `Parse one or more XML invoice files and extract normalized data.

The dialect is auto-detected from the document structure. Documents that
are not well-formed XML or match no supported dialect are reported with
their status, not as hard failures.

Examples:
  invoice-parser parse invoice.xml
  invoice-parser parse *.xml -o results.json
  invoice-parser parse invoices/ -f table`,
	Args: cobra.MinimumNArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file (default: stdout)")
}

// FileResult pairs a parse Result with its source file
type FileResult struct {
	File   string        `json:"file"`
	Result *model.Result `json:"result,omitempty"`
	Error  string        `json:"error,omitempty"`
}

func runParse(cmd *cobra.Command, args []string) error {
	files, err := collectFiles(args)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no files found to parse")
	}

	printVerbose("Found %d files to parse\n", len(files))

	dispatcher := format.NewDefaultDispatcher()

	results := make([]*FileResult, 0, len(files))
	for _, file := range files {
		printVerbose("Parsing: %s\n", file)
		results = append(results, parseFile(dispatcher, file))
	}

	return outputResults(results)
}

func parseFile(dispatcher *format.Dispatcher, file string) *FileResult {
	data, err := os.ReadFile(file)
	if err != nil {
		return &FileResult{File: file, Error: err.Error()}
	}

	result, err := dispatcher.Parse(data)
	if err != nil {
		return &FileResult{File: file, Error: err.Error()}
	}

	printVerbose("  Status: %s\n", result.Status)
	return &FileResult{File: file, Result: result}
}

func outputResults(results []*FileResult) error {
	out := os.Stdout
	if outputFile != "" {
		f, err := os.Create(outputFile)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}

	switch outputFormat {
	case "table":
		w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "FILE\tSTATUS\tDIALECT\tNUMBER\tCURRENCY\tGROSS\tITEMS")
		for _, r := range results {
			if r.Error != "" {
				fmt.Fprintf(w, "%s\tERROR\t\t\t\t\t\n", r.File)
				continue
			}
			if !r.Result.OK() {
				fmt.Fprintf(w, "%s\t%s\t\t\t\t\t\n", r.File, r.Result.Status)
				continue
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%d\n",
				r.File,
				r.Result.Status,
				r.Result.Dialect,
				r.Result.Metadata[model.KeyInvoiceNumber],
				r.Result.Metadata[model.KeyCurrency],
				r.Result.Metadata[model.KeyGrossTotal],
				len(r.Result.Items))
		}
		return w.Flush()
	default:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}
}
