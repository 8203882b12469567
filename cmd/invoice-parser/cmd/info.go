package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jgrassler/XML-Invoice-Parser/internal/format"
	"github.com/jgrassler/XML-Invoice-Parser/internal/sigcheck"
	"github.com/jgrassler/XML-Invoice-Parser/internal/xmltree"
)

var infoCmd = &cobra.Command{
	Use:   "info [files...]",
	Short: "Show detection information about invoice files",
	Long: `Display detection information without full extraction.

Shows:
  - Whether the file is well-formed XML
  - The detected dialect, if any
  - Whether an XMLDSig signature element is present

Examples:
  invoice-parser info invoice.xml
  invoice-parser info *.xml`,
	Args: cobra.MinimumNArgs(1),
	RunE: runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	files, err := collectFiles(args)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no files found")
	}

	registry := format.NewRegistry()
	extractor := sigcheck.NewExtractor()

	for _, file := range files {
		printFileInfo(registry, extractor, file)
		fmt.Println()
	}

	return nil
}

func printFileInfo(registry *format.Registry, extractor *sigcheck.Extractor, file string) {
	fmt.Printf("File: %s\n", file)

	info, err := os.Stat(file)
	if err != nil {
		fmt.Printf("  Error: %v\n", err)
		return
	}
	fmt.Printf("  Size: %d bytes\n", info.Size())

	data, err := os.ReadFile(file)
	if err != nil {
		fmt.Printf("  Error reading file: %v\n", err)
		return
	}

	doc, err := xmltree.Parse(data)
	if err != nil {
		fmt.Printf("  Well-formed: no (%v)\n", err)
		return
	}
	fmt.Printf("  Well-formed: yes\n")
	fmt.Printf("  Root namespace: %s\n", xmltree.RootNamespace(doc))

	if f := registry.Detect(doc); f != nil {
		fmt.Printf("  Dialect: %s\n", f.Dialect())
	} else {
		fmt.Printf("  Dialect: unknown\n")
	}

	if extractor.CanExtract(data) {
		fmt.Printf("  Signature: present\n")
	} else {
		fmt.Printf("  Signature: none\n")
	}
}
