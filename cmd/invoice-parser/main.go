package main

import (
	"fmt"
	"os"

	"github.com/jgrassler/XML-Invoice-Parser/cmd/invoice-parser/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
