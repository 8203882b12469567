package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jgrassler/XML-Invoice-Parser/internal/sigcheck"
)

var trustPEMPath string

var verifyCmd = &cobra.Command{
	Use:   "verify [files...]",
	Short: "Verify XMLDSig signatures in invoice files",
	Long: `Check XML invoice files for embedded XMLDSig signatures and verify
them against a PEM bundle of trusted root certificates.

Verification is offline: no revocation lookups are performed. Without
--trust-pem the signature and signer are still reported, but chain
validation fails.

Examples:
  invoice-parser verify invoice.xml --trust-pem roots.pem`,
	Args: cobra.MinimumNArgs(1),
	RunE: runVerify,
}

func init() {
	rootCmd.AddCommand(verifyCmd)

	verifyCmd.Flags().StringVar(&trustPEMPath, "trust-pem", "", "PEM bundle of trusted root certificates")
}

func runVerify(cmd *cobra.Command, args []string) error {
	files, err := collectFiles(args)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no files found")
	}

	verifier, err := newVerifier(trustPEMPath)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")

	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", file, err)
			continue
		}

		result, err := verifier.Verify(data)
		if err != nil {
			printVerbose("%s: %v\n", file, err)
		}

		fmt.Printf("File: %s\n", file)
		if err := enc.Encode(result); err != nil {
			return err
		}
	}

	return nil
}

func newVerifier(pemPath string) (*sigcheck.Verifier, error) {
	if pemPath == "" {
		return sigcheck.NewVerifier(nil), nil
	}
	pemData, err := os.ReadFile(pemPath)
	if err != nil {
		return nil, err
	}
	roots, err := sigcheck.LoadTrustPEM(pemData)
	if err != nil {
		return nil, err
	}
	return sigcheck.NewVerifier(roots), nil
}
