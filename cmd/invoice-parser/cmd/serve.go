package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/jgrassler/XML-Invoice-Parser/internal/config"
	"github.com/jgrassler/XML-Invoice-Parser/internal/server"
)

var (
	configFile   string
	serverAddr   string
	serverDebug  bool
	readTimeout  time.Duration
	writeTimeout time.Duration
	serveTrust   string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Start an HTTP API server for parsing invoices.

The API provides endpoints for:
  - POST /api/v1/parse    - Parse an XML invoice
  - POST /api/v1/info     - Detection info without extraction
  - POST /api/v1/verify   - Verify XMLDSig signature
  - GET  /api/v1/formats  - List supported dialects
  - GET  /health          - Health check

Configuration is read from --config (YAML) and INVOICE_PARSER_* environment
variables; command-line flags override both.

Examples:
  invoice-parser serve
  invoice-parser serve --address :9090 --debug
  invoice-parser serve --config server.yaml`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&configFile, "config", "", "Config file (YAML)")
	serveCmd.Flags().StringVar(&serverAddr, "address", "", "Server listen address (default :8080)")
	serveCmd.Flags().BoolVar(&serverDebug, "debug", false, "Enable debug mode")
	serveCmd.Flags().DurationVar(&readTimeout, "read-timeout", 0, "HTTP read timeout")
	serveCmd.Flags().DurationVar(&writeTimeout, "write-timeout", 0, "HTTP write timeout")
	serveCmd.Flags().StringVar(&serveTrust, "trust-pem", "", "PEM bundle of trusted roots for /verify")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configFile)
	if err != nil {
		return err
	}

	// Flags override file and environment
	if serverAddr != "" {
		cfg.Server.Address = serverAddr
	}
	if serverDebug {
		cfg.Server.Debug = true
	}
	if readTimeout > 0 {
		cfg.Server.ReadTimeout = readTimeout
	}
	if writeTimeout > 0 {
		cfg.Server.WriteTimeout = writeTimeout
	}
	if serveTrust != "" {
		cfg.Trust.PEMPath = serveTrust
	}

	srv, err := server.NewServer(&server.Config{
		Address:      cfg.Server.Address,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		Debug:        cfg.Server.Debug,
		TrustPEMPath: cfg.Trust.PEMPath,
	})
	if err != nil {
		return err
	}

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		fmt.Println("\nShutting down server...")
		os.Exit(0)
	}()

	fmt.Printf("Starting server on %s\n", cfg.Server.Address)
	return srv.Run()
}
