package cmd

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/rezonia/filing-engine/internal/server"
)

var (
	serveAddress string
	serveDebug   bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the filing generation HTTP API",
	Long: `Start an HTTP server exposing the generators.

Endpoints:
  POST /api/v1/filings/control-statement
  POST /api/v1/filings/vat-return
  POST /api/v1/filings/ec-sales
  POST /api/v1/isdoc
  POST /api/v1/qr
  GET  /health`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddress, "address", defaultAddress(), "Listen address (env: FILING_ADDRESS)")
	serveCmd.Flags().BoolVar(&serveDebug, "debug", false, "Enable request logging")
}

func defaultAddress() string {
	if addr := os.Getenv("FILING_ADDRESS"); addr != "" {
		return addr
	}
	return ":8080"
}

func runServe(cmd *cobra.Command, args []string) error {
	srv := server.NewServer(&server.Config{
		Address:      serveAddress,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		Debug:        serveDebug,
	})
	return srv.Run()
}
