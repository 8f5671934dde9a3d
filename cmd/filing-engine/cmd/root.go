package cmd

import (
	"github.com/spf13/cobra"

	"github.com/rezonia/filing-engine/internal/logger"
)

var (
	version = "1.0.0"

	// Global flags
	logLevel string
	verbose  bool
)

var rootCmd = &cobra.Command{
	Use:   "filing-engine",
	Short: "Generate Czech tax filings and e-invoice documents",
	Long: `Filing Engine turns classified invoice records into government-format
tax documents.

Outputs:
  - VAT control statement (DPHKH1)
  - VAT return (DPHDP3)
  - EC sales list (DPHSHV)
  - ISDOC structured invoice
  - SPAYD payment QR string

Examples:
  # Quarterly control statement from a batch file
  filing-engine generate control-statement -i batch.json --year 2024 --quarter 3

  # Monthly VAT return written to a file
  filing-engine generate vat-return -i batch.json --year 2024 --month 7 -o dp3.xml

  # Payment QR string
  filing-engine qr --account CZ2806000000000000000123 --amount 450 --currency CZK`,
	Version: version,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Shorthand for --log-level debug")

	cobra.OnInitialize(initLogging)
}

func initLogging() {
	level := logLevel
	if verbose {
		level = "debug"
	}
	if err := logger.Setup(level, true); err != nil {
		// fall back silently to zerolog defaults
		_ = logger.Setup("warn", true)
	}
}
