package cmd

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/rezonia/filing-engine/internal/model"
	"github.com/rezonia/filing-engine/internal/spayd"
)

var (
	qrAccount  string
	qrAmount   string
	qrCurrency string
	qrMessage  string
	qrSymbol   string
)

var qrCmd = &cobra.Command{
	Use:   "qr",
	Short: "Build a SPAYD payment QR string",
	Long: `Build the single-line SPAYD descriptor rendered as a payment QR code.

Example:
  filing-engine qr --account CZ2806000000000000000123 --amount 450 --currency CZK \
      --message "PLATBA ZA ZBOZI" --vs 1234567890`,
	RunE: runQR,
}

func init() {
	rootCmd.AddCommand(qrCmd)

	qrCmd.Flags().StringVar(&qrAccount, "account", "", "IBAN account number (required)")
	qrCmd.Flags().StringVar(&qrAmount, "amount", "", "Payment amount (required)")
	qrCmd.Flags().StringVar(&qrCurrency, "currency", model.HomeCurrency, "Payment currency")
	qrCmd.Flags().StringVar(&qrMessage, "message", "", "Optional recipient message")
	qrCmd.Flags().StringVar(&qrSymbol, "vs", "", "Optional variable symbol")
	_ = qrCmd.MarkFlagRequired("account")
	_ = qrCmd.MarkFlagRequired("amount")
}

func runQR(cmd *cobra.Command, args []string) error {
	amount, err := decimal.NewFromString(qrAmount)
	if err != nil {
		return fmt.Errorf("invalid --amount: %w", err)
	}

	out := spayd.Encode(model.BankingInfo{
		AccountNumber:  qrAccount,
		Amount:         amount,
		Currency:       qrCurrency,
		Message:        qrMessage,
		VariableSymbol: qrSymbol,
	})
	if out == "" {
		return fmt.Errorf("account number is required")
	}
	fmt.Println(out)
	return nil
}
