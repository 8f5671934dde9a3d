package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/rezonia/filing-engine/internal/classify"
	"github.com/rezonia/filing-engine/internal/filing"
	"github.com/rezonia/filing-engine/internal/isdoc"
	"github.com/rezonia/filing-engine/internal/logger"
	"github.com/rezonia/filing-engine/internal/model"
)

// Batch is the JSON input file for the generate subcommands: one
// period's worth of records plus the filer identity.
type Batch struct {
	Submitter model.Submitter         `json:"submitter"`
	Issued    []model.IssuedInvoice   `json:"issued"`
	Received  []model.ReceivedInvoice `json:"received"`
}

var (
	inputFile  string
	outputFile string
	year       int
	month      int
	quarter    int

	crossBorderServices string
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a filing from a JSON batch file",
}

var controlStatementCmd = &cobra.Command{
	Use:   "control-statement",
	Short: "Generate the VAT control statement (DPHKH1)",
	RunE:  runControlStatement,
}

var vatReturnCmd = &cobra.Command{
	Use:   "vat-return",
	Short: "Generate the VAT return (DPHDP3)",
	RunE:  runVATReturn,
}

var ecSalesCmd = &cobra.Command{
	Use:   "ec-sales",
	Short: "Generate the EC sales list (DPHSHV)",
	RunE:  runECSales,
}

func init() {
	rootCmd.AddCommand(generateCmd)
	generateCmd.AddCommand(controlStatementCmd, vatReturnCmd, ecSalesCmd)

	generateCmd.PersistentFlags().StringVarP(&inputFile, "input", "i", "", "JSON batch file (required)")
	generateCmd.PersistentFlags().StringVarP(&outputFile, "output", "o", "", "Output file (default: stdout)")
	generateCmd.PersistentFlags().IntVar(&year, "year", 0, "Reporting year (required)")
	generateCmd.PersistentFlags().IntVar(&month, "month", 0, "Reporting month (mutually exclusive with --quarter)")
	generateCmd.PersistentFlags().IntVar(&quarter, "quarter", 0, "Reporting quarter (mutually exclusive with --month)")
	_ = generateCmd.MarkPersistentFlagRequired("input")
	generateCmd.MarkFlagsMutuallyExclusive("month", "quarter")

	vatReturnCmd.Flags().StringVar(&crossBorderServices, "cross-border-services", "",
		"Externally computed cross-border services aggregate, included when positive")
}

func loadBatch() (*Batch, error) {
	data, err := os.ReadFile(inputFile)
	if err != nil {
		return nil, fmt.Errorf("reading batch file: %w", err)
	}
	var b Batch
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("parsing batch file: %w", err)
	}
	return &b, nil
}

func flagPeriod() model.Period {
	if month != 0 {
		return model.Monthly(year, month)
	}
	if quarter != 0 {
		return model.Quarterly(year, quarter)
	}
	// zero value: builders reject it with ErrPeriodRequired
	return model.Period{}
}

func writeOutput(xml string) error {
	if outputFile == "" {
		fmt.Println(xml)
		return nil
	}
	return os.WriteFile(outputFile, []byte(xml), 0o644)
}

func reportWarnings(warnings []string) {
	log := logger.WithComponent("generate")
	for _, w := range warnings {
		log.Warn().Msg(w)
	}
}

func runControlStatement(cmd *cobra.Command, args []string) error {
	batch, err := loadBatch()
	if err != nil {
		return err
	}

	res, err := filing.BuildControlStatement(filing.ControlStatementInput{
		Issued:    batch.Issued,
		Received:  batch.Received,
		Submitter: batch.Submitter,
		Period:    flagPeriod(),
		Options:   classify.DefaultOptions(batch.Submitter.TaxID),
		Now:       time.Now(),
	})
	if err != nil {
		return err
	}
	reportWarnings(res.Warnings)
	return writeOutput(res.XML)
}

func runVATReturn(cmd *cobra.Command, args []string) error {
	batch, err := loadBatch()
	if err != nil {
		return err
	}

	services := decimal.Zero
	if crossBorderServices != "" {
		services, err = decimal.NewFromString(crossBorderServices)
		if err != nil {
			return fmt.Errorf("invalid --cross-border-services: %w", err)
		}
	}

	res, err := filing.BuildVATReturn(filing.VATReturnInput{
		Issued:              batch.Issued,
		Received:            batch.Received,
		Submitter:           batch.Submitter,
		Period:              flagPeriod(),
		CrossBorderServices: services,
		Now:                 time.Now(),
	})
	if err != nil {
		return err
	}
	return writeOutput(res.XML)
}

func runECSales(cmd *cobra.Command, args []string) error {
	batch, err := loadBatch()
	if err != nil {
		return err
	}

	res, err := filing.BuildECSalesList(filing.ECSalesInput{
		Issued:    batch.Issued,
		Submitter: batch.Submitter,
		Year:      year,
		Quarter:   quarter,
		Options:   classify.DefaultOptions(batch.Submitter.TaxID),
		Now:       time.Now(),
	})
	if err != nil {
		return err
	}
	return writeOutput(res.XML)
}

// isdocCmd lives here too: it reads a self-contained JSON document
// description rather than the batch file.
type isdocInput struct {
	Invoice     model.IssuedInvoice `json:"invoice"`
	Lines       []model.LineItem    `json:"lines"`
	VATPayer    bool                `json:"vat_payer"`
	Supplier    isdoc.Party         `json:"supplier"`
	Customer    isdoc.Party         `json:"customer"`
	BankAccount string              `json:"bank_account,omitempty"`
	IBAN        string              `json:"iban,omitempty"`
	BIC         string              `json:"bic,omitempty"`
}

var isdocCmd = &cobra.Command{
	Use:   "isdoc",
	Short: "Generate an ISDOC structured invoice",
	RunE:  runISDOC,
}

func init() {
	generateCmd.AddCommand(isdocCmd)
}

func runISDOC(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(inputFile)
	if err != nil {
		return fmt.Errorf("reading input file: %w", err)
	}
	var in isdocInput
	if err := json.Unmarshal(data, &in); err != nil {
		return fmt.Errorf("parsing input file: %w", err)
	}

	out, err := isdoc.Serialize(in.Invoice, in.Lines, isdoc.Options{
		VATPayer:      in.VATPayer,
		Supplier:      in.Supplier,
		Customer:      in.Customer,
		BankAccount:   in.BankAccount,
		IBAN:          in.IBAN,
		BIC:           in.BIC,
		IssuingSystem: filing.SoftwareName + " " + version,
		Now:           time.Now(),
	})
	if err != nil {
		return err
	}
	return writeOutput(out)
}
