// Package filinglib provides a public API for generating Czech tax
// filings and e-invoice documents from in-memory invoice records.
//
// Example usage:
//
//	res, err := filinglib.BuildControlStatement(filinglib.ControlStatementInput{
//	    Issued:    issued,
//	    Received:  received,
//	    Submitter: submitter,
//	    Period:    filinglib.Quarterly(2024, 3),
//	    Options:   filinglib.DefaultOptions(submitter.TaxID),
//	    Now:       time.Now(),
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(res.XML)
package filinglib

import (
	"github.com/rezonia/filing-engine/internal/classify"
	"github.com/rezonia/filing-engine/internal/filing"
	"github.com/rezonia/filing-engine/internal/isdoc"
	"github.com/rezonia/filing-engine/internal/model"
	"github.com/rezonia/filing-engine/internal/spayd"
)

// Re-export core types for public API
type (
	IssuedInvoice   = model.IssuedInvoice
	ReceivedInvoice = model.ReceivedInvoice
	LineItem        = model.LineItem
	Submitter       = model.Submitter
	BankingInfo     = model.BankingInfo
	Period          = model.Period

	Options = classify.Options

	ControlStatementInput = filing.ControlStatementInput
	VATReturnInput        = filing.VATReturnInput
	ECSalesInput          = filing.ECSalesInput
	Result                = filing.Result

	ISDOCParty   = isdoc.Party
	ISDOCOptions = isdoc.Options
)

// Re-export error types
type (
	RowError    = model.RowError
	FilingError = model.FilingError
)

// Sentinel fatal conditions
var (
	ErrPeriodRequired        = model.ErrPeriodRequired
	ErrNoCrossBorderSupplies = model.ErrNoCrossBorderSupplies
)

// Period constructors
var (
	Monthly   = model.Monthly
	Quarterly = model.Quarterly
)

// DefaultOptions returns the Czech market parameters for a filer.
var DefaultOptions = classify.DefaultOptions

// Generators
var (
	BuildControlStatement = filing.BuildControlStatement
	BuildVATReturn        = filing.BuildVATReturn
	BuildECSalesList      = filing.BuildECSalesList
	SerializeISDOC        = isdoc.Serialize
	EncodeSPAYD           = spayd.Encode
)
