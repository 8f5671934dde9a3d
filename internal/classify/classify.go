// Package classify sorts invoice records into the buckets the tax
// filings are built from. All classifiers are pure: they take the
// invoice set plus explicit options and return an immutable result
// carrying rows, running totals and row-level warnings.
package classify

import (
	"github.com/shopspring/decimal"

	"github.com/rezonia/filing-engine/internal/model"
)

// Options carries the market parameters the classifiers depend on.
// They are explicit call parameters rather than process state so a
// single binary can serve filers in different configurations.
type Options struct {
	HomeCountry         string
	HomeCurrency        string
	CrossBorderCurrency string

	// ItemizedThreshold is the with-VAT amount above which a received
	// invoice gets its own control-statement line. Exactly at the
	// threshold still aggregates.
	ItemizedThreshold decimal.Decimal

	// SubmitterVATID is the filer's own VAT id, consulted by the
	// reverse-charge test.
	SubmitterVATID string
}

// DefaultOptions returns the Czech market parameters.
func DefaultOptions(submitterVATID string) Options {
	return Options{
		HomeCountry:         model.HomeCountry,
		HomeCurrency:        model.HomeCurrency,
		CrossBorderCurrency: model.CrossBorderCurrency,
		ItemizedThreshold:   model.ItemizedThreshold,
		SubmitterVATID:      submitterVATID,
	}
}
