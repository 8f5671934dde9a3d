package classify

import (
	"github.com/shopspring/decimal"

	"github.com/rezonia/filing-engine/internal/model"
)

// ReceivedRow is one itemized received invoice.
type ReceivedRow struct {
	Seq     int
	Invoice model.ReceivedInvoice
}

// AggregatedReceived is the single summary bucket for received
// invoices that do not get their own line: running sums only.
type AggregatedReceived struct {
	Base decimal.Decimal // total without VAT
	VAT  decimal.Decimal
}

// ReceivedResult is the outcome of classifying received invoices.
type ReceivedResult struct {
	Itemized   []ReceivedRow
	Aggregated AggregatedReceived

	// SubtotalSum covers both buckets, for the closing totals block.
	SubtotalSum decimal.Decimal

	Warnings []string
}

// ClassifyReceived splits received invoices into itemized lines and
// the aggregated summary bucket.
//
// An invoice is itemized when it is denominated in the home currency
// and its with-VAT total strictly exceeds the threshold; an invoice at
// exactly the threshold aggregates, as does any foreign-currency
// invoice regardless of amount. The skip-with-warning policy matches
// the issued classifier.
func ClassifyReceived(invoices []model.ReceivedInvoice, opts Options) ReceivedResult {
	res := ReceivedResult{
		Aggregated: AggregatedReceived{
			Base: decimal.Zero,
			VAT:  decimal.Zero,
		},
		SubtotalSum: decimal.Zero,
	}

	for _, inv := range invoices {
		if reason, ok := receivedMissingField(inv); !ok {
			res.Warnings = append(res.Warnings,
				model.NewRowError(inv.ID, reason, "missing required field, invoice skipped").Error())
			continue
		}

		itemized := inv.Currency == opts.HomeCurrency &&
			inv.TotalWithVAT.GreaterThan(opts.ItemizedThreshold)

		if itemized {
			res.Itemized = append(res.Itemized, ReceivedRow{
				Seq:     len(res.Itemized) + 1,
				Invoice: inv,
			})
		} else {
			res.Aggregated.Base = res.Aggregated.Base.Add(inv.TotalWithoutVAT)
			res.Aggregated.VAT = res.Aggregated.VAT.Add(inv.VAT())
		}

		res.SubtotalSum = res.SubtotalSum.Add(inv.TotalWithoutVAT)
	}

	return res
}

func receivedMissingField(inv model.ReceivedInvoice) (string, bool) {
	switch {
	case inv.Number == "":
		return "number", false
	case inv.IssueDate.IsZero():
		return "issue date", false
	case inv.SupplierVATID == "":
		return "supplier vat id", false
	}
	return "", true
}
