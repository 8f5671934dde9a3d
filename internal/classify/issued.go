package classify

import (
	"github.com/shopspring/decimal"

	"github.com/rezonia/filing-engine/internal/model"
	"github.com/rezonia/filing-engine/internal/vatid"
)

// IssuedRow is one classified issued invoice with its 1-based sequence
// number. Sequence numbers restart per bucket.
type IssuedRow struct {
	Seq     int
	Invoice model.IssuedInvoice
}

// IssuedResult is the outcome of classifying issued invoices.
type IssuedResult struct {
	ReverseCharge []IssuedRow
	Standard      []IssuedRow

	// SubtotalSum and VATSum cover both buckets, home currency.
	SubtotalSum decimal.Decimal
	VATSum      decimal.Decimal

	Warnings []string
}

// ClassifyIssued splits issued invoices into the reverse-charge and
// standard VAT regimes.
//
// An invoice is reverse charge when it carries no VAT (native total
// equals native subtotal) and both its client VAT id and the
// submitter's VAT id are domestic. Invoices missing a number, a
// taxable-supply date or a client VAT id are skipped with a warning;
// a single bad record must not block the whole filing.
func ClassifyIssued(invoices []model.IssuedInvoice, opts Options) IssuedResult {
	res := IssuedResult{
		SubtotalSum: decimal.Zero,
		VATSum:      decimal.Zero,
	}

	for _, inv := range invoices {
		if reason, ok := issuedMissingField(inv); !ok {
			res.Warnings = append(res.Warnings,
				model.NewRowError(inv.ID, reason, "missing required field, invoice skipped").Error())
			continue
		}

		vat, ok := inv.NativeVAT()
		if !ok {
			res.Warnings = append(res.Warnings,
				model.NewRowError(inv.ID, "native amounts", "missing required field, invoice skipped").Error())
			continue
		}

		reverse := vat.IsZero() &&
			vatid.IsDomestic(inv.ClientVATID, opts.HomeCountry) &&
			vatid.IsDomestic(opts.SubmitterVATID, opts.HomeCountry)

		if reverse {
			res.ReverseCharge = append(res.ReverseCharge, IssuedRow{
				Seq:     len(res.ReverseCharge) + 1,
				Invoice: inv,
			})
		} else {
			res.Standard = append(res.Standard, IssuedRow{
				Seq:     len(res.Standard) + 1,
				Invoice: inv,
			})
		}

		res.SubtotalSum = res.SubtotalSum.Add(inv.NativeSubtotal.Decimal)
		res.VATSum = res.VATSum.Add(vat)
	}

	return res
}

func issuedMissingField(inv model.IssuedInvoice) (string, bool) {
	switch {
	case inv.Number == "":
		return "number", false
	case inv.TaxableSupplyDate.IsZero():
		return "taxable supply date", false
	case inv.ClientVATID == "":
		return "client vat id", false
	}
	return "", true
}
