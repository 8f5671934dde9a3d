package classify

import (
	"sort"

	"github.com/shopspring/decimal"

	dec "github.com/rezonia/filing-engine/internal/decimal"
	"github.com/rezonia/filing-engine/internal/model"
	"github.com/rezonia/filing-engine/internal/vatid"
)

// CrossBorderGroup is one EC sales list row: all qualifying supplies
// to a single (country, VAT id) counterpart.
type CrossBorderGroup struct {
	CountryCode string
	VATNumber   string
	Count       int
	Value       decimal.Decimal // sum of per-invoice truncated totals
}

// AggregateCrossBorder groups qualifying issued invoices for the EC
// sales list.
//
// An invoice qualifies when it is denominated in the cross-border
// currency, its client VAT id parses to a valid non-home prefix, and
// it carries a home-currency-equivalent total. Each invoice's total is
// truncated toward zero before summing; the official aggregation rule
// truncates per invoice, not per group.
//
// Zero qualifying invoices is fatal: an empty sales list must not be
// submitted.
func AggregateCrossBorder(invoices []model.IssuedInvoice, opts Options) ([]CrossBorderGroup, error) {
	type key struct {
		country string
		number  string
	}

	groups := make(map[key]*CrossBorderGroup)

	for _, inv := range invoices {
		if inv.Currency != opts.CrossBorderCurrency {
			continue
		}
		prefix, err := vatid.Parse(inv.ClientVATID, opts.HomeCountry)
		if err != nil {
			continue
		}
		if !inv.NativeTotal.Valid {
			continue
		}

		k := key{country: prefix.CountryCode, number: prefix.LocalNumber}
		g, ok := groups[k]
		if !ok {
			g = &CrossBorderGroup{
				CountryCode: prefix.CountryCode,
				VATNumber:   prefix.LocalNumber,
				Value:       decimal.Zero,
			}
			groups[k] = g
		}
		g.Count++
		g.Value = g.Value.Add(dec.Truncate(inv.NativeTotal.Decimal))
	}

	if len(groups) == 0 {
		return nil, model.ErrNoCrossBorderSupplies
	}

	out := make([]CrossBorderGroup, 0, len(groups))
	for _, g := range groups {
		out = append(out, *g)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CountryCode != out[j].CountryCode {
			return out[i].CountryCode < out[j].CountryCode
		}
		return out[i].VATNumber < out[j].VATNumber
	})
	return out, nil
}
