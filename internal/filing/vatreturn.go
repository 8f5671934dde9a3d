package filing

import (
	"time"

	"github.com/shopspring/decimal"

	dec "github.com/rezonia/filing-engine/internal/decimal"
	"github.com/rezonia/filing-engine/internal/model"
)

// VATReturnInput is everything the VAT return needs for one
// generation call.
type VATReturnInput struct {
	Issued    []model.IssuedInvoice
	Received  []model.ReceivedInvoice
	Submitter model.Submitter
	Period    model.Period

	// CrossBorderServices is the row-21 aggregate for services
	// supplied to other member states. It is computed by the caller,
	// not derived from the issued set, and included only when
	// positive.
	CrossBorderServices decimal.Decimal

	Now time.Time
}

// BuildVATReturn assembles the DPHDP3 VAT return.
//
// The return carries period totals only, computed directly from the
// invoice sets: output base and tax from issued invoices, deductible
// tax from received invoices, net payable as their difference floored
// at zero. A negative difference means a refund, which this field
// never expresses.
func BuildVATReturn(in VATReturnInput) (*Result, error) {
	if err := in.Period.Validate(); err != nil {
		return nil, err
	}

	outputBase := decimal.Zero
	outputTax := decimal.Zero
	for _, inv := range in.Issued {
		if !inv.NativeSubtotal.Valid || !inv.NativeTotal.Valid {
			continue
		}
		outputBase = outputBase.Add(inv.NativeSubtotal.Decimal)
		outputTax = outputTax.Add(inv.NativeTotal.Decimal.Sub(inv.NativeSubtotal.Decimal))
	}

	inputBase := decimal.Zero
	inputTax := decimal.Zero
	for _, inv := range in.Received {
		inputBase = inputBase.Add(inv.TotalWithoutVAT)
		inputTax = inputTax.Add(inv.VAT())
	}

	net := outputTax.Sub(inputTax)
	if net.IsNegative() {
		net = decimal.Zero
	}

	doc, dp := newPisemnost("DPHDP3")
	dp.CreateAttr("verzePis", "01.02")

	vetaD(dp, "DP3", in.Period, in.Now)
	vetaP(dp, in.Submitter)

	v1 := dp.CreateElement("Veta1")
	v1.CreateAttr("obrat23", dec.FilingInt(outputBase))
	v1.CreateAttr("dan23", dec.FilingInt(outputTax))

	if dec.IsPositive(in.CrossBorderServices) {
		v2 := dp.CreateElement("Veta2")
		v2.CreateAttr("pln_sluzby", dec.FilingInt(in.CrossBorderServices))
	}

	v4 := dp.CreateElement("Veta4")
	v4.CreateAttr("odp_tuz23_nar", dec.FilingInt(inputTax))
	v4.CreateAttr("odp_sum_nar", dec.FilingInt(inputTax))

	v6 := dp.CreateElement("Veta6")
	v6.CreateAttr("dan_zocelk", dec.FilingInt(net))

	xml, err := serialize(doc)
	if err != nil {
		return nil, model.NewFilingError("vat-return", "serialization failed", err)
	}
	return &Result{XML: xml}, nil
}
