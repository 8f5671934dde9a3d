package filing

import (
	"time"

	"github.com/beevik/etree"

	"github.com/rezonia/filing-engine/internal/classify"
	dec "github.com/rezonia/filing-engine/internal/decimal"
	"github.com/rezonia/filing-engine/internal/model"
)

// ControlStatementInput is everything the control statement needs for
// one generation call.
type ControlStatementInput struct {
	Issued    []model.IssuedInvoice
	Received  []model.ReceivedInvoice
	Submitter model.Submitter
	Period    model.Period
	Options   classify.Options

	// Now feeds the d_poddp prepared-on attribute only.
	Now time.Time
}

// BuildControlStatement assembles the DPHKH1 control statement.
//
// Section order is fixed by the schema: VetaD, VetaP, then VetaA1 for
// each reverse-charge issued invoice, VetaA4 for each standard issued
// invoice, VetaB2 for each itemized received invoice, a single VetaB3
// aggregate and the VetaC totals. An invalid period is fatal; invoices
// missing required fields surface as warnings on the result.
func BuildControlStatement(in ControlStatementInput) (*Result, error) {
	if err := in.Period.Validate(); err != nil {
		return nil, err
	}

	issued := classify.ClassifyIssued(in.Issued, in.Options)
	received := classify.ClassifyReceived(in.Received, in.Options)

	doc, kh := newPisemnost("DPHKH1")
	kh.CreateAttr("verzePis", "03.01")

	vetaD(kh, "KH1", in.Period, in.Now)
	vetaP(kh, in.Submitter)

	for _, row := range issued.ReverseCharge {
		vetaA1(kh, row)
	}
	for _, row := range issued.Standard {
		vetaA4(kh, row)
	}
	for _, row := range received.Itemized {
		vetaB2(kh, row)
	}
	vetaB3(kh, received.Aggregated)

	c := kh.CreateElement("VetaC")
	c.CreateAttr("obrat23", dec.FilingInt(issued.SubtotalSum))
	c.CreateAttr("pln23", dec.FilingInt(received.SubtotalSum))

	xml, err := serialize(doc)
	if err != nil {
		return nil, model.NewFilingError("control-statement", "serialization failed", err)
	}

	return &Result{
		XML:      xml,
		Warnings: append(issued.Warnings, received.Warnings...),
	}, nil
}

func vetaA1(parent *etree.Element, row classify.IssuedRow) {
	inv := row.Invoice
	a := parent.CreateElement("VetaA1")
	a.CreateAttr("c_radku", itoa(row.Seq))
	a.CreateAttr("dic_odb", stripDomesticPrefix(inv.ClientVATID))
	a.CreateAttr("c_evid_dd", inv.Number)
	a.CreateAttr("duzp", model.FormatDate(inv.TaxableSupplyDate))
	a.CreateAttr("zakl_dane1", dec.FilingInt(inv.NativeSubtotal.Decimal))
}

func vetaA4(parent *etree.Element, row classify.IssuedRow) {
	inv := row.Invoice
	vat, _ := inv.NativeVAT()
	a := parent.CreateElement("VetaA4")
	a.CreateAttr("c_radku", itoa(row.Seq))
	a.CreateAttr("dic_odb", stripDomesticPrefix(inv.ClientVATID))
	a.CreateAttr("c_evid_dd", inv.Number)
	a.CreateAttr("dppd", model.FormatDate(inv.TaxableSupplyDate))
	a.CreateAttr("zakl_dane1", dec.FilingInt(inv.NativeSubtotal.Decimal))
	a.CreateAttr("dan1", dec.FilingInt(vat))
	a.CreateAttr("kod_rezim_pl", "0")
	a.CreateAttr("zdph_44", "N")
}

func vetaB2(parent *etree.Element, row classify.ReceivedRow) {
	inv := row.Invoice
	b := parent.CreateElement("VetaB2")
	b.CreateAttr("c_radku", itoa(row.Seq))
	b.CreateAttr("dic_dod", stripDomesticPrefix(inv.SupplierVATID))
	b.CreateAttr("c_evid_dd", inv.Number)
	b.CreateAttr("dppd", model.FormatDate(inv.IssueDate))
	b.CreateAttr("zakl_dane1", dec.FilingInt(inv.TotalWithoutVAT))
	b.CreateAttr("dan1", dec.FilingInt(inv.VAT()))
	b.CreateAttr("odp_narok", "A")
	b.CreateAttr("pomer", "N")
}

func vetaB3(parent *etree.Element, agg classify.AggregatedReceived) {
	b := parent.CreateElement("VetaB3")
	b.CreateAttr("zakl_dane1", dec.FilingInt(agg.Base))
	b.CreateAttr("dan1", dec.FilingInt(agg.VAT))
}
