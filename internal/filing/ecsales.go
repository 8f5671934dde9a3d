package filing

import (
	"time"

	"github.com/rezonia/filing-engine/internal/classify"
	dec "github.com/rezonia/filing-engine/internal/decimal"
	"github.com/rezonia/filing-engine/internal/model"
)

// ECSalesInput is everything the EC sales list needs for one
// generation call. The list has no monthly variant, so it takes the
// year and quarter directly.
type ECSalesInput struct {
	Issued    []model.IssuedInvoice
	Submitter model.Submitter
	Year      int
	Quarter   int
	Options   classify.Options

	Now time.Time
}

// BuildECSalesList assembles the DPHSHV sales list: one VetaR per
// destination (country, VAT id) group. The aggregator's fatal
// no-qualifying-invoices condition propagates unchanged; an empty
// list is never produced.
func BuildECSalesList(in ECSalesInput) (*Result, error) {
	period := model.Quarterly(in.Year, in.Quarter)
	if err := period.Validate(); err != nil {
		return nil, err
	}

	groups, err := classify.AggregateCrossBorder(in.Issued, in.Options)
	if err != nil {
		return nil, err
	}

	doc, shv := newPisemnost("DPHSHV")
	shv.CreateAttr("verzePis", "02.01")

	vetaD(shv, "SHV", period, in.Now)
	vetaP(shv, in.Submitter)

	for i, g := range groups {
		r := shv.CreateElement("VetaR")
		r.CreateAttr("c_radku", itoa(i+1))
		r.CreateAttr("k_stat", g.CountryCode)
		r.CreateAttr("c_vat", g.VATNumber)
		r.CreateAttr("k_pln_eu", "3")
		r.CreateAttr("pln_pocet", itoa(g.Count))
		r.CreateAttr("pln_hodnota", dec.FilingInt(g.Value))
	}

	xml, err := serialize(doc)
	if err != nil {
		return nil, model.NewFilingError("ec-sales", "serialization failed", err)
	}
	return &Result{XML: xml}, nil
}
