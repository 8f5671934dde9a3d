package filing_test

import (
	"errors"
	"testing"
	"time"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/filing-engine/internal/classify"
	"github.com/rezonia/filing-engine/internal/filing"
	"github.com/rezonia/filing-engine/internal/model"
)

var frozenClock = time.Date(2024, 8, 5, 10, 30, 0, 0, time.UTC)

func testSubmitter() model.Submitter {
	return model.Submitter{
		TaxID:     "CZ8807204153",
		FirstName: "Jan",
		LastName:  "Novak",
		Street:    "Dlouha 12",
		City:      "Praha",
		ZIP:       "11000",
		Country:   "CESKA REPUBLIKA",
		Email:     "jan@example.com",
	}
}

func amount(s string) decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: decimal.RequireFromString(s), Valid: true}
}

func issued(id, number, clientVATID, subtotal, total string) model.IssuedInvoice {
	return model.IssuedInvoice{
		ID:                id,
		Number:            number,
		ClientVATID:       clientVATID,
		TaxableSupplyDate: time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC),
		IssueDate:         time.Date(2024, 7, 2, 0, 0, 0, 0, time.UTC),
		Currency:          "CZK",
		NativeSubtotal:    amount(subtotal),
		NativeTotal:       amount(total),
	}
}

func received(id, currency, withoutVAT, withVAT string) model.ReceivedInvoice {
	return model.ReceivedInvoice{
		ID:              id,
		Number:          "F-" + id,
		SupplierVATID:   "CZ25568736",
		IssueDate:       time.Date(2024, 7, 3, 0, 0, 0, 0, time.UTC),
		Currency:        currency,
		TotalWithoutVAT: decimal.RequireFromString(withoutVAT),
		TotalWithVAT:    decimal.RequireFromString(withVAT),
	}
}

func controlStatementInput() filing.ControlStatementInput {
	return filing.ControlStatementInput{
		Issued: []model.IssuedInvoice{
			issued("1", "2024-001", "CZ25568736", "1000", "1000"), // reverse charge
			issued("2", "2024-002", "CZ25568736", "1000", "1210"), // standard
		},
		Received: []model.ReceivedInvoice{
			received("3", "CZK", "50000", "60500"), // itemized
			received("4", "CZK", "1000", "1210"),   // aggregated
		},
		Submitter: testSubmitter(),
		Period:    model.Quarterly(2024, 3),
		Options:   classify.DefaultOptions("CZ8807204153"),
		Now:       frozenClock,
	}
}

func parseXML(t *testing.T, s string) *etree.Document {
	t.Helper()
	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromString(s))
	return doc
}

func TestBuildControlStatementSections(t *testing.T) {
	res, err := filing.BuildControlStatement(controlStatementInput())
	require.NoError(t, err)
	assert.Empty(t, res.Warnings)

	doc := parseXML(t, res.XML)
	kh := doc.FindElement("/Pisemnost/DPHKH1")
	require.NotNil(t, kh)

	// fixed section order
	var names []string
	for _, child := range kh.ChildElements() {
		names = append(names, child.Tag)
	}
	assert.Equal(t, []string{"VetaD", "VetaP", "VetaA1", "VetaA4", "VetaB2", "VetaB3", "VetaC"}, names)

	d := kh.FindElement("VetaD")
	assert.Equal(t, "KH1", d.SelectAttrValue("dokument", ""))
	assert.Equal(t, "3", d.SelectAttrValue("ctvrt", ""))
	assert.Equal(t, "2024", d.SelectAttrValue("rok", ""))
	assert.Equal(t, "05.08.2024", d.SelectAttrValue("d_poddp", ""))
	assert.Nil(t, d.SelectAttr("mesic"))

	p := kh.FindElement("VetaP")
	assert.Equal(t, "8807204153", p.SelectAttrValue("dic", ""))
	assert.Equal(t, "Novak", p.SelectAttrValue("prijmeni", ""))

	a1 := kh.FindElement("VetaA1")
	assert.Equal(t, "1", a1.SelectAttrValue("c_radku", ""))
	assert.Equal(t, "25568736", a1.SelectAttrValue("dic_odb", ""))
	assert.Equal(t, "2024-001", a1.SelectAttrValue("c_evid_dd", ""))
	assert.Equal(t, "01.07.2024", a1.SelectAttrValue("duzp", ""))
	assert.Equal(t, "1000", a1.SelectAttrValue("zakl_dane1", ""))

	a4 := kh.FindElement("VetaA4")
	assert.Equal(t, "1000", a4.SelectAttrValue("zakl_dane1", ""))
	assert.Equal(t, "210", a4.SelectAttrValue("dan1", ""))

	b2 := kh.FindElement("VetaB2")
	assert.Equal(t, "50000", b2.SelectAttrValue("zakl_dane1", ""))
	assert.Equal(t, "10500", b2.SelectAttrValue("dan1", ""))

	b3 := kh.FindElement("VetaB3")
	assert.Equal(t, "1000", b3.SelectAttrValue("zakl_dane1", ""))
	assert.Equal(t, "210", b3.SelectAttrValue("dan1", ""))

	c := kh.FindElement("VetaC")
	assert.Equal(t, "2000", c.SelectAttrValue("obrat23", ""))
	assert.Equal(t, "51000", c.SelectAttrValue("pln23", ""))
}

func TestBuildControlStatementMonthlyPeriod(t *testing.T) {
	in := controlStatementInput()
	in.Period = model.Monthly(2024, 7)

	res, err := filing.BuildControlStatement(in)
	require.NoError(t, err)

	d := parseXML(t, res.XML).FindElement("/Pisemnost/DPHKH1/VetaD")
	assert.Equal(t, "7", d.SelectAttrValue("mesic", ""))
	assert.Nil(t, d.SelectAttr("ctvrt"))
}

func TestBuildControlStatementMissingPeriodIsFatal(t *testing.T) {
	in := controlStatementInput()
	in.Period = model.Period{}

	_, err := filing.BuildControlStatement(in)
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrPeriodRequired))
}

func TestBuildControlStatementIdempotent(t *testing.T) {
	first, err := filing.BuildControlStatement(controlStatementInput())
	require.NoError(t, err)
	second, err := filing.BuildControlStatement(controlStatementInput())
	require.NoError(t, err)

	// frozen clock makes repeated generation byte-identical
	assert.Equal(t, first.XML, second.XML)
}

func TestBuildControlStatementCollectsWarnings(t *testing.T) {
	in := controlStatementInput()
	bad := issued("5", "", "CZ25568736", "100", "121")
	in.Issued = append(in.Issued, bad)

	res, err := filing.BuildControlStatement(in)
	require.NoError(t, err)
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], "invoice 5")
}
