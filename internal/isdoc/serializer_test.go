package isdoc_test

import (
	"testing"
	"time"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/filing-engine/internal/isdoc"
	"github.com/rezonia/filing-engine/internal/model"
)

func amount(s string) decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: decimal.RequireFromString(s), Valid: true}
}

func testInvoice() model.IssuedInvoice {
	return model.IssuedInvoice{
		ID:                "inv-2024-001",
		Number:            "2024-001",
		ClientName:        "Acme s.r.o.",
		ClientVATID:       "CZ25568736",
		TaxableSupplyDate: time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC),
		IssueDate:         time.Date(2024, 7, 2, 0, 0, 0, 0, time.UTC),
		PaidOn:            time.Date(2024, 7, 16, 0, 0, 0, 0, time.UTC),
		Currency:          "CZK",
		NativeSubtotal:    amount("3000"),
		NativeTotal:       amount("3630"),
	}
}

func testLines() []model.LineItem {
	return []model.LineItem{
		{
			Description: "Consulting",
			Quantity:    decimal.NewFromInt(2),
			UnitPrice:   decimal.NewFromInt(1000),
			VATRate:     decimal.NewFromInt(21),
		},
		{
			Description: "Support",
			Quantity:    decimal.NewFromInt(1),
			UnitPrice:   decimal.NewFromInt(1000),
			VATRate:     decimal.NewFromInt(21),
		},
	}
}

func testOptions() isdoc.Options {
	return isdoc.Options{
		VATPayer: true,
		Supplier: isdoc.Party{
			Identification: "88072041",
			Name:           "Jan Novak",
			Street:         "Dlouha 12",
			City:           "Praha",
			ZIP:            "11000",
			Country:        "CZ",
			VATID:          "CZ8807204153",
		},
		Customer: isdoc.Party{
			Identification: "25568736",
			Name:           "Acme s.r.o.",
			Street:         "Kratka 1",
			City:           "Brno",
			ZIP:            "60200",
			Country:        "CZ",
			VATID:          "CZ25568736",
		},
		BankAccount:   "2200152294/2010",
		IBAN:          "CZ6220100000002200152294",
		BIC:           "FIOBCZPP",
		IssuingSystem: "filing-engine 1.0.0",
		Now:           time.Date(2024, 8, 5, 0, 0, 0, 0, time.UTC),
	}
}

func parse(t *testing.T, s string) *etree.Document {
	t.Helper()
	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromString(s))
	return doc
}

func TestSerializeHeader(t *testing.T) {
	out, err := isdoc.Serialize(testInvoice(), testLines(), testOptions())
	require.NoError(t, err)

	doc := parse(t, out)
	root := doc.Root()
	require.NotNil(t, root)
	assert.Equal(t, "Invoice", root.Tag)
	assert.Equal(t, isdoc.Namespace, root.SelectAttrValue("xmlns", ""))
	assert.Equal(t, isdoc.Version, root.SelectAttrValue("version", ""))

	assert.Equal(t, "2024-001", root.FindElement("ID").Text())
	assert.Equal(t, "00002024-0001-0000-0000-000000000000", root.FindElement("UUID").Text())
	assert.Equal(t, "2024-07-02", root.FindElement("IssueDate").Text())
	assert.Equal(t, "2024-07-01", root.FindElement("TaxPointDate").Text())
	assert.Equal(t, "CZK", root.FindElement("LocalCurrencyCode").Text())
	assert.Equal(t, "true", root.FindElement("VATApplicable").Text())
}

func TestSerializeLineAndAggregateTax(t *testing.T) {
	out, err := isdoc.Serialize(testInvoice(), testLines(), testOptions())
	require.NoError(t, err)
	root := parse(t, out).Root()

	lines := root.FindElements("InvoiceLines/InvoiceLine")
	require.Len(t, lines, 2)

	// line 1: 2 x 1000 at 21%
	assert.Equal(t, "2000.00", lines[0].FindElement("LineExtensionAmount").Text())
	assert.Equal(t, "420.00", lines[0].FindElement("LineExtensionTaxAmount").Text())
	assert.Equal(t, "2420.00", lines[0].FindElement("LineExtensionAmountTaxInclusive").Text())
	assert.Equal(t, "1210.00", lines[0].FindElement("UnitPriceTaxInclusive").Text())

	// invoice totals come from the lines, not the header
	assert.Equal(t, "3000.00", root.FindElement("LegalMonetaryTotal/TaxExclusiveAmount").Text())
	assert.Equal(t, "3630.00", root.FindElement("LegalMonetaryTotal/TaxInclusiveAmount").Text())
	assert.Equal(t, "630.00", root.FindElement("TaxTotal/TaxAmount").Text())

	sub := root.FindElement("TaxTotal/TaxSubTotal")
	require.NotNil(t, sub)
	assert.Equal(t, "3000.00", sub.FindElement("TaxableAmount").Text())
	assert.Equal(t, "21", sub.FindElement("TaxCategory/Percent").Text())
}

func TestSerializeLineTotalsIgnoreHeaderDrift(t *testing.T) {
	inv := testInvoice()
	// drifted header amounts must not leak into the document
	inv.NativeSubtotal = amount("99999")
	inv.NativeTotal = amount("99999")

	out, err := isdoc.Serialize(inv, testLines(), testOptions())
	require.NoError(t, err)
	root := parse(t, out).Root()
	assert.Equal(t, "3000.00", root.FindElement("LegalMonetaryTotal/TaxExclusiveAmount").Text())
}

func TestSerializeNonVATPayerHasZeroTax(t *testing.T) {
	opts := testOptions()
	opts.VATPayer = false

	out, err := isdoc.Serialize(testInvoice(), testLines(), opts)
	require.NoError(t, err)
	root := parse(t, out).Root()

	assert.Equal(t, "false", root.FindElement("VATApplicable").Text())
	for _, line := range root.FindElements("InvoiceLines/InvoiceLine") {
		assert.Equal(t, "0.00", line.FindElement("LineExtensionTaxAmount").Text())
		assert.Equal(t, "0", line.FindElement("ClassifiedTaxCategory/Percent").Text())
	}
	assert.Equal(t, "0.00", root.FindElement("TaxTotal/TaxAmount").Text())
	assert.Equal(t, "3000.00", root.FindElement("LegalMonetaryTotal/PayableAmount").Text())
}

func TestSerializeEscapesMarkupCharacters(t *testing.T) {
	lines := []model.LineItem{{
		Description: `Design <&> "services" 'deluxe'`,
		Quantity:    decimal.NewFromInt(1),
		UnitPrice:   decimal.NewFromInt(100),
		VATRate:     decimal.NewFromInt(21),
	}}

	out, err := isdoc.Serialize(testInvoice(), lines, testOptions())
	require.NoError(t, err)

	assert.NotContains(t, out, "<&>")
	assert.Contains(t, out, "&lt;&amp;&gt;")

	// and the escaped text round-trips
	root := parse(t, out).Root()
	desc := root.FindElement("InvoiceLines/InvoiceLine/Item/Description")
	assert.Equal(t, `Design <&> "services" 'deluxe'`, desc.Text())
}

func TestSerializeBankAccount(t *testing.T) {
	out, err := isdoc.Serialize(testInvoice(), testLines(), testOptions())
	require.NoError(t, err)
	root := parse(t, out).Root()

	details := root.FindElement("PaymentMeans/Payment/Details")
	require.NotNil(t, details)
	assert.Equal(t, "2200152294", details.FindElement("ID").Text())
	assert.Equal(t, "2010", details.FindElement("BankCode").Text())
	assert.Equal(t, "CZ6220100000002200152294", details.FindElement("IBAN").Text())
	assert.Equal(t, "2024001", details.FindElement("VariableSymbol").Text())
	assert.Equal(t, "2024-07-16", details.FindElement("PaymentDueDate").Text())
}

func TestSerializeBankAccountWithoutSeparator(t *testing.T) {
	opts := testOptions()
	opts.BankAccount = "CZ6220100000002200152294"

	out, err := isdoc.Serialize(testInvoice(), testLines(), opts)
	require.NoError(t, err)
	details := parse(t, out).Root().FindElement("PaymentMeans/Payment/Details")
	assert.Equal(t, "CZ6220100000002200152294", details.FindElement("ID").Text())
	assert.Equal(t, isdoc.DefaultBankCode, details.FindElement("BankCode").Text())
}

func TestSerializeDeterministic(t *testing.T) {
	a, err := isdoc.Serialize(testInvoice(), testLines(), testOptions())
	require.NoError(t, err)
	b, err := isdoc.Serialize(testInvoice(), testLines(), testOptions())
	require.NoError(t, err)
	assert.Equal(t, a, b)
}
