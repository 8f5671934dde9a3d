// Package isdoc serializes an invoice and its line items into an
// ISDOC 6.0.1 document, the Czech standardized machine-readable
// invoice format.
package isdoc

import (
	"sort"
	"strconv"
	"time"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"

	dec "github.com/rezonia/filing-engine/internal/decimal"
	"github.com/rezonia/filing-engine/internal/model"
)

// Namespace is the ISDOC 2013 XML namespace.
const Namespace = "http://isdoc.cz/namespace/2013"

// Version is the serialized schema version.
const Version = "6.0.1"

// Party is one side of the invoice: supplier or customer.
type Party struct {
	Identification string // registration number
	Name           string
	Street         string
	City           string
	ZIP            string
	Country        string
	VATID          string // empty = no tax scheme block
}

// Options configures one serialization call.
type Options struct {
	// VATPayer controls tax computation: non-payers emit zero tax on
	// every line regardless of the line's nominal rate.
	VATPayer bool

	Supplier Party
	Customer Party

	// BankAccount in "number/bankcode" or plain form; empty omits the
	// bank fields.
	BankAccount string
	IBAN        string
	BIC         string

	IssuingSystem string

	// Now feeds no content field; ISDOC dates come from the invoice
	// itself. Kept for symmetry with the filing builders.
	Now time.Time
}

// Serialize renders one invoice with its line items.
//
// Line-level amounts are the source of truth: the invoice-level
// taxable amount and tax amount are sums of line values, never copied
// from the invoice header, so header/line drift cannot leak into the
// document. Free-text content is escaped by the XML serializer.
func Serialize(inv model.IssuedInvoice, lines []model.LineItem, opts Options) (string, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("Invoice")
	root.CreateAttr("xmlns", Namespace)
	root.CreateAttr("version", Version)

	root.CreateElement("DocumentType").SetText("1")
	root.CreateElement("ID").SetText(inv.Number)
	root.CreateElement("UUID").SetText(DeriveUUID(inv.ID))
	if opts.IssuingSystem != "" {
		root.CreateElement("IssuingSystem").SetText(opts.IssuingSystem)
	}
	root.CreateElement("IssueDate").SetText(isdocDate(inv.IssueDate))
	if !inv.TaxableSupplyDate.IsZero() {
		root.CreateElement("TaxPointDate").SetText(isdocDate(inv.TaxableSupplyDate))
	}
	root.CreateElement("VATApplicable").SetText(boolText(opts.VATPayer))
	root.CreateElement("ElectronicPossibilityAgreementReference")
	root.CreateElement("LocalCurrencyCode").SetText(inv.Currency)
	rate := inv.ExchangeRate
	if rate.IsZero() {
		rate = decimal.NewFromInt(1)
	}
	root.CreateElement("CurrRate").SetText(rate.String())
	root.CreateElement("RefCurrRate").SetText("1")

	party(root.CreateElement("AccountingSupplierParty"), opts.Supplier)
	party(root.CreateElement("AccountingCustomerParty"), opts.Customer)

	taxable, tax := invoiceLines(root, lines, opts.VATPayer)

	taxTotal(root, lines, opts.VATPayer, tax)
	monetaryTotal(root, taxable, tax)
	paymentMeans(root, inv, taxable.Add(tax), opts)

	doc.Indent(2)
	return doc.WriteToString()
}

func party(parent *etree.Element, p Party) {
	el := parent.CreateElement("Party")

	id := el.CreateElement("PartyIdentification")
	id.CreateElement("ID").SetText(p.Identification)

	name := el.CreateElement("PartyName")
	name.CreateElement("Name").SetText(p.Name)

	addr := el.CreateElement("PostalAddress")
	addr.CreateElement("StreetName").SetText(p.Street)
	addr.CreateElement("BuildingNumber")
	addr.CreateElement("CityName").SetText(p.City)
	addr.CreateElement("PostalZone").SetText(p.ZIP)
	country := addr.CreateElement("Country")
	country.CreateElement("IdentificationCode").SetText(p.Country)
	country.CreateElement("Name")

	if p.VATID != "" {
		scheme := el.CreateElement("PartyTaxScheme")
		scheme.CreateElement("CompanyID").SetText(p.VATID)
		scheme.CreateElement("TaxScheme").SetText("VAT")
	}
}

// invoiceLines writes the InvoiceLines block and returns the summed
// taxable amount and tax amount.
func invoiceLines(root *etree.Element, lines []model.LineItem, vatPayer bool) (taxable, tax decimal.Decimal) {
	taxable = decimal.Zero
	tax = decimal.Zero

	block := root.CreateElement("InvoiceLines")
	for i, line := range lines {
		total, lineTax := lineAmounts(line, vatPayer)
		taxable = taxable.Add(total)
		tax = tax.Add(lineTax)

		el := block.CreateElement("InvoiceLine")
		el.CreateElement("ID").SetText(itoa(i + 1))
		el.CreateElement("InvoicedQuantity").SetText(line.Quantity.String())
		el.CreateElement("LineExtensionAmount").SetText(dec.Amount(total))
		el.CreateElement("LineExtensionAmountTaxInclusive").SetText(dec.Amount(total.Add(lineTax)))
		el.CreateElement("LineExtensionTaxAmount").SetText(dec.Amount(lineTax))
		el.CreateElement("UnitPrice").SetText(dec.Amount(line.UnitPrice))
		el.CreateElement("UnitPriceTaxInclusive").SetText(dec.Amount(unitPriceWithTax(line, vatPayer)))

		cat := el.CreateElement("ClassifiedTaxCategory")
		cat.CreateElement("Percent").SetText(effectiveRate(line, vatPayer).String())
		cat.CreateElement("VATCalculationMethod").SetText("0")

		item := el.CreateElement("Item")
		item.CreateElement("Description").SetText(line.Description)
	}
	return taxable, tax
}

func taxTotal(root *etree.Element, lines []model.LineItem, vatPayer bool, totalTax decimal.Decimal) {
	type subtotal struct {
		taxable decimal.Decimal
		tax     decimal.Decimal
	}

	byRate := make(map[string]*subtotal)
	var rates []string
	for _, line := range lines {
		rate := effectiveRate(line, vatPayer).String()
		total, lineTax := lineAmounts(line, vatPayer)
		s, ok := byRate[rate]
		if !ok {
			s = &subtotal{taxable: decimal.Zero, tax: decimal.Zero}
			byRate[rate] = s
			rates = append(rates, rate)
		}
		s.taxable = s.taxable.Add(total)
		s.tax = s.tax.Add(lineTax)
	}
	sort.Strings(rates)

	el := root.CreateElement("TaxTotal")
	for _, rate := range rates {
		s := byRate[rate]
		sub := el.CreateElement("TaxSubTotal")
		sub.CreateElement("TaxableAmount").SetText(dec.Amount(s.taxable))
		sub.CreateElement("TaxAmount").SetText(dec.Amount(s.tax))
		sub.CreateElement("TaxInclusiveAmount").SetText(dec.Amount(s.taxable.Add(s.tax)))
		sub.CreateElement("AlreadyClaimedTaxableAmount").SetText("0")
		sub.CreateElement("AlreadyClaimedTaxAmount").SetText("0")
		sub.CreateElement("AlreadyClaimedTaxInclusiveAmount").SetText("0")
		sub.CreateElement("DifferenceTaxableAmount").SetText(dec.Amount(s.taxable))
		sub.CreateElement("DifferenceTaxAmount").SetText(dec.Amount(s.tax))
		sub.CreateElement("DifferenceTaxInclusiveAmount").SetText(dec.Amount(s.taxable.Add(s.tax)))
		cat := sub.CreateElement("TaxCategory")
		cat.CreateElement("Percent").SetText(rate)
	}
	el.CreateElement("TaxAmount").SetText(dec.Amount(totalTax))
}

func monetaryTotal(root *etree.Element, taxable, tax decimal.Decimal) {
	inclusive := taxable.Add(tax)
	el := root.CreateElement("LegalMonetaryTotal")
	el.CreateElement("TaxExclusiveAmount").SetText(dec.Amount(taxable))
	el.CreateElement("TaxInclusiveAmount").SetText(dec.Amount(inclusive))
	el.CreateElement("AlreadyClaimedTaxExclusiveAmount").SetText("0")
	el.CreateElement("AlreadyClaimedTaxInclusiveAmount").SetText("0")
	el.CreateElement("DifferenceTaxExclusiveAmount").SetText(dec.Amount(taxable))
	el.CreateElement("DifferenceTaxInclusiveAmount").SetText(dec.Amount(inclusive))
	el.CreateElement("PayableAmount").SetText(dec.Amount(inclusive))
}

func paymentMeans(root *etree.Element, inv model.IssuedInvoice, amount decimal.Decimal, opts Options) {
	means := root.CreateElement("PaymentMeans")
	payment := means.CreateElement("Payment")
	payment.CreateElement("PaidAmount").SetText(dec.Amount(amount))
	payment.CreateElement("PaymentMeansCode").SetText("42") // bank transfer

	details := payment.CreateElement("Details")
	if !inv.PaidOn.IsZero() {
		details.CreateElement("PaymentDueDate").SetText(isdocDate(inv.PaidOn))
	}
	if opts.BankAccount != "" {
		number, bankCode := SplitBankAccount(opts.BankAccount)
		details.CreateElement("ID").SetText(number)
		details.CreateElement("BankCode").SetText(bankCode)
	}
	details.CreateElement("Name")
	details.CreateElement("IBAN").SetText(opts.IBAN)
	details.CreateElement("BIC").SetText(opts.BIC)
	details.CreateElement("VariableSymbol").SetText(VariableSymbol(inv.Number))
}

func lineAmounts(line model.LineItem, vatPayer bool) (total, tax decimal.Decimal) {
	total = line.Quantity.Mul(line.UnitPrice)
	tax = dec.LineTax(total, effectiveRate(line, vatPayer))
	return total, tax
}

func unitPriceWithTax(line model.LineItem, vatPayer bool) decimal.Decimal {
	return line.UnitPrice.Add(dec.LineTax(line.UnitPrice, effectiveRate(line, vatPayer)))
}

// effectiveRate collapses every rate to zero for non-payers.
func effectiveRate(line model.LineItem, vatPayer bool) decimal.Decimal {
	if !vatPayer {
		return decimal.Zero
	}
	return line.VATRate
}

func isdocDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}

func boolText(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

func itoa(n int) string { return strconv.Itoa(n) }
