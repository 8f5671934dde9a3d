package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Home-market constants used as defaults across the generators.
// Every generator takes them as explicit options, these are only
// the values a Czech filer would pass.
const (
	HomeCountry         = "CZ"
	HomeCurrency        = "CZK"
	CrossBorderCurrency = "EUR"
)

// ItemizedThreshold is the control-statement reporting threshold:
// received invoices at or below this amount (including VAT) are
// aggregated instead of itemized.
var ItemizedThreshold = decimal.NewFromInt(10000)

// IssuedInvoice is an invoice the taxpayer issued to a client.
//
// Native amounts are home-currency equivalents and may be absent for
// invoices that were never converted. Total - Subtotal is the VAT
// amount; native and foreign amounts must not be mixed in one
// computation.
type IssuedInvoice struct {
	ID     string `json:"id"`
	Number string `json:"number"`

	ClientName  string `json:"client_name"`
	ClientVATID string `json:"client_vat_id,omitempty"` // empty = no VAT id

	TaxableSupplyDate time.Time `json:"taxable_supply_date"`
	IssueDate         time.Time `json:"issue_date"`
	PaidOn            time.Time `json:"paid_on,omitempty"`

	Currency       string              `json:"currency"`
	NativeSubtotal decimal.NullDecimal `json:"native_subtotal"`
	NativeTotal    decimal.NullDecimal `json:"native_total"`

	ForeignSubtotal decimal.NullDecimal `json:"foreign_subtotal,omitempty"`
	ForeignTotal    decimal.NullDecimal `json:"foreign_total,omitempty"`
	ExchangeRate    decimal.Decimal     `json:"exchange_rate,omitempty"`
}

// NativeVAT returns Total - Subtotal in home-currency terms. The
// boolean is false when either amount is absent.
func (inv *IssuedInvoice) NativeVAT() (decimal.Decimal, bool) {
	if !inv.NativeSubtotal.Valid || !inv.NativeTotal.Valid {
		return decimal.Zero, false
	}
	return inv.NativeTotal.Decimal.Sub(inv.NativeSubtotal.Decimal), true
}

// ReceivedInvoice is an invoice the taxpayer received from a supplier.
// TotalWithVAT - TotalWithoutVAT is the VAT amount.
type ReceivedInvoice struct {
	ID            string `json:"id"`
	Number        string `json:"number"`
	SupplierName  string `json:"supplier_name"`
	SupplierVATID string `json:"supplier_vat_id,omitempty"`

	IssueDate time.Time `json:"issue_date"`
	DueDate   time.Time `json:"due_date,omitempty"`

	Currency        string          `json:"currency"`
	TotalWithoutVAT decimal.Decimal `json:"total_without_vat"`
	TotalWithVAT    decimal.Decimal `json:"total_with_vat"`

	Status string `json:"status,omitempty"`
}

// VAT returns the invoice's VAT amount.
func (inv *ReceivedInvoice) VAT() decimal.Decimal {
	return inv.TotalWithVAT.Sub(inv.TotalWithoutVAT)
}

// LineItem is one line of an issued invoice.
type LineItem struct {
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	VATRate     decimal.Decimal `json:"vat_rate"` // percentage, e.g. 21
}

// Submitter identifies the filing taxpayer. It populates the filer
// block (VetaP) of every filing and the supplier party of ISDOC
// documents.
type Submitter struct {
	TaxID       string `json:"tax_id"` // DIC including the CZ prefix
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	CompanyName string `json:"company_name,omitempty"`

	Street  string `json:"street"`
	City    string `json:"city"`
	ZIP     string `json:"zip"`
	Country string `json:"country,omitempty"`

	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// BankingInfo carries the payment details for the SPAYD QR encoder.
type BankingInfo struct {
	AccountNumber  string          `json:"account_number,omitempty"` // IBAN, empty = none
	Amount         decimal.Decimal `json:"amount"`
	Currency       string          `json:"currency"`
	Message        string          `json:"message,omitempty"`
	VariableSymbol string          `json:"variable_symbol,omitempty"`
}
