package server

import (
	"github.com/shopspring/decimal"

	"github.com/rezonia/filing-engine/internal/isdoc"
	"github.com/rezonia/filing-engine/internal/model"
)

// PeriodRequest carries the reporting period over the wire. Exactly
// one of month and quarter must be set; the handler converts it to
// the tagged model.Period and rejects anything else up front.
type PeriodRequest struct {
	Year    int `json:"year"`
	Month   int `json:"month,omitempty"`
	Quarter int `json:"quarter,omitempty"`
}

// Period converts the request to a model.Period. Supplying both
// selectors is an error; supplying neither yields the zero Period,
// which the builders reject as fatal.
func (p PeriodRequest) Period() (model.Period, error) {
	if p.Month != 0 && p.Quarter != 0 {
		return model.Period{}, model.NewFilingError("period", "month and quarter are mutually exclusive", nil)
	}
	switch {
	case p.Month != 0:
		return model.Monthly(p.Year, p.Month), nil
	case p.Quarter != 0:
		return model.Quarterly(p.Year, p.Quarter), nil
	default:
		return model.Period{}, nil
	}
}

// ControlStatementRequest is the body for the control statement
// endpoint.
type ControlStatementRequest struct {
	Issued    []model.IssuedInvoice   `json:"issued"`
	Received  []model.ReceivedInvoice `json:"received"`
	Submitter model.Submitter         `json:"submitter"`
	Period    PeriodRequest           `json:"period"`
}

// VATReturnRequest is the body for the VAT return endpoint.
type VATReturnRequest struct {
	Issued              []model.IssuedInvoice   `json:"issued"`
	Received            []model.ReceivedInvoice `json:"received"`
	Submitter           model.Submitter         `json:"submitter"`
	Period              PeriodRequest           `json:"period"`
	CrossBorderServices decimal.Decimal         `json:"cross_border_services,omitempty"`
}

// ECSalesRequest is the body for the EC sales list endpoint.
type ECSalesRequest struct {
	Issued    []model.IssuedInvoice `json:"issued"`
	Submitter model.Submitter       `json:"submitter"`
	Year      int                   `json:"year"`
	Quarter   int                   `json:"quarter"`
}

// ISDOCRequest is the body for the structured invoice endpoint.
type ISDOCRequest struct {
	Invoice     model.IssuedInvoice `json:"invoice"`
	Lines       []model.LineItem    `json:"lines"`
	VATPayer    bool                `json:"vat_payer"`
	Supplier    isdoc.Party         `json:"supplier"`
	Customer    isdoc.Party         `json:"customer"`
	BankAccount string              `json:"bank_account,omitempty"`
	IBAN        string              `json:"iban,omitempty"`
	BIC         string              `json:"bic,omitempty"`
}

// FilingResponse carries a generated document plus any row-level
// warnings collected along the way.
type FilingResponse struct {
	XML      string   `json:"xml"`
	Warnings []string `json:"warnings,omitempty"`
}

// QRResponse carries the SPAYD payment descriptor.
type QRResponse struct {
	SPAYD string `json:"spayd"`
}

// ErrorResponse is the standard error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
