// Package spayd encodes bank transfer details into the Short Payment
// Descriptor string rendered as a payment QR code.
package spayd

import (
	"strings"

	dec "github.com/rezonia/filing-engine/internal/decimal"
	"github.com/rezonia/filing-engine/internal/model"
)

// prefix is the fixed SPAYD version header.
const prefix = "SPD*1.0"

// Encode builds the single-line payment descriptor.
//
// Field order is fixed by the SPAYD format: ACC, AM, CC, MSG, X-VS.
// Optional fields that are empty are omitted entirely, leaving no gap.
// Without an account number there is nothing to pay to, so the whole
// result is empty.
func Encode(b model.BankingInfo) string {
	if b.AccountNumber == "" {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(prefix)
	sb.WriteString("*ACC:")
	sb.WriteString(b.AccountNumber)
	sb.WriteString("*AM:")
	sb.WriteString(dec.Amount(b.Amount))
	sb.WriteString("*CC:")
	sb.WriteString(b.Currency)
	if b.Message != "" {
		sb.WriteString("*MSG:")
		sb.WriteString(b.Message)
	}
	if b.VariableSymbol != "" {
		sb.WriteString("*X-VS:")
		sb.WriteString(b.VariableSymbol)
	}
	return sb.String()
}
