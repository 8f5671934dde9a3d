package spayd_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/rezonia/filing-engine/internal/model"
	"github.com/rezonia/filing-engine/internal/spayd"
)

func TestEncodeFullDescriptor(t *testing.T) {
	got := spayd.Encode(model.BankingInfo{
		AccountNumber:  "CZ2806000000000000000123",
		Amount:         decimal.NewFromFloat(450.0),
		Currency:       "CZK",
		Message:        "PLATBA ZA ZBOZI",
		VariableSymbol: "1234567890",
	})
	assert.Equal(t,
		"SPD*1.0*ACC:CZ2806000000000000000123*AM:450.00*CC:CZK*MSG:PLATBA ZA ZBOZI*X-VS:1234567890",
		got)
}

func TestEncodeOmitsEmptyOptionalFields(t *testing.T) {
	got := spayd.Encode(model.BankingInfo{
		AccountNumber:  "CZ6220100000002200152294",
		Amount:         decimal.NewFromInt(10),
		Currency:       "CZK",
		VariableSymbol: "112233",
	})
	// no *MSG: segment at all, not an empty one
	assert.Equal(t,
		"SPD*1.0*ACC:CZ6220100000002200152294*AM:10.00*CC:CZK*X-VS:112233",
		got)
}

func TestEncodeNoSymbols(t *testing.T) {
	got := spayd.Encode(model.BankingInfo{
		AccountNumber: "CZ6220100000002200152294",
		Amount:        decimal.RequireFromString("1234.5"),
		Currency:      "EUR",
	})
	assert.Equal(t, "SPD*1.0*ACC:CZ6220100000002200152294*AM:1234.50*CC:EUR", got)
}

func TestEncodeWithoutAccountReturnsEmpty(t *testing.T) {
	got := spayd.Encode(model.BankingInfo{
		Amount:   decimal.NewFromInt(10),
		Currency: "CZK",
	})
	assert.Equal(t, "", got)
}
