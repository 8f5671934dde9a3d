package isdoc

import "strings"

// uuidHexLen and uuidGroups describe the canonical 8-4-4-4-12 layout.
const uuidHexLen = 32

var uuidGroups = []int{8, 4, 4, 4, 12}

// DeriveUUID maps an invoice id onto a UUID-shaped identifier.
//
// The mapping is deterministic but lossy: the id is lowercased, every
// character outside the hex alphabet becomes '0', the result is
// padded or truncated to 32 characters and hyphenated at the
// canonical offsets. Existing documents in the field were produced
// with exactly this substitution, so it must not be "fixed" to a real
// UUID without a format revision.
func DeriveUUID(id string) string {
	src := strings.ToLower(id)

	var hex strings.Builder
	hex.Grow(uuidHexLen)
	for i := 0; i < len(src) && hex.Len() < uuidHexLen; i++ {
		c := src[i]
		if (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') {
			hex.WriteByte(c)
		} else {
			hex.WriteByte('0')
		}
	}
	for hex.Len() < uuidHexLen {
		hex.WriteByte('0')
	}

	var out strings.Builder
	out.Grow(uuidHexLen + len(uuidGroups) - 1)
	s := hex.String()
	pos := 0
	for i, n := range uuidGroups {
		if i > 0 {
			out.WriteByte('-')
		}
		out.WriteString(s[pos : pos+n])
		pos += n
	}
	return out.String()
}

// DefaultBankCode fills the routing field for accounts given without
// an explicit bank code.
const DefaultBankCode = "0000"

// SplitBankAccount separates "number/bankcode" account strings into
// their parts. Accounts without a separator pass through whole with
// the default bank code.
func SplitBankAccount(account string) (number, bankCode string) {
	if i := strings.LastIndexByte(account, '/'); i >= 0 {
		return account[:i], account[i+1:]
	}
	return account, DefaultBankCode
}

// VariableSymbol derives a numeric payment symbol from an invoice
// number by keeping its digits, capped at the ten-digit bank limit.
func VariableSymbol(invoiceNumber string) string {
	var b strings.Builder
	for i := 0; i < len(invoiceNumber) && b.Len() < 10; i++ {
		if c := invoiceNumber[i]; c >= '0' && c <= '9' {
			b.WriteByte(c)
		}
	}
	return b.String()
}
