// Package vatid parses EU VAT identifiers into their country prefix
// and local number.
package vatid

import (
	"fmt"
)

// Prefix is a parsed VAT identifier.
type Prefix struct {
	CountryCode string // two-letter ISO code, e.g. "DE"
	LocalNumber string // the remainder after the prefix
}

// Parse splits a VAT id into country code and local number. It fails
// when the first two characters are not uppercase ASCII letters, when
// nothing follows the prefix, or when the prefix equals homeCountry:
// home-country ids are domestic and never qualify as cross-border.
func Parse(id, homeCountry string) (Prefix, error) {
	if len(id) < 3 {
		return Prefix{}, fmt.Errorf("vat id %q too short", id)
	}
	cc := id[:2]
	if !isUpperLetter(cc[0]) || !isUpperLetter(cc[1]) {
		return Prefix{}, fmt.Errorf("vat id %q has no country prefix", id)
	}
	if cc == homeCountry {
		return Prefix{}, fmt.Errorf("vat id %q is domestic", id)
	}
	return Prefix{CountryCode: cc, LocalNumber: id[2:]}, nil
}

// IsDomestic reports whether a VAT id carries the given country's
// prefix.
func IsDomestic(id, homeCountry string) bool {
	return len(id) >= 2 && id[:2] == homeCountry
}

func isUpperLetter(b byte) bool {
	return b >= 'A' && b <= 'Z'
}
