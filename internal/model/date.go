package model

import "time"

// FormatDate renders a date the way the tax portal expects it,
// DD.MM.YYYY. Zero times render as the empty string rather than an
// error so a missing optional date simply leaves its field blank.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("02.01.2006")
}
