package model

import "fmt"

// PeriodKind distinguishes monthly from quarterly reporting periods.
type PeriodKind int

const (
	PeriodNone PeriodKind = iota
	PeriodMonthly
	PeriodQuarterly
)

// Period selects the reporting period of a filing. The zero value is
// invalid; construct one with Monthly or Quarterly. Modelling the
// selector as a tagged value makes "month and quarter both supplied"
// unrepresentable.
type Period struct {
	kind PeriodKind
	year int
	n    int // month 1-12 or quarter 1-4
}

// Monthly returns a monthly period.
func Monthly(year, month int) Period {
	return Period{kind: PeriodMonthly, year: year, n: month}
}

// Quarterly returns a quarterly period.
func Quarterly(year, quarter int) Period {
	return Period{kind: PeriodQuarterly, year: year, n: quarter}
}

// Kind reports whether the period is monthly or quarterly.
func (p Period) Kind() PeriodKind { return p.kind }

// Year returns the reporting year.
func (p Period) Year() int { return p.year }

// Month returns the month number; ok is false for quarterly periods.
func (p Period) Month() (int, bool) {
	return p.n, p.kind == PeriodMonthly
}

// Quarter returns the quarter number; ok is false for monthly periods.
func (p Period) Quarter() (int, bool) {
	return p.n, p.kind == PeriodQuarterly
}

// Validate rejects the zero value and out-of-range selectors.
func (p Period) Validate() error {
	switch p.kind {
	case PeriodMonthly:
		if p.n < 1 || p.n > 12 {
			return NewFilingError("period", fmt.Sprintf("month %d out of range", p.n), nil)
		}
	case PeriodQuarterly:
		if p.n < 1 || p.n > 4 {
			return NewFilingError("period", fmt.Sprintf("quarter %d out of range", p.n), nil)
		}
	default:
		return ErrPeriodRequired
	}
	if p.year < 2000 || p.year > 2999 {
		return NewFilingError("period", fmt.Sprintf("year %d out of range", p.year), nil)
	}
	return nil
}

// String renders the period for diagnostics, e.g. "2024-Q3" or "2024-07".
func (p Period) String() string {
	switch p.kind {
	case PeriodMonthly:
		return fmt.Sprintf("%d-%02d", p.year, p.n)
	case PeriodQuarterly:
		return fmt.Sprintf("%d-Q%d", p.year, p.n)
	default:
		return "invalid period"
	}
}
