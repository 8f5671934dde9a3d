package model

import "fmt"

// RowError represents a recoverable per-invoice problem. The affected
// invoice is skipped and generation continues; the error text is
// collected as a warning on the result.
type RowError struct {
	InvoiceID string
	Field     string
	Message   string
}

func (e *RowError) Error() string {
	if e.InvoiceID != "" {
		return fmt.Sprintf("invoice %s: %s: %s", e.InvoiceID, e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NewRowError creates a new row-level error.
func NewRowError(invoiceID, field, message string) *RowError {
	return &RowError{
		InvoiceID: invoiceID,
		Field:     field,
		Message:   message,
	}
}

// FilingError represents a fatal condition: the requested filing would
// be meaningless, so no document is produced at all.
type FilingError struct {
	Filing  string
	Message string
	Cause   error
}

func (e *FilingError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Filing, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Filing, e.Message)
}

func (e *FilingError) Unwrap() error {
	return e.Cause
}

// NewFilingError creates a new filing-level error.
func NewFilingError(filing, message string, cause error) *FilingError {
	return &FilingError{
		Filing:  filing,
		Message: message,
		Cause:   cause,
	}
}

// Sentinel fatal conditions.
var (
	// ErrPeriodRequired is returned when a filing is requested without
	// a month or quarter selector.
	ErrPeriodRequired = NewFilingError("period", "a monthly or quarterly reporting period is required", nil)

	// ErrNoCrossBorderSupplies is returned when the EC sales list has
	// nothing to report; an empty list must not be submitted.
	ErrNoCrossBorderSupplies = NewFilingError("ec-sales", "no qualifying cross-border supplies in period", nil)
)
