package model

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"
)

// Error kinds. Every error returned by the calculators wraps exactly one of these,
// so callers can branch with errors.Is.
var (
	ErrValidation     = errors.New("validation error")
	ErrDivisionByZero = errors.New("division by zero")
	ErrMissingValue   = errors.New("missing value")
)

// maxReportedRows caps how many offending row indices end up in an error message.
const maxReportedRows = 10

// ColumnError reports which column, and which rows of it, broke a contract.
type ColumnError struct {
	Kind    error
	Column  string
	Rows    []int
	Allowed []string
	Message string
}

func (e *ColumnError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%v: column %q", e.Kind, e.Column)
	if e.Message != "" {
		fmt.Fprintf(&b, ": %s", e.Message)
	}
	if len(e.Allowed) > 0 {
		fmt.Fprintf(&b, " (allowed: %s)", strings.Join(e.Allowed, ", "))
	}
	if len(e.Rows) > 0 {
		fmt.Fprintf(&b, " at rows %s", formatRows(e.Rows))
	}
	return b.String()
}

func (e *ColumnError) Unwrap() error { return e.Kind }

func formatRows(rows []int) string {
	shown := rows
	if len(shown) > maxReportedRows {
		shown = shown[:maxReportedRows]
	}
	parts := make([]string, len(shown))
	for i, r := range shown {
		parts[i] = fmt.Sprint(r)
	}
	s := "[" + strings.Join(parts, " ") + "]"
	if len(rows) > maxReportedRows {
		s += fmt.Sprintf(" and %d more", len(rows)-maxReportedRows)
	}
	return s
}

// InvalidValues builds a validation error for a column holding values outside its allowed set.
func InvalidValues(column string, rows []int, allowed []string) *ColumnError {
	return &ColumnError{
		Kind:    ErrValidation,
		Column:  column,
		Rows:    rows,
		Allowed: allowed,
		Message: "value outside the enumerated set",
	}
}

// Errors accumulates column errors found while validating a batch.
// The zero value is ready to use.
type Errors struct {
	merr *multierror.Error
}

// Add records err if it is non-nil.
func (e *Errors) Add(err error) {
	if err == nil {
		return
	}
	e.merr = multierror.Append(e.merr, err)
}

// Err returns nil when nothing was recorded, the single error when only one was,
// and the aggregate otherwise. The aggregate still matches errors.Is for each kind.
func (e *Errors) Err() error {
	if e.merr == nil {
		return nil
	}
	if len(e.merr.Errors) == 1 {
		return e.merr.Errors[0]
	}
	e.merr.ErrorFormat = func(errs []error) string {
		msgs := make([]string, len(errs))
		for i, err := range errs {
			msgs[i] = err.Error()
		}
		return fmt.Sprintf("%d invalid columns: %s", len(errs), strings.Join(msgs, "; "))
	}
	return e.merr.ErrorOrNil()
}

// ColumnErrors flattens err into the column errors it carries.
func ColumnErrors(err error) []*ColumnError {
	var out []*ColumnError
	var merr *multierror.Error
	if errors.As(err, &merr) {
		for _, e := range merr.Errors {
			out = append(out, ColumnErrors(e)...)
		}
		return out
	}
	var ce *ColumnError
	if errors.As(err, &ce) {
		out = append(out, ce)
	}
	return out
}

// ShiftRows adds offset to the rows of every column error in err, turning indices
// relative to a slice of the batch into batch indices.
func ShiftRows(err error, offset int) {
	if offset == 0 {
		return
	}
	for _, ce := range ColumnErrors(err) {
		rows := make([]int, len(ce.Rows))
		for i, r := range ce.Rows {
			rows[i] = r + offset
		}
		ce.Rows = rows
	}
}
