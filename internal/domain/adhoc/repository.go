package adhoc

import (
	"context"
	"time"
)

type EntryRepository interface {
	// ListUnconsumed returns done entries of the employee dated within [from, to]
	// that are not linked to any payslip, ordered by date then id.
	ListUnconsumed(ctx context.Context, employeeID string, from, to time.Time) ([]Entry, error)
	// AttachToPayslip links the given entries to payslipID. It fails with
	// ErrEntryAlreadyConsumed when any of them is already linked.
	AttachToPayslip(ctx context.Context, payslipID string, entryIDs []string) error
}
