package payslip

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/payslip-backend-go/internal/domain/adhoc"
	"github.com/cmlabs-hris/payslip-backend-go/internal/domain/payslip"
	"github.com/shopspring/decimal"
)

// AdHocAggregator folds unconsumed allowance and deduction entries into one
// total per input category.
type AdHocAggregator struct {
	entryRepo adhoc.EntryRepository
}

func NewAdHocAggregator(entryRepo adhoc.EntryRepository) *AdHocAggregator {
	return &AdHocAggregator{entryRepo: entryRepo}
}

// Collect returns at most one aggregate per category, in the order each
// category was first seen. Categories without entries are omitted.
func (a *AdHocAggregator) Collect(ctx context.Context, employeeID string, from, to time.Time) ([]payslip.Aggregate, error) {
	aggregates, _, err := a.collect(ctx, employeeID, from, to)
	return aggregates, err
}

// collect also returns the IDs of the entries folded into the aggregates.
func (a *AdHocAggregator) collect(ctx context.Context, employeeID string, from, to time.Time) ([]payslip.Aggregate, []string, error) {
	entries, err := a.entryRepo.ListUnconsumed(ctx, employeeID, from, to)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list ad-hoc entries: %w", err)
	}

	from, to = payslip.DateOnly(from), payslip.DateOnly(to)
	totals := make(map[payslip.InputCode]decimal.Decimal, len(payslip.InputCodes))
	var (
		order    []payslip.InputCode
		entryIDs []string
	)

	for _, e := range entries {
		if e.IsConsumed() || e.State != adhoc.EntryStateDone {
			continue
		}
		if d := payslip.DateOnly(e.Date); d.Before(from) || d.After(to) {
			continue
		}
		code, ok := payslip.InputCodeFor(e.OperationType, e.CalcType)
		if !ok {
			continue
		}
		value, _ := e.Value()

		total, seen := totals[code]
		if !seen {
			order = append(order, code)
			total = decimal.Zero
		}
		totals[code] = total.Add(value)
		entryIDs = append(entryIDs, e.ID)
	}

	result := make([]payslip.Aggregate, 0, len(order))
	for _, code := range order {
		result = append(result, payslip.Aggregate{Code: code, Amount: totals[code]})
	}
	return result, entryIDs, nil
}
