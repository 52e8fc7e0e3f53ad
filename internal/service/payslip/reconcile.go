package payslip

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/payslip-backend-go/internal/domain/payslip"
)

// Reconciler regenerates the ad-hoc input lines of an in-progress payslip
// after its employee, structure, contract or period changed.
type Reconciler struct {
	payslipRepo payslip.PayslipRepository
	aggregator  *AdHocAggregator
	registry    payslip.Registry
}

func NewReconciler(payslipRepo payslip.PayslipRepository, aggregator *AdHocAggregator, registry payslip.Registry) *Reconciler {
	return &Reconciler{
		payslipRepo: payslipRepo,
		aggregator:  aggregator,
		registry:    registry,
	}
}

// OnEmployeeOrPeriodChange rebuilds the ad-hoc lines of p from the unconsumed
// entries of its period and persists the resulting line set. Lines of any
// other category are kept as they are.
func (r *Reconciler) OnEmployeeOrPeriodChange(ctx context.Context, p payslip.Payslip) (payslip.Payslip, error) {
	p, _, err := r.Refresh(ctx, p)
	return p, err
}

// Refresh works like OnEmployeeOrPeriodChange and also returns the IDs of the
// entries behind the regenerated ad-hoc lines. Those are exactly the entries
// the payslip consumes when it is confirmed.
func (r *Reconciler) Refresh(ctx context.Context, p payslip.Payslip) (payslip.Payslip, []string, error) {
	if !p.IsEditable() {
		return p, nil, payslip.ErrPayslipNotEditable
	}

	ops, entryIDs, err := r.lineOps(ctx, p)
	if err != nil {
		return p, nil, err
	}
	if len(ops) == 0 {
		return p, entryIDs, nil
	}

	lines, err := r.payslipRepo.ReplaceInputLines(ctx, p.ID, payslip.ApplyLineOps(p.InputLines, ops...))
	if err != nil {
		return p, nil, fmt.Errorf("failed to replace input lines: %w", err)
	}
	p.InputLines = lines
	return p, entryIDs, nil
}

// lineOps starts from the payslip's current lines; there is no separate base
// recomputation of the structure inputs.
func (r *Reconciler) lineOps(ctx context.Context, p payslip.Payslip) ([]payslip.LineOp, []string, error) {
	var ops []payslip.LineOp

	if p.ContractID == nil {
		for _, l := range p.InputLines {
			if r.registry.IsAdHocInputType(l.InputTypeID) {
				ops = append(ops, payslip.Remove{ID: l.ID})
			}
		}
	}

	// entries are collected over a closed window only
	if p.OpenEnded() {
		return ops, nil, nil
	}

	aggregates, entryIDs, err := r.aggregator.collect(ctx, p.EmployeeID, p.DateFrom, p.DateTo)
	if err != nil {
		return nil, nil, err
	}
	if len(aggregates) == 0 {
		return ops, nil, nil
	}

	keep := payslip.Replace{}
	for _, l := range p.InputLines {
		if !r.registry.IsAdHocInputType(l.InputTypeID) {
			keep.IDs = append(keep.IDs, l.ID)
		}
	}
	ops = append(ops, keep)

	for _, agg := range aggregates {
		inputType, ok := r.registry.InputType(agg.Code)
		if !ok {
			return nil, nil, fmt.Errorf("%w: %s", payslip.ErrInputTypeNotRegistered, agg.Code)
		}
		ops = append(ops, payslip.Create{Line: payslip.InputLine{
			PayslipID:   p.ID,
			InputTypeID: inputType.ID,
			Code:        inputType.Code,
			Name:        inputType.Name,
			Amount:      agg.Amount,
		}})
	}
	return ops, entryIDs, nil
}
