package payslip

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/payslip-backend-go/internal/domain/accounting"
	"github.com/cmlabs-hris/payslip-backend-go/internal/domain/employee"
)

// LedgerEnricher stamps the employee's branch and the contract's analytic
// dimensions onto a payslip's accounting move.
type LedgerEnricher struct {
	moveRepo accounting.MoveRepository
}

func NewLedgerEnricher(moveRepo accounting.MoveRepository) *LedgerEnricher {
	return &LedgerEnricher{moveRepo: moveRepo}
}

// Enrich sets the move branch and writes branch, tags and, when the contract
// has one, the analytic account onto every move line. A nil contract clears
// the tags.
func (l *LedgerEnricher) Enrich(ctx context.Context, moveID string, emp employee.Employee, contract *employee.Contract) error {
	if err := l.moveRepo.SetBranch(ctx, moveID, emp.BranchID); err != nil {
		return fmt.Errorf("failed to set move branch: %w", err)
	}

	vals := accounting.LineValues{
		BranchID:       emp.BranchID,
		AnalyticTagIDs: []string{},
	}
	if contract != nil {
		vals.AnalyticTagIDs = append(vals.AnalyticTagIDs, contract.AnalyticTagIDs...)
		vals.AnalyticAccountID = contract.AnalyticAccountID
	}

	if err := l.moveRepo.WriteLines(ctx, moveID, vals); err != nil {
		return fmt.Errorf("failed to write move lines: %w", err)
	}
	return nil
}
