package payslip

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/payslip-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/payslip-backend-go/internal/domain/payslip"
)

type DuplicateChecker struct {
	payslipRepo payslip.PayslipRepository
}

func NewDuplicateChecker(payslipRepo payslip.PayslipRepository) *DuplicateChecker {
	return &DuplicateChecker{payslipRepo: payslipRepo}
}

// CheckDuplicates rejects p when the confirmed payslips overlapping its period
// contradict its credit note flag.
func (c *DuplicateChecker) CheckDuplicates(ctx context.Context, p payslip.Payslip, emp employee.Employee) error {
	n, err := c.payslipRepo.CountOverlappingDone(ctx, p)
	if err != nil {
		return fmt.Errorf("failed to count overlapping payslips: %w", err)
	}
	return payslip.CheckParity(n, p.CreditNote, emp.FullName())
}
