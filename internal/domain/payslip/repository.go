package payslip

import "context"

type PayslipRepository interface {
	GetByID(ctx context.Context, id string) (Payslip, error)
	// CountOverlappingDone counts the other confirmed payslips of the same
	// employee whose period overlaps p (see Overlaps).
	CountOverlappingDone(ctx context.Context, p Payslip) (int, error)
	// UpdatePeriod persists employee, contract, structure and period of p.
	UpdatePeriod(ctx context.Context, p Payslip) error
	MarkDone(ctx context.Context, id string, moveID *string) error
	MarkNotificationSent(ctx context.Context, id string) error
	// ReplaceInputLines makes lines the payslip's whole input line collection.
	// Lines without ID are inserted, lines missing from the set are deleted.
	ReplaceInputLines(ctx context.Context, payslipID string, lines []InputLine) ([]InputLine, error)
}

type InputTypeRepository interface {
	GetByCodes(ctx context.Context, codes []string) ([]InputType, error)
}
