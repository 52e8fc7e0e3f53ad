package payslip

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/payslip-backend-go/internal/domain/accounting"
	"github.com/cmlabs-hris/payslip-backend-go/internal/domain/adhoc"
	"github.com/cmlabs-hris/payslip-backend-go/internal/domain/payslip"
	"github.com/shopspring/decimal"
)

const netPayableLineName = "Net salary payable"

// BaseFinalizer confirms a payslip: it posts the accounting move, moves the
// payslip to done and consumes the ad-hoc entries behind its lines.
type BaseFinalizer struct {
	payslipRepo payslip.PayslipRepository
	moveRepo    accounting.MoveRepository
	entryRepo   adhoc.EntryRepository
}

func NewBaseFinalizer(payslipRepo payslip.PayslipRepository, moveRepo accounting.MoveRepository, entryRepo adhoc.EntryRepository) *BaseFinalizer {
	return &BaseFinalizer{
		payslipRepo: payslipRepo,
		moveRepo:    moveRepo,
		entryRepo:   entryRepo,
	}
}

// Finalize confirms p. entryIDs are the ad-hoc entries aggregated into p's
// input lines; no other entry is touched.
func (f *BaseFinalizer) Finalize(ctx context.Context, p payslip.Payslip, entryIDs []string) (payslip.Payslip, error) {
	var moveID *string

	if lines := buildMoveLines(p); len(lines) > 0 {
		date := p.DateTo
		if p.OpenEnded() {
			date = p.DateFrom
		}
		move, err := f.moveRepo.Create(ctx, accounting.Move{
			PayslipID: p.ID,
			Ref:       p.Number,
			Date:      date,
			Lines:     lines,
		})
		if err != nil {
			return p, fmt.Errorf("failed to create accounting move: %w", err)
		}
		moveID = &move.ID
	}

	if err := f.payslipRepo.MarkDone(ctx, p.ID, moveID); err != nil {
		return p, fmt.Errorf("failed to mark payslip as done: %w", err)
	}

	if err := f.entryRepo.AttachToPayslip(ctx, p.ID, entryIDs); err != nil {
		return p, err
	}

	p.State = payslip.StateDone
	p.MoveID = moveID
	return p, nil
}

// buildMoveLines posts every monetary input line, deductions on the credit
// side, and balances the move with a net payable line. Credit notes reverse
// every line.
func buildMoveLines(p payslip.Payslip) []accounting.MoveLine {
	var lines []accounting.MoveLine
	net := decimal.Zero

	for _, in := range p.InputLines {
		code := payslip.InputCode(in.Code)
		if in.Amount.IsZero() || !code.IsMonetary() {
			continue
		}
		name := in.Name
		if name == "" {
			name = in.Code
		}
		amount := in.Amount
		if code.IsDeduction() {
			amount = amount.Neg()
		}
		lines = append(lines, newMoveLine(name, amount, p.CreditNote))
		net = net.Add(amount)
	}

	if len(lines) == 0 {
		return nil
	}
	if !net.IsZero() {
		lines = append(lines, newMoveLine(netPayableLineName, net.Neg(), p.CreditNote))
	}
	return lines
}

// newMoveLine puts a positive amount on the debit side and a negative one on
// the credit side.
func newMoveLine(name string, amount decimal.Decimal, reverse bool) accounting.MoveLine {
	if reverse {
		amount = amount.Neg()
	}
	line := accounting.MoveLine{Name: name, Debit: decimal.Zero, Credit: decimal.Zero}
	if amount.IsNegative() {
		line.Credit = amount.Neg()
	} else {
		line.Debit = amount
	}
	return line
}
