package payslip

import (
	"time"

	"github.com/shopspring/decimal"
)

// State enum
type State string

const (
	StateDraft  State = "draft"
	StateVerify State = "verify"
	StateDone   State = "done"
	StateCancel State = "cancel"
)

// Payslip - One payroll record per employee per pay period
type Payslip struct {
	ID         string
	Number     string
	Name       string
	EmployeeID string
	ContractID *string
	StructID   *string
	DateFrom   time.Time
	DateTo     time.Time // zero when open-ended
	State      State
	CreditNote bool
	MoveID     *string
	IsSend     bool
	InputLines []InputLine
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// IsEditable reports whether the payslip is still in progress.
func (p Payslip) IsEditable() bool {
	return p.State == StateDraft || p.State == StateVerify
}

// OpenEnded reports whether the payslip has no end date.
func (p Payslip) OpenEnded() bool {
	return p.DateTo.IsZero()
}

// InputLine - One (category, amount) entry attached to a payslip
type InputLine struct {
	ID          string
	PayslipID   string
	InputTypeID string
	Code        string
	Name        string
	Amount      decimal.Decimal
}

// InputType - Pre-registered input line category
type InputType struct {
	ID   string
	Code string
	Name string
}

// Aggregate - Folded total for one ad-hoc input category
type Aggregate struct {
	Code   InputCode
	Amount decimal.Decimal
}
