package adhoc

import (
	"time"

	"github.com/shopspring/decimal"
)

// OperationType enum
type OperationType string

const (
	OperationAllowance OperationType = "allowance"
	OperationDeduction OperationType = "deduction"
)

// CalcType enum
type CalcType string

const (
	CalcAmount     CalcType = "amount"
	CalcDays       CalcType = "days"
	CalcHours      CalcType = "hours"
	CalcPercentage CalcType = "percentage"
)

// EntryState enum
type EntryState string

const (
	EntryStateDraft  EntryState = "draft"
	EntryStateDone   EntryState = "done"
	EntryStateCancel EntryState = "cancel"
)

// Entry - One-off allowance or deduction waiting to be picked up by a payslip
type Entry struct {
	ID            string
	EmployeeID    string
	PayslipID     *string
	State         EntryState
	Date          time.Time
	OperationType OperationType
	CalcType      CalcType
	Amount        decimal.Decimal
	NoOfDays      decimal.Decimal
	NoOfHours     decimal.Decimal
	Percentage    decimal.Decimal
	Description   *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Value returns the field selected by the entry's calculation type.
func (e Entry) Value() (decimal.Decimal, bool) {
	switch e.CalcType {
	case CalcAmount:
		return e.Amount, true
	case CalcDays:
		return e.NoOfDays, true
	case CalcHours:
		return e.NoOfHours, true
	case CalcPercentage:
		return e.Percentage, true
	}
	return decimal.Zero, false
}

// IsConsumed reports whether the entry is already linked to a payslip.
func (e Entry) IsConsumed() bool {
	return e.PayslipID != nil
}
