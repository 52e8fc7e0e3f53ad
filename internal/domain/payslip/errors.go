package payslip

import (
	"errors"
	"fmt"
)

var (
	ErrPayslipNotFound         = errors.New("payslip not found")
	ErrPayslipNotEditable      = errors.New("payslip already confirmed, cannot modify")
	ErrInvalidPeriod           = errors.New("invalid payslip period")
	ErrInputTypeNotRegistered  = errors.New("payslip input type not registered")
	ErrMailTemplateNotFound    = errors.New("payslip mail template not registered")
	ErrDuplicatePayslip        = errors.New("duplicate payslip for period")
	ErrDuplicateRefund         = errors.New("duplicate refund for period")
	ErrEmployeeEmailMissing    = errors.New("employee work email missing")
	ErrEmployeeJoinDateMissing = errors.New("employee joining date missing")
	ErrSendPayslipNotPermitted = errors.New("user may not send payslips")
)

// ValidationError blocks confirmation when a payroll rule is violated.
type ValidationError struct {
	Message string
	Err     error
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Unwrap() error { return e.Err }

// UserError reports a precondition the user has to fix before retrying.
type UserError struct {
	Message string
	Err     error
}

func (e *UserError) Error() string { return e.Message }

func (e *UserError) Unwrap() error { return e.Err }

func newDuplicatePayslipError(employeeName string) error {
	return &ValidationError{
		Message: fmt.Sprintf("You already generated payslip with same duration of %q. Kindly check once.", employeeName),
		Err:     ErrDuplicatePayslip,
	}
}

func newDuplicateRefundError(employeeName string) error {
	return &ValidationError{
		Message: fmt.Sprintf("You already refunded payslip with same duration of %q. Kindly check once.", employeeName),
		Err:     ErrDuplicateRefund,
	}
}

// NewMissingEmailError names the employee whose work email is not set.
func NewMissingEmailError(employeeName string) error {
	return &UserError{
		Message: fmt.Sprintf("Please set %s's email and confirm payslip.", employeeName),
		Err:     ErrEmployeeEmailMissing,
	}
}

// NewMissingJoinDateError is returned when day counts need the joining date.
func NewMissingJoinDateError() error {
	return &UserError{
		Message: "Please enter 'Joining Date' of Employee first!",
		Err:     ErrEmployeeJoinDateMissing,
	}
}
