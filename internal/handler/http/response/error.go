package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/payslip-backend-go/internal/domain/accounting"
	"github.com/cmlabs-hris/payslip-backend-go/internal/domain/adhoc"
	"github.com/cmlabs-hris/payslip-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/payslip-backend-go/internal/domain/payslip"
	"github.com/cmlabs-hris/payslip-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/payslip-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// Payroll rule violations and missing preconditions carry their own message
	var ruleErr *payslip.ValidationError
	if errors.As(err, &ruleErr) {
		UnprocessableEntity(w, "PAYSLIP_VALIDATION_ERROR", ruleErr.Message)
		return
	}
	var userErr *payslip.UserError
	if errors.As(err, &userErr) {
		BadRequest(w, userErr.Message, nil)
		return
	}

	switch {
	// Auth
	case errors.Is(err, user.ErrUserIDMissing):
		Unauthorized(w, "Invalid token")
	case errors.Is(err, user.ErrGroupAccessRequired):
		Forbidden(w, "Insufficient privileges")

	// Payslip domain errors
	case errors.Is(err, payslip.ErrPayslipNotFound):
		NotFound(w, "Payslip not found")
	case errors.Is(err, payslip.ErrPayslipNotEditable):
		Conflict(w, "Payslip already confirmed, cannot modify")
	case errors.Is(err, payslip.ErrInvalidPeriod):
		BadRequest(w, "Payslip period end must not be before its start", nil)
	case errors.Is(err, payslip.ErrSendPayslipNotPermitted):
		Forbidden(w, "You are not allowed to send payslips")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrContractNotFound):
		NotFound(w, "Contract not found")

	// Ad-hoc entry errors
	case errors.Is(err, adhoc.ErrEntryAlreadyConsumed):
		Conflict(w, "Allowance or deduction entry already used by another payslip")

	// Accounting domain errors
	case errors.Is(err, accounting.ErrMoveNotFound):
		NotFound(w, "Accounting move not found")

	// Default
	default:
		slog.Error("Unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
