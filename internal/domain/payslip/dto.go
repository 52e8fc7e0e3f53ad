package payslip

import (
	"time"

	"github.com/cmlabs-hris/payslip-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========== PAYSLIP DTOs ==========

type InputLineResponse struct {
	ID          string          `json:"id"`
	InputTypeID string          `json:"input_type_id"`
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	Amount      decimal.Decimal `json:"amount"`
}

type PayslipResponse struct {
	ID             string              `json:"id"`
	Number         string              `json:"number"`
	Name           string              `json:"name"`
	EmployeeID     string              `json:"employee_id"`
	EmployeeName   string              `json:"employee_name"`
	ContractID     *string             `json:"contract_id,omitempty"`
	StructID       *string             `json:"struct_id,omitempty"`
	DateFrom       string              `json:"date_from"`
	DateTo         *string             `json:"date_to,omitempty"`
	State          string              `json:"state"`
	CreditNote     bool                `json:"credit_note"`
	MoveID         *string             `json:"move_id,omitempty"`
	IsSend         bool                `json:"is_send"`
	PaymentDays    int                 `json:"payment_days"`
	FirstMonthDays *int                `json:"first_month_days,omitempty"`
	InputLines     []InputLineResponse `json:"input_lines"`
}

// UpdatePeriodRequest changes the fields that trigger input line reconciliation.
type UpdatePeriodRequest struct {
	ID            string  `json:"-"`
	EmployeeID    *string `json:"employee_id,omitempty"`
	ContractID    *string `json:"contract_id,omitempty"`
	ClearContract bool    `json:"clear_contract,omitempty"`
	StructID      *string `json:"struct_id,omitempty"`
	DateFrom      *string `json:"date_from,omitempty"`
	DateTo        *string `json:"date_to,omitempty"`

	dateFrom *time.Time
	dateTo   *time.Time
}

func (r *UpdatePeriodRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.EmployeeID != nil && validator.IsEmpty(*r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "must not be empty"})
	}
	if r.ContractID != nil && r.ClearContract {
		errs = append(errs, validator.ValidationError{Field: "contract_id", Message: "cannot be set together with clear_contract"})
	}
	if r.DateFrom != nil {
		d, ok := validator.IsValidDate(*r.DateFrom)
		if !ok {
			errs = append(errs, validator.ValidationError{Field: "date_from", Message: "must be in YYYY-MM-DD format"})
		} else {
			r.dateFrom = &d
		}
	}
	if r.DateTo != nil {
		d, ok := validator.IsValidDate(*r.DateTo)
		if !ok {
			errs = append(errs, validator.ValidationError{Field: "date_to", Message: "must be in YYYY-MM-DD format"})
		} else {
			r.dateTo = &d
		}
	}
	if r.dateFrom != nil && r.dateTo != nil && r.dateTo.Before(*r.dateFrom) {
		errs = append(errs, validator.ValidationError{Field: "date_to", Message: "must not be before date_from"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Apply copies the requested changes onto p. Validate must have succeeded.
func (r *UpdatePeriodRequest) Apply(p Payslip) Payslip {
	if r.EmployeeID != nil {
		p.EmployeeID = *r.EmployeeID
	}
	if r.ClearContract {
		p.ContractID = nil
	} else if r.ContractID != nil {
		p.ContractID = r.ContractID
	}
	if r.StructID != nil {
		p.StructID = r.StructID
	}
	if r.dateFrom != nil {
		p.DateFrom = *r.dateFrom
	}
	if r.dateTo != nil {
		p.DateTo = *r.dateTo
	}
	return p
}

type FinalizePayslipsRequest struct {
	PayslipIDs []string `json:"payslip_ids"`
}

func (r *FinalizePayslipsRequest) Validate() error {
	var errs validator.ValidationErrors

	if len(r.PayslipIDs) == 0 {
		errs = append(errs, validator.ValidationError{Field: "payslip_ids", Message: "at least one payslip is required"})
	}
	for _, id := range r.PayslipIDs {
		if !validator.IsValidUUID(id) {
			errs = append(errs, validator.ValidationError{Field: "payslip_ids", Message: "must contain valid UUIDs"})
			break
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type FinalizeBatchResponse struct {
	BatchID   string            `json:"batch_id"`
	Finalized []PayslipResponse `json:"finalized"`
}

type AggregateResponse struct {
	Code   string          `json:"code"`
	Amount decimal.Decimal `json:"amount"`
}

// ========== PERIOD DTOs ==========

type PaymentDaysRequest struct {
	DateFrom string
	DateTo   string
}

func (r *PaymentDaysRequest) Validate() error {
	var errs validator.ValidationErrors

	from, okFrom := validator.IsValidDate(r.DateFrom)
	if !okFrom {
		errs = append(errs, validator.ValidationError{Field: "date_from", Message: "must be in YYYY-MM-DD format"})
	}
	to, okTo := validator.IsValidDate(r.DateTo)
	if !okTo {
		errs = append(errs, validator.ValidationError{Field: "date_to", Message: "must be in YYYY-MM-DD format"})
	}
	if okFrom && okTo && to.Before(from) {
		errs = append(errs, validator.ValidationError{Field: "date_to", Message: "must not be before date_from"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type PaymentDaysResponse struct {
	DateFrom    string `json:"date_from"`
	DateTo      string `json:"date_to"`
	PaymentDays int    `json:"payment_days"`
}
