package payslip

import "github.com/cmlabs-hris/payslip-backend-go/internal/domain/adhoc"

// InputCode names one (operation type, calculation type) pair of ad-hoc inputs.
type InputCode string

const (
	OtherAllowanceAmount     InputCode = "OTHER_ALLOWANCE_AMOUNT"
	OtherAllowanceDays       InputCode = "OTHER_ALLOWANCE_DAYS"
	OtherAllowanceHours      InputCode = "OTHER_ALLOWANCE_HOURS"
	OtherAllowancePercentage InputCode = "OTHER_ALLOWANCE_PERCENTAGE"
	OtherDeductionAmount     InputCode = "OTHER_DEDUCTION_AMOUNT"
	OtherDeductionDays       InputCode = "OTHER_DEDUCTION_DAYS"
	OtherDeductionHours      InputCode = "OTHER_DEDUCTION_HOURS"
	OtherDeductionPercentage InputCode = "OTHER_DEDUCTION_PERCENTAGE"
)

// InputCodes lists the eight ad-hoc categories.
var InputCodes = []InputCode{
	OtherAllowanceAmount,
	OtherAllowanceDays,
	OtherAllowanceHours,
	OtherAllowancePercentage,
	OtherDeductionAmount,
	OtherDeductionDays,
	OtherDeductionHours,
	OtherDeductionPercentage,
}

type inputKey struct {
	op   adhoc.OperationType
	calc adhoc.CalcType
}

var inputCodeByKey = map[inputKey]InputCode{
	{adhoc.OperationAllowance, adhoc.CalcAmount}:     OtherAllowanceAmount,
	{adhoc.OperationAllowance, adhoc.CalcDays}:       OtherAllowanceDays,
	{adhoc.OperationAllowance, adhoc.CalcHours}:      OtherAllowanceHours,
	{adhoc.OperationAllowance, adhoc.CalcPercentage}: OtherAllowancePercentage,
	{adhoc.OperationDeduction, adhoc.CalcAmount}:     OtherDeductionAmount,
	{adhoc.OperationDeduction, adhoc.CalcDays}:       OtherDeductionDays,
	{adhoc.OperationDeduction, adhoc.CalcHours}:      OtherDeductionHours,
	{adhoc.OperationDeduction, adhoc.CalcPercentage}: OtherDeductionPercentage,
}

// InputCodeFor maps an entry's operation and calculation type to its category.
func InputCodeFor(op adhoc.OperationType, calc adhoc.CalcType) (InputCode, bool) {
	code, ok := inputCodeByKey[inputKey{op, calc}]
	return code, ok
}

func (c InputCode) IsValid() bool {
	for _, code := range InputCodes {
		if c == code {
			return true
		}
	}
	return false
}

// IsDeduction reports whether the category reduces pay.
func (c InputCode) IsDeduction() bool {
	switch c {
	case OtherDeductionAmount, OtherDeductionDays, OtherDeductionHours, OtherDeductionPercentage:
		return true
	}
	return false
}

func (c InputCode) String() string {
	return string(c)
}

// IsMonetary reports whether lines of this code carry a money amount. Codes
// outside the ad-hoc categories are treated as money.
func (c InputCode) IsMonetary() bool {
	switch c {
	case OtherAllowanceDays, OtherAllowanceHours, OtherAllowancePercentage,
		OtherDeductionDays, OtherDeductionHours, OtherDeductionPercentage:
		return false
	}
	return true
}
