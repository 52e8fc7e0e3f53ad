package user

// Group - Named privilege group a user can belong to
type Group string

const (
	// GroupSendPayslip allows mailing payslips to employees on confirmation.
	GroupSendPayslip Group = "send_payslip"
	// GroupPayrollManager allows finalizing payslips.
	GroupPayrollManager Group = "payroll_manager"
)
