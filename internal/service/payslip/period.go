package payslip

import (
	"time"

	"github.com/cmlabs-hris/payslip-backend-go/internal/domain/payslip"
)

// normalizedMonthDays is the month length payroll is computed on.
const normalizedMonthDays = 30

const secondsPerDay = 24 * 60 * 60

// PaymentDays returns the payable length of the period [from, to]. Periods
// longer than 30 days, and full February periods, count as 30 days.
func PaymentDays(from, to time.Time) int {
	n := daysBetween(from, to) + 1
	if n > normalizedMonthDays || (from.Month() == time.February && (n == 28 || n == 29)) {
		n = normalizedMonthDays
	}
	return n
}

// FirstMonthDays returns the number of days from joinDate to the period end,
// both inclusive.
func FirstMonthDays(to time.Time, joinDate *time.Time) (int, error) {
	if joinDate == nil {
		return 0, payslip.NewMissingJoinDateError()
	}
	return daysBetween(*joinDate, to) + 1, nil
}

// daysBetween counts calendar days on Unix seconds; time.Duration overflows
// past roughly 292 years.
func daysBetween(from, to time.Time) int {
	return int((payslip.DateOnly(to).Unix() - payslip.DateOnly(from).Unix()) / secondsPerDay)
}
