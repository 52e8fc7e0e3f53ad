package payslip

import "time"

// Overlaps reports whether an existing payslip period [from, to] collides with
// the candidate period. Bounds are inclusive and a nil existing end date is
// open-ended.
func Overlaps(candidateFrom, candidateTo, from time.Time, to *time.Time) bool {
	candidateFrom, candidateTo, from = DateOnly(candidateFrom), DateOnly(candidateTo), DateOnly(from)

	// existing period ends inside the candidate
	if to != nil {
		end := DateOnly(*to)
		if !end.After(candidateTo) && !end.Before(candidateFrom) {
			return true
		}
	}
	// existing period starts inside the candidate
	if !from.After(candidateTo) && !from.Before(candidateFrom) {
		return true
	}
	// existing period covers the candidate
	return !from.After(candidateFrom) && (to == nil || !DateOnly(*to).Before(candidateTo))
}

// CheckParity applies the duplicate rule to the number of other confirmed
// payslips overlapping the candidate. An even count forbids a refund, an odd
// count forbids a regular payslip.
func CheckParity(overlapping int, creditNote bool, employeeName string) error {
	even := overlapping%2 == 0
	if even && creditNote {
		return newDuplicateRefundError(employeeName)
	}
	if !even && !creditNote {
		return newDuplicatePayslipError(employeeName)
	}
	return nil
}

// DateOnly truncates t to its calendar date in UTC.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
