package employee

import (
	"strings"
	"time"
)

type Employee struct {
	ID         string
	Name       string
	LastName   string
	WorkEmail  *string
	DateOfJoin *time.Time
	BranchID   *string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// FullName joins first and last name the way payslip messages address employees.
func (e Employee) FullName() string {
	return strings.TrimSpace(e.Name + " " + e.LastName)
}

// HasWorkEmail reports whether a non-blank work email is registered.
func (e Employee) HasWorkEmail() bool {
	return e.WorkEmail != nil && strings.TrimSpace(*e.WorkEmail) != ""
}

// Contract - Employment contract carrying cost-tracking tags
type Contract struct {
	ID                string
	EmployeeID        string
	Name              string
	AnalyticAccountID *string
	AnalyticTagIDs    []string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
