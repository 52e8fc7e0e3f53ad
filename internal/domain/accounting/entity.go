package accounting

import (
	"time"

	"github.com/shopspring/decimal"
)

// Move - Journal entry generated when a payslip is confirmed
type Move struct {
	ID        string
	PayslipID string
	Ref       string
	Date      time.Time
	BranchID  *string
	Lines     []MoveLine
	CreatedAt time.Time
	UpdatedAt time.Time
}

type MoveLine struct {
	ID                string
	MoveID            string
	Name              string
	Debit             decimal.Decimal
	Credit            decimal.Decimal
	BranchID          *string
	AnalyticAccountID *string
	AnalyticTagIDs    []string
}

// LineValues is a bulk write applied to every line of a move.
// BranchID and AnalyticTagIDs are always written (nil clears them);
// AnalyticAccountID is only written when non-nil.
type LineValues struct {
	BranchID          *string
	AnalyticTagIDs    []string
	AnalyticAccountID *string
}
