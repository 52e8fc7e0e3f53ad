package accounting

import "github.com/shopspring/decimal"

// Totals returns the sum of debits and credits over lines.
func Totals(lines []MoveLine) (debit, credit decimal.Decimal) {
	debit, credit = decimal.Zero, decimal.Zero
	for _, l := range lines {
		debit = debit.Add(l.Debit)
		credit = credit.Add(l.Credit)
	}
	return debit, credit
}

// Validate checks that the move is balanced.
func (m Move) Validate() error {
	debit, credit := Totals(m.Lines)
	if !debit.Equal(credit) {
		return ErrUnbalancedMove
	}
	return nil
}
