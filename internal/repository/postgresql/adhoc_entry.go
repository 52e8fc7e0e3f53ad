package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/payslip-backend-go/internal/domain/adhoc"
	"github.com/cmlabs-hris/payslip-backend-go/internal/domain/payslip"
	"github.com/cmlabs-hris/payslip-backend-go/internal/pkg/database"
)

type adhocEntryRepository struct {
	db *database.DB
}

func NewAdHocEntryRepository(db *database.DB) adhoc.EntryRepository {
	return &adhocEntryRepository{db: db}
}

func (r *adhocEntryRepository) ListUnconsumed(ctx context.Context, employeeID string, from, to time.Time) ([]adhoc.Entry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, payslip_id, state, date, operation_type, calc_type,
			   amount, no_of_days, no_of_hours, percentage, description, created_at, updated_at
		FROM other_payslip_entries
		WHERE employee_id = $1
		  AND payslip_id IS NULL
		  AND state = 'done'
		  AND date >= $2 AND date <= $3
		ORDER BY date, created_at, id
	`

	rows, err := q.Query(ctx, query, employeeID, payslip.DateOnly(from), payslip.DateOnly(to))
	if err != nil {
		return nil, fmt.Errorf("failed to list ad-hoc entries: %w", err)
	}
	defer rows.Close()

	var entries []adhoc.Entry
	for rows.Next() {
		var e adhoc.Entry
		if err := rows.Scan(
			&e.ID, &e.EmployeeID, &e.PayslipID, &e.State, &e.Date, &e.OperationType, &e.CalcType,
			&e.Amount, &e.NoOfDays, &e.NoOfHours, &e.Percentage, &e.Description, &e.CreatedAt, &e.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan ad-hoc entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ad-hoc entries: %w", err)
	}

	return entries, nil
}

func (r *adhocEntryRepository) AttachToPayslip(ctx context.Context, payslipID string, entryIDs []string) error {
	if len(entryIDs) == 0 {
		return nil
	}
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE other_payslip_entries
		SET payslip_id = $1, updated_at = NOW()
		WHERE id = ANY($2::uuid[])
		  AND payslip_id IS NULL
	`

	tag, err := q.Exec(ctx, query, payslipID, entryIDs)
	if err != nil {
		return fmt.Errorf("failed to attach ad-hoc entries: %w", err)
	}
	if tag.RowsAffected() != int64(len(entryIDs)) {
		return fmt.Errorf("%w: attached %d of %d entries", adhoc.ErrEntryAlreadyConsumed, tag.RowsAffected(), len(entryIDs))
	}
	return nil
}
