package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/payslip-backend-go/internal/domain/payslip"
	"github.com/cmlabs-hris/payslip-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type payslipRepository struct {
	db *database.DB
}

func NewPayslipRepository(db *database.DB) payslip.PayslipRepository {
	return &payslipRepository{db: db}
}

func (r *payslipRepository) GetByID(ctx context.Context, id string) (payslip.Payslip, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, number, name, employee_id, contract_id, struct_id, date_from, date_to,
			   state, credit_note, move_id, is_send, created_at, updated_at
		FROM payslips
		WHERE id = $1
	`

	var (
		p      payslip.Payslip
		dateTo *time.Time
	)
	err := q.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.Number, &p.Name, &p.EmployeeID, &p.ContractID, &p.StructID, &p.DateFrom, &dateTo,
		&p.State, &p.CreditNote, &p.MoveID, &p.IsSend, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payslip.Payslip{}, payslip.ErrPayslipNotFound
		}
		return payslip.Payslip{}, fmt.Errorf("failed to get payslip: %w", err)
	}
	if dateTo != nil {
		p.DateTo = *dateTo
	}

	p.InputLines, err = r.listInputLines(ctx, q, p.ID)
	if err != nil {
		return payslip.Payslip{}, err
	}

	return p, nil
}

func (r *payslipRepository) listInputLines(ctx context.Context, q database.Querier, payslipID string) ([]payslip.InputLine, error) {
	query := `
		SELECT l.id, l.payslip_id, l.input_type_id, t.code, t.name, l.amount
		FROM payslip_input_lines l
		JOIN payslip_input_types t ON t.id = l.input_type_id
		WHERE l.payslip_id = $1
		ORDER BY l.sequence, l.created_at, l.id
	`

	rows, err := q.Query(ctx, query, payslipID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payslip input lines: %w", err)
	}
	defer rows.Close()

	var lines []payslip.InputLine
	for rows.Next() {
		var l payslip.InputLine
		if err := rows.Scan(&l.ID, &l.PayslipID, &l.InputTypeID, &l.Code, &l.Name, &l.Amount); err != nil {
			return nil, fmt.Errorf("failed to scan payslip input line: %w", err)
		}
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating payslip input lines: %w", err)
	}

	return lines, nil
}

// CountOverlappingDone counts the other done payslips of the employee whose
// period overlaps p's, both bounds inclusive. A NULL date_to is open-ended,
// as is p itself when it has no end date.
func (r *payslipRepository) CountOverlappingDone(ctx context.Context, p payslip.Payslip) (int, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COUNT(*)
		FROM payslips
		WHERE employee_id = $1
		  AND id <> $2
		  AND state = 'done'
		  AND (
				(date_to >= $3 AND date_to <= $4)
			 OR (date_from >= $3 AND date_from <= $4)
			 OR (date_from <= $3 AND (date_to IS NULL OR date_to >= $4))
		  )
	`

	candidateTo := openEndedDate
	if !p.OpenEnded() {
		candidateTo = payslip.DateOnly(p.DateTo)
	}

	var n int
	err := q.QueryRow(ctx, query, p.EmployeeID, p.ID, payslip.DateOnly(p.DateFrom), candidateTo).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count overlapping payslips: %w", err)
	}
	return n, nil
}

func (r *payslipRepository) UpdatePeriod(ctx context.Context, p payslip.Payslip) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE payslips
		SET employee_id = $1, contract_id = $2, struct_id = $3, date_from = $4, date_to = $5, updated_at = NOW()
		WHERE id = $6 AND state IN ('draft', 'verify')
	`

	tag, err := q.Exec(ctx, query, p.EmployeeID, p.ContractID, p.StructID, p.DateFrom, nullableDate(p.DateTo), p.ID)
	if err != nil {
		return fmt.Errorf("failed to update payslip period: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payslip.ErrPayslipNotEditable
	}
	return nil
}

func (r *payslipRepository) MarkDone(ctx context.Context, id string, moveID *string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE payslips
		SET state = 'done', move_id = $1, updated_at = NOW()
		WHERE id = $2 AND state IN ('draft', 'verify')
	`

	tag, err := q.Exec(ctx, query, moveID, id)
	if err != nil {
		return fmt.Errorf("failed to mark payslip as done: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payslip.ErrPayslipNotEditable
	}
	return nil
}

func (r *payslipRepository) MarkNotificationSent(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `UPDATE payslips SET is_send = TRUE, updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to mark payslip notification sent: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payslip.ErrPayslipNotFound
	}
	return nil
}

// ReplaceInputLines makes lines the full input line set of the payslip: lines
// missing from it are deleted, lines without an ID are inserted and the given
// order is kept.
func (r *payslipRepository) ReplaceInputLines(ctx context.Context, payslipID string, lines []payslip.InputLine) ([]payslip.InputLine, error) {
	q := GetQuerier(ctx, r.db)

	keep := make([]string, 0, len(lines))
	for _, l := range lines {
		if l.ID != "" {
			keep = append(keep, l.ID)
		}
	}

	if _, err := q.Exec(ctx, `DELETE FROM payslip_input_lines WHERE payslip_id = $1 AND NOT (id = ANY($2::uuid[]))`, payslipID, keep); err != nil {
		return nil, fmt.Errorf("failed to delete payslip input lines: %w", err)
	}

	for i, l := range lines {
		if l.ID != "" {
			_, err := q.Exec(ctx, `UPDATE payslip_input_lines SET sequence = $1, amount = $2 WHERE id = $3 AND payslip_id = $4`, i, l.Amount, l.ID, payslipID)
			if err != nil {
				return nil, fmt.Errorf("failed to update payslip input line: %w", err)
			}
			continue
		}
		_, err := q.Exec(ctx, `
			INSERT INTO payslip_input_lines (payslip_id, input_type_id, amount, sequence)
			VALUES ($1, $2, $3, $4)
		`, payslipID, l.InputTypeID, l.Amount, i)
		if err != nil {
			return nil, fmt.Errorf("failed to insert payslip input line: %w", err)
		}
	}

	return r.listInputLines(ctx, q, payslipID)
}

var openEndedDate = time.Date(9999, 12, 31, 0, 0, 0, 0, time.UTC)

func nullableDate(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
