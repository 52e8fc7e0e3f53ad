package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/payslip-backend-go/internal/domain/accounting"
	"github.com/cmlabs-hris/payslip-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type moveRepository struct {
	db *database.DB
}

func NewMoveRepository(db *database.DB) accounting.MoveRepository {
	return &moveRepository{db: db}
}

func (r *moveRepository) Create(ctx context.Context, move accounting.Move) (accounting.Move, error) {
	if err := move.Validate(); err != nil {
		return accounting.Move{}, err
	}

	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO account_moves (payslip_id, ref, date, branch_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query, move.PayslipID, move.Ref, move.Date, move.BranchID).Scan(&move.ID, &move.CreatedAt, &move.UpdatedAt)
	if err != nil {
		return accounting.Move{}, fmt.Errorf("failed to create accounting move: %w", err)
	}

	lineQuery := `
		INSERT INTO account_move_lines (move_id, name, debit, credit, branch_id, analytic_account_id, analytic_tag_ids, sequence)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`
	for i := range move.Lines {
		l := &move.Lines[i]
		tags := l.AnalyticTagIDs
		if tags == nil {
			tags = []string{}
		}
		if err := q.QueryRow(ctx, lineQuery,
			move.ID, l.Name, l.Debit, l.Credit, l.BranchID, l.AnalyticAccountID, tags, i,
		).Scan(&l.ID); err != nil {
			return accounting.Move{}, fmt.Errorf("failed to create accounting move line: %w", err)
		}
		l.MoveID = move.ID
	}

	return move, nil
}

func (r *moveRepository) GetByID(ctx context.Context, id string) (accounting.Move, error) {
	q := GetQuerier(ctx, r.db)

	var m accounting.Move
	err := q.QueryRow(ctx, `
		SELECT id, payslip_id, ref, date, branch_id, created_at, updated_at
		FROM account_moves
		WHERE id = $1
	`, id).Scan(&m.ID, &m.PayslipID, &m.Ref, &m.Date, &m.BranchID, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return accounting.Move{}, accounting.ErrMoveNotFound
		}
		return accounting.Move{}, fmt.Errorf("failed to get accounting move: %w", err)
	}

	rows, err := q.Query(ctx, `
		SELECT id, move_id, name, debit, credit, branch_id, analytic_account_id, analytic_tag_ids
		FROM account_move_lines
		WHERE move_id = $1
		ORDER BY sequence, id
	`, id)
	if err != nil {
		return accounting.Move{}, fmt.Errorf("failed to list accounting move lines: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var l accounting.MoveLine
		if err := rows.Scan(&l.ID, &l.MoveID, &l.Name, &l.Debit, &l.Credit, &l.BranchID, &l.AnalyticAccountID, &l.AnalyticTagIDs); err != nil {
			return accounting.Move{}, fmt.Errorf("failed to scan accounting move line: %w", err)
		}
		m.Lines = append(m.Lines, l)
	}
	if err := rows.Err(); err != nil {
		return accounting.Move{}, fmt.Errorf("error iterating accounting move lines: %w", err)
	}

	return m, nil
}

func (r *moveRepository) SetBranch(ctx context.Context, moveID string, branchID *string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `UPDATE account_moves SET branch_id = $1, updated_at = NOW() WHERE id = $2`, branchID, moveID)
	if err != nil {
		return fmt.Errorf("failed to set accounting move branch: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return accounting.ErrMoveNotFound
	}
	return nil
}

// WriteLines applies vals to every line of the move in one statement. The
// analytic account is left untouched when vals carries none.
func (r *moveRepository) WriteLines(ctx context.Context, moveID string, vals accounting.LineValues) error {
	q := GetQuerier(ctx, r.db)

	tags := vals.AnalyticTagIDs
	if tags == nil {
		tags = []string{}
	}

	query := `
		UPDATE account_move_lines
		SET branch_id = $1,
			analytic_tag_ids = $2,
			analytic_account_id = COALESCE($3, analytic_account_id)
		WHERE move_id = $4
	`

	if _, err := q.Exec(ctx, query, vals.BranchID, tags, vals.AnalyticAccountID, moveID); err != nil {
		return fmt.Errorf("failed to write accounting move lines: %w", err)
	}
	return nil
}
