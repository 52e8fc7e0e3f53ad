package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/payslip-backend-go/internal/domain/payslip"
	"github.com/cmlabs-hris/payslip-backend-go/internal/pkg/database"
)

type inputTypeRepository struct {
	db *database.DB
}

func NewInputTypeRepository(db *database.DB) payslip.InputTypeRepository {
	return &inputTypeRepository{db: db}
}

func (r *inputTypeRepository) GetByCodes(ctx context.Context, codes []string) ([]payslip.InputType, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT id, code, name FROM payslip_input_types WHERE code = ANY($1) ORDER BY code`, codes)
	if err != nil {
		return nil, fmt.Errorf("failed to get payslip input types: %w", err)
	}
	defer rows.Close()

	var types []payslip.InputType
	for rows.Next() {
		var t payslip.InputType
		if err := rows.Scan(&t.ID, &t.Code, &t.Name); err != nil {
			return nil, fmt.Errorf("failed to scan payslip input type: %w", err)
		}
		types = append(types, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating payslip input types: %w", err)
	}

	return types, nil
}
