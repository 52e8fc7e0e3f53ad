package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/payslip-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/payslip-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

// GetByID implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		SELECT id, name, last_name, work_email, date_of_join, branch_id, created_at, updated_at
		FROM employees
		WHERE id = $1
	`

	var emp employee.Employee
	err := q.QueryRow(ctx, query, id).Scan(
		&emp.ID, &emp.Name, &emp.LastName, &emp.WorkEmail, &emp.DateOfJoin, &emp.BranchID, &emp.CreatedAt, &emp.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee with id %s: %w", id, err)
	}

	return emp, nil
}

// GetContractByID implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) GetContractByID(ctx context.Context, id string) (employee.Contract, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		SELECT id, employee_id, name, analytic_account_id, analytic_tag_ids, created_at, updated_at
		FROM contracts
		WHERE id = $1
	`

	var c employee.Contract
	err := q.QueryRow(ctx, query, id).Scan(
		&c.ID, &c.EmployeeID, &c.Name, &c.AnalyticAccountID, &c.AnalyticTagIDs, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Contract{}, employee.ErrContractNotFound
		}
		return employee.Contract{}, fmt.Errorf("failed to get contract with id %s: %w", id, err)
	}

	return c, nil
}
