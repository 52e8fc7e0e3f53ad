package employee

import "context"

type EmployeeRepository interface {
	GetByID(ctx context.Context, id string) (Employee, error)
	GetContractByID(ctx context.Context, id string) (Contract, error)
}
