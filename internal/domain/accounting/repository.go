package accounting

import "context"

type MoveRepository interface {
	Create(ctx context.Context, move Move) (Move, error)
	GetByID(ctx context.Context, id string) (Move, error)
	SetBranch(ctx context.Context, moveID string, branchID *string) error
	WriteLines(ctx context.Context, moveID string, vals LineValues) error
}
