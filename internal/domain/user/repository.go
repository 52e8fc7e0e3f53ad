package user

import (
	"context"
)

// PrivilegeChecker answers whether the acting user belongs to a privilege group.
type PrivilegeChecker interface {
	HasGroup(ctx context.Context, userID string, group Group) (bool, error)
}
