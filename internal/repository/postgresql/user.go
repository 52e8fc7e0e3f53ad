package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/payslip-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/payslip-backend-go/internal/pkg/database"
)

type userGroupRepository struct {
	db *database.DB
}

func NewUserGroupRepository(db *database.DB) user.PrivilegeChecker {
	return &userGroupRepository{db: db}
}

// HasGroup implements user.PrivilegeChecker.
func (r *userGroupRepository) HasGroup(ctx context.Context, userID string, group user.Group) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var ok bool
	err := q.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM user_groups WHERE user_id = $1 AND group_name = $2)
	`, userID, string(group)).Scan(&ok)
	if err != nil {
		return false, fmt.Errorf("failed to check user group %s: %w", group, err)
	}
	return ok, nil
}
