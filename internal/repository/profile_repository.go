package repository

import (
	"context"

	"github.com/LuisSinastre/ServiceDesk-Backend/internal/domain"
)

// ProfileRepository resolves workflow slot ids back to role names, used to
// label awaiting-approval statuses.
type ProfileRepository interface {
	RoleForApprover(ctx context.Context, approverID int64) (domain.Role, error)
}

type profileRepository struct {
	q Querier
}

// NewProfileRepository instantiates repository.
func NewProfileRepository(q Querier) ProfileRepository {
	return &profileRepository{q: q}
}

func (r *profileRepository) RoleForApprover(ctx context.Context, approverID int64) (domain.Role, error) {
	const query = `SELECT profile FROM profile_config WHERE approver_id=$1`
	var role domain.Role
	if err := r.q.QueryRow(ctx, query, approverID).Scan(&role); err != nil {
		return "", err
	}
	return role, nil
}
