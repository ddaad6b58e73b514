package repository

import (
	"context"

	"github.com/LuisSinastre/ServiceDesk-Backend/internal/domain"
)

// AccountRepository resolves login credentials and the organizational records
// behind them.
type AccountRepository interface {
	CreateAccount(ctx context.Context, cred *domain.Credential, emp *domain.Employee) error
	GetCredential(ctx context.Context, username string) (*domain.Credential, error)
	GetEmployee(ctx context.Context, register int64) (*domain.Employee, error)
	GetProfileForPosition(ctx context.Context, position string) (*domain.ProfileConfig, error)
	ListPageIDs(ctx context.Context, role domain.Role) ([]int64, error)
}

type accountRepository struct {
	q Querier
}

// NewAccountRepository instantiates repository.
func NewAccountRepository(q Querier) AccountRepository {
	return &accountRepository{q: q}
}

// CreateAccount inserts the credential and its employee record in one
// statement so a failed provisioning never leaves a half-created account.
func (r *accountRepository) CreateAccount(ctx context.Context, cred *domain.Credential, emp *domain.Employee) error {
	const query = `
        WITH new_user AS (
            INSERT INTO users (register, username, password_hash) VALUES ($1,$2,$3)
        )
        INSERT INTO employees (register, name, position, manager) VALUES ($1,$4,$5,$6)`
	_, err := r.q.Exec(ctx, query,
		cred.Register,
		cred.Username,
		cred.PasswordHash,
		emp.Name,
		emp.Position,
		emp.Manager,
	)
	return err
}

func (r *accountRepository) GetCredential(ctx context.Context, username string) (*domain.Credential, error) {
	const query = `
        SELECT register, username, password_hash
        FROM users WHERE username=$1`

	var cred domain.Credential
	if err := r.q.QueryRow(ctx, query, username).Scan(
		&cred.Register,
		&cred.Username,
		&cred.PasswordHash,
	); err != nil {
		return nil, err
	}
	return &cred, nil
}

func (r *accountRepository) GetEmployee(ctx context.Context, register int64) (*domain.Employee, error) {
	const query = `
        SELECT register, name, position, manager
        FROM employees WHERE register=$1`

	var emp domain.Employee
	if err := r.q.QueryRow(ctx, query, register).Scan(
		&emp.Register,
		&emp.Name,
		&emp.Position,
		&emp.Manager,
	); err != nil {
		return nil, err
	}
	return &emp, nil
}

func (r *accountRepository) GetProfileForPosition(ctx context.Context, position string) (*domain.ProfileConfig, error) {
	const query = `
        SELECT position, profile, approver_id, treatment_id
        FROM profile_config WHERE position=$1`

	var cfg domain.ProfileConfig
	if err := r.q.QueryRow(ctx, query, position).Scan(
		&cfg.Position,
		&cfg.Role,
		&cfg.ApproverID,
		&cfg.TreatmentID,
	); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (r *accountRepository) ListPageIDs(ctx context.Context, role domain.Role) ([]int64, error) {
	const query = `SELECT page_id FROM page_roles WHERE profile=$1 ORDER BY page_id`
	rows, err := r.q.Query(ctx, query, role)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
