package service

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/LuisSinastre/ServiceDesk-Backend/internal/auth"
	"github.com/LuisSinastre/ServiceDesk-Backend/internal/domain"
)

type fakeAccountRepo struct {
	creds     map[string]*domain.Credential
	employees map[int64]*domain.Employee
	profiles  map[string]*domain.ProfileConfig
	pages     map[domain.Role][]int64
}

func (r *fakeAccountRepo) CreateAccount(_ context.Context, cred *domain.Credential, emp *domain.Employee) error {
	if _, exists := r.creds[cred.Username]; exists {
		return &pgconn.PgError{Code: "23505", ConstraintName: "users_username_key"}
	}
	if _, exists := r.employees[cred.Register]; exists {
		return &pgconn.PgError{Code: "23505", ConstraintName: "users_pkey"}
	}
	credCopy := *cred
	empCopy := *emp
	r.creds[cred.Username] = &credCopy
	r.employees[emp.Register] = &empCopy
	return nil
}

func (r *fakeAccountRepo) GetCredential(_ context.Context, username string) (*domain.Credential, error) {
	cred, ok := r.creds[username]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return cred, nil
}

func (r *fakeAccountRepo) GetEmployee(_ context.Context, register int64) (*domain.Employee, error) {
	emp, ok := r.employees[register]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return emp, nil
}

func (r *fakeAccountRepo) GetProfileForPosition(_ context.Context, position string) (*domain.ProfileConfig, error) {
	cfg, ok := r.profiles[position]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return cfg, nil
}

func (r *fakeAccountRepo) ListPageIDs(_ context.Context, role domain.Role) ([]int64, error) {
	return r.pages[role], nil
}

func newAuthEnv(t *testing.T) (*AuthService, *auth.TokenManager, *fakeAccountRepo) {
	t.Helper()
	hash, err := auth.HashPassword("s3cret!", bcrypt.MinCost)
	require.NoError(t, err)

	repo := &fakeAccountRepo{
		creds: map[string]*domain.Credential{
			"alice": {Register: 42, Username: "alice", PasswordHash: hash},
			"ghost": {Register: 66, Username: "ghost", PasswordHash: hash},
		},
		employees: map[int64]*domain.Employee{
			42: {Register: 42, Name: "Alice Souza", Position: "COMMERCIAL MANAGER", Manager: "Elisa Prado"},
		},
		profiles: map[string]*domain.ProfileConfig{
			"COMMERCIAL MANAGER": {Position: "COMMERCIAL MANAGER", Role: domain.RoleManager, ApproverID: 100},
		},
		pages: map[domain.Role][]int64{
			domain.RoleManager: {1, 2, 3},
		},
	}

	tokens := auth.NewTokenManager("test-secret", 60)
	svc := NewAuthService(AuthDependencies{
		AccountRepo:  repo,
		TokenManager: tokens,
		BcryptCost:   bcrypt.MinCost,
	})
	return svc, tokens, repo
}

func TestLoginIssuesTokenWithResolvedClaims(t *testing.T) {
	svc, tokens, _ := newAuthEnv(t)

	result, err := svc.Login(context.Background(), "alice", "s3cret!")
	require.NoError(t, err)
	require.NotEmpty(t, result.Token)

	assert.Equal(t, int64(42), result.Claims.UserID)
	assert.Equal(t, "Alice Souza", result.Claims.Name)
	assert.Equal(t, "COMMERCIAL MANAGER", result.Claims.Position)
	assert.Equal(t, "Elisa Prado", result.Claims.Manager)
	assert.Equal(t, domain.RoleManager, result.Claims.Profile)
	assert.Equal(t, int64(100), result.Claims.ApproverID)
	assert.Equal(t, int64(0), result.Claims.TreatmentID)
	assert.Equal(t, []int64{1, 2, 3}, result.Claims.PageIDs)

	parsed, err := tokens.ParseToken(result.Token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), parsed.UserID)
	assert.Equal(t, domain.RoleManager, parsed.Profile)
}

func TestLoginUnknownUser(t *testing.T) {
	svc, _, _ := newAuthEnv(t)

	_, err := svc.Login(context.Background(), "nobody", "s3cret!")
	assertDomainErrorCode(t, err, "NOT_FOUND")
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _, _ := newAuthEnv(t)

	_, err := svc.Login(context.Background(), "alice", "wrong")
	assertDomainErrorCode(t, err, "UNAUTHORIZED")
}

func TestLoginMissingEmployeeRecord(t *testing.T) {
	svc, _, _ := newAuthEnv(t)

	_, err := svc.Login(context.Background(), "ghost", "s3cret!")
	assertDomainErrorCode(t, err, "NOT_FOUND")
}

func TestLoginRequiresCredentials(t *testing.T) {
	svc, _, _ := newAuthEnv(t)

	_, err := svc.Login(context.Background(), "", "")
	assertDomainErrorCode(t, err, "VALIDATION_FAILED")
}

func adminClaims() *auth.Claims {
	return &auth.Claims{UserID: 9, Name: "Root", Profile: domain.RoleAdmin}
}

func newAccountInput() RegisterAccountInput {
	return RegisterAccountInput{
		Register: 91,
		Username: "fabio",
		Password: "initial-pass",
		Name:     "Fabio Costa",
		Position: "COMMERCIAL MANAGER",
		Manager:  "Gina Rocha",
	}
}

func TestRegisterAccountStoresHashedCredential(t *testing.T) {
	svc, _, repo := newAuthEnv(t)

	err := svc.RegisterAccount(context.Background(), adminClaims(), newAccountInput())
	require.NoError(t, err)

	cred := repo.creds["fabio"]
	require.NotNil(t, cred)
	assert.Equal(t, int64(91), cred.Register)
	assert.NotEqual(t, "initial-pass", cred.PasswordHash)
	assert.NoError(t, auth.ComparePassword(cred.PasswordHash, "initial-pass"))

	emp := repo.employees[91]
	require.NotNil(t, emp)
	assert.Equal(t, "Fabio Costa", emp.Name)
	assert.Equal(t, "Gina Rocha", emp.Manager)

	// the new account can log in right away
	result, err := svc.Login(context.Background(), "fabio", "initial-pass")
	require.NoError(t, err)
	assert.Equal(t, int64(91), result.Claims.UserID)
	assert.Equal(t, domain.RoleManager, result.Claims.Profile)
}

func TestRegisterAccountRequiresElevatedRole(t *testing.T) {
	svc, _, _ := newAuthEnv(t)

	claims := &auth.Claims{UserID: 42, Name: "Alice Souza", Profile: domain.RoleEmployee}
	err := svc.RegisterAccount(context.Background(), claims, newAccountInput())
	assertDomainErrorCode(t, err, "FORBIDDEN")
}

func TestRegisterAccountDuplicateUsername(t *testing.T) {
	svc, _, _ := newAuthEnv(t)

	input := newAccountInput()
	input.Username = "alice"
	err := svc.RegisterAccount(context.Background(), adminClaims(), input)
	assertDomainErrorCode(t, err, "CONFLICT")
}

func TestRegisterAccountUnknownPosition(t *testing.T) {
	svc, _, _ := newAuthEnv(t)

	input := newAccountInput()
	input.Position = "UNMAPPED POSITION"
	err := svc.RegisterAccount(context.Background(), adminClaims(), input)
	assertDomainErrorCode(t, err, "VALIDATION_FAILED")
}

func TestRegisterAccountValidatesInput(t *testing.T) {
	svc, _, _ := newAuthEnv(t)

	err := svc.RegisterAccount(context.Background(), adminClaims(), RegisterAccountInput{})
	assertDomainErrorCode(t, err, "VALIDATION_FAILED")
}
