package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/LuisSinastre/ServiceDesk-Backend/internal/auth"
	"github.com/LuisSinastre/ServiceDesk-Backend/internal/domain"
	"github.com/LuisSinastre/ServiceDesk-Backend/internal/repository"
	apperrors "github.com/LuisSinastre/ServiceDesk-Backend/pkg/util"
)

// AuthService authenticates users, provisions accounts and mints claims
// tokens. The token carries the full resolved identity (employee record, role,
// workflow slots, page ids) so request handling never re-reads the org tables.
type AuthService struct {
	accounts   repository.AccountRepository
	tokens     *auth.TokenManager
	bcryptCost int
}

// AuthDependencies bundles collaborators for AuthService.
type AuthDependencies struct {
	AccountRepo  repository.AccountRepository
	TokenManager *auth.TokenManager
	BcryptCost   int
}

// NewAuthService constructs the service.
func NewAuthService(deps AuthDependencies) *AuthService {
	return &AuthService{
		accounts:   deps.AccountRepo,
		tokens:     deps.TokenManager,
		bcryptCost: deps.BcryptCost,
	}
}

// LoginResult is the issued session.
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	Claims    *auth.Claims
}

// Login verifies credentials and resolves the caller's full profile. An
// unknown user yields NOT_FOUND; a bad password yields UNAUTHORIZED, so the
// two failure modes stay distinguishable to the client.
func (s *AuthService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, apperrors.NewValidationError("username and password required", nil)
	}

	cred, err := s.accounts.GetCredential(ctx, username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", map[string]any{"username": username})
		}
		return nil, apperrors.NewInternalError(err)
	}

	if err := auth.ComparePassword(cred.PasswordHash, password); err != nil {
		return nil, apperrors.NewUnauthorized("invalid credentials")
	}

	employee, err := s.accounts.GetEmployee(ctx, cred.Register)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("employee record", map[string]any{"register": cred.Register})
		}
		return nil, apperrors.NewInternalError(err)
	}

	profile, err := s.accounts.GetProfileForPosition(ctx, employee.Position)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("profile configuration", map[string]any{"position": employee.Position})
		}
		return nil, apperrors.NewInternalError(err)
	}

	pageIDs, err := s.accounts.ListPageIDs(ctx, profile.Role)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	claims := &auth.Claims{
		UserID:      employee.Register,
		Name:        employee.Name,
		Position:    employee.Position,
		Manager:     employee.Manager,
		Profile:     profile.Role,
		ApproverID:  profile.ApproverID,
		TreatmentID: profile.TreatmentID,
		PageIDs:     pageIDs,
	}

	token, expiresAt, err := s.tokens.GenerateToken(claims)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	return &LoginResult{Token: token, ExpiresAt: expiresAt, Claims: claims}, nil
}

// RegisterAccountInput describes a new account to provision. The position must
// already exist in the profile configuration; the role and workflow slots are
// derived from it at login time, never stored on the account.
type RegisterAccountInput struct {
	Register int64
	Username string
	Password string
	Name     string
	Position string
	Manager  string
}

// RegisterAccount provisions a credential plus its employee record. Restricted
// to the roles holding the registration page.
func (s *AuthService) RegisterAccount(ctx context.Context, claims *auth.Claims, input RegisterAccountInput) error {
	if claims.Profile != domain.RoleAdmin && claims.Profile != domain.RoleManager {
		return apperrors.NewForbidden("registration requires a manager or administrator profile")
	}

	input.Username = strings.TrimSpace(input.Username)
	input.Name = strings.TrimSpace(input.Name)
	input.Position = strings.TrimSpace(input.Position)
	if input.Register <= 0 || input.Username == "" || input.Password == "" || input.Name == "" || input.Position == "" {
		return apperrors.NewValidationError("register, username, password, name and position required", nil)
	}

	if _, err := s.accounts.GetProfileForPosition(ctx, input.Position); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewValidationError("position has no profile configuration", map[string]any{
				"position": input.Position,
			})
		}
		return apperrors.NewInternalError(err)
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return apperrors.NewInternalError(err)
	}

	err = s.accounts.CreateAccount(ctx,
		&domain.Credential{Register: input.Register, Username: input.Username, PasswordHash: hash},
		&domain.Employee{Register: input.Register, Name: input.Name, Position: input.Position, Manager: input.Manager},
	)
	if err != nil {
		return apperrors.MapError(err)
	}
	return nil
}
