package dto

import (
	"time"

	"github.com/LuisSinastre/ServiceDesk-Backend/internal/domain"
)

// LoginRequest payload.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RegisterAccountRequest payload for provisioning a new account.
type RegisterAccountRequest struct {
	Register int64  `json:"register"`
	Username string `json:"username"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Position string `json:"position"`
	Manager  string `json:"manager"`
}

// LoginResponse carries the signed token plus the resolved identity, so the
// client can render menus without decoding the JWT itself.
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	User      UserInfo  `json:"user"`
}

// UserInfo mirrors the token claims.
type UserInfo struct {
	Register    int64       `json:"register"`
	Name        string      `json:"name"`
	Position    string      `json:"position"`
	Manager     string      `json:"manager"`
	Profile     domain.Role `json:"profile"`
	ApproverID  int64       `json:"approver_id"`
	TreatmentID int64       `json:"treatment_id"`
	PageIDs     []int64     `json:"ids"`
}
