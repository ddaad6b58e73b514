package auth

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/LuisSinastre/ServiceDesk-Backend/internal/domain"
)

// TokenManager handles issuing and validating JWT tokens.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenManager builds a new manager.
func NewTokenManager(secret string, ttlMinutes int) *TokenManager {
	if ttlMinutes <= 0 {
		ttlMinutes = 60
	}
	return &TokenManager{secret: []byte(secret), ttl: time.Duration(ttlMinutes) * time.Minute}
}

// Claims is the decoded session payload: the caller's identity and workflow
// entitlements. A zero ApproverID/TreatmentID means the caller holds no such
// slot. Claims carry no mutation rights of their own.
type Claims struct {
	UserID      int64       `json:"user"`
	Name        string      `json:"name"`
	Position    string      `json:"position"`
	Manager     string      `json:"manager"`
	Profile     domain.Role `json:"profile"`
	ApproverID  int64       `json:"approver_id"`
	TreatmentID int64       `json:"treatment_id"`
	PageIDs     []int64     `json:"ids"`
	jwt.RegisteredClaims
}

// GenerateToken builds and signs a JWT for the authenticated employee.
func (tm *TokenManager) GenerateToken(claims *Claims) (string, time.Time, error) {
	expiresAt := time.Now().Add(tm.ttl)
	claims.RegisteredClaims = jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(expiresAt),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(tm.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// ParseToken validates signature and expiry and returns the claims.
func (tm *TokenManager) ParseToken(tokenStr string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return tm.secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}
