package auth

import (
	"github.com/gofiber/fiber/v2"

	apperrors "github.com/LuisSinastre/ServiceDesk-Backend/pkg/util"
)

// RequireApprover ensures the caller holds an approver slot.
func RequireApprover() fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, ok := ClaimsFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		if claims.ApproverID == 0 {
			return apperrors.NewForbidden("approver profile required")
		}
		return c.Next()
	}
}

// RequireHandler ensures the caller holds a treatment slot.
func RequireHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, ok := ClaimsFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		if claims.TreatmentID == 0 {
			return apperrors.NewForbidden("treatment profile required")
		}
		return c.Next()
	}
}
