package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/LuisSinastre/ServiceDesk-Backend/internal/api/dto"
	"github.com/LuisSinastre/ServiceDesk-Backend/internal/auth"
	"github.com/LuisSinastre/ServiceDesk-Backend/internal/service"
	apperrors "github.com/LuisSinastre/ServiceDesk-Backend/pkg/util"
)

// AuthHandler serves the login and account registration endpoints.
type AuthHandler struct {
	service *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{service: authService}
}

// Login POST /login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	result, err := h.service.Login(c.UserContext(), req.Username, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(dto.LoginResponse{
		Token:     result.Token,
		ExpiresAt: result.ExpiresAt,
		User: dto.UserInfo{
			Register:    result.Claims.UserID,
			Name:        result.Claims.Name,
			Position:    result.Claims.Position,
			Manager:     result.Claims.Manager,
			Profile:     result.Claims.Profile,
			ApproverID:  result.Claims.ApproverID,
			TreatmentID: result.Claims.TreatmentID,
			PageIDs:     result.Claims.PageIDs,
		},
	})
}

// RegisterAccount POST /register_user.
func (h *AuthHandler) RegisterAccount(c *fiber.Ctx) error {
	claims, ok := auth.ClaimsFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.RegisterAccountRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	err := h.service.RegisterAccount(c.UserContext(), claims, service.RegisterAccountInput{
		Register: req.Register,
		Username: req.Username,
		Password: req.Password,
		Name:     req.Name,
		Position: req.Position,
		Manager:  req.Manager,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": fiber.Map{"register": req.Register}})
}
