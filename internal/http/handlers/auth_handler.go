package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/stocktrail/backend/internal/http/dto"
	"github.com/stocktrail/backend/internal/services"
	"go.uber.org/zap"
)

type AuthHandler struct {
	authService *services.AuthService
	log         *zap.Logger
}

func NewAuthHandler(authService *services.AuthService, log *zap.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, log: log}
}

// Register is the only open user operation; everything else requires auth.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterUserRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request"})
	}

	user, err := h.authService.Register(c.Context(), services.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(dto.SuccessResponse{OK: true, Data: user})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request"})
	}
	if req.Username == "" || req.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "username and password are required"})
	}

	token, user, err := h.authService.Login(c.Context(), req.Username, req.Password)
	if err != nil {
		// Credential failures come back as 401 rather than the generic 403.
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "invalid username or password"})
	}

	return c.JSON(dto.AuthResponse{Token: token, User: user})
}
