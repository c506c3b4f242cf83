package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stocktrail/backend/internal/http/dto"
	"github.com/stocktrail/backend/internal/middleware"
	"github.com/stocktrail/backend/internal/repositories"
	"go.uber.org/zap"
)

type UserHandler struct {
	userRepo *repositories.UserRepo
	log      *zap.Logger
}

func NewUserHandler(userRepo *repositories.UserRepo, log *zap.Logger) *UserHandler {
	return &UserHandler{userRepo: userRepo, log: log}
}

func (h *UserHandler) GetMe(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	user, err := h.userRepo.GetByID(c.Context(), userID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "user not found"})
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: user})
}

func (h *UserHandler) ListUsers(c *fiber.Ctx) error {
	users, err := h.userRepo.List(c.Context())
	if err != nil {
		h.log.Error("list users failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal error"})
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: users})
}

func (h *UserHandler) GetUser(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid user id"})
	}

	user, err := h.userRepo.GetByID(c.Context(), id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "user not found"})
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: user})
}

// DeleteUser removes an account. The user's items cascade away at the store
// level; their audit entries stay behind with nulled references.
func (h *UserHandler) DeleteUser(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid user id"})
	}

	deleted, err := h.userRepo.Delete(c.Context(), id)
	if err != nil {
		h.log.Error("delete user failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal error"})
	}
	if !deleted {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "user not found"})
	}
	return c.JSON(dto.SuccessResponse{OK: true})
}
