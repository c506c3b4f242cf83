package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stocktrail/backend/internal/http/dto"
	"github.com/stocktrail/backend/internal/services"
	"go.uber.org/zap"
)

type CategoryHandler struct {
	categoryService *services.CategoryService
	log             *zap.Logger
}

func NewCategoryHandler(categoryService *services.CategoryService, log *zap.Logger) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService, log: log}
}

func (h *CategoryHandler) CreateCategory(c *fiber.Ctx) error {
	var req dto.CreateCategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request"})
	}

	category, err := h.categoryService.Create(c.Context(), req.Name, req.Description)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.SuccessResponse{OK: true, Data: category})
}

func (h *CategoryHandler) ListCategories(c *fiber.Ctx) error {
	categories, err := h.categoryService.List(c.Context())
	if err != nil {
		h.log.Error("list categories failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal error"})
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: categories})
}

func (h *CategoryHandler) GetCategory(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid category id"})
	}

	category, err := h.categoryService.GetByID(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: category})
}

func (h *CategoryHandler) UpdateCategory(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid category id"})
	}

	var req dto.UpdateCategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request"})
	}

	category, err := h.categoryService.Update(c.Context(), id, services.UpdateCategoryInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: category})
}

func (h *CategoryHandler) DeleteCategory(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid category id"})
	}

	if err := h.categoryService.Delete(c.Context(), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true})
}
