package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stocktrail/backend/internal/config"
	"github.com/stocktrail/backend/internal/http/dto"
	"github.com/stocktrail/backend/internal/middleware"
	"github.com/stocktrail/backend/internal/repositories"
	"github.com/stocktrail/backend/internal/services"
	"go.uber.org/zap"
)

type ItemHandler struct {
	itemService *services.ItemService
	cfg         *config.Config
	log         *zap.Logger
}

func NewItemHandler(itemService *services.ItemService, cfg *config.Config, log *zap.Logger) *ItemHandler {
	return &ItemHandler{itemService: itemService, cfg: cfg, log: log}
}

func (h *ItemHandler) CreateItem(c *fiber.Ctx) error {
	var req dto.CreateItemRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request"})
	}

	actorID := middleware.GetUserID(c)
	item, err := h.itemService.Create(c.Context(), actorID, services.CreateItemInput{
		Name:        req.Name,
		Description: req.Description,
		Quantity:    req.Quantity,
		Price:       req.Price,
		CategoryID:  req.Category,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.SuccessResponse{OK: true, Data: item})
}

// ListItems is open to any authenticated principal, not just owners.
func (h *ItemHandler) ListItems(c *fiber.Ctx) error {
	filter := repositories.ItemFilter{
		Search:   c.Query("search"),
		Ordering: c.Query("ordering"),
	}

	if v := c.Query("category"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid category filter"})
		}
		filter.CategoryID = &id
	}
	if v := c.Query("price"); v != "" {
		p, err := decimal.NewFromString(v)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid price filter"})
		}
		filter.Price = &p
	}
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filter.Limit = n
		}
	}
	if v := c.Query("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filter.Offset = n
		}
	}

	items, err := h.itemService.List(c.Context(), filter)
	if err != nil {
		h.log.Error("list items failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal error"})
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: items})
}

// LowStock returns items below the threshold (default 10). A non-integer
// threshold is a 400, matching the contract rather than silently falling
// back.
func (h *ItemHandler) LowStock(c *fiber.Ctx) error {
	threshold := h.cfg.DefaultLowStockThreshold
	if v := c.Query("threshold"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "threshold must be an integer"})
		}
		threshold = n
	}

	items, err := h.itemService.ListLowStock(c.Context(), threshold)
	if err != nil {
		h.log.Error("low stock query failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal error"})
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: items})
}

func (h *ItemHandler) GetItem(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid item id"})
	}

	item, err := h.itemService.GetByID(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: item})
}

// UpdateItem serves both PUT and PATCH; absent fields are left untouched.
func (h *ItemHandler) UpdateItem(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid item id"})
	}

	var req dto.UpdateItemRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request"})
	}

	actorID := middleware.GetUserID(c)
	item, err := h.itemService.Update(c.Context(), id, actorID, services.UpdateItemInput{
		Name:        req.Name,
		Description: req.Description,
		Quantity:    req.Quantity,
		Price:       req.Price,
		CategoryID:  req.Category,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: item})
}

func (h *ItemHandler) DeleteItem(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid item id"})
	}

	actorID := middleware.GetUserID(c)
	if err := h.itemService.Delete(c.Context(), id, actorID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true})
}
