package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stocktrail/backend/internal/http/dto"
	"github.com/stocktrail/backend/internal/repositories"
	"go.uber.org/zap"
)

// ChangeLogHandler exposes the audit ledger read-only. There are no write
// endpoints: entries only come out of the item lifecycle.
type ChangeLogHandler struct {
	logRepo *repositories.ChangeLogRepo
	log     *zap.Logger
}

func NewChangeLogHandler(logRepo *repositories.ChangeLogRepo, log *zap.Logger) *ChangeLogHandler {
	return &ChangeLogHandler{logRepo: logRepo, log: log}
}

// ListLogs supports item, user and action filters plus timestamp ordering.
// An explicit item_id parameter overrides the generic item filter.
func (h *ChangeLogHandler) ListLogs(c *fiber.Ctx) error {
	filter := repositories.ChangeLogFilter{
		Ordering: c.Query("ordering"),
	}

	if v := c.Query("item"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid item filter"})
		}
		filter.ItemID = &id
	}
	if v := c.Query("item_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid item_id filter"})
		}
		filter.ItemID = &id
	}
	if v := c.Query("user"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid user filter"})
		}
		filter.UserID = &id
	}
	if v := c.Query("action"); v != "" {
		filter.Action = &v
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

	logs, err := h.logRepo.List(c.Context(), filter)
	if err != nil {
		h.log.Error("list change logs failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal error"})
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: logs})
}

func (h *ChangeLogHandler) GetLog(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid log id"})
	}

	entry, err := h.logRepo.GetByID(c.Context(), id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "log entry not found"})
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: entry})
}
