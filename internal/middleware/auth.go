package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stocktrail/backend/internal/auth"
	"github.com/stocktrail/backend/internal/config"
	"go.uber.org/zap"
)

const (
	CtxUserID   = "user_id"
	CtxUsername = "username"
)

func AuthMiddleware(cfg *config.Config, log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "missing authorization header"})
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenStr == authHeader {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid authorization format"})
		}

		claims, err := auth.ParseJWT(cfg.JWTSecret, tokenStr)
		if err != nil {
			log.Debug("jwt parse error", zap.Error(err))
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid or expired token"})
		}

		c.Locals(CtxUserID, claims.UserID)
		c.Locals(CtxUsername, claims.Username)

		return c.Next()
	}
}

// GetUserID returns the authenticated principal's ID. Zero UUID outside the
// auth middleware.
func GetUserID(c *fiber.Ctx) uuid.UUID {
	id, _ := c.Locals(CtxUserID).(uuid.UUID)
	return id
}

func GetUsername(c *fiber.Ctx) string {
	name, _ := c.Locals(CtxUsername).(string)
	return name
}
