package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"
	"github.com/stocktrail/backend/internal/config"
	"github.com/stocktrail/backend/internal/http/handlers"
	"github.com/stocktrail/backend/internal/middleware"
	"go.uber.org/zap"
)

func SetupRouter(
	app *fiber.App,
	cfg *config.Config,
	log *zap.Logger,
	rdb *redis.Client,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	categoryHandler *handlers.CategoryHandler,
	itemHandler *handlers.ItemHandler,
	logHandler *handlers.ChangeLogHandler,
) {
	// Global middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-Request-ID",
	}))
	app.Use(middleware.RequestIDMiddleware())
	app.Use(middleware.LoggerMiddleware(log))

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api/v1")
	api.Use(middleware.RateLimitMiddleware(rdb, cfg.RateLimitPerMinute, time.Minute))

	// Public: registration and login
	api.Post("/users", authHandler.Register)
	api.Post("/auth/login", authHandler.Login)

	// Protected endpoints
	protected := api.Group("", middleware.AuthMiddleware(cfg, log))

	// Users
	protected.Get("/me", userHandler.GetMe)
	protected.Get("/users", userHandler.ListUsers)
	protected.Get("/users/:id", userHandler.GetUser)
	protected.Delete("/users/:id", userHandler.DeleteUser)

	// Categories
	protected.Post("/categories", categoryHandler.CreateCategory)
	protected.Get("/categories", categoryHandler.ListCategories)
	protected.Get("/categories/:id", categoryHandler.GetCategory)
	protected.Put("/categories/:id", categoryHandler.UpdateCategory)
	protected.Patch("/categories/:id", categoryHandler.UpdateCategory)
	protected.Delete("/categories/:id", categoryHandler.DeleteCategory)

	// Items: reads are open to any authenticated user, writes are
	// owner-gated in the service. low_stock is registered before :id so it
	// does not get captured as an item id.
	protected.Post("/items", itemHandler.CreateItem)
	protected.Get("/items", itemHandler.ListItems)
	protected.Get("/items/low_stock", itemHandler.LowStock)
	protected.Get("/items/:id", itemHandler.GetItem)
	protected.Put("/items/:id", itemHandler.UpdateItem)
	protected.Patch("/items/:id", itemHandler.UpdateItem)
	protected.Delete("/items/:id", itemHandler.DeleteItem)

	// Audit log (read-only)
	protected.Get("/logs", logHandler.ListLogs)
	protected.Get("/logs/:id", logHandler.GetLog)
}
