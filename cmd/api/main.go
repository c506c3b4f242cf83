package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/stocktrail/backend/internal/config"
	"github.com/stocktrail/backend/internal/db"
	apphttp "github.com/stocktrail/backend/internal/http"
	"github.com/stocktrail/backend/internal/http/handlers"
	"github.com/stocktrail/backend/internal/repositories"
	"github.com/stocktrail/backend/internal/services"
	"go.uber.org/zap"
)

func main() {
	log, _ := zap.NewProduction()
	defer log.Sync()

	cfg := config.Load()
	cfg.Validate(log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Database
	pool, err := db.NewPostgresPool(ctx, cfg.PostgresDSN, log)
	if err != nil {
		log.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer pool.Close()

	// Run migrations
	if err := db.RunMigrations(ctx, pool, cfg.MigrationsDir, log); err != nil {
		log.Fatal("failed to run migrations", zap.Error(err))
	}

	// Redis
	rdb, err := db.NewRedisClient(ctx, cfg.RedisURL, log)
	if err != nil {
		log.Fatal("failed to connect to redis", zap.Error(err))
	}
	defer rdb.Close()

	// Repositories
	userRepo := repositories.NewUserRepo(pool)
	categoryRepo := repositories.NewCategoryRepo(pool)
	itemRepo := repositories.NewItemRepo(pool)
	logRepo := repositories.NewChangeLogRepo(pool)

	// Services
	authService := services.NewAuthService(userRepo, cfg, log)
	categoryService := services.NewCategoryService(categoryRepo, log)
	itemService := services.NewItemService(pool, itemRepo, logRepo, log)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService, log)
	userHandler := handlers.NewUserHandler(userRepo, log)
	categoryHandler := handlers.NewCategoryHandler(categoryService, log)
	itemHandler := handlers.NewItemHandler(itemService, cfg, log)
	logHandler := handlers.NewChangeLogHandler(logRepo, log)

	// Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{"error": err.Error()})
		},
	})

	apphttp.SetupRouter(app, cfg, log, rdb, authHandler, userHandler, categoryHandler, itemHandler, logHandler)

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")
		cancel()
		_ = app.Shutdown()
	}()

	addr := fmt.Sprintf(":%s", cfg.APIPort)
	log.Info("starting API server", zap.String("addr", addr))
	if err := app.Listen(addr); err != nil {
		log.Fatal("server error", zap.Error(err))
	}
}
