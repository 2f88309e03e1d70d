package main

import (
	"log"
	"net/http"
	"os"

	"taskapi/docs"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"taskapi/internal/auth"
	"taskapi/internal/cache"
	"taskapi/internal/config"
	"taskapi/internal/db"
	"taskapi/internal/handler"
	"taskapi/internal/model"
	"taskapi/internal/repository"
	"taskapi/internal/router"
	"taskapi/internal/service"
)

// @title Task Management API
// @version 1.0
// @description Multi-user task management API with JWT authentication and per-task ownership.
// @host localhost:8080
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()
	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = cfg.SwaggerHost
	}

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Drop tables if RESET_DB environment variable is set
	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, dropping all tables...")
		tables := []interface{}{
			&model.Task{},
			&model.User{},
		}
		for _, table := range tables {
			if err := gormDB.Migrator().DropTable(table); err != nil {
				log.Printf("Warning: Failed to drop table (may not exist): %v", err)
			}
		}
		log.Println("Tables dropped")
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Task{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	taskRepo := repository.NewTaskRepository(gormDB)

	// Initialize auth components
	hasher := auth.NewPasswordHasher()
	jwtService := auth.NewJWTService(cfg.JWTSecret, cfg.TokenTTL)
	identity := auth.NewIdentity(jwtService, userRepo)

	// Initialize services
	authService := service.NewAuthService(userRepo, hasher, jwtService)
	userService := service.NewUserService(userRepo, cacheClient)
	taskService := service.NewTaskService(taskRepo, cacheClient)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	taskHandler := handler.NewTaskHandler(taskService)

	// Register routes
	router.Register(
		e,
		identity,
		authHandler,
		userHandler,
		taskHandler,
	)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
