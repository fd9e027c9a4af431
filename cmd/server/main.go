package main

import (
	"fmt"
	"log"
	"os"

	"github.com/clubstack/backend/internal/config"
	"github.com/clubstack/backend/internal/handler"
	"github.com/clubstack/backend/internal/model"
	"github.com/clubstack/backend/internal/notify"
	"github.com/clubstack/backend/internal/router"
	"github.com/clubstack/backend/internal/service"
	"github.com/clubstack/backend/internal/sse"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func main() {
	// Load config
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	// Database
	db, err := gorm.Open(mysql.Open(cfg.Database.DSN()), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("connect database: %v", err)
	}

	// Auto migrate
	if err := db.AutoMigrate(
		&model.User{},
		&model.Project{},
		&model.Role{},
		&model.Application{},
		&model.Post{},
		&model.Comment{},
		&model.Like{},
		&model.Message{},
	); err != nil {
		log.Fatalf("auto migrate: %v", err)
	}

	// Redis
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	// Core components
	hub := sse.NewHub(rdb)
	notifier := notify.NewInboxNotifier(db, hub)

	// Services
	authService := service.NewAuthService(db, cfg.JWT.Secret, cfg.JWT.ExpireHours, cfg.Auth.BcryptCost)
	userService := service.NewUserService(db)
	projectService := service.NewProjectService(db)
	appService := service.NewApplicationService(db)
	postService := service.NewPostService(db)
	inboxService := service.NewInboxService(db, projectService)

	// Inject notifier
	userService.SetNotifier(notifier)
	appService.SetNotifier(notifier)
	inboxService.SetNotifier(notifier)

	// Handlers
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	projectHandler := handler.NewProjectHandler(projectService)
	appHandler := handler.NewApplicationHandler(appService)
	postHandler := handler.NewPostHandler(postService)
	inboxHandler := handler.NewInboxHandler(inboxService, hub)
	dashboardHandler := handler.NewDashboardHandler(db)

	// Gin engine
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()

	// Setup routes
	router.Setup(r, router.Deps{
		DB:                 db,
		JWTSecret:          cfg.JWT.Secret,
		CORSAllowOrigins:   cfg.CORS.AllowOrigins,
		AuthHandler:        authHandler,
		UserHandler:        userHandler,
		ProjectHandler:     projectHandler,
		ApplicationHandler: appHandler,
		PostHandler:        postHandler,
		InboxHandler:       inboxHandler,
		DashboardHandler:   dashboardHandler,
	})

	// Start server
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Server starting on %s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("server run: %v", err)
	}
}
