package main

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"fintrack/internal/config"
	"fintrack/internal/database"
	"fintrack/internal/docs"
	"fintrack/internal/insights"
	"fintrack/internal/logger"
	"fintrack/internal/router"
	"fintrack/internal/security"
	"fintrack/internal/services"
	"fintrack/internal/validator"
)

// @title           Personal Finance Tracker API
// @version         1.0.0
// @description     Personal finance tracking backend with budgets, savings goals and reports.

// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the access token.

func main() {
	cfg, err := config.Load()
	if err != nil {
		// The logger is configured from cfg, so report with the default one.
		logger.Get().Fatalf("Fatal error: failed to load configuration: %v", err)
	}

	logger.Init(cfg.Env)
	defer logger.Sync()

	if err := run(cfg); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run(cfg *config.Config) error {
	log := logger.Get()

	if cfg.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	validator.Register()
	docs.SwaggerInfo.Title = cfg.ProjectName + " API"

	// Initialize database
	dbConfig, err := database.ParseURL(cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}
	defer dbManager.Close()

	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	tokens, err := security.NewTokenService(cfg.SecretKey, cfg.Algorithm)
	if err != nil {
		return fmt.Errorf("failed to create token service: %w", err)
	}

	// Initialize services
	db := dbManager.DB()
	engine := router.New(router.Deps{
		ProjectName:   cfg.ProjectName,
		DB:            dbManager,
		Users:         services.NewUserService(db, security.NewPasswordHasher()),
		Transactions:  services.NewTransactionService(db),
		Budgets:       services.NewBudgetService(db),
		Goals:         services.NewGoalService(db),
		Notifications: services.NewNotificationService(db),
		Reports:       services.NewReportService(db, cfg.ProjectName, nil),
		Audit:         services.NewAuditService(db),
		Tokens:        tokens,
		TokenTTL:      cfg.AccessTokenTTL(),
		Rates:         insights.NewRateFetcher(&http.Client{Timeout: cfg.HTTPTimeout}, cfg.ExchangeRateURL),
	})

	log.Infof("Starting %s on port %s", cfg.ProjectName, cfg.Port)
	log.Infof("Swagger documentation available at %s/swagger/index.html", cfg.APIBaseURL)
	return engine.Run(":" + cfg.Port)
}
