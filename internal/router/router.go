// Package router wires handlers and middleware into the HTTP engine.
package router

import (
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "fintrack/internal/docs" // Import swagger docs
	"fintrack/internal/handlers"
	"fintrack/internal/middleware"
	"fintrack/internal/models"
	"fintrack/internal/security"
	"fintrack/internal/services"
)

// Deps carries everything the routes need. main builds it once.
type Deps struct {
	ProjectName string
	DB          handlers.Pinger

	Users         services.UserServicer
	Transactions  services.TransactionServicer
	Budgets       services.BudgetServicer
	Goals         services.GoalServicer
	Notifications services.NotificationServicer
	Reports       services.ReportServicer
	Audit         services.AuditServicer

	Tokens   *security.TokenService
	TokenTTL time.Duration
	Rates    handlers.RateSource
}

// New returns a gin engine serving the whole API.
func New(d Deps) *gin.Engine {
	authHandler := handlers.NewAuthHandler(d.Users, d.Audit, d.Tokens, d.TokenTTL)
	userHandler := handlers.NewUserHandler(d.Users, d.Audit)
	transactionHandler := handlers.NewTransactionHandler(d.Transactions, d.Audit)
	budgetHandler := handlers.NewBudgetHandler(d.Budgets, d.Audit)
	goalHandler := handlers.NewGoalHandler(d.Goals, d.Audit)
	notificationHandler := handlers.NewNotificationHandler(d.Notifications)
	reportHandler := handlers.NewReportHandler(d.Reports)
	insightsHandler := handlers.NewInsightsHandler(d.Rates)
	systemHandler := handlers.NewSystemHandler(d.ProjectName, d.DB)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.CORS())

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/health", systemHandler.Health)
	router.GET("/info", systemHandler.Info)

	// Public routes
	auth := router.Group("/auth")
	auth.POST("/signup", authHandler.Signup)
	auth.POST("/login", authHandler.Login)

	insights := router.Group("/insights")
	insights.GET("/tips", insightsHandler.Tips)
	insights.GET("/quotes", insightsHandler.Quotes)
	insights.GET("/exchange-rates", insightsHandler.ExchangeRates)
	insights.GET("/numbers", insightsHandler.ExtractNumbers)

	// Protected routes
	protected := router.Group("/")
	protected.Use(middleware.AuthMiddleware(d.Tokens, d.Users))

	users := protected.Group("/users")
	users.GET("/me", userHandler.GetMe)
	users.PUT("/me", userHandler.UpdateMe)
	users.DELETE("/me", userHandler.DeleteMe)
	collection(users, "GET", middleware.RequireRole(models.RoleAdmin), userHandler.ListUsers)

	transactions := protected.Group("/transactions")
	collection(transactions, "POST", transactionHandler.CreateTransaction)
	collection(transactions, "GET", transactionHandler.ListTransactions)
	transactions.GET("/date-range/transactions", transactionHandler.ListTransactionsByDateRange)
	transactions.GET("/:id", transactionHandler.GetTransactionByID)
	transactions.PUT("/:id", transactionHandler.UpdateTransaction)
	transactions.DELETE("/:id", transactionHandler.DeleteTransaction)

	budgets := protected.Group("/budgets")
	collection(budgets, "POST", budgetHandler.CreateBudget)
	collection(budgets, "GET", budgetHandler.ListBudgets)
	budgets.GET("/:id", budgetHandler.GetBudgetByID)
	budgets.PUT("/:id", budgetHandler.UpdateBudget)
	budgets.DELETE("/:id", budgetHandler.DeleteBudget)

	goals := protected.Group("/goals")
	collection(goals, "POST", goalHandler.CreateGoal)
	collection(goals, "GET", goalHandler.ListGoals)
	goals.GET("/:id", goalHandler.GetGoalByID)
	goals.PUT("/:id", goalHandler.UpdateGoal)
	goals.DELETE("/:id", goalHandler.DeleteGoal)

	notifications := protected.Group("/notifications")
	collection(notifications, "POST", notificationHandler.CreateNotification)
	collection(notifications, "GET", notificationHandler.ListNotifications)
	notifications.GET("/:id", notificationHandler.GetNotificationByID)
	notifications.PUT("/:id/read", notificationHandler.MarkRead)
	notifications.DELETE("/:id", notificationHandler.DeleteNotification)

	reports := protected.Group("/reports")
	reports.GET("/monthly", reportHandler.MonthlyTrend)
	reports.GET("/category", reportHandler.CategorySummary)
	reports.GET("/budgets", reportHandler.BudgetStatus)
	reports.GET("/goals", reportHandler.GoalProgress)
	reports.GET("/summary", reportHandler.Summary)
	reports.GET("/statement.pdf", reportHandler.Statement)

	protected.GET("/dashboard", reportHandler.Dashboard)

	return router
}

// collection registers handlers on both the bare and the slash-terminated
// group path, so clients never see a redirect.
func collection(g *gin.RouterGroup, method string, h ...gin.HandlerFunc) {
	g.Handle(method, "", h...)
	g.Handle(method, "/", h...)
}
