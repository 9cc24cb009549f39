// Package router assembles the HTTP surface of the API.
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"spendwise/internal/cache"
	_ "spendwise/internal/docs" // Import swagger docs
	"spendwise/internal/handlers"
	"spendwise/internal/middleware"
	"spendwise/internal/services"
)

// Deps carries the process-scoped resources the router wires together.
type Deps struct {
	DB        *gorm.DB
	Tokens    *middleware.TokenManager
	UserCache *cache.UserCache
}

// New builds the gin engine with every route registered.
func New(deps Deps) *gin.Engine {
	userService := services.NewUserService(deps.DB)
	budgetService := services.NewBudgetService(deps.DB)
	spendingService := services.NewSpendingService(deps.DB)
	auditService := services.NewAuditService(deps.DB)

	authHandler := handlers.NewAuthHandler(userService, auditService, deps.Tokens)
	budgetHandler := handlers.NewBudgetHandler(budgetService, auditService)
	spendingHandler := handlers.NewSpendingHandler(spendingService, auditService)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.CORS())

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")

	// Public routes
	user := v1.Group("/user")
	user.POST("/signup", authHandler.Register)
	user.POST("/login", authHandler.Login)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware(deps.Tokens, userService, deps.UserCache))

	profile := protected.Group("/user")
	profile.PUT("/budget", budgetHandler.UpdateBudget)
	profile.GET("/budget/current", budgetHandler.GetCurrentBudget)
	profile.GET("/joinDate", budgetHandler.GetJoinDate)

	spending := protected.Group("/spending")
	spending.POST("", spendingHandler.CreateSpending)
	spending.GET("", spendingHandler.GetSpending)
	spending.GET("/range", spendingHandler.GetSpendingInRange)
	spending.GET("/primary-tag", spendingHandler.GetSpendingByPrimaryTag)
	spending.GET("/secondary-tag", spendingHandler.GetSpendingBySecondaryTag)
	spending.PUT("/:id", spendingHandler.UpdateSpending)
	spending.DELETE("/:id", spendingHandler.DeleteSpending)

	return router
}
