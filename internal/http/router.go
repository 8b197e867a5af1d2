package http

import (
	"github.com/gin-gonic/gin"

	"github.com/avoelk/pfennig/internal/auth"
	"github.com/avoelk/pfennig/internal/database"
)

// RouterConfig holds all dependencies needed to build the router.
type RouterConfig struct {
	Database       *database.Database
	UserStore      UserStore
	PaymentStore   PaymentStore
	AuthMiddleware *auth.Middleware
	PasswordHasher auth.PasswordHasher
	TokenService   *auth.TokenService
	Version        string
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// Identity resolution runs in front of every route. Signup and login
	// pass through with no identity; everything else that mutates state
	// checks the resolved identity in its handler.
	router.Use(cfg.AuthMiddleware.Handler())

	healthController := NewHealthController(cfg.Database, cfg.Version)
	router.GET("/health", healthController.Status)

	usersController := NewUsersController(cfg.UserStore, cfg.PasswordHasher, cfg.TokenService)
	router.POST("/signup", usersController.Signup)
	router.POST("/login", usersController.Login)
	router.DELETE("/deluser", usersController.DeleteUser)

	paymentsController := NewPaymentsController(cfg.PaymentStore)
	router.GET("/payments", paymentsController.ListPayments)
	router.POST("/payments", paymentsController.AddPayments)
	router.DELETE("/payments", paymentsController.DeletePayments)

	return router
}
