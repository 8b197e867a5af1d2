package entrypoint

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/avoelk/pfennig/internal/auth"
	"github.com/avoelk/pfennig/internal/config"
	"github.com/avoelk/pfennig/internal/database"
	"github.com/avoelk/pfennig/internal/database/payments"
	"github.com/avoelk/pfennig/internal/database/users"
	http_controllers "github.com/avoelk/pfennig/internal/http"
)

func Serve(router *gin.Engine, cfg *config.Config) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		fmt.Printf("Starting server at %s:%d\n", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// Graceful shutdown on SIGINT/SIGTERM.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}

	log.Println("Server exiting")
}

func Run(cfg *config.Config, version string) {
	log.Printf("Starting pfennig v%s", version)

	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	// The signing key must exist before the first request; a provider
	// failure aborts startup.
	key, ephemeral, err := auth.LoadOrGenerateKey(cfg.Auth.SigningKey)
	if err != nil {
		log.Fatalf("Failed to set up signing key: %v", err)
	}
	if ephemeral {
		log.Printf("Generated ephemeral signing key; tokens will not survive a restart (set AUTH_SIGNING_KEY to persist)")
	}

	hasher, err := auth.NewPasswordHasher(cfg.Auth)
	if err != nil {
		log.Fatalf("Failed to set up password hasher: %v", err)
	}

	tokenService := auth.NewTokenService(key, cfg.Auth.TokenExpiry)

	userRepo := users.NewRepository(db.DB)
	paymentRepo := payments.NewRepository(db.DB)

	authMiddleware := auth.NewMiddleware(tokenService, userRepo)

	router := http_controllers.NewRouter(http_controllers.RouterConfig{
		Database:       db,
		UserStore:      userRepo,
		PaymentStore:   paymentRepo,
		AuthMiddleware: authMiddleware,
		PasswordHasher: hasher,
		TokenService:   tokenService,
		Version:        version,
	})

	Serve(router, cfg)
}
