// Package auth provides authentication and authorization for the application.
//
// It covers the full identity pipeline: password hashing, the process-wide
// HMAC signing key, JWT issue/verify, and the middleware that resolves a
// request's identity before any handler runs.
//
// # Configuration
//
//	AUTH_SIGNING_KEY=<hex>       # HMAC key; a fresh key is generated if empty
//	AUTH_TOKEN_EXPIRY=1h         # Token lifetime
//	AUTH_PASSWORD_SCHEME=sha3    # "sha3" (deterministic digest) or "bcrypt"
//	AUTH_BCRYPT_COST=12          # bcrypt cost factor (bcrypt scheme only)
//
// With an empty AUTH_SIGNING_KEY the key lives only in process memory:
// restarting the server invalidates every previously issued token.
//
// # Usage
//
// Initialize in entrypoint:
//
//	key, err := auth.LoadOrGenerateKey(cfg.Auth.SigningKey)
//	tokens := auth.NewTokenService(key, cfg.Auth.TokenExpiry)
//	middleware := auth.NewMiddleware(tokens, userRepo)
//	router.Use(middleware.Handler())
//
// Extract the resolved identity in handlers:
//
//	userID, ok := auth.GetUserID(c)
package auth
