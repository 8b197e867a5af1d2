package auth

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// ContextKeyUserID is the gin context key holding the resolved user id.
// The identity is scoped to the request context and never stored in
// shared process state, so concurrent requests cannot observe each
// other's identity.
const ContextKeyUserID = "auth_user_id"

// maxBodyBytes caps how much of a request body the middleware will
// buffer while looking for a token.
const maxBodyBytes = 1 << 20

// UserStore is the storage collaborator consulted after signature
// verification. A token for a deleted account must never resolve.
type UserStore interface {
	Exists(id uint) (bool, error)
}

// Middleware resolves the request identity before any handler runs.
type Middleware struct {
	tokens *TokenService
	users  UserStore
}

// NewMiddleware creates the authentication middleware.
func NewMiddleware(tokens *TokenService, users UserStore) *Middleware {
	return &Middleware{tokens: tokens, users: users}
}

// Handler returns the gin middleware. For every request it extracts an
// optional token from the JSON body (or a Bearer header), verifies it,
// confirms the user still exists, and publishes the identity to the
// request context. Requests without a token pass through with no
// identity; that is the signup/login path. Requests with a bad token are
// rejected here and never reach a handler.
func (m *Middleware) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := m.extractToken(c)
		if err != nil {
			// Unreadable body: treat as no token supplied.
			c.Next()
			return
		}

		if tokenString == "" {
			c.Next()
			return
		}

		claims, err := m.tokens.Verify(tokenString)
		if err != nil {
			// Expired, tampered and malformed all collapse to the
			// same response; the kind is only kept server-side.
			log.Printf("Token rejected: %v", err)
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}

		exists, err := m.users.Exists(claims.UserID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if !exists {
			// Valid signature, unexpired, but the account is gone.
			log.Printf("Token rejected: user %d no longer exists", claims.UserID)
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}

		c.Set(ContextKeyUserID, claims.UserID)
		c.Next()
	}
}

// extractToken pulls a token from the JSON body's "token" field, falling
// back to the Authorization header. The body is buffered and restored so
// handlers can still bind it.
func (m *Middleware) extractToken(c *gin.Context) (string, error) {
	if bearer := bearerToken(c.GetHeader("Authorization")); bearer != "" {
		return bearer, nil
	}

	if c.Request.Body == nil {
		return "", nil
	}

	raw, err := io.ReadAll(io.LimitReader(c.Request.Body, maxBodyBytes))
	c.Request.Body.Close()
	c.Request.Body = io.NopCloser(bytes.NewReader(raw))
	if err != nil {
		return "", err
	}

	var body struct {
		Token string `json:"token"`
	}
	// A missing, empty or non-object body means no token was supplied.
	if err := json.Unmarshal(raw, &body); err != nil {
		return "", nil
	}

	return body.Token, nil
}

func bearerToken(header string) string {
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}

// GetUserID retrieves the authenticated user's id from the context. The
// second return is false when the request carried no token.
func GetUserID(c *gin.Context) (uint, bool) {
	if id, exists := c.Get(ContextKeyUserID); exists {
		if userID, ok := id.(uint); ok {
			return userID, true
		}
	}
	return 0, false
}
