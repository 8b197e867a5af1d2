package http

import (
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avoelk/pfennig/internal/auth"
	"github.com/avoelk/pfennig/internal/database"
	"github.com/avoelk/pfennig/internal/database/users"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func setupUsersTest(t *testing.T) (*UsersController, *users.Repository, *auth.TokenService, func()) {
	t.Helper()

	dbPath := "./test_users_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"
	db, err := database.NewDatabase(dbPath)
	require.NoError(t, err)

	key, err := auth.GenerateKey()
	require.NoError(t, err)
	tokens := auth.NewTokenService(key, time.Hour)

	repo := users.NewRepository(db.DB)
	controller := NewUsersController(repo, auth.SHA3Hasher{}, tokens)

	cleanup := func() {
		db.Close()
		os.Remove(dbPath)
	}
	return controller, repo, tokens, cleanup
}

// identityMiddleware injects a resolved identity the way the auth
// middleware would, so controllers can be tested in isolation.
func identityMiddleware(userID uint) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(auth.ContextKeyUserID, userID)
		c.Next()
	}
}

func postJSON(router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest("POST", path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestUsersController_Signup(t *testing.T) {
	t.Run("creates user and returns token", func(t *testing.T) {
		controller, _, tokens, cleanup := setupUsersTest(t)
		defer cleanup()

		router := gin.New()
		router.POST("/signup", controller.Signup)

		w := postJSON(router, "/signup", `{"username":"alice","password":"pw"}`)

		require.Equal(t, http.StatusOK, w.Code)

		token := w.Body.String()
		assert.Len(t, strings.Split(token, "."), 3)

		claims, err := tokens.Verify(token)
		require.NoError(t, err)
		assert.NotZero(t, claims.UserID)
	})

	t.Run("duplicate username surfaces storage error", func(t *testing.T) {
		controller, _, _, cleanup := setupUsersTest(t)
		defer cleanup()

		router := gin.New()
		router.POST("/signup", controller.Signup)

		w := postJSON(router, "/signup", `{"username":"alice","password":"pw"}`)
		require.Equal(t, http.StatusOK, w.Code)

		w = postJSON(router, "/signup", `{"username":"alice","password":"other"}`)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Contains(t, w.Body.String(), "error")
	})

	t.Run("rejects missing credentials", func(t *testing.T) {
		controller, _, _, cleanup := setupUsersTest(t)
		defer cleanup()

		router := gin.New()
		router.POST("/signup", controller.Signup)

		w := postJSON(router, "/signup", `{"username":"alice"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestUsersController_Login(t *testing.T) {
	t.Run("valid credentials return fresh token", func(t *testing.T) {
		controller, _, tokens, cleanup := setupUsersTest(t)
		defer cleanup()

		router := gin.New()
		router.POST("/signup", controller.Signup)
		router.POST("/login", controller.Login)

		w := postJSON(router, "/signup", `{"username":"alice","password":"pw"}`)
		require.Equal(t, http.StatusOK, w.Code)

		w = postJSON(router, "/login", `{"username":"alice","password":"pw"}`)
		require.Equal(t, http.StatusOK, w.Code)

		claims, err := tokens.Verify(w.Body.String())
		require.NoError(t, err)
		assert.NotZero(t, claims.UserID)
	})

	t.Run("wrong password is forbidden", func(t *testing.T) {
		controller, _, _, cleanup := setupUsersTest(t)
		defer cleanup()

		router := gin.New()
		router.POST("/signup", controller.Signup)
		router.POST("/login", controller.Login)

		w := postJSON(router, "/signup", `{"username":"alice","password":"pw"}`)
		require.Equal(t, http.StatusOK, w.Code)

		w = postJSON(router, "/login", `{"username":"alice","password":"wrong"}`)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("unknown user is forbidden", func(t *testing.T) {
		controller, _, _, cleanup := setupUsersTest(t)
		defer cleanup()

		router := gin.New()
		router.POST("/login", controller.Login)

		w := postJSON(router, "/login", `{"username":"nobody","password":"pw"}`)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("bcrypt scheme authenticates by username then verify", func(t *testing.T) {
		_, repo, tokens, cleanup := setupUsersTest(t)
		defer cleanup()

		hasher := auth.BcryptHasher{Cost: 4}
		controller := NewUsersController(repo, hasher, tokens)

		hash, err := hasher.Hash("pw")
		require.NoError(t, err)
		_, err = repo.CreateUser("alice", hash)
		require.NoError(t, err)

		router := gin.New()
		router.POST("/login", controller.Login)

		w := postJSON(router, "/login", `{"username":"alice","password":"pw"}`)
		assert.Equal(t, http.StatusOK, w.Code)

		w = postJSON(router, "/login", `{"username":"alice","password":"wrong"}`)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestUsersController_DeleteUser(t *testing.T) {
	t.Run("deletes the authenticated user", func(t *testing.T) {
		controller, repo, _, cleanup := setupUsersTest(t)
		defer cleanup()

		user, err := repo.CreateUser("alice", "deadbeef")
		require.NoError(t, err)

		router := gin.New()
		router.Use(identityMiddleware(user.ID))
		router.DELETE("/deluser", controller.DeleteUser)

		req, _ := http.NewRequest("DELETE", "/deluser", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		exists, err := repo.Exists(user.ID)
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("requires identity", func(t *testing.T) {
		controller, _, _, cleanup := setupUsersTest(t)
		defer cleanup()

		router := gin.New()
		router.DELETE("/deluser", controller.DeleteUser)

		req, _ := http.NewRequest("DELETE", "/deluser", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}
