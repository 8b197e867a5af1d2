package http

import (
	"fmt"
	"net/http"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/steinfletcher/apitest"
	jsonpath "github.com/steinfletcher/apitest-jsonpath"
	"github.com/stretchr/testify/require"

	"github.com/avoelk/pfennig/internal/auth"
	"github.com/avoelk/pfennig/internal/database"
	"github.com/avoelk/pfennig/internal/database/payments"
	"github.com/avoelk/pfennig/internal/database/users"
)

// setupServer wires the full stack: real database, real middleware, real
// token service. The same construction path as the entrypoint.
func setupServer(t *testing.T, expiry time.Duration) (*gin.Engine, func()) {
	t.Helper()

	dbPath := "./test_e2e_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"
	db, err := database.NewDatabase(dbPath)
	require.NoError(t, err)

	key, err := auth.GenerateKey()
	require.NoError(t, err)

	tokens := auth.NewTokenService(key, expiry)
	userRepo := users.NewRepository(db.DB)
	paymentRepo := payments.NewRepository(db.DB)

	router := NewRouter(RouterConfig{
		Database:       db,
		UserStore:      userRepo,
		PaymentStore:   paymentRepo,
		AuthMiddleware: auth.NewMiddleware(tokens, userRepo),
		PasswordHasher: auth.SHA3Hasher{},
		TokenService:   tokens,
		Version:        "test",
	})

	cleanup := func() {
		db.Close()
		os.Remove(dbPath)
	}
	return router, cleanup
}

// signupFor creates an account through the API and returns its token.
func signupFor(t *testing.T, router *gin.Engine, username, password string) string {
	t.Helper()

	w := postJSON(router, "/signup", fmt.Sprintf(`{"username":%q,"password":%q}`, username, password))
	require.Equal(t, http.StatusOK, w.Code)

	token := w.Body.String()
	require.Len(t, strings.Split(token, "."), 3)
	return token
}

func TestEndToEnd_SignupLoginFlow(t *testing.T) {
	router, cleanup := setupServer(t, time.Hour)
	defer cleanup()

	signupFor(t, router, "alice", "pw")

	// Fresh login yields a new valid token
	w := postJSON(router, "/login", `{"username":"alice","password":"pw"}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, strings.Split(w.Body.String(), "."), 3)

	apitest.New().
		Handler(router).
		Post("/login").
		JSON(`{"username":"alice","password":"wrong"}`).
		Expect(t).
		Status(http.StatusForbidden).
		End()
}

func TestEndToEnd_PaymentsScopedPerUser(t *testing.T) {
	router, cleanup := setupServer(t, time.Hour)
	defer cleanup()

	aliceToken := signupFor(t, router, "alice", "pw")
	bobToken := signupFor(t, router, "bob", "pw")

	apitest.New().
		Handler(router).
		Post("/payments").
		JSON(fmt.Sprintf(`{"token":%q,"payments":[
			{"date":"2026-01-02","time":"09:00","amount":3.5,"category":"food","text":"coffee"},
			{"date":"2026-01-03","time":"19:30","amount":42,"category":"groceries","text":"weekly shopping"}
		]}`, aliceToken)).
		Expect(t).
		Status(http.StatusOK).
		Assert(jsonpath.Equal(`$.message`, "payments added")).
		End()

	apitest.New().
		Handler(router).
		Post("/payments").
		JSON(fmt.Sprintf(`{"token":%q,"payments":[
			{"date":"2026-02-01","time":"12:00","amount":100,"category":"tech","text":"keyboard"}
		]}`, bobToken)).
		Expect(t).
		Status(http.StatusOK).
		End()

	// Alice sees exactly her two records, never bob's
	apitest.New().
		Handler(router).
		Get("/payments").
		Header("Authorization", "Bearer "+aliceToken).
		Expect(t).
		Status(http.StatusOK).
		Assert(jsonpath.Len(`$.payments`, 2)).
		Assert(jsonpath.Equal(`$.payments[0].text`, "coffee")).
		Assert(jsonpath.Equal(`$.payments[1].category`, "groceries")).
		End()

	apitest.New().
		Handler(router).
		Get("/payments").
		Header("Authorization", "Bearer "+bobToken).
		Expect(t).
		Status(http.StatusOK).
		Assert(jsonpath.Len(`$.payments`, 1)).
		Assert(jsonpath.Equal(`$.payments[0].text`, "keyboard")).
		End()
}

func TestEndToEnd_DeleteUserInvalidatesToken(t *testing.T) {
	router, cleanup := setupServer(t, time.Hour)
	defer cleanup()

	token := signupFor(t, router, "alice", "pw")

	apitest.New().
		Handler(router).
		Delete("/deluser").
		JSON(fmt.Sprintf(`{"token":%q}`, token)).
		Expect(t).
		Status(http.StatusOK).
		Assert(jsonpath.Equal(`$.message`, "user deleted")).
		End()

	// The old token is unexpired and correctly signed, but the account
	// is gone: the existence check must refuse it.
	apitest.New().
		Handler(router).
		Get("/payments").
		Header("Authorization", "Bearer "+token).
		Expect(t).
		Status(http.StatusForbidden).
		End()

	// And the credentials no longer log in
	apitest.New().
		Handler(router).
		Post("/login").
		JSON(`{"username":"alice","password":"pw"}`).
		Expect(t).
		Status(http.StatusForbidden).
		End()
}

func TestEndToEnd_ExpiredTokenIsRejected(t *testing.T) {
	router, cleanup := setupServer(t, -time.Minute)
	defer cleanup()

	// Signup succeeds but the issued token is already past its expiry
	token := signupFor(t, router, "alice", "pw")

	apitest.New().
		Handler(router).
		Get("/payments").
		Header("Authorization", "Bearer "+token).
		Expect(t).
		Status(http.StatusForbidden).
		End()
}

func TestEndToEnd_Health(t *testing.T) {
	router, cleanup := setupServer(t, time.Hour)
	defer cleanup()

	apitest.New().
		Handler(router).
		Get("/health").
		Expect(t).
		Status(http.StatusOK).
		Assert(jsonpath.Equal(`$.status`, "healthy")).
		End()
}
