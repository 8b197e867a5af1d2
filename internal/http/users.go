package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/avoelk/pfennig/internal/auth"
	"github.com/avoelk/pfennig/internal/database/users"
	"github.com/avoelk/pfennig/internal/entities"
)

// UserStore defines database operations for account management.
type UserStore interface {
	CreateUser(username, passwordHash string) (*entities.User, error)
	GetUserByUsername(username string) (*entities.User, error)
	GetUserByCredentials(username, passwordHash string) (*entities.User, error)
	DeleteUser(id uint) error
}

type UsersController struct {
	store  UserStore
	hasher auth.PasswordHasher
	tokens *auth.TokenService
}

func NewUsersController(store UserStore, hasher auth.PasswordHasher, tokens *auth.TokenService) *UsersController {
	return &UsersController{store: store, hasher: hasher, tokens: tokens}
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Token    string `json:"token"` // consumed by the middleware, ignored here
}

// Signup creates a new account and returns a token for it.
// POST /signup
func (uc *UsersController) Signup(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}
	if req.Username == "" || req.Password == "" {
		respondBadRequest(c, "username and password are required")
		return
	}

	hash, err := uc.hasher.Hash(req.Password)
	if err != nil {
		respondStorageError(c, err)
		return
	}

	user, err := uc.store.CreateUser(req.Username, hash)
	if err != nil {
		// Duplicate usernames surface here via the unique index.
		respondStorageError(c, err)
		return
	}

	uc.respondWithToken(c, user.ID)
}

// Login checks credentials and returns a fresh token.
// POST /login
func (uc *UsersController) Login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	user, err := uc.authenticate(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			respondForbidden(c)
			return
		}
		respondStorageError(c, err)
		return
	}

	uc.respondWithToken(c, user.ID)
}

// DeleteUser removes the authenticated user's account. Outstanding tokens
// for the account are not revoked here; the middleware's existence check
// rejects them on next use.
// DELETE /deluser
func (uc *UsersController) DeleteUser(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	if err := uc.store.DeleteUser(userID); err != nil {
		respondStorageError(c, err)
		return
	}

	respondSuccess(c, "user deleted")
}

// authenticate finds the user matching the supplied credentials. With a
// deterministic hasher the lookup is a single (username, digest) query;
// with a salted one the stored hash is fetched by username and checked.
func (uc *UsersController) authenticate(username, password string) (*entities.User, error) {
	if uc.hasher.Deterministic() {
		hash, err := uc.hasher.Hash(password)
		if err != nil {
			return nil, err
		}
		return uc.store.GetUserByCredentials(username, hash)
	}

	user, err := uc.store.GetUserByUsername(username)
	if err != nil {
		return nil, err
	}
	if !uc.hasher.Verify(password, user.PasswordHash) {
		return nil, users.ErrNotFound
	}
	return user, nil
}

// respondWithToken issues a token for the user id and returns it as the
// raw response body, the format clients store verbatim.
func (uc *UsersController) respondWithToken(c *gin.Context, userID uint) {
	token, err := uc.tokens.Create(userID)
	if err != nil {
		respondStorageError(c, err)
		return
	}
	c.String(http.StatusOK, token)
}
