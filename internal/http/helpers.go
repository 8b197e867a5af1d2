package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/avoelk/pfennig/internal/auth"
)

// --- Response Types ---

// ErrorResponse is the standard error response format for all API errors.
type ErrorResponse struct {
	Error string `json:"error"`
}

// SuccessResponse is a standard success response.
type SuccessResponse struct {
	Message string `json:"message"`
}

// --- Response Helpers ---

// respondForbidden sends the uniform 403 response. Callers cannot tell an
// expired token from a tampered one or an unknown user.
func respondForbidden(c *gin.Context) {
	c.JSON(http.StatusForbidden, ErrorResponse{Error: "forbidden"})
}

// respondBadRequest sends a 400 Bad Request response.
func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: message})
}

// respondStorageError sends a 500 with the storage error text. The raw
// text is intentionally passed through; this service targets a private
// deployment where the operator reads these messages.
func respondStorageError(c *gin.Context, err error) {
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
}

// respondSuccess sends a 200 OK response with a message.
func respondSuccess(c *gin.Context, message string) {
	c.JSON(http.StatusOK, SuccessResponse{Message: message})
}

// requireUserID extracts the resolved identity from the request context.
// Responds 403 and returns false when the request carried no identity.
func requireUserID(c *gin.Context) (uint, bool) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		respondForbidden(c)
		return 0, false
	}
	return userID, true
}
