package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mvaldesc/conecta-api/internal/common"
)

// respondError sends the unified error payload {"error": {"code", "message"}}.
func respondError(c *gin.Context, status int, code, message string) {
	c.JSON(status, gin.H{"error": gin.H{"code": code, "message": message}})
}

// respondUnauthorized carries the challenge header and a single generic
// message for every rejection reason.
func respondUnauthorized(c *gin.Context) {
	c.Header("WWW-Authenticate", "Bearer")
	respondError(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "invalid credentials")
}

// respondServiceError maps the sentinel errors services return to HTTP
// statuses. Anything unrecognized becomes a generic 500; the detail has
// already been logged where it happened.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, common.ErrInvalidCredentials), errors.Is(err, common.ErrorUnauthorized):
		respondUnauthorized(c)
	case errors.Is(err, common.ErrorForbidden):
		respondError(c, http.StatusForbidden, "FORBIDDEN", "insufficient permissions")
	case errors.Is(err, common.ErrInvalidSuperuserKey):
		respondError(c, http.StatusForbidden, "FORBIDDEN", "invalid superuser key")
	case errors.Is(err, common.ErrorNotFound):
		respondError(c, http.StatusNotFound, "NOT_FOUND", "resource not found")
	case errors.Is(err, common.ErrorAlreadyExists):
		respondError(c, http.StatusConflict, "ALREADY_EXISTS", "username or email already taken")
	case errors.Is(err, common.ErrUnsupportedImageType):
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "unsupported image type")
	case errors.Is(err, common.ErrImageTooLarge):
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "image exceeds the size limit")
	default:
		respondError(c, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "internal server error")
	}
}
