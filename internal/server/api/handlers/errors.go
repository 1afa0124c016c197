package handlers

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/billed/internal/common"
	"github.com/gin-gonic/gin"
)

// respondError maps a service error onto a status code and the
// {"error": "..."} envelope. Internal failures are not described to the
// caller; they are attached to the context for the logging middleware.
func respondError(c *gin.Context, err error) {
	_ = c.Error(err)

	switch {
	case errors.Is(err, common.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, common.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
	case errors.Is(err, common.ErrInvalidToken), errors.Is(err, common.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
	case errors.Is(err, common.ErrorNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Bill not found"})
	case errors.Is(err, common.ErrorAlreadyExists):
		c.JSON(http.StatusConflict, gin.H{"error": "Account already exists"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
