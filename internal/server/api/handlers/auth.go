// Package handlers implements the gin handlers of the store REST API.
package handlers

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/billed/internal/common"
	"github.com/dmitrijs2005/billed/internal/server/models"
	"github.com/dmitrijs2005/billed/internal/server/services"
	"github.com/gin-gonic/gin"
)

// UserService is what the auth handler needs from the account logic.
type UserService interface {
	Register(ctx context.Context, email string, password []byte, userType string) (*models.User, error)
	Login(ctx context.Context, email string, password []byte) (*services.LoginResult, error)
}

// RestAuthHandler serves /auth.
type RestAuthHandler struct {
	userService UserService
}

func NewRestAuthHandler(userService UserService) *RestAuthHandler {
	return &RestAuthHandler{userService: userService}
}

type credentialsRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Type     string `json:"type"`
}

// LoginResponse is the body of a successful login.
type LoginResponse struct {
	JWT   string `json:"jwt"`
	Email string `json:"email"`
	Type  string `json:"type"`
}

// RegisterResponse is the body of a successful registration.
type RegisterResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Type  string `json:"type"`
}

// Register handles POST /auth/register.
func (h *RestAuthHandler) Register(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email and password are required"})
		return
	}

	pw := []byte(req.Password)
	defer common.WipeByteArray(pw)

	u, err := h.userService.Register(c.Request.Context(), req.Email, pw, req.Type)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, RegisterResponse{ID: u.ID, Email: u.Email, Type: u.Type})
}

// Login handles POST /auth/login.
func (h *RestAuthHandler) Login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email and password are required"})
		return
	}

	pw := []byte(req.Password)
	defer common.WipeByteArray(pw)

	res, err := h.userService.Login(c.Request.Context(), req.Email, pw)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, LoginResponse{JWT: res.Token, Email: res.Email, Type: res.Type})
}
