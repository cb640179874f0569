package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nexuscart/nexuscart/internal/middleware"
	"github.com/nexuscart/nexuscart/internal/models"
	"github.com/nexuscart/nexuscart/internal/services"
)

type AuthController struct {
	auth *services.AuthService
}

func NewAuthController(auth *services.AuthService) *AuthController {
	return &AuthController{auth: auth}
}

func (ac *AuthController) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	user, err := ac.auth.Register(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusCreated, user, "Account created")
}

func (ac *AuthController) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	user, err := ac.auth.Login(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, user, "")
}

func (ac *AuthController) Profile(c *gin.Context) {
	profile, err := ac.auth.Profile(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, profile, "")
}

func (ac *AuthController) UpdateProfile(c *gin.Context) {
	var req models.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	profile, err := ac.auth.UpdateProfile(c.Request.Context(), middleware.UserID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, profile, "Profile updated")
}

func (ac *AuthController) DeleteAccount(c *gin.Context) {
	var req models.DeleteAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	if err := ac.auth.DeleteAccount(c.Request.Context(), middleware.UserID(c), req.Password); err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, nil, "Account deleted")
}
