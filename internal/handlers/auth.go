package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/echoroom/echoroom-backend/internal/services"
)

type AuthHandler struct {
	authService services.AuthService
}

func NewAuthHandler(authService services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type registerRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
}

func (ah *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondMessage(c, http.StatusBadRequest, err.Error())
		return
	}
	user, tokens, err := ah.authService.RegisterUser(c.Request.Context(), req.Email, req.Username, req.Password)
	if err != nil {
		RespondMessage(c, http.StatusBadRequest, err.Error())
		return
	}
	RespondData(c, http.StatusCreated, gin.H{"user": user, "tokens": tokens})
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (ah *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondMessage(c, http.StatusBadRequest, err.Error())
		return
	}
	user, tokens, err := ah.authService.LoginUser(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		RespondMessage(c, http.StatusUnauthorized, err.Error())
		return
	}
	RespondData(c, http.StatusOK, gin.H{"user": user, "tokens": tokens})
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

func (ah *AuthHandler) Refresh(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondMessage(c, http.StatusBadRequest, err.Error())
		return
	}
	accessToken, err := ah.authService.RefreshUser(c.Request.Context(), req.RefreshToken)
	if err != nil {
		RespondMessage(c, http.StatusUnauthorized, err.Error())
		return
	}
	RespondData(c, http.StatusOK, gin.H{"accessToken": accessToken})
}

type logoutRequest struct {
	RefreshToken string `json:"refreshToken"`
}

func (ah *AuthHandler) Logout(c *gin.Context) {
	var req logoutRequest
	_ = c.ShouldBindJSON(&req)
	if err := ah.authService.LogoutUser(c.Request.Context(), req.RefreshToken); err != nil {
		RespondMessage(c, http.StatusBadRequest, err.Error())
		return
	}
	RespondMessage(c, http.StatusOK, "Logged out")
}
