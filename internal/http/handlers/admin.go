package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mechgenz/mechgenz-backend/internal/http/response"
	"github.com/mechgenz/mechgenz-backend/internal/services"
)

type AdminHandler struct {
	admins services.AdminService
}

func NewAdminHandler(admins services.AdminService) *AdminHandler {
	return &AdminHandler{admins: admins}
}

// POST /api/admin/login
// body: { "email": "...", "password": "..." }
func (ah *AdminHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	user, err := ah.admins.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Login successful",
		"admin":   user,
	})
}

// GET /api/admin/profile
func (ah *AdminHandler) GetProfile(c *gin.Context) {
	user, err := ah.admins.Profile(c.Request.Context())
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "admin": user})
}

// PUT /api/admin/profile
func (ah *AdminHandler) UpdateProfile(c *gin.Context) {
	var req services.UpdateProfileInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	user, err := ah.admins.UpdateProfile(c.Request.Context(), req)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Profile updated",
		"admin":   user,
	})
}
