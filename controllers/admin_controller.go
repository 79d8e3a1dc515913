package controllers

import (
	"net/http"

	"nutritrack/services"

	"github.com/gin-gonic/gin"
)

type AdminController struct {
	Admin    *services.AdminService
	Settings *services.SettingsService
}

func NewAdminController(admin *services.AdminService, settings *services.SettingsService) *AdminController {
	return &AdminController{Admin: admin, Settings: settings}
}

// GET /api/admin/check
func (h *AdminController) Check(c *gin.Context) {
	uid, ok := mustUser(c)
	if !ok {
		return
	}
	isAdmin, err := h.Settings.IsAdmin(c.Request.Context(), uid)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"is_admin": isAdmin})
}

func (h *AdminController) Users(c *gin.Context) {
	users, err := h.Admin.ListUsers(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

func (h *AdminController) Analytics(c *gin.Context) {
	out, err := h.Admin.Analytics(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}
