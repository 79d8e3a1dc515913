package controllers

import (
	"net/http"

	"nutritrack/services"

	"github.com/gin-gonic/gin"
)

type SettingsController struct {
	Settings *services.SettingsService
}

func NewSettingsController(settings *services.SettingsService) *SettingsController {
	return &SettingsController{Settings: settings}
}

func (h *SettingsController) Get(c *gin.Context) {
	uid, ok := mustUser(c)
	if !ok {
		return
	}
	st, err := h.Settings.GetSettings(c.Request.Context(), uid)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, st)
}

func (h *SettingsController) Update(c *gin.Context) {
	uid, ok := mustUser(c)
	if !ok {
		return
	}
	var p services.SettingsPatch
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	st, err := h.Settings.UpdateSettings(c.Request.Context(), uid, p)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, st)
}

type toggleReq struct {
	Enabled bool `json:"enabled"`
}

// POST /api/notifications/toggle
func (h *SettingsController) ToggleNotifications(c *gin.Context) {
	uid, ok := mustUser(c)
	if !ok {
		return
	}
	var req toggleReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	if _, err := h.Settings.UpdateSettings(c.Request.Context(), uid, services.SettingsPatch{Notifications: &req.Enabled}); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "notifications updated",
		"enabled": req.Enabled,
	})
}
