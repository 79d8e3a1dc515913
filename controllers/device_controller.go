package controllers

import (
	"net/http"

	"nutritrack/services"

	"github.com/gin-gonic/gin"
)

// DeviceController registers phones for SNS push delivery.
type DeviceController struct {
	push *services.PushService
}

func NewDeviceController(push *services.PushService) *DeviceController {
	return &DeviceController{push: push}
}

// Register handles POST /api/devices {"platform":"android","token":"..."}.
// Registering the same token again refreshes its endpoint.
func (dc *DeviceController) Register(c *gin.Context) {
	uid, ok := mustUser(c)
	if !ok {
		return
	}

	var req services.RegisterDeviceReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	dev, err := dc.push.RegisterDevice(c.Request.Context(), uid, req.Platform, req.Token)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":           dev.ID,
		"platform":     dev.Platform,
		"enabled":      dev.Enabled,
		"endpoint_arn": dev.EndpointARN,
	})
}
