// controllers/dev_controller.go
package controllers

import (
	"net/http"

	"nutritrack/services"

	"github.com/gin-gonic/gin"
)

// DevController exposes helpers that are only routed outside production.
type DevController struct {
	Alerts *services.AlertBus
}

func NewDevController(alerts *services.AlertBus) *DevController {
	return &DevController{Alerts: alerts}
}

type testAlertReq struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// POST /api/dev/alert emits an alert through the full path: store, websocket
// and push.
func (d *DevController) TestAlert(c *gin.Context) {
	uid, ok := mustUser(c)
	if !ok {
		return
	}

	var req testAlertReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Type == "" {
		req.Type = "warning"
	}
	if req.Message == "" {
		req.Message = "This is only a test."
	}

	d.Alerts.Emit(c.Request.Context(), uid, req.Type, req.Message)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
