package controllers

import (
	"net/http"
	"time"

	"nutritrack/services"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

type RealtimeController struct {
	RT     *services.RealtimeHub
	Alerts *services.AlertBus
}

func NewRealtimeController(rt *services.RealtimeHub, alerts *services.AlertBus) *RealtimeController {
	return &RealtimeController{RT: rt, Alerts: alerts}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// GET /api/realtime/ws streams meal.* and alert.created events for the caller.
func (rc *RealtimeController) EventsWS(c *gin.Context) {
	uid, ok := mustUser(c)
	if !ok {
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	cl := &services.WSClient{UserID: uid, Conn: conn}
	rc.RT.Register(cl)

	done := make(chan struct{})
	go func() {
		t := time.NewTicker(25 * time.Second)
		defer t.Stop()
		for {
			select {
			case <-done:
				return
			case <-t.C:
				if err := cl.WriteMessage(websocket.PingMessage, nil); err != nil {
					return
				}
			}
		}
	}()

	// read loop ends on client close/error → unregister
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			close(done)
			rc.RT.Unregister(cl)
			return
		}
	}
}

// GET /api/alerts
func (rc *RealtimeController) ListAlerts(c *gin.Context) {
	uid, ok := mustUser(c)
	if !ok {
		return
	}
	alerts, err := rc.Alerts.List(c.Request.Context(), uid)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, alerts)
}
