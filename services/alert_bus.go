package services

import (
	"context"
	"fmt"
	"log"

	"nutritrack/models"
)

// Pusher delivers a notification to a user's registered devices.
type Pusher interface {
	PushToUser(ctx context.Context, userID uint, title, body string, data map[string]string)
}

// AlertBus persists an alert, then fans it out over the realtime hub and
// push notifications. Both fan-out targets are optional.
type AlertBus struct {
	repo AlertRepository
	rt   *RealtimeHub
	push Pusher
}

func NewAlertBus(repo AlertRepository, rt *RealtimeHub, push Pusher) *AlertBus {
	return &AlertBus{repo: repo, rt: rt, push: push}
}

// Emit never fails the caller; delivery errors are logged.
func (b *AlertBus) Emit(ctx context.Context, userID uint, typ, message string) {
	if b == nil || b.repo == nil {
		return
	}
	a, err := b.repo.CreateAlert(ctx, models.Alert{UserID: userID, Type: typ, Message: message})
	if err != nil {
		log.Printf("alert persist user=%d: %v", userID, err)
		return
	}

	if b.rt != nil {
		b.rt.Broadcast(userID, map[string]any{
			"kind":  "alert.created",
			"alert": a,
		})
	}
	if b.push != nil {
		b.push.PushToUser(ctx, userID, "New Alert", message, map[string]string{
			"type": typ, "alertId": fmt.Sprintf("%d", a.ID),
		})
	}
}

func (b *AlertBus) List(ctx context.Context, userID uint) ([]models.Alert, error) {
	return b.repo.ListAlerts(ctx, userID)
}
