package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/Werneck0live/shukatsu-tracker/internal/models"
)

// publishEvent nunca falha a request: erros do broker só vão para o log.
func (h *CompanyHandler) publishEvent(action string, c *models.Company) {
	if h.Pub == nil || c == nil {
		return
	}
	ev := models.NewCompanyEvent(action, c)
	body, err := json.Marshal(ev)
	if err != nil {
		slog.Error("event_marshal_error", "action", action, "id", c.ID, "err", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	err = h.Pub.Publish(ctx, body, amqp.Table{
		"action":     action,
		"company_id": c.ID,
		"name":       c.CompanyName,
		"timestamp":  ev.Timestamp.Format(time.RFC3339),
	})
	if err != nil {
		slog.Warn("event_publish_failed", "action", action, "id", c.ID, "err", err)
	}
}
