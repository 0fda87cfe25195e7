package api

import (
	"os"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"backend/models"
)

// Broadcaster pushes events to the realtime channel the dashboard listens
// on. Delivery is best effort: a dead channel never blocks or fails the
// operation that produced the event.
type Broadcaster struct {
	httpClient *resty.Client
	baseURL    string
	channel    string
	logger     *zap.Logger
}

// NewBroadcaster reads BROADCAST_URL and BROADCAST_CHANNEL from the
// environment. With no URL configured Publish becomes a no-op.
func NewBroadcaster(logger *zap.Logger) *Broadcaster {
	return &Broadcaster{
		httpClient: resty.New().SetTimeout(5 * time.Second),
		baseURL:    os.Getenv("BROADCAST_URL"),
		channel:    os.Getenv("BROADCAST_CHANNEL"),
		logger:     logger,
	}
}

// Publish sends the event without waiting for the result.
func (b *Broadcaster) Publish(eventType string, payload interface{}) {
	if b.baseURL == "" {
		return
	}
	event := models.BroadcastEvent{
		Channel: b.channel,
		Type:    eventType,
		Payload: payload,
	}
	go func() {
		resp, err := b.httpClient.R().
			SetHeader("Content-Type", "application/json").
			SetBody(event).
			Post(b.baseURL)
		if err != nil {
			b.logger.Warn("broadcast failed", zap.String("type", eventType), zap.Error(err))
			return
		}
		if resp.IsError() {
			b.logger.Warn("broadcast rejected",
				zap.String("type", eventType),
				zap.Int("status", resp.StatusCode()),
			)
		}
	}()
}
