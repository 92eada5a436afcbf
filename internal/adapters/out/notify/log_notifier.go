// Package notify provides the outbound notification adapter. The current
// implementation writes structured log records; a real channel (email, push)
// can replace it behind the same port.
package notify

import (
	"context"
	"log/slog"

	"parceltrack/internal/core/ports"
)

// LogNotifier writes notifications to the structured log.
type LogNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier creates a notifier that records notifications via the logger.
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// Notify logs the notification. It never fails; delivery problems of a real
// channel must not propagate into the calling use case.
func (n *LogNotifier) Notify(ctx context.Context, notification ports.Notification) error {
	attrs := []any{
		"recipientId", notification.RecipientID.String(),
		"title", notification.Title,
		"message", notification.Message,
	}
	if notification.ParcelID != nil {
		attrs = append(attrs, "parcelId", notification.ParcelID.String())
	}
	if notification.DeliveryID != nil {
		attrs = append(attrs, "deliveryId", notification.DeliveryID.String())
	}

	n.logger.InfoContext(ctx, "notification", attrs...)
	return nil
}
