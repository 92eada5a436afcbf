package commands

import (
	"context"
	"log/slog"

	"parceltrack/internal/core/ports"
)

// notifyBestEffort sends a notification after the business transaction has
// committed. Failures are logged and swallowed: a lost notification never
// undoes a state change.
func notifyBestEffort(ctx context.Context, notifier ports.Notifier, notification ports.Notification) {
	if notifier == nil {
		return
	}

	if err := notifier.Notify(ctx, notification); err != nil {
		slog.Error("notification delivery failed",
			"recipient", notification.RecipientID.String(),
			"title", notification.Title,
			"error", err)
	}
}
