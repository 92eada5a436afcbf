package notify_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"parceltrack/internal/adapters/out/notify"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogNotifier_Notify(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	notifier := notify.NewLogNotifier(logger)

	parcelID := kernel.NewUUID()
	err := notifier.Notify(context.Background(), ports.Notification{
		RecipientID: kernel.NewUUID(),
		Title:       "Parcel stored",
		Message:     "Your parcel is ready for pickup or delivery",
		ParcelID:    &parcelID,
	})

	require.NoError(t, err)
	output := buf.String()
	assert.Contains(t, output, "Parcel stored")
	assert.Contains(t, output, parcelID.String())
	assert.NotContains(t, output, "deliveryId")
}
