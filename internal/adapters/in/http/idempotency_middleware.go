package http

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/ports"
	"parceltrack/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

const (
	// HeaderIdempotencyKey carries the client-chosen request key.
	HeaderIdempotencyKey = "Idempotency-Key"

	idempotencyKeyMinLength = 16
	idempotencyKeyMaxLength = 64

	// IdempotencyTTL is how long a cached response stays replayable.
	IdempotencyTTL = 24 * time.Hour
)

// responseRecorder captures the response body while it streams to the client
// so a successful response can be cached for replay.
type responseRecorder struct {
	http.ResponseWriter
	body bytes.Buffer
}

func (r *responseRecorder) Write(b []byte) (int, error) {
	r.body.Write(b)
	return r.ResponseWriter.Write(b)
}

// IdempotencyMiddleware replays cached responses for repeated mutating
// requests carrying the same Idempotency-Key. Records are scoped by key,
// endpoint and method; requests without a key pass through untouched.
// Only successful (2xx) responses are cached.
func IdempotencyMiddleware(store ports.IdempotencyStore, logger *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			key := ctx.Request().Header.Get(HeaderIdempotencyKey)
			if key == "" {
				return next(ctx)
			}
			if len(key) < idempotencyKeyMinLength || len(key) > idempotencyKeyMaxLength {
				return writeError(ctx, errs.NewValueIsOutOfRangeError(
					HeaderIdempotencyKey, len(key),
					idempotencyKeyMinLength, idempotencyKeyMaxLength))
			}

			endpoint := ctx.Path()
			method := ctx.Request().Method

			cached, err := store.Get(ctx.Request().Context(), key, endpoint, method)
			if err == nil {
				return ctx.JSONBlob(cached.StatusCode, cached.ResponseBody)
			}
			if !errors.Is(err, errs.ErrObjectNotFound) {
				return writeError(ctx, err)
			}

			recorder := &responseRecorder{ResponseWriter: ctx.Response().Writer}
			ctx.Response().Writer = recorder

			if err = next(ctx); err != nil {
				return err
			}

			status := ctx.Response().Status
			if status < http.StatusOK || status >= http.StatusMultipleChoices {
				return nil
			}

			record := ports.IdempotencyRecord{
				Key:          key,
				UserID:       optionalActorID(ctx),
				Endpoint:     endpoint,
				Method:       method,
				StatusCode:   status,
				ResponseBody: recorder.body.Bytes(),
				ExpiresAt:    time.Now().UTC().Add(IdempotencyTTL),
			}

			// A concurrent request with the same key may have saved first.
			// The response already reached the client, so the race is benign.
			if saveErr := store.Save(ctx.Request().Context(), record); saveErr != nil {
				if errors.Is(saveErr, errs.ErrConflict) {
					logger.Info("idempotency record already saved",
						"key", key, "endpoint", endpoint, "method", method)
				} else {
					logger.Error("saving idempotency record failed",
						"key", key, "endpoint", endpoint, "method", method,
						"error", saveErr)
				}
			}

			return nil
		}
	}
}

func optionalActorID(ctx echo.Context) *kernel.UUID {
	id, err := kernel.UUIDFromString(ctx.Request().Header.Get(headerActorID))
	if err != nil {
		return nil
	}
	return &id
}
