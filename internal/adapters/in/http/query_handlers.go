package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"parceltrack/internal/core/application/usecases/queries"
	"parceltrack/internal/core/domain/model/audit"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// HistoryEntryResponse is one row of a parcel's transition timeline.
type HistoryEntryResponse struct {
	ID         string    `json:"id"`
	FromStatus string    `json:"fromStatus,omitempty"`
	ToStatus   string    `json:"toStatus"`
	ActorID    string    `json:"actorId"`
	Notes      string    `json:"notes,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

// AuditEntryResponse is one audit record in an audit log page.
type AuditEntryResponse struct {
	ID         string          `json:"id"`
	ActorID    string          `json:"actorId"`
	ActorRole  string          `json:"actorRole"`
	Action     string          `json:"action"`
	EntityType string          `json:"entityType"`
	EntityID   string          `json:"entityId"`
	PrevData   json.RawMessage `json:"prevData,omitempty"`
	NewData    json.RawMessage `json:"newData,omitempty"`
	ParcelID   *string         `json:"parcelId,omitempty"`
	CreatedAt  time.Time       `json:"createdAt"`
}

// AuditLogResponse is the body of GET /api/v1/audit.
type AuditLogResponse struct {
	Entries []AuditEntryResponse `json:"entries"`
	Total   int64                `json:"total"`
}

// GetParcelHistory handles GET /api/v1/parcels/:id/history - returns the
// parcel's transition timeline oldest first.
func (s *Server) GetParcelHistory(ctx echo.Context) error {
	parcelID, err := pathID(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	query, err := queries.NewGetParcelHistoryQuery(parcelID)
	if err != nil {
		return writeError(ctx, err)
	}

	entries, err := s.handlers.GetParcelHistory.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]HistoryEntryResponse, len(entries))
	for i, entry := range entries {
		response[i] = HistoryEntryResponse{
			ID:         entry.ID.String(),
			FromStatus: entry.FromStatus,
			ToStatus:   entry.ToStatus,
			ActorID:    entry.ActorID.String(),
			Notes:      entry.Notes,
			CreatedAt:  entry.CreatedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetAuditLog handles GET /api/v1/audit - returns one page of audit entries,
// newest first unless oldestFirst is set.
func (s *Server) GetAuditLog(ctx echo.Context) error {
	filter, err := auditFilterFromQuery(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	query, err := queries.NewGetAuditLogQuery(filter)
	if err != nil {
		return writeError(ctx, err)
	}

	page, err := s.handlers.GetAuditLog.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	response := AuditLogResponse{
		Entries: make([]AuditEntryResponse, len(page.Entries)),
		Total:   page.Total,
	}
	for i, entry := range page.Entries {
		item := AuditEntryResponse{
			ID:         entry.ID.String(),
			ActorID:    entry.ActorID.String(),
			ActorRole:  entry.ActorRole,
			Action:     entry.Action,
			EntityType: entry.EntityType,
			EntityID:   entry.EntityID.String(),
			PrevData:   entry.PrevData,
			NewData:    entry.NewData,
			CreatedAt:  entry.CreatedAt,
		}
		if entry.ParcelID != nil {
			linked := entry.ParcelID.String()
			item.ParcelID = &linked
		}
		response.Entries[i] = item
	}

	return ctx.JSON(http.StatusOK, response)
}

// auditFilterFromQuery parses the audit log filter from query parameters.
// Page numbers count from zero.
func auditFilterFromQuery(ctx echo.Context) (audit.Filter, error) {
	var filter audit.Filter

	if raw := ctx.QueryParam("actorId"); raw != "" {
		id, err := kernel.UUIDFromString(raw)
		if err != nil {
			return audit.Filter{}, errs.NewValueIsInvalidErrorWithCause("actorId", err)
		}
		filter.ActorID = &id
	}
	if raw := ctx.QueryParam("entityId"); raw != "" {
		id, err := kernel.UUIDFromString(raw)
		if err != nil {
			return audit.Filter{}, errs.NewValueIsInvalidErrorWithCause("entityId", err)
		}
		filter.EntityID = &id
	}
	if raw := ctx.QueryParam("parcelId"); raw != "" {
		id, err := kernel.UUIDFromString(raw)
		if err != nil {
			return audit.Filter{}, errs.NewValueIsInvalidErrorWithCause("parcelId", err)
		}
		filter.ParcelID = &id
	}

	filter.Action = ctx.QueryParam("action")
	filter.EntityType = ctx.QueryParam("entityType")

	if raw := ctx.QueryParam("from"); raw != "" {
		from, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return audit.Filter{}, errs.NewValueIsInvalidErrorWithCause("from", err)
		}
		filter.From = &from
	}
	if raw := ctx.QueryParam("to"); raw != "" {
		to, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return audit.Filter{}, errs.NewValueIsInvalidErrorWithCause("to", err)
		}
		filter.To = &to
	}

	if raw := ctx.QueryParam("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil {
			return audit.Filter{}, errs.NewValueIsInvalidErrorWithCause("page", err)
		}
		filter.Page = page
	}
	if raw := ctx.QueryParam("pageSize"); raw != "" {
		pageSize, err := strconv.Atoi(raw)
		if err != nil {
			return audit.Filter{}, errs.NewValueIsInvalidErrorWithCause("pageSize", err)
		}
		filter.PageSize = pageSize
	}

	filter.OldestFirst = ctx.QueryParam("oldestFirst") == "true"

	return filter, nil
}
