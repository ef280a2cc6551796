package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/glowgo/scheduler/internal/api/respond"
	"github.com/glowgo/scheduler/internal/model"
)

// Analyzer is the engine surface the transport layer depends on.
type Analyzer interface {
	AnalyzeAvailability(ctx context.Context, userID, serviceType string, targetDate *time.Time) (*model.AnalysisResult, error)
	FreeBusy(ctx context.Context, userID string, timeMin, timeMax time.Time) ([]model.FreeBusyInterval, error)
}

type AvailabilityHandler struct {
	analyzer Analyzer
}

func NewAvailabilityHandler(a Analyzer) *AvailabilityHandler {
	return &AvailabilityHandler{analyzer: a}
}

const targetDateLayout = "2006-01-02"

// Analyze handles POST /api/users/{userId}/availability/analyze.
// A missing calendar connection is a successful analysis with
// hasCalendar=false, not an error status.
func (h *AvailabilityHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]
	if userID == "" {
		respond.WriteBadRequest(w, "userId required")
		return
	}

	var in struct {
		ServiceType string `json:"serviceType"`
		TargetDate  string `json:"targetDate,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respond.WriteBadRequest(w, "invalid json")
		return
	}
	if in.ServiceType == "" {
		respond.WriteBadRequest(w, "serviceType required")
		return
	}

	var targetDate *time.Time
	if in.TargetDate != "" {
		d, err := time.Parse(targetDateLayout, in.TargetDate)
		if err != nil {
			respond.WriteBadRequest(w, "targetDate must be YYYY-MM-DD")
			return
		}
		targetDate = &d
	}

	result, err := h.analyzer.AnalyzeAvailability(r.Context(), userID, in.ServiceType, targetDate)
	if err != nil {
		respond.WriteInternalError(w, err.Error())
		return
	}
	respond.WriteJSON(w, http.StatusOK, result)
}

// FreeBusy handles GET /api/users/{userId}/freebusy?timeMin=...&timeMax=...
// Both bounds are RFC 3339. Unlike Analyze, a missing calendar connection
// answers 404.
func (h *AvailabilityHandler) FreeBusy(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]
	if userID == "" {
		respond.WriteBadRequest(w, "userId required")
		return
	}

	timeMin, err := time.Parse(time.RFC3339, r.URL.Query().Get("timeMin"))
	if err != nil {
		respond.WriteBadRequest(w, "timeMin must be RFC 3339")
		return
	}
	timeMax, err := time.Parse(time.RFC3339, r.URL.Query().Get("timeMax"))
	if err != nil {
		respond.WriteBadRequest(w, "timeMax must be RFC 3339")
		return
	}
	if !timeMax.After(timeMin) {
		respond.WriteBadRequest(w, "timeMax must be after timeMin")
		return
	}

	busy, err := h.analyzer.FreeBusy(r.Context(), userID, timeMin, timeMax)
	if errors.Is(err, model.ErrTokenNotFound) {
		respond.WriteNotFound(w, "calendar not connected")
		return
	}
	if err != nil {
		respond.WriteInternalError(w, err.Error())
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{"busy": busy})
}
