package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/glowgo/scheduler/internal/api/respond"
	"github.com/glowgo/scheduler/internal/model"
	"github.com/glowgo/scheduler/internal/store"
)

type TokenHandler struct {
	tokens store.Tokens
}

func NewTokenHandler(tokens store.Tokens) *TokenHandler {
	return &TokenHandler{tokens: tokens}
}

// Connect handles PUT /api/users/{userId}/calendar/token. Reconnecting
// replaces the stored credential.
func (h *TokenHandler) Connect(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]
	if userID == "" {
		respond.WriteBadRequest(w, "userId required")
		return
	}

	var in struct {
		Provider    string `json:"provider"`
		AccessToken string `json:"accessToken"`
		TimeZone    string `json:"timeZone,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respond.WriteBadRequest(w, "invalid json")
		return
	}
	if in.Provider == "" || in.AccessToken == "" {
		respond.WriteBadRequest(w, "provider and accessToken required")
		return
	}
	if in.TimeZone != "" {
		if _, err := time.LoadLocation(in.TimeZone); err != nil {
			respond.WriteBadRequest(w, "timeZone must be an IANA zone name")
			return
		}
	}

	tok, err := h.tokens.Upsert(r.Context(), &model.CalendarToken{
		UserID:      userID,
		Provider:    in.Provider,
		AccessToken: in.AccessToken,
		TimeZone:    in.TimeZone,
	})
	if err != nil {
		respond.WriteInternalError(w, err.Error())
		return
	}
	respond.WriteJSON(w, http.StatusOK, tok)
}

// Status handles GET /api/users/{userId}/calendar/token. The credential
// itself is never echoed back.
func (h *TokenHandler) Status(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]
	if userID == "" {
		respond.WriteBadRequest(w, "userId required")
		return
	}

	tok, err := h.tokens.Get(r.Context(), userID)
	if errors.Is(err, model.ErrTokenNotFound) {
		respond.WriteJSON(w, http.StatusOK, map[string]interface{}{"connected": false})
		return
	}
	if err != nil {
		respond.WriteInternalError(w, err.Error())
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"connected": true,
		"provider":  tok.Provider,
		"timeZone":  tok.TimeZone,
	})
}

// Disconnect handles DELETE /api/users/{userId}/calendar/token.
func (h *TokenHandler) Disconnect(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]
	if userID == "" {
		respond.WriteBadRequest(w, "userId required")
		return
	}
	if err := h.tokens.Delete(r.Context(), userID); err != nil {
		respond.WriteInternalError(w, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
