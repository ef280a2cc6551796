package api

import (
	"github.com/gorilla/mux"

	"github.com/glowgo/scheduler/internal/api/recovery"
	"github.com/glowgo/scheduler/internal/store"
)

// NewRouter wires all HTTP routes over the injected engine and token store.
func NewRouter(analyzer Analyzer, tokens store.Tokens) *mux.Router {
	router := mux.NewRouter()

	router.Use(recovery.Middleware)

	healthHandler := NewHealthHandler()
	availabilityHandler := NewAvailabilityHandler(analyzer)
	tokenHandler := NewTokenHandler(tokens)

	// Health endpoint
	router.HandleFunc("/api/health", healthHandler.CheckHealth).Methods("GET")

	// Availability endpoints
	router.HandleFunc("/api/users/{userId}/availability/analyze", availabilityHandler.Analyze).Methods("POST")
	router.HandleFunc("/api/users/{userId}/freebusy", availabilityHandler.FreeBusy).Methods("GET")

	// Calendar connection endpoints
	router.HandleFunc("/api/users/{userId}/calendar/token", tokenHandler.Connect).Methods("PUT")
	router.HandleFunc("/api/users/{userId}/calendar/token", tokenHandler.Status).Methods("GET")
	router.HandleFunc("/api/users/{userId}/calendar/token", tokenHandler.Disconnect).Methods("DELETE")

	return router
}
