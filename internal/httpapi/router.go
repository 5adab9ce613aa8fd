package httpapi

import (
	"net/http"

	"github.com/gorilla/mux"
)

func NewRouter(h *Handler) http.Handler {
	r := mux.NewRouter()
	r.Use(recoverMiddleware)
	r.Use(corsMiddleware)
	r.Use(loggingMiddleware)

	r.HandleFunc("/api/log-error", h.LogError).Methods(http.MethodPost, http.MethodOptions)
	r.HandleFunc("/health", h.Health).Methods(http.MethodGet)

	return r
}
