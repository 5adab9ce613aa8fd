package httpapi

import (
	"log"
	"net/http"
	"time"
)

// recoverMiddleware is the last-resort guard: any panic in the pipeline
// becomes a structured 500 response, detail stays in the server log.
func recoverMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if p := recover(); p != nil {
				log.Printf("[ERROR] panic while handling %s %s: %v", r.Method, r.URL.Path, p)
				writeJSON(w, http.StatusInternalServerError, apiResponse{Success: false, Error: errInternal})
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// corsMiddleware lets the browser-side reporters POST from any origin.
// Reports carry no credentials, so a wildcard is acceptable here.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(status int) {
	rec.status = status
	rec.ResponseWriter.WriteHeader(status)
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()

		next.ServeHTTP(rec, r)

		log.Printf("[INFO] %s %s -> %d (%s)", r.Method, r.URL.Path, rec.status, time.Since(start))
	})
}
