// Package httpapi implements the report ingestion endpoint and the
// health check.
package httpapi

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/0x0BSoD/errorWatcher/internal/devinfo"
	"github.com/0x0BSoD/errorWatcher/internal/format"
	"github.com/0x0BSoD/errorWatcher/internal/model"
	"github.com/0x0BSoD/errorWatcher/internal/notifier"
	"github.com/0x0BSoD/errorWatcher/internal/stats"
)

const (
	errInvalidBody    = "invalid request body"
	errRequiredFields = "required fields: platform, errorMessage"
	errDispatchFailed = "failed to dispatch error"
	errInternal       = "internal server error"
	msgRecorded       = "error recorded"
)

type apiResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

type healthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Service   string `json:"service"`
}

type Handler struct {
	formatter  *format.Formatter
	dispatcher notifier.Dispatcher
	tracker    *stats.Tracker
	service    string
}

func NewHandler(
	formatter *format.Formatter,
	dispatcher notifier.Dispatcher,
	tracker *stats.Tracker,
	service string,
) *Handler {
	return &Handler{
		formatter:  formatter,
		dispatcher: dispatcher,
		tracker:    tracker,
		service:    service,
	}
}

// LogError ingests one report: validate, normalize, format, dispatch.
// No dispatch is attempted for a report that fails validation.
func (h *Handler) LogError(w http.ResponseWriter, r *http.Request) {
	var req model.ReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, apiResponse{Success: false, Error: errInvalidBody})
		return
	}

	if strings.TrimSpace(req.Platform) == "" || strings.TrimSpace(req.ErrorMessage) == "" {
		writeJSON(w, http.StatusBadRequest, apiResponse{Success: false, Error: errRequiredFields})
		return
	}

	report := newReport(req)

	err := h.dispatcher.Dispatch(r.Context(), h.formatter.Format(report))
	h.tracker.Record(report, err == nil)
	if err != nil {
		log.Printf("[ERROR] report %s not dispatched: %v", report.ID, err)
		writeJSON(w, http.StatusInternalServerError, apiResponse{Success: false, Error: errDispatchFailed})
		return
	}

	log.Printf("[INFO] report %s dispatched: %s - %s", report.ID, report.Platform, report.ErrorType)
	writeJSON(w, http.StatusOK, apiResponse{Success: true, Message: msgRecorded})
}

// newReport normalizes a validated request. The timestamp is always
// server-assigned here, caller-supplied values are ignored.
func newReport(req model.ReportRequest) model.ErrorReport {
	info := devinfo.Resolve(req.UserAgent)

	report := model.ErrorReport{
		ID:             uuid.NewString(),
		Platform:       req.Platform,
		UserPhone:      req.UserPhone,
		UserID:         req.UserID,
		Device:         info.Device,
		OSVersion:      info.OSVersion,
		ErrorType:      req.ErrorType,
		ErrorMessage:   req.ErrorMessage,
		StackTrace:     req.StackTrace,
		Timestamp:      time.Now().UTC(),
		URL:            req.URL,
		UserAgent:      req.UserAgent,
		AdditionalData: req.AdditionalData,
	}

	if report.UserPhone == "" {
		report.UserPhone = model.DefaultUserPhone
	}
	if report.ErrorType == "" {
		report.ErrorType = model.DefaultErrorType
	}

	return report
}

// Health responds unconditionally, independent of dispatcher health.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:    "OK",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Service:   h.service,
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("[ERROR] failed to encode response: %v", err)
	}
}
