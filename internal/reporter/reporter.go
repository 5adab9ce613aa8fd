// Package reporter is the bot-runtime client for the error ingestion
// endpoint. It builds the same payload shape as the browser reporters,
// nests bot-specific context under additionalData and never lets its
// own failures surface into the hosting application.
package reporter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"runtime"
	"runtime/debug"
	"sync"
	"time"

	"github.com/0x0BSoD/errorWatcher/internal/format"
	"github.com/0x0BSoD/errorWatcher/internal/model"
)

const (
	// maxCaptureStackLen caps stacks at the capture stage, before
	// transmission. The formatter applies its own, smaller cap.
	maxCaptureStackLen = 2000

	maxMessageTextLen = 100

	defaultErrorType = "Telegram Bot Error"
	requestTimeout   = 10 * time.Second
)

// Context carries per-event bot context attached to a report.
type Context struct {
	ChatID      int64
	Username    string
	MessageText string
	CommandName string
	UserID      string
	UserPhone   string
}

// telegramContext mirrors the browser reporters' additionalData shape.
// Field order here fixes the key order in the rendered notification.
type telegramContext struct {
	ChatID      int64  `json:"chatId,omitempty"`
	Username    string `json:"username,omitempty"`
	MessageText string `json:"messageText,omitempty"`
	CommandName string `json:"commandName,omitempty"`
}

type botInfo struct {
	Platform    string `json:"platform"`
	GoVersion   string `json:"goVersion"`
	Environment string `json:"environment"`
}

type additionalData struct {
	Type            string          `json:"type"`
	TelegramContext telegramContext `json:"telegramContext"`
	BotInfo         botInfo         `json:"botInfo"`
}

type Reporter struct {
	endpoint    string
	platform    string
	environment string
	client      *http.Client

	mu        sync.Mutex
	enabled   bool
	userID    string
	userPhone string
}

func New(endpoint, platform, environment string) *Reporter {
	return &Reporter{
		endpoint:    endpoint,
		platform:    platform,
		environment: environment,
		client:      &http.Client{Timeout: requestTimeout},
		enabled:     true,
	}
}

// SetEnabled toggles transmission without touching the hooks.
func (r *Reporter) SetEnabled(enabled bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.enabled = enabled
}

// UpdateUser stores a user-correlation identity attached to every
// following report that does not carry its own.
func (r *Reporter) UpdateUser(userID, userPhone string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if userID != "" {
		r.userID = userID
	}
	if userPhone != "" {
		r.userPhone = userPhone
	}
}

// ReportError sends one fault to the ingestion endpoint. All failures
// are swallowed: the reporter must not become a second source of
// faults on top of the one being reported. The return value only says
// whether the report was accepted.
func (r *Reporter) ReportError(ctx context.Context, reported error, evt Context) bool {
	if reported == nil {
		return false
	}

	stack := format.Truncate(string(debug.Stack()), maxCaptureStackLen)

	return r.send(ctx, defaultErrorType, reported.Error(), stack, evt)
}

// ReportPerformance sends a synthetic low-severity report with timing
// metrics, mirroring the browser reporters' page-load reports.
func (r *Reporter) ReportPerformance(ctx context.Context, operation string, elapsed time.Duration) bool {
	msg := fmt.Sprintf("slow operation: %s took %s", operation, elapsed)
	return r.send(ctx, "Performance Report", msg, "", Context{CommandName: operation})
}

func (r *Reporter) send(ctx context.Context, errType, errMessage, stack string, evt Context) bool {
	r.mu.Lock()
	enabled := r.enabled
	userID := evt.UserID
	if userID == "" {
		userID = r.userID
	}
	userPhone := evt.UserPhone
	if userPhone == "" {
		userPhone = r.userPhone
	}
	r.mu.Unlock()

	if !enabled {
		return false
	}

	if userPhone == "" && evt.Username != "" {
		userPhone = evt.Username
	}

	extra, err := json.Marshal(additionalData{
		Type: "bot",
		TelegramContext: telegramContext{
			ChatID:      evt.ChatID,
			Username:    evt.Username,
			MessageText: truncateText(evt.MessageText, maxMessageTextLen),
			CommandName: evt.CommandName,
		},
		BotInfo: botInfo{
			Platform:    "telegram",
			GoVersion:   runtime.Version(),
			Environment: r.environment,
		},
	})
	if err != nil {
		log.Printf("[ERROR] reporter: failed to marshal context: %v", err)
		return false
	}

	payload := model.ReportRequest{
		Platform:       r.platform,
		UserPhone:      userPhone,
		UserID:         userID,
		ErrorType:      errType,
		ErrorMessage:   errMessage,
		StackTrace:     stack,
		AdditionalData: extra,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		log.Printf("[ERROR] reporter: failed to marshal payload: %v", err)
		return false
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.endpoint, bytes.NewReader(body))
	if err != nil {
		log.Printf("[ERROR] reporter: failed to build request: %v", err)
		return false
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		log.Printf("[ERROR] reporter: failed to send report: %v", err)
		return false
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		log.Printf("[ERROR] reporter: endpoint returned %d", resp.StatusCode)
		return false
	}

	return true
}

// WithReporting runs op, reports any fault it returns and swallows it,
// yielding the zero value and false instead of propagating. The
// optional fallback is invoked with the fault before returning.
func WithReporting[T any](
	ctx context.Context,
	r *Reporter,
	evt Context,
	op func(ctx context.Context) (T, error),
	fallback func(err error),
) (T, bool) {
	result, err := op(ctx)
	if err == nil {
		return result, true
	}

	r.ReportError(ctx, err, evt)

	if fallback != nil {
		fallback(err)
	}

	var zero T
	return zero, false
}

func truncateText(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
