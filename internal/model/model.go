// Package model defines the data structures used in the errorWatcher application, including the incoming report payload, the normalized ErrorReport and the platform display-label table.
package model

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"
)

// ReportRequest is the raw JSON body accepted by POST /api/log-error.
// Only Platform and ErrorMessage are required; everything else is
// optional and normalized at ingestion.
type ReportRequest struct {
	Platform       string          `json:"platform"`
	UserPhone      string          `json:"userPhone,omitempty"`
	UserID         string          `json:"userId,omitempty"`
	ErrorType      string          `json:"errorType,omitempty"`
	ErrorMessage   string          `json:"errorMessage"`
	StackTrace     string          `json:"stackTrace,omitempty"`
	URL            string          `json:"url,omitempty"`
	UserAgent      string          `json:"userAgent,omitempty"`
	AdditionalData json.RawMessage `json:"additionalData,omitempty"`
}

// ErrorReport is one normalized incident. It is constructed once per
// accepted request, formatted, dispatched and then discarded.
type ErrorReport struct {
	ID           string
	Platform     string
	UserPhone    string
	UserID       string
	Device       string
	OSVersion    string
	ErrorType    string
	ErrorMessage string
	StackTrace   string
	Timestamp    time.Time
	URL          string
	UserAgent    string
	// AdditionalData keeps the caller's bytes verbatim so that
	// rendering preserves the original key order.
	AdditionalData json.RawMessage
}

const (
	DefaultUserPhone = "not specified"
	DefaultErrorType = "Runtime Error"
)

// HasAdditionalData reports whether the additional-data mapping is
// present and non-empty. An empty object, null or whitespace counts
// as absent.
func (r ErrorReport) HasAdditionalData() bool {
	raw := bytes.TrimSpace(r.AdditionalData)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return false
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		// Not valid JSON, render as-is rather than dropping it.
		return true
	}
	return buf.String() != "{}" && buf.String() != "[]"
}

// FallbackPlatformLabel is used for platform identifiers missing from
// the label table. The platform line is always rendered, never omitted.
const FallbackPlatformLabel = "❓ Unknown Platform"

// PlatformLabels maps platform identifiers to display labels.
type PlatformLabels map[string]string

// DefaultPlatformLabels returns the built-in platform table. Entries
// can be extended or overridden through configuration.
func DefaultPlatformLabels() PlatformLabels {
	return PlatformLabels{
		"bot":      "🤖 Telegram Bot",
		"mini-app": "📱 Mini App (Telegram)",
		"web":      "🌐 Web Site",
	}
}

// Label resolves a platform identifier to its display label. Unknown
// identifiers get the fallback label, they are never rejected.
func (p PlatformLabels) Label(platform string) string {
	if label, ok := p[platform]; ok {
		return label
	}
	return FallbackPlatformLabel
}

// LabelsWithOverrides builds the platform table from the defaults plus
// configured "identifier=display label" pairs. Malformed pairs are
// skipped.
func LabelsWithOverrides(pairs []string) PlatformLabels {
	labels := DefaultPlatformLabels()
	for _, pair := range pairs {
		id, label, ok := strings.Cut(pair, "=")
		if !ok {
			continue
		}
		if id = strings.TrimSpace(id); id != "" {
			labels[id] = strings.TrimSpace(label)
		}
	}
	return labels
}
