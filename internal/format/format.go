// Package format renders a normalized error report into a Telegram
// MarkdownV2 message. Rendering is deterministic and side-effect-free:
// the same report value always produces byte-identical output.
package format

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/0x0BSoD/errorWatcher/internal/botkit/markup"
	"github.com/0x0BSoD/errorWatcher/internal/model"
)

const (
	// MaxStackTraceLen caps the stack-trace block at the formatting
	// stage. The client capture stage applies its own, larger cap.
	MaxStackTraceLen = 1000

	// TruncationMarker is appended whenever a stack trace was cut, so
	// truncation is always visible to the reader.
	TruncationMarker = "...\n[truncated]"

	timeLayout = "02.01.2006 15:04:05"
)

type Formatter struct {
	labels model.PlatformLabels
}

func New(labels model.PlatformLabels) *Formatter {
	return &Formatter{labels: labels}
}

// Format renders the report in a fixed line order. Optional fields are
// skipped entirely when absent; the platform line is always present,
// falling back to a generic label for unknown identifiers.
func (f *Formatter) Format(report model.ErrorReport) string {
	var sb strings.Builder

	sb.WriteString("🚨 *Error Report*\n\n")
	fmt.Fprintf(&sb, "📍 *Platform:* %s\n", markup.EscapeForMarkdown(f.labels.Label(report.Platform)))
	fmt.Fprintf(&sb, "📱 *User phone:* `%s`\n", markup.EscapeForCode(report.UserPhone))

	if report.UserID != "" {
		fmt.Fprintf(&sb, "🆔 *User ID:* `%s`\n", markup.EscapeForCode(report.UserID))
	}

	fmt.Fprintf(&sb, "💻 *Device:* %s\n", markup.EscapeForMarkdown(report.Device))
	fmt.Fprintf(&sb, "⚙️ *OS:* %s\n", markup.EscapeForMarkdown(report.OSVersion))
	fmt.Fprintf(&sb, "❌ *Error type:* %s\n", markup.EscapeForMarkdown(report.ErrorType))
	fmt.Fprintf(&sb, "🕐 *Time:* %s\n\n", markup.EscapeForMarkdown(report.Timestamp.Local().Format(timeLayout)))

	if report.URL != "" {
		fmt.Fprintf(&sb, "🔗 *URL:* `%s`\n\n", markup.EscapeForCode(report.URL))
	}

	fmt.Fprintf(&sb, "📝 *Error message:*\n`%s`\n\n", markup.EscapeForCode(report.ErrorMessage))

	if report.StackTrace != "" {
		stack := Truncate(report.StackTrace, MaxStackTraceLen)
		fmt.Fprintf(&sb, "🔍 *Stack trace:*\n```\n%s\n```\n\n", markup.EscapeForCode(stack))
	}

	if report.UserAgent != "" {
		fmt.Fprintf(&sb, "🌐 *User agent:*\n`%s`\n\n", markup.EscapeForCode(report.UserAgent))
	}

	if report.HasAdditionalData() {
		fmt.Fprintf(&sb, "📊 *Additional data:*\n```\n%s\n```\n", markup.EscapeForCode(prettyJSON(report.AdditionalData)))
	}

	return strings.TrimRight(sb.String(), "\n")
}

// Truncate cuts s to at most max characters, appending TruncationMarker
// when anything was removed. A string within the limit passes through
// unchanged.
func Truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + TruncationMarker
}

// prettyJSON re-indents the caller's bytes without decoding them, so
// the original key order survives into the rendered block.
func prettyJSON(raw json.RawMessage) string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return string(raw)
	}
	return buf.String()
}
