// Package markup provides escaping helpers for Telegram MarkdownV2.
package markup

import "strings"

var mdReplacer = strings.NewReplacer(
	"\\", "\\\\",
	"_", "\\_",
	"*", "\\*",
	"[", "\\[",
	"]", "\\]",
	"(", "\\(",
	")", "\\)",
	"~", "\\~",
	"`", "\\`",
	">", "\\>",
	"#", "\\#",
	"+", "\\+",
	"-", "\\-",
	"=", "\\=",
	"|", "\\|",
	"{", "\\{",
	"}", "\\}",
	".", "\\.",
	"!", "\\!",
)

var codeReplacer = strings.NewReplacer(
	"\\", "\\\\",
	"`", "\\`",
)

// EscapeForMarkdown escapes every MarkdownV2-significant character so
// that arbitrary text can be interpolated into a message without
// altering its structure.
func EscapeForMarkdown(src string) string {
	return mdReplacer.Replace(src)
}

// EscapeForCode escapes the characters significant inside `code` and
// ```pre``` entities.
func EscapeForCode(src string) string {
	return codeReplacer.Replace(src)
}
