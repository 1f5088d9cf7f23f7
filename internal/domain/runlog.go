package domain

import (
	"strings"
	"time"
)

type LogKind string

const (
	LogInfo          LogKind = "info"
	LogProgress      LogKind = "progress"
	LogDetected      LogKind = "detected"
	LogNotDue        LogKind = "not_due"
	LogWarning       LogKind = "warning"
	LogSuccess       LogKind = "success"
	LogDone          LogKind = "done"
	LogLoginFailed   LogKind = "login_failed"
	LogLoginAttempt  LogKind = "login_attempt"
	LogCaptcha       LogKind = "captcha"
	LogCaptchaPassed LogKind = "captcha_passed"
	LogCaptchaFailed LogKind = "captcha_failed"
	LogMail          LogKind = "mail"
	LogError         LogKind = "error"
)

var logEmoji = map[LogKind]string{
	LogInfo:          "🌐",
	LogProgress:      "🔄",
	LogDetected:      "🔍",
	LogNotDue:        "✅",
	LogWarning:       "⚠️",
	LogSuccess:       "🎉",
	LogDone:          "🏁",
	LogLoginFailed:   "❗",
	LogLoginAttempt:  "🔑",
	LogCaptcha:       "🧩",
	LogCaptchaPassed: "✔️",
	LogCaptchaFailed: "❌",
	LogMail:          "📧",
	LogError:         "⚠️",
}

func (k LogKind) Emoji() string {
	if emoji, ok := logEmoji[k]; ok {
		return emoji
	}
	return logEmoji[LogInfo]
}

type LogEntry struct {
	At      time.Time
	Kind    LogKind
	Message string
}

func (e LogEntry) Text() string {
	return e.Kind.Emoji() + " " + e.Message
}

// RunLog is the ordered, human-readable trail of one invocation. It is only
// appended to by the goroutine driving the run.
type RunLog struct {
	entries []LogEntry
}

func (l *RunLog) Append(entry LogEntry) {
	l.entries = append(l.entries, entry)
}

func (l *RunLog) Entries() []LogEntry {
	out := make([]LogEntry, len(l.entries))
	copy(out, l.entries)
	return out
}

func (l *RunLog) Len() int {
	return len(l.entries)
}

// Text joins entries with blank lines, the layout used in notification bodies.
func (l *RunLog) Text() string {
	lines := make([]string, 0, len(l.entries))
	for _, entry := range l.entries {
		lines = append(lines, entry.Text())
	}
	return strings.Join(lines, "\n\n")
}
