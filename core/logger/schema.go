package logger

import "strings"

const (
	// LevelDebug represents the debug severity level name.
	LevelDebug = "DEBUG"
	// LevelInfo represents the info severity level name.
	LevelInfo = "INFO"
	// LevelWarn represents the warning severity level name.
	LevelWarn = "WARN"
	// LevelError represents the error severity level name.
	LevelError = "ERROR"
	// LevelFatal represents the fatal severity level name.
	LevelFatal = "FATAL"
)

var allowedLevels = map[string]string{
	"debug":   LevelDebug,
	"info":    LevelInfo,
	"warn":    LevelWarn,
	"warning": LevelWarn,
	"error":   LevelError,
	"fatal":   LevelFatal,
}

var allowedStatus = map[string]struct{}{
	"ok":        {},
	"fail":      {},
	"skip":      {},
	"retry":     {},
	"cancelled": {},
}

var allowedOutcome = map[string]struct{}{
	"ok":        {},
	"fail":      {},
	"ignored":   {},
	"cancelled": {},
}

func normalizeLevel(level string) string {
	if level == "" {
		return LevelInfo
	}
	if mapped, ok := allowedLevels[strings.ToLower(level)]; ok {
		return mapped
	}
	return strings.ToUpper(level)
}

func normalizeStatus(status string) (string, bool) {
	status = strings.ToLower(strings.TrimSpace(status))
	if status == "" {
		return "", false
	}
	_, ok := allowedStatus[status]
	return status, ok
}

func normalizeOutcome(outcome string) (string, bool) {
	outcome = strings.ToLower(strings.TrimSpace(outcome))
	if outcome == "" {
		return "", false
	}
	_, ok := allowedOutcome[outcome]
	return outcome, ok
}

var defaultKeyOrder = []string{
	"ts",
	"level",
	"component",
	"event",
	"status",
	"rid",
	"ts_unix_nano",
	"event_id",
	"user_id",
	"handler",
	"action",
	"outcome",
	"duration_ms",
	"payload",
	"face",
	"line",
	"category",
	"state",
	"mode",
	"listen",
	"http_code",
	"endpoint",
	"err",
	"err_code",
	"error_kind",
	"cause",
	"attempts",
	"backoff_ms",
	"sessions",
	"events",
}
