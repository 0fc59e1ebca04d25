package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Logger is the process-wide logger set up by Init.
var Logger = slog.Default()

// Init builds the JSON stdout logger. With enableOTel the records are also
// exported through the global OTel logger provider.
func Init(serviceName string, enableOTel bool) *slog.Logger {
	return initWithWriter(os.Stdout, serviceName, parseLevel(os.Getenv("LOG_LEVEL")), enableOTel)
}

func initWithWriter(w io.Writer, serviceName string, level slog.Level, enableOTel bool) *slog.Logger {
	stdout := NewTraceContextHandler(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))

	var handler slog.Handler = stdout
	if enableOTel {
		handler = NewMultiHandler(serviceName, stdout)
	}

	Logger = slog.New(handler).With("service", serviceName)
	slog.SetDefault(Logger)
	GlobalContext = NewContextLogger(Logger)

	return Logger
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// ParseLevel is exported for the CLI, which logs as text on stderr.
func ParseLevel(level string) slog.Level {
	return parseLevel(level)
}
