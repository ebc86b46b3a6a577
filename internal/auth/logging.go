package auth

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"sync"
)

var (
	authLoggerOnce sync.Once
	authLogger     *slog.Logger
)

// Auth attempt outcomes
const (
	AuthSuccess = "Success"
	AuthFail    = "Fail"
)

func getAuthLogger() *slog.Logger {
	authLoggerOnce.Do(func() {
		authLogger = slog.Default().With(slog.String("component", "auth"))
		if !strings.EqualFold(os.Getenv("LOGGING"), "true") {
			return
		}

		if err := os.MkdirAll("log", 0o750); err != nil {
			slog.Warn("auth log directory unavailable", slog.Any("error", err))
			return
		}
		f, err := os.OpenFile("log/auth.log", os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
		if err != nil {
			slog.Warn("auth log file unavailable", slog.Any("error", err))
			return
		}
		authLogger = slog.New(slog.NewJSONHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
	})
	return authLogger
}

// LogAuthAttempt records an authentication attempt. With LOGGING=true the
// record goes to log/auth.log, otherwise to the process logger.
// authType is Local, Google and so on; identifier is usually the email.
func LogAuthAttempt(level slog.Level, authType string, status string, identifier string, message string) {
	attrs := []slog.Attr{
		slog.String("auth_type", authType),
		slog.String("status", status),
	}
	if identifier != "" {
		attrs = append(attrs, slog.String("identifier", identifier))
	}
	if message != "" {
		attrs = append(attrs, slog.String("detail", message))
	}
	getAuthLogger().LogAttrs(context.Background(), level, "auth attempt", attrs...)
}
