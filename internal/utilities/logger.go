package utilities

import (
	"log/slog"
	"os"

	"github.com/gin-gonic/gin"
)

// SetupLogger installs the process-wide slog logger. Release builds log JSON,
// everything else logs text.
func SetupLogger(level slog.Level) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if gin.Mode() == gin.ReleaseMode {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}
