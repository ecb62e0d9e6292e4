package logger

import (
	"io"
	"log/slog"
	"os"
)

var Log = slog.Default()

func Init() {
	// JSON handler for production-ready logging
	InitWithWriter(os.Stdout, slog.LevelDebug)
}

// InitWithWriter points the global logger at w; tests pass a buffer
func InitWithWriter(w io.Writer, level slog.Level) {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: level,
	})
	Log = slog.New(handler)
}
