package telemetry

import (
	"log/slog"
	"os"
)

// InitSlog installs the default logger for every binary in this
// repo. debug also turns on request/response capture in
// InstrumentResty.
func InitSlog(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	slog.SetDefault(slog.New(handler))
}
