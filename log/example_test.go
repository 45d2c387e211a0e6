package log_test

import (
	"context"
	"log/slog"
	"os"

	"github.com/ardnew/smartscript/log"
)

func Example_basic() {
	logger := log.Make(os.Stdout)
	logger.Info("render complete", slog.Int("bytes", 128))
}

func Example_configuration() {
	logger := log.Make(os.Stdout,
		log.WithLevel(log.LevelTrace),
		log.WithTimeLayout("RFC3339Nano"),
		log.WithCaller(true))

	logger.Trace("token", slog.String("kind", "name"))
}

func Example_textFormat() {
	logger := log.Make(os.Stdout, log.WithFormat(log.FormatText))
	logger.Info("parsed", slog.String("file", "index.tmpl"))
}

func Example_withContext() {
	type requestIDKey struct{}

	ctx := context.WithValue(context.Background(), requestIDKey{}, "req-789")

	logger := log.Make(os.Stdout).With(slog.String("request", "req-789"))
	logger.InfoContext(ctx, "executing template")
}
