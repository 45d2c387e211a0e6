// Package log provides a simplified structured logging interface based on
// [log/slog].
//
// A zero-value [Logger] is valid and discards everything, so library code
// (such as the template engine in package lang) can accept a Logger through
// an option without forcing callers to configure one.
//
// # Basic Usage
//
//	logger := log.Make(os.Stderr)
//	logger.Info("render complete", slog.Int("bytes", n))
//
// # Configuration
//
// Configure the logger using functional options:
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelTrace),
//		log.WithFormat(log.FormatText),
//		log.WithTimeLayout("kitchen"),
//		log.WithCaller(true))
//
// # Levels
//
// In addition to the four [slog] levels, the package defines [LevelTrace]
// below [LevelDebug]. The lexer, parser and engine emit their per-token and
// per-node records at trace level.
//
// # Default Logger
//
// Package-level functions ([Info], [DebugContext], ...) write through a
// process-wide default logger that the command-line layer reconfigures with
// [Config] while it parses flags.
//
// # Output Formats
//
// [FormatJSON] (default) and [FormatText]. With [WithPretty] enabled, text
// output is colorized and JSON output is indented.
package log
