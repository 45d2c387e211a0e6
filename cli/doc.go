// Package cli contains the command line interface for smartscript.
//
// # Usage
//
//	smartscript [flags] [exec] [FILE|-]...
//	smartscript fmt native|json|yaml [FILE|-]
//	smartscript check [--stats] [FILE|-]...
//	smartscript repl
//	smartscript init [--force]
//
// exec is the default command, so a bare file list executes those documents:
//
//	smartscript -p page='"home"' -p n=3 index.tmpl
//
// # Configuration
//
// Flag defaults are read from config.yaml in the user configuration
// directory (see [pkg.ConfigDir]). Keys are flag names, written flat or
// nested by prefix, with underscores accepted in place of hyphens:
//
//	log:
//	  level: debug
//	  format: text
//	exec:
//	  mime: true
//
// Command-line flags override the file. The init command writes the file
// from the current flag values.
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (json, text)
//   - --log-time-layout: Set timestamp format (RFC3339, Kitchen, none, ...)
//   - --log-caller: Include caller information in log output
//   - --log-pretty: Colorize and indent log output
//
// Log flags are applied before the rest of the command line is parsed,
// wherever they appear.
//
// # Profiling Options
//
// Profiling is only available in binaries built with "go build -tags pprof".
// The --pprof-mode flag then selects one of allocs, block, clock, cpu,
// goroutine, heap, mem, mutex, thread or trace, and --pprof-dir sets the
// output directory, which defaults to the pprof directory under
// [pkg.CacheDir].
package cli
