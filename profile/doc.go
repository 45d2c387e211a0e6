// Package profile wraps [github.com/pkg/profile] for optional profiling of
// smartscript runs.
//
// Profiling is compiled in only with the pprof build tag:
//
//	go build -tags pprof .
//	smartscript --pprof-mode=cpu exec template.ss
//
// Without the tag [Modes] is empty and [Profiler.Start] returns a no-op, so
// callers never need their own build constraints. Output files are named
// after the mode (cpu.pprof, mem.pprof, and so on) and are written to
// $XDG_CACHE_HOME/smartscript/pprof unless --pprof-dir says otherwise.
//
// Inspect results with go tool pprof:
//
//	go tool pprof -http=: ~/.cache/smartscript/pprof/cpu.pprof
package profile
