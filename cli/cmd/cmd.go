package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"github.com/ardnew/smartscript/log"
	"github.com/ardnew/smartscript/pkg"
)

type contextKey struct{}

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

// kongVar returns the kong variable named id, or "" when ctx carries no
// kong context or the variable is undefined.
func kongVar(ctx context.Context, id string) string {
	ktx := kongContextFrom(ctx)
	if ktx == nil {
		return ""
	}

	return ktx.Model.Vars()[id]
}

// stdout returns the writer kong was configured with, or os.Stdout.
func stdout(ctx context.Context) io.Writer {
	if ktx := kongContextFrom(ctx); ktx != nil && ktx.Stdout != nil {
		return ktx.Stdout
	}

	return os.Stdout
}

// stderr returns the writer kong was configured with, or os.Stderr.
func stderr(ctx context.Context) io.Writer {
	if ktx := kongContextFrom(ctx); ktx != nil && ktx.Stderr != nil {
		return ktx.Stderr
	}

	return os.Stderr
}

// logger returns the default logger with the running command attached.
func logger(name string) log.Logger {
	return log.Default().With(slog.String("command", name))
}

// closeOutput closes an output file. A close failure is recorded in err as
// [pkg.ErrWriteOutput] unless err already holds an earlier failure.
func closeOutput(c io.Closer, err *error) {
	if cerr := c.Close(); cerr != nil && *err == nil {
		*err = pkg.ErrWriteOutput.Wrap(cerr)
	}
}
