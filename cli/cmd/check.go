package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/goccy/go-yaml"

	"github.com/ardnew/smartscript/lang"
	"github.com/ardnew/smartscript/pkg"
)

// Check parses documents without executing them. Every failure is reported
// on stderr as "SOURCE:LINE:COLUMN: message".
type Check struct {
	Stats bool `help:"Print a YAML summary of each valid document."`

	Files []string `arg:"" help:"Document file(s) or '-' for stdin." name:"file" optional:""`
}

// Run executes the check command.
func (c *Check) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	logger := logger("check")

	srcs, err := resolveSources(c.Files)
	if err != nil {
		return err
	}

	failed := 0

	for _, src := range srcs {
		doc, err := parseSource(ctx, src, logger)
		if err != nil {
			failed++

			fmt.Fprintf(stderr(ctx), "%s:%s\n", src.name, describe(err))

			continue
		}

		stats := lang.Inspect(doc)

		logger.DebugContext(ctx, "valid",
			slog.String("source", src.name),
			slog.Any("stats", stats),
		)

		if c.Stats {
			b, err := yaml.Marshal(map[string]lang.Stats{src.name: stats})
			if err != nil {
				return pkg.ErrYAMLMarshal.Wrap(err)
			}

			if _, err := stdout(ctx).Write(b); err != nil {
				return pkg.ErrWriteOutput.Wrap(err)
			}
		}
	}

	if failed > 0 {
		return pkg.ErrCheck.Wrapf("%d of %d documents invalid", failed, len(srcs))
	}

	return nil
}

// describe renders err with its position first, or "0:0" when the error
// carries none.
func describe(err error) string {
	e := lang.WrapError(err)
	if _, ok := e.Position(); ok {
		return e.Error()
	}

	return "0:0: " + e.Error()
}
