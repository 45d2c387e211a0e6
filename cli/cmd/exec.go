package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/ardnew/smartscript/lang"
	"github.com/ardnew/smartscript/pkg"
)

// Exec parses and executes documents, writing their output in order.
//
// Persistent parameters carry from one document to the next, and with
// --state they also carry across invocations.
type Exec struct {
	Param  []string `help:"Bind parameter NAME to the value of expression EXPR (repeatable)." placeholder:"NAME=EXPR" sep:"none" short:"p"`
	Params string   `help:"Read parameters from a YAML mapping."                              placeholder:"FILE"                   type:"existingfile"`
	State  string   `help:"Load and save persistent parameters in a YAML file."               placeholder:"FILE"                   type:"path"`
	Mime   bool     `help:"Print the final MIME type to stderr."`
	Output string   `help:"Write output to FILE instead of stdout."                           placeholder:"FILE" short:"o"         type:"path"`

	Files []string `arg:"" help:"Document file(s) or '-' for stdin." name:"file" optional:""`
}

// Run executes the exec command.
func (e *Exec) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	logger := logger("exec")

	srcs, err := resolveSources(e.Files)
	if err != nil {
		return err
	}

	params, err := loadParams(e.Params)
	if err != nil {
		return err
	}

	params, err = evalParams(params, e.Param)
	if err != nil {
		return err
	}

	persistent, err := loadState(e.State)
	if err != nil {
		return err
	}

	logger.DebugContext(ctx, "exec start",
		slog.Int("sources", len(srcs)),
		valuesAttr("params", params),
		valuesAttr("persistent", persistent),
	)

	out := stdout(ctx)

	if e.Output != "" && e.Output != stdinSource {
		f, err := os.Create(e.Output)
		if err != nil {
			return pkg.ErrWriteOutput.Wrap(err)
		}
		defer closeOutput(f, &err)

		out = f
	}

	var rc *lang.Request

	for _, src := range srcs {
		doc, err := parseSource(ctx, src, logger)
		if err != nil {
			return err
		}

		rc = lang.NewRequest(out,
			lang.WithParameters(params),
			lang.WithPersistentParameters(persistent),
		)

		err = lang.Execute(ctx, doc, rc, lang.WithLogger(logger))
		if err != nil {
			return lang.WrapError(err).With(slog.String("source", src.name))
		}

		persistent = rc.PersistentParameters()

		logger.DebugContext(ctx, "executed",
			slog.String("source", src.name),
			slog.Int64("written", rc.Written()),
			slog.String("mime", rc.MimeType()),
		)
	}

	if err := saveState(e.State, persistent); err != nil {
		return err
	}

	if e.Mime && rc != nil {
		return printMime(stderr(ctx), rc.MimeType())
	}

	return nil
}

func printMime(w io.Writer, mime string) error {
	_, err := fmt.Fprintln(w, mime)
	if err != nil {
		return pkg.ErrWriteOutput.Wrap(err)
	}

	return nil
}
