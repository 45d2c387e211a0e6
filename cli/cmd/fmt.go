package cmd

import (
	"context"
	"io"
	"log/slog"

	"github.com/ardnew/smartscript/lang"
	"github.com/ardnew/smartscript/pkg"
)

// Fmt parses a document and writes it back in the chosen format.
type Fmt struct {
	Native Native `cmd:"" default:"withargs" help:"Format as canonical template syntax (default)."`
	JSON   JSON   `cmd:""                    help:"Format the document tree as JSON."`
	YAML   YAML   `cmd:""                    help:"Format the document tree as YAML."`
}

// Native writes the canonical serialization of a document. Its output parses
// back into an equal document.
type Native struct {
	Source string `arg:"" default:"-" help:"Source input file or '-' for stdin." name:"source"`
}

// Run executes the fmt native command.
func (f *Native) Run(ctx context.Context) error {
	return formatSource(ctx, "native", f.Source,
		func(ctx context.Context, doc *lang.Document, w io.Writer) error {
			return doc.Format(ctx, w)
		})
}

// JSON writes a document tree as JSON.
type JSON struct {
	Indent int `default:"2" help:"Indent width for JSON output" short:"i"`

	Source string `arg:"" default:"-" help:"Source input file or '-' for stdin." name:"source"`
}

// Run executes the fmt json command.
func (j *JSON) Run(ctx context.Context) error {
	return formatSource(ctx, "json", j.Source,
		func(ctx context.Context, doc *lang.Document, w io.Writer) error {
			return doc.FormatJSON(ctx, w, j.Indent)
		})
}

// YAML writes a document tree as YAML. An indent of 0 selects flow style.
type YAML struct {
	Indent int `default:"2" help:"Indent width for YAML output" short:"i"`

	Source string `arg:"" default:"-" help:"Source input file or '-' for stdin." name:"source"`
}

// Run executes the fmt yaml command.
func (y *YAML) Run(ctx context.Context) error {
	return formatSource(ctx, "yaml", y.Source,
		func(ctx context.Context, doc *lang.Document, w io.Writer) error {
			return doc.FormatYAML(ctx, w, y.Indent)
		})
}

type formatFunc func(ctx context.Context, doc *lang.Document, w io.Writer) error

func formatSource(
	ctx context.Context,
	format, path string,
	fn formatFunc,
) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	logger := logger("fmt").With(slog.String("format", format))

	srcs, err := resolveSources([]string{path})
	if err != nil {
		return err
	}

	doc, err := parseSource(ctx, srcs[0], logger)
	if err != nil {
		return err
	}

	if err := fn(ctx, doc, stdout(ctx)); err != nil {
		return pkg.ErrWriteOutput.Wrap(err)
	}

	return nil
}
