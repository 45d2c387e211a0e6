package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"

	"github.com/ardnew/smartscript/lang"
	"github.com/ardnew/smartscript/log"
	"github.com/ardnew/smartscript/pkg"
)

// stdinSource is the special source indicator for reading from stdin.
const stdinSource = "-"

// source is a single document input named on the command line.
type source struct {
	name string // as given by the user, or "-" for stdin
	path string // resolved path; empty for stdin
}

func (s source) isStdin() bool { return s.path == "" }

// open returns a reader for the document. Closing stdin is a no-op.
func (s source) open() (io.ReadCloser, error) {
	if s.isStdin() {
		return io.NopCloser(os.Stdin), nil
	}

	return os.Open(s.path)
}

// resolveSources returns the documents named by paths in command-line order.
//
// Duplicates are dropped. Every "-" collapses into a single stdin source
// placed last, and an empty list means stdin alone. A path that cannot be
// resolved is an error.
func resolveSources(paths []string) ([]source, error) {
	if len(paths) == 0 {
		return []source{{name: stdinSource}}, nil
	}

	srcs := make([]source, 0, len(paths))
	seen := make([]os.FileInfo, 0, len(paths))
	hasStdin := false

	for _, p := range paths {
		if p == stdinSource {
			hasStdin = true

			continue
		}

		resolved, info, err := statSource(p)
		if err != nil {
			return nil, pkg.ErrReadInput.Wrap(err)
		}

		if slices.ContainsFunc(seen, func(fi os.FileInfo) bool {
			return os.SameFile(fi, info)
		}) {
			continue
		}

		seen = append(seen, info)
		srcs = append(srcs, source{name: p, path: resolved})
	}

	if hasStdin {
		srcs = append(srcs, source{name: stdinSource})
	}

	return srcs, nil
}

// statSource resolves p to an absolute, symlink-free path and its file info.
func statSource(p string) (string, os.FileInfo, error) {
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", nil, err
	}

	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", nil, err
	}

	info, err := os.Stat(resolved)
	if err != nil {
		return "", nil, err
	}

	return resolved, info, nil
}

// parseSource reads and parses one document.
func parseSource(
	ctx context.Context,
	src source,
	logger log.Logger,
) (*lang.Document, error) {
	r, err := src.open()
	if err != nil {
		return nil, pkg.ErrReadInput.Wrap(err)
	}
	defer r.Close()

	logger.TraceContext(ctx, "parse source", slog.String("source", src.name))

	doc, err := lang.ParseReader(ctx, r, lang.WithLogger(logger))
	if err != nil {
		return nil, lang.WrapError(err).With(slog.String("source", src.name))
	}

	return doc, nil
}
