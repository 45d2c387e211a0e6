package repl

import (
	"context"
	"log/slog"
	"maps"
	"slices"
	"strings"

	"github.com/ardnew/smartscript/lang"
	"github.com/ardnew/smartscript/log"
)

// Session executes one document per submitted line. Request parameters are
// fixed for the session; persistent parameters set by one line are visible
// to every later line.
type Session struct {
	params     map[string]lang.Value
	persistent map[string]lang.Value
	mime       string
	logger     log.Logger
}

// NewSession returns a Session with the given request and persistent
// parameters. Both maps are copied.
func NewSession(params, persistent map[string]lang.Value, logger log.Logger) *Session {
	s := &Session{
		params:     maps.Clone(params),
		persistent: maps.Clone(persistent),
		mime:       lang.DefaultMimeType,
		logger:     logger,
	}

	if s.params == nil {
		s.params = map[string]lang.Value{}
	}

	if s.persistent == nil {
		s.persistent = map[string]lang.Value{}
	}

	return s
}

// Eval parses and executes line, returning what it wrote. On error the
// output written before the failure is returned with it, and persistent
// parameters changed before the failure are kept.
func (s *Session) Eval(ctx context.Context, line string) (string, error) {
	var out strings.Builder

	doc, err := lang.ParseString(ctx, line, lang.WithLogger(s.logger))
	if err != nil {
		return "", err
	}

	rc := lang.NewRequest(&out,
		lang.WithParameters(s.params),
		lang.WithPersistentParameters(s.persistent),
	)

	err = lang.Execute(ctx, doc, rc, lang.WithLogger(s.logger))

	s.persistent = rc.PersistentParameters()
	s.mime = rc.MimeType()

	s.logger.TraceContext(ctx, "session eval",
		slog.Int64("written", rc.Written()),
		slog.Bool("ok", err == nil),
	)

	return out.String(), err
}

// MimeType returns the MIME type set by the most recent line.
func (s *Session) MimeType() string { return s.mime }

// Parameters returns a copy of the request parameters.
func (s *Session) Parameters() map[string]lang.Value { return maps.Clone(s.params) }

// PersistentParameters returns a copy of the persistent parameters.
func (s *Session) PersistentParameters() map[string]lang.Value {
	return maps.Clone(s.persistent)
}

// Names returns every known parameter name, sorted and without duplicates.
func (s *Session) Names() []string {
	names := slices.Collect(maps.Keys(s.params))
	names = slices.AppendSeq(names, maps.Keys(s.persistent))
	slices.Sort(names)

	return slices.Compact(names)
}
