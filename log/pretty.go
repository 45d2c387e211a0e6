package log

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// Styles for pretty text output. Rendering degrades to plain text when the
// terminal does not support color.
var (
	keyStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	stringStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	numberStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	trueStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	falseStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	timeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	msgStyle    = lipgloss.NewStyle().Bold(true)

	levelStyle = map[Level]lipgloss.Style{
		LevelTrace: lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
		LevelDebug: lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
		LevelInfo:  lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		LevelWarn:  lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		LevelError: lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
	}
)

// prettyTextHandler writes one colorized line per record:
//
//	TIME LEVEL message key=value key.sub=value ...
type prettyTextHandler struct {
	opts       *slog.HandlerOptions
	formatTime FormatTime
	mu         *sync.Mutex
	w          io.Writer
	prefix     string // dotted group prefix applied to record attrs
	attrs      []byte // pre-rendered attrs from WithAttrs
}

func newPrettyTextHandler(
	w io.Writer,
	opts *slog.HandlerOptions,
	formatTime FormatTime,
) *prettyTextHandler {
	if formatTime == nil {
		formatTime = makeFormatTimeFunc(DefaultTimeLayout)
	}

	return &prettyTextHandler{
		opts:       opts,
		formatTime: formatTime,
		mu:         &sync.Mutex{},
		w:          w,
	}
}

func (h *prettyTextHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.opts.Level.Level()
}

func (h *prettyTextHandler) Handle(_ context.Context, r slog.Record) error {
	var buf bytes.Buffer

	if !r.Time.IsZero() {
		if ts := h.formatTime(r.Time); ts != "" {
			buf.WriteString(timeStyle.Render(ts))
			buf.WriteByte(' ')
		}
	}

	level := Level(r.Level)
	style, ok := levelStyle[level]

	if !ok {
		style = lipgloss.NewStyle()
	}

	buf.WriteString(style.Render(fmt.Sprintf("%-5s", strings.ToUpper(level.String()))))
	buf.WriteByte(' ')

	if h.opts.AddSource {
		if src := r.Source(); src != nil {
			buf.WriteString(keyStyle.Render(src.File + ":" + strconv.Itoa(src.Line)))
			buf.WriteByte(' ')
		}
	}

	buf.WriteString(msgStyle.Render(r.Message))
	buf.Write(h.attrs)

	r.Attrs(func(a slog.Attr) bool {
		writePrettyAttr(&buf, h.prefix, a)

		return true
	})

	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := h.w.Write(buf.Bytes())

	return err
}

func (h *prettyTextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	var buf bytes.Buffer

	buf.Write(h.attrs)

	for _, a := range attrs {
		writePrettyAttr(&buf, h.prefix, a)
	}

	clone := *h
	clone.attrs = buf.Bytes()

	return &clone
}

func (h *prettyTextHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	clone := *h
	clone.prefix = h.prefix + name + "."

	return &clone
}

// writePrettyAttr renders a single attribute, flattening groups into dotted
// keys. [slog.LogValuer] values are resolved first.
func writePrettyAttr(buf *bytes.Buffer, prefix string, a slog.Attr) {
	a.Value = a.Value.Resolve()

	if a.Equal(slog.Attr{}) {
		return
	}

	if a.Value.Kind() == slog.KindGroup {
		group := prefix
		if a.Key != "" {
			group += a.Key + "."
		}

		for _, ga := range a.Value.Group() {
			writePrettyAttr(buf, group, ga)
		}

		return
	}

	buf.WriteByte(' ')
	buf.WriteString(keyStyle.Render(prefix + a.Key + "="))
	buf.WriteString(prettyValue(a.Value))
}

func prettyValue(v slog.Value) string {
	switch v.Kind() {
	case slog.KindString:
		return stringStyle.Render(v.String())

	case slog.KindInt64:
		return numberStyle.Render(strconv.FormatInt(v.Int64(), 10))

	case slog.KindUint64:
		return numberStyle.Render(strconv.FormatUint(v.Uint64(), 10))

	case slog.KindFloat64:
		return numberStyle.Render(strconv.FormatFloat(v.Float64(), 'g', -1, 64))

	case slog.KindBool:
		if v.Bool() {
			return trueStyle.Render("true")
		}

		return falseStyle.Render("false")

	case slog.KindDuration:
		return numberStyle.Render(v.Duration().String())

	case slog.KindTime:
		return timeStyle.Render(v.Time().Format(time.RFC3339))

	default:
		return stringStyle.Render(v.String())
	}
}

// indentJSONHandler renders records with [slog.JSONHandler] and re-indents
// each record before writing it.
type indentJSONHandler struct {
	inner slog.Handler
	buf   *bytes.Buffer
	mu    *sync.Mutex
	w     io.Writer
}

func newIndentJSONHandler(
	w io.Writer,
	opts *slog.HandlerOptions,
) *indentJSONHandler {
	buf := new(bytes.Buffer)

	return &indentJSONHandler{
		inner: slog.NewJSONHandler(buf, opts),
		buf:   buf,
		mu:    &sync.Mutex{},
		w:     w,
	}
}

func (h *indentJSONHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

func (h *indentJSONHandler) Handle(ctx context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.buf.Reset()

	if err := h.inner.Handle(ctx, r); err != nil {
		return err
	}

	var out bytes.Buffer

	if err := json.Indent(&out, bytes.TrimSpace(h.buf.Bytes()), "", "  "); err != nil {
		// Fall back to the compact encoding.
		_, err = h.w.Write(h.buf.Bytes())

		return err
	}

	out.WriteByte('\n')

	_, err := h.w.Write(out.Bytes())

	return err
}

func (h *indentJSONHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &indentJSONHandler{
		inner: h.inner.WithAttrs(attrs),
		buf:   h.buf,
		mu:    h.mu,
		w:     h.w,
	}
}

func (h *indentJSONHandler) WithGroup(name string) slog.Handler {
	return &indentJSONHandler{
		inner: h.inner.WithGroup(name),
		buf:   h.buf,
		mu:    h.mu,
		w:     h.w,
	}
}
