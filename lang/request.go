package lang

import (
	"io"
	"log/slog"
	"maps"
)

// DefaultMimeType is the content type of a new [Request].
const DefaultMimeType = "text/html"

// Request is an in-memory [RequestContext] that writes to an io.Writer.
//
// Persistent parameters are meant to outlive the request; callers carry
// them over with [WithPersistentParameters] and [Request.PersistentParameters].
// A Request is not safe for concurrent use.
type Request struct {
	w          io.Writer
	params     map[string]Value
	persistent map[string]Value
	temporary  map[string]Value
	mime       string
	written    int64
	header     bool // set by the first Write
}

// RequestOption configures a [Request].
type RequestOption func(*Request)

// WithParameters sets the read-only request parameters.
func WithParameters(params map[string]Value) RequestOption {
	return func(r *Request) {
		maps.Copy(r.params, params)
	}
}

// WithPersistentParameters seeds the persistent parameters.
func WithPersistentParameters(params map[string]Value) RequestOption {
	return func(r *Request) {
		maps.Copy(r.persistent, params)
	}
}

// WithMimeType overrides [DefaultMimeType].
func WithMimeType(mime string) RequestOption {
	return func(r *Request) {
		r.mime = mime
	}
}

// NewRequest returns a Request writing to w. A nil w discards output.
func NewRequest(w io.Writer, opts ...RequestOption) *Request {
	if w == nil {
		w = io.Discard
	}

	r := &Request{
		w:          w,
		params:     make(map[string]Value),
		persistent: make(map[string]Value),
		temporary:  make(map[string]Value),
		mime:       DefaultMimeType,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

func (r *Request) Write(text string) error {
	r.header = true

	n, err := io.WriteString(r.w, text)
	r.written += int64(n)

	if err != nil {
		return ErrWrite.Wrap(err)
	}

	return nil
}

// Written returns the number of bytes written so far.
func (r *Request) Written() int64 { return r.written }

// MimeType returns the current content type.
func (r *Request) MimeType() string { return r.mime }

// SetMimeType fails with [ErrHeaderGenerated] after the first Write.
func (r *Request) SetMimeType(mime string) error {
	if r.header {
		return ErrHeaderGenerated.With(slog.String("mime", mime))
	}

	r.mime = mime

	return nil
}

func (r *Request) Parameter(name string) Value { return r.params[name] }

// Parameters returns a copy of the request parameters.
func (r *Request) Parameters() map[string]Value { return maps.Clone(r.params) }

func (r *Request) PersistentParameter(name string) Value {
	return r.persistent[name]
}

func (r *Request) SetPersistentParameter(name string, v Value) {
	r.persistent[name] = v
}

func (r *Request) RemovePersistentParameter(name string) {
	delete(r.persistent, name)
}

// PersistentParameters returns a copy of the persistent parameters.
func (r *Request) PersistentParameters() map[string]Value {
	return maps.Clone(r.persistent)
}

func (r *Request) TemporaryParameter(name string) Value {
	return r.temporary[name]
}

func (r *Request) SetTemporaryParameter(name string, v Value) {
	r.temporary[name] = v
}

func (r *Request) RemoveTemporaryParameter(name string) {
	delete(r.temporary, name)
}

// TemporaryParameters returns a copy of the temporary parameters.
func (r *Request) TemporaryParameters() map[string]Value {
	return maps.Clone(r.temporary)
}
