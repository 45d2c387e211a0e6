package lang

import (
	"errors"
	"strings"
	"testing"
)

func TestRequest(t *testing.T) {
	var buf strings.Builder

	r := NewRequest(&buf,
		WithParameters(map[string]Value{"p": Integer(1)}),
		WithPersistentParameters(map[string]Value{"s": Text("kept")}))

	if r.MimeType() != DefaultMimeType {
		t.Errorf("default mime %q", r.MimeType())
	}

	if err := r.SetMimeType("text/plain"); err != nil {
		t.Fatal(err)
	}

	if err := r.Write("hello"); err != nil {
		t.Fatal(err)
	}

	if err := r.SetMimeType("text/css"); !errors.Is(err, ErrHeaderGenerated) {
		t.Errorf("expected header already generated, got %v", err)
	}

	if r.MimeType() != "text/plain" || buf.String() != "hello" || r.Written() != 5 {
		t.Errorf("mime %q, output %q, written %d", r.MimeType(), buf.String(), r.Written())
	}

	if r.Parameter("p") != Integer(1) || !r.Parameter("q").IsAbsent() {
		t.Error("unexpected parameter lookup")
	}

	if r.PersistentParameter("s") != Text("kept") {
		t.Error("persistent seed missing")
	}

	r.SetTemporaryParameter("t", Integer(2))
	r.RemovePersistentParameter("s")

	if len(r.PersistentParameters()) != 0 || len(r.TemporaryParameters()) != 1 {
		t.Error("unexpected parameter maps")
	}

	params := r.Parameters()
	params["p"] = Integer(9)

	if r.Parameter("p") != Integer(1) {
		t.Error("Parameters returned the live map")
	}
}

func TestRequest_EmptyWriteGeneratesHeader(t *testing.T) {
	r := NewRequest(nil)

	_ = r.Write("")

	if err := r.SetMimeType("x/y"); !errors.Is(err, ErrHeaderGenerated) {
		t.Errorf("expected header already generated, got %v", err)
	}
}

func TestRequest_WithMimeType(t *testing.T) {
	if got := NewRequest(nil, WithMimeType("text/plain")).MimeType(); got != "text/plain" {
		t.Errorf("got %q", got)
	}
}
