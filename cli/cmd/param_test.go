package cmd

import (
	"errors"
	"strings"
	"testing"

	"github.com/ardnew/smartscript/lang"
	"github.com/ardnew/smartscript/pkg"
)

func TestEvalParams(t *testing.T) {
	t.Setenv("SMARTSCRIPT_TEST_USER", "gopher")

	tests := []struct {
		name     string
		base     map[string]lang.Value
		bindings []string
		want     map[string]lang.Value
		wantErr  bool
	}{
		{
			name:     "integer",
			bindings: []string{"n=1+2"},
			want:     map[string]lang.Value{"n": lang.Integer(3)},
		},
		{
			name:     "decimal",
			bindings: []string{"x=2.5"},
			want:     map[string]lang.Value{"x": lang.Decimal(2.5)},
		},
		{
			name:     "string",
			bindings: []string{`s="a" + "b"`},
			want:     map[string]lang.Value{"s": lang.Text("ab")},
		},
		{
			name:     "boolean_as_text",
			bindings: []string{"ok=1 < 2"},
			want:     map[string]lang.Value{"ok": lang.Text("true")},
		},
		{
			name:     "refers_to_earlier",
			bindings: []string{"n=4", "m=n * 2"},
			want:     map[string]lang.Value{"n": lang.Integer(4), "m": lang.Integer(8)},
		},
		{
			name:     "refers_to_base",
			base:     map[string]lang.Value{"n": lang.Integer(5)},
			bindings: []string{"m=n - 1"},
			want:     map[string]lang.Value{"n": lang.Integer(5), "m": lang.Integer(4)},
		},
		{
			name:     "overrides_base",
			base:     map[string]lang.Value{"n": lang.Integer(5)},
			bindings: []string{`n="five"`},
			want:     map[string]lang.Value{"n": lang.Text("five")},
		},
		{
			name:     "env",
			bindings: []string{`u=env("SMARTSCRIPT_TEST_USER")`},
			want:     map[string]lang.Value{"u": lang.Text("gopher")},
		},
		{
			name:     "value_contains_equals",
			bindings: []string{`q="a=b"`},
			want:     map[string]lang.Value{"q": lang.Text("a=b")},
		},
		{name: "missing_equals", bindings: []string{"n"}, wantErr: true},
		{name: "empty_name", bindings: []string{"=1"}, wantErr: true},
		{name: "undefined_variable", bindings: []string{"n=m"}, wantErr: true},
		{name: "syntax_error", bindings: []string{"n=1 +"}, wantErr: true},
		{name: "unsupported_result", bindings: []string{"n=[1, 2]"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := evalParams(tt.base, tt.bindings)
			if tt.wantErr {
				if !errors.Is(err, pkg.ErrInvalidParam) {
					t.Errorf("evalParams() error = %v, want ErrInvalidParam", err)
				}

				return
			}

			if err != nil {
				t.Fatalf("evalParams() error = %v", err)
			}

			if len(got) != len(tt.want) {
				t.Fatalf("evalParams() = %v, want %v", got, tt.want)
			}

			for k, want := range tt.want {
				if got[k] != want {
					t.Errorf("evalParams()[%s] = %#v, want %#v", k, got[k], want)
				}
			}
		})
	}
}

func TestEvalParamsDoesNotModifyBase(t *testing.T) {
	t.Parallel()

	base := map[string]lang.Value{"n": lang.Integer(1)}

	if _, err := evalParams(base, []string{"n=2"}); err != nil {
		t.Fatal(err)
	}

	if base["n"] != lang.Integer(1) {
		t.Errorf("base[n] = %v, want 1", base["n"])
	}
}

func TestDecodeValues(t *testing.T) {
	t.Parallel()

	input := `
count: 3
negative: -2
ratio: 0.25
name: gopher
flag: true
nothing: null
`

	got, err := decodeValues(strings.NewReader(input))
	if err != nil {
		t.Fatalf("decodeValues() error = %v", err)
	}

	want := map[string]lang.Value{
		"count":    lang.Integer(3),
		"negative": lang.Integer(-2),
		"ratio":    lang.Decimal(0.25),
		"name":     lang.Text("gopher"),
		"flag":     lang.Text("true"),
		"nothing":  lang.Absent,
	}

	for k, w := range want {
		if got[k] != w {
			t.Errorf("decodeValues()[%s] = %#v, want %#v", k, got[k], w)
		}
	}

	if _, err := decodeValues(strings.NewReader("nested: {a: 1}\n")); err == nil {
		t.Error("decodeValues(nested) error = nil, want error")
	}

	empty, err := decodeValues(strings.NewReader(""))
	if err != nil || len(empty) != 0 {
		t.Errorf("decodeValues(empty) = %v, %v; want empty map", empty, err)
	}
}

func TestLoadParams(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "params.yaml", "page: home\nn: 2\n")

	got, err := loadParams(path)
	if err != nil {
		t.Fatalf("loadParams() error = %v", err)
	}

	if got["page"] != lang.Text("home") || got["n"] != lang.Integer(2) {
		t.Errorf("loadParams() = %v", got)
	}

	if got, err := loadParams(""); got != nil || err != nil {
		t.Errorf(`loadParams("") = %v, %v; want nil, nil`, got, err)
	}
}
