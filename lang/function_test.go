package lang

import (
	"errors"
	"strings"
	"testing"
)

func TestBuiltins(t *testing.T) {
	params := WithParameters(map[string]Value{"a": Integer(1)})

	tests := []struct {
		name string
		src  string
		want string
	}{
		{"sin 90", `{$= 90 @sin $}`, "1.0"},
		{"sin 0", `{$= 0 @sin $}`, "0.0"},
		{"decfmt fixed", `{$= 3.14159 "0.000" @decfmt $}`, "3.142"},
		{"decfmt pads", `{$= 2 "0.00" @decfmt $}`, "2.00"},
		{"decfmt optional digits", `{$= 2.5 "0.##" @decfmt $}`, "2.5"},
		{"decfmt grouping", `{$= 1234.5 "#,##0.00" @decfmt $}`, "1,234.50"},
		{"decfmt no grouping", `{$= 1234.5 "0.0" @decfmt $}`, "1234.5"},
		{"decfmt text operand", `{$= "7" "0.0" @decfmt $}`, "7.0"},
		{"dup", `{$= 2 @dup * $}`, "4"},
		{"swap", `{$= 1 2 @swap $}`, "21"},
		{"swap then divide", `{$= 2 8 @swap / $}`, "4"},
		{"paramGet", `{$= "a" "def" @paramGet "b" "def" @paramGet $}`, "1def"},
		{
			"persistent", `{$= 5 "k" @pparamSet "k" 0 @pparamGet "k" @pparamDel "k" "gone" @pparamGet $}`,
			"5gone",
		},
		{
			"temporary", `{$= "v" "t" @tparamSet "t" 0 @tparamGet "t" @tparamDel "t" "-" @tparamGet $}`,
			"v-",
		},
		{
			"persistent across tags", `{$FOR i 1 3$}{$= "sum" 0 @pparamGet i + "sum" @pparamSet $}{$END$}{$= "sum" 0 @pparamGet $}`,
			"6",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := run(t, tt.src, params)
			if err != nil {
				t.Fatal(err)
			}

			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBuiltins_SetMimeType(t *testing.T) {
	var buf strings.Builder

	rc := NewRequest(&buf)

	doc := mustParse(t, `{$= "text/plain" @setMimeType $}body`)
	if err := Execute(t.Context(), doc, rc); err != nil {
		t.Fatal(err)
	}

	if rc.MimeType() != "text/plain" {
		t.Errorf("mime type %q", rc.MimeType())
	}

	doc = mustParse(t, `body{$= "text/plain" @setMimeType $}`)
	if err := Execute(t.Context(), doc, NewRequest(&buf)); !errors.Is(err, ErrHeaderGenerated) {
		t.Errorf("expected header already generated, got %v", err)
	}
}

func TestBuiltins_PersistentSetOrder(t *testing.T) {
	rc := NewRequest(nil)

	doc := mustParse(t, `{$= "value" "name" @pparamSet "x" "t" @tparamSet $}`)
	if err := Execute(t.Context(), doc, rc); err != nil {
		t.Fatal(err)
	}

	if v := rc.PersistentParameter("name"); v != Text("value") {
		t.Errorf("persistent name = %#v", v)
	}

	if v := rc.TemporaryParameter("t"); v != Text("x") {
		t.Errorf("temporary t = %#v", v)
	}
}

func TestBuiltins_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want error
	}{
		{"sin underflow", `{$= @sin $}`, ErrStackUnderflow},
		{"sin text", `{$= "x" @sin $}`, ErrInvalidOperand},
		{"decfmt bad pattern", `{$= 1 "abc" @decfmt $}`, ErrInvalidFormat},
		{"decfmt empty pattern", `{$= 1 "" @decfmt $}`, ErrInvalidFormat},
		{"decfmt misplaced zero", `{$= 1 "0.#0" @decfmt $}`, ErrInvalidFormat},
		{"swap underflow", `{$= 1 @swap $}`, ErrStackUnderflow},
		{"paramGet underflow", `{$= "a" @paramGet $}`, ErrStackUnderflow},
		{"pparamDel underflow", `{$= @pparamDel $}`, ErrStackUnderflow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := run(t, tt.src); !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestOperands(t *testing.T) {
	var s Operands

	s.Push(Integer(1), Integer(2), Integer(3))

	got, err := s.PopN(2)
	if err != nil {
		t.Fatal(err)
	}

	if got[0] != Integer(2) || got[1] != Integer(3) || s.Len() != 1 {
		t.Errorf("PopN returned %v, remaining %d", got, s.Len())
	}

	if _, err := s.PopN(2); !errors.Is(err, ErrStackUnderflow) {
		t.Errorf("expected underflow, got %v", err)
	}
}
