package lang

import (
	"errors"
	"slices"
	"testing"
)

type tok struct {
	kind  TokenKind
	value string
}

func tokensOf(t *testing.T, input string) []tok {
	t.Helper()

	toks, err := Tokenize(input)
	if err != nil {
		t.Fatalf("Tokenize(%q): %v", input, err)
	}

	out := make([]tok, len(toks))
	for i, tk := range toks {
		out[i] = tok{tk.Kind, tk.Value}
	}

	return out
}

func TestLexer_Text(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []tok
	}{
		{"empty", "", []tok{{TokenEOF, ""}}},
		{"plain", "hello", []tok{{TokenText, "hello"}, {TokenEOF, ""}}},
		{"escaped brace", `a \{ b`, []tok{{TokenText, "a { b"}, {TokenEOF, ""}}},
		{"escaped backslash", `a\\b`, []tok{{TokenText, `a\b`}, {TokenEOF, ""}}},
		{"other backslash", `a\xb`, []tok{{TokenText, `a\xb`}, {TokenEOF, ""}}},
		{"trailing backslash", `a\`, []tok{{TokenText, `a\`}, {TokenEOF, ""}}},
		{"escaped tag open", `\{$ x`, []tok{{TokenText, "{$ x"}, {TokenEOF, ""}}},
		{"tag close in text", `a $} b`, []tok{{TokenText, "a $} b"}, {TokenEOF, ""}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tokensOf(t, tt.input); !slices.Equal(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLexer_Tag(t *testing.T) {
	got := tokensOf(t, `a{$= i "s\n\"q\"" 3 -2 1.5 1e3 2.5E-1 @f + - * / ^ $}b`)
	want := []tok{
		{TokenText, "a"},
		{TokenTagStart, "{$"},
		{TokenName, "="},
		{TokenName, "i"},
		{TokenString, "s\n\"q\""},
		{TokenInteger, "3"},
		{TokenInteger, "-2"},
		{TokenDecimal, "1.5"},
		{TokenDecimal, "1e3"},
		{TokenDecimal, "2.5E-1"},
		{TokenName, "@f"},
		{TokenOperator, "+"},
		{TokenOperator, "-"},
		{TokenOperator, "*"},
		{TokenOperator, "/"},
		{TokenOperator, "^"},
		{TokenTagEnd, "$}"},
		{TokenText, "b"},
		{TokenEOF, ""},
	}

	if !slices.Equal(got, want) {
		t.Errorf("got  %v\nwant %v", got, want)
	}
}

func TestLexer_TagWithoutSpaces(t *testing.T) {
	got := tokensOf(t, `{$FOR i 1 3$}{$=i$}{$END$}`)
	want := []tok{
		{TokenTagStart, "{$"},
		{TokenName, "FOR"},
		{TokenName, "i"},
		{TokenInteger, "1"},
		{TokenInteger, "3"},
		{TokenTagEnd, "$}"},
		{TokenTagStart, "{$"},
		{TokenName, "="},
		{TokenName, "i"},
		{TokenTagEnd, "$}"},
		{TokenTagStart, "{$"},
		{TokenName, "END"},
		{TokenTagEnd, "$}"},
		{TokenEOF, ""},
	}

	if !slices.Equal(got, want) {
		t.Errorf("got  %v\nwant %v", got, want)
	}
}

func TestLexer_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  error
	}{
		{"unterminated string", `{$= "abc`, ErrUnterminatedString},
		{"unterminated escape", `{$= "abc\`, ErrUnterminatedString},
		{"bad escape", `{$= "\q" $}`, ErrInvalidEscape},
		{"exponent without digits", `{$= 1e $}`, ErrInvalidNumber},
		{"dot without digits", `{$= 3. $}`, ErrInvalidNumber},
		{"integer overflow", `{$= 99999999999999999999 $}`, ErrInvalidNumber},
		{"decimal overflow", `{$= 1e999 $}`, ErrInvalidNumber},
		{"unterminated tag", `{$= i`, ErrUnterminatedTag},
		{"unexpected character", `{$= # $}`, ErrUnexpectedChar},
		{"lone dollar", `{$= $ $}`, ErrUnexpectedChar},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Tokenize(tt.input)
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}

			if !errors.Is(err, ErrLexical) {
				t.Errorf("expected lexical error, got kind of %v", err)
			}
		})
	}
}

func TestLexer_Position(t *testing.T) {
	_, err := Tokenize("ab\n{$ #")

	var e *Error
	if !errors.As(err, &e) {
		t.Fatalf("expected *Error, got %T", err)
	}

	pos, ok := e.Position()
	if !ok {
		t.Fatal("expected position")
	}

	if pos.Line != 2 || pos.Column != 4 || pos.Offset != 6 {
		t.Errorf("got position %+v, want line 2 column 4 offset 6", pos)
	}
}

func TestLexer_State(t *testing.T) {
	l := NewLexer("x{$ y $}z")

	want := []State{StateText, StateTag, StateTag, StateText, StateText}
	for i, s := range want {
		if _, err := l.Next(); err != nil {
			t.Fatal(err)
		}

		if l.State() != s {
			t.Errorf("after token %d: state %v, want %v", i, l.State(), s)
		}
	}
}

func TestLexer_EOFIsSticky(t *testing.T) {
	l := NewLexer("")

	for range 3 {
		tk, err := l.Next()
		if err != nil || tk.Kind != TokenEOF {
			t.Fatalf("got %v, %v; want eof", tk, err)
		}
	}
}

func TestIsVariableName(t *testing.T) {
	tests := map[string]bool{
		"i":      true,
		"total2": true,
		"a_b":    true,
		"_a":     false,
		"2a":     false,
		"":       false,
		"a-b":    false,
		"@f":     false,
	}

	for in, want := range tests {
		if got := IsVariableName(in); got != want {
			t.Errorf("IsVariableName(%q) = %v, want %v", in, got, want)
		}
	}
}
