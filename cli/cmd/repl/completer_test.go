package repl

import (
	"slices"
	"testing"
)

func TestWordBounds(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		input     string
		cursor    int
		wantWord  string
		wantStart int
		wantEnd   int
	}{
		{"simple", "foo", 3, "foo", 0, 3},
		{"function", `{$= "x" @dec`, 12, "@dec", 8, 12},
		{"after_tag_open", "{$FO", 4, "FO", 2, 4},
		{"after_echo", "{$=i", 4, "i", 3, 4},
		{"operator", "{$= a+b", 7, "b", 6, 7},
		{"decimal_kept", "{$= 1.5", 7, "1.5", 4, 7},
		{"empty_at_boundary", "{$ ", 3, "", 3, 3},
		{"mid_word", "foobar", 3, "foobar", 0, 6},
		{"cursor_past_end", "ab", 9, "ab", 0, 2},
		{"control", ":he", 3, "he", 1, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			word, start, end := wordBounds(tt.input, tt.cursor)
			if word != tt.wantWord || start != tt.wantStart || end != tt.wantEnd {
				t.Errorf("wordBounds(%q, %d) = (%q, %d, %d), want (%q, %d, %d)",
					tt.input, tt.cursor, word, start, end,
					tt.wantWord, tt.wantStart, tt.wantEnd)
			}
		})
	}
}

func TestScopeAt(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		start int
		want  scope
	}{
		{"text", "hello", 0, scopeText},
		{"after_closed_tag", "{$= 1 $} x", 9, scopeText},
		{"tag_name", "{$ FO", 3, scopeTagName},
		{"tag_name_no_space", "{$FO", 2, scopeTagName},
		{"tag_body", "{$ FOR i", 7, scopeTagBody},
		{"echo_body", "{$= @s", 4, scopeTagBody},
		{"control", " :pa", 2, scopeCtrl},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := scopeAt(tt.input, tt.start); got != tt.want {
				t.Errorf("scopeAt(%q, %d) = %v, want %v", tt.input, tt.start, got, tt.want)
			}
		})
	}
}

func TestLoopVariables(t *testing.T) {
	t.Parallel()

	got := loopVariables(`{$ FOR i 1 2 $}{$for j 1 2$}{$ FOR i 1 2 $}{$= k $}`)
	if want := []string{"i", "j"}; !slices.Equal(got, want) {
		t.Errorf("loopVariables() = %q, want %q", got, want)
	}
}

func TestComputeMatches(t *testing.T) {
	t.Parallel()

	params := []string{"user", "visits"}

	tests := []struct {
		name   string
		input  string
		want   string // first match
		noneOK bool
	}{
		{name: "function", input: `{$= "x" @decf`, want: "@decfmt"},
		{name: "prefix_function", input: `{$= @paramg`, want: "@paramGet"},
		{name: "tag_name", input: "{$ fo", want: "FOR"},
		{name: "tag_name_empty", input: "{$ ", want: "FOR"},
		{name: "loop_variable", input: "{$ FOR idx 1 2 $}{$= id", want: "idx"},
		{name: "parameter", input: `{$= vis`, want: "visits"},
		{name: "control", input: ":pa", want: "params"},
		{name: "control_empty", input: ":", want: "help"},
		{name: "text", input: "plain fo", noneOK: true},
		{name: "body_empty_word", input: "{$= ", noneOK: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			matches, _, _ := computeMatches(tt.input, len(tt.input), params)

			if tt.noneOK {
				if len(matches) != 0 {
					t.Errorf("computeMatches(%q) = %v, want none", tt.input, matches)
				}

				return
			}

			if len(matches) == 0 || matches[0].Str != tt.want {
				t.Errorf("computeMatches(%q) = %v, want first %q", tt.input, matches, tt.want)
			}
		})
	}
}

func TestRenderCandidateBar(t *testing.T) {
	t.Parallel()

	matches, _, _ := computeMatches(":", 1, nil)

	if got := renderCandidateBar(nil, -1, false, 80); got != "" {
		t.Errorf("renderCandidateBar(nil) = %q, want empty", got)
	}

	if got := renderCandidateBar(matches, -1, false, 0); got != "" {
		t.Errorf("renderCandidateBar(width 0) = %q, want empty", got)
	}

	if got := renderCandidateBar(matches, 0, true, 80); got == "" {
		t.Error("renderCandidateBar() = empty, want candidates")
	}
}
