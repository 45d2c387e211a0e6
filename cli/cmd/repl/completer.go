package repl

import (
	"maps"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/ardnew/smartscript/lang"
)

// ctrlCommands are the commands accepted after a leading ':'.
var ctrlCommands = []string{"help", "params", "clear", "quit"}

// scope is the syntactic position of the word being completed.
type scope int

const (
	scopeText    scope = iota // outside any tag
	scopeTagName              // first word inside "{$"
	scopeTagBody              // tag elements
	scopeCtrl                 // control command
)

// isWordBoundary reports whether r separates completable words. '@' and '.'
// are part of words so that "@dec" and decimal literals stay whole.
func isWordBoundary(r rune) bool {
	if unicode.IsSpace(r) {
		return true
	}

	switch r {
	case '{', '}', '$', '"', '=', ':', '+', '-', '*', '/', '^':
		return true
	}

	return false
}

// wordBounds returns the word at cursor and its byte offsets in input. The
// word is empty when the cursor sits on a boundary.
func wordBounds(input string, cursor int) (word string, start, end int) {
	cursor = min(max(cursor, 0), len(input))

	start = cursor
	for start > 0 {
		r, size := utf8.DecodeLastRuneInString(input[:start])
		if isWordBoundary(r) {
			break
		}

		start -= size
	}

	end = cursor
	for end < len(input) {
		r, size := utf8.DecodeRuneInString(input[end:])
		if isWordBoundary(r) {
			break
		}

		end += size
	}

	return input[start:end], start, end
}

// scopeAt classifies the position start within input.
func scopeAt(input string, start int) scope {
	if strings.HasPrefix(strings.TrimSpace(input), ":") {
		return scopeCtrl
	}

	before := input[:start]

	open := strings.LastIndex(before, lang.TagOpen)
	if open < 0 || strings.LastIndex(before, lang.TagClose) > open {
		return scopeText
	}

	if strings.TrimSpace(before[open+len(lang.TagOpen):]) == "" {
		return scopeTagName
	}

	return scopeTagBody
}

// functionNames returns the built-in function names with their '@' prefix.
func functionNames() []string {
	names := slices.Sorted(maps.Keys(lang.Builtins()))
	for i, n := range names {
		names[i] = "@" + n
	}

	return names
}

// loopVariables returns the distinct variable names declared by FOR tags in
// input, in order of appearance.
func loopVariables(input string) []string {
	var vars []string

	for rest := input; ; {
		i := strings.Index(rest, lang.TagOpen)
		if i < 0 {
			return vars
		}

		rest = rest[i+len(lang.TagOpen):]

		fields := strings.Fields(rest)
		if len(fields) >= 2 && strings.EqualFold(fields[0], lang.TagFor) &&
			lang.IsVariableName(fields[1]) && !slices.Contains(vars, fields[1]) {
			vars = append(vars, fields[1])
		}
	}
}

// candidates returns the completion candidates for the scope of word.
// params are the parameter names known to the session.
func candidates(sc scope, word, input string, params []string) []string {
	switch sc {
	case scopeCtrl:
		return ctrlCommands

	case scopeTagName:
		return []string{lang.TagFor, lang.TagEnd}

	case scopeTagBody:
		if strings.HasPrefix(word, "@") {
			return functionNames()
		}

		return append(loopVariables(input), params...)

	default:
		return nil
	}
}

// computeMatches returns the fuzzy matches for the word at cursor. An empty
// word lists every candidate only where the choice is small and fixed.
func computeMatches(
	input string,
	cursor int,
	params []string,
) (matches fuzzy.Matches, wordStart, wordEnd int) {
	word, wordStart, wordEnd := wordBounds(input, cursor)
	sc := scopeAt(input, wordStart)
	cands := candidates(sc, word, input, params)

	if len(cands) == 0 {
		return nil, wordStart, wordEnd
	}

	if word == "" {
		if sc != scopeCtrl && sc != scopeTagName {
			return nil, wordStart, wordEnd
		}

		matches = make(fuzzy.Matches, len(cands))
		for i, c := range cands {
			matches[i] = fuzzy.Match{Str: c, Index: i}
		}

		return matches, wordStart, wordEnd
	}

	return fuzzy.Find(word, cands), wordStart, wordEnd
}

// renderCandidateBar builds the single-line completion bar, ellipsized to
// fit within width. The selected candidate is highlighted while tabbing.
func renderCandidateBar(
	matches fuzzy.Matches,
	suggIdx int,
	tabActive bool,
	width int,
) string {
	if len(matches) == 0 || width <= 0 {
		return ""
	}

	const sep = "  "

	ellipsis := hintStyle.Render("...")
	reserve := lipgloss.Width(sep) + lipgloss.Width(ellipsis)

	var b strings.Builder

	used := 0

	for i, match := range matches {
		rendered := renderCandidate(match, tabActive && i == suggIdx)
		w := lipgloss.Width(rendered)

		if i > 0 {
			w += lipgloss.Width(sep)
		}

		if i > 0 && i < len(matches)-1 && used+w+reserve > width {
			b.WriteString(sep)
			b.WriteString(ellipsis)

			break
		}

		if i > 0 {
			b.WriteString(sep)
		}

		b.WriteString(rendered)

		used += w
	}

	return b.String()
}

// renderCandidate renders match with its matched characters in bold.
func renderCandidate(match fuzzy.Match, selected bool) string {
	base, highlight := suggestionStyle, suggestionStyle.Bold(true)
	if selected {
		base, highlight = selectedStyle, selectedStyle.Bold(true)
	}

	var b strings.Builder

	for i, r := range match.Str {
		if slices.Contains(match.MatchedIndexes, i) {
			b.WriteString(highlight.Render(string(r)))
		} else {
			b.WriteString(base.Render(string(r)))
		}
	}

	return b.String()
}
