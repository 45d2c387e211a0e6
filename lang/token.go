package lang

//go:generate go tool stringer --linecomment --type TokenKind,State,Kind,ValueKind --output kind_string.go

import (
	"log/slog"
	"strconv"
)

// TokenKind identifies the lexical class of a [Token].
type TokenKind int

const (
	TokenEOF      TokenKind = iota // eof
	TokenText                      // text
	TokenTagStart                  // tag start
	TokenTagEnd                    // tag end
	TokenName                      // name
	TokenString                    // string
	TokenInteger                   // integer
	TokenDecimal                   // decimal
	TokenOperator                  // operator
)

// State is the lexer mode.
type State int

const (
	StateText State = iota // text
	StateTag               // tag
)

// Position identifies a location in a document.
// Line and Column are 1-based; Column counts runes.
type Position struct {
	Offset int
	Line   int
	Column int
}

func (p Position) String() string {
	return strconv.Itoa(p.Line) + ":" + strconv.Itoa(p.Column)
}

// Token is a single lexeme.
//
// Value holds the decoded payload: literal text with escapes resolved for
// [TokenText] and [TokenString], the source spelling for everything else.
type Token struct {
	Value string
	Pos   Position
	Kind  TokenKind
}

// LogValue implements slog.LogValuer.
func (t Token) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("kind", t.Kind.String()),
		slog.String("value", t.Value),
		slog.String("position", t.Pos.String()),
	)
}
