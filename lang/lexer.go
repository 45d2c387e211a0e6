package lang

import (
	"iter"
	"log/slog"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ardnew/smartscript/log"
)

// Tag delimiters.
const (
	TagOpen  = "{$"
	TagClose = "$}"
)

// Lexer splits a document into tokens. It starts in [StateText] and
// switches to [StateTag] after emitting [TokenTagStart], and back after
// [TokenTagEnd].
//
// A Lexer is not safe for concurrent use.
type Lexer struct {
	input  string
	logger log.Logger
	pos    int
	line   int
	col    int
	state  State
}

// NewLexer returns a Lexer positioned at the start of input.
func NewLexer(input string, opts ...Option) *Lexer {
	cfg := makeConfig(opts...)

	return &Lexer{
		input:  input,
		logger: cfg.logger,
		line:   1,
		col:    1,
		state:  StateText,
	}
}

// State returns the current lexer mode.
func (l *Lexer) State() State { return l.state }

// SetState forces the lexer mode.
func (l *Lexer) SetState(s State) { l.state = s }

// Next returns the next token. After [TokenEOF] every call returns
// [TokenEOF] again.
func (l *Lexer) Next() (Token, error) {
	var (
		tok Token
		err error
	)

	if l.state == StateText {
		tok, err = l.lexText()
	} else {
		tok, err = l.lexTag()
	}

	if err == nil {
		l.logger.Trace("token", slog.Any("token", tok))
	}

	return tok, err
}

// All returns an iterator over the remaining tokens, ending after
// [TokenEOF] or the first error.
func (l *Lexer) All() iter.Seq2[Token, error] {
	return func(yield func(Token, error) bool) {
		for {
			tok, err := l.Next()
			if !yield(tok, err) || err != nil || tok.Kind == TokenEOF {
				return
			}
		}
	}
}

// Tokenize lexes all of input.
func Tokenize(input string, opts ...Option) ([]Token, error) {
	var toks []Token

	for tok, err := range NewLexer(input, opts...).All() {
		if err != nil {
			return nil, err
		}

		toks = append(toks, tok)
	}

	return toks, nil
}

func (l *Lexer) lexText() (Token, error) {
	pos := l.position()

	if l.eof() {
		return Token{Kind: TokenEOF, Pos: pos}, nil
	}

	if l.hasPrefix(TagOpen) {
		l.advanceN(len(TagOpen))
		l.state = StateTag

		return Token{Kind: TokenTagStart, Value: TagOpen, Pos: pos}, nil
	}

	var sb strings.Builder

	for !l.eof() && !l.hasPrefix(TagOpen) {
		ch := l.peek()

		if ch == '\\' {
			if next := l.peekAt(1); next == '\\' || next == '{' {
				l.advance()
				l.advance()
				sb.WriteRune(next)

				continue
			}
		}

		sb.WriteRune(ch)
		l.advance()
	}

	return Token{Kind: TokenText, Value: sb.String(), Pos: pos}, nil
}

func (l *Lexer) lexTag() (Token, error) {
	l.skipWhitespace()

	pos := l.position()

	if l.eof() {
		return Token{}, ErrUnterminatedTag.WithPosition(pos)
	}

	if l.hasPrefix(TagClose) {
		l.advanceN(len(TagClose))
		l.state = StateText

		return Token{Kind: TokenTagEnd, Value: TagClose, Pos: pos}, nil
	}

	ch := l.peek()

	switch {
	case isNameStart(ch):
		return Token{Kind: TokenName, Value: l.scanName(), Pos: pos}, nil

	case ch == '@':
		start := l.pos
		l.advance()

		if isNameStart(l.peek()) {
			l.scanName()
		}

		return Token{Kind: TokenName, Value: l.input[start:l.pos], Pos: pos}, nil

	case ch == '=':
		l.advance()

		return Token{Kind: TokenName, Value: "=", Pos: pos}, nil

	case ch == '"':
		return l.lexString()

	case isDigit(ch), ch == '-' && isDigit(l.peekAt(1)):
		return l.lexNumber()

	case strings.ContainsRune(Operators, ch):
		l.advance()

		return Token{Kind: TokenOperator, Value: string(ch), Pos: pos}, nil
	}

	return Token{}, ErrUnexpectedChar.WithPosition(pos).
		With(slog.String("char", strconv.QuoteRune(ch)))
}

func (l *Lexer) lexString() (Token, error) {
	pos := l.position()

	l.advance() // opening quote

	var sb strings.Builder

	for {
		if l.eof() {
			return Token{}, ErrUnterminatedString.WithPosition(pos)
		}

		ch := l.peek()

		switch ch {
		case '"':
			l.advance()

			return Token{Kind: TokenString, Value: sb.String(), Pos: pos}, nil

		case '\\':
			esc := l.position()

			l.advance()

			if l.eof() {
				return Token{}, ErrUnterminatedString.WithPosition(pos)
			}

			switch r := l.peek(); r {
			case '"', '\\':
				sb.WriteRune(r)
			case 'n':
				sb.WriteByte('\n')
			case 'r':
				sb.WriteByte('\r')
			case 't':
				sb.WriteByte('\t')
			default:
				return Token{}, ErrInvalidEscape.WithPosition(esc).
					With(slog.String("escape", "\\"+string(r)))
			}

			l.advance()

		default:
			sb.WriteRune(ch)
			l.advance()
		}
	}
}

func (l *Lexer) lexNumber() (Token, error) {
	pos := l.position()
	start := l.pos
	kind := TokenInteger

	if l.peek() == '-' {
		l.advance()
	}

	l.scanDigits()

	if l.peek() == '.' {
		kind = TokenDecimal

		l.advance()

		if l.scanDigits() == 0 {
			return Token{}, l.invalidNumber(pos, start)
		}
	}

	if r := l.peek(); r == 'e' || r == 'E' {
		kind = TokenDecimal

		l.advance()

		if r := l.peek(); r == '+' || r == '-' {
			l.advance()
		}

		if l.scanDigits() == 0 {
			return Token{}, l.invalidNumber(pos, start)
		}
	}

	text := l.input[start:l.pos]

	var err error

	if kind == TokenInteger {
		_, err = strconv.ParseInt(text, 10, 64)
	} else {
		_, err = strconv.ParseFloat(text, 64)
	}

	if err != nil {
		return Token{}, ErrInvalidNumber.WithPosition(pos).
			With(slog.String("literal", text)).
			Wrap(err)
	}

	return Token{Kind: kind, Value: text, Pos: pos}, nil
}

func (l *Lexer) invalidNumber(pos Position, start int) error {
	return ErrInvalidNumber.WithPosition(pos).
		With(slog.String("literal", l.input[start:l.pos]))
}

func (l *Lexer) scanName() string {
	start := l.pos

	for !l.eof() && isNamePart(l.peek()) {
		l.advance()
	}

	return l.input[start:l.pos]
}

func (l *Lexer) scanDigits() int {
	n := 0

	for !l.eof() && isDigit(l.peek()) {
		l.advance()
		n++
	}

	return n
}

// Cursor helpers

func (l *Lexer) peek() rune {
	if l.eof() {
		return 0
	}

	r, _ := utf8.DecodeRuneInString(l.input[l.pos:])

	return r
}

func (l *Lexer) peekAt(n int) rune {
	i := l.pos

	for ; n > 0 && i < len(l.input); n-- {
		_, size := utf8.DecodeRuneInString(l.input[i:])
		i += size
	}

	if i >= len(l.input) {
		return 0
	}

	r, _ := utf8.DecodeRuneInString(l.input[i:])

	return r
}

func (l *Lexer) hasPrefix(s string) bool {
	return strings.HasPrefix(l.input[l.pos:], s)
}

func (l *Lexer) advance() {
	if l.eof() {
		return
	}

	r, size := utf8.DecodeRuneInString(l.input[l.pos:])

	l.pos += size
	if r == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
}

func (l *Lexer) advanceN(n int) {
	for range n {
		l.advance()
	}
}

func (l *Lexer) eof() bool {
	return l.pos >= len(l.input)
}

func (l *Lexer) position() Position {
	return Position{
		Offset: l.pos,
		Line:   l.line,
		Column: l.col,
	}
}

func (l *Lexer) skipWhitespace() {
	for !l.eof() && unicode.IsSpace(l.peek()) {
		l.advance()
	}
}

// Character classification

func isNameStart(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isNamePart(r rune) bool {
	return isNameStart(r) || isDigit(r) || r == '_'
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

// IsVariableName reports whether s is a valid variable name.
func IsVariableName(s string) bool {
	if s == "" || !isNameStart(rune(s[0])) {
		return false
	}

	for _, r := range s[1:] {
		if !isNamePart(r) {
			return false
		}
	}

	return true
}
