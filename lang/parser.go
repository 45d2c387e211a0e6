package lang

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/ardnew/smartscript/log"
)

// Tag names.
const (
	TagFor  = "FOR"
	TagEcho = "="
	TagEnd  = "END"
)

// ParseReader parses a document from an io.Reader.
func ParseReader(
	ctx context.Context,
	r io.Reader,
	opts ...Option,
) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, ErrReadInput.Wrap(err)
	}

	return ParseString(ctx, string(data), opts...)
}

// ParseString parses a document from a string. On error no partial tree is
// returned.
func ParseString(ctx context.Context, s string, opts ...Option) (*Document, error) {
	cfg := makeConfig(opts...)

	p := &parser{
		ctx:    ctx,
		lex:    NewLexer(s, opts...),
		doc:    &Document{},
		logger: cfg.logger,
	}

	p.logger.TraceContext(ctx, "parse start", slog.Int("bytes", len(s)))

	if err := p.parseDocument(); err != nil {
		return nil, err
	}

	p.logger.TraceContext(ctx, "parse complete",
		slog.Int("nodes", len(p.doc.Children)))

	return p.doc, nil
}

// parser holds the parser state.
type parser struct {
	ctx    context.Context
	lex    *Lexer
	doc    *Document
	stack  []container // open nodes; doc at the bottom
	logger log.Logger
	open   int // loop tags not yet closed by END
}

func (p *parser) top() container { return p.stack[len(p.stack)-1] }

func (p *parser) push(c container) { p.stack = append(p.stack, c) }

func (p *parser) pop() container {
	c := p.top()
	p.stack = p.stack[:len(p.stack)-1]

	return c
}

func (p *parser) parseDocument() error {
	p.stack = []container{p.doc}

	for {
		tok, err := p.lex.Next()
		if err != nil {
			return err
		}

		switch tok.Kind {
		case TokenEOF:
			if p.open != 0 {
				return ErrUnclosedTag.WithPosition(tok.Pos).
					With(slog.Int("open", p.open))
			}

			return nil

		case TokenText:
			p.top().appendChild(&TextNode{Content: tok.Value, Pos: tok.Pos})

		case TokenTagStart:
			if err := p.parseTag(tok.Pos); err != nil {
				return err
			}

		default:
			return unexpected(tok)
		}
	}
}

// parseTag parses everything following a tag start.
func (p *parser) parseTag(pos Position) error {
	tok, err := p.lex.Next()
	if err != nil {
		return err
	}

	if tok.Kind != TokenName {
		return ErrUnknownTag.WithPosition(tok.Pos).
			With(slog.String("token", tok.Kind.String()))
	}

	p.logger.TraceContext(p.ctx, "tag open",
		slog.String("name", tok.Value),
		slog.String("position", pos.String()))

	switch {
	case strings.EqualFold(tok.Value, TagFor):
		return p.parseFor(pos)

	case tok.Value == TagEcho:
		return p.parseEcho(pos)

	case strings.EqualFold(tok.Value, TagEnd):
		return p.parseEnd(pos)

	default:
		return ErrUnknownTag.WithPosition(tok.Pos).
			With(slog.String("name", tok.Value))
	}
}

func (p *parser) parseFor(pos Position) error {
	p.open++

	elems, err := p.parseElements()
	if err != nil {
		return err
	}

	if len(elems) > 0 {
		if _, ok := elems[0].(Variable); !ok {
			return ErrForVariable.WithPosition(pos).
				With(slog.String("element", elems[0].String()))
		}

		for _, e := range elems[1:] {
			switch e.(type) {
			case Operator, Function:
				return ErrForArgument.WithPosition(pos).
					With(slog.String("element", e.String()))
			}
		}
	}

	if n := len(elems); n != 3 && n != 4 {
		return ErrForArity.WithPosition(pos).
			With(slog.Int("count", n)).
			Wrap(fmt.Errorf("got %d, want 3 or 4", n))
	}

	loop := &Loop{
		Variable: elems[0].(Variable),
		Start:    elems[1],
		End:      elems[2],
		Pos:      pos,
	}

	if len(elems) == 4 {
		loop.Step = elems[3]
	}

	p.top().appendChild(loop)
	p.push(loop)

	return nil
}

func (p *parser) parseEcho(pos Position) error {
	elems, err := p.parseElements()
	if err != nil {
		return err
	}

	p.top().appendChild(&Echo{Elements: elems, Pos: pos})

	return nil
}

func (p *parser) parseEnd(pos Position) error {
	if p.open == 0 {
		return ErrNoOpenTag.WithPosition(pos)
	}

	tok, err := p.lex.Next()
	if err != nil {
		return err
	}

	if tok.Kind != TokenTagEnd {
		return ErrInvalidEndTag.WithPosition(tok.Pos).
			With(slog.String("token", tok.Kind.String()))
	}

	if len(p.stack) == 1 {
		return ErrTooManyEndTags.WithPosition(pos)
	}

	p.pop()
	p.open--

	return nil
}

// parseElements converts tokens to elements up to and including the tag end.
func (p *parser) parseElements() ([]Element, error) {
	var elems []Element

	for {
		tok, err := p.lex.Next()
		if err != nil {
			return nil, err
		}

		if tok.Kind == TokenTagEnd {
			return elems, nil
		}

		e, err := elementFor(tok)
		if err != nil {
			return nil, err
		}

		elems = append(elems, e)
	}
}

// elementFor converts a single tag token to an Element.
func elementFor(tok Token) (Element, error) {
	switch tok.Kind {
	case TokenString:
		return StringLiteral{Value: tok.Value}, nil

	case TokenName:
		if IsVariableName(tok.Value) {
			return Variable{Name: tok.Value}, nil
		}

		if name, ok := strings.CutPrefix(tok.Value, "@"); ok &&
			IsVariableName(name) {
			return Function{Name: name}, nil
		}

		return nil, ErrInvalidName.WithPosition(tok.Pos).
			With(slog.String("name", tok.Value))

	case TokenOperator:
		return Operator{Symbol: tok.Value}, nil

	case TokenInteger:
		v, err := strconv.ParseInt(tok.Value, 10, 64)
		if err != nil {
			return nil, ErrInvalidNumber.WithPosition(tok.Pos).Wrap(err)
		}

		return ConstantInteger{Value: v}, nil

	case TokenDecimal:
		v, err := strconv.ParseFloat(tok.Value, 64)
		if err != nil {
			return nil, ErrInvalidNumber.WithPosition(tok.Pos).Wrap(err)
		}

		return ConstantDecimal{Value: v}, nil

	default:
		return nil, unexpected(tok)
	}
}

func unexpected(tok Token) error {
	return ErrUnexpectedTok.WithPosition(tok.Pos).
		With(slog.String("token", tok.Kind.String())).
		Wrap(errors.New(tok.Kind.String()))
}
