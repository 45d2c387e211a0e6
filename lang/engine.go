package lang

import (
	"context"
	"fmt"
	"log/slog"
	"maps"

	"github.com/ardnew/smartscript/log"
)

// Engine executes a parsed [Document] against a [RequestContext].
//
// Each call to [Engine.Execute] starts with empty variable stacks. An
// Engine is not safe for concurrent use; build one per request.
type Engine struct {
	doc    *Document
	rc     RequestContext
	vars   *Multistack[Value]
	funcs  map[string]Func
	logger log.Logger
}

// NewEngine returns an Engine for doc. Functions registered with
// [WithFunc] or [WithFuncs] are added to [Builtins].
func NewEngine(doc *Document, rc RequestContext, opts ...Option) *Engine {
	cfg := makeConfig(opts...)

	funcs := Builtins()
	maps.Copy(funcs, cfg.funcs)

	return &Engine{
		doc:    doc,
		rc:     rc,
		funcs:  funcs,
		logger: cfg.logger,
	}
}

// Execute is shorthand for NewEngine(doc, rc, opts...).Execute(ctx).
func Execute(
	ctx context.Context,
	doc *Document,
	rc RequestContext,
	opts ...Option,
) error {
	return NewEngine(doc, rc, opts...).Execute(ctx)
}

// Execute writes the document's output to the request context. It stops
// at the first error; output already written is not rolled back.
// Cancellation of ctx is observed between nodes.
func (e *Engine) Execute(ctx context.Context) error {
	e.vars = NewMultistack[Value]()

	e.logger.TraceContext(ctx, "execute start",
		slog.Int("nodes", len(e.doc.Children)))

	if err := e.exec(ctx, e.doc); err != nil {
		e.logger.DebugContext(ctx, "execute failed", slog.Any("error", err))

		return err
	}

	e.logger.TraceContext(ctx, "execute complete")

	return nil
}

func (e *Engine) exec(ctx context.Context, n Node) error {
	if err := ctx.Err(); err != nil {
		return context.Cause(ctx)
	}

	switch n := n.(type) {
	case *Document:
		return e.execNodes(ctx, n.Children)

	case *TextNode:
		return e.write(n.Content, n.Pos)

	case *Loop:
		return e.execLoop(ctx, n)

	case *Echo:
		return e.execEcho(ctx, n)

	default:
		panic(fmt.Sprintf("lang: unexpected node type %T", n))
	}
}

func (e *Engine) execNodes(ctx context.Context, nodes []Node) error {
	for _, n := range nodes {
		if err := e.exec(ctx, n); err != nil {
			return err
		}
	}

	return nil
}

func (e *Engine) execLoop(ctx context.Context, n *Loop) error {
	name := n.Variable.Name

	start, err := e.resolve(n.Start)
	if err != nil {
		return atPosition(err, n.Pos)
	}

	end, err := e.resolve(n.End)
	if err != nil {
		return atPosition(err, n.Pos)
	}

	step := Integer(1)

	if n.Step != nil {
		if step, err = e.resolve(n.Step); err != nil {
			return atPosition(err, n.Pos)
		}
	}

	e.logger.TraceContext(ctx, "loop init",
		slog.String("variable", name),
		slog.Any("start", start),
		slog.Any("end", end),
		slog.Any("step", step))

	if err := e.vars.Push(name, start); err != nil {
		return atPosition(err, n.Pos)
	}

	for {
		if err := ctx.Err(); err != nil {
			return context.Cause(ctx)
		}

		cur, err := e.vars.Peek(name)
		if err != nil {
			return atPosition(err, n.Pos)
		}

		c, err := Compare(cur, end)
		if err != nil {
			return atPosition(err, n.Pos)
		}

		if c > 0 {
			break
		}

		e.logger.TraceContext(ctx, "loop iterate",
			slog.String("variable", name),
			slog.Any("value", cur))

		if err := e.execNodes(ctx, n.Children); err != nil {
			return err
		}

		if cur, err = e.vars.Pop(name); err != nil {
			return atPosition(err, n.Pos)
		}

		next, err := Add(cur, step)
		if err != nil {
			return atPosition(err, n.Pos)
		}

		if err := e.vars.Push(name, next); err != nil {
			return atPosition(err, n.Pos)
		}
	}

	if _, err := e.vars.Pop(name); err != nil {
		return atPosition(err, n.Pos)
	}

	e.logger.TraceContext(ctx, "loop done", slog.String("variable", name))

	return nil
}

func (e *Engine) execEcho(ctx context.Context, n *Echo) error {
	var stack Operands

	for _, el := range n.Elements {
		if err := e.eval(ctx, &stack, el); err != nil {
			return atPosition(err, n.Pos)
		}
	}

	e.logger.TraceContext(ctx, "echo result", slog.Int("values", stack.Len()))

	for v := range stack.All() {
		if err := e.write(v.String(), n.Pos); err != nil {
			return err
		}
	}

	return nil
}

// eval applies a single echo element to stack.
func (e *Engine) eval(ctx context.Context, stack *Operands, el Element) error {
	switch el := el.(type) {
	case Operator:
		switch el.Symbol {
		case "+", "-", "*", "/":
		default:
			return ErrUnknownOperator.With(slog.String("operator", el.Symbol))
		}

		args, err := stack.PopN(2)
		if err != nil {
			return err
		}

		v, err := Apply(el.Symbol, args[0], args[1])
		if err != nil {
			return err
		}

		stack.Push(v)

		return nil

	case Function:
		fn, ok := e.funcs[el.Name]
		if !ok {
			return ErrUnknownFunction.With(slog.String("function", el.String()))
		}

		if err := fn(ctx, stack, e.rc); err != nil {
			if ee, ok := err.(*Error); ok {
				return ee.With(slog.String("function", el.String()))
			}

			return err
		}

		return nil

	default:
		v, err := e.resolve(el)
		if err != nil {
			return err
		}

		stack.Push(v)

		return nil
	}
}

// resolve returns the value of an operand element. Variables are looked
// up on the variable stacks first, then among the request parameters.
func (e *Engine) resolve(el Element) (Value, error) {
	switch el := el.(type) {
	case Variable:
		if !e.vars.IsEmpty(el.Name) {
			return e.vars.Peek(el.Name)
		}

		return e.rc.Parameter(el.Name), nil

	case StringLiteral:
		return Text(el.Value), nil

	case ConstantInteger:
		return Integer(el.Value), nil

	case ConstantDecimal:
		return Decimal(el.Value), nil

	default:
		return Absent, ErrInvalidOperand.With(slog.String("element", el.String()))
	}
}

func (e *Engine) write(s string, pos Position) error {
	err := e.rc.Write(s)
	if err == nil {
		return nil
	}

	if _, ok := err.(*Error); ok {
		return atPosition(err, pos)
	}

	return ErrWrite.WithPosition(pos).Wrap(err)
}
