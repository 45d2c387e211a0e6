package lang

import (
	"context"
	"iter"
	"log/slog"
	"math"
	"slices"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Func implements an "@name" function. It pops its operands from stack,
// rightmost operand first, and pushes its results.
type Func func(ctx context.Context, stack *Operands, rc RequestContext) error

// Operands is the evaluation stack of a single echo tag.
type Operands struct {
	values []Value
}

// Push pushes values in order, so the last one ends up on top.
func (s *Operands) Push(values ...Value) {
	s.values = append(s.values, values...)
}

// Pop removes and returns the top value, or fails with [ErrStackUnderflow].
func (s *Operands) Pop() (Value, error) {
	if len(s.values) == 0 {
		return Absent, ErrStackUnderflow
	}

	v := s.values[len(s.values)-1]
	s.values = s.values[:len(s.values)-1]

	return v, nil
}

// PopN removes the top n values and returns them bottom to top, so that
// operands come back in the order they were pushed.
func (s *Operands) PopN(n int) ([]Value, error) {
	if n > len(s.values) {
		return nil, ErrStackUnderflow.
			With(slog.Int("want", n), slog.Int("have", len(s.values)))
	}

	i := len(s.values) - n
	out := slices.Clone(s.values[i:])
	s.values = s.values[:i]

	return out, nil
}

// Len returns the number of values on the stack.
func (s *Operands) Len() int { return len(s.values) }

// All iterates the stack from bottom to top.
func (s *Operands) All() iter.Seq[Value] { return slices.Values(s.values) }

// Builtins returns a fresh copy of the default function table.
//
//	@sin         x        -> sin(x degrees)
//	@decfmt      x fmt    -> x formatted by pattern fmt, such as "0.000"
//	@dup         x        -> x x
//	@swap        a b      -> b a
//	@setMimeType x        ->
//	@paramGet    name def -> parameter name, or def if unset
//	@pparamGet   name def -> persistent parameter name, or def if unset
//	@pparamSet   v name   ->
//	@pparamDel   name     ->
//	@tparamGet   name def -> temporary parameter name, or def if unset
//	@tparamSet   v name   ->
//	@tparamDel   name     ->
func Builtins() map[string]Func {
	return map[string]Func{
		"sin":         fnSin,
		"decfmt":      fnDecfmt,
		"dup":         fnDup,
		"swap":        fnSwap,
		"setMimeType": fnSetMimeType,
		"paramGet":    getter(RequestContext.Parameter),
		"pparamGet":   getter(RequestContext.PersistentParameter),
		"pparamSet":   setter(RequestContext.SetPersistentParameter),
		"pparamDel":   remover(RequestContext.RemovePersistentParameter),
		"tparamGet":   getter(RequestContext.TemporaryParameter),
		"tparamSet":   setter(RequestContext.SetTemporaryParameter),
		"tparamDel":   remover(RequestContext.RemoveTemporaryParameter),
	}
}

func fnSin(_ context.Context, stack *Operands, _ RequestContext) error {
	x, err := stack.Pop()
	if err != nil {
		return err
	}

	deg, err := x.Float()
	if err != nil {
		return err
	}

	stack.Push(Decimal(math.Sin(deg * math.Pi / 180)))

	return nil
}

func fnDecfmt(_ context.Context, stack *Operands, _ RequestContext) error {
	args, err := stack.PopN(2)
	if err != nil {
		return err
	}

	s, err := FormatDecimal(args[0], args[1].String())
	if err != nil {
		return err
	}

	stack.Push(Text(s))

	return nil
}

func fnDup(_ context.Context, stack *Operands, _ RequestContext) error {
	x, err := stack.Pop()
	if err != nil {
		return err
	}

	stack.Push(x, x)

	return nil
}

func fnSwap(_ context.Context, stack *Operands, _ RequestContext) error {
	args, err := stack.PopN(2)
	if err != nil {
		return err
	}

	stack.Push(args[1], args[0])

	return nil
}

func fnSetMimeType(_ context.Context, stack *Operands, rc RequestContext) error {
	x, err := stack.Pop()
	if err != nil {
		return err
	}

	return rc.SetMimeType(x.String())
}

func getter(get func(RequestContext, string) Value) Func {
	return func(_ context.Context, stack *Operands, rc RequestContext) error {
		args, err := stack.PopN(2)
		if err != nil {
			return err
		}

		v := get(rc, args[0].String())
		if v.IsAbsent() {
			v = args[1]
		}

		stack.Push(v)

		return nil
	}
}

func setter(set func(RequestContext, string, Value)) Func {
	return func(_ context.Context, stack *Operands, rc RequestContext) error {
		args, err := stack.PopN(2)
		if err != nil {
			return err
		}

		set(rc, args[1].String(), args[0])

		return nil
	}
}

func remover(remove func(RequestContext, string)) Func {
	return func(_ context.Context, stack *Operands, rc RequestContext) error {
		name, err := stack.Pop()
		if err != nil {
			return err
		}

		remove(rc, name.String())

		return nil
	}
}

// decimalFormat is the subset of a DecimalFormat pattern understood by
// [FormatDecimal].
type decimalFormat struct {
	minInt  int
	minFrac int
	maxFrac int
	group   bool
}

func parseDecimalFormat(pattern string) (decimalFormat, error) {
	var f decimalFormat

	invalid := func() (decimalFormat, error) {
		return decimalFormat{}, ErrInvalidFormat.
			With(slog.String("pattern", pattern))
	}

	if pattern == "" {
		return invalid()
	}

	whole, frac, _ := strings.Cut(pattern, ".")

	for _, r := range whole {
		switch r {
		case '0':
			f.minInt++
		case '#':
		case ',':
			f.group = true
		default:
			return invalid()
		}
	}

	optional := false

	for _, r := range frac {
		switch r {
		case '0':
			if optional {
				return invalid()
			}

			f.minFrac++
		case '#':
			optional = true
		default:
			return invalid()
		}

		f.maxFrac++
	}

	return f, nil
}

// FormatDecimal formats v according to a DecimalFormat-style pattern:
// '0' is a required digit, '#' an optional digit, ',' enables grouping and
// '.' separates the fraction. Rounding is half-even.
func FormatDecimal(v Value, pattern string) (string, error) {
	f, err := parseDecimalFormat(pattern)
	if err != nil {
		return "", err
	}

	n, err := v.ToNumber()
	if err != nil {
		return "", err
	}

	opts := []number.Option{
		number.MinFractionDigits(f.minFrac),
		number.MaxFractionDigits(f.maxFrac),
	}

	if f.minInt > 0 {
		opts = append(opts, number.MinIntegerDigits(f.minInt))
	}

	if !f.group {
		opts = append(opts, number.NoSeparator())
	}

	p := message.NewPrinter(language.English)

	return p.Sprintf("%v", number.Decimal(n.Native(), opts...)), nil
}
