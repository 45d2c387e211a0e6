package lang

import (
	"cmp"
	"fmt"
	"log/slog"
	"math"
	"regexp"
	"strconv"
)

// ValueKind identifies the variant held by a [Value].
type ValueKind int

const (
	ValueAbsent  ValueKind = iota // absent
	ValueInteger                  // integer
	ValueDecimal                  // decimal
	ValueText                     // text
)

// Value is a dynamically typed runtime value. The zero Value is absent.
type Value struct {
	text string
	i    int64
	f    float64
	kind ValueKind
}

// Absent is the value of an unset parameter.
var Absent = Value{}

// Integer returns an integer Value.
func Integer(i int64) Value { return Value{i: i, kind: ValueInteger} }

// Decimal returns a decimal Value.
func Decimal(f float64) Value { return Value{f: f, kind: ValueDecimal} }

// Text returns a text Value.
func Text(s string) Value { return Value{text: s, kind: ValueText} }

// ValueOf converts a native Go value. Signed and unsigned integers become
// [Integer], floats become [Decimal], nil becomes [Absent], and strings,
// booleans and [fmt.Stringer]s become [Text].
func ValueOf(x any) (Value, error) {
	switch x := x.(type) {
	case nil:
		return Absent, nil
	case Value:
		return x, nil
	case int:
		return Integer(int64(x)), nil
	case int8:
		return Integer(int64(x)), nil
	case int16:
		return Integer(int64(x)), nil
	case int32:
		return Integer(int64(x)), nil
	case int64:
		return Integer(x), nil
	case uint:
		return unsignedValue(uint64(x))
	case uint8:
		return Integer(int64(x)), nil
	case uint16:
		return Integer(int64(x)), nil
	case uint32:
		return Integer(int64(x)), nil
	case uint64:
		return unsignedValue(x)
	case float32:
		return Decimal(float64(x)), nil
	case float64:
		return Decimal(x), nil
	case string:
		return Text(x), nil
	case bool:
		return Text(strconv.FormatBool(x)), nil
	case fmt.Stringer:
		return Text(x.String()), nil
	default:
		return Absent, ErrInvalidOperand.
			With(slog.String("type", fmt.Sprintf("%T", x)))
	}
}

func unsignedValue(u uint64) (Value, error) {
	if u > math.MaxInt64 {
		return Decimal(float64(u)), nil
	}

	return Integer(int64(u)), nil
}

// Kind returns the variant held by v.
func (v Value) Kind() ValueKind { return v.kind }

// IsAbsent reports whether v is [Absent].
func (v Value) IsAbsent() bool { return v.kind == ValueAbsent }

// Native returns v as int64, float64, string or nil.
func (v Value) Native() any {
	switch v.kind {
	case ValueInteger:
		return v.i
	case ValueDecimal:
		return v.f
	case ValueText:
		return v.text
	default:
		return nil
	}
}

// String returns the textual form written to output: integers in decimal,
// decimals in shortest form keeping ".0" for integral values, text
// verbatim and the empty string for [Absent].
func (v Value) String() string {
	switch v.kind {
	case ValueInteger:
		return strconv.FormatInt(v.i, 10)
	case ValueDecimal:
		return formatDecimal(v.f)
	case ValueText:
		return v.text
	default:
		return ""
	}
}

// LogValue implements slog.LogValuer.
func (v Value) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("kind", v.kind.String()),
		slog.String("value", v.String()),
	)
}

var (
	integerPattern = regexp.MustCompile(`^[0-9]+$`)
	decimalPattern = regexp.MustCompile(
		`^[+-]?[0-9]+(\.[0-9]+)?([eE][+-]?[0-9]+)?$`)
)

// ToNumber converts v to an [Integer] or [Decimal]. Absent is Integer(0).
// Text made only of digits is an Integer, or a Decimal if it overflows.
// Other text must be a plain decimal literal such as "-1.5" or "1.2E1";
// anything else fails with [ErrInvalidOperand].
func (v Value) ToNumber() (Value, error) {
	switch v.kind {
	case ValueAbsent:
		return Integer(0), nil

	case ValueInteger, ValueDecimal:
		return v, nil
	}

	if integerPattern.MatchString(v.text) {
		if i, err := strconv.ParseInt(v.text, 10, 64); err == nil {
			return Integer(i), nil
		}
	}

	if decimalPattern.MatchString(v.text) {
		if f, err := strconv.ParseFloat(v.text, 64); err == nil {
			return Decimal(f), nil
		}
	}

	return Absent, ErrInvalidOperand.With(slog.String("value", v.text))
}

// Float returns the numeric value of v as a float64.
func (v Value) Float() (float64, error) {
	n, err := v.ToNumber()
	if err != nil {
		return 0, err
	}

	if n.kind == ValueInteger {
		return float64(n.i), nil
	}

	return n.f, nil
}

// Add returns l + r.
func Add(l, r Value) (Value, error) { return Apply("+", l, r) }

// Sub returns l - r.
func Sub(l, r Value) (Value, error) { return Apply("-", l, r) }

// Mul returns l * r.
func Mul(l, r Value) (Value, error) { return Apply("*", l, r) }

// Div returns l / r. Integer division truncates toward zero.
func Div(l, r Value) (Value, error) { return Apply("/", l, r) }

// Apply applies the binary operator op. When both operands are integers
// the result is an integer computed with int64 arithmetic, or a decimal
// when it would overflow; otherwise both are promoted and the result is a
// decimal. A zero right operand of "/"
// fails with [ErrDivisionByZero], and any symbol other than + - * / fails
// with [ErrUnknownOperator].
func Apply(op string, l, r Value) (Value, error) {
	switch op {
	case "+", "-", "*", "/":
	default:
		return Absent, ErrUnknownOperator.With(slog.String("operator", op))
	}

	ln, err := l.ToNumber()
	if err != nil {
		return Absent, err
	}

	rn, err := r.ToNumber()
	if err != nil {
		return Absent, err
	}

	if ln.kind == ValueInteger && rn.kind == ValueInteger {
		return applyInteger(op, ln.i, rn.i)
	}

	lf, _ := ln.Float()
	rf, _ := rn.Float()

	return applyDecimal(op, lf, rf)
}

func applyDecimal(op string, l, r float64) (Value, error) {
	switch op {
	case "+":
		return Decimal(l + r), nil
	case "-":
		return Decimal(l - r), nil
	case "*":
		return Decimal(l * r), nil
	default:
		if r == 0 {
			return Absent, ErrDivisionByZero
		}

		return Decimal(l / r), nil
	}
}

// applyInteger computes op exactly in int64. A result outside the int64
// range is computed in decimal instead.
func applyInteger(op string, l, r int64) (Value, error) {
	var (
		z  int64
		ok bool
	)

	switch op {
	case "+":
		z = l + r
		ok = (r >= 0) == (z >= l)
	case "-":
		z = l - r
		ok = (r >= 0) == (z <= l)
	case "*":
		z = l * r
		ok = l == 0 || (z/l == r && !(l == -1 && r == math.MinInt64))
	default:
		if r == 0 {
			return Absent, ErrDivisionByZero
		}

		z = l / r
		ok = !(l == math.MinInt64 && r == -1)
	}

	if !ok {
		return applyDecimal(op, float64(l), float64(r))
	}

	return Integer(z), nil
}

// Compare compares l with r numerically, returning -1, 0 or +1 as l is
// less than, equal to or greater than r. Two integers are compared
// exactly; otherwise both are promoted to decimals.
func Compare(l, r Value) (int, error) {
	ln, err := l.ToNumber()
	if err != nil {
		return 0, err
	}

	rn, err := r.ToNumber()
	if err != nil {
		return 0, err
	}

	if ln.kind == ValueInteger && rn.kind == ValueInteger {
		return cmp.Compare(ln.i, rn.i), nil
	}

	lf, _ := ln.Float()
	rf, _ := rn.Float()

	return cmp.Compare(lf, rf), nil
}
