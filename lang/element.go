package lang

import (
	"math"
	"strconv"
	"strings"
)

// Operators lists every operator symbol the lexer accepts.
const Operators = "+-*/^"

// Element is an atomic operand of a tag. The set of implementations is
// closed: [Variable], [StringLiteral], [ConstantInteger], [ConstantDecimal],
// [Operator] and [Function].
type Element interface {
	element()
	// String returns the element's canonical source form.
	String() string
}

// Variable references a loop variable or request parameter by name.
type Variable struct{ Name string }

// StringLiteral is a quoted string. Value holds the decoded text.
type StringLiteral struct{ Value string }

// ConstantInteger is an integer literal.
type ConstantInteger struct{ Value int64 }

// ConstantDecimal is a decimal literal.
type ConstantDecimal struct{ Value float64 }

// Operator is one of the symbols in [Operators].
type Operator struct{ Symbol string }

// Function references a named function. Name excludes the "@" prefix.
type Function struct{ Name string }

func (Variable) element()        {}
func (StringLiteral) element()   {}
func (ConstantInteger) element() {}
func (ConstantDecimal) element() {}
func (Operator) element()        {}
func (Function) element()        {}

func (e Variable) String() string { return e.Name }

func (e StringLiteral) String() string { return quoteString(e.Value) }

func (e ConstantInteger) String() string {
	return strconv.FormatInt(e.Value, 10)
}

func (e ConstantDecimal) String() string { return formatDecimal(e.Value) }

func (e Operator) String() string { return e.Symbol }

func (e Function) String() string { return "@" + e.Name }

// quoteString re-applies the string literal escapes.
func quoteString(s string) string {
	var sb strings.Builder

	sb.Grow(len(s) + 2)
	sb.WriteByte('"')

	for _, r := range s {
		switch r {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		default:
			sb.WriteRune(r)
		}
	}

	sb.WriteByte('"')

	return sb.String()
}

// formatDecimal returns the shortest representation of f that reads back
// as the same float64 and always contains a '.' or an exponent.
func formatDecimal(f float64) string {
	var s string

	if abs := math.Abs(f); abs == 0 || (abs >= 1e-4 && abs < 1e21) {
		s = strconv.FormatFloat(f, 'f', -1, 64)
	} else {
		s = strconv.FormatFloat(f, 'g', -1, 64)
	}

	// Also leaves NaN and ±Inf alone.
	if !strings.ContainsAny(s, ".eEnN") {
		s += ".0"
	}

	return s
}
