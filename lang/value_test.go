package lang

import (
	"errors"
	"math"
	"testing"
)

func TestValue_Arithmetic(t *testing.T) {
	tests := []struct {
		name string
		op   string
		l, r Value
		want Value
	}{
		{"int plus int", "+", Integer(2), Integer(3), Integer(5)},
		{"decimal plus decimal", "+", Decimal(1.5), Decimal(1), Decimal(2.5)},
		{"int plus decimal", "+", Integer(1), Decimal(0.5), Decimal(1.5)},
		{"decimal plus int", "+", Decimal(0.5), Integer(1), Decimal(1.5)},
		{"absent plus absent", "+", Absent, Absent, Integer(0)},
		{"absent plus int", "+", Absent, Integer(4), Integer(4)},
		{"exponent text plus int", "+", Text("1.2E1"), Integer(1), Decimal(13)},
		{"digit text plus int", "+", Text("12"), Integer(1), Integer(13)},
		{"leading zeros", "+", Text("007"), Integer(0), Integer(7)},
		{"signed text is decimal", "+", Text("-5"), Integer(1), Decimal(-4)},
		{"huge digits overflow to decimal", "+", Text("99999999999999999999"), Integer(0), Decimal(1e20)},
		{"int minus int", "-", Integer(2), Integer(5), Integer(-3)},
		{"int times decimal", "*", Integer(3), Decimal(0.5), Decimal(1.5)},
		{"int division truncates", "/", Integer(7), Integer(2), Integer(3)},
		{"negative int division truncates toward zero", "/", Integer(-7), Integer(2), Integer(-3)},
		{"decimal division", "/", Integer(7), Decimal(2), Decimal(3.5)},
		{"max int plus one is decimal", "+", Integer(math.MaxInt64), Integer(1), Decimal(1 << 63)},
		{"min int minus one is decimal", "-", Integer(math.MinInt64), Integer(1), Decimal(-(1 << 63))},
		{"max int times two is decimal", "*", Integer(math.MaxInt64), Integer(2), Decimal(1 << 64)},
		{"min int times minus one is decimal", "*", Integer(-1), Integer(math.MinInt64), Decimal(1 << 63)},
		{"min int over minus one is decimal", "/", Integer(math.MinInt64), Integer(-1), Decimal(1 << 63)},
		{"min int plus max int", "+", Integer(math.MinInt64), Integer(math.MaxInt64), Integer(-1)},
		{"max int minus max int", "-", Integer(math.MaxInt64), Integer(math.MaxInt64), Integer(0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Apply(tt.op, tt.l, tt.r)
			if err != nil {
				t.Fatal(err)
			}

			if got != tt.want {
				t.Errorf("%v %s %v = %#v, want %#v", tt.l, tt.op, tt.r, got, tt.want)
			}
		})
	}
}

func TestValue_ArithmeticErrors(t *testing.T) {
	tests := []struct {
		name string
		op   string
		l, r Value
		want error
	}{
		{"int division by zero", "/", Integer(1), Integer(0), ErrDivisionByZero},
		{"decimal division by zero", "/", Decimal(1), Decimal(0), ErrDivisionByZero},
		{"division by absent", "/", Integer(1), Absent, ErrDivisionByZero},
		{"caret", "^", Integer(2), Integer(3), ErrUnknownOperator},
		{"word", "+", Text("abc"), Integer(1), ErrInvalidOperand},
		{"trailing point", "+", Text("1."), Integer(1), ErrInvalidOperand},
		{"comma", "+", Integer(1), Text("1,5"), ErrInvalidOperand},
		{"empty text", "+", Text(""), Integer(1), ErrInvalidOperand},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Apply(tt.op, tt.l, tt.r)
			if !errors.Is(err, tt.want) || !errors.Is(err, ErrRuntime) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestValue_Helpers(t *testing.T) {
	if v, _ := Add(Integer(1), Integer(2)); v != Integer(3) {
		t.Errorf("Add: %v", v)
	}

	if v, _ := Sub(Integer(1), Integer(2)); v != Integer(-1) {
		t.Errorf("Sub: %v", v)
	}

	if v, _ := Mul(Integer(4), Integer(2)); v != Integer(8) {
		t.Errorf("Mul: %v", v)
	}

	if v, _ := Div(Integer(9), Integer(3)); v != Integer(3) {
		t.Errorf("Div: %v", v)
	}
}

func TestCompare(t *testing.T) {
	tests := []struct {
		name string
		l, r Value
		want int
	}{
		{"less", Integer(1), Integer(2), -1},
		{"greater", Integer(2), Integer(1), 1},
		{"equal", Integer(2), Integer(2), 0},
		{"large integers compare exactly", Integer(math.MaxInt64), Integer(math.MaxInt64 - 1), 1},
		{"decimal vs int", Decimal(1.5), Integer(1), 1},
		{"int vs decimal", Integer(1), Decimal(1.5), -1},
		{"text vs int", Text("3"), Integer(3), 0},
		{"absent is zero", Absent, Integer(0), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Compare(tt.l, tt.r)
			if err != nil {
				t.Fatal(err)
			}

			if got != tt.want {
				t.Errorf("Compare(%v, %v) = %d, want %d", tt.l, tt.r, got, tt.want)
			}
		})
	}
}

// Comparing a value with itself always yields 0, so swapping the
// operands must flip the sign for any unequal pair.
func TestCompare_UsesBothOperands(t *testing.T) {
	pairs := [][2]Value{
		{Integer(1), Integer(2)},
		{Decimal(-1), Decimal(3.5)},
		{Text("4"), Decimal(4.5)},
	}

	for _, p := range pairs {
		lr, err := Compare(p[0], p[1])
		if err != nil {
			t.Fatal(err)
		}

		rl, err := Compare(p[1], p[0])
		if err != nil {
			t.Fatal(err)
		}

		if lr != -1 || rl != 1 {
			t.Errorf("Compare(%v, %v) = %d / reversed %d, want -1 / 1", p[0], p[1], lr, rl)
		}
	}
}

func TestCompare_InvalidOperand(t *testing.T) {
	if _, err := Compare(Text("x"), Integer(1)); !errors.Is(err, ErrInvalidOperand) {
		t.Errorf("expected invalid operand, got %v", err)
	}
}

func TestValue_String(t *testing.T) {
	tests := []struct {
		v    Value
		want string
	}{
		{Integer(-4), "-4"},
		{Decimal(13), "13.0"},
		{Decimal(0.1), "0.1"},
		{Decimal(-2.5), "-2.5"},
		{Decimal(1e21), "1e+21"},
		{Decimal(1e-7), "1e-07"},
		{Text("verbatim 1.0"), "verbatim 1.0"},
		{Absent, ""},
	}

	for _, tt := range tests {
		if got := tt.v.String(); got != tt.want {
			t.Errorf("%#v.String() = %q, want %q", tt.v, got, tt.want)
		}
	}
}

func TestValueOf(t *testing.T) {
	tests := []struct {
		in   any
		want Value
	}{
		{nil, Absent},
		{3, Integer(3)},
		{int32(-3), Integer(-3)},
		{uint8(9), Integer(9)},
		{uint64(math.MaxUint64), Decimal(float64(uint64(math.MaxUint64)))},
		{2.5, Decimal(2.5)},
		{"s", Text("s")},
		{true, Text("true")},
		{Integer(1), Integer(1)},
	}

	for _, tt := range tests {
		got, err := ValueOf(tt.in)
		if err != nil {
			t.Fatalf("ValueOf(%v): %v", tt.in, err)
		}

		if got != tt.want {
			t.Errorf("ValueOf(%v) = %#v, want %#v", tt.in, got, tt.want)
		}
	}

	if _, err := ValueOf([]int{1}); !errors.Is(err, ErrInvalidOperand) {
		t.Errorf("expected invalid operand for slice, got %v", err)
	}
}

func TestValue_Native(t *testing.T) {
	if Integer(1).Native() != int64(1) ||
		Decimal(1.5).Native() != 1.5 ||
		Text("x").Native() != "x" ||
		Absent.Native() != nil {
		t.Error("unexpected native conversion")
	}
}
