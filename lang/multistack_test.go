package lang

import (
	"errors"
	"slices"
	"testing"
)

func TestMultistack_LIFO(t *testing.T) {
	for _, n := range []int{1, 2, 10, 100} {
		m := NewMultistack[int]()

		for i := range n {
			if err := m.Push("k", i); err != nil {
				t.Fatal(err)
			}
		}

		for i := n - 1; i >= 0; i-- {
			v, err := m.Pop("k")
			if err != nil {
				t.Fatal(err)
			}

			if v != i {
				t.Fatalf("n=%d: popped %d, want %d", n, v, i)
			}
		}

		if !m.IsEmpty("k") {
			t.Errorf("n=%d: stack not empty after popping everything", n)
		}
	}
}

func TestMultistack_IndependentKeys(t *testing.T) {
	var m Multistack[string]

	_ = m.Push("a", "a1")
	_ = m.Push("b", "b1")
	_ = m.Push("a", "a2")

	if v, _ := m.Peek("a"); v != "a2" {
		t.Errorf("peek a = %q", v)
	}

	if v, _ := m.Pop("b"); v != "b1" {
		t.Errorf("pop b = %q", v)
	}

	if m.Len("a") != 2 {
		t.Errorf("len a = %d", m.Len("a"))
	}

	if got := slices.Collect(m.Keys()); !slices.Equal(got, []string{"a"}) {
		t.Errorf("keys = %v, want [a]", got)
	}
}

func TestMultistack_Errors(t *testing.T) {
	m := NewMultistack[Value]()

	if _, err := m.Pop("missing"); !errors.Is(err, ErrNoSuchStack) {
		t.Errorf("pop: expected no such stack, got %v", err)
	}

	if _, err := m.Peek("missing"); !errors.Is(err, ErrNoSuchStack) {
		t.Errorf("peek: expected no such stack, got %v", err)
	}

	if err := m.Push("", Integer(1)); !errors.Is(err, ErrInvalidKey) {
		t.Errorf("push: expected invalid key, got %v", err)
	}

	_ = m.Push("k", Integer(1))
	_, _ = m.Pop("k")

	if _, err := m.Pop("k"); !errors.Is(err, ErrNoSuchStack) {
		t.Errorf("pop after drain: expected no such stack, got %v", err)
	}

	if !m.IsEmpty("missing") {
		t.Error("missing key reported non-empty")
	}
}
