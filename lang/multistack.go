package lang

import (
	"iter"
	"log/slog"
	"maps"
	"slices"
)

// Multistack maps names to independent LIFO stacks. The zero value is
// ready to use. A stack is removed once its last value is popped.
type Multistack[V any] struct {
	stacks map[string][]V
}

// NewMultistack returns an empty Multistack.
func NewMultistack[V any]() *Multistack[V] {
	return &Multistack[V]{stacks: make(map[string][]V)}
}

// Push appends v to the stack for key, creating it if needed. The empty
// key is rejected with [ErrInvalidKey].
func (m *Multistack[V]) Push(key string, v V) error {
	if key == "" {
		return ErrInvalidKey
	}

	if m.stacks == nil {
		m.stacks = make(map[string][]V)
	}

	m.stacks[key] = append(m.stacks[key], v)

	return nil
}

// Pop removes and returns the top of the stack for key, or fails with
// [ErrNoSuchStack] if there is none.
func (m *Multistack[V]) Pop(key string) (V, error) {
	s, err := m.stack(key)
	if err != nil {
		var zero V

		return zero, err
	}

	v := s[len(s)-1]

	if len(s) == 1 {
		delete(m.stacks, key)
	} else {
		clear(s[len(s)-1:])
		m.stacks[key] = s[:len(s)-1]
	}

	return v, nil
}

// Peek returns the top of the stack for key without removing it, or fails
// with [ErrNoSuchStack] if there is none.
func (m *Multistack[V]) Peek(key string) (V, error) {
	s, err := m.stack(key)
	if err != nil {
		var zero V

		return zero, err
	}

	return s[len(s)-1], nil
}

// IsEmpty reports whether no values are stored under key.
func (m *Multistack[V]) IsEmpty(key string) bool {
	return len(m.stacks[key]) == 0
}

// Len returns the number of values stored under key.
func (m *Multistack[V]) Len(key string) int {
	return len(m.stacks[key])
}

// Keys returns the names of all non-empty stacks in sorted order.
func (m *Multistack[V]) Keys() iter.Seq[string] {
	return slices.Values(slices.Sorted(maps.Keys(m.stacks)))
}

func (m *Multistack[V]) stack(key string) ([]V, error) {
	s := m.stacks[key]
	if len(s) == 0 {
		return nil, ErrNoSuchStack.With(slog.String("key", key))
	}

	return s, nil
}
