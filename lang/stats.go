package lang

import (
	"log/slog"
	"maps"
	"slices"
)

// Stats summarizes a document tree.
type Stats struct {
	Variables []string // distinct variable names, sorted
	Functions []string // distinct function names without "@", sorted
	Texts     int
	Loops     int
	Echoes    int
	Depth     int // deepest loop nesting
}

// Inspect walks n and returns its [Stats].
func Inspect(n Node) Stats {
	v := &statsVisitor{
		vars:  make(map[string]struct{}),
		funcs: make(map[string]struct{}),
	}

	// statsVisitor methods always return nil, and Walk fails only when a
	// visitor method does.
	_ = Walk(v, n)

	v.stats.Variables = slices.Sorted(maps.Keys(v.vars))
	v.stats.Functions = slices.Sorted(maps.Keys(v.funcs))
	v.stats.Depth = depth(n)

	return v.stats
}

// LogValue implements slog.LogValuer.
func (s Stats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("texts", s.Texts),
		slog.Int("loops", s.Loops),
		slog.Int("echoes", s.Echoes),
		slog.Int("depth", s.Depth),
		slog.Any("variables", s.Variables),
		slog.Any("functions", s.Functions),
	)
}

// statsVisitor accumulates [Stats]. Its methods never return an error.
type statsVisitor struct {
	vars  map[string]struct{}
	funcs map[string]struct{}
	stats Stats
}

func (v *statsVisitor) VisitDocument(*Document) error { return nil }

func (v *statsVisitor) VisitText(*TextNode) error {
	v.stats.Texts++

	return nil
}

func (v *statsVisitor) VisitLoop(l *Loop) error {
	v.stats.Loops++
	v.element(l.Variable)

	for _, e := range l.Bound() {
		v.element(e)
	}

	return nil
}

func (v *statsVisitor) VisitEcho(e *Echo) error {
	v.stats.Echoes++

	for _, el := range e.Elements {
		v.element(el)
	}

	return nil
}

func (v *statsVisitor) element(e Element) {
	switch e := e.(type) {
	case Variable:
		v.vars[e.Name] = struct{}{}
	case Function:
		v.funcs[e.Name] = struct{}{}
	}
}

func depth(n Node) int {
	d := 0

	for _, child := range Children(n) {
		d = max(d, depth(child))
	}

	if _, ok := n.(*Loop); ok {
		d++
	}

	return d
}
