package lang

import (
	"strings"
)

// Node is an element of a document tree. The set of implementations is
// closed: [*Document], [*TextNode], [*Loop] and [*Echo].
//
// Each non-root node has exactly one parent, and nodes hold no reference
// back to their parent.
type Node interface {
	node()
	// Accept dispatches to the visitor method matching the node's kind.
	Accept(v Visitor) error
	// String returns the node's canonical source form.
	String() string
}

// Document is the root of a parsed template.
type Document struct {
	Children []Node
}

// TextNode is a run of literal output. Content holds the text with escapes
// already resolved.
type TextNode struct {
	Content string
	Pos     Position
}

// Loop repeats its children while the control variable does not exceed
// End. Step is nil when the tag omits it.
type Loop struct {
	Start    Element
	End      Element
	Step     Element
	Variable Variable
	Children []Node
	Pos      Position
}

// Echo evaluates its elements as a postfix expression and writes whatever
// remains on the evaluation stack.
type Echo struct {
	Elements []Element
	Pos      Position
}

func (*Document) node() {}
func (*TextNode) node() {}
func (*Loop) node()     {}
func (*Echo) node()     {}

// container is implemented by nodes that may hold children.
type container interface {
	Node
	appendChild(n Node)
}

func (d *Document) appendChild(n Node) { d.Children = append(d.Children, n) }
func (l *Loop) appendChild(n Node)     { l.Children = append(l.Children, n) }

// Visitor has one method per node kind.
type Visitor interface {
	VisitDocument(d *Document) error
	VisitText(t *TextNode) error
	VisitLoop(l *Loop) error
	VisitEcho(e *Echo) error
}

func (d *Document) Accept(v Visitor) error { return v.VisitDocument(d) }
func (t *TextNode) Accept(v Visitor) error { return v.VisitText(t) }
func (l *Loop) Accept(v Visitor) error     { return v.VisitLoop(l) }
func (e *Echo) Accept(v Visitor) error     { return v.VisitEcho(e) }

// Walk visits n and then, depth first, every descendant of n in document
// order. It stops at the first error returned by a visitor method.
func Walk(v Visitor, n Node) error {
	if err := n.Accept(v); err != nil {
		return err
	}

	for _, child := range Children(n) {
		if err := Walk(v, child); err != nil {
			return err
		}
	}

	return nil
}

// Children returns the direct children of n, or nil for leaf nodes.
func Children(n Node) []Node {
	switch n := n.(type) {
	case *Document:
		return n.Children
	case *Loop:
		return n.Children
	default:
		return nil
	}
}

// Bound returns the loop bounds in source order: start, end and, when
// present, step.
func (l *Loop) Bound() []Element {
	if l.Step == nil {
		return []Element{l.Start, l.End}
	}

	return []Element{l.Start, l.End, l.Step}
}

func (d *Document) String() string {
	var sb strings.Builder

	for _, child := range d.Children {
		sb.WriteString(child.String())
	}

	return sb.String()
}

func (t *TextNode) String() string {
	var sb strings.Builder

	sb.Grow(len(t.Content))

	for _, r := range t.Content {
		if r == '\\' || r == '{' {
			sb.WriteByte('\\')
		}

		sb.WriteRune(r)
	}

	return sb.String()
}

func (l *Loop) String() string {
	var sb strings.Builder

	sb.WriteString(TagOpen + " FOR " + l.Variable.String())

	for _, e := range l.Bound() {
		sb.WriteByte(' ')
		sb.WriteString(e.String())
	}

	sb.WriteString(" " + TagClose)

	for _, child := range l.Children {
		sb.WriteString(child.String())
	}

	sb.WriteString(TagOpen + " END " + TagClose)

	return sb.String()
}

func (e *Echo) String() string {
	var sb strings.Builder

	sb.WriteString(TagOpen + "=")

	for _, el := range e.Elements {
		sb.WriteByte(' ')
		sb.WriteString(el.String())
	}

	sb.WriteString(" " + TagClose)

	return sb.String()
}

// Equal reports whether a and b have the same canonical serialization.
func Equal(a, b Node) bool {
	if a == nil || b == nil {
		return a == b
	}

	return a.String() == b.String()
}
