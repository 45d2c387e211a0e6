package lang

import (
	"encoding/json"
)

// MarshalJSON implements json.Marshaler for Document.
func (d *Document) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.ToMap())
}

// ToMap converts the document to nested maps and slices suitable for
// generic encoders. Every node and element map carries a "type" key.
func (d *Document) ToMap() map[string]any {
	return nodeToMap(d)
}

func nodeToMap(n Node) map[string]any {
	switch n := n.(type) {
	case *Document:
		return map[string]any{
			"type":     "document",
			"children": nodesToNative(n.Children),
		}

	case *TextNode:
		return map[string]any{
			"type":    "text",
			"content": n.Content,
		}

	case *Loop:
		m := map[string]any{
			"type":     "loop",
			"variable": n.Variable.Name,
			"start":    ElementToNative(n.Start),
			"end":      ElementToNative(n.End),
			"children": nodesToNative(n.Children),
		}

		if n.Step != nil {
			m["step"] = ElementToNative(n.Step)
		}

		return m

	case *Echo:
		elems := make([]any, len(n.Elements))
		for i, e := range n.Elements {
			elems[i] = ElementToNative(e)
		}

		return map[string]any{
			"type":     "echo",
			"elements": elems,
		}

	default:
		return nil
	}
}

func nodesToNative(nodes []Node) []any {
	out := make([]any, len(nodes))
	for i, n := range nodes {
		out[i] = nodeToMap(n)
	}

	return out
}

// ElementToNative converts an element to a map with "type" and "value" keys.
func ElementToNative(e Element) map[string]any {
	switch e := e.(type) {
	case Variable:
		return map[string]any{"type": "variable", "value": e.Name}
	case StringLiteral:
		return map[string]any{"type": "string", "value": e.Value}
	case ConstantInteger:
		return map[string]any{"type": "integer", "value": e.Value}
	case ConstantDecimal:
		return map[string]any{"type": "decimal", "value": e.Value}
	case Operator:
		return map[string]any{"type": "operator", "value": e.Symbol}
	case Function:
		return map[string]any{"type": "function", "value": e.Name}
	default:
		return nil
	}
}
