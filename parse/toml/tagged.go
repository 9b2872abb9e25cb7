package toml

import "encoding/json"

// =========================
// toml-test Tagged Form
// =========================

// taggedValue is the BurntSushi toml-test tagged scalar: a type name
// plus the value in its TOML literal spelling (strings stay raw).
type taggedValue struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

func taggedType(k Kind) string {
	switch k {
	case KindString:
		return "string"
	case KindInteger:
		return "integer"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindDatetime:
		return "datetime"
	case KindLocalDatetime:
		return "datetime-local"
	case KindLocalDate:
		return "date-local"
	case KindLocalTime:
		return "time-local"
	}
	return ""
}

// Tagged converts a resolved tree into the toml-test value shape:
// tables become JSON objects, arrays JSON arrays, scalars tagged
// type/value pairs.
func Tagged(n Node) any {
	switch v := n.(type) {
	case *Table:
		m := make(map[string]any, len(v.Items))
		for k, child := range v.Items {
			m[k] = Tagged(child)
		}
		return m
	case *Array:
		out := make([]any, len(v.Elems))
		for i := range v.Elems {
			out[i] = Tagged(v.Elems[i])
		}
		return out
	case *Value:
		if v.Type == KindString {
			return taggedValue{Type: "string", Value: v.V.(string)}
		}
		return taggedValue{Type: taggedType(v.Type), Value: RenderScalar(v)}
	}
	return nil
}

// TaggedJSON renders the tagged form of root as indented JSON. Object
// keys come out alphabetically, matching the renderer's default order.
func TaggedJSON(root *Table) ([]byte, error) {
	return json.MarshalIndent(Tagged(root), "", "  ")
}
