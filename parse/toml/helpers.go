package toml

// =========================
// Safe Access Helpers
// =========================

func Get(root *Table, path ...string) (Node, bool) {
	var cur Node = root
	for _, p := range path {
		if len(p) == 0 {
			continue
		}
		t, ok := cur.(*Table)
		if !ok {
			return nil, false
		}
		cur, ok = t.Items[p]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

func GetUntyped(root *Table, path ...string) (any, bool) {
	n, ok := Get(root, path...)
	if !ok {
		return nil, false
	}
	return ToUntyped(n), true
}

func ToUntyped(n Node) any {
	switch v := n.(type) {
	case *Value:
		return v.V
	case *Array:
		out := make([]any, len(v.Elems))
		for i := range v.Elems {
			out[i] = ToUntyped(v.Elems[i])
		}
		return out
	case *Table:
		m := make(map[string]any, len(v.Items))
		for k, child := range v.Items {
			m[k] = ToUntyped(child)
		}
		return m
	default:
		return nil
	}
}

func MustString(n Node) string {
	v := n.(*Value)
	return v.V.(string)
}

func MustInt(n Node) int64 {
	v := n.(*Value)
	return v.V.(int64)
}

// =========================
// Typed Lookups
// =========================
//
// Typed projections over a resolved tree. Path steps are table keys
// (string) or array indices (int); mismatches come back as a
// MatchMessage naming the scope they occurred in.

// At walks path from root and returns the node it lands on.
func At(root *Table, path ...any) (Node, error) {
	var scope []ScopeStep
	var cur Node = root
	for _, step := range path {
		switch s := step.(type) {
		case string:
			t, ok := cur.(*Table)
			if !ok {
				return nil, &MatchMessage{Scope: scope, Text: "expected a table"}
			}
			next, ok := t.Items[s]
			if !ok {
				return nil, &MatchMessage{Scope: append(scope, ScopeKey(s)), Text: "missing value"}
			}
			scope = append(scope, ScopeKey(s))
			cur = next
		case int:
			a, ok := cur.(*Array)
			if !ok {
				return nil, &MatchMessage{Scope: scope, Text: "expected an array"}
			}
			if s < 0 || s >= len(a.Elems) {
				return nil, &MatchMessage{Scope: append(scope, ScopeIndex(s)), Text: "index out of bounds"}
			}
			scope = append(scope, ScopeIndex(s))
			cur = a.Elems[s]
		default:
			panic("toml: path step must be a string key or an int index")
		}
	}
	return cur, nil
}

func scopeOf(path []any) []ScopeStep {
	scope := make([]ScopeStep, 0, len(path))
	for _, step := range path {
		switch s := step.(type) {
		case string:
			scope = append(scope, ScopeKey(s))
		case int:
			scope = append(scope, ScopeIndex(s))
		}
	}
	return scope
}

func scalarAt(root *Table, kind Kind, want string, path []any) (any, error) {
	n, err := At(root, path...)
	if err != nil {
		return nil, err
	}
	if v, ok := n.(*Value); ok && v.Type == kind {
		return v.V, nil
	}
	return nil, &MatchMessage{Scope: scopeOf(path), Text: "expected " + want}
}

// StringAt reports the string at path.
func StringAt(root *Table, path ...any) (string, error) {
	v, err := scalarAt(root, KindString, "string", path)
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// IntAt reports the integer at path.
func IntAt(root *Table, path ...any) (int64, error) {
	v, err := scalarAt(root, KindInteger, "integer", path)
	if err != nil {
		return 0, err
	}
	return v.(int64), nil
}

// FloatAt reports the float at path.
func FloatAt(root *Table, path ...any) (float64, error) {
	v, err := scalarAt(root, KindFloat, "float", path)
	if err != nil {
		return 0, err
	}
	return v.(float64), nil
}

// BoolAt reports the boolean at path.
func BoolAt(root *Table, path ...any) (bool, error) {
	v, err := scalarAt(root, KindBool, "boolean", path)
	if err != nil {
		return false, err
	}
	return v.(bool), nil
}
