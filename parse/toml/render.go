package toml

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"
)

// =========================
// Rendering
// =========================

// KeyOrder projects the iteration order for one table. path is the
// dotted path of the table being rendered (nil for the root), keys its
// key set. The returned slice decides emission order.
type KeyOrder func(path []string, keys []string) []string

func alphabetical(_ []string, keys []string) []string {
	sort.Strings(keys)
	return keys
}

type renderOptions struct {
	order KeyOrder
}

type RenderOption func(*renderOptions)

// WithKeyOrder overrides the default alphabetical key order.
func WithKeyOrder(order KeyOrder) RenderOption {
	return func(o *renderOptions) { o.order = order }
}

// RenderScalar returns the TOML literal form of a scalar value.
// Float payloads render as nan, inf and -inf; other floats always
// carry a fractional or exponent part.
func RenderScalar(v *Value) string {
	switch v.Type {
	case KindString:
		return escapeBasic(v.V.(string))
	case KindInteger:
		return strconv.FormatInt(v.V.(int64), 10)
	case KindFloat:
		return renderFloat(v.V.(float64))
	case KindBool:
		if v.V.(bool) {
			return "true"
		}
		return "false"
	case KindDatetime:
		return v.V.(time.Time).Format("2006-01-02T15:04:05.999999999Z07:00")
	case KindLocalDatetime:
		return v.V.(time.Time).Format("2006-01-02T15:04:05.999999999")
	case KindLocalDate:
		return v.V.(time.Time).Format("2006-01-02")
	case KindLocalTime:
		return v.V.(time.Time).Format("15:04:05.999999999")
	}
	return ""
}

func renderFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, +1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

// Render writes root as a TOML document. Subtables come out as [a.b]
// sections, arrays whose elements are all tables as [[a.b]] sections,
// everything else as assignments.
func Render(w io.Writer, root *Table, opts ...RenderOption) error {
	o := renderOptions{order: alphabetical}
	for _, opt := range opts {
		opt(&o)
	}
	r := &renderer{w: w, order: o.order}
	r.table(root, nil)
	return r.err
}

type renderer struct {
	w     io.Writer
	order KeyOrder
	err   error
	wrote bool
}

func (r *renderer) printf(format string, args ...any) {
	if r.err != nil {
		return
	}
	_, r.err = fmt.Fprintf(r.w, format, args...)
}

func (r *renderer) table(t *Table, path []string) {
	keys := r.order(path, keysOf(t))
	var tables, arrays []string
	for _, k := range keys {
		switch child := t.Items[k].(type) {
		case *Table:
			tables = append(tables, k)
		case *Array:
			if isTableArray(child) {
				arrays = append(arrays, k)
				continue
			}
			r.printf("%s = %s\n", quoteKey(k), renderValue(child))
			r.wrote = true
		default:
			r.printf("%s = %s\n", quoteKey(k), renderValue(t.Items[k]))
			r.wrote = true
		}
	}
	for _, k := range tables {
		sub := append(append([]string{}, path...), k)
		if r.wrote {
			r.printf("\n")
		}
		r.printf("[%s]\n", renderPath(sub))
		r.wrote = true
		r.table(t.Items[k].(*Table), sub)
	}
	for _, k := range arrays {
		sub := append(append([]string{}, path...), k)
		for _, elem := range t.Items[k].(*Array).Elems {
			if r.wrote {
				r.printf("\n")
			}
			r.printf("[[%s]]\n", renderPath(sub))
			r.wrote = true
			r.table(elem.(*Table), sub)
		}
	}
}

func keysOf(t *Table) []string {
	keys := make([]string, 0, len(t.Items))
	for k := range t.Items {
		keys = append(keys, k)
	}
	return keys
}

// isTableArray reports whether arr renders as [[...]] sections: a
// non-empty array whose elements are all tables.
func isTableArray(arr *Array) bool {
	if len(arr.Elems) == 0 {
		return false
	}
	for _, e := range arr.Elems {
		if _, ok := e.(*Table); !ok {
			return false
		}
	}
	return true
}

func renderPath(path []string) string {
	parts := make([]string, len(path))
	for i, p := range path {
		parts[i] = quoteKey(p)
	}
	return strings.Join(parts, ".")
}

// renderValue renders a node inline: scalars as literals, arrays
// bracketed, tables in the {...} form with alphabetical keys.
func renderValue(n Node) string {
	switch v := n.(type) {
	case *Value:
		return RenderScalar(v)
	case *Array:
		parts := make([]string, len(v.Elems))
		for i, e := range v.Elems {
			parts[i] = renderValue(e)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case *Table:
		keys := keysOf(v)
		sort.Strings(keys)
		parts := make([]string, len(keys))
		for i, k := range keys {
			parts[i] = quoteKey(k) + " = " + renderValue(v.Items[k])
		}
		return "{" + strings.Join(parts, ", ") + "}"
	}
	return ""
}
