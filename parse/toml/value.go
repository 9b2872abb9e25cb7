package toml

// =========================
// AST Definitions
// =========================

type Kind uint8

const (
	KindTable Kind = iota
	KindArray
	KindString
	KindInteger
	KindFloat
	KindBool
	KindDatetime // offset date-time
	KindLocalDatetime
	KindLocalDate
	KindLocalTime
)

// Node is one fully resolved TOML value.
type Node interface {
	Kind() Kind
}

// -------- Table --------

type Table struct {
	Items map[string]Node
}

func NewTable() *Table {
	return &Table{Items: make(map[string]Node)}
}

func (*Table) Kind() Kind { return KindTable }

// -------- Array --------

type Array struct {
	Elems []Node
}

func (*Array) Kind() Kind { return KindArray }

// -------- Value --------

// Value holds a scalar. V is int64, float64, bool, string or time.Time
// according to Type. Float payloads (nan, ±inf) pass through untouched.
type Value struct {
	Type Kind
	V    any
}

func (v *Value) Kind() Kind { return v.Type }
