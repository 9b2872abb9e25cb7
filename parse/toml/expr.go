package toml

import (
	"fmt"
	"strings"
)

// =========================
// Expression Stream
// =========================
//
// The front-end scans a document into a flat stream of top-level
// expressions; the semantic core resolves the stream into a tree. Keys
// keep the source position of every segment so each diagnostic can
// point at the offending one.

// Position is a 1-based line/column location in the source document.
type Position struct {
	Line int
	Col  int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Col)
}

// KeyPart is one segment of a dotted key.
type KeyPart struct {
	Pos  Position
	Name string
}

// Key is a non-empty dotted key such as a.b.c.
type Key []KeyPart

func (k Key) String() string {
	var b strings.Builder
	for i, part := range k {
		if i > 0 {
			b.WriteByte('.')
		}
		b.WriteString(quoteKey(part.Name))
	}
	return b.String()
}

// Val is a raw, pre-semantic value literal. V is a scalar payload,
// []Val for arrays, or []ValPair for inline tables. Inline tables keep
// association-list order so key conflicts are reported in source terms.
type Val struct {
	Type Kind
	V    any
}

// ValPair is one entry of an inline table literal.
type ValPair struct {
	Key Key
	Val Val
}

// Expr is one top-level expression.
type Expr interface {
	expr()
}

// KeyValExpr is a key = value assignment.
type KeyValExpr struct {
	Key Key
	Val Val
}

// TableExpr is a [table] header.
type TableExpr struct {
	Key Key
}

// ArrayTableExpr is an [[array-of-tables]] header.
type ArrayTableExpr struct {
	Key Key
}

func (KeyValExpr) expr()     {}
func (TableExpr) expr()      {}
func (ArrayTableExpr) expr() {}

type SectionKind uint8

const (
	TableSection SectionKind = iota
	ArrayTableSection
)

// KeyVal is one entry of a key/value block.
type KeyVal struct {
	Key Key
	Val Val
}

// Section is a header together with the key/value block that follows
// it, up to the next header.
type Section struct {
	Kind  SectionKind
	Key   Key
	Block []KeyVal
}

// gather partitions the expression stream into the leading key/value
// block and the header-introduced sections, preserving source order.
func gather(exprs []Expr) (top []KeyVal, sections []Section) {
	cur := -1
	for _, e := range exprs {
		switch e := e.(type) {
		case KeyValExpr:
			if cur < 0 {
				top = append(top, KeyVal{Key: e.Key, Val: e.Val})
			} else {
				sections[cur].Block = append(sections[cur].Block, KeyVal{Key: e.Key, Val: e.Val})
			}
		case TableExpr:
			sections = append(sections, Section{Kind: TableSection, Key: e.Key})
			cur++
		case ArrayTableExpr:
			sections = append(sections, Section{Kind: ArrayTableSection, Key: e.Key})
			cur++
		}
	}
	return top, sections
}
