package toml

import (
	"reflect"
	"strings"
	"testing"

	"github.com/smartystreets/goconvey/convey"
)

func mustParse(t *testing.T, src string) *Table {
	t.Helper()
	root, err := Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return root
}

func semErr(src string) *SemanticError {
	_, err := Parse(strings.NewReader(src))
	if err == nil {
		return nil
	}
	se, _ := err.(*SemanticError)
	return se
}

func TestDottedSupertableCreation(t *testing.T) {
	convey.Convey("dotted keys create intermediate tables", t, func() {
		root := mustParse(t, "a.b.c = 1\n")
		n, ok := Get(root, "a", "b", "c")
		convey.So(ok, convey.ShouldBeTrue)
		convey.So(MustInt(n), convey.ShouldEqual, 1)
	})
}

func TestDottedSiblingsShareBlock(t *testing.T) {
	convey.Convey("sibling dotted keys extend the same intermediate", t, func() {
		root := mustParse(t, "a.b = 1\na.c = 2\n")
		n, _ := Get(root, "a", "b")
		convey.So(MustInt(n), convey.ShouldEqual, 1)
		n, _ = Get(root, "a", "c")
		convey.So(MustInt(n), convey.ShouldEqual, 2)
	})
}

func TestHeaderOverDottedSealedPath(t *testing.T) {
	convey.Convey("a header may not reopen a dotted-sealed table", t, func() {
		err := semErr("a.b = 1\n[a]\n")
		convey.So(err, convey.ShouldNotBeNil)
		convey.So(err.Kind, convey.ShouldEqual, ClosedTable)
		convey.So(err.Key, convey.ShouldEqual, "a")
		convey.So(err.Pos, convey.ShouldResemble, Position{Line: 2, Col: 2})
		convey.So(err.Error(), convey.ShouldEqual, "2:2: key error: a is a closed table")
	})
}

func TestDottedKeyOverDottedValue(t *testing.T) {
	convey.Convey("a dotted key may not traverse an assigned value", t, func() {
		err := semErr("a.b = 1\na.b.c = 2\n")
		convey.So(err, convey.ShouldNotBeNil)
		convey.So(err.Kind, convey.ShouldEqual, AlreadyAssigned)
		convey.So(err.Key, convey.ShouldEqual, "b")
		convey.So(err.Pos.Line, convey.ShouldEqual, 2)
	})
}

func TestImplicitSupertablePromotion(t *testing.T) {
	convey.Convey("[a] promotes the supertable [a.b] created", t, func() {
		root := mustParse(t, "[a.b]\nx = 1\n[a]\ny = 2\n")
		n, ok := Get(root, "a", "b", "x")
		convey.So(ok, convey.ShouldBeTrue)
		convey.So(MustInt(n), convey.ShouldEqual, 1)
		n, ok = Get(root, "a", "y")
		convey.So(ok, convey.ShouldBeTrue)
		convey.So(MustInt(n), convey.ShouldEqual, 2)
	})
}

func TestRepeatedHeaderRejected(t *testing.T) {
	convey.Convey("a table may only be defined once", t, func() {
		err := semErr("[a]\n[a]\n")
		convey.So(err, convey.ShouldNotBeNil)
		convey.So(err.Kind, convey.ShouldEqual, ClosedTable)
		convey.So(err.Pos, convey.ShouldResemble, Position{Line: 2, Col: 2})
	})
}

func TestArrayOfTablesAppendOrder(t *testing.T) {
	convey.Convey("[[x]] appends in source order", t, func() {
		root := mustParse(t, "[[x]]\nn = 1\n[[x]]\nn = 2\n")
		n, ok := Get(root, "x")
		convey.So(ok, convey.ShouldBeTrue)
		arr := n.(*Array)
		convey.So(len(arr.Elems), convey.ShouldEqual, 2)
		first, _ := Get(arr.Elems[0].(*Table), "n")
		second, _ := Get(arr.Elems[1].(*Table), "n")
		convey.So(MustInt(first), convey.ShouldEqual, 1)
		convey.So(MustInt(second), convey.ShouldEqual, 2)
	})
}

func TestSubtableOfLatestArrayElement(t *testing.T) {
	convey.Convey("[x.t] lands in the most recently appended element", t, func() {
		root := mustParse(t, "[[x]]\nn = 1\n[x.t]\nk = 2\n[[x]]\nn = 2\n")
		arr, _ := Get(root, "x")
		first := arr.(*Array).Elems[0].(*Table)
		n, ok := Get(first, "t", "k")
		convey.So(ok, convey.ShouldBeTrue)
		convey.So(MustInt(n), convey.ShouldEqual, 2)
		_, ok = Get(arr.(*Array).Elems[1].(*Table), "t")
		convey.So(ok, convey.ShouldBeFalse)
	})
}

func TestArrayHeaderOverTable(t *testing.T) {
	convey.Convey("[[x]] over an explicit table is rejected", t, func() {
		err := semErr("[x]\n[[x]]\n")
		convey.So(err, convey.ShouldNotBeNil)
		convey.So(err.Kind, convey.ShouldEqual, ClosedTable)
		convey.So(err.Key, convey.ShouldEqual, "x")
		convey.So(err.Pos, convey.ShouldResemble, Position{Line: 2, Col: 3})
	})
}

func TestTableHeaderOverArray(t *testing.T) {
	convey.Convey("[x] over an array of tables is rejected", t, func() {
		err := semErr("[[x]]\n[x]\n")
		convey.So(err, convey.ShouldNotBeNil)
		convey.So(err.Kind, convey.ShouldEqual, ClosedTable)
	})
}

func TestArrayHeaderOverImplicitTable(t *testing.T) {
	convey.Convey("[[a]] over an implicit supertable is rejected", t, func() {
		err := semErr("[a.b]\n[[a]]\n")
		convey.So(err, convey.ShouldNotBeNil)
		convey.So(err.Kind, convey.ShouldEqual, ImplicitlyTable)
		convey.So(err.Error(), convey.ShouldEqual, "2:3: key error: a is already implicitly defined to be a table")
	})
}

func TestInlineTableOverlap(t *testing.T) {
	convey.Convey("overlapping dotted prefixes inside one literal", t, func() {
		err := semErr("t = {a.b = 1, a.b.c = 2}\n")
		convey.So(err, convey.ShouldNotBeNil)
		convey.So(err.Kind, convey.ShouldEqual, AlreadyAssigned)
		convey.So(err.Key, convey.ShouldEqual, "b")
		convey.So(err.Pos, convey.ShouldResemble, Position{Line: 1, Col: 17})
	})

	convey.Convey("divergent extensions of a shared prefix are fine", t, func() {
		root := mustParse(t, "t = {a.b.c = 1, a.b.d = 2}\n")
		n, ok := Get(root, "t", "a", "b", "d")
		convey.So(ok, convey.ShouldBeTrue)
		convey.So(MustInt(n), convey.ShouldEqual, 2)
	})

	convey.Convey("duplicate inline keys are rejected", t, func() {
		err := semErr("t = {a = 1, a = 2}\n")
		convey.So(err, convey.ShouldNotBeNil)
		convey.So(err.Kind, convey.ShouldEqual, AlreadyAssigned)
		convey.So(err.Key, convey.ShouldEqual, "a")
	})
}

func TestInlineTableImmutable(t *testing.T) {
	convey.Convey("an inline table cannot be extended by a header", t, func() {
		err := semErr("t = {a = 1}\n[t]\n")
		convey.So(err, convey.ShouldNotBeNil)
		convey.So(err.Kind, convey.ShouldEqual, AlreadyAssigned)
		convey.So(err.Key, convey.ShouldEqual, "t")
	})

	convey.Convey("an inline table cannot be extended by a dotted key", t, func() {
		err := semErr("t = {a = 1}\nt.b = 2\n")
		convey.So(err, convey.ShouldNotBeNil)
		convey.So(err.Kind, convey.ShouldEqual, AlreadyAssigned)
		convey.So(err.Key, convey.ShouldEqual, "t")
	})
}

func TestFirstErrorWins(t *testing.T) {
	convey.Convey("the earliest offending expression is reported", t, func() {
		err := semErr("a = 1\na = 2\na = 3\n")
		convey.So(err, convey.ShouldNotBeNil)
		convey.So(err.Pos, convey.ShouldResemble, Position{Line: 2, Col: 1})
	})
}

func TestDuplicateTopLevelKey(t *testing.T) {
	convey.Convey("a top-level key can only be assigned once", t, func() {
		err := semErr("a = 1\na = 2\n")
		convey.So(err, convey.ShouldNotBeNil)
		convey.So(err.Kind, convey.ShouldEqual, AlreadyAssigned)
		convey.So(err.Error(), convey.ShouldEqual, "2:1: key error: a is already assigned")
	})
}

func TestDottedKeysAcrossBlocks(t *testing.T) {
	convey.Convey("a dotted intermediate seals at the end of its block", t, func() {
		err := semErr("[t1]\na.b = 1\n[t1.a]\n")
		convey.So(err, convey.ShouldNotBeNil)
		convey.So(err.Kind, convey.ShouldEqual, ClosedTable)
		convey.So(err.Key, convey.ShouldEqual, "a")
	})
}

func TestSealingIdempotent(t *testing.T) {
	convey.Convey("sealing twice equals sealing once", t, func() {
		build := func() frameMap {
			m := frameMap{}
			if err := assign(m, Key{{Position{1, 1}, "a"}, {Position{1, 3}, "b"}}, Val{Type: KindInteger, V: int64(1)}); err != nil {
				t.Fatalf("assign: %v", err)
			}
			return m
		}
		once := build()
		seal(once)
		twice := build()
		seal(twice)
		seal(twice)
		convey.So(reflect.DeepEqual(once, twice), convey.ShouldBeTrue)
	})
}

func TestEmptyDocument(t *testing.T) {
	convey.Convey("an empty document is an empty table", t, func() {
		root := mustParse(t, "")
		convey.So(len(root.Items), convey.ShouldEqual, 0)
	})
}

func TestFinalizeLeavesNoFrames(t *testing.T) {
	convey.Convey("the output tree contains only value forms", t, func() {
		root := mustParse(t, "a.b = 1\n[t]\nx = [{y = 2}]\n[[arr]]\nz = 3\n")
		var walk func(n Node)
		walk = func(n Node) {
			switch v := n.(type) {
			case *Table:
				for _, c := range v.Items {
					walk(c)
				}
			case *Array:
				for _, c := range v.Elems {
					walk(c)
				}
			case *Value:
			default:
				t.Fatalf("unexpected node %T", n)
			}
		}
		walk(root)
	})
}
