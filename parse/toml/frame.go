package toml

// =========================
// Construction Frames
// =========================
//
// A frame records how a node of the tree under construction came into
// existence, which is what the semantic rules need to accept or reject
// later expressions that touch it. Frames exist only while a document
// is being absorbed; finalize replaces them with plain values.

type frameKind uint8

const (
	// frameOpen: created implicitly as a supertable by a deeper
	// [a.b.c] header; still extendable by further headers.
	frameOpen frameKind = iota
	// frameDotted: created implicitly by a dotted-key assignment in
	// the current block; extendable by sibling dotted keys of the same
	// block, sealed shut when the block ends.
	frameDotted
	// frameClosed: defined by an explicit header, or a completed
	// dotted subtree; no further header or dotted key may target it.
	frameClosed
	// frameArray: an array of tables built by [[...]] headers.
	frameArray
	// frameLeaf: a fully resolved value, inline tables included.
	frameLeaf
)

type frameMap map[string]*frame

type frame struct {
	kind  frameKind
	items frameMap   // frameOpen, frameDotted, frameClosed
	elems []frameMap // frameArray; append order, newest element last
	leaf  Node       // frameLeaf
}

func newTableFrame(kind frameKind) *frame {
	return &frame{kind: kind, items: frameMap{}}
}

func leafFrame(n Node) *frame {
	return &frame{kind: frameLeaf, leaf: n}
}

// seal closes every dotted frame in m, recursively. Runs at block
// boundaries; idempotent. Non-dotted frames pass through unchanged.
func seal(m frameMap) {
	for _, f := range m {
		if f.kind == frameDotted {
			f.kind = frameClosed
			seal(f.items)
		}
	}
}

// finalize collapses a frame map into the value tree.
func finalize(m frameMap) *Table {
	t := NewTable()
	for k, f := range m {
		t.Items[k] = f.finalize()
	}
	return t
}

func (f *frame) finalize() Node {
	switch f.kind {
	case frameLeaf:
		return f.leaf
	case frameArray:
		arr := &Array{Elems: make([]Node, 0, len(f.elems))}
		for _, m := range f.elems {
			arr.Elems = append(arr.Elems, finalize(m))
		}
		return arr
	default:
		return finalize(f.items)
	}
}
