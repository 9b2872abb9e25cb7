package toml

import "sort"

// =========================
// Semantic Resolution
// =========================

// Semantics resolves a top-level expression stream into a single
// table, rejecting every key interaction TOML 1.0 forbids. On error
// no partial result is returned.
func Semantics(exprs []Expr) (*Table, error) {
	top, sections := gather(exprs)
	root := frameMap{}
	if err := applyBlock(root, top); err != nil {
		return nil, err
	}
	for _, sec := range sections {
		if err := openSection(root, sec); err != nil {
			return nil, err
		}
	}
	return finalize(root), nil
}

// applyBlock folds the dotted-key assigner over a key/value block,
// then seals the dotted frames the block created. Sealing is what
// limits dotted extension to siblings of the same block.
func applyBlock(m frameMap, kvs []KeyVal) *SemanticError {
	for _, kv := range kvs {
		if err := assign(m, kv.Key, kv.Val); err != nil {
			return err
		}
	}
	seal(m)
	return nil
}

// assign installs one key.path = value into m, creating dotted
// intermediates along the way.
func assign(m frameMap, key Key, val Val) *SemanticError {
	part := key[0]
	if len(key) == 1 {
		if _, ok := m[part.Name]; ok {
			return errAt(part, AlreadyAssigned)
		}
		n, err := valToValue(val)
		if err != nil {
			return err
		}
		m[part.Name] = leafFrame(n)
		return nil
	}
	f, ok := m[part.Name]
	if !ok {
		f = newTableFrame(frameDotted)
		m[part.Name] = f
		return assign(f.items, key[1:], val)
	}
	switch f.kind {
	case frameOpen, frameDotted:
		// The spine of a dotted assignment is dotted regardless of how
		// it first came into existence; sealing at the block boundary
		// depends on the demotion.
		f.kind = frameDotted
		return assign(f.items, key[1:], val)
	case frameClosed, frameArray:
		return errAt(part, ClosedTable)
	default: // frameLeaf
		return errAt(part, AlreadyAssigned)
	}
}

// openSection installs one [t] or [[t]] header together with its
// key/value block.
func openSection(m frameMap, sec Section) *SemanticError {
	key := sec.Key
	for len(key) > 1 {
		part := key[0]
		f, ok := m[part.Name]
		if !ok {
			f = newTableFrame(frameOpen)
			m[part.Name] = f
		}
		switch f.kind {
		case frameOpen, frameDotted, frameClosed:
			m = f.items
		case frameArray:
			// headers extend the most recently appended element
			m = f.elems[len(f.elems)-1]
		default: // frameLeaf
			return errAt(part, AlreadyAssigned)
		}
		key = key[1:]
	}

	last := key[0]
	f, ok := m[last.Name]
	if !ok {
		inner := frameMap{}
		if err := applyBlock(inner, sec.Block); err != nil {
			return err
		}
		if sec.Kind == TableSection {
			m[last.Name] = &frame{kind: frameClosed, items: inner}
		} else {
			m[last.Name] = &frame{kind: frameArray, elems: []frameMap{inner}}
		}
		return nil
	}
	switch f.kind {
	case frameOpen:
		if sec.Kind == ArrayTableSection {
			return errAt(last, ImplicitlyTable)
		}
		// promote the implicit supertable to an explicit one
		if err := applyBlock(f.items, sec.Block); err != nil {
			return err
		}
		f.kind = frameClosed
		return nil
	case frameArray:
		if sec.Kind == TableSection {
			return errAt(last, ClosedTable)
		}
		inner := frameMap{}
		if err := applyBlock(inner, sec.Block); err != nil {
			return err
		}
		f.elems = append(f.elems, inner)
		return nil
	case frameClosed:
		return errAt(last, ClosedTable)
	case frameDotted:
		// dotted frames never survive their defining block
		panic("toml: dotted frame reached a section header")
	default: // frameLeaf
		return errAt(last, AlreadyAssigned)
	}
}

// valToValue converts a raw literal into its resolved form. Scalars
// map one-to-one, arrays elementwise; inline tables go through the
// inline validator.
func valToValue(v Val) (Node, *SemanticError) {
	switch v.Type {
	case KindArray:
		elems := v.V.([]Val)
		arr := &Array{Elems: make([]Node, 0, len(elems))}
		for _, e := range elems {
			n, err := valToValue(e)
			if err != nil {
				return nil, err
			}
			arr.Elems = append(arr.Elems, n)
		}
		return arr, nil
	case KindTable:
		return inlineTable(v.V.([]ValPair))
	default:
		return &Value{Type: v.Type, V: v.V}, nil
	}
}

type inlineEntry struct {
	key  Key
	node Node
}

// inlineTable validates a {...} literal and merges its entries into a
// single table. Overlap detection runs on the lexicographically sorted
// keys: after the sort a conflicting pair is always adjacent, and the
// reported segment is the one where the longer key runs into the end
// of the shorter. The result is installed as a plain value, never a
// table frame, so later headers and dotted keys cannot extend it.
func inlineTable(pairs []ValPair) (Node, *SemanticError) {
	entries := make([]inlineEntry, 0, len(pairs))
	for _, p := range pairs {
		n, err := valToValue(p.Val)
		if err != nil {
			return nil, err
		}
		entries = append(entries, inlineEntry{key: p.Key, node: n})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return lessKey(entries[i].key, entries[j].key)
	})
	for i := 1; i < len(entries); i++ {
		shorter, longer := entries[i-1].key, entries[i].key
		if isKeyPrefix(shorter, longer) {
			return nil, errAt(longer[len(shorter)-1], AlreadyAssigned)
		}
	}
	root := NewTable()
	for _, e := range entries {
		insertPath(root, e.key, e.node)
	}
	return root, nil
}

func lessKey(a, b Key) bool {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i].Name != b[i].Name {
			return a[i].Name < b[i].Name
		}
	}
	return len(a) < len(b)
}

func isKeyPrefix(a, b Key) bool {
	if len(a) > len(b) {
		return false
	}
	for i := range a {
		if a[i].Name != b[i].Name {
			return false
		}
	}
	return true
}

// insertPath installs n at key inside t. Paths only diverge here;
// overlapping paths were rejected by the caller.
func insertPath(t *Table, key Key, n Node) {
	for len(key) > 1 {
		child, ok := t.Items[key[0].Name]
		if !ok {
			next := NewTable()
			t.Items[key[0].Name] = next
			t = next
		} else {
			t = child.(*Table)
		}
		key = key[1:]
	}
	t.Items[key[0].Name] = n
}
