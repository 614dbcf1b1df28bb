package vdom

// Diff compares two VNode trees and returns the ordered patch sequence that
// transforms prev into next. Both trees are borrowed; neither is mutated.
func Diff(prev, next *VNode) []Patch {
	// Both nil - nothing to do
	if prev == nil && next == nil {
		return nil
	}

	// Node added
	if prev == nil {
		return []Patch{{Op: PatchCreate, Node: next}}
	}

	// Node removed
	if next == nil {
		return []Patch{{Op: PatchRemove}}
	}

	// Structurally identical - no-op
	if Equal(prev, next) {
		return nil
	}

	// Different kind or tag - replace the whole subtree, children are not
	// inspected further
	if prev.Kind != next.Kind || prev.Tag != next.Tag {
		return []Patch{{Op: PatchReplace, Node: next}}
	}

	switch prev.Kind {
	case KindText, KindRaw:
		// Same kind, different text (Equal already ruled out identity)
		return []Patch{{Op: PatchReplace, Node: next}}

	case KindFragment:
		return diffChildren(prev.Children, next.Children)

	case KindComponent:
		if prev.Comp != nil && next.Comp != nil {
			return Diff(prev.Comp.Render(), next.Comp.Render())
		}
		return []Patch{{Op: PatchReplace, Node: next}}
	}

	var patches []Patch
	if propsPatch := diffProps(prev.Props, next.Props); len(propsPatch) > 0 {
		patches = append(patches, Patch{Op: PatchProps, Props: propsPatch})
	}
	patches = append(patches, diffChildren(prev.Children, next.Children)...)
	return patches
}

// diffProps computes the set difference of two prop maps. New or changed
// keys map to their new value; keys present only in prev map to nil
// (removal sentinel). Returns nil when nothing changed.
func diffProps(prev, next Props) map[string]any {
	var patch map[string]any

	for key, nextVal := range next {
		prevVal, exists := prev[key]
		if !exists || !propsEqual(prevVal, nextVal) {
			if patch == nil {
				patch = make(map[string]any)
			}
			patch[key] = nextVal
		}
	}

	for key := range prev {
		if _, exists := next[key]; !exists {
			if patch == nil {
				patch = make(map[string]any)
			}
			patch[key] = nil
		}
	}

	return patch
}

// diffChildren reconciles two ordered child lists by position. Each child is
// treated as an atomic unit compared with Equal; aligned replace runs become
// one ReplaceChild per old index, delete runs one RemoveChild per old index,
// insert runs one InsertChild per new index. Keys are carried as data but do
// not reorder matches.
func diffChildren(prev, next []*VNode) []Patch {
	var patches []Patch

	for _, block := range opcodes(prev, next) {
		switch block.tag {
		case opEqual:
			// aligned, nothing to emit

		case opReplace:
			oldLen := block.i2 - block.i1
			newLen := block.j2 - block.j1
			for k := 0; k < oldLen; k++ {
				var node *VNode
				if k < newLen {
					node = next[block.j1+k]
				}
				patches = append(patches, Patch{
					Op:    PatchReplaceChild,
					Index: block.i1 + k,
					Node:  node,
				})
			}
			// Surplus new children in an uneven replace run are inserts.
			for j := block.j1 + oldLen; j < block.j2; j++ {
				patches = append(patches, Patch{
					Op:    PatchInsertChild,
					Index: j,
					Node:  next[j],
				})
			}

		case opDelete:
			for i := block.i1; i < block.i2; i++ {
				patches = append(patches, Patch{
					Op:    PatchRemoveChild,
					Index: i,
				})
			}

		case opInsert:
			for j := block.j1; j < block.j2; j++ {
				patches = append(patches, Patch{
					Op:    PatchInsertChild,
					Index: j,
					Node:  next[j],
				})
			}
		}
	}

	return patches
}
