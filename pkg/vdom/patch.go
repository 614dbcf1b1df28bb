package vdom

// PatchOp is the type of patch operation.
type PatchOp uint8

const (
	PatchCreate       PatchOp = 0x01 // Insert a brand-new subtree where nothing was
	PatchRemove       PatchOp = 0x02 // Delete the node at this position
	PatchReplace      PatchOp = 0x03 // Swap the entire node (tags differ)
	PatchProps        PatchOp = 0x04 // Update props; nil value removes the prop
	PatchReplaceChild PatchOp = 0x05 // Replace the child at Index
	PatchRemoveChild  PatchOp = 0x06 // Remove the child at Index (old index space)
	PatchInsertChild  PatchOp = 0x07 // Insert Node at Index (new index space)
)

// String returns the string representation of the PatchOp.
func (op PatchOp) String() string {
	switch op {
	case PatchCreate:
		return "Create"
	case PatchRemove:
		return "Remove"
	case PatchReplace:
		return "Replace"
	case PatchProps:
		return "Props"
	case PatchReplaceChild:
		return "ReplaceChild"
	case PatchRemoveChild:
		return "RemoveChild"
	case PatchInsertChild:
		return "InsertChild"
	default:
		return "Unknown"
	}
}

// Patch is one atomic instruction for transforming an old tree into a new
// one. Patches form an ordered sequence; indices refer to the list state as
// patches are applied in order.
type Patch struct {
	Op    PatchOp        // Operation type
	Node  *VNode         // For Create/Replace/ReplaceChild/InsertChild
	Index int            // Child position for the *Child ops
	Props map[string]any // For Props; nil value means "remove this prop"
}
