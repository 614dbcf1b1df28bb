package vdom

import "reflect"

// VKind is the node type discriminator.
type VKind uint8

const (
	KindElement   VKind = iota // <div>, <button>, etc.
	KindText                   // Plain text node
	KindFragment               // Grouping without wrapper
	KindComponent              // Nested component
	KindRaw                    // Raw HTML (dangerous)
)

// String returns the string representation of the VKind.
func (k VKind) String() string {
	switch k {
	case KindElement:
		return "Element"
	case KindText:
		return "Text"
	case KindFragment:
		return "Fragment"
	case KindComponent:
		return "Component"
	case KindRaw:
		return "Raw"
	default:
		return "Unknown"
	}
}

// VNode is a virtual DOM node. Nodes are constructed fresh on every render
// pass and never mutated afterwards; both sides of a Diff are borrowed,
// not owned.
type VNode struct {
	Kind     VKind    // Node type
	Tag      string   // Element tag name (e.g., "div")
	Props    Props    // Attributes and event handlers
	Children []*VNode // Child nodes, order significant
	Key      string   // Reconciliation key, carried as data
	Text     string   // For KindText and KindRaw
	Comp     Renderable
}

// Props holds attributes and event handlers.
type Props map[string]any

// Attr represents a single attribute.
type Attr struct {
	Key   string
	Value any
}

// IsEmpty returns true if this is an empty/nil attribute.
func (a Attr) IsEmpty() bool {
	return a.Key == ""
}

// EventHandler represents an event handler.
type EventHandler struct {
	Event   string // "onclick", "oninput", etc.
	Handler any    // Function to call
}

// Renderable is anything that can render to a VNode.
type Renderable interface {
	Render() *VNode
}

// FuncComponent wraps a render function.
type FuncComponent struct {
	render func() *VNode
}

// Render implements Renderable.
func (f *FuncComponent) Render() *VNode {
	return f.render()
}

// Func creates a renderable from a render function.
func Func(render func() *VNode) Renderable {
	return &FuncComponent{render: render}
}

// Equal reports deep structural equality of two trees: same kind and tag,
// props equal as unordered key/value sets, children equal element-wise in
// order. Comparison stops at the first mismatch.
func Equal(a, b *VNode) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Kind != b.Kind || a.Tag != b.Tag || a.Text != b.Text {
		return false
	}
	if a.Kind == KindComponent {
		return sameRenderable(a.Comp, b.Comp)
	}
	if len(a.Props) != len(b.Props) {
		return false
	}
	for key, av := range a.Props {
		bv, ok := b.Props[key]
		if !ok || !propsEqual(av, bv) {
			return false
		}
	}
	if len(a.Children) != len(b.Children) {
		return false
	}
	for i, ac := range a.Children {
		if !Equal(ac, b.Children[i]) {
			return false
		}
	}
	return true
}

// propsEqual compares two prop values for equality.
func propsEqual(a, b any) bool {
	// Fast path for common types
	switch av := a.(type) {
	case string:
		if bv, ok := b.(string); ok {
			return av == bv
		}
		return false
	case int:
		if bv, ok := b.(int); ok {
			return av == bv
		}
		return false
	case int64:
		if bv, ok := b.(int64); ok {
			return av == bv
		}
		return false
	case float64:
		if bv, ok := b.(float64); ok {
			return av == bv
		}
		return false
	case bool:
		if bv, ok := b.(bool); ok {
			return av == bv
		}
		return false
	case nil:
		return b == nil
	}
	// Functions are never comparable; treat same-typed handlers as equal so
	// a re-render with a fresh closure does not force a props patch.
	if isFunc(a) && isFunc(b) {
		return reflect.TypeOf(a) == reflect.TypeOf(b)
	}
	// Fallback to reflect for complex types (style maps, class lists)
	return reflect.DeepEqual(a, b)
}

func isFunc(v any) bool {
	return v != nil && reflect.TypeOf(v).Kind() == reflect.Func
}

// sameRenderable compares component identity. Renderables are expected to be
// pointer types; non-pointer implementations never compare equal (interface
// comparison on non-comparable types would panic).
func sameRenderable(x, y Renderable) bool {
	if x == nil || y == nil {
		return x == y
	}
	if reflect.TypeOf(x).Kind() != reflect.Ptr || reflect.TypeOf(y).Kind() != reflect.Ptr {
		return false
	}
	return x == y
}
