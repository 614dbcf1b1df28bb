package component

import (
	"log/slog"
	"reflect"
	"sync/atomic"

	"github.com/vellum-ui/vellum/internal/errors"
	"github.com/vellum-ui/vellum/pkg/vdom"
)

var instanceCounter atomic.Uint64

// Component is a stateful UI building block with an explicit lifecycle.
// Props hold externally supplied configuration, state holds internal data;
// both are accessed through explicit getters and setters so that every
// mutation goes through the compare-and-skip path.
//
// Components are confined to a single goroutine. Concurrent access must be
// coordinated by the caller.
type Component struct {
	typeName string
	tag      string
	id       uint64

	props map[string]any
	state map[string]any

	parent   *Component
	children []*Component

	mounted    bool
	destroyed  bool
	generation uint64

	invalidate func(*Component)
	logger     *slog.Logger

	// Lifecycle hook lists, fired in registration order.
	BeforeMount   HookList
	Mounted       HookList
	BeforeUpdate  HookList
	Updated       HookList
	BeforeDestroy HookList
	Destroyed     HookList
	OnError       ErrorHookList
}

// New creates a component of the given type name rendering as a <div>.
func New(typeName string) *Component {
	c, _ := NewTag(typeName, "div")
	return c
}

// NewTag creates a component rendering as the given element tag. The tag is
// validated up front so a bad tag surfaces at construction, not at render
// time.
func NewTag(typeName, tag string) (*Component, error) {
	if !vdom.ValidTag(tag) {
		return nil, errors.New("E100").WithDetail(tag)
	}
	return &Component{
		typeName: typeName,
		tag:      tag,
		id:       instanceCounter.Add(1),
		props:    make(map[string]any),
		state:    make(map[string]any),
		logger:   slog.Default().With("component", typeName),
	}, nil
}

// ID returns the process-unique instance id.
func (c *Component) ID() uint64 { return c.id }

// TypeName returns the component's type name.
func (c *Component) TypeName() string { return c.typeName }

// Tag returns the element tag the component renders as.
func (c *Component) Tag() string { return c.tag }

// IsMounted reports whether the component is currently mounted.
func (c *Component) IsMounted() bool { return c.mounted }

// IsDestroyed reports whether the component has been unmounted.
func (c *Component) IsDestroyed() bool { return c.destroyed }

// Generation returns a counter bumped on every effective prop or state
// mutation. Equal generations imply the component has not changed since.
func (c *Component) Generation() uint64 { return c.generation }

// SetLogger replaces the component's logger.
func (c *Component) SetLogger(logger *slog.Logger) {
	c.logger = logger.With("component", c.typeName)
}

// OnInvalidate registers the callback fired after every effective mutation.
// The runtime uses this to schedule re-renders and drop stale cache entries.
func (c *Component) OnInvalidate(fn func(*Component)) {
	c.invalidate = fn
}

// Prop returns the named prop and whether it is present.
func (c *Component) Prop(key string) (any, bool) {
	v, ok := c.props[key]
	return v, ok
}

// State returns the named state entry and whether it is present.
func (c *Component) State(key string) (any, bool) {
	v, ok := c.state[key]
	return v, ok
}

// SetProp sets a prop. Setting a prop to its current value is a no-op: no
// hooks fire and no re-render is scheduled.
func (c *Component) SetProp(key string, value any) *Component {
	if old, ok := c.props[key]; ok && valuesEqual(old, value) {
		return c
	}
	c.BeforeUpdate.fire(c)
	c.props[key] = value
	c.bump()
	c.Updated.fire(c)
	return c
}

// SetState sets a state entry with the same compare-and-skip semantics as
// SetProp.
func (c *Component) SetState(key string, value any) *Component {
	if old, ok := c.state[key]; ok && valuesEqual(old, value) {
		return c
	}
	c.BeforeUpdate.fire(c)
	c.state[key] = value
	c.bump()
	c.Updated.fire(c)
	return c
}

func (c *Component) bump() {
	c.generation++
	if c.invalidate != nil {
		c.invalidate(c)
	}
}

// AddChild appends a child and records this component as its parent.
func (c *Component) AddChild(child *Component) *Component {
	child.parent = c
	c.children = append(c.children, child)
	return c
}

// Children returns the child components in insertion order.
func (c *Component) Children() []*Component { return c.children }

// Parent returns the parent component, or nil for a root.
func (c *Component) Parent() *Component { return c.parent }

// Mount transitions the component to mounted and recursively mounts its
// children depth-first. Mounting an already mounted component is a no-op:
// the hooks fire exactly once per mount.
func (c *Component) Mount() {
	if c.mounted || c.destroyed {
		return
	}
	c.BeforeMount.fire(c)
	c.mounted = true
	for _, child := range c.children {
		child.Mount()
	}
	c.Mounted.fire(c)
}

// Unmount tears the component down. The destroyed flag flips before the
// children unmount, so the component is observably Destroyed during child
// teardown and a re-entrant Unmount from a child hook is a no-op. Unmounting
// a component that was never mounted, or unmounting twice, is a no-op.
func (c *Component) Unmount() {
	if !c.mounted || c.destroyed {
		return
	}
	c.BeforeDestroy.fire(c)
	c.mounted = false
	c.destroyed = true
	for _, child := range c.children {
		child.Unmount()
	}
	c.Destroyed.fire(c)
}

// Render produces the component's virtual tree: an element of the
// component's tag carrying its props, with the "text" prop (if any) as a
// leading text child followed by the rendered children.
func (c *Component) Render() *vdom.VNode {
	props := make(vdom.Props, len(c.props))
	for k, v := range c.props {
		if k == "text" {
			continue
		}
		props[k] = v
	}
	node := &vdom.VNode{Kind: vdom.KindElement, Tag: c.tag, Props: props}
	if text, ok := c.props["text"].(string); ok && text != "" {
		node.Children = append(node.Children, vdom.Text(text))
	}
	for _, child := range c.children {
		node.Children = append(node.Children, child.Render())
	}
	return node
}

// routeError delivers err to the registered error hooks, falling back to the
// logger when none are registered. A panicking error hook is logged, never
// re-routed, so error handling cannot recurse.
func (c *Component) routeError(err error) {
	if c.OnError.Len() == 0 {
		c.logger.Error("lifecycle hook failed", "error", err)
		return
	}
	for _, h := range c.OnError.handlers {
		func() {
			defer func() {
				if rec := recover(); rec != nil {
					c.logger.Error("error hook panicked", "panic", rec)
				}
			}()
			h(c, err)
		}()
	}
}

func valuesEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	switch av := a.(type) {
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	case int:
		bv, ok := b.(int)
		return ok && av == bv
	case float64:
		bv, ok := b.(float64)
		return ok && av == bv
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	}
	return reflect.DeepEqual(a, b)
}
