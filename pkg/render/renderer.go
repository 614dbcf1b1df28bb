package render

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/vellum-ui/vellum/internal/errors"
	"github.com/vellum-ui/vellum/pkg/vdom"
)

// RendererConfig configures the HTML renderer.
type RendererConfig struct {
	// DisableEscaping turns off HTML escaping of text content and attribute
	// values. The default is to escape; disabling reproduces the legacy
	// unescaped output and is unsafe with user-provided content.
	DisableEscaping bool

	// InternCapacity bounds the string-interning pool for repeated
	// fragments. Zero means the default of 1000 entries.
	InternCapacity int
}

// Renderer serializes VNode trees to HTML strings. It owns the handler
// registry populated during a pass: event handler closures never appear in
// markup, only their opaque ids do.
//
// A Renderer is not safe for concurrent use; one render pass runs to
// completion before its result is consulted.
type Renderer struct {
	config         RendererConfig
	handlerCounter uint32
	handlers       map[string]any

	// Handler ids keyed by tree position and event, so re-rendering the
	// same tree overwrites registrations in place instead of growing the
	// registry with every pass.
	pathIDs map[string]string

	// Child-index stack of the node currently being rendered.
	path []int

	pool *internPool
}

// NewRenderer creates a new Renderer with the given configuration.
func NewRenderer(config RendererConfig) *Renderer {
	if config.InternCapacity == 0 {
		config.InternCapacity = defaultInternCapacity
	}
	return &Renderer{
		config:   config,
		handlers: make(map[string]any),
		pathIDs:  make(map[string]string),
		pool:     newInternPool(config.InternCapacity),
	}
}

// RenderToString renders a VNode tree to a complete HTML string.
func (r *Renderer) RenderToString(node *vdom.VNode) (string, error) {
	return r.RenderAny(context.Background(), node)
}

// RenderAny renders any renderable value to an HTML string: strings and
// numbers (stringified), *vdom.VNode trees, anything exposing a
// Render() *vdom.VNode capability (invoked once per pass), and slices of
// any of these (concatenated in order).
func (r *Renderer) RenderAny(ctx context.Context, value any) (string, error) {
	r.path = r.path[:0]
	var buf bytes.Buffer
	if err := r.renderValue(ctx, &buf, value); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// RenderToWriter streams a VNode tree to the given writer.
func (r *Renderer) RenderToWriter(ctx context.Context, w io.Writer, node *vdom.VNode) error {
	r.path = r.path[:0]
	return r.renderNode(ctx, w, node)
}

// Handlers returns the handler registry collected during rendering. Keys
// are the opaque ids emitted as data-on-* attribute values.
func (r *Renderer) Handlers() map[string]any {
	return r.handlers
}

// Reset clears the handler registry and id counter for reuse.
func (r *Renderer) Reset() {
	r.handlerCounter = 0
	r.handlers = make(map[string]any)
	r.pathIDs = make(map[string]string)
}

// renderValue dispatches over the polymorphic renderable variants.
func (r *Renderer) renderValue(ctx context.Context, w io.Writer, value any) error {
	switch v := value.(type) {
	case nil:
		return nil
	case *vdom.VNode:
		return r.renderNode(ctx, w, v)
	case string:
		return r.writeText(w, v)
	case int:
		return r.writeText(w, fmt.Sprintf("%d", v))
	case int64:
		return r.writeText(w, fmt.Sprintf("%d", v))
	case float64:
		return r.writeText(w, fmt.Sprintf("%g", v))
	case vdom.Renderable:
		return r.renderRenderable(ctx, w, v)
	case []*vdom.VNode:
		for i, node := range v {
			if err := r.renderChild(ctx, w, i, node); err != nil {
				return err
			}
		}
		return nil
	case []any:
		for i, item := range v {
			r.path = append(r.path, i)
			err := r.renderValue(ctx, w, item)
			r.path = r.path[:len(r.path)-1]
			if err != nil {
				return err
			}
		}
		return nil
	default:
		return errors.New("E002").WithDetail(fmt.Sprintf("type %T", value))
	}
}

// renderRenderable invokes the render capability once and recurses on its
// output. A panic inside user render code is contained and surfaced as a
// render error.
func (r *Renderer) renderRenderable(ctx context.Context, w io.Writer, c vdom.Renderable) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = errors.New("E001").WithDetail(fmt.Sprintf("component %T panicked: %v", c, rec))
		}
	}()
	return r.renderNode(ctx, w, c.Render())
}

// renderNode dispatches rendering based on node kind.
func (r *Renderer) renderNode(ctx context.Context, w io.Writer, node *vdom.VNode) error {
	if node == nil {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return errors.New("E003").Wrap(err)
	}

	switch node.Kind {
	case vdom.KindElement:
		return r.renderElement(ctx, w, node)
	case vdom.KindText:
		return r.writeText(w, node.Text)
	case vdom.KindFragment:
		for i, child := range node.Children {
			if err := r.renderChild(ctx, w, i, child); err != nil {
				return err
			}
		}
		return nil
	case vdom.KindComponent:
		if node.Comp == nil {
			return nil
		}
		return r.renderRenderable(ctx, w, node.Comp)
	case vdom.KindRaw:
		_, err := io.WriteString(w, node.Text)
		return err
	default:
		return errors.Newf(errors.CategoryRender, "unknown node kind: %d", node.Kind)
	}
}

// renderChild renders one child node with its index pushed onto the
// position stack, so handler ids stay stable across passes over the same
// tree shape.
func (r *Renderer) renderChild(ctx context.Context, w io.Writer, idx int, child *vdom.VNode) error {
	r.path = append(r.path, idx)
	err := r.renderNode(ctx, w, child)
	r.path = r.path[:len(r.path)-1]
	return err
}

// renderElement renders an HTML element with its attributes and children.
func (r *Renderer) renderElement(ctx context.Context, w io.Writer, node *vdom.VNode) error {
	tag := node.Tag

	if _, err := io.WriteString(w, r.pool.intern("<"+tag)); err != nil {
		return err
	}
	if err := r.renderAttributes(w, node); err != nil {
		return err
	}

	// Void elements never receive a closing tag; children are ignored.
	if vdom.IsVoidElement(tag) {
		_, err := io.WriteString(w, "/>")
		return err
	}

	if _, err := w.Write([]byte{'>'}); err != nil {
		return err
	}

	for i, child := range node.Children {
		if err := r.renderChild(ctx, w, i, child); err != nil {
			return wrapRenderError(err, tag)
		}
	}

	_, err := io.WriteString(w, r.pool.intern("</"+tag+">"))
	return err
}

// wrapRenderError attaches the failing tag once; an already-wrapped render
// error keeps the deepest tag it identified.
func wrapRenderError(err error, tag string) error {
	var verr *errors.VellumError
	if stderrors.As(err, &verr) && verr.Code == "E001" {
		return err
	}
	return errors.New("E001").WithDetail("in <" + tag + ">").Wrap(err)
}

// renderAttributes renders all attributes for an element in sorted key
// order for deterministic output.
func (r *Renderer) renderAttributes(w io.Writer, node *vdom.VNode) error {
	if len(node.Props) == 0 {
		return nil
	}

	keys := make([]string, 0, len(node.Props))
	for key := range node.Props {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		value := node.Props[key]

		// Key is reconciliation data, not markup.
		if key == "key" {
			continue
		}

		// Event handlers render as a reference to the dispatch shim, never
		// as inline code.
		if isEventProp(key, value) {
			id := r.registerHandler(key, value)
			event := strings.ToLower(key[2:])
			if _, err := fmt.Fprintf(w, ` data-on-%s="%s"`, event, id); err != nil {
				return err
			}
			continue
		}

		switch v := value.(type) {
		case nil:
			// Omitted entirely
		case bool:
			// true renders as a bare attribute name, false is omitted
			if v {
				if _, err := io.WriteString(w, r.pool.intern(" "+key)); err != nil {
					return err
				}
			}
		case map[string]string:
			if _, err := io.WriteString(w, r.attrFragment(key, styleString(v))); err != nil {
				return err
			}
		case []string:
			if _, err := io.WriteString(w, r.attrFragment(key, strings.Join(v, " "))); err != nil {
				return err
			}
		default:
			if _, err := io.WriteString(w, r.attrFragment(key, attrToString(value))); err != nil {
				return err
			}
		}
	}

	return nil
}

// attrFragment builds one ` name="value"` fragment through the intern pool.
func (r *Renderer) attrFragment(key, value string) string {
	if !r.config.DisableEscaping {
		value = escapeAttr(value)
	}
	return r.pool.intern(` ` + key + `="` + value + `"`)
}

// registerHandler stores the handler under an opaque id. The id is derived
// from the node's position in the tree, so re-rendering the same tree
// overwrites the existing registration in place; the registry is bounded by
// the number of handler-carrying positions, not by the number of passes.
func (r *Renderer) registerHandler(event string, handler any) string {
	key := r.pathKey(event)
	if id, ok := r.pathIDs[key]; ok {
		r.handlers[id+"_"+event] = handler
		return id
	}
	r.handlerCounter++
	id := fmt.Sprintf("h%d", r.handlerCounter)
	r.pathIDs[key] = id
	r.handlers[id+"_"+event] = handler
	return id
}

// pathKey identifies the rendering position of the current node for one
// event.
func (r *Renderer) pathKey(event string) string {
	var sb strings.Builder
	for _, idx := range r.path {
		sb.WriteString(strconv.Itoa(idx))
		sb.WriteByte('.')
	}
	sb.WriteString(event)
	return sb.String()
}

// writeText writes text content, escaped unless configured otherwise.
func (r *Renderer) writeText(w io.Writer, text string) error {
	if r.config.DisableEscaping {
		_, err := io.WriteString(w, text)
		return err
	}
	return escapeTextTo(w, text)
}

// styleString serializes a style map into a ";"-joined inline style with
// deterministic property order.
func styleString(style map[string]string) string {
	props := make([]string, 0, len(style))
	for prop := range style {
		props = append(props, prop)
	}
	sort.Strings(props)

	var sb strings.Builder
	for i, prop := range props {
		if i > 0 {
			sb.WriteByte(';')
		}
		sb.WriteString(prop)
		sb.WriteByte(':')
		sb.WriteString(style[prop])
	}
	return sb.String()
}

// isEventProp returns true if the key is an on*-prefixed prop whose value
// looks like a handler.
func isEventProp(key string, value any) bool {
	if len(key) <= 2 || !strings.EqualFold(key[:2], "on") {
		return false
	}
	if value == nil {
		return false
	}
	switch value.(type) {
	case func(), func(any):
		return true
	default:
		return strings.HasPrefix(fmt.Sprintf("%T", value), "func")
	}
}

// attrToString converts an attribute value to a string.
func attrToString(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case int:
		return fmt.Sprintf("%d", v)
	case int64:
		return fmt.Sprintf("%d", v)
	case float64:
		return fmt.Sprintf("%g", v)
	default:
		return fmt.Sprintf("%v", v)
	}
}
