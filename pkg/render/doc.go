// Package render serializes vdom trees to HTML strings.
//
// The Renderer is the single entry point the HTTP layer consumes: it
// accepts primitives, *vdom.VNode trees, anything with a Render()
// capability, or slices of these, and produces a complete HTML string.
// Output is deterministic: attributes render in sorted key order, style
// maps in sorted property order.
//
// Event handler props are never serialized into markup. Each handler is
// registered under an opaque id and the element carries only a
// data-on-<event> reference for the client dispatch shim.
//
// Text content and attribute values are HTML-escaped by default;
// RendererConfig.DisableEscaping restores raw output for callers that
// depend on the legacy behavior.
package render
