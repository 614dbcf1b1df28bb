package vdom

import "strconv"

// attr creates an Attr with the given key and value.
func attr(key string, value any) Attr {
	return Attr{Key: key, Value: value}
}

// Identity attributes

// ID sets the id attribute.
func ID(id string) Attr { return attr("id", id) }

// Class sets the class attribute. Multiple classes render space-joined.
func Class(classes ...string) Attr {
	if len(classes) == 1 {
		return attr("class", classes[0])
	}
	return attr("class", classes)
}

// Key sets the reconciliation key. Carried as data on the node; the
// positional differ does not reorder matches by it.
func Key(key string) Attr { return attr("key", key) }

// StyleAttr sets the style attribute from a raw string.
func StyleAttr(style string) Attr { return attr("style", style) }

// StyleMap sets the style attribute from a property map. It renders as a
// ";"-joined inline style string with deterministic (sorted) order.
func StyleMap(style map[string]string) Attr { return attr("style", style) }

// Data creates a data-* attribute.
func Data(key, value string) Attr { return attr("data-"+key, value) }

// Common attributes

func Href(href string) Attr       { return attr("href", href) }
func Src(src string) Attr         { return attr("src", src) }
func Alt(alt string) Attr         { return attr("alt", alt) }
func Name(name string) Attr       { return attr("name", name) }
func Type(t string) Attr          { return attr("type", t) }
func Value(v string) Attr         { return attr("value", v) }
func Placeholder(p string) Attr   { return attr("placeholder", p) }
func TitleAttr(title string) Attr { return attr("title", title) }
func Role(role string) Attr       { return attr("role", role) }
func Lang(lang string) Attr       { return attr("lang", lang) }
func TabIndex(index int) Attr     { return attr("tabindex", index) }
func AriaLabel(label string) Attr { return attr("aria-label", label) }
func AriaHidden(hidden bool) Attr { return attr("aria-hidden", hidden) }
func Width(w int) Attr            { return attr("width", strconv.Itoa(w)) }
func Height(h int) Attr           { return attr("height", strconv.Itoa(h)) }

// Boolean attributes

func Disabled(disabled bool) Attr { return attr("disabled", disabled) }
func Checked(checked bool) Attr   { return attr("checked", checked) }
func Required(required bool) Attr { return attr("required", required) }
func Hidden() Attr                { return attr("hidden", true) }

// Event handlers. Handlers are never serialized into markup; the renderer
// registers them under an opaque id and emits only the reference.

// On creates a handler for an arbitrary event name ("click", "input", ...).
func On(event string, handler any) EventHandler {
	return EventHandler{Event: "on" + event, Handler: handler}
}

func OnClick(handler any) EventHandler  { return On("click", handler) }
func OnInput(handler any) EventHandler  { return On("input", handler) }
func OnChange(handler any) EventHandler { return On("change", handler) }
func OnSubmit(handler any) EventHandler { return On("submit", handler) }
func OnFocus(handler any) EventHandler  { return On("focus", handler) }
func OnBlur(handler any) EventHandler   { return On("blur", handler) }
