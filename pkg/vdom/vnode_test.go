package vdom

import "testing"

func TestEqualIdenticalTrees(t *testing.T) {
	a := Div(ID("a"), Span("hello"))
	b := Div(ID("a"), Span("hello"))

	if !Equal(a, b) {
		t.Error("structurally identical trees should be equal")
	}
}

func TestEqualNil(t *testing.T) {
	if !Equal(nil, nil) {
		t.Error("nil, nil should be equal")
	}
	if Equal(Div(), nil) {
		t.Error("node, nil should not be equal")
	}
	if Equal(nil, Div()) {
		t.Error("nil, node should not be equal")
	}
}

func TestEqualDifferentTag(t *testing.T) {
	if Equal(Div(), Span()) {
		t.Error("div and span should not be equal")
	}
}

func TestEqualPropsUnordered(t *testing.T) {
	a := Div([]Attr{ID("a"), Class("x")})
	b := Div([]Attr{Class("x"), ID("a")})

	if !Equal(a, b) {
		t.Error("props are an unordered set; insertion order should not matter")
	}
}

func TestEqualPropsValueMismatch(t *testing.T) {
	if Equal(Div(ID("a")), Div(ID("b"))) {
		t.Error("different prop values should not be equal")
	}
	if Equal(Div(ID("a")), Div(ID("a"), Class("x"))) {
		t.Error("extra prop should not be equal")
	}
}

func TestEqualChildrenOrdered(t *testing.T) {
	a := Div(Span("x"), Span("y"))
	b := Div(Span("y"), Span("x"))

	if Equal(a, b) {
		t.Error("child order is significant")
	}
}

func TestEqualTextNodes(t *testing.T) {
	if !Equal(Text("hi"), Text("hi")) {
		t.Error("identical text nodes should be equal")
	}
	if Equal(Text("hi"), Text("ho")) {
		t.Error("different text should not be equal")
	}
	if Equal(Text("hi"), Raw("hi")) {
		t.Error("text and raw nodes are different kinds")
	}
}

func TestEqualNumericChildren(t *testing.T) {
	a := Div(42)
	b := Div(42)
	c := Div(43)

	if !Equal(a, b) {
		t.Error("same numeric leaf should be equal")
	}
	if Equal(a, c) {
		t.Error("different numeric leaf should not be equal")
	}
}

func TestEqualHandlerProps(t *testing.T) {
	// Distinct closures with the same signature compare equal so re-renders
	// don't produce spurious prop patches.
	a := Button(OnClick(func() {}))
	b := Button(OnClick(func() {}))

	if !Equal(a, b) {
		t.Error("same-typed handlers should compare equal")
	}
}

func TestEqualStyleMapProps(t *testing.T) {
	a := Div(StyleMap(map[string]string{"color": "red"}))
	b := Div(StyleMap(map[string]string{"color": "red"}))
	c := Div(StyleMap(map[string]string{"color": "blue"}))

	if !Equal(a, b) {
		t.Error("identical style maps should be equal")
	}
	if Equal(a, c) {
		t.Error("different style maps should not be equal")
	}
}

func TestFuncComponent(t *testing.T) {
	comp := Func(func() *VNode { return Div(ID("c")) })
	out := comp.Render()
	if out.Tag != "div" || out.Props["id"] != "c" {
		t.Errorf("unexpected render output: %+v", out)
	}
}

func TestVKindString(t *testing.T) {
	cases := map[VKind]string{
		KindElement:   "Element",
		KindText:      "Text",
		KindFragment:  "Fragment",
		KindComponent: "Component",
		KindRaw:       "Raw",
		VKind(99):     "Unknown",
	}
	for kind, want := range cases {
		if got := kind.String(); got != want {
			t.Errorf("VKind(%d).String() = %q, want %q", kind, got, want)
		}
	}
}
