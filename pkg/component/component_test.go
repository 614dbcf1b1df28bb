package component

import (
	stderrors "errors"
	"strings"
	"testing"

	vellumerrors "github.com/vellum-ui/vellum/internal/errors"
	"github.com/vellum-ui/vellum/pkg/vdom"
)

func TestMountFiresHooksInOrder(t *testing.T) {
	c := New("Panel")
	var calls []string
	c.BeforeMount.Add(func(*Component) { calls = append(calls, "before-mount") })
	c.Mounted.Add(func(*Component) { calls = append(calls, "mounted") })

	c.Mount()

	if !c.IsMounted() {
		t.Fatal("component not mounted")
	}
	got := strings.Join(calls, ",")
	if got != "before-mount,mounted" {
		t.Errorf("hook order = %q, want %q", got, "before-mount,mounted")
	}
}

func TestDoubleMountFiresHooksOnce(t *testing.T) {
	c := New("Panel")
	count := 0
	c.BeforeMount.Add(func(*Component) { count++ })
	c.Mounted.Add(func(*Component) { count++ })

	c.Mount()
	c.Mount()

	if count != 2 {
		t.Errorf("hook invocations = %d, want 2", count)
	}
}

func TestUnmountBeforeMountIsNoop(t *testing.T) {
	c := New("Panel")
	fired := false
	c.BeforeDestroy.Add(func(*Component) { fired = true })
	c.Destroyed.Add(func(*Component) { fired = true })

	c.Unmount()

	if fired {
		t.Error("destroy hooks fired on an unmounted component")
	}
	if c.IsDestroyed() {
		t.Error("component marked destroyed without ever mounting")
	}
}

func TestUnmountIsTerminal(t *testing.T) {
	c := New("Panel")
	destroys := 0
	c.Destroyed.Add(func(*Component) { destroys++ })

	c.Mount()
	c.Unmount()
	c.Unmount()
	c.Mount()

	if destroys != 1 {
		t.Errorf("destroy hook invocations = %d, want 1", destroys)
	}
	if c.IsMounted() {
		t.Error("destroyed component remounted")
	}
}

func TestMountRecursesIntoChildren(t *testing.T) {
	parent := New("List")
	child := New("Item")
	grandchild := New("Label")
	child.AddChild(grandchild)
	parent.AddChild(child)

	var order []string
	parent.BeforeMount.Add(func(*Component) { order = append(order, "parent-before") })
	child.Mounted.Add(func(*Component) { order = append(order, "child-mounted") })
	parent.Mounted.Add(func(*Component) { order = append(order, "parent-mounted") })

	parent.Mount()

	if !child.IsMounted() || !grandchild.IsMounted() {
		t.Fatal("children not mounted with parent")
	}
	got := strings.Join(order, ",")
	if got != "parent-before,child-mounted,parent-mounted" {
		t.Errorf("mount order = %q", got)
	}
}

func TestUnmountTearsDownChildrenFirst(t *testing.T) {
	parent := New("List")
	child := New("Item")
	parent.AddChild(child)

	var order []string
	parent.BeforeDestroy.Add(func(*Component) { order = append(order, "parent-before") })
	child.Destroyed.Add(func(*Component) { order = append(order, "child-destroyed") })
	parent.Destroyed.Add(func(*Component) { order = append(order, "parent-destroyed") })

	parent.Mount()
	parent.Unmount()

	got := strings.Join(order, ",")
	if got != "parent-before,child-destroyed,parent-destroyed" {
		t.Errorf("unmount order = %q", got)
	}
	if child.IsMounted() {
		t.Error("child still mounted after parent unmount")
	}
}

func TestUnmountMarksDestroyedBeforeChildren(t *testing.T) {
	parent := New("List")
	child := New("Item")
	parent.AddChild(child)

	var destroyedDuringChild bool
	child.BeforeDestroy.Add(func(*Component) {
		destroyedDuringChild = parent.IsDestroyed()
	})

	parent.Mount()
	parent.Unmount()

	if !destroyedDuringChild {
		t.Error("parent not in destroyed state while children unmount")
	}
}

func TestReentrantUnmountFromChildHookIsNoop(t *testing.T) {
	parent := New("List")
	child := New("Item")
	parent.AddChild(child)

	beforeDestroys := 0
	destroys := 0
	parent.BeforeDestroy.Add(func(*Component) { beforeDestroys++ })
	parent.Destroyed.Add(func(*Component) { destroys++ })
	child.Destroyed.Add(func(*Component) { parent.Unmount() })

	parent.Mount()
	parent.Unmount()

	if beforeDestroys != 1 || destroys != 1 {
		t.Errorf("parent hooks fired before-destroy=%d destroyed=%d, want 1 and 1",
			beforeDestroys, destroys)
	}
}

func TestSetPropSkipsEqualValue(t *testing.T) {
	c := New("Counter")
	updates := 0
	c.Updated.Add(func(*Component) { updates++ })

	c.SetProp("count", 1)
	gen := c.Generation()
	c.SetProp("count", 1)

	if updates != 1 {
		t.Errorf("update hook invocations = %d, want 1", updates)
	}
	if c.Generation() != gen {
		t.Error("generation bumped by a no-op write")
	}
}

func TestSetStateFiresUpdateHooks(t *testing.T) {
	c := New("Counter")
	var order []string
	c.BeforeUpdate.Add(func(*Component) { order = append(order, "before") })
	c.Updated.Add(func(*Component) { order = append(order, "after") })

	c.SetState("open", true)

	got := strings.Join(order, ",")
	if got != "before,after" {
		t.Errorf("update hook order = %q", got)
	}
	v, ok := c.State("open")
	if !ok || v != true {
		t.Errorf("State(open) = %v, %v", v, ok)
	}
}

func TestInvalidateCallbackOnMutation(t *testing.T) {
	c := New("Counter")
	invalidations := 0
	c.OnInvalidate(func(got *Component) {
		invalidations++
		if got != c {
			t.Error("invalidation delivered the wrong component")
		}
	})

	c.SetProp("count", 1)
	c.SetProp("count", 1)
	c.SetState("open", true)

	if invalidations != 2 {
		t.Errorf("invalidations = %d, want 2", invalidations)
	}
}

func TestHookPanicRoutedToErrorHook(t *testing.T) {
	c := New("Fragile")
	var caught error
	c.OnError.Add(func(_ *Component, err error) { caught = err })
	c.BeforeMount.Add(func(*Component) { panic("boom") })
	ran := false
	c.BeforeMount.Add(func(*Component) { ran = true })

	c.Mount()

	if caught == nil {
		t.Fatal("panic not routed to error hook")
	}
	var verr *vellumerrors.VellumError
	if !stderrors.As(caught, &verr) || verr.Code != "E200" {
		t.Errorf("error = %v, want code E200", caught)
	}
	if !ran {
		t.Error("later hook skipped after earlier panic")
	}
	if !c.IsMounted() {
		t.Error("mount aborted by contained panic")
	}
}

func TestHookPanicWithoutErrorHookIsLogged(t *testing.T) {
	c := New("Fragile")
	c.Mounted.Add(func(*Component) { panic("boom") })

	// Must not propagate.
	c.Mount()

	if !c.IsMounted() {
		t.Error("component not mounted")
	}
}

func TestRenderProducesElementTree(t *testing.T) {
	btn, err := NewTag("Button", "button")
	if err != nil {
		t.Fatal(err)
	}
	btn.SetProp("class", "primary").SetProp("text", "Go")

	node := btn.Render()

	if node.Kind != vdom.KindElement || node.Tag != "button" {
		t.Fatalf("rendered %s<%s>", node.Kind, node.Tag)
	}
	if node.Props["class"] != "primary" {
		t.Errorf("class prop = %v", node.Props["class"])
	}
	if _, ok := node.Props["text"]; ok {
		t.Error("text prop leaked into element props")
	}
	if len(node.Children) != 1 || node.Children[0].Kind != vdom.KindText || node.Children[0].Text != "Go" {
		t.Errorf("children = %+v, want single text node", node.Children)
	}
}

func TestRenderIncludesChildren(t *testing.T) {
	list, _ := NewTag("List", "ul")
	item, _ := NewTag("Item", "li")
	item.SetProp("text", "one")
	list.AddChild(item)

	node := list.Render()

	if len(node.Children) != 1 || node.Children[0].Tag != "li" {
		t.Fatalf("children = %+v", node.Children)
	}
}

func TestNewTagRejectsInvalidTag(t *testing.T) {
	_, err := NewTag("Broken", "1bad")
	if err == nil {
		t.Fatal("expected error for invalid tag")
	}
	var verr *vellumerrors.VellumError
	if !stderrors.As(err, &verr) || verr.Code != "E100" {
		t.Errorf("error = %v, want code E100", err)
	}
}

func TestFingerprintStableUntilMutation(t *testing.T) {
	c := New("Card")
	c.SetProp("title", "hello")

	first := c.Fingerprint()
	if second := c.Fingerprint(); second != first {
		t.Errorf("fingerprint drifted without mutation: %q vs %q", first, second)
	}

	c.SetState("open", true)
	if c.Fingerprint() == first {
		t.Error("fingerprint unchanged after state mutation")
	}
}

func TestFingerprintDistinguishesInstances(t *testing.T) {
	a := New("Card")
	b := New("Card")
	if a.Fingerprint() == b.Fingerprint() {
		t.Error("distinct instances share a fingerprint")
	}
}
