package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/vellum-ui/vellum/pkg/component"
	"github.com/vellum-ui/vellum/pkg/vdom"
	"github.com/vellum-ui/vellum/pkg/vellum"
)

func newTestServer(t *testing.T) (*Server, *vellum.App, *component.Component) {
	t.Helper()
	app := vellum.New(vellum.Config{})
	t.Cleanup(app.Close)

	root := component.New("Home")
	root.SetProp("text", "welcome home")
	app.Attach(root)

	cfg := DefaultConfig()
	cfg.Page.Title = "Demo"
	s := New(app, root, cfg, nil)
	return s, app, root
}

func TestIndexServesRenderedPage(t *testing.T) {
	s, _, _ := newTestServer(t)

	req := httptest.NewRequest("GET", "/", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("content type = %q", ct)
	}
	body := rec.Body.String()
	for _, want := range []string{"<!DOCTYPE html>", "<title>Demo</title>", "welcome home"} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %q", want)
		}
	}
}

func TestHealthEndpoint(t *testing.T) {
	s, _, _ := newTestServer(t)

	req := httptest.NewRequest("GET", "/healthz", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK || rec.Body.String() != "ok" {
		t.Errorf("healthz = %d %q", rec.Code, rec.Body.String())
	}
}

func TestMetricsEndpoint(t *testing.T) {
	s, _, _ := newTestServer(t)

	req := httptest.NewRequest("GET", "/metrics", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("metrics status = %d", rec.Code)
	}
}

func TestMetricsEndpointDisabled(t *testing.T) {
	app := vellum.New(vellum.Config{})
	t.Cleanup(app.Close)
	root := component.New("Home")

	cfg := DefaultConfig()
	cfg.MetricsEnabled = false
	s := New(app, root, cfg, nil)

	req := httptest.NewRequest("GET", "/metrics", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("metrics status = %d, want 404", rec.Code)
	}
}

func TestPatchSocketStreamsUpdates(t *testing.T) {
	s, app, root := newTestServer(t)

	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/patches"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()

	// Give the handler a moment to register its subscription.
	time.Sleep(100 * time.Millisecond)

	// Establish the baseline tree, then mutate so the next update yields
	// a props patch.
	if _, err := app.Update(context.Background(), root); err != nil {
		t.Fatal(err)
	}
	root.SetProp("class", "active")
	if _, err := app.Update(context.Background(), root); err != nil {
		t.Fatal(err)
	}

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var batch []wirePatch
	if err := conn.ReadJSON(&batch); err != nil {
		t.Fatal(err)
	}

	// The create batch from the baseline update arrives first.
	if len(batch) != 1 || batch[0].Op != vdom.PatchCreate.String() {
		t.Fatalf("first batch = %+v, want create", batch)
	}
	if !strings.Contains(batch[0].HTML, "welcome home") {
		t.Errorf("create html = %q", batch[0].HTML)
	}

	if err := conn.ReadJSON(&batch); err != nil {
		t.Fatal(err)
	}
	if len(batch) != 1 || batch[0].Op != vdom.PatchProps.String() {
		t.Fatalf("second batch = %+v, want props", batch)
	}
	if batch[0].Props["class"] != "active" {
		t.Errorf("props = %v", batch[0].Props)
	}
}

func TestDispatchInvokesHandlerAndUpdates(t *testing.T) {
	s, app, root := newTestServer(t)

	clicked := false
	_, err := app.Renderer().RenderAny(context.Background(),
		vdom.MustElement("button", vdom.OnClick(func() {
			clicked = true
			root.SetProp("class", "clicked")
		})))
	if err != nil {
		t.Fatal(err)
	}

	if _, err := app.Update(context.Background(), root); err != nil {
		t.Fatal(err)
	}

	s.dispatch(context.Background(), dispatchMessage{Handler: "h1", Event: "click"})

	if !clicked {
		t.Fatal("handler not invoked")
	}
	if v, _ := root.Prop("class"); v != "clicked" {
		t.Errorf("class = %v", v)
	}
}

func TestEncodePatchesStripsHandlerProps(t *testing.T) {
	s, _, _ := newTestServer(t)

	batch := []vdom.Patch{{
		Op: vdom.PatchProps,
		Props: map[string]any{
			"class":   "active",
			"onclick": func() {},
			"oninput": func(any) {},
		},
	}}

	wire, err := s.encodePatches(context.Background(), batch)
	if err != nil {
		t.Fatal(err)
	}
	if len(wire) != 1 {
		t.Fatalf("wire = %+v", wire)
	}
	props := wire[0].Props
	if len(props) != 1 || props["class"] != "active" {
		t.Errorf("props = %v, want only class", props)
	}
	if _, err := json.Marshal(wire); err != nil {
		t.Errorf("wire form not serializable: %v", err)
	}
}

func TestEncodePatchesDropsAllFuncProps(t *testing.T) {
	s, _, _ := newTestServer(t)

	batch := []vdom.Patch{{
		Op:    vdom.PatchProps,
		Props: map[string]any{"onclick": func() {}},
	}}

	wire, err := s.encodePatches(context.Background(), batch)
	if err != nil {
		t.Fatal(err)
	}
	if wire[0].Props != nil {
		t.Errorf("props = %v, want nil when only handlers changed", wire[0].Props)
	}
}

func TestDispatchUnknownHandlerIsIgnored(t *testing.T) {
	s, _, _ := newTestServer(t)
	// Must not panic.
	s.dispatch(context.Background(), dispatchMessage{Handler: "h9", Event: "click"})
}
