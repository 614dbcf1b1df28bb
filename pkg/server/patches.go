package server

import (
	"context"
	"net/http"
	"reflect"

	"github.com/gorilla/websocket"

	"github.com/vellum-ui/vellum/pkg/vdom"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	CheckOrigin: func(r *http.Request) bool {
		// Same-host pages only; the patch socket carries no credentials.
		return r.Header.Get("Origin") == "" || r.Host != ""
	},
}

// wirePatch is the JSON form of a patch sent to the client. Nodes travel as
// rendered HTML so the client can splice them in without a VDOM of its own.
type wirePatch struct {
	Op    string         `json:"op"`
	Index int            `json:"index,omitempty"`
	Props map[string]any `json:"props,omitempty"`
	HTML  string         `json:"html,omitempty"`
}

// dispatchMessage is an event forwarded by the client runtime.
type dispatchMessage struct {
	Handler string `json:"handler"`
	Event   string `json:"event"`
}

// handlePatches upgrades to WebSocket, streams patch batches to the client
// and dispatches incoming events to registered handlers.
func (s *Server) handlePatches(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	sub := s.app.Subscribe()
	defer s.app.Unsubscribe(sub)

	go s.readEvents(ctx, cancel, conn)

	for {
		select {
		case <-ctx.Done():
			return
		case batch, ok := <-sub:
			if !ok {
				return
			}
			wire, err := s.encodePatches(ctx, batch)
			if err != nil {
				s.logger.Error("patch encoding failed", "error", err)
				continue
			}
			if err := conn.WriteJSON(wire); err != nil {
				s.logger.Debug("patch write failed, closing", "error", err)
				return
			}
		}
	}
}

// readEvents pumps client events into the handler registry until the
// connection drops.
func (s *Server) readEvents(ctx context.Context, cancel context.CancelFunc, conn *websocket.Conn) {
	defer cancel()
	for {
		var msg dispatchMessage
		if err := conn.ReadJSON(&msg); err != nil {
			return
		}
		s.dispatch(ctx, msg)
	}
}

func (s *Server) dispatch(ctx context.Context, msg dispatchMessage) {
	key := msg.Handler + "_on" + msg.Event
	h, ok := s.app.Handler(key)
	if !ok {
		s.logger.Warn("event for unknown handler", "handler", msg.Handler, "event", msg.Event)
		return
	}

	switch fn := h.(type) {
	case func():
		fn()
	case func(string):
		fn(msg.Event)
	default:
		s.logger.Warn("handler has unsupported signature", "handler", msg.Handler)
		return
	}

	// Mutations made by the handler schedule their own cache invalidation;
	// re-render the root so subscribers get the resulting patches.
	if _, err := s.app.Update(ctx, s.config.Page.Root); err != nil {
		s.logger.Error("update after event failed", "error", err)
	}
}

// encodePatches converts a patch batch to its wire form.
func (s *Server) encodePatches(ctx context.Context, batch []vdom.Patch) ([]wirePatch, error) {
	wire := make([]wirePatch, 0, len(batch))
	for _, p := range batch {
		wp := wirePatch{
			Op:    p.Op.String(),
			Index: p.Index,
			Props: wireProps(p.Props),
		}
		if p.Node != nil {
			html, err := s.app.RenderNode(ctx, p.Node)
			if err != nil {
				return nil, err
			}
			wp.HTML = html
		}
		wire = append(wire, wp)
	}
	return wire, nil
}

// wireProps drops handler closures from a props diff. Funcs are not JSON
// values and never travel over the socket; handlers reach the client only as
// data-on-* ids inside rendered HTML.
func wireProps(props map[string]any) map[string]any {
	funcs := 0
	for _, v := range props {
		if v != nil && reflect.TypeOf(v).Kind() == reflect.Func {
			funcs++
		}
	}
	if funcs == 0 {
		return props
	}
	out := make(map[string]any, len(props)-funcs)
	for k, v := range props {
		if v != nil && reflect.TypeOf(v).Kind() == reflect.Func {
			continue
		}
		out[k] = v
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
