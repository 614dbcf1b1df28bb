package vellum

import (
	"context"
	"strings"

	"github.com/vellum-ui/vellum/pkg/component"
	"github.com/vellum-ui/vellum/pkg/vdom"
)

// dispatchShim is the client runtime: it forwards DOM events on elements
// carrying data-on-* attributes to the server over the patch socket.
const dispatchShim = `(function(){
var ws=new WebSocket((location.protocol==="https:"?"wss://":"ws://")+location.host+"/patches");
function dispatch(ev){
  var el=ev.target.closest("[data-on-"+ev.type+"]");
  if(!el)return;
  ws.send(JSON.stringify({handler:el.getAttribute("data-on-"+ev.type),event:ev.type}));
}
["click","input","change","submit","focus","blur"].forEach(function(t){
  document.addEventListener(t,dispatch,true);
});
})();`

// Page describes a full HTML document around a root component.
type Page struct {
	// Title is the document title.
	Title string

	// Lang is the html lang attribute. Default: "en".
	Lang string

	// Head holds extra nodes appended to <head>.
	Head []*vdom.VNode

	// Root is the page's root component.
	Root *component.Component
}

// RenderPage renders a complete HTML document: doctype, head with charset
// and title, the root component's markup, and the event dispatch runtime.
func (a *App) RenderPage(ctx context.Context, p Page) (string, error) {
	body, err := a.RenderHTML(ctx, p.Root)
	if err != nil {
		return "", err
	}

	lang := p.Lang
	if lang == "" {
		lang = "en"
	}

	head := []any{
		vdom.MustElement("meta", vdom.Attr{Key: "charset", Value: "utf-8"}),
		vdom.MustElement("meta",
			vdom.Attr{Key: "name", Value: "viewport"},
			vdom.Attr{Key: "content", Value: "width=device-width, initial-scale=1"}),
		vdom.MustElement("title", p.Title),
	}
	for _, extra := range p.Head {
		head = append(head, extra)
	}

	doc := vdom.MustElement("html",
		vdom.Attr{Key: "lang", Value: lang},
		vdom.MustElement("head", head...),
		vdom.MustElement("body",
			vdom.Raw(body),
			vdom.MustElement("script", vdom.Raw(dispatchShim)),
		),
	)

	html, err := a.renderAny(ctx, doc)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.Grow(len(html) + 16)
	b.WriteString("<!DOCTYPE html>")
	b.WriteString(html)
	return b.String(), nil
}
