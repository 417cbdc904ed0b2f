//go:build js && wasm

// Package jsdom binds the page controller and the feedback panel to the
// browser DOM through syscall/js.
package jsdom

import (
	"fmt"
	"strings"
	"syscall/js"

	"github.com/sngm3741/vega-landing/internal/web/page"
)

// Element ids and selectors the page markup provides.
const (
	idMobileMenu      = "mobile-menu"
	idStarField       = "starField"
	idFeedbackForm    = "feedback-form"
	idFormMessage     = "form-message"
	idFormContainer   = "feedback-form-container"
	idExpandIcon      = "expand-icon"
	idFeedbackToggle  = "feedback-toggle"
	idDifficulty      = "setup-difficulty"
	idDifficultyLabel = "difficulty-value"

	selectorNav         = "nav"
	selectorParallax    = ".star-field"
	selectorSetupIssues = `input[name="setupIssues"]:checked`
)

// Page is the live document. All methods are no-ops for elements the markup
// does not contain.
type Page struct {
	window   js.Value
	document js.Value

	funcs     []js.Func
	listeners []listener
	observers []js.Value
	generated int
}

type listener struct {
	target js.Value
	event  string
	fn     js.Func
}

// New captures the global window and document.
func New() *Page {
	return newPage(js.Global())
}

func newPage(window js.Value) *Page {
	return &Page{
		window:   window,
		document: window.Get("document"),
	}
}

func present(v js.Value) bool {
	return !v.IsUndefined() && !v.IsNull()
}

// bodyEl looks the body up on every call; main may run before <body> has
// been parsed.
func (p *Page) bodyEl() (js.Value, bool) {
	body := p.document.Get("body")
	return body, present(body)
}

func (p *Page) byID(id string) (js.Value, bool) {
	el := p.document.Call("getElementById", id)
	return el, present(el)
}

func (p *Page) query(selector string) (js.Value, bool) {
	el := p.document.Call("querySelector", selector)
	return el, present(el)
}

func (p *Page) queryAll(selector string) []js.Value {
	list := p.document.Call("querySelectorAll", selector)
	n := list.Get("length").Int()
	out := make([]js.Value, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, list.Call("item", i))
	}
	return out
}

// ensureID gives el an id when the markup left it without one, so the
// controller can address it later.
func (p *Page) ensureID(el js.Value, prefix string) string {
	id := el.Get("id").String()
	if id != "" {
		return id
	}
	p.generated++
	id = fmt.Sprintf("%s-%d", prefix, p.generated)
	el.Set("id", id)
	return id
}

func stringAttr(el js.Value, name string) string {
	v := el.Call("getAttribute", name)
	if !present(v) {
		return ""
	}
	return v.String()
}

func (p *Page) listen(target js.Value, event string, options map[string]any, fn func(this js.Value, args []js.Value) any) {
	f := js.FuncOf(fn)
	if options != nil {
		target.Call("addEventListener", event, f, options)
	} else {
		target.Call("addEventListener", event, f)
	}
	p.funcs = append(p.funcs, f)
	p.listeners = append(p.listeners, listener{target: target, event: event, fn: f})
}

// Release removes every listener and observer the page registered and frees
// the callbacks.
func (p *Page) Release() {
	for _, l := range p.listeners {
		l.target.Call("removeEventListener", l.event, l.fn)
	}
	for _, o := range p.observers {
		o.Call("disconnect")
	}
	for _, f := range p.funcs {
		f.Release()
	}
	p.listeners = nil
	p.observers = nil
	p.funcs = nil
}

// WhenReady runs fn once the document has been parsed.
func (p *Page) WhenReady(fn func()) {
	if p.document.Get("readyState").String() != "loading" {
		fn()
		return
	}
	p.listen(p.document, "DOMContentLoaded", map[string]any{"once": true}, func(js.Value, []js.Value) any {
		fn()
		return nil
	})
}

// OnPageHide runs fn when the browser navigates away. persisted is true when
// the page is kept in the back/forward cache and may be shown again.
func (p *Page) OnPageHide(fn func(persisted bool)) {
	p.listen(p.window, "pagehide", nil, func(_ js.Value, args []js.Value) any {
		persisted := false
		if len(args) > 0 {
			if v := args[0].Get("persisted"); present(v) {
				persisted = v.Truthy()
			}
		}
		fn(persisted)
		return nil
	})
}

// ReleaseOnUnload tears c down and frees every callback when the page is
// discarded. A page entering the back/forward cache only gets its menu
// closed; its listeners must survive for the restored page.
func (p *Page) ReleaseOnUnload(c *page.Controller) {
	p.OnPageHide(func(persisted bool) {
		if persisted {
			c.CloseMenu()
			return
		}
		c.Teardown()
		p.Release()
	})
}

// ConsoleWriter sends log output to a console method such as "warn".
type ConsoleWriter struct {
	Method string
}

func (w ConsoleWriter) Write(b []byte) (int, error) {
	method := w.Method
	if method == "" {
		method = "log"
	}
	js.Global().Get("console").Call(method, strings.TrimRight(string(b), "\n"))
	return len(b), nil
}
