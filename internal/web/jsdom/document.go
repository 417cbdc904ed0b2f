//go:build js && wasm

package jsdom

import (
	"fmt"
	"strings"
	"syscall/js"

	"github.com/sngm3741/vega-landing/internal/web/page"
)

var _ page.Document = (*Page)(nil)

func (p *Page) ScrollY() float64 {
	return p.window.Get("pageYOffset").Float()
}

func (p *Page) ViewportWidth() float64 {
	return p.window.Get("innerWidth").Float()
}

func (p *Page) ScrollTo(top float64, smooth bool) {
	behavior := "auto"
	if smooth {
		behavior = "smooth"
	}
	p.window.Call("scrollTo", map[string]any{"top": top, "behavior": behavior})
}

// LockScroll pins the body with position:fixed, which also stops iOS Safari
// from scrolling underneath the menu.
func (p *Page) LockScroll(offset float64) {
	body, ok := p.bodyEl()
	if !ok {
		return
	}
	style := body.Get("style")
	style.Set("overflow", "hidden")
	style.Set("position", "fixed")
	style.Set("width", "100%")
	style.Set("top", fmt.Sprintf("-%gpx", offset))
}

func (p *Page) UnlockScroll() {
	body, ok := p.bodyEl()
	if !ok {
		return
	}
	style := body.Get("style")
	style.Set("overflow", "")
	style.Set("position", "")
	style.Set("width", "")
	style.Set("top", "")
}

func (p *Page) SetMenuOpen(open bool) {
	if menu, ok := p.byID(idMobileMenu); ok {
		menu.Get("classList").Call("toggle", "active", open)
	}
}

func (p *Page) SetNavScrolled(scrolled bool) {
	if nav, ok := p.query(selectorNav); ok {
		nav.Get("classList").Call("toggle", "scrolled", scrolled)
	}
}

func (p *Page) SetNavHidden(hidden bool) {
	nav, ok := p.query(selectorNav)
	if !ok {
		return
	}
	transform := "translateY(0)"
	if hidden {
		transform = "translateY(-100%)"
	}
	nav.Get("style").Set("transform", transform)
}

func (p *Page) TranslateStarfield(y float64) {
	if field, ok := p.query(selectorParallax); ok {
		field.Get("style").Set("transform", fmt.Sprintf("translateY(%gpx)", y))
	}
}

// AnchorTop resolves "#id" hrefs by id rather than querySelector, which
// throws on ids that are not valid CSS identifiers.
func (p *Page) AnchorTop(href string) (float64, bool) {
	id := strings.TrimPrefix(href, "#")
	if id == "" {
		return 0, false
	}
	el, ok := p.byID(id)
	if !ok {
		return 0, false
	}
	return el.Call("getBoundingClientRect").Get("top").Float(), true
}

func (p *Page) MarkVisible(id string) {
	if el, ok := p.byID(id); ok {
		el.Get("classList").Call("add", "visible")
	}
}

func (p *Page) IsVisible(id string) bool {
	el, ok := p.byID(id)
	return ok && el.Get("classList").Call("contains", "visible").Bool()
}

func (p *Page) StartAnimation(id string) {
	if el, ok := p.byID(id); ok {
		el.Get("style").Set("animationPlayState", "running")
	}
}

func (p *Page) SetBodyLoaded() {
	if body, ok := p.bodyEl(); ok {
		body.Get("classList").Call("add", "loaded")
	}
}

func (p *Page) SetText(id, text string) {
	if el, ok := p.byID(id); ok {
		el.Set("textContent", text)
	}
}

func (p *Page) SetStyleProperty(id, name, value string) {
	if el, ok := p.byID(id); ok {
		el.Get("style").Call("setProperty", name, value)
	}
}

func (p *Page) RenderStars(stars []page.Star) {
	field, ok := p.byID(idStarField)
	if !ok {
		return
	}
	for _, star := range stars {
		span := p.document.Call("createElement", "span")
		span.Set("className", "star "+string(star.Size))
		style := span.Get("style")
		style.Set("top", fmt.Sprintf("%g%%", star.Top))
		style.Set("left", fmt.Sprintf("%g%%", star.Left))
		style.Call("setProperty", "--duration", fmt.Sprintf("%gs", star.Duration.Seconds()))
		style.Set("animationDelay", fmt.Sprintf("%gs", star.Delay.Seconds()))
		field.Call("appendChild", span)
	}
}

// Bind registers the controller's event table against the live document.
func (p *Page) Bind(c *page.Controller) {
	for _, sub := range c.Subscriptions() {
		switch sub.Event {
		case page.EventIntersect:
			p.bindObserver(c, sub)
		case page.EventLoad:
			p.bindLoad(sub)
		case page.EventScroll:
			p.listen(p.window, "scroll", map[string]any{"passive": sub.Passive}, func(js.Value, []js.Value) any {
				sub.Handler(page.Event{Type: page.EventScroll})
				return nil
			})
		default:
			for _, el := range p.queryAll(sub.Target) {
				p.bindElement(el, sub)
			}
		}
	}
}

func (p *Page) bindElement(el js.Value, sub page.Subscription) {
	var options map[string]any
	if sub.Passive {
		options = map[string]any{"passive": true}
	}
	p.listen(el, string(sub.Event), options, func(this js.Value, args []js.Value) any {
		ev := page.Event{
			Type:      sub.Event,
			ElementID: this.Get("id").String(),
			Href:      stringAttr(this, "href"),
		}
		if len(args) > 0 {
			domEvent := args[0]
			if sub.PreventDefault {
				domEvent.Call("preventDefault")
			}
			if sub.Event == page.EventMouseEnter {
				rect := this.Call("getBoundingClientRect")
				ev.X = domEvent.Get("clientX").Float() - rect.Get("left").Float()
				ev.Y = domEvent.Get("clientY").Float() - rect.Get("top").Float()
			}
		}
		if sub.Event == page.EventMouseEnter && ev.ElementID == "" {
			ev.ElementID = p.ensureID(this, "card")
		}
		sub.Handler(ev)
		return nil
	})
}

func (p *Page) bindObserver(c *page.Controller, sub page.Subscription) {
	ctor := p.window.Get("IntersectionObserver")
	if !present(ctor) {
		return
	}
	callback := js.FuncOf(func(_ js.Value, args []js.Value) any {
		if len(args) == 0 {
			return nil
		}
		entries := args[0]
		n := entries.Get("length").Int()
		batch := make([]page.Intersection, 0, n)
		for i := 0; i < n; i++ {
			entry := entries.Index(i)
			batch = append(batch, page.Intersection{
				ID:           entry.Get("target").Get("id").String(),
				Intersecting: entry.Get("isIntersecting").Bool(),
			})
		}
		sub.Handler(page.Event{Type: page.EventIntersect, Entries: batch})
		return nil
	})
	p.funcs = append(p.funcs, callback)

	observer := ctor.New(callback, map[string]any{
		"threshold":  page.FadeInObserverOptions.Threshold,
		"rootMargin": page.FadeInObserverOptions.RootMargin,
	})
	p.observers = append(p.observers, observer)

	var ids []string
	for _, el := range p.queryAll(sub.Target) {
		ids = append(ids, p.ensureID(el, "reveal"))
		observer.Call("observe", el)
	}
	c.Observe(ids)
}

func (p *Page) bindLoad(sub page.Subscription) {
	p.listen(p.window, "load", map[string]any{"once": true}, func(js.Value, []js.Value) any {
		var ids []string
		for _, el := range p.queryAll(page.TargetAnimated) {
			ids = append(ids, p.ensureID(el, "animated"))
		}
		sub.Handler(page.Event{Type: page.EventLoad, IDs: ids})
		return nil
	})
}
