//go:build js && wasm

package jsdom

import (
	"math/rand"
	"syscall/js"
	"testing"

	"github.com/sngm3741/vega-landing/internal/web/feedback"
	"github.com/sngm3741/vega-landing/internal/web/page"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeWindowSource builds just enough of window/document for the binding.
// Elements match the selectors they are created with; nothing is parsed.
const fakeWindowSource = `(() => {
  class ClassList {
    constructor(names) { this.names = new Set(names || []); }
    add(n) { this.names.add(n); }
    remove(n) { this.names.delete(n); }
    contains(n) { return this.names.has(n); }
    toggle(n, force) {
      const on = force === undefined ? !this.names.has(n) : !!force;
      if (on) { this.names.add(n); } else { this.names.delete(n); }
      return on;
    }
  }
  class Style { setProperty(k, v) { this[k] = v; } }
  class Target {
    constructor() { this.listeners = []; }
    addEventListener(type, fn, opts) { this.listeners.push({ type, fn, opts }); }
    removeEventListener(type, fn) { this.listeners = this.listeners.filter(l => !(l.type === type && l.fn === fn)); }
    count(type) { return this.listeners.filter(l => l.type === type).length; }
    dispatch(type, ev) {
      ev = ev || {};
      ev.defaultPrevented = false;
      ev.preventDefault = () => { ev.defaultPrevented = true; };
      for (const l of [...this.listeners]) { if (l.type === type) { l.fn.call(this, ev); } }
      return ev;
    }
  }
  class Element extends Target {
    constructor(doc, tag, attrs, selectors) {
      super();
      attrs = attrs || {};
      this.ownerDocument = doc;
      this.tagName = tag;
      this.id = attrs.id || "";
      this.attrs = attrs;
      this.value = attrs.value || "";
      this.top = attrs.top || 0;
      this.fields = attrs.fields || {};
      this.selectors = selectors || [];
      this.classList = new ClassList();
      this.style = new Style();
      this.children = [];
      this.textContent = "";
      this.innerHTML = "";
      this.resets = 0;
    }
    getAttribute(n) { return n in this.attrs ? this.attrs[n] : null; }
    getBoundingClientRect() { return { top: this.top, left: 0 }; }
    appendChild(c) { this.children.push(c); return c; }
    reset() { this.resets++; }
    querySelectorAll(sel) { return this.ownerDocument.querySelectorAll(sel); }
  }
  class Document extends Target {
    constructor() { super(); this.elements = []; this.body = null; this.readyState = "complete"; }
    add(tag, attrs, selectors) { const el = new Element(this, tag, attrs, selectors); this.elements.push(el); return el; }
    makeBody() { this.body = new Element(this, "body", {}, []); return this.body; }
    getElementById(id) { return this.elements.find(e => e.id === id) || null; }
    querySelector(sel) { return this.elements.find(e => e.selectors.includes(sel)) || null; }
    querySelectorAll(sel) {
      const found = this.elements.filter(e => e.selectors.includes(sel));
      return { length: found.length, item: i => found[i] };
    }
    createElement(tag) { return new Element(this, tag, {}, []); }
  }
  class Window extends Target {
    constructor() {
      super();
      this.document = new Document();
      this.pageYOffset = 0;
      this.innerWidth = 1024;
      this.scrollCalls = [];
      this.FormData = class {
        constructor(form) { this.fields = form.fields; }
        get(n) { return n in this.fields ? this.fields[n] : null; }
      };
    }
    scrollTo(opts) { this.scrollCalls.push(opts); }
  }
  return new Window();
})()`

func newFakeWindow(t *testing.T) js.Value {
	t.Helper()
	win := js.Global().Call("eval", fakeWindowSource)
	require.True(t, present(win))
	return win
}

func addElement(win js.Value, tag string, attrs map[string]any, selectors ...string) js.Value {
	list := make([]any, 0, len(selectors))
	for _, s := range selectors {
		list = append(list, s)
	}
	if attrs == nil {
		attrs = map[string]any{}
	}
	return win.Get("document").Call("add", tag, attrs, list)
}

func hasClass(el js.Value, name string) bool {
	return el.Get("classList").Call("contains", name).Bool()
}

func TestMissingElementsAreNoOps(t *testing.T) {
	p := newPage(newFakeWindow(t))
	panel := feedback.NewPanel(p, feedback.DefaultSlider)

	assert.NotPanics(t, func() {
		p.LockScroll(120)
		p.UnlockScroll()
		p.SetBodyLoaded()
		p.SetMenuOpen(true)
		p.SetNavScrolled(true)
		p.SetNavHidden(true)
		p.TranslateStarfield(40)
		p.MarkVisible("hero")
		p.StartAnimation("hero")
		p.SetText(page.IDCurrentYear, "2026")
		p.SetStyleProperty("card", "--x", "1px")
		p.RenderStars(page.GenerateStars(3, rand.New(rand.NewSource(1))))
		p.Reset()
		p.ShowStatus(feedback.StatusSuccess)
		p.ClearStatus()
		p.SetDifficulty("5", "44.44%")
		p.SetExpanded(true)
		p.BindFeedback(panel, nil)
	})

	_, ok := p.AnchorTop("#pricing")
	assert.False(t, ok)
	assert.False(t, p.IsVisible("hero"))
	assert.Equal(t, feedback.Snapshot{}, p.Snapshot())
}

func TestBodyResolvedAfterParse(t *testing.T) {
	win := newFakeWindow(t)
	win.Get("document").Set("readyState", "loading")
	p := newPage(win)

	assert.NotPanics(t, func() { p.LockScroll(120) })

	body := win.Get("document").Call("makeBody")
	p.LockScroll(120)
	assert.Equal(t, "fixed", body.Get("style").Get("position").String())

	p.SetBodyLoaded()
	assert.True(t, hasClass(body, "loaded"))
}

func TestLockScrollRoundTrip(t *testing.T) {
	win := newFakeWindow(t)
	body := win.Get("document").Call("makeBody")
	p := newPage(win)

	p.LockScroll(120)
	style := body.Get("style")
	assert.Equal(t, "hidden", style.Get("overflow").String())
	assert.Equal(t, "fixed", style.Get("position").String())
	assert.Equal(t, "100%", style.Get("width").String())
	assert.Equal(t, "-120px", style.Get("top").String())

	p.UnlockScroll()
	for _, prop := range []string{"overflow", "position", "width", "top"} {
		assert.Empty(t, style.Get(prop).String(), prop)
	}
}

func TestSnapshotAbsentFieldsAreEmpty(t *testing.T) {
	win := newFakeWindow(t)
	addElement(win, "form", map[string]any{
		"id":     idFeedbackForm,
		"fields": map[string]any{"helpfulness": "very-helpful", "setupDifficulty": "8"},
	})
	addElement(win, "input", map[string]any{"value": "docker"}, selectorSetupIssues)
	addElement(win, "input", map[string]any{"value": "ports"}, selectorSetupIssues)
	p := newPage(win)

	assert.Equal(t, feedback.Snapshot{
		Helpfulness:     "very-helpful",
		SetupDifficulty: "8",
		SetupIssues:     []string{"docker", "ports"},
	}, p.Snapshot())
}

func TestSetExpandedTogglesContainerAndIcon(t *testing.T) {
	win := newFakeWindow(t)
	container := addElement(win, "div", map[string]any{"id": idFormContainer})
	container.Get("classList").Call("add", "hidden")
	icon := addElement(win, "svg", map[string]any{"id": idExpandIcon})
	p := newPage(win)

	p.SetExpanded(true)
	assert.False(t, hasClass(container, "hidden"))
	assert.True(t, hasClass(icon, "rotate-180"))

	p.SetExpanded(false)
	assert.True(t, hasClass(container, "hidden"))
	assert.False(t, hasClass(icon, "rotate-180"))
}

func TestBindClosesMenuBeforeAnchorScroll(t *testing.T) {
	win := newFakeWindow(t)
	win.Get("document").Call("makeBody")
	win.Set("pageYOffset", 500)
	button := addElement(win, "button", map[string]any{"id": "mobile-menu-button"}, page.TargetMenuButton)
	menu := addElement(win, "div", map[string]any{"id": idMobileMenu})
	link := addElement(win, "a", map[string]any{"href": "#pricing"}, page.TargetMenuLinks, page.TargetAnchors)
	addElement(win, "section", map[string]any{"id": "pricing", "top": 1500})

	p := newPage(win)
	c := page.New(p, page.DefaultOptions())
	p.Bind(c)

	assert.Equal(t, 2, link.Call("count", "click").Int())

	button.Call("dispatch", "click")
	require.True(t, c.MenuOpen())
	assert.True(t, hasClass(menu, "active"))

	ev := link.Call("dispatch", "click")
	assert.True(t, ev.Get("defaultPrevented").Bool())
	assert.False(t, c.MenuOpen())

	calls := win.Get("scrollCalls")
	require.Equal(t, 2, calls.Length())
	assert.Equal(t, 500.0, calls.Index(0).Get("top").Float())
	assert.Equal(t, "auto", calls.Index(0).Get("behavior").String())
	assert.Equal(t, 1920.0, calls.Index(1).Get("top").Float())
	assert.Equal(t, "smooth", calls.Index(1).Get("behavior").String())
}

func TestReleaseOnUnloadKeepsCachedPageBound(t *testing.T) {
	win := newFakeWindow(t)
	win.Get("document").Call("makeBody")
	button := addElement(win, "button", map[string]any{"id": "mobile-menu-button"}, page.TargetMenuButton)

	p := newPage(win)
	c := page.New(p, page.DefaultOptions())
	c.Init()
	p.Bind(c)
	p.ReleaseOnUnload(c)

	button.Call("dispatch", "click")
	require.True(t, c.MenuOpen())

	win.Call("dispatch", "pagehide", map[string]any{"persisted": true})
	assert.False(t, c.MenuOpen())
	assert.Equal(t, 1, button.Call("count", "click").Int())
	assert.Equal(t, 1, win.Call("count", "pagehide").Int())

	button.Call("dispatch", "click")
	assert.True(t, c.MenuOpen())

	win.Call("dispatch", "pagehide", map[string]any{"persisted": false})
	assert.False(t, c.MenuOpen())
	assert.Equal(t, 0, button.Call("count", "click").Int())
	assert.Equal(t, 0, win.Call("count", "scroll").Int())
	assert.Equal(t, 0, win.Call("count", "pagehide").Int())
}
