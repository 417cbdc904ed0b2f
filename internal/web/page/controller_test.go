package page

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDocument struct {
	scrollY     float64
	width       float64
	locked      bool
	lockedAt    float64
	menuOpen    bool
	navScrolled bool
	navHidden   bool
	parallax    float64
	anchors     map[string]float64
	visible     map[string]bool
	animated    []string
	loaded      bool
	texts       map[string]string
	styles      map[string]map[string]string
	stars       []Star
	scrolls     []scrollCall
}

type scrollCall struct {
	top    float64
	smooth bool
}

func newFakeDocument() *fakeDocument {
	return &fakeDocument{
		width:   1024,
		anchors: map[string]float64{},
		visible: map[string]bool{},
		texts:   map[string]string{},
		styles:  map[string]map[string]string{},
	}
}

func (d *fakeDocument) ScrollY() float64 {
	if d.locked {
		return 0
	}
	return d.scrollY
}
func (d *fakeDocument) ViewportWidth() float64 { return d.width }
func (d *fakeDocument) ScrollTo(top float64, smooth bool) {
	d.scrolls = append(d.scrolls, scrollCall{top: top, smooth: smooth})
	d.scrollY = top
}
func (d *fakeDocument) LockScroll(offset float64) {
	d.locked = true
	d.lockedAt = offset
}
func (d *fakeDocument) UnlockScroll() {
	d.locked = false
	d.lockedAt = 0
}
func (d *fakeDocument) SetMenuOpen(open bool)        { d.menuOpen = open }
func (d *fakeDocument) SetNavScrolled(scrolled bool) { d.navScrolled = scrolled }
func (d *fakeDocument) SetNavHidden(hidden bool)     { d.navHidden = hidden }
func (d *fakeDocument) TranslateStarfield(y float64) { d.parallax = y }
func (d *fakeDocument) AnchorTop(href string) (float64, bool) {
	top, ok := d.anchors[href]
	if !ok {
		return 0, false
	}
	return top - d.scrollY, true
}
func (d *fakeDocument) MarkVisible(id string)       { d.visible[id] = true }
func (d *fakeDocument) IsVisible(id string) bool    { return d.visible[id] }
func (d *fakeDocument) StartAnimation(id string)    { d.animated = append(d.animated, id) }
func (d *fakeDocument) SetBodyLoaded()              { d.loaded = true }
func (d *fakeDocument) SetText(id, text string)     { d.texts[id] = text }
func (d *fakeDocument) RenderStars(stars []Star)    { d.stars = stars }
func (d *fakeDocument) SetStyleProperty(id, name, value string) {
	if d.styles[id] == nil {
		d.styles[id] = map[string]string{}
	}
	d.styles[id][name] = value
}

func newTestController(doc *fakeDocument) *Controller {
	return New(doc, Options{
		Rand: rand.New(rand.NewSource(1)),
		Now:  func() time.Time { return time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC) },
		After: func(_ time.Duration, fn func()) {
			fn()
		},
	})
}

func TestToggleMenuIsAnInvolution(t *testing.T) {
	for _, offset := range []float64{0, 1, 50, 320.5, 12000} {
		doc := newFakeDocument()
		doc.scrollY = offset
		c := newTestController(doc)

		c.ToggleMenu()
		require.True(t, c.MenuOpen())
		assert.True(t, doc.locked)
		assert.True(t, doc.menuOpen)
		assert.Equal(t, offset, doc.lockedAt)

		c.ToggleMenu()
		assert.False(t, c.MenuOpen())
		assert.False(t, doc.locked)
		assert.False(t, doc.menuOpen)
		assert.Equal(t, offset, doc.ScrollY(), "offset %v", offset)
	}
}

func TestMenuTriggersShareLockedOffset(t *testing.T) {
	doc := newFakeDocument()
	doc.scrollY = 640
	c := newTestController(doc)
	subs := c.Subscriptions()

	dispatch(subs, EventClick, TargetMenuButton, Event{})
	require.True(t, c.MenuOpen())

	// a second open trigger while pinned must not overwrite the stored offset
	c.OpenMenu()
	dispatch(subs, EventClick, TargetMenuLinks, Event{})
	assert.False(t, c.MenuOpen())
	assert.Equal(t, float64(640), doc.ScrollY())

	// closing an already closed menu does nothing
	c.CloseMenu()
	assert.False(t, doc.locked)
	assert.Len(t, doc.scrolls, 1)
}

func TestMenuCloseButtonToggles(t *testing.T) {
	doc := newFakeDocument()
	c := newTestController(doc)
	subs := c.Subscriptions()

	dispatch(subs, EventClick, TargetMenuButton, Event{})
	dispatch(subs, EventClick, TargetMenuClose, Event{})
	assert.False(t, c.MenuOpen())
	assert.False(t, doc.locked)
}

func TestScrolledStateFollowsThreshold(t *testing.T) {
	doc := newFakeDocument()
	c := newTestController(doc)

	for _, y := range []float64{0, 20, 50} {
		doc.scrollY = y
		c.HandleScroll()
		assert.False(t, c.NavScrolled(), "y=%v", y)
	}
	for _, y := range []float64{51, 80, 400, 60} {
		doc.scrollY = y
		c.HandleScroll()
		assert.True(t, c.NavScrolled(), "y=%v", y)
		assert.True(t, doc.navScrolled)
	}
	doc.scrollY = 50
	c.HandleScroll()
	assert.False(t, c.NavScrolled())
	assert.False(t, doc.navScrolled)
}

func TestNavHideNeverTriggersOnWideViewports(t *testing.T) {
	for _, width := range []float64{768, 800, 1440} {
		doc := newFakeDocument()
		doc.width = width
		c := newTestController(doc)
		for _, y := range []float64{0, 150, 300, 900, 2000} {
			doc.scrollY = y
			c.HandleScroll()
			assert.False(t, c.NavHidden(), "width=%v y=%v", width, y)
			assert.False(t, doc.navHidden)
		}
	}
}

func TestNavHidesOnScrollDownOnNarrowViewports(t *testing.T) {
	doc := newFakeDocument()
	doc.width = 375
	c := newTestController(doc)

	doc.scrollY = 90
	c.HandleScroll()
	assert.False(t, c.NavHidden(), "below hide threshold")

	doc.scrollY = 240
	c.HandleScroll()
	assert.True(t, c.NavHidden())
	assert.True(t, doc.navHidden)

	doc.scrollY = 200
	c.HandleScroll()
	assert.False(t, c.NavHidden(), "scrolling up shows the nav")
	assert.False(t, doc.navHidden)
}

func TestParallaxOnlyOnDesktop(t *testing.T) {
	doc := newFakeDocument()
	doc.width = 1280
	c := newTestController(doc)
	doc.scrollY = 300
	c.HandleScroll()
	assert.Equal(t, float64(150), doc.parallax)

	mobile := newFakeDocument()
	mobile.width = 375
	m := newTestController(mobile)
	mobile.scrollY = 300
	m.HandleScroll()
	assert.Zero(t, mobile.parallax)
}

func TestScrollToAnchorSubtractsHeader(t *testing.T) {
	doc := newFakeDocument()
	doc.scrollY = 100
	doc.anchors["#features"] = 1200
	c := newTestController(doc)

	c.ScrollToAnchor("#features")
	require.Len(t, doc.scrolls, 1)
	assert.Equal(t, scrollCall{top: 1120, smooth: true}, doc.scrolls[0])
}

func TestScrollToAnchorMissingTargetIsNoop(t *testing.T) {
	doc := newFakeDocument()
	c := newTestController(doc)

	assert.NotPanics(t, func() {
		c.ScrollToAnchor("#nowhere")
		c.ScrollToAnchor("#")
		c.ScrollToAnchor("")
		c.ScrollToAnchor("https://example.com")
	})
	assert.Empty(t, doc.scrolls)
}

func TestMenuLinkClosesBeforeAnchorScroll(t *testing.T) {
	doc := newFakeDocument()
	doc.scrollY = 500
	doc.anchors["#pricing"] = 2000
	c := newTestController(doc)
	subs := c.Subscriptions()

	c.OpenMenu()
	ev := Event{Href: "#pricing"}
	dispatch(subs, EventClick, TargetMenuLinks, ev)
	dispatch(subs, EventClick, TargetAnchors, ev)

	require.Len(t, doc.scrolls, 2)
	assert.Equal(t, scrollCall{top: 500}, doc.scrolls[0])
	assert.Equal(t, scrollCall{top: 1920, smooth: true}, doc.scrolls[1])
}

func TestRevealIsOneShot(t *testing.T) {
	doc := newFakeDocument()
	c := newTestController(doc)
	c.Observe([]string{"hero", "features"})

	c.HandleIntersections([]Intersection{{ID: "hero", Intersecting: true}, {ID: "features"}})
	assert.True(t, c.Revealed("hero"))
	assert.False(t, c.Revealed("features"))

	c.HandleIntersections([]Intersection{{ID: "hero", Intersecting: false}})
	assert.True(t, c.Revealed("hero"))
	assert.True(t, doc.visible["hero"])
}

func TestRevealIgnoresUnobservedElements(t *testing.T) {
	doc := newFakeDocument()
	c := newTestController(doc)
	c.Observe([]string{"hero", ""})

	c.HandleIntersections([]Intersection{{ID: "footer", Intersecting: true}, {ID: "hero", Intersecting: true}})

	assert.False(t, c.Revealed("footer"))
	assert.False(t, doc.visible["footer"])
	assert.True(t, c.Revealed("hero"))
}

func TestScrollSubscriptionIsPassive(t *testing.T) {
	c := newTestController(newFakeDocument())
	var found bool
	for _, sub := range c.Subscriptions() {
		if sub.Event == EventScroll {
			found = true
			assert.True(t, sub.Passive)
		}
	}
	assert.True(t, found)
}

func TestInitRendersStarsAndYearOnce(t *testing.T) {
	doc := newFakeDocument()
	c := newTestController(doc)
	c.Init()

	assert.Len(t, doc.stars, 100)
	assert.Equal(t, "2026", doc.texts[IDCurrentYear])

	doc.stars = nil
	c.Init()
	assert.Nil(t, doc.stars)
}

func TestTeardownReleasesScrollLock(t *testing.T) {
	doc := newFakeDocument()
	doc.scrollY = 75
	c := newTestController(doc)
	c.Init()
	c.OpenMenu()

	c.Teardown()
	assert.False(t, doc.locked)
	assert.Equal(t, float64(75), doc.ScrollY())
}

func TestHoverCardSetsPointerProperties(t *testing.T) {
	doc := newFakeDocument()
	c := newTestController(doc)

	c.HoverCard("card-1", 12, 34.5)
	assert.Equal(t, "12px", doc.styles["card-1"]["--x"])
	assert.Equal(t, "34.5px", doc.styles["card-1"]["--y"])

	c.HoverCard("", 1, 1)
	assert.Len(t, doc.styles, 1)
}

func TestHandleLoadStaggersAndSkipsVisible(t *testing.T) {
	doc := newFakeDocument()
	var delays []time.Duration
	c := New(doc, Options{
		Rand: rand.New(rand.NewSource(1)),
		After: func(d time.Duration, fn func()) {
			delays = append(delays, d)
			fn()
		},
	})
	doc.visible["b"] = true

	c.HandleLoad([]string{"a", "b", "c"})
	assert.True(t, doc.loaded)
	assert.Equal(t, []string{"a", "c"}, doc.animated)
	assert.Equal(t, []time.Duration{0, 100 * time.Millisecond}, delays)
}

func TestGenerateStarsRanges(t *testing.T) {
	stars := GenerateStars(500, rand.New(rand.NewSource(7)))
	require.Len(t, stars, 500)
	for _, s := range stars {
		assert.Contains(t, starSizes, s.Size)
		assert.GreaterOrEqual(t, s.Top, 0.0)
		assert.Less(t, s.Top, 100.0)
		assert.GreaterOrEqual(t, s.Left, 0.0)
		assert.Less(t, s.Left, 100.0)
		assert.GreaterOrEqual(t, s.Duration, 2*time.Second)
		assert.Less(t, s.Duration, 5*time.Second)
		assert.Less(t, s.Delay, 5*time.Second)
	}
	assert.Nil(t, GenerateStars(0, rand.New(rand.NewSource(7))))
}

func dispatch(subs []Subscription, event EventType, target string, ev Event) {
	ev.Type = event
	for _, sub := range subs {
		if sub.Event == event && sub.Target == target {
			sub.Handler(ev)
		}
	}
}
