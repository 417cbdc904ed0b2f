package page

import (
	"io"
	"log"
	"math/rand"
	"strconv"
	"time"
)

// Options tunes the controller. Zero fields fall back to DefaultOptions.
type Options struct {
	// HeaderOffset is the fixed nav height subtracted from anchor targets.
	HeaderOffset float64
	// ScrolledThreshold is the offset past which the nav is "scrolled".
	ScrolledThreshold float64
	// HideThreshold is the offset past which scrolling down hides the nav.
	HideThreshold float64
	// MobileBreakpoint is the viewport width below which the nav auto-hides.
	MobileBreakpoint float64
	ParallaxFactor   float64
	StarCount        int
	StaggerStep      time.Duration

	Logger *log.Logger
	Now    func() time.Time
	Rand   *rand.Rand
	// After schedules fn after d. Defaults to time.AfterFunc.
	After func(d time.Duration, fn func())
}

// DefaultOptions returns the values the landing page ships with.
func DefaultOptions() Options {
	return Options{
		HeaderOffset:      80,
		ScrolledThreshold: 50,
		HideThreshold:     100,
		MobileBreakpoint:  768,
		ParallaxFactor:    0.5,
		StarCount:         100,
		StaggerStep:       50 * time.Millisecond,
	}
}

func (o Options) withDefaults() Options {
	def := DefaultOptions()
	if o.HeaderOffset == 0 {
		o.HeaderOffset = def.HeaderOffset
	}
	if o.ScrolledThreshold == 0 {
		o.ScrolledThreshold = def.ScrolledThreshold
	}
	if o.HideThreshold == 0 {
		o.HideThreshold = def.HideThreshold
	}
	if o.MobileBreakpoint == 0 {
		o.MobileBreakpoint = def.MobileBreakpoint
	}
	if o.ParallaxFactor == 0 {
		o.ParallaxFactor = def.ParallaxFactor
	}
	if o.StarCount == 0 {
		o.StarCount = def.StarCount
	}
	if o.StaggerStep == 0 {
		o.StaggerStep = def.StaggerStep
	}
	if o.Logger == nil {
		o.Logger = log.New(io.Discard, "", 0)
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	if o.Rand == nil {
		o.Rand = rand.New(rand.NewSource(o.Now().UnixNano()))
	}
	if o.After == nil {
		o.After = func(d time.Duration, fn func()) { time.AfterFunc(d, fn) }
	}
	return o
}

// Controller owns all page-lifetime UI state: the menu flag, the offset
// captured when the body was locked and the last observed scroll offset.
// It is driven from the browser event loop only and needs no locking.
type Controller struct {
	doc  Document
	opts Options

	menuOpen     bool
	lockedOffset float64
	lastScroll   float64
	scrolled     bool
	navHidden    bool
	revealed     map[string]struct{}
	observed     map[string]struct{}

	started bool
}

// New builds a controller over doc.
func New(doc Document, opts Options) *Controller {
	return &Controller{
		doc:      doc,
		opts:     opts.withDefaults(),
		revealed: make(map[string]struct{}),
		observed: make(map[string]struct{}),
	}
}

// Init renders the starfield and the footer year. It runs once per page load;
// later calls are ignored.
func (c *Controller) Init() {
	if c.started {
		return
	}
	c.started = true

	c.doc.RenderStars(GenerateStars(c.opts.StarCount, c.opts.Rand))
	c.doc.SetText(IDCurrentYear, strconv.Itoa(c.opts.Now().Year()))
	c.lastScroll = c.doc.ScrollY()
}

// Teardown releases the scroll lock if the menu is still open. The DOM
// binding removes its listeners after calling it.
func (c *Controller) Teardown() {
	if !c.started {
		return
	}
	c.CloseMenu()
	c.started = false
}

// Subscriptions is the event table the DOM binding registers at init. Rows are
// dispatched in order, so a menu link click closes the menu before the anchor
// scroll measures its target.
func (c *Controller) Subscriptions() []Subscription {
	return []Subscription{
		{Event: EventClick, Target: TargetMenuButton, Handler: func(Event) { c.ToggleMenu() }},
		{Event: EventClick, Target: TargetMenuClose, Handler: func(Event) { c.ToggleMenu() }},
		{Event: EventClick, Target: TargetMenuLinks, Handler: func(Event) { c.CloseMenu() }},
		{Event: EventClick, Target: TargetAnchors, PreventDefault: true, Handler: func(e Event) { c.ScrollToAnchor(e.Href) }},
		{Event: EventScroll, Target: TargetWindow, Passive: true, Handler: func(Event) { c.HandleScroll() }},
		{Event: EventIntersect, Target: TargetFadeIn, Handler: func(e Event) { c.HandleIntersections(e.Entries) }},
		{Event: EventMouseEnter, Target: TargetCards, Handler: func(e Event) { c.HoverCard(e.ElementID, e.X, e.Y) }},
		{Event: EventLoad, Target: TargetWindow, Handler: func(e Event) { c.HandleLoad(e.IDs) }},
	}
}
