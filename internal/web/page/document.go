package page

// Document is the part of the browser page the controller reads and writes.
// Implementations must treat missing elements as no-ops.
type Document interface {
	ScrollY() float64
	ViewportWidth() float64
	// ScrollTo moves the window to top. smooth selects the smooth behaviour.
	ScrollTo(top float64, smooth bool)

	// LockScroll pins the body at offset and disables page scrolling.
	LockScroll(offset float64)
	// UnlockScroll releases the body pin without moving the window.
	UnlockScroll()
	SetMenuOpen(open bool)

	SetNavScrolled(scrolled bool)
	SetNavHidden(hidden bool)
	TranslateStarfield(y float64)

	// AnchorTop returns the viewport-relative top of the element href points at.
	AnchorTop(href string) (float64, bool)

	MarkVisible(id string)
	IsVisible(id string) bool
	StartAnimation(id string)
	SetBodyLoaded()

	SetText(id, text string)
	SetStyleProperty(id, name, value string)
	RenderStars(stars []Star)
}

// EventType names a DOM event the controller subscribes to.
type EventType string

const (
	EventClick      EventType = "click"
	EventScroll     EventType = "scroll"
	EventIntersect  EventType = "intersect"
	EventMouseEnter EventType = "mouseenter"
	EventLoad       EventType = "load"
)

// Subscription targets.
const (
	TargetWindow     = "window"
	TargetMenuButton = "#mobile-menu-button"
	TargetMenuClose  = "#mobile-menu-close"
	TargetMenuLinks  = `#mobile-menu a[href^="#"]`
	TargetAnchors    = `a[href^="#"]`
	TargetFadeIn     = ".fade-in-up"
	TargetCards      = ".card-hover"
	TargetAnimated   = `[class*="animate-"]`
)

const (
	IDCurrentYear = "current-year"
	propPointerX  = "--x"
	propPointerY  = "--y"
)

// Intersection is one observer entry.
type Intersection struct {
	ID           string
	Intersecting bool
}

// Event is the synthetic form of a DOM event handed to a handler.
type Event struct {
	Type EventType
	// ElementID is the id of the element that fired, when it has one.
	ElementID string
	Href      string
	// X and Y are pointer coordinates relative to the element.
	X, Y    float64
	Entries []Intersection
	// IDs lists matched elements for load events.
	IDs []string
}

// Subscription is one row of the controller's event table.
type Subscription struct {
	Event   EventType
	Target  string
	Passive bool
	// PreventDefault asks the binding to cancel the browser default action.
	PreventDefault bool
	Handler        func(Event)
}
