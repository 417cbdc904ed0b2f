package page

import (
	"fmt"
	"time"
)

// ObserverOptions mirrors the IntersectionObserver init dictionary.
type ObserverOptions struct {
	Threshold  float64
	RootMargin string
}

// FadeInObserverOptions reveals elements slightly before they reach the
// bottom edge of the viewport.
var FadeInObserverOptions = ObserverOptions{
	Threshold:  0.1,
	RootMargin: "0px 0px -50px 0px",
}

// Observe records the elements the fade-in observer watches. Only these are
// revealed by HandleIntersections.
func (c *Controller) Observe(ids []string) {
	for _, id := range ids {
		if id == "" {
			continue
		}
		c.observed[id] = struct{}{}
	}
}

// Revealed reports whether id has been marked visible.
func (c *Controller) Revealed(id string) bool {
	_, ok := c.revealed[id]
	return ok
}

// HandleIntersections marks each intersecting, observed element visible.
// Reveal is one-shot: entries that stop intersecting are left alone.
func (c *Controller) HandleIntersections(entries []Intersection) {
	for _, entry := range entries {
		if !entry.Intersecting || entry.ID == "" {
			continue
		}
		if _, watched := c.observed[entry.ID]; !watched {
			continue
		}
		if _, done := c.revealed[entry.ID]; done {
			continue
		}
		c.revealed[entry.ID] = struct{}{}
		c.doc.MarkVisible(entry.ID)
	}
}

// HoverCard exposes the pointer position to the card's CSS.
func (c *Controller) HoverCard(id string, x, y float64) {
	if id == "" {
		return
	}
	c.doc.SetStyleProperty(id, propPointerX, fmt.Sprintf("%gpx", x))
	c.doc.SetStyleProperty(id, propPointerY, fmt.Sprintf("%gpx", y))
}

// HandleLoad marks the body loaded and starts entrance animations one
// StaggerStep apart, skipping elements already revealed.
func (c *Controller) HandleLoad(ids []string) {
	c.doc.SetBodyLoaded()
	for i, id := range ids {
		if id == "" || c.Revealed(id) || c.doc.IsVisible(id) {
			continue
		}
		id := id
		c.opts.After(time.Duration(i)*c.opts.StaggerStep, func() {
			c.doc.StartAnimation(id)
		})
	}
}
