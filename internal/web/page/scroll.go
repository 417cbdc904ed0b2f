package page

import "strings"

// NavScrolled reports the current "scrolled" nav state.
func (c *Controller) NavScrolled() bool { return c.scrolled }

// NavHidden reports whether the nav is currently slid out of view.
func (c *Controller) NavHidden() bool { return c.navHidden }

// HandleScroll updates the nav for the current offset. It only reads and
// writes controller state and never blocks, so it is safe as a passive
// listener.
func (c *Controller) HandleScroll() {
	current := c.doc.ScrollY()
	width := c.doc.ViewportWidth()

	scrolled := current > c.opts.ScrolledThreshold
	if scrolled != c.scrolled {
		c.scrolled = scrolled
		c.doc.SetNavScrolled(scrolled)
	}

	if width < c.opts.MobileBreakpoint {
		hidden := current > c.lastScroll && current > c.opts.HideThreshold
		if hidden != c.navHidden {
			c.navHidden = hidden
			c.doc.SetNavHidden(hidden)
		}
	} else if width > c.opts.MobileBreakpoint {
		c.doc.TranslateStarfield(current * c.opts.ParallaxFactor)
	}

	c.lastScroll = current
}

// ScrollToAnchor smooth-scrolls to the element an in-page href points at,
// leaving room for the fixed header. Unknown targets are ignored.
func (c *Controller) ScrollToAnchor(href string) {
	href = strings.TrimSpace(href)
	if len(href) < 2 || !strings.HasPrefix(href, "#") {
		return
	}
	top, ok := c.doc.AnchorTop(href)
	if !ok {
		c.opts.Logger.Printf("anchor target %s not found", href)
		return
	}
	target := top + c.doc.ScrollY() - c.opts.HeaderOffset
	c.doc.ScrollTo(target, true)
}
