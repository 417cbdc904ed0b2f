package page

// MenuOpen reports whether the mobile menu is open.
func (c *Controller) MenuOpen() bool { return c.menuOpen }

// ToggleMenu flips the mobile menu. The body scroll lock always follows the
// menu state: opening pins the current offset, closing restores it.
func (c *Controller) ToggleMenu() {
	if c.menuOpen {
		c.CloseMenu()
		return
	}
	c.OpenMenu()
}

// OpenMenu opens the menu and locks scrolling at the current offset.
func (c *Controller) OpenMenu() {
	if c.menuOpen {
		return
	}
	// captured here, not on unlock: a pinned body reports offset 0
	c.lockedOffset = c.doc.ScrollY()
	c.menuOpen = true
	c.doc.SetMenuOpen(true)
	c.doc.LockScroll(c.lockedOffset)
}

// CloseMenu closes the menu and returns the window to the locked offset.
func (c *Controller) CloseMenu() {
	if !c.menuOpen {
		return
	}
	c.menuOpen = false
	c.doc.SetMenuOpen(false)
	c.doc.UnlockScroll()
	c.doc.ScrollTo(c.lockedOffset, false)
	c.lastScroll = c.lockedOffset
}
