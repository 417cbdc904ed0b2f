package feedback

import (
	"strconv"
	"strings"
	"sync"
)

// Status is the message shown under the form.
type Status int

const (
	StatusSending Status = iota + 1
	StatusSuccess
)

const (
	sendingMessage = "Sending your feedback..."
	successMessage = "Thank you for your feedback! Your insights will help us improve Vega AI for everyone."
)

// Message returns the text rendered for s.
func (s Status) Message() string {
	switch s {
	case StatusSending:
		return sendingMessage
	case StatusSuccess:
		return successMessage
	}
	return ""
}

// Form reads and clears the feedback form fields.
type Form interface {
	Snapshot() Snapshot
	Reset()
}

// View renders the feedback panel. Implementations skip elements that are
// not on the page.
type View interface {
	ShowStatus(status Status)
	ClearStatus()
	// SetDifficulty writes the label text and the slider fill, e.g. "77.78%".
	SetDifficulty(label, fill string)
	// SetExpanded shows or hides the form container and rotates the expand icon.
	SetExpanded(expanded bool)
}

// Slider describes the setup-difficulty range input.
type Slider struct {
	Min     int
	Max     int
	Default int
}

// DefaultSlider is the 1–10 difficulty slider, resting at 5.
var DefaultSlider = Slider{Min: 1, Max: 10, Default: 5}

// Fill returns the filled share of the track in percent.
func (s Slider) Fill(value int) float64 {
	if s.Max <= s.Min {
		return 0
	}
	value = s.clamp(value)
	return float64(value-s.Min) / float64(s.Max-s.Min) * 100
}

// Parse reads a raw slider value, falling back to Default.
func (s Slider) Parse(raw string) int {
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return s.Default
	}
	return s.clamp(value)
}

func (s Slider) clamp(value int) int {
	if value < s.Min {
		return s.Min
	}
	if value > s.Max {
		return s.Max
	}
	return value
}

// FormatFill renders a fill percentage as a CSS value.
func FormatFill(percent float64) string {
	return strconv.FormatFloat(percent, 'f', 2, 64) + "%"
}

// Panel keeps the collapsible feedback panel and its slider in sync.
type Panel struct {
	mu       sync.Mutex
	view     View
	slider   Slider
	expanded bool
}

// NewPanel returns a collapsed panel.
func NewPanel(view View, slider Slider) *Panel {
	return &Panel{view: view, slider: slider}
}

// SetDifficulty handles slider input.
func (p *Panel) SetDifficulty(raw string) {
	value := p.slider.Parse(raw)
	p.view.SetDifficulty(strconv.Itoa(value), FormatFill(p.slider.Fill(value)))
}

// ResetDifficulty puts the label and fill back to the slider default.
func (p *Panel) ResetDifficulty() {
	p.SetDifficulty(strconv.Itoa(p.slider.Default))
}

// Toggle expands a collapsed panel and collapses an expanded one.
func (p *Panel) Toggle() {
	p.mu.Lock()
	p.expanded = !p.expanded
	expanded := p.expanded
	p.mu.Unlock()
	p.view.SetExpanded(expanded)
}

// Collapse hides the form container.
func (p *Panel) Collapse() {
	p.mu.Lock()
	p.expanded = false
	p.mu.Unlock()
	p.view.SetExpanded(false)
}

// Expanded reports whether the form container is showing.
func (p *Panel) Expanded() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.expanded
}
