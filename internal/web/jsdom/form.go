//go:build js && wasm

package jsdom

import (
	"context"
	"syscall/js"

	"github.com/sngm3741/vega-landing/internal/web/feedback"
)

var (
	_ feedback.Form = (*Page)(nil)
	_ feedback.View = (*Page)(nil)
)

// Snapshot reads the feedback form through FormData. Fields the form lacks
// come back empty.
func (p *Page) Snapshot() feedback.Snapshot {
	form, ok := p.byID(idFeedbackForm)
	if !ok {
		return feedback.Snapshot{}
	}
	data := p.window.Get("FormData").New(form)
	get := func(name string) string {
		v := data.Call("get", name)
		if !present(v) {
			return ""
		}
		return v.String()
	}

	var issues []string
	checked := form.Call("querySelectorAll", selectorSetupIssues)
	for i, n := 0, checked.Get("length").Int(); i < n; i++ {
		issues = append(issues, checked.Call("item", i).Get("value").String())
	}

	return feedback.Snapshot{
		Helpfulness:        get(feedback.FieldHelpfulness),
		SetupDifficulty:    get(feedback.FieldSetupDifficulty),
		DocsQuality:        get(feedback.FieldDocsQuality),
		SetupIssues:        issues,
		AdditionalFeedback: get(feedback.FieldAdditionalFeedback),
		Email:              get(feedback.FieldEmail),
	}
}

func (p *Page) Reset() {
	if form, ok := p.byID(idFeedbackForm); ok {
		form.Call("reset")
	}
}

func (p *Page) ShowStatus(status feedback.Status) {
	box, ok := p.byID(idFormMessage)
	if !ok {
		return
	}
	wrapper := p.document.Call("createElement", "div")
	text := p.document.Call("createElement", "p")
	switch status {
	case feedback.StatusSuccess:
		wrapper.Set("className", "bg-green-500/10 border border-green-500/30 rounded-lg p-4 text-center animate-fade-in-up")
		text.Set("className", "text-green-400")
	default:
		wrapper.Set("className", "rounded-lg p-4 text-center")
		text.Set("className", "text-gray-400")
	}
	text.Set("textContent", status.Message())
	wrapper.Call("appendChild", text)
	box.Set("innerHTML", "")
	box.Call("appendChild", wrapper)
}

func (p *Page) ClearStatus() {
	if box, ok := p.byID(idFormMessage); ok {
		box.Set("innerHTML", "")
	}
}

func (p *Page) SetDifficulty(label, fill string) {
	if el, ok := p.byID(idDifficultyLabel); ok {
		el.Set("textContent", label)
	}
	if slider, ok := p.byID(idDifficulty); ok {
		slider.Get("style").Call("setProperty", "--value", fill)
	}
}

func (p *Page) SetExpanded(expanded bool) {
	if container, ok := p.byID(idFormContainer); ok {
		container.Get("classList").Call("toggle", "hidden", !expanded)
	}
	if icon, ok := p.byID(idExpandIcon); ok {
		icon.Get("classList").Call("toggle", "rotate-180", expanded)
	}
}

// BindFeedback wires slider input, the expand toggle and form submission.
// The submission runs on its own goroutine: a blocking fetch inside a
// js.FuncOf callback would deadlock the event loop.
func (p *Page) BindFeedback(panel *feedback.Panel, submitter *feedback.Submitter) {
	if slider, ok := p.byID(idDifficulty); ok {
		panel.SetDifficulty(slider.Get("value").String())
		p.listen(slider, "input", nil, func(this js.Value, _ []js.Value) any {
			panel.SetDifficulty(this.Get("value").String())
			return nil
		})
	}

	if toggle, ok := p.byID(idFeedbackToggle); ok {
		p.listen(toggle, "click", nil, func(js.Value, []js.Value) any {
			panel.Toggle()
			return nil
		})
	}

	if form, ok := p.byID(idFeedbackForm); ok {
		p.listen(form, "submit", nil, func(_ js.Value, args []js.Value) any {
			if len(args) > 0 {
				args[0].Call("preventDefault")
			}
			go submitter.Submit(context.Background())
			return nil
		})
	}
}
