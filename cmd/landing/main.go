//go:build js && wasm

// Command landing is the landing page script, built with
// GOOS=js GOARCH=wasm and loaded through wasm_exec.js.
package main

import (
	"log"
	"net/http"
	"time"

	"github.com/sngm3741/vega-landing/internal/web/feedback"
	"github.com/sngm3741/vega-landing/internal/web/jsdom"
	"github.com/sngm3741/vega-landing/internal/web/page"
)

func main() {
	dom := jsdom.New()
	logger := log.New(jsdom.ConsoleWriter{Method: "warn"}, "[vega-landing] ", 0)

	dom.WhenReady(func() {
		opts := page.DefaultOptions()
		opts.Logger = logger
		controller := page.New(dom, opts)
		controller.Init()
		dom.Bind(controller)

		panel := feedback.NewPanel(dom, feedback.DefaultSlider)
		submitter := feedback.NewSubmitter(dom, dom, panel, feedback.Config{
			HTTPClient: &http.Client{Timeout: 15 * time.Second},
			Logger:     logger,
		})
		dom.BindFeedback(panel, submitter)

		dom.ReleaseOnUnload(controller)
	})

	select {}
}
