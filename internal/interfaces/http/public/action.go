package public

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/sngm3741/vega-landing/internal/interfaces/http/common"
)

func (h *Handler) actionHandler() http.HandlerFunc {
	feedback := h.feedbackCreateHandler()
	return func(w http.ResponseWriter, r *http.Request) {
		action := extractAction(r)
		switch action {
		case common.ActionFeedback:
			feedback(w, r)
		default:
			h.logf("未知のアクション: %q (%s)", action, r.RemoteAddr)
			common.WriteError(h.logger, w, http.StatusBadRequest, "Unknown action")
		}
	}
}

// extractAction prefers the query parameter over the path segment.
func extractAction(r *http.Request) string {
	if action := strings.TrimSpace(r.URL.Query().Get("action")); action != "" {
		return action
	}
	if action := strings.TrimSpace(chi.URLParam(r, "action")); action != "" {
		return action
	}
	return strings.Trim(r.URL.Path, "/")
}
