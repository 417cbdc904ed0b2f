package public

import (
	"encoding/json"
	"errors"
	"mime"
	"net/http"
	"strings"

	"github.com/sngm3741/vega-landing/internal/interfaces/http/common"
	publicapp "github.com/sngm3741/vega-landing/internal/public/application"
	"github.com/sngm3741/vega-landing/internal/public/domain"
)

func (h *Handler) feedbackCreateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			common.WriteError(h.logger, w, http.StatusMethodNotAllowed, "Method not allowed")
			return
		}
		r.Body = http.MaxBytesReader(w, r.Body, common.MaxFeedbackRequestBody)

		cmd, err := decodeFeedbackCommand(r)
		if err != nil {
			h.logf("フィードバックの読み取りに失敗: %v", err)
			common.WriteError(h.logger, w, http.StatusBadRequest, err.Error())
			return
		}

		created, err := h.feedbackCommands.Submit(r.Context(), cmd)
		if err != nil {
			if errors.Is(err, publicapp.ErrInvalidFeedback) {
				common.WriteError(h.logger, w, http.StatusBadRequest, err.Error())
				return
			}
			h.logf("フィードバックの保存に失敗: %v", err)
			common.WriteError(h.logger, w, http.StatusInternalServerError, "Failed to store feedback")
			return
		}

		h.logf("フィードバックを受け付けました: id=%s source=%s", created.ID, created.Source)
		snapshot := *created
		h.dispatch(func() { h.notifyFeedbackReceipt(snapshot) })

		common.WriteJSON(h.logger, w, http.StatusOK, feedbackResponse{
			Success: true,
			Message: common.FeedbackThanksMessage,
		})
	}
}

// decodeFeedbackCommand reads JSON bodies when the content type says so and
// URL-encoded or multipart form bodies otherwise.
func decodeFeedbackCommand(r *http.Request) (publicapp.SubmitFeedbackCommand, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))

	if mediaType == "application/json" {
		var req feedbackRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return publicapp.SubmitFeedbackCommand{}, errors.New("Invalid JSON")
		}
		return publicapp.SubmitFeedbackCommand{
			Helpfulness:        req.Helpfulness,
			SetupDifficulty:    req.difficulty(),
			DocsQuality:        req.DocsQuality,
			SetupIssues:        req.SetupIssues,
			AdditionalFeedback: req.AdditionalFeedback,
			Email:              req.Email,
			Source:             req.Source,
			UserAgent:          r.UserAgent(),
		}, nil
	}

	var err error
	if mediaType == "multipart/form-data" {
		err = r.ParseMultipartForm(common.MaxFeedbackRequestBody)
	} else {
		err = r.ParseForm()
	}
	if err != nil {
		return publicapp.SubmitFeedbackCommand{}, errors.New("Invalid form data")
	}

	var issues []string
	for _, value := range r.Form["setupIssues"] {
		issues = append(issues, domain.SplitSetupIssues(value)...)
	}

	return publicapp.SubmitFeedbackCommand{
		Helpfulness:        r.FormValue("helpfulness"),
		SetupDifficulty:    common.ParseIntOrDefault(r.FormValue("setupDifficulty"), domain.DefaultSetupDifficulty),
		DocsQuality:        r.FormValue("docsQuality"),
		SetupIssues:        issues,
		AdditionalFeedback: r.FormValue("additionalFeedback"),
		Email:              strings.TrimSpace(r.FormValue("email")),
		Source:             r.FormValue("source"),
		UserAgent:          r.UserAgent(),
	}, nil
}
