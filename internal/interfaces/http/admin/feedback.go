package admin

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	adminapp "github.com/sngm3741/vega-landing/internal/admin/application"
	"github.com/sngm3741/vega-landing/internal/interfaces/http/common"
)

func (h *Handler) feedbackListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		page, _ := common.ParsePositiveInt(query.Get("page"), 1)
		limit, _ := common.ParsePositiveInt(query.Get("limit"), adminapp.DefaultPageLimit)

		filter := adminapp.FeedbackFilter{
			Helpfulness: strings.TrimSpace(query.Get("helpfulness")),
			Source:      strings.TrimSpace(query.Get("source")),
		}

		ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
		defer cancel()

		result, err := h.feedbackService.List(ctx, filter, adminapp.Paging{Page: page, Limit: limit})
		if err != nil {
			h.logger.Printf("admin feedback list fetch failed: %v", err)
			common.WriteError(h.logger, w, http.StatusInternalServerError, "フィードバック一覧の取得に失敗しました")
			return
		}

		items := make([]feedbackResponse, 0, len(result.Items))
		for _, item := range result.Items {
			items = append(items, h.feedbackToResponse(item))
		}
		common.WriteJSON(h.logger, w, http.StatusOK, feedbackListResponse{
			Items: items,
			Total: result.Total,
			Page:  result.Page,
			Limit: result.Limit,
		})
	}
}

func (h *Handler) feedbackDetailHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(chi.URLParam(r, "id"))
		if id == "" {
			common.WriteError(h.logger, w, http.StatusBadRequest, "フィードバックIDが指定されていません")
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
		defer cancel()

		feedback, err := h.feedbackService.Detail(ctx, id)
		if err != nil {
			if errors.Is(err, adminapp.ErrFeedbackNotFound) {
				common.WriteError(h.logger, w, http.StatusNotFound, "フィードバックが見つかりません")
				return
			}
			h.logger.Printf("admin feedback detail fetch failed: %v", err)
			common.WriteError(h.logger, w, http.StatusInternalServerError, "フィードバックの取得に失敗しました")
			return
		}

		common.WriteJSON(h.logger, w, http.StatusOK, h.feedbackToResponse(*feedback))
	}
}

func (h *Handler) feedbackStatsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
		defer cancel()

		stats, err := h.feedbackService.Stats(ctx)
		if err != nil {
			h.logger.Printf("admin feedback stats failed: %v", err)
			common.WriteError(h.logger, w, http.StatusInternalServerError, "フィードバック集計に失敗しました")
			return
		}

		common.WriteJSON(h.logger, w, http.StatusOK, h.statsToResponse(*stats))
	}
}

// meHandler は認証済み管理者の情報を返す。管理画面のヘッダー表示用。
func (h *Handler) meHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := common.AdminFromContext(r.Context())
		if !ok {
			common.WriteError(h.logger, w, http.StatusUnauthorized, "認証情報がありません")
			return
		}
		common.WriteJSON(h.logger, w, http.StatusOK, user)
	}
}
