package public

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sngm3741/vega-landing/internal/public/domain"
)

const (
	discordAttempts = 3
	slackAttempts   = 1
)

// notifyFeedbackReceipt は管理者チャンネルへ新着フィードバックを知らせる。
// Discord を優先し、失敗したときだけ Slack を試し、両方失敗したら記録を残す。
func (h *Handler) notifyFeedbackReceipt(feedback domain.Feedback) {
	ctx := context.Background()

	discordDest := strings.TrimSpace(h.discordDestination)
	slackDest := strings.TrimSpace(h.slackDestination)
	if discordDest == "" && slackDest == "" {
		return
	}

	identifier := feedback.ID
	if identifier == "" {
		identifier = "admin"
	}

	var discordErr, slackErr error
	attempts := 0

	if discordDest != "" {
		message := buildDiscordFeedbackMessage(h.adminFeedbackBaseURL, feedback)
		discordErr = h.sendMessengerWithRetry(ctx, discordDest, identifier, message, discordAttempts, h.retryDelay)
		attempts += discordAttempts
		if discordErr == nil {
			return
		}
		h.logf("Discord通知の送信に失敗: %v", discordErr)
	}

	if slackDest != "" {
		message := buildSlackFeedbackMessage(h.adminFeedbackBaseURL, feedback)
		slackErr = h.sendMessengerWithRetry(ctx, slackDest, identifier, message, slackAttempts, 0)
		attempts += slackAttempts
		if slackErr == nil {
			return
		}
		h.logf("Slack通知の送信に失敗: %v", slackErr)
	}

	h.persistNotificationFailure(ctx, identifier, feedback, combineNotificationErrors(discordErr, slackErr), attempts)
}

func buildDiscordFeedbackMessage(adminBaseURL string, f domain.Feedback) string {
	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("**%s** から新しいフィードバックがあります。\n", feedbackSender(f)))
	builder.WriteString(fmt.Sprintf("- 役立ち度: %s\n", f.Helpfulness))
	builder.WriteString(fmt.Sprintf("- セットアップ難易度: %d / %d\n", f.SetupDifficulty, domain.MaxSetupDifficulty))
	if f.DocsQuality != "" {
		builder.WriteString(fmt.Sprintf("- ドキュメント: %s\n", f.DocsQuality))
	}
	if len(f.SetupIssues) > 0 {
		builder.WriteString(fmt.Sprintf("- つまずき: %s\n", f.JoinedSetupIssues()))
	}
	if f.AdditionalFeedback != "" {
		builder.WriteString("> " + strings.ReplaceAll(f.AdditionalFeedback, "\n", "\n> ") + "\n")
	}
	if link := adminFeedbackLink(adminBaseURL, f.ID); link != "" {
		builder.WriteString(fmt.Sprintf("[管理画面で確認](%s)\n", link))
	}
	return builder.String()
}

func buildSlackFeedbackMessage(adminBaseURL string, f domain.Feedback) string {
	var builder strings.Builder
	builder.WriteString(fmt.Sprintf(":speech_balloon: %s から新しいフィードバックがあります。\n", feedbackSender(f)))
	builder.WriteString(fmt.Sprintf("役立ち度: %s / 難易度: %d\n", f.Helpfulness, f.SetupDifficulty))
	if len(f.SetupIssues) > 0 {
		builder.WriteString(fmt.Sprintf("つまずき: %s\n", f.JoinedSetupIssues()))
	}
	if f.AdditionalFeedback != "" {
		builder.WriteString(fmt.Sprintf("コメント: %s\n", f.AdditionalFeedback))
	}
	if link := adminFeedbackLink(adminBaseURL, f.ID); link != "" {
		builder.WriteString(fmt.Sprintf("管理画面: %s\n", link))
	}
	return builder.String()
}

func feedbackSender(f domain.Feedback) string {
	if f.Email != "" {
		return f.Email
	}
	return "匿名ユーザー (" + f.Source + ")"
}

func adminFeedbackLink(baseURL, id string) string {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" || id == "" {
		return ""
	}
	return strings.TrimRight(baseURL, "/") + "/" + id
}

func (h *Handler) sendMessengerWithRetry(ctx context.Context, destination, userID, text string, attempts int, delay time.Duration) error {
	destination = strings.TrimSpace(destination)
	if destination == "" {
		return errors.New("destination is empty")
	}
	if attempts < 1 {
		attempts = 1
	}
	var lastErr error
	for i := 0; i < attempts; i++ {
		err := h.sendMessengerMessage(ctx, destination, userID, text)
		if err == nil {
			return nil
		}
		lastErr = err
		if delay > 0 && i < attempts-1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}
	return lastErr
}

func (h *Handler) persistNotificationFailure(ctx context.Context, identifier string, f domain.Feedback, cause error, attempts int) {
	if h.failedNotifications == nil || cause == nil {
		return
	}
	payload := map[string]any{
		"feedbackId":  f.ID,
		"identifier":  identifier,
		"helpfulness": f.Helpfulness,
		"difficulty":  f.SetupDifficulty,
		"source":      f.Source,
		"email":       f.Email,
		"comment":     f.AdditionalFeedback,
	}
	if err := h.failedNotifications.SaveAdminFailure(ctx, payload, cause, attempts); err != nil {
		h.logf("failed_notifications への保存に失敗: %v", err)
	}
}

func combineNotificationErrors(errs ...error) error {
	parts := make([]string, 0, len(errs))
	for _, err := range errs {
		if err == nil {
			continue
		}
		parts = append(parts, err.Error())
	}
	if len(parts) == 0 {
		return nil
	}
	return errors.New(strings.Join(parts, "; "))
}

func (h *Handler) sendMessengerMessage(ctx context.Context, destination, userID, bodyText string) error {
	trimmedUserID := strings.TrimSpace(userID)
	if trimmedUserID == "" {
		return errors.New("userID is required")
	}

	payload := map[string]any{
		"userId": trimmedUserID,
		"text":   bodyText,
	}
	if dest := strings.TrimSpace(destination); dest != "" {
		payload["destination"] = dest
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("メッセンジャー送信用ペイロードの作成に失敗: %w", err)
	}

	timeout := h.httpClient.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	ctxWithTimeout, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	endpoint := strings.TrimRight(h.messengerEndpoint, "/") + "/messages"
	req, err := http.NewRequestWithContext(ctxWithTimeout, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("メッセンジャー送信リクエストの作成に失敗: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := h.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("メッセンジャー送信リクエストに失敗: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode >= 400 {
		message, _ := io.ReadAll(io.LimitReader(res.Body, 1<<16))
		return fmt.Errorf("メッセンジャー送信でエラーが発生: status=%d body=%s", res.StatusCode, strings.TrimSpace(string(message)))
	}
	return nil
}
