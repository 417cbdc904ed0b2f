// Package sheets copies stored feedback into a Google Sheet.
package sheets

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/sngm3741/vega-landing/internal/public/domain"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/impersonate"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// DefaultSheetName is used when Config.SheetName is empty.
const DefaultSheetName = "Vega AI Feedback"

// headerRow is written once into row 1 of an empty sheet. Its column order
// matches feedbackRow.
var headerRow = []any{
	"Timestamp",
	"Helpfulness",
	"Setup Difficulty",
	"Docs Quality",
	"Setup Issues",
	"Additional Feedback",
	"Email",
	"Source",
}

// Config selects the target spreadsheet and the identity used to write it.
type Config struct {
	SpreadsheetID string
	SheetName     string
	// ServiceAccountEmail is impersonated when set. Without it the ambient
	// credentials write directly.
	ServiceAccountEmail string
}

// Sink は Google Sheets へフィードバックを 1 行ずつ追記する。
type Sink struct {
	service       *sheets.Service
	spreadsheetID string
	sheetName     string
	logger        *log.Logger
}

// NewSink はスプレッドシートへの接続を確立し、ヘッダー行を用意した Sink を返す。
// opts を渡した場合は認証情報の探索を行わずそのまま使う。
func NewSink(ctx context.Context, cfg Config, logger *log.Logger, opts ...option.ClientOption) (*Sink, error) {
	if strings.TrimSpace(cfg.SpreadsheetID) == "" {
		return nil, errors.New("spreadsheet ID is required")
	}
	if logger == nil {
		logger = log.Default()
	}
	sheetName := strings.TrimSpace(cfg.SheetName)
	if sheetName == "" {
		sheetName = DefaultSheetName
	}

	if len(opts) == 0 {
		resolved, err := credentialOptions(ctx, cfg.ServiceAccountEmail, logger)
		if err != nil {
			return nil, err
		}
		opts = resolved
	}

	service, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	sink := &Sink{
		service:       service,
		spreadsheetID: cfg.SpreadsheetID,
		sheetName:     sheetName,
		logger:        logger,
	}
	if err := sink.ensureHeaders(ctx); err != nil {
		return nil, fmt.Errorf("initialize sheet headers: %w", err)
	}

	logger.Printf("Google Sheets 連携を初期化しました: spreadsheet=%s sheet=%q", cfg.SpreadsheetID, sheetName)
	return sink, nil
}

// credentialOptions はデフォルト認証情報を探し、可能ならサービスアカウントを偽装する。
// 偽装に失敗した場合はデフォルト認証情報のまま書き込む。
func credentialOptions(ctx context.Context, serviceAccount string, logger *log.Logger) ([]option.ClientOption, error) {
	creds, err := google.FindDefaultCredentials(ctx, sheets.SpreadsheetsScope)
	if err != nil {
		// Cloud Run などではメタデータサーバー経由の認証に任せる。
		logger.Printf("デフォルト認証情報が見つかりません (メタデータ認証を使用): %v", err)
		return []option.ClientOption{option.WithScopes(sheets.SpreadsheetsScope)}, nil
	}

	serviceAccount = strings.TrimSpace(serviceAccount)
	if serviceAccount == "" {
		return []option.ClientOption{option.WithCredentials(creds), option.WithScopes(sheets.SpreadsheetsScope)}, nil
	}

	ts, err := impersonate.CredentialsTokenSource(ctx, impersonate.CredentialsConfig{
		TargetPrincipal: serviceAccount,
		Scopes:          []string{sheets.SpreadsheetsScope},
	}, option.WithCredentials(creds))
	if err != nil {
		logger.Printf("サービスアカウント %s の偽装に失敗 (デフォルト認証情報で継続): %v", serviceAccount, err)
		return []option.ClientOption{option.WithCredentials(creds), option.WithScopes(sheets.SpreadsheetsScope)}, nil
	}
	return []option.ClientOption{option.WithTokenSource(ts)}, nil
}

// AppendFeedback は 1 件を A:H の末尾へ追加する。
func (s *Sink) AppendFeedback(ctx context.Context, feedback *domain.Feedback) error {
	if s == nil || s.service == nil {
		return errors.New("sheets sink is not initialized")
	}
	if feedback == nil {
		return errors.New("feedback data cannot be nil")
	}

	call := s.service.Spreadsheets.Values.Append(s.spreadsheetID, s.rangeOf("A:H"), &sheets.ValueRange{
		Values: [][]any{feedbackRow(feedback)},
	})
	call.ValueInputOption("RAW")
	call.InsertDataOption("INSERT_ROWS")
	if _, err := call.Context(ctx).Do(); err != nil {
		return fmt.Errorf("append feedback to sheet: %w", err)
	}
	return nil
}

func (s *Sink) ensureHeaders(ctx context.Context) error {
	headerRange := s.rangeOf("A1:H1")
	existing, err := s.service.Spreadsheets.Values.Get(s.spreadsheetID, headerRange).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("read header row: %w", err)
	}
	if len(existing.Values) > 0 && len(existing.Values[0]) > 0 {
		return nil
	}

	call := s.service.Spreadsheets.Values.Update(s.spreadsheetID, headerRange, &sheets.ValueRange{
		Values: [][]any{headerRow},
	})
	call.ValueInputOption("RAW")
	if _, err := call.Context(ctx).Do(); err != nil {
		return fmt.Errorf("write header row: %w", err)
	}
	s.logger.Printf("シート %q にヘッダー行を追加しました", s.sheetName)
	return nil
}

// rangeOf quotes the sheet name; names with spaces are otherwise rejected.
func (s *Sink) rangeOf(cells string) string {
	return fmt.Sprintf("'%s'!%s", strings.ReplaceAll(s.sheetName, "'", "''"), cells)
}

func feedbackRow(f *domain.Feedback) []any {
	created := f.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}
	return []any{
		created.UTC().Format(time.RFC3339),
		f.Helpfulness,
		f.SetupDifficulty,
		f.DocsQuality,
		f.JoinedSetupIssues(),
		f.AdditionalFeedback,
		f.Email,
		f.Source,
	}
}
