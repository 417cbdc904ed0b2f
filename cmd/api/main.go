package main

import (
	"context"
	"log"

	"github.com/sngm3741/vega-landing/internal/config"
	"github.com/sngm3741/vega-landing/internal/infrastructure/sheets"
	publicapp "github.com/sngm3741/vega-landing/internal/public/application"
	"github.com/sngm3741/vega-landing/internal/server"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		cfg.ServerLog.Fatalf("設定が不正です: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancel()

	clientOptions := options.Client().ApplyURI(cfg.MongoURI).SetServerAPIOptions(options.ServerAPI(options.ServerAPIVersion1))
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		cfg.ServerLog.Fatalf("MongoDB 接続に失敗しました: %v", err)
	}

	var sinks []publicapp.FeedbackSink
	if cfg.Sheets.Enabled() {
		sink, err := sheets.NewSink(ctx, sheets.Config{
			SpreadsheetID:       cfg.Sheets.SpreadsheetID,
			SheetName:           cfg.Sheets.SheetName,
			ServiceAccountEmail: cfg.Sheets.ServiceAccountEmail,
		}, cfg.ServerLog)
		if err != nil {
			cfg.ServerLog.Printf("Google Sheets の初期化に失敗しました (転記なしで起動): %v", err)
		} else {
			sinks = append(sinks, sink)
		}
	} else {
		cfg.ServerLog.Printf("GOOGLE_SPREADSHEET_ID 未設定のため Sheets 転記は無効です")
	}

	app := server.New(cfg, client, sinks...)
	if err := app.Run(); err != nil {
		log.Fatalf("サーバー起動に失敗: %v", err)
	}
}
