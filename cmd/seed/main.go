package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sngm3741/vega-landing/internal/config"
	mongodoc "github.com/sngm3741/vega-landing/internal/infrastructure/mongo"
	"github.com/sngm3741/vega-landing/internal/public/domain"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type seedOptions struct {
	envFile         string
	feedbackCount   int
	failedCount     int
	dropCollections bool
	randomSeed      int64
	spreadDays      int
}

var (
	helpfulnessValues = []string{"very-helpful", "helpful", "somewhat-helpful", "not-helpful"}
	docsQualityValues = []string{"excellent", "good", "fair", "poor", ""}
	setupIssueValues  = []string{"docker", "ollama", "gemini-api-key", "chrome-extension", "ports", "documentation", "other"}
	sourceValues      = []string{domain.DefaultSource, domain.DefaultSource, "docs", "github-readme"}
	commentValues     = []string{
		"",
		"",
		"Setup was smooth, the compose file just worked.",
		"Took a while to figure out the API key step.",
		"Would love a one-line install script.",
		"The Chrome extension did not pick up my local instance at first.",
	}
	userAgentValues = []string{
		"Mozilla/5.0 (Macintosh; Intel Mac OS X 14_5) AppleWebKit/605.1.15 Safari/605.1.15",
		"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 Chrome/128.0 Safari/537.36",
		"Mozilla/5.0 (X11; Linux x86_64; rv:129.0) Gecko/20100101 Firefox/129.0",
	}
)

func main() {
	opts := parseFlags()

	if opts.envFile != "" {
		if err := loadEnvFile(opts.envFile); err != nil {
			log.Fatalf("環境変数の読み込みに失敗しました: %v", err)
		}
	}

	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatalf("MongoDB 接続に失敗しました: %v", err)
	}
	defer func() {
		_ = client.Disconnect(context.Background())
	}()

	db := client.Database(cfg.MongoDatabase)

	if opts.dropCollections {
		dropCollections(ctx, db, cfg.FeedbackCollection, cfg.FailedNotificationCollection)
		log.Printf("既存コレクションを削除しました")
	}

	feedbackRepo := mongodoc.NewFeedbackRepository(db, cfg.FeedbackCollection)
	if err := feedbackRepo.EnsureIndexes(ctx); err != nil {
		log.Fatalf("インデックス作成に失敗しました: %v", err)
	}

	rng := rand.New(rand.NewSource(opts.randomSeed))
	now := time.Now()

	seeded := make([]*domain.Feedback, 0, opts.feedbackCount)
	for i := 0; i < opts.feedbackCount; i++ {
		feedback, err := domain.NewFeedback(randomFeedbackInput(rng, i), randomTime(rng, now, opts.spreadDays))
		if err != nil {
			log.Fatalf("フィードバック生成に失敗しました: %v", err)
		}
		if err := feedbackRepo.Create(ctx, feedback); err != nil {
			log.Fatalf("フィードバックの挿入に失敗しました: %v", err)
		}
		seeded = append(seeded, feedback)
	}

	failedRepo := mongodoc.NewFailedNotificationRepository(db, cfg.FailedNotificationCollection)
	failed := 0
	for i := 0; i < opts.failedCount && i < len(seeded); i++ {
		feedback := seeded[rng.Intn(len(seeded))]
		payload := map[string]any{
			"feedbackId":  feedback.ID,
			"helpfulness": feedback.Helpfulness,
			"source":      feedback.Source,
		}
		cause := errors.New("discord: messenger status=502 body=bad gateway; slack: messenger status=500 body=internal error")
		if err := failedRepo.SaveAdminFailure(ctx, payload, cause, 4); err != nil {
			log.Fatalf("通知失敗データの挿入に失敗しました: %v", err)
		}
		failed++
	}

	log.Printf("Seed 完了: feedback=%d failedNotifications=%d seed=%d", len(seeded), failed, opts.randomSeed)
	log.Printf("Mongo: %s / %s", cfg.MongoURI, cfg.MongoDatabase)
}

func parseFlags() seedOptions {
	var opts seedOptions
	flag.StringVar(&opts.envFile, "env-file", "", "読み込む env ファイル (例: ../env/local.env)")
	flag.IntVar(&opts.feedbackCount, "count", 25, "生成するフィードバック件数")
	flag.IntVar(&opts.failedCount, "failed", 2, "生成する通知失敗レコード数")
	flag.IntVar(&opts.spreadDays, "days", 30, "createdAt を分散させる日数")
	flag.BoolVar(&opts.dropCollections, "drop", false, "既存コレクションを削除してから投入する")
	flag.Int64Var(&opts.randomSeed, "seed", time.Now().UnixNano(), "乱数シード（再現用）")
	flag.Parse()

	if opts.feedbackCount <= 0 {
		log.Fatal("count は 1 以上を指定してください")
	}
	if opts.failedCount < 0 {
		opts.failedCount = 0
	}
	if opts.spreadDays <= 0 {
		opts.spreadDays = 1
	}
	return opts
}

func loadEnvFile(path string) error {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("%s の読み込みに失敗しました: %w", path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimPrefix(line, "export ")
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		value = strings.Trim(strings.TrimSpace(value), `"'`)
		if err := os.Setenv(strings.TrimSpace(key), value); err != nil {
			return err
		}
	}
	return scanner.Err()
}

func dropCollections(ctx context.Context, db *mongo.Database, names ...string) {
	for _, name := range names {
		if err := db.Collection(name).Drop(ctx); err != nil {
			// 存在しないコレクションでもエラーになり得るので警告のみ
			log.Printf("WARN: コレクション %s の削除に失敗: %v", name, err)
		}
	}
}

func randomFeedbackInput(rng *rand.Rand, i int) domain.FeedbackInput {
	input := domain.FeedbackInput{
		Helpfulness:        pick(rng, helpfulnessValues),
		SetupDifficulty:    1 + rng.Intn(domain.MaxSetupDifficulty),
		DocsQuality:        pick(rng, docsQualityValues),
		SetupIssues:        pickUnique(rng, setupIssueValues, rng.Intn(3)),
		AdditionalFeedback: pick(rng, commentValues),
		Source:             pick(rng, sourceValues),
		UserAgent:          pick(rng, userAgentValues),
	}
	if rng.Intn(3) == 0 {
		input.Email = fmt.Sprintf("tester%02d@example.com", i+1)
	}
	return input
}

func randomTime(rng *rand.Rand, now time.Time, days int) time.Time {
	offset := time.Duration(rng.Int63n(int64(days) * int64(24*time.Hour)))
	return now.Add(-offset)
}

func pick(rng *rand.Rand, values []string) string {
	return values[rng.Intn(len(values))]
}

func pickUnique(rng *rand.Rand, source []string, count int) []string {
	if count <= 0 {
		return nil
	}
	if count >= len(source) {
		return append([]string(nil), source...)
	}
	result := make([]string, 0, count)
	for _, idx := range rng.Perm(len(source))[:count] {
		result = append(result, source[idx])
	}
	return result
}
