package server

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	adminapp "github.com/sngm3741/vega-landing/internal/admin/application"
	"github.com/sngm3741/vega-landing/internal/config"
	mongodoc "github.com/sngm3741/vega-landing/internal/infrastructure/mongo"
	adminhttp "github.com/sngm3741/vega-landing/internal/interfaces/http/admin"
	publichttp "github.com/sngm3741/vega-landing/internal/interfaces/http/public"
	publicapp "github.com/sngm3741/vega-landing/internal/public/application"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Dependencies はルータが必要とするアプリケーションサービス一式。
// テストではモックを差し込み、本番では New が MongoDB から組み立てる。
type Dependencies struct {
	Ping                func(ctx context.Context) error
	FeedbackCommands    publicapp.FeedbackCommandService
	AdminFeedback       adminapp.FeedbackService
	FailedNotifications publichttp.FailedNotificationStore
	// Close runs after the HTTP server has stopped.
	Close func(ctx context.Context) error
	// Dispatch overrides how admin notifications are started; see publichttp.Config.
	Dispatch func(func())
}

// Server は HTTP サーバーのライフサイクルを管理し、Public/Admin の各ハンドラへ依存注入するコンポジションルート。
type Server struct {
	logger      *log.Logger
	addr        string
	router      chi.Router
	ping        func(ctx context.Context) error
	close       func(ctx context.Context) error
	jwtConfigs  []config.JWTConfig
	jwtAudience string
	location    *time.Location
}

// New は Config と Mongo クライアントからリポジトリとサービスを組み立てた Server を返す。
// sinks には Google Sheets などフィードバックの転記先を渡す。
func New(cfg config.Config, client *mongo.Client, sinks ...publicapp.FeedbackSink) *Server {
	database := client.Database(cfg.MongoDatabase)

	feedbackRepo := mongodoc.NewFeedbackRepository(database, cfg.FeedbackCollection)
	indexCtx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	if err := feedbackRepo.EnsureIndexes(indexCtx); err != nil {
		cfg.ServerLog.Printf("インデックスの作成に失敗しました (起動は継続): %v", err)
	}
	cancel()

	return NewWithDependencies(cfg, Dependencies{
		Ping: func(ctx context.Context) error {
			return client.Ping(ctx, readpref.Primary())
		},
		FeedbackCommands: publicapp.NewFeedbackCommandService(publicapp.FeedbackServiceConfig{
			Repository:  feedbackRepo,
			Sinks:       sinks,
			Logger:      cfg.ServerLog,
			SinkTimeout: cfg.SinkTimeout,
		}),
		AdminFeedback:       adminapp.NewFeedbackService(mongodoc.NewAdminFeedbackRepository(database, cfg.FeedbackCollection)),
		FailedNotifications: mongodoc.NewFailedNotificationRepository(database, cfg.FailedNotificationCollection),
		Close:               client.Disconnect,
	})
}

// NewWithDependencies はサービスを直接受け取り、ルーティングを組み立てる。
func NewWithDependencies(cfg config.Config, deps Dependencies) *Server {
	logger := cfg.ServerLog
	if logger == nil {
		logger = log.New(os.Stdout, "[vega-landing-api] ", log.LstdFlags|log.Lshortfile)
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		loc = time.FixedZone("JST", 9*60*60)
		logger.Printf("タイムゾーン %s の読み込みに失敗: %v, JST を使用します", cfg.Timezone, err)
	}

	srv := &Server{
		logger:      logger,
		addr:        cfg.Addr,
		ping:        deps.Ping,
		close:       deps.Close,
		jwtConfigs:  append([]config.JWTConfig(nil), cfg.JWTConfigs...),
		jwtAudience: cfg.JWTAudience,
		location:    loc,
	}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	router.Get("/healthz", srv.healthHandler())

	adminHandler := adminhttp.NewHandler(adminhttp.Config{
		Logger:          logger,
		FeedbackService: deps.AdminFeedback,
		Location:        loc,
	})
	router.Route("/admin", func(r chi.Router) {
		r.Use(srv.authMiddleware)
		adminHandler.Register(r)
	})

	publicHandler := publichttp.NewHandler(publichttp.Config{
		Logger:               logger,
		FeedbackCommands:     deps.FeedbackCommands,
		HTTPClient:           &http.Client{Timeout: cfg.MessengerTimeout},
		MessengerEndpoint:    cfg.MessengerEndpoint,
		DiscordDestination:   cfg.DiscordDestination,
		SlackDestination:     cfg.SlackDestination,
		AdminFeedbackBaseURL: cfg.AdminFeedbackBaseURL,
		FailedNotifications:  deps.FailedNotifications,
		Dispatch:             deps.Dispatch,
	})
	publicHandler.Register(router)

	srv.router = router
	return srv
}

// Router exposes the assembled routes, mainly for httptest.
func (s *Server) Router() http.Handler {
	return s.router
}

// Run はHTTPサーバーを起動し、シグナル受信または異常終了まで待機する。
func (s *Server) Run() error {
	httpServer := &http.Server{
		Addr:              s.addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		s.logger.Printf("HTTP サーバー起動: http://%s", s.addr)
		errChan <- httpServer.ListenAndServe()
	}()

	return s.waitForShutdown(httpServer, errChan)
}

// healthHandler は MongoDB への疎通確認を行い、監視系からのヘルスチェック要求に応える。
func (s *Server) healthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if s.ping != nil {
			if err := s.ping(ctx); err != nil {
				s.writeJSON(w, http.StatusServiceUnavailable, map[string]string{
					"status": "degraded",
					"error":  err.Error(),
				})
				return
			}
		}

		s.writeJSON(w, http.StatusOK, map[string]string{
			"status": "ok",
			"time":   time.Now().In(s.location).Format(time.RFC3339),
		})
	}
}

// writeJSON は JSON レスポンスの共通書き込み処理。
func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Printf("JSON エンコードに失敗: %v", err)
	}
}

// shutdown は依存リソースをタイムアウト付きで解放する。
func (s *Server) shutdown(ctx context.Context) {
	if s.close == nil {
		return
	}
	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := s.close(shutdownCtx); err != nil {
		s.logger.Printf("MongoDB 切断時にエラー: %v", err)
	}
}

// waitForShutdown は ListenAndServe の終了と OS シグナルを監視し、graceful shutdown を実現する。
func (s *Server) waitForShutdown(httpServer *http.Server, errChan <-chan error) error {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	var runErr error
	select {
	case err := <-errChan:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			runErr = err
		}
	case sig := <-sigChan:
		s.logger.Printf("シグナル %s を受信。サーバー停止処理を開始します。", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(ctx); err != nil {
			s.logger.Printf("サーバー停止時にエラー: %v", err)
		}
	}

	s.shutdown(context.Background())
	return runErr
}
