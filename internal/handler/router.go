package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/hitoshi/todolist/internal/metrics"
	"github.com/hitoshi/todolist/internal/middleware"
	"github.com/prometheus/client_golang/prometheus"
)

// RouterDeps はNewRouterに必要な依存関係をまとめた構造体。
type RouterDeps struct {
	// ミドルウェア依存
	TokenDecoder      middleware.TokenDecoder
	CORSAllowedOrigin string
	Logger            *slog.Logger

	// メトリクス（nil可）
	MetricsRecorder middleware.HTTPRecorder
	Gatherer        prometheus.Gatherer

	// 死活監視
	HealthChecker HealthChecker

	// サービス
	TodoService TodoServiceInterface
	UserService UserServiceInterface
}

// NewRouter は全APIエンドポイントのルーティングとミドルウェアチェーンを
// 構成したchi.Routerを返す。
//
// ミドルウェアスタックの実行順序:
//
//	Recovery → Logging → Metrics → CORS → SecurityHeaders
//
// 認証ミドルウェアはToDo一覧にのみ適用する。単一ToDoの取得・作成・更新・
// 削除は観測された設計どおりトークンを要求しない。
func NewRouter(deps *RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.NewRecoveryMiddleware())
	if deps.Logger != nil {
		r.Use(middleware.NewLoggingMiddleware(deps.Logger))
	}
	if deps.MetricsRecorder != nil {
		r.Use(middleware.NewMetricsMiddleware(deps.MetricsRecorder))
	}
	r.Use(middleware.NewCORSMiddleware(deps.CORSAllowedOrigin))
	r.Use(middleware.NewSecurityHeadersMiddleware())

	healthHandler := NewHealthHandler(deps.HealthChecker)
	todoHandler := NewTodoHandler(deps.TodoService)
	userHandler := NewUserHandler(deps.UserService)

	// 疎通確認・運用エンドポイント
	r.Get("/", healthHandler.Ping)
	r.Get("/health", healthHandler.Health)
	if deps.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", metrics.Handler(deps.Gatherer))
	}

	// ユーザー管理
	r.Route("/users", func(r chi.Router) {
		r.Post("/sign-up", userHandler.SignUp)
		r.Post("/log-in", userHandler.LogIn)
	})

	// ToDo管理
	r.Route("/todos", func(r chi.Router) {
		// 一覧のみベアラートークン必須
		r.With(middleware.NewAuthMiddleware(deps.TokenDecoder)).Get("/", todoHandler.List)

		r.Post("/", todoHandler.Create)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", todoHandler.Get)
			r.Patch("/", todoHandler.Update)
			r.Delete("/", todoHandler.Delete)
		})
	})

	return r
}
