package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"time"
)

// statusRecorder はhttp.ResponseWriterをラップし、ステータスコードを記録する。
type statusRecorder struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

// WriteHeader はステータスコードを記録してから委譲する。
func (sr *statusRecorder) WriteHeader(code int) {
	if !sr.written {
		sr.statusCode = code
		sr.written = true
	}
	sr.ResponseWriter.WriteHeader(code)
}

// Write はデータを書き込む。WriteHeaderが未呼び出しの場合は200を記録する。
func (sr *statusRecorder) Write(b []byte) (int, error) {
	if !sr.written {
		sr.statusCode = http.StatusOK
		sr.written = true
	}
	return sr.ResponseWriter.Write(b)
}

// usernameHolder は内側で確定した認証済みユーザー名を外側の
// ロギングミドルウェアへ伝えるための入れ物。
// 認証ミドルウェアはロギングより内側で派生リクエストにユーザー名を
// 注入するため、コンテキスト値は外側からは見えない。ポインタ経由で
// 書き戻すことでルートごとの認証構成に依存せずログへ反映できる。
type usernameHolder struct {
	username string
}

// usernameHolderKey はリクエストコンテキストにusernameHolderを格納するためのキー。
var usernameHolderKey = contextKey("usernameHolder")

// NewLoggingMiddleware はリクエストのJSON構造化ログを出力するミドルウェアを返す。
// ログにはmethod、path、status、duration_ms、username（認証済みの場合）を含む。
func NewLoggingMiddleware(logger *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			rec := &statusRecorder{
				ResponseWriter: w,
				statusCode:     http.StatusOK,
			}

			holder := &usernameHolder{}
			ctx := context.WithValue(r.Context(), usernameHolderKey, holder)

			next.ServeHTTP(rec, r.WithContext(ctx))

			duration := time.Since(start)
			durationMs := float64(duration.Nanoseconds()) / float64(time.Millisecond)

			args := []any{
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", rec.statusCode),
				slog.Float64("duration_ms", durationMs),
			}

			// 認証ミドルウェアが書き戻したユーザー名があれば追加。
			// 上流ですでにコンテキストへ注入されている場合もそちらを拾う。
			username := holder.username
			if username == "" {
				if u, err := UsernameFromContext(r.Context()); err == nil {
					username = u
				}
			}
			if username != "" {
				args = append(args, slog.String("username", username))
			}

			// ステータスコードに応じてログレベルを変更
			level := slog.LevelInfo
			if rec.statusCode >= 500 {
				level = slog.LevelError
			} else if rec.statusCode >= 400 {
				level = slog.LevelWarn
			}

			logger.Log(r.Context(), level, "http_request", args...)
		})
	}
}
