// Package middleware はHTTPミドルウェアを提供する。
package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/hitoshi/todolist/internal/model"
)

// contextKey はコンテキストに値を格納するための型安全なキー。
type contextKey string

// usernameContextKey はリクエストコンテキストに認証済みユーザー名を格納するためのキー。
var usernameContextKey = contextKey("username")

// TokenDecoder はベアラートークンの検証に必要なインターフェース。
// credential.Serviceの部分集合として定義する。
type TokenDecoder interface {
	// DecodeToken はトークンを検証し、subjectのusernameを返す。
	DecodeToken(token string) (string, error)
}

// NewAuthMiddleware はAuthorizationヘッダーのベアラートークンを検証する
// ミドルウェアを返す。認証済みユーザー名をリクエストコンテキストに注入する。
// ヘッダー欠落・形式不正・トークン不正/期限切れはすべて401を返す。
func NewAuthMiddleware(decoder TokenDecoder) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// 1. Authorizationヘッダーからトークンを取り出す
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				WriteErrorResponse(w, http.StatusUnauthorized, model.NewUnauthorizedError())
				return
			}

			token := strings.TrimPrefix(authHeader, "Bearer ")
			if token == authHeader || token == "" {
				WriteErrorResponse(w, http.StatusUnauthorized, model.NewUnauthorizedError())
				return
			}

			// 2. 署名と有効期限を検証
			username, err := decoder.DecodeToken(token)
			if err != nil {
				WriteErrorResponse(w, http.StatusUnauthorized, model.NewUnauthorizedError())
				return
			}

			// 3. 認証済みユーザー名をコンテキストに注入
			ctx := context.WithValue(r.Context(), usernameContextKey, username)

			// 外側のロギングミドルウェアへユーザー名を書き戻す
			if holder, ok := ctx.Value(usernameHolderKey).(*usernameHolder); ok {
				holder.username = username
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UsernameFromContext はリクエストコンテキストから認証済みユーザー名を取得する。
// 認証ミドルウェアを通過したリクエストでのみ有効。
func UsernameFromContext(ctx context.Context) (string, error) {
	username, ok := ctx.Value(usernameContextKey).(string)
	if !ok || username == "" {
		return "", fmt.Errorf("username not found in context")
	}
	return username, nil
}

// ContextWithUsername はコンテキストにユーザー名を注入する。
// テストやミドルウェア以外のコンテキスト生成で使用する。
func ContextWithUsername(ctx context.Context, username string) context.Context {
	return context.WithValue(ctx, usernameContextKey, username)
}
