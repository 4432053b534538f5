package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/hitoshi/todolist/internal/model"
)

// ErrorResponseBody はAPIエラーレスポンスの統一フォーマット。
// すべてのエラーは {"detail": "<メッセージ>"} の形で返す。
type ErrorResponseBody struct {
	Detail string `json:"detail"`
}

// WriteErrorResponse は統一エラーフォーマットでHTTPエラーレスポンスを書き込む。
func WriteErrorResponse(w http.ResponseWriter, statusCode int, apiErr *model.APIError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(ErrorResponseBody{
		Detail: apiErr.Message,
	})
}

// WriteInternalServerError は内部サーバーエラーの統一レスポンスを書き込む。
// 詳細はログのみに記録し、ユーザーには一般的なメッセージを返す。
func WriteInternalServerError(w http.ResponseWriter) {
	WriteErrorResponse(w, http.StatusInternalServerError, &model.APIError{
		Code:     "INTERNAL_ERROR",
		Message:  "Internal Server Error",
		Category: "system",
	})
}
