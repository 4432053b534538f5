package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/hitoshi/todolist/internal/model"
)

// UserServiceInterface はユーザーハンドラーが必要とするサービスインターフェース。
type UserServiceInterface interface {
	// SignUp は新規ユーザーを登録する。
	SignUp(ctx context.Context, username, password string) (*model.User, error)
	// LogIn は資格情報を検証しアクセストークンを発行する。
	LogIn(ctx context.Context, username, password string) (string, error)
}

// UserHandler はユーザー管理のHTTPハンドラー。
type UserHandler struct {
	service UserServiceInterface
}

// NewUserHandler はUserHandlerを生成する。
func NewUserHandler(service UserServiceInterface) *UserHandler {
	return &UserHandler{service: service}
}

// --- リクエスト・レスポンス型 ---

// signUpRequest はサインアップリクエストのボディ。ログインも同じ形。
type signUpRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// signUpResponse はサインアップ成功時のレスポンス。
// パスワードハッシュは決して含めない。
type signUpResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

// logInResponse はログイン成功時のレスポンス。
type logInResponse struct {
	AccessToken string `json:"access_token"`
}

// SignUp は新規ユーザーを登録する。
// POST /users/sign-up
func (h *UserHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req signUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest,
			model.NewValidationError("request body must be valid JSON"))
		return
	}

	user, err := h.service.SignUp(r.Context(), req.Username, req.Password)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, signUpResponse{
		ID:       user.ID,
		Username: user.Username,
	})
}

// LogIn は資格情報を検証しアクセストークンを返す。
// POST /users/log-in
func (h *UserHandler) LogIn(w http.ResponseWriter, r *http.Request) {
	var req signUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest,
			model.NewValidationError("request body must be valid JSON"))
		return
	}

	token, err := h.service.LogIn(r.Context(), req.Username, req.Password)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, logInResponse{AccessToken: token})
}
