// Package model はドメインモデルを定義する。
package model

import "fmt"

// APIError は統一エラーフォーマットを表す。
// MessageはそのままAPIレスポンスの detail フィールドになるため、
// 内部情報を含めてはならない。
type APIError struct {
	Code     string // エラーコード
	Message  string // エラーメッセージ（APIレスポンスのdetail）
	Category string // カテゴリ: auth, validation, user, todo, system
}

// Error はerrorインターフェースを実装する。
func (e *APIError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// 定義済みエラーコード
const (
	ErrCodeUnauthorized       = "UNAUTHORIZED"
	ErrCodeInvalidCredentials = "INVALID_CREDENTIALS"
	ErrCodeUserNotFound       = "USER_NOT_FOUND"
	ErrCodeTodoNotFound       = "TODO_NOT_FOUND"
	ErrCodeDuplicateUsername  = "DUPLICATE_USERNAME"
	ErrCodeValidation         = "VALIDATION_ERROR"
)

// NewUnauthorizedError はトークン欠落・不正・期限切れに対するエラーを生成する。
func NewUnauthorizedError() *APIError {
	return &APIError{
		Code:     ErrCodeUnauthorized,
		Message:  "Not Authorized",
		Category: "auth",
	}
}

// NewInvalidCredentialsError はパスワード不一致に対するエラーを生成する。
func NewInvalidCredentialsError() *APIError {
	return &APIError{
		Code:     ErrCodeInvalidCredentials,
		Message:  "Not Authorized",
		Category: "auth",
	}
}

// NewUserNotFoundError はユーザー未検出エラーを生成する。
func NewUserNotFoundError() *APIError {
	return &APIError{
		Code:     ErrCodeUserNotFound,
		Message:  "User Not Found",
		Category: "user",
	}
}

// NewTodoNotFoundError はToDo未検出エラーを生成する。
func NewTodoNotFoundError() *APIError {
	return &APIError{
		Code:     ErrCodeTodoNotFound,
		Message:  "To Do Not Found",
		Category: "todo",
	}
}

// NewDuplicateUsernameError はユーザー名重複エラーを生成する。
func NewDuplicateUsernameError() *APIError {
	return &APIError{
		Code:     ErrCodeDuplicateUsername,
		Message:  "Username already taken",
		Category: "user",
	}
}

// NewValidationError はリクエスト内容の検証エラーを生成する。
// 永続化層に触れる前に4xxとして返すことを想定している。
func NewValidationError(message string) *APIError {
	return &APIError{
		Code:     ErrCodeValidation,
		Message:  message,
		Category: "validation",
	}
}
