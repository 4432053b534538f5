// Package user はサインアップとログインのビジネスロジックを提供する。
package user

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hitoshi/todolist/internal/model"
	"github.com/hitoshi/todolist/internal/repository"
)

// CredentialService はユーザーサービスが必要とする資格情報操作のインターフェース。
// credential.Serviceの部分集合として定義する。
type CredentialService interface {
	// HashPassword は平文パスワードをソルト付きハッシュに変換する。
	HashPassword(plain string) (string, error)
	// VerifyPassword は平文パスワードとハッシュを照合する。
	VerifyPassword(plain, hash string) bool
	// CreateToken はusernameを埋め込んだ署名付きトークンを発行する。
	CreateToken(username string) (string, error)
}

// MetricsRecorder はサインアップ数の記録に必要なインターフェース。
type MetricsRecorder interface {
	RecordSignup()
}

// Service はユーザー登録と認証に関するビジネスロジックを提供する。
type Service struct {
	userRepo   repository.UserRepository
	credential CredentialService
	metrics    MetricsRecorder
}

// NewService はServiceを生成する。metricsはnilを許容する。
func NewService(userRepo repository.UserRepository, credential CredentialService, metrics MetricsRecorder) *Service {
	return &Service{
		userRepo:   userRepo,
		credential: credential,
		metrics:    metrics,
	}
}

// SignUp は新規ユーザーを登録する。
// パスワードはハッシュ化されたうえで保存され、返却されるUserにも
// 平文パスワードは含まれない。ユーザー名の重複は*model.APIErrorで返す。
func (s *Service) SignUp(ctx context.Context, username, password string) (*model.User, error) {
	if username == "" {
		return nil, model.NewValidationError("username must not be empty")
	}
	if password == "" {
		return nil, model.NewValidationError("password must not be empty")
	}

	hash, err := s.credential.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	created, err := s.userRepo.Save(ctx, &model.User{
		Username:     username,
		PasswordHash: hash,
	})
	if err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.RecordSignup()
	}

	slog.Info("new user signed up",
		slog.Int64("user_id", created.ID),
		slog.String("username", created.Username),
	)

	return created, nil
}

// LogIn はユーザー名とパスワードを検証し、アクセストークンを発行する。
// ユーザーが存在しない場合はUSER_NOT_FOUND、パスワード不一致の場合は
// INVALID_CREDENTIALSを返す。
func (s *Service) LogIn(ctx context.Context, username, password string) (string, error) {
	if username == "" {
		return "", model.NewValidationError("username must not be empty")
	}
	if password == "" {
		return "", model.NewValidationError("password must not be empty")
	}

	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", model.NewUserNotFoundError()
	}

	if !s.credential.VerifyPassword(password, user.PasswordHash) {
		return "", model.NewInvalidCredentialsError()
	}

	token, err := s.credential.CreateToken(user.Username)
	if err != nil {
		return "", fmt.Errorf("failed to create token: %w", err)
	}

	slog.Info("user logged in", slog.String("username", user.Username))

	return token, nil
}
