// Package credential はパスワードハッシュとアクセストークンの発行・検証を提供する。
package credential

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/hitoshi/todolist/internal/model"
	"golang.org/x/crypto/bcrypt"
)

// defaultTokenExpiry はアクセストークンのデフォルト有効期間。
const defaultTokenExpiry = 24 * time.Hour

// Config はCredential Serviceの設定。
// Secretは起動時に1回読み込まれ、以後変更されない前提。
type Config struct {
	// Secret はHS256署名用の共有シークレット。
	Secret string
	// TokenExpiry はトークンの有効期間。ゼロ値は24時間を意味する。
	TokenExpiry time.Duration
	// BcryptCost はbcryptのコストファクタ。ゼロ値はbcrypt.DefaultCost。
	BcryptCost int
}

// Service はパスワードとトークンに関する資格情報操作を提供する。
// 共有状態を持たないため複数リクエストから並行に利用できる。
type Service struct {
	secret      []byte
	tokenExpiry time.Duration
	bcryptCost  int
}

// NewService はServiceを生成する。
func NewService(config Config) *Service {
	expiry := config.TokenExpiry
	if expiry == 0 {
		expiry = defaultTokenExpiry
	}
	cost := config.BcryptCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &Service{
		secret:      []byte(config.Secret),
		tokenExpiry: expiry,
		bcryptCost:  cost,
	}
}

// HashPassword は平文パスワードをソルト付きbcryptでハッシュ化する。
// ソルトはランダムなため同じ入力でも呼び出しごとに異なる文字列を返す。
// 検証はハッシュ文字列の等値比較ではなくVerifyPasswordで行うこと。
func (s *Service) HashPassword(plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), s.bcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// VerifyPassword は平文パスワードとbcryptハッシュを照合する。
// 不一致の場合はfalseを返し、整形されたハッシュに対してpanicしない。
func (s *Service) VerifyPassword(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

// CreateToken はusernameをsubjectクレームに持つ署名付きトークンを発行する。
// 有効期限はTokenExpiry、署名はHS256の共有シークレット。
func (s *Service) CreateToken(username string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   username,
		ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenExpiry)),
		IssuedAt:  jwt.NewNumericDate(now),
		ID:        uuid.NewString(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// DecodeToken はトークンの署名と有効期限を検証し、subjectのusernameを返す。
// 署名不正・ペイロード不正・期限切れはすべて*model.APIError（UNAUTHORIZED）
// として返す。呼び出し側はこれを401として扱うこと。
func (s *Service) DecodeToken(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return "", model.NewUnauthorizedError()
	}
	if !token.Valid || claims.Subject == "" {
		return "", model.NewUnauthorizedError()
	}

	return claims.Subject, nil
}
