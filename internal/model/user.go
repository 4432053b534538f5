// Package model はドメインモデルを定義する。
package model

import "time"

// User はサービス利用ユーザーを表す。
// Usernameは作成後に変更されない一意な識別名。
// PasswordHashはCredential Serviceの境界外に公開してはならないため、
// JSONシリアライズの対象から常に除外する。
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"-"`
}
