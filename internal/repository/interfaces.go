// Package repository はデータ永続化のインターフェースを定義する。
package repository

import (
	"context"

	"github.com/hitoshi/todolist/internal/model"
)

// UserRepository はユーザーデータの永続化インターフェース。
type UserRepository interface {
	// Save は新規ユーザーを保存し、ストアが採番したIDを反映して返す。
	// ユーザー名が重複している場合は*model.APIError（DUPLICATE_USERNAME）を返す。
	Save(ctx context.Context, user *model.User) (*model.User, error)

	// FindByUsername は指定ユーザー名のユーザーを取得する。見つからない場合はnilを返す。
	FindByUsername(ctx context.Context, username string) (*model.User, error)
}

// TodoRepository はToDoデータの永続化インターフェース。
type TodoRepository interface {
	// ListByUserID は指定ユーザーが所有するToDoを挿入順（ID昇順）で返す。
	// descendingがtrueの場合は挿入順のちょうど逆順（ID降順）で返す。
	ListByUserID(ctx context.Context, userID int64, descending bool) ([]*model.Todo, error)

	// FindByID は指定IDのToDoを取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id int64) (*model.Todo, error)

	// Create はToDoを保存し、ストアが採番したIDを反映して返す。
	Create(ctx context.Context, todo *model.Todo) (*model.Todo, error)

	// Update はToDoの全状態を永続化し、読み直した結果を返す。
	// 対象行が存在しない場合はnilを返す。
	Update(ctx context.Context, todo *model.Todo) (*model.Todo, error)

	// Delete は指定IDの行を削除する。行が存在しない場合もエラーにしない。
	Delete(ctx context.Context, id int64) error
}
