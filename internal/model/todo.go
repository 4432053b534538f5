package model

import "time"

// MaxTodoContentLength はToDo本文の最大文字数。
const MaxTodoContentLength = 256

// Todo は1件のToDoを表す。
// UserIDは所有者ユーザーへの外部キー。観測された作成フローは所有者を
// 記録しないためnilを許容し、一覧取得のみ所有者でスコープされる。
// APIレスポンスの形は {id, content, is_done} に固定する。
type Todo struct {
	ID        int64     `json:"id"`
	UserID    *int64    `json:"-"`
	Content   string    `json:"content"`
	IsDone    bool      `json:"is_done"`
	CreatedAt time.Time `json:"-"`
}

// Done は完了状態へ遷移する。すでに完了している場合も観測される状態は
// 変わらない（冪等）。
func (t *Todo) Done() *Todo {
	t.IsDone = true
	return t
}

// Undone は未完了状態へ遷移する。冪等。
func (t *Todo) Undone() *Todo {
	t.IsDone = false
	return t
}
