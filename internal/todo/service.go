// Package todo はToDoのCRUDビジネスロジックを提供する。
package todo

import (
	"context"
	"html"
	"unicode/utf8"

	"github.com/hitoshi/todolist/internal/model"
	"github.com/hitoshi/todolist/internal/repository"
	"github.com/hitoshi/todolist/internal/security"
)

// MetricsRecorder はToDo作成数の記録に必要なインターフェース。
type MetricsRecorder interface {
	RecordTodoCreated()
}

// Service はToDoに関するビジネスロジックを提供する。
type Service struct {
	todoRepo  repository.TodoRepository
	userRepo  repository.UserRepository
	sanitizer security.ContentSanitizer
	metrics   MetricsRecorder
}

// NewService はServiceを生成する。metricsはnilを許容する。
func NewService(
	todoRepo repository.TodoRepository,
	userRepo repository.UserRepository,
	sanitizer security.ContentSanitizer,
	metrics MetricsRecorder,
) *Service {
	return &Service{
		todoRepo:  todoRepo,
		userRepo:  userRepo,
		sanitizer: sanitizer,
		metrics:   metrics,
	}
}

// ListForUser は認証済みusernameのユーザーが所有するToDoを返す。
// ユーザーが存在しない場合はUSER_NOT_FOUND。
// 所有関係は遅延ロードではなく外部キーによる明示的なクエリで解決する。
// orderが"DESC"のときだけ挿入順のちょうど逆順になり、それ以外の値は
// 未指定と同じ扱い（昇順）でエラーにしない。
func (s *Service) ListForUser(ctx context.Context, username, order string) ([]*model.Todo, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, model.NewUserNotFoundError()
	}

	todos, err := s.todoRepo.ListByUserID(ctx, user.ID, order == "DESC")
	if err != nil {
		return nil, err
	}

	return todos, nil
}

// Get は指定IDのToDoを返す。見つからない場合はTODO_NOT_FOUND。
func (s *Service) Get(ctx context.Context, id int64) (*model.Todo, error) {
	todo, err := s.todoRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if todo == nil {
		return nil, model.NewTodoNotFoundError()
	}
	return todo, nil
}

// Create は新規ToDoを作成し、採番されたIDを反映して返す。
// 本文は検証を通過したものがそのまま保存されるため、読み戻した本文は
// 入力とバイト単位で一致する。観測された設計どおり所有者は記録しない。
func (s *Service) Create(ctx context.Context, content string, isDone bool) (*model.Todo, error) {
	if err := s.validateContent(content); err != nil {
		return nil, err
	}

	created, err := s.todoRepo.Create(ctx, &model.Todo{
		Content: content,
		IsDone:  isDone,
	})
	if err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.RecordTodoCreated()
	}

	return created, nil
}

// UpdateDone は指定IDのToDoへdone/undone遷移を適用し、永続化した結果を返す。
// 遷移は冪等で、同じ値の再適用は観測される状態を変えない。
func (s *Service) UpdateDone(ctx context.Context, id int64, isDone bool) (*model.Todo, error) {
	todo, err := s.todoRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if todo == nil {
		return nil, model.NewTodoNotFoundError()
	}

	if isDone {
		todo.Done()
	} else {
		todo.Undone()
	}

	updated, err := s.todoRepo.Update(ctx, todo)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		// 取得後に削除された場合
		return nil, model.NewTodoNotFoundError()
	}

	return updated, nil
}

// Delete は指定IDのToDoを削除する。存在しないIDに対しても成功として扱い、
// 2回目以降の削除も安全（冪等）。
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.todoRepo.Delete(ctx, id)
}

// validateContent はToDo本文を検証する。
// 空・256文字超・マークアップ混入は永続化前に検証エラーとする。
// strictサニタイザが入力を変化させる本文を拒否することで、受理した本文の
// 読み戻しが常にバイト一致することを保証する。
func (s *Service) validateContent(content string) error {
	if content == "" {
		return model.NewValidationError("content must not be empty")
	}
	if utf8.RuneCountInString(content) > model.MaxTodoContentLength {
		return model.NewValidationError("content must be 256 characters or less")
	}
	if s.sanitizer != nil {
		// サニタイズ結果はHTMLエスケープされるため、比較前に戻す。
		// 拒否するのはサニタイザが除去するタグ状のマークアップのみで、
		// エンティティ表記そのもの（"&amp;" など）はユーザーが入力しうる
		// プレーンテキストとしてそのまま受理・保存する。
		if html.UnescapeString(s.sanitizer.Sanitize(content)) != content {
			return model.NewValidationError("content must be plain text")
		}
	}
	return nil
}
