package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hitoshi/todolist/internal/model"
)

// PostgresTodoRepo はPostgreSQLを使用したToDoリポジトリ。
type PostgresTodoRepo struct {
	db *sql.DB
}

// NewPostgresTodoRepo はPostgresTodoRepoを生成する。
func NewPostgresTodoRepo(db *sql.DB) *PostgresTodoRepo {
	return &PostgresTodoRepo{db: db}
}

// ListByUserID は指定ユーザーが所有するToDoを返す。
// IDは削除後も再利用されないため、ID順は挿入順と一致する。
func (r *PostgresTodoRepo) ListByUserID(ctx context.Context, userID int64, descending bool) ([]*model.Todo, error) {
	// ORDER BY方向はプレースホルダにできないため2つの固定クエリを使い分ける
	query := `SELECT id, user_id, content, is_done, created_at
	          FROM todos WHERE user_id = $1 ORDER BY id ASC`
	if descending {
		query = `SELECT id, user_id, content, is_done, created_at
		         FROM todos WHERE user_id = $1 ORDER BY id DESC`
	}

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list todos: %w", err)
	}
	defer rows.Close()

	todos := []*model.Todo{}
	for rows.Next() {
		todo, err := scanTodo(rows)
		if err != nil {
			return nil, err
		}
		todos = append(todos, todo)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate todos: %w", err)
	}

	return todos, nil
}

// FindByID は指定IDのToDoを取得する。見つからない場合はnilを返す。
func (r *PostgresTodoRepo) FindByID(ctx context.Context, id int64) (*model.Todo, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, content, is_done, created_at FROM todos WHERE id = $1`,
		id,
	)

	todo, err := scanTodo(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return todo, nil
}

// Create はToDoを保存し、採番されたIDを反映して返す。
// 書き込みとID読み戻しはRETURNINGによる単一文で、部分コミットは観測されない。
func (r *PostgresTodoRepo) Create(ctx context.Context, todo *model.Todo) (*model.Todo, error) {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO todos (user_id, content, is_done)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at`,
		todo.UserID, todo.Content, todo.IsDone,
	).Scan(&todo.ID, &todo.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("failed to insert todo: %w", err)
	}

	return todo, nil
}

// Update はToDoの全状態を永続化し、読み直した結果を返す。
// 対象行が存在しない場合はnilを返す。
func (r *PostgresTodoRepo) Update(ctx context.Context, todo *model.Todo) (*model.Todo, error) {
	row := r.db.QueryRowContext(ctx,
		`UPDATE todos SET content = $1, is_done = $2
		 WHERE id = $3
		 RETURNING id, user_id, content, is_done, created_at`,
		todo.Content, todo.IsDone, todo.ID,
	)

	updated, err := scanTodo(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// Delete は指定IDの行を削除する。行が存在しない場合もエラーにしない。
func (r *PostgresTodoRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM todos WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete todo: %w", err)
	}
	return nil
}

// rowScanner はsql.Rowとsql.Rowsの共通部分。
type rowScanner interface {
	Scan(dest ...any) error
}

// scanTodo は1行をmodel.Todoへ読み込む。user_idのNULLは所有者なしを表す。
func scanTodo(row rowScanner) (*model.Todo, error) {
	todo := &model.Todo{}
	var userID sql.NullInt64

	err := row.Scan(&todo.ID, &userID, &todo.Content, &todo.IsDone, &todo.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan todo: %w", err)
	}

	if userID.Valid {
		todo.UserID = &userID.Int64
	}
	return todo, nil
}
