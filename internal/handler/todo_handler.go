package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/hitoshi/todolist/internal/middleware"
	"github.com/hitoshi/todolist/internal/model"
)

// TodoServiceInterface はToDoハンドラーが必要とするサービスインターフェース。
type TodoServiceInterface interface {
	// ListForUser は認証済みユーザーのToDo一覧を返す。
	ListForUser(ctx context.Context, username, order string) ([]*model.Todo, error)
	// Get は指定IDのToDoを返す。
	Get(ctx context.Context, id int64) (*model.Todo, error)
	// Create は新規ToDoを作成する。
	Create(ctx context.Context, content string, isDone bool) (*model.Todo, error)
	// UpdateDone はdone/undone遷移を適用する。
	UpdateDone(ctx context.Context, id int64, isDone bool) (*model.Todo, error)
	// Delete は指定IDのToDoを削除する（冪等）。
	Delete(ctx context.Context, id int64) error
}

// TodoHandler はToDo管理のHTTPハンドラー。
type TodoHandler struct {
	service TodoServiceInterface
}

// NewTodoHandler はTodoHandlerを生成する。
func NewTodoHandler(service TodoServiceInterface) *TodoHandler {
	return &TodoHandler{service: service}
}

// --- リクエスト・レスポンス型 ---

// todoResponse は1件のToDoのAPIレスポンス。
type todoResponse struct {
	ID      int64  `json:"id"`
	Content string `json:"content"`
	IsDone  bool   `json:"is_done"`
}

// todoListResponse はToDo一覧のレスポンス。
type todoListResponse struct {
	Todos []todoResponse `json:"todos"`
}

// createTodoRequest はToDo作成リクエストのボディ。
// contentとis_doneはどちらも必須のためポインタで欠落を検出する。
type createTodoRequest struct {
	Content *string `json:"content"`
	IsDone  *bool   `json:"is_done"`
}

// updateTodoRequest はToDo更新リクエストのボディ。
type updateTodoRequest struct {
	IsDone *bool `json:"is_done"`
}

func toTodoResponse(todo *model.Todo) todoResponse {
	return todoResponse{
		ID:      todo.ID,
		Content: todo.Content,
		IsDone:  todo.IsDone,
	}
}

// List は認証済みユーザーのToDo一覧を取得する。
// GET /todos?order=DESC
func (h *TodoHandler) List(w http.ResponseWriter, r *http.Request) {
	username, err := middleware.UsernameFromContext(r.Context())
	if err != nil {
		writeAPIErrorResponse(w, http.StatusUnauthorized, model.NewUnauthorizedError())
		return
	}

	order := r.URL.Query().Get("order")

	todos, err := h.service.ListForUser(r.Context(), username, order)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	resp := todoListResponse{Todos: make([]todoResponse, len(todos))}
	for i, todo := range todos {
		resp.Todos[i] = toTodoResponse(todo)
	}

	writeJSON(w, http.StatusOK, resp)
}

// Get はToDoを1件取得する。
// GET /todos/{id}
func (h *TodoHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseTodoID(w, r)
	if !ok {
		return
	}

	todo, err := h.service.Get(r.Context(), id)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toTodoResponse(todo))
}

// Create は新規ToDoを作成する。
// POST /todos
func (h *TodoHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createTodoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest,
			model.NewValidationError("request body must be valid JSON"))
		return
	}
	if req.Content == nil {
		writeAPIErrorResponse(w, http.StatusBadRequest,
			model.NewValidationError("content is required"))
		return
	}
	if req.IsDone == nil {
		writeAPIErrorResponse(w, http.StatusBadRequest,
			model.NewValidationError("is_done is required"))
		return
	}

	todo, err := h.service.Create(r.Context(), *req.Content, *req.IsDone)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toTodoResponse(todo))
}

// Update はToDoのdone/undone遷移を適用する。
// PATCH /todos/{id}
func (h *TodoHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseTodoID(w, r)
	if !ok {
		return
	}

	var req updateTodoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest,
			model.NewValidationError("request body must be valid JSON"))
		return
	}
	if req.IsDone == nil {
		writeAPIErrorResponse(w, http.StatusBadRequest,
			model.NewValidationError("is_done is required"))
		return
	}

	todo, err := h.service.UpdateDone(r.Context(), id, *req.IsDone)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toTodoResponse(todo))
}

// Delete はToDoを削除する。存在しないIDでも204を返す（冪等）。
// DELETE /todos/{id}
func (h *TodoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseTodoID(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// parseTodoID はURLパラメータのidを解析する。数値でない場合は400を書き込み
// falseを返す。
func parseTodoID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest,
			model.NewValidationError("todo id must be an integer"))
		return 0, false
	}
	return id, true
}
