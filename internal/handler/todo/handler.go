package todo

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/zhouzirui/todo-api/backend/internal/model/todo"
	"github.com/zhouzirui/todo-api/backend/internal/service/query"
	"github.com/zhouzirui/todo-api/backend/pkg/utils"
)

// Handler serves read-only todo queries.
type Handler struct {
	todos todo.Store
}

// New 创建todo处理器
func New(todos todo.Store) *Handler {
	return &Handler{todos: todos}
}

// RegisterRoutes 注册todo相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/todos", h.handleListTodos)
	r.Get("/todos/{id}", h.handleGetTodo)
}

// handleListTodos filters the dataset with the request's query parameters.
func (h *Handler) handleListTodos(w http.ResponseWriter, r *http.Request) {
	params := query.FromValues(r.URL.Query())

	todos, err := query.Apply(h.todos.List(), params)
	if err != nil {
		if errors.Is(err, query.ErrInvalidParameter) {
			utils.RespondError(w, http.StatusBadRequest, err.Error())
			return
		}
		log.Printf("[todo] query failed: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, "query failed")
		return
	}

	utils.RespondJSON(w, http.StatusOK, todos)
}

// handleGetTodo returns a single todo or 404.
func (h *Handler) handleGetTodo(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	item, ok := h.todos.FindByID(id)
	if !ok {
		utils.RespondError(w, http.StatusNotFound, NotFoundMessage(id))
		return
	}

	utils.RespondJSON(w, http.StatusOK, item)
}

// NotFoundMessage is the error text returned for an unknown todo id.
func NotFoundMessage(id string) string {
	return fmt.Sprintf("No todo with id %s was found.", id)
}
