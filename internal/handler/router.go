package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/zhouzirui/todo-api/backend/internal/config"
	"github.com/zhouzirui/todo-api/backend/internal/handler/todo"
	"github.com/zhouzirui/todo-api/backend/internal/metrics"
	middlewarePkg "github.com/zhouzirui/todo-api/backend/internal/middleware"
	todoModel "github.com/zhouzirui/todo-api/backend/internal/model/todo"
	"github.com/zhouzirui/todo-api/backend/pkg/utils"
)

// NewRouter wires HTTP routes to the todo store.
func NewRouter(todos todoModel.Store, serverCfg config.ServerConfig, metricsCfg config.MetricsConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS(serverCfg.AllowedOrigin))
	if metricsCfg.Enabled {
		r.Use(metrics.Middleware)
		r.Method(http.MethodGet, "/metrics", metrics.Handler())
	}

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		utils.RespondJSON(w, http.StatusOK, map[string]any{
			"status": "ok",
			"todos":  todos.Count(),
		})
	})

	todoHandler := todo.New(todos)

	r.Route("/api", func(api chi.Router) {
		todoHandler.RegisterRoutes(api)
	})

	return r
}
