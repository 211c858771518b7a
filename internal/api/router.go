package api

import (
	"time"

	"github.com/Tedbot2000/todo-genie/internal/api/handlers"
	"github.com/Tedbot2000/todo-genie/internal/api/middleware"
	"github.com/Tedbot2000/todo-genie/internal/api/views"
	"github.com/Tedbot2000/todo-genie/internal/usecase"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

type RouterConfig struct {
	TaskService   *usecase.TaskService
	AuthService   *usecase.AuthService
	Storage       handlers.HealthChecker
	Views         *views.Renderer
	Logger        *zap.Logger
	SessionTTL    time.Duration
	SecureCookies bool
}

func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(middleware.ZapLogger(cfg.Logger))
	r.Use(chimw.Recoverer)

	taskHandler := handlers.NewTaskHandler(cfg.TaskService, cfg.Views, cfg.Logger)
	authHandler := handlers.NewAuthHandler(cfg.AuthService, cfg.Views, cfg.Logger, cfg.SessionTTL, cfg.SecureCookies)
	apiTaskHandler := handlers.NewAPITaskHandler(cfg.TaskService, cfg.Logger)
	apiAuthHandler := handlers.NewAPIAuthHandler(cfg.AuthService, cfg.Logger)
	healthHandler := handlers.NewHealthHandler(cfg.Storage, cfg.Logger)

	r.Get("/healthz", healthHandler.CheckHealth)

	r.Get("/login", authHandler.LoginForm)
	r.Post("/login", authHandler.Login)
	r.Get("/register", authHandler.RegisterForm)
	r.Post("/register", authHandler.Register)
	r.Post("/logout", authHandler.Logout)

	// HTML-страницы задач, только для залогиненных
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireSession(cfg.AuthService, cfg.Logger))

		r.Get("/", taskHandler.ListTasks)
		r.Post("/", taskHandler.CreateTask)
		r.Post("/toggle/{id}", taskHandler.ToggleStatus)
		r.Post("/delete/{id}", taskHandler.DeleteTask)
		r.Get("/edit/{id}", taskHandler.EditForm)
		r.Post("/edit/{id}", taskHandler.EditTask)
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/register", apiAuthHandler.Register)
		r.Post("/auth/login", apiAuthHandler.Login)

		r.Route("/tasks", func(r chi.Router) {
			r.Use(middleware.RequireBearer(cfg.AuthService, cfg.Logger))

			r.Get("/", apiTaskHandler.ListTasks)
			r.Post("/", apiTaskHandler.CreateTask)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", apiTaskHandler.GetTask)
				r.Put("/", apiTaskHandler.UpdateTask)
				r.Delete("/", apiTaskHandler.DeleteTask)
				r.Post("/toggle", apiTaskHandler.ToggleStatus)
			})
		})
	})

	return r
}
