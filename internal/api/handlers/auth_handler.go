package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/Tedbot2000/todo-genie/internal/api/middleware"
	"github.com/Tedbot2000/todo-genie/internal/api/views"
	"github.com/Tedbot2000/todo-genie/internal/entity"
	"github.com/Tedbot2000/todo-genie/internal/usecase"
	"go.uber.org/zap"
)

// AuthHandler - формы входа, регистрации и выхода
type AuthHandler struct {
	authService   *usecase.AuthService
	views         *views.Renderer
	logger        *zap.Logger
	sessionTTL    time.Duration
	secureCookies bool
}

func NewAuthHandler(
	authService *usecase.AuthService,
	renderer *views.Renderer,
	logger *zap.Logger,
	sessionTTL time.Duration,
	secureCookies bool,
) *AuthHandler {
	return &AuthHandler{
		authService:   authService,
		views:         renderer,
		logger:        logger,
		sessionTTL:    sessionTTL,
		secureCookies: secureCookies,
	}
}

func (h *AuthHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, views.PageLogin, views.AuthPage{Notices: popFlash(w, r)})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}

	req := &entity.LoginRequest{
		Username: r.PostFormValue("username"),
		Password: r.PostFormValue("password"),
	}

	resp, err := h.authService.Login(r.Context(), req)
	if err != nil {
		if errors.Is(err, entity.ErrInvalidCredentials) {
			h.render(w, views.PageLogin, views.AuthPage{
				Notices: []views.Notice{{Level: views.LevelError, Message: "Invalid username or password."}},
			})
			return
		}
		h.serverError(w, "failed to log in", err)
		return
	}

	h.startSession(w, resp.AccessToken)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *AuthHandler) RegisterForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, views.PageRegister, views.AuthPage{Notices: popFlash(w, r)})
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}

	req := &entity.RegisterRequest{
		Username: r.PostFormValue("username"),
		Password: r.PostFormValue("password"),
	}

	resp, err := h.authService.Register(r.Context(), req)
	if err != nil {
		message := ""
		switch {
		case errors.Is(err, entity.ErrUserExists):
			message = "A user with that username already exists."
		case entity.IsValidationError(err):
			message = err.Error()
		default:
			h.serverError(w, "failed to register", err)
			return
		}
		h.render(w, views.PageRegister, views.AuthPage{
			Username: req.Username,
			Notices:  []views.Notice{{Level: views.LevelError, Message: message}},
		})
		return
	}

	h.startSession(w, resp.AccessToken)
	addFlash(w, r, views.LevelSuccess, "Welcome, "+resp.User.Username+"!")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (h *AuthHandler) startSession(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.sessionTTL.Seconds()),
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *AuthHandler) render(w http.ResponseWriter, page string, data views.AuthPage) {
	if err := h.views.Render(w, http.StatusOK, page, data); err != nil {
		h.serverError(w, "failed to render page", err)
	}
}

func (h *AuthHandler) serverError(w http.ResponseWriter, msg string, err error) {
	h.logger.Error(msg, zap.Error(err))
	http.Error(w, "Internal server error", http.StatusInternalServerError)
}
