package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Tedbot2000/todo-genie/internal/entity"
	"github.com/Tedbot2000/todo-genie/internal/usecase"
	"go.uber.org/zap"
)

type APIAuthHandler struct {
	authService *usecase.AuthService
	logger      *zap.Logger
}

func NewAPIAuthHandler(authService *usecase.AuthService, logger *zap.Logger) *APIAuthHandler {
	return &APIAuthHandler{
		authService: authService,
		logger:      logger,
	}
}

func (h *APIAuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req entity.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	resp, err := h.authService.Register(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, entity.ErrUserExists):
			writeJSONError(w, http.StatusConflict, err.Error())
		case entity.IsValidationError(err):
			writeJSONError(w, http.StatusBadRequest, err.Error())
		default:
			h.logger.Error("failed to register", zap.Error(err))
			writeJSONError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}

func (h *APIAuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req entity.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	resp, err := h.authService.Login(r.Context(), &req)
	if err != nil {
		if errors.Is(err, entity.ErrInvalidCredentials) {
			writeJSONError(w, http.StatusUnauthorized, err.Error())
			return
		}
		h.logger.Error("failed to log in", zap.Error(err))
		writeJSONError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, resp)
}
