package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/Tedbot2000/todo-genie/internal/api/middleware"
	"github.com/Tedbot2000/todo-genie/internal/entity"
	"github.com/Tedbot2000/todo-genie/internal/usecase"
	"go.uber.org/zap"
)

// APITaskHandler - JSON-версия операций над задачами
type APITaskHandler struct {
	taskService *usecase.TaskService
	logger      *zap.Logger
}

func NewAPITaskHandler(taskService *usecase.TaskService, logger *zap.Logger) *APITaskHandler {
	return &APITaskHandler{
		taskService: taskService,
		logger:      logger,
	}
}

type taskResponse struct {
	ID        int                 `json:"id"`
	Name      string              `json:"name"`
	Status    entity.TaskStatus   `json:"status"`
	DueDate   *string             `json:"due_date"`
	Priority  entity.TaskPriority `json:"priority"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
}

type listTasksResponse struct {
	SortBy entity.SortBy  `json:"sort_by"`
	Tasks  []taskResponse `json:"tasks"`
}

type createTaskRequest struct {
	Name     string `json:"name"`
	DueDate  string `json:"due_date"`
	Priority string `json:"priority"`
}

type editTaskRequest struct {
	Name     string `json:"name"`
	DueDate  string `json:"due_date"`
	Priority string `json:"priority"`
	Status   string `json:"status"`
}

func toTaskResponse(task *entity.Task) taskResponse {
	resp := taskResponse{
		ID:        task.ID,
		Name:      task.Name,
		Status:    task.Status,
		Priority:  task.Priority,
		CreatedAt: task.CreatedAt,
		UpdatedAt: task.UpdatedAt,
	}
	if task.DueDate != nil {
		due := task.DueDateString()
		resp.DueDate = &due
	}
	return resp
}

func (h *APITaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.UserFromContext(r.Context())

	tasks, sortBy, err := h.taskService.ListTasks(r.Context(), user.ID, r.URL.Query().Get("sort_by"))
	if err != nil {
		h.writeError(w, err)
		return
	}

	resp := listTasksResponse{SortBy: sortBy, Tasks: make([]taskResponse, 0, len(tasks))}
	for i := range tasks {
		resp.Tasks = append(resp.Tasks, toTaskResponse(&tasks[i]))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *APITaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.UserFromContext(r.Context())

	var body createTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	task, err := h.createTask(r, &body, user.ID)
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toTaskResponse(task))
}

func (h *APITaskHandler) createTask(r *http.Request, body *createTaskRequest, userID int) (*entity.Task, error) {
	dueDate, err := entity.ParseDueDate(body.DueDate)
	if err != nil {
		return nil, err
	}
	priority, err := entity.ParsePriority(body.Priority)
	if err != nil {
		return nil, err
	}

	return h.taskService.CreateTask(r.Context(), &entity.CreateTaskRequest{
		Name:     body.Name,
		DueDate:  dueDate,
		Priority: priority,
	}, userID)
}

func (h *APITaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.UserFromContext(r.Context())

	taskID, ok := taskIDParam(r)
	if !ok {
		writeJSONError(w, http.StatusBadRequest, "invalid task id")
		return
	}

	task, err := h.taskService.GetTask(r.Context(), taskID, user.ID)
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toTaskResponse(task))
}

func (h *APITaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.UserFromContext(r.Context())

	taskID, ok := taskIDParam(r)
	if !ok {
		writeJSONError(w, http.StatusBadRequest, "invalid task id")
		return
	}

	var body editTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	task, err := h.editTask(r, taskID, user.ID, &body)
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toTaskResponse(task))
}

func (h *APITaskHandler) editTask(r *http.Request, taskID int, userID int, body *editTaskRequest) (*entity.Task, error) {
	// чужая или несуществующая задача - 404 раньше любой валидации
	if _, err := h.taskService.GetTask(r.Context(), taskID, userID); err != nil {
		return nil, err
	}

	dueDate, err := entity.ParseDueDate(body.DueDate)
	if err != nil {
		return nil, err
	}
	priority, err := entity.ParsePriority(body.Priority)
	if err != nil {
		return nil, err
	}
	status, err := entity.ParseStatus(body.Status)
	if err != nil {
		return nil, err
	}

	return h.taskService.EditTask(r.Context(), taskID, userID, &entity.EditTaskRequest{
		Name:     body.Name,
		DueDate:  dueDate,
		Priority: priority,
		Status:   status,
	})
}

func (h *APITaskHandler) ToggleStatus(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.UserFromContext(r.Context())

	taskID, ok := taskIDParam(r)
	if !ok {
		writeJSONError(w, http.StatusBadRequest, "invalid task id")
		return
	}

	task, err := h.taskService.ToggleStatus(r.Context(), taskID, user.ID)
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toTaskResponse(task))
}

func (h *APITaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.UserFromContext(r.Context())

	taskID, ok := taskIDParam(r)
	if !ok {
		writeJSONError(w, http.StatusBadRequest, "invalid task id")
		return
	}

	if _, err := h.taskService.DeleteTask(r.Context(), taskID, user.ID); err != nil {
		h.writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *APITaskHandler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, entity.ErrTaskNotFound):
		writeJSONError(w, http.StatusNotFound, "task not found") // 404
	case entity.IsValidationError(err):
		writeJSONError(w, http.StatusBadRequest, err.Error()) // 400
	default:
		h.logger.Error("task request failed", zap.Error(err))
		writeJSONError(w, http.StatusInternalServerError, "internal server error") // 500
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
