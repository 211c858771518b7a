package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/Tedbot2000/todo-genie/internal/api/middleware"
	"github.com/Tedbot2000/todo-genie/internal/api/views"
	"github.com/Tedbot2000/todo-genie/internal/entity"
	"github.com/Tedbot2000/todo-genie/internal/usecase"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// TaskHandler - HTML-страницы списка и редактирования задач
type TaskHandler struct {
	taskService *usecase.TaskService
	views       *views.Renderer
	logger      *zap.Logger
}

func NewTaskHandler(taskService *usecase.TaskService, renderer *views.Renderer, logger *zap.Logger) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
		views:       renderer,
		logger:      logger,
	}
}

// ListTasks - GET /, sort_by=priority|due_date
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.UserFromContext(r.Context())

	tasks, sortBy, err := h.taskService.ListTasks(r.Context(), user.ID, r.URL.Query().Get("sort_by"))
	if err != nil {
		h.serverError(w, "failed to list tasks", err)
		return
	}

	h.render(w, http.StatusOK, views.PageList, views.ListPage{
		Username:   user.Username,
		Tasks:      tasks,
		SortBy:     sortBy,
		Priorities: entity.Priorities,
		Notices:    popFlash(w, r),
	})
}

// CreateTask - POST /, поля формы task, due_date, priority
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.UserFromContext(r.Context())

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}

	req, err := createRequestFromForm(r)
	if err == nil {
		var task *entity.Task
		task, err = h.taskService.CreateTask(r.Context(), req, user.ID)
		if err == nil {
			addFlash(w, r, views.LevelSuccess, fmt.Sprintf("Task \"%s\" added successfully!", task.DisplayName()))
		}
	}

	if err != nil {
		if !entity.IsValidationError(err) {
			h.serverError(w, "failed to create task", err)
			return
		}
		addFlash(w, r, views.LevelError, err.Error())
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// ToggleStatus - POST /toggle/{id}
func (h *TaskHandler) ToggleStatus(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.UserFromContext(r.Context())

	taskID, ok := taskIDParam(r)
	if !ok {
		http.NotFound(w, r)
		return
	}

	task, err := h.taskService.ToggleStatus(r.Context(), taskID, user.ID)
	if err != nil {
		h.taskError(w, r, "failed to toggle task status", err)
		return
	}

	addFlash(w, r, views.LevelSuccess, fmt.Sprintf("Status of \"%s\" updated to %s.", task.DisplayName(), task.Status))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// DeleteTask - POST /delete/{id}
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.UserFromContext(r.Context())

	taskID, ok := taskIDParam(r)
	if !ok {
		http.NotFound(w, r)
		return
	}

	task, err := h.taskService.DeleteTask(r.Context(), taskID, user.ID)
	if err != nil {
		h.taskError(w, r, "failed to delete task", err)
		return
	}

	addFlash(w, r, views.LevelSuccess, fmt.Sprintf("Task \"%s\" deleted successfully.", task.DisplayName()))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// EditForm - GET /edit/{id}
func (h *TaskHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.UserFromContext(r.Context())

	taskID, ok := taskIDParam(r)
	if !ok {
		http.NotFound(w, r)
		return
	}

	task, err := h.taskService.GetTask(r.Context(), taskID, user.ID)
	if err != nil {
		h.taskError(w, r, "failed to get task", err)
		return
	}

	h.renderEdit(w, user, task, popFlash(w, r))
}

// EditTask - POST /edit/{id}, поля формы task, due_date, priority, status.
// При ошибке валидации форма показывается снова, задача не меняется.
func (h *TaskHandler) EditTask(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.UserFromContext(r.Context())

	taskID, ok := taskIDParam(r)
	if !ok {
		http.NotFound(w, r)
		return
	}

	task, err := h.taskService.GetTask(r.Context(), taskID, user.ID)
	if err != nil {
		h.taskError(w, r, "failed to get task", err)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}

	req, err := editRequestFromForm(r)
	if err == nil {
		var updated *entity.Task
		updated, err = h.taskService.EditTask(r.Context(), taskID, user.ID, req)
		if err == nil {
			addFlash(w, r, views.LevelSuccess, fmt.Sprintf("Task \"%s\" updated successfully.", updated.Name))
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
	}

	if errors.Is(err, entity.ErrTaskNotFound) {
		http.NotFound(w, r)
		return
	}
	if !entity.IsValidationError(err) {
		h.serverError(w, "failed to edit task", err)
		return
	}

	h.renderEdit(w, user, task, []views.Notice{{Level: views.LevelError, Message: err.Error()}})
}

func createRequestFromForm(r *http.Request) (*entity.CreateTaskRequest, error) {
	dueDate, err := entity.ParseDueDate(r.PostFormValue("due_date"))
	if err != nil {
		return nil, err
	}
	priority, err := entity.ParsePriority(r.PostFormValue("priority"))
	if err != nil {
		return nil, err
	}

	return &entity.CreateTaskRequest{
		Name:     r.PostFormValue("task"),
		DueDate:  dueDate,
		Priority: priority,
	}, nil
}

func editRequestFromForm(r *http.Request) (*entity.EditTaskRequest, error) {
	// пустое имя проверяем первым: такая правка просто отбрасывается
	name := r.PostFormValue("task")
	if err := entity.ValidateTaskName(name); err != nil {
		return nil, err
	}

	dueDate, err := entity.ParseDueDate(r.PostFormValue("due_date"))
	if err != nil {
		return nil, err
	}
	priority, err := entity.ParsePriority(r.PostFormValue("priority"))
	if err != nil {
		return nil, err
	}
	status, err := entity.ParseStatus(r.PostFormValue("status"))
	if err != nil {
		return nil, err
	}

	return &entity.EditTaskRequest{
		Name:     name,
		DueDate:  dueDate,
		Priority: priority,
		Status:   status,
	}, nil
}

func (h *TaskHandler) renderEdit(w http.ResponseWriter, user *entity.User, task *entity.Task, notices []views.Notice) {
	h.render(w, http.StatusOK, views.PageEdit, views.EditPage{
		Username:   user.Username,
		Task:       task,
		Priorities: entity.Priorities,
		Statuses:   entity.Statuses,
		Notices:    notices,
	})
}

func (h *TaskHandler) render(w http.ResponseWriter, status int, page string, data any) {
	if err := h.views.Render(w, status, page, data); err != nil {
		h.serverError(w, "failed to render page", err)
	}
}

func (h *TaskHandler) taskError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	if errors.Is(err, entity.ErrTaskNotFound) {
		http.NotFound(w, r)
		return
	}
	h.serverError(w, msg, err)
}

func (h *TaskHandler) serverError(w http.ResponseWriter, msg string, err error) {
	h.logger.Error(msg, zap.Error(err))
	http.Error(w, "Internal server error", http.StatusInternalServerError)
}

func taskIDParam(r *http.Request) (int, bool) {
	taskID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || taskID <= 0 {
		return 0, false
	}
	return taskID, true
}
