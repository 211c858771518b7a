package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/Tedbot2000/todo-genie/internal/entity"
	"github.com/Tedbot2000/todo-genie/internal/repository"
	"go.uber.org/zap"
)

const publishTimeout = 2 * time.Second

// EventPublisher интерфейс для публикации событий по задачам
type EventPublisher interface {
	PublishTaskEvent(ctx context.Context, event *entity.TaskEvent) error
}

// NoopPublisher - когда брокер не настроен
type NoopPublisher struct{}

func (NoopPublisher) PublishTaskEvent(context.Context, *entity.TaskEvent) error { return nil }

type TaskService struct {
	taskRepo  repository.ITaskRepository
	publisher EventPublisher
	logger    *zap.Logger
}

func NewTaskService(
	taskRepo repository.ITaskRepository,
	publisher EventPublisher,
	logger *zap.Logger,
) *TaskService {
	if publisher == nil {
		publisher = NoopPublisher{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TaskService{
		taskRepo:  taskRepo,
		publisher: publisher,
		logger:    logger,
	}
}

func (s *TaskService) CreateTask(ctx context.Context, req *entity.CreateTaskRequest, userID int) (*entity.Task, error) {
	// 1. Валидируем имя, при ошибке ничего не создаем
	if err := entity.ValidateTaskName(req.Name); err != nil {
		return nil, err
	}
	// запрос вызывающего не меняем
	create := *req
	if create.Priority == "" {
		create.Priority = entity.PriorityMedium
	}
	if !create.Priority.Valid() {
		return nil, entity.ErrInvalidPriority
	}

	// 2. Владелец всегда из текущей сессии
	create.OwnerId = userID

	task, err := s.taskRepo.Create(ctx, &create)
	if err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}

	s.publish(ctx, entity.ActionCreate, userID, task)

	return task, nil
}

// ListTasks возвращает задачи пользователя и фактически примененную сортировку
func (s *TaskService) ListTasks(ctx context.Context, userID int, sortBy string) ([]entity.Task, entity.SortBy, error) {
	sort := entity.ParseSortBy(sortBy)

	tasks, err := s.taskRepo.List(ctx, userID, sort)
	if err != nil {
		return nil, sort, fmt.Errorf("list tasks: %w", err)
	}

	return tasks, sort, nil
}

func (s *TaskService) GetTask(ctx context.Context, taskID int, userID int) (*entity.Task, error) {
	task, err := s.taskRepo.GetByOwner(ctx, taskID, userID)
	if err != nil {
		return nil, fmt.Errorf("get task: %w", err)
	}
	if task == nil || !task.OwnedBy(userID) {
		return nil, entity.ErrTaskNotFound
	}

	return task, nil
}

// ToggleStatus переводит задачу в следующий статус цикла
func (s *TaskService) ToggleStatus(ctx context.Context, taskID int, userID int) (*entity.Task, error) {
	task, err := s.GetTask(ctx, taskID, userID)
	if err != nil {
		return nil, err
	}

	updatedTask, err := s.taskRepo.UpdateStatus(ctx, taskID, userID, task.Status.Next())
	if err != nil {
		return nil, fmt.Errorf("toggle task status: %w", err)
	}
	// задачу удалили между чтением и записью
	if updatedTask == nil {
		return nil, entity.ErrTaskNotFound
	}

	s.publish(ctx, entity.ActionToggle, userID, updatedTask)

	return updatedTask, nil
}

// EditTask перезаписывает имя, срок, приоритет и статус.
// Пустое имя не меняет задачу и возвращает ErrEmptyTaskName.
func (s *TaskService) EditTask(ctx context.Context, taskID int, userID int, req *entity.EditTaskRequest) (*entity.Task, error) {
	// 1. Задача должна существовать у этого владельца
	if _, err := s.GetTask(ctx, taskID, userID); err != nil {
		return nil, err
	}

	// 2. Валидация до любых изменений
	if err := req.Validate(); err != nil {
		return nil, err
	}

	updatedTask, err := s.taskRepo.Update(ctx, taskID, userID, req)
	if err != nil {
		return nil, fmt.Errorf("edit task: %w", err)
	}
	if updatedTask == nil {
		return nil, entity.ErrTaskNotFound
	}

	s.publish(ctx, entity.ActionUpdate, userID, updatedTask)

	return updatedTask, nil
}

// DeleteTask удаляет задачу и возвращает ее для уведомления
func (s *TaskService) DeleteTask(ctx context.Context, taskID int, userID int) (*entity.Task, error) {
	task, err := s.GetTask(ctx, taskID, userID)
	if err != nil {
		return nil, err
	}

	if err := s.taskRepo.Delete(ctx, taskID, userID); err != nil {
		if err == entity.ErrTaskNotFound {
			return nil, err
		}
		return nil, fmt.Errorf("delete task: %w", err)
	}

	s.publish(ctx, entity.ActionDelete, userID, task)

	return task, nil
}

// publish - ошибка брокера не ломает запрос, только логируем
func (s *TaskService) publish(ctx context.Context, action entity.ActionType, userID int, task *entity.Task) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	if err := s.publisher.PublishTaskEvent(ctx, entity.NewTaskEvent(action, userID, task)); err != nil {
		s.logger.Warn("failed to publish task event",
			zap.String("action", string(action)),
			zap.Int("task_id", task.ID),
			zap.Error(err),
		)
	}
}
