package repository

import (
	"context"

	"github.com/Tedbot2000/todo-genie/internal/entity"
)

// ITaskRepository - интерфейс для хранилища задач.
// Все методы, кроме Create, фильтруют по владельцу.
type ITaskRepository interface {
	Create(ctx context.Context, task *entity.CreateTaskRequest) (*entity.Task, error)
	GetByOwner(ctx context.Context, id int, ownerID int) (*entity.Task, error)
	List(ctx context.Context, ownerID int, sortBy entity.SortBy) ([]entity.Task, error)
	Update(ctx context.Context, id int, ownerID int, req *entity.EditTaskRequest) (*entity.Task, error)
	UpdateStatus(ctx context.Context, id int, ownerID int, status entity.TaskStatus) (*entity.Task, error)
	Delete(ctx context.Context, id int, ownerID int) error
}

// IUserRepository - интерфейс для UserRepository
type IUserRepository interface {
	Create(ctx context.Context, username string, passwordHash string) (*entity.User, error)
	GetById(ctx context.Context, id int) (*entity.User, error)
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
}
