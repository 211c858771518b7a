package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Tedbot2000/todo-genie/internal/entity"
	"gorm.io/gorm"
)

// taskRecord - строка таблицы task для gorm
type taskRecord struct {
	ID        int       `gorm:"primaryKey"`
	Name      string    `gorm:"size:60;not null"`
	Status    string    `gorm:"size:20;not null"`
	DueDate   *time.Time
	Priority  string `gorm:"size:10;not null"`
	UserID    *int   `gorm:"index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (taskRecord) TableName() string { return "task" }

func (r *taskRecord) toEntity() *entity.Task {
	return &entity.Task{
		ID:        r.ID,
		Name:      r.Name,
		Status:    entity.TaskStatus(r.Status),
		DueDate:   r.DueDate,
		Priority:  entity.TaskPriority(r.Priority),
		OwnerId:   r.UserID,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

type userRecord struct {
	ID           int    `gorm:"primaryKey"`
	Username     string `gorm:"size:150;not null;uniqueIndex"`
	PasswordHash string `gorm:"not null"`
	CreatedAt    time.Time
}

func (userRecord) TableName() string { return "user" }

func (r *userRecord) toEntity() *entity.User {
	return &entity.User{
		ID:           r.ID,
		Username:     r.Username,
		PasswordHash: r.PasswordHash,
		CreatedAt:    r.CreatedAt,
	}
}

// AutoMigrate создает схему во встроенной базе
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&userRecord{}, &taskRecord{})
}

type GormTaskRepository struct {
	db *gorm.DB
}

var _ ITaskRepository = (*GormTaskRepository)(nil)

func NewGormTaskRepository(db *gorm.DB) *GormTaskRepository {
	return &GormTaskRepository{db: db}
}

func (r *GormTaskRepository) Create(ctx context.Context, task *entity.CreateTaskRequest) (*entity.Task, error) {
	ownerID := task.OwnerId
	record := taskRecord{
		Name:     task.Name,
		Status:   string(entity.StatusNotStarted),
		DueDate:  task.DueDate,
		Priority: string(task.Priority),
		UserID:   &ownerID,
	}
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return nil, err
	}
	return record.toEntity(), nil
}

func (r *GormTaskRepository) GetByOwner(ctx context.Context, id int, ownerID int) (*entity.Task, error) {
	var record taskRecord
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, ownerID).
		Take(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return record.toEntity(), nil
}

func (r *GormTaskRepository) List(ctx context.Context, ownerID int, sortBy entity.SortBy) ([]entity.Task, error) {
	var records []taskRecord
	err := r.db.WithContext(ctx).
		Where("user_id = ?", ownerID).
		Order(orderByClause(sortBy)).
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	tasks := make([]entity.Task, 0, len(records))
	for i := range records {
		tasks = append(tasks, *records[i].toEntity())
	}
	return tasks, nil
}

func (r *GormTaskRepository) Update(ctx context.Context, id int, ownerID int, req *entity.EditTaskRequest) (*entity.Task, error) {
	return r.update(ctx, id, ownerID, map[string]any{
		"name":     req.Name,
		"due_date": req.DueDate,
		"priority": string(req.Priority),
		"status":   string(req.Status),
	})
}

func (r *GormTaskRepository) UpdateStatus(ctx context.Context, id int, ownerID int, status entity.TaskStatus) (*entity.Task, error) {
	return r.update(ctx, id, ownerID, map[string]any{
		"status": string(status),
	})
}

// update - map, чтобы nil в due_date записывался как NULL
func (r *GormTaskRepository) update(ctx context.Context, id int, ownerID int, values map[string]any) (*entity.Task, error) {
	values["updated_at"] = time.Now()

	result := r.db.WithContext(ctx).
		Model(&taskRecord{}).
		Where("id = ? AND user_id = ?", id, ownerID).
		Updates(values)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}
	return r.GetByOwner(ctx, id, ownerID)
}

func (r *GormTaskRepository) Delete(ctx context.Context, id int, ownerID int) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, ownerID).
		Delete(&taskRecord{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return entity.ErrTaskNotFound
	}
	return nil
}

type GormUserRepository struct {
	db *gorm.DB
}

var _ IUserRepository = (*GormUserRepository)(nil)

func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

func (r *GormUserRepository) Create(ctx context.Context, username string, passwordHash string) (*entity.User, error) {
	record := userRecord{Username: username, PasswordHash: passwordHash}
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, entity.ErrUserExists
		}
		return nil, err
	}
	return record.toEntity(), nil
}

func (r *GormUserRepository) GetById(ctx context.Context, id int) (*entity.User, error) {
	return r.getOne(ctx, "id = ?", id)
}

func (r *GormUserRepository) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	return r.getOne(ctx, "username = ?", username)
}

func (r *GormUserRepository) getOne(ctx context.Context, cond string, arg any) (*entity.User, error) {
	var record userRecord
	err := r.db.WithContext(ctx).Where(cond, arg).Take(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return record.toEntity(), nil
}

// isUniqueViolation - sqlite не переводит ошибку в gorm.ErrDuplicatedKey без TranslateError
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
