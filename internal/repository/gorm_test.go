package repository

import (
	"context"
	"testing"
	"time"

	"github.com/Tedbot2000/todo-genie/internal/entity"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// одна in-memory база на соединение
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, AutoMigrate(db))
	return db
}

func date(t *testing.T, value string) *time.Time {
	t.Helper()
	d, err := entity.ParseDueDate(value)
	require.NoError(t, err)
	return d
}

func createTask(t *testing.T, repo *GormTaskRepository, owner int, name string, priority entity.TaskPriority, due *time.Time) *entity.Task {
	t.Helper()
	task, err := repo.Create(context.Background(), &entity.CreateTaskRequest{
		Name:     name,
		DueDate:  due,
		Priority: priority,
		OwnerId:  owner,
	})
	require.NoError(t, err)
	return task
}

func names(tasks []entity.Task) []string {
	out := make([]string, 0, len(tasks))
	for _, task := range tasks {
		out = append(out, task.Name)
	}
	return out
}

func TestGormTaskRepositoryCreateDefaults(t *testing.T) {
	repo := NewGormTaskRepository(newTestDB(t))

	task := createTask(t, repo, 1, "Buy milk", entity.PriorityLow, nil)

	assert.NotZero(t, task.ID)
	assert.Equal(t, "Buy milk", task.Name)
	assert.Equal(t, entity.StatusNotStarted, task.Status)
	assert.Equal(t, entity.PriorityLow, task.Priority)
	assert.Nil(t, task.DueDate)
	assert.True(t, task.OwnedBy(1))
}

func TestGormTaskRepositoryListByPriority(t *testing.T) {
	repo := NewGormTaskRepository(newTestDB(t))
	ctx := context.Background()

	createTask(t, repo, 1, "low", entity.PriorityLow, date(t, "2026-01-01"))
	createTask(t, repo, 1, "high late", entity.PriorityHigh, date(t, "2026-05-01"))
	createTask(t, repo, 1, "medium", entity.PriorityMedium, nil)
	createTask(t, repo, 1, "high no date", entity.PriorityHigh, nil)
	createTask(t, repo, 1, "high early", entity.PriorityHigh, date(t, "2026-02-01"))
	createTask(t, repo, 2, "someone else", entity.PriorityHigh, nil)

	tasks, err := repo.List(ctx, 1, entity.SortByPriority)
	require.NoError(t, err)

	assert.Equal(t, []string{"high early", "high late", "high no date", "medium", "low"}, names(tasks))
}

func TestGormTaskRepositoryListUnknownPriorityLast(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormTaskRepository(db)
	ctx := context.Background()

	now := time.Now()
	// значение вне перечисления, записанное в обход сервиса
	require.NoError(t, db.Exec(
		`INSERT INTO task (name, status, due_date, priority, user_id, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		"legacy", string(entity.StatusNotStarted), *date(t, "2025-01-01"), "Urgent", 1, now, now,
	).Error)
	createTask(t, repo, 1, "low", entity.PriorityLow, date(t, "2026-06-01"))
	createTask(t, repo, 1, "high", entity.PriorityHigh, nil)
	createTask(t, repo, 1, "medium", entity.PriorityMedium, nil)

	tasks, err := repo.List(ctx, 1, entity.SortByPriority)
	require.NoError(t, err)
	assert.Equal(t, []string{"high", "medium", "low", "legacy"}, names(tasks))

	for i := 1; i < len(tasks); i++ {
		assert.LessOrEqual(t, tasks[i-1].Priority.Rank(), tasks[i].Priority.Rank())
	}
}

func TestPriorityRankExpr(t *testing.T) {
	assert.Equal(t,
		"CASE priority WHEN 'Low' THEN 3 WHEN 'Medium' THEN 2 WHEN 'High' THEN 1 ELSE 4 END",
		priorityRankExpr,
	)
}

func TestGormTaskRepositoryListByDueDate(t *testing.T) {
	repo := NewGormTaskRepository(newTestDB(t))
	ctx := context.Background()

	createTask(t, repo, 1, "none", entity.PriorityHigh, nil)
	createTask(t, repo, 1, "march medium", entity.PriorityMedium, date(t, "2026-03-01"))
	createTask(t, repo, 1, "march high", entity.PriorityHigh, date(t, "2026-03-01"))
	createTask(t, repo, 1, "january", entity.PriorityLow, date(t, "2026-01-15"))

	tasks, err := repo.List(ctx, 1, entity.SortByDueDate)
	require.NoError(t, err)

	// вторичный ключ - строка приоритета: "High" < "Medium"
	assert.Equal(t, []string{"january", "march high", "march medium", "none"}, names(tasks))
}

func TestGormTaskRepositoryOwnerScoping(t *testing.T) {
	repo := NewGormTaskRepository(newTestDB(t))
	ctx := context.Background()

	task := createTask(t, repo, 1, "private", entity.PriorityMedium, nil)

	got, err := repo.GetByOwner(ctx, task.ID, 2)
	require.NoError(t, err)
	assert.Nil(t, got)

	updated, err := repo.UpdateStatus(ctx, task.ID, 2, entity.StatusCompleted)
	require.NoError(t, err)
	assert.Nil(t, updated)

	err = repo.Delete(ctx, task.ID, 2)
	assert.ErrorIs(t, err, entity.ErrTaskNotFound)

	got, err = repo.GetByOwner(ctx, task.ID, 1)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, entity.StatusNotStarted, got.Status)
}

func TestGormTaskRepositoryUpdateOverwritesAllFields(t *testing.T) {
	repo := NewGormTaskRepository(newTestDB(t))
	ctx := context.Background()

	task := createTask(t, repo, 1, "draft", entity.PriorityLow, date(t, "2026-01-01"))

	updated, err := repo.Update(ctx, task.ID, 1, &entity.EditTaskRequest{
		Name:     "final",
		DueDate:  nil,
		Priority: entity.PriorityHigh,
		Status:   entity.StatusInProgress,
	})
	require.NoError(t, err)
	require.NotNil(t, updated)

	assert.Equal(t, "final", updated.Name)
	assert.Nil(t, updated.DueDate)
	assert.Equal(t, entity.PriorityHigh, updated.Priority)
	assert.Equal(t, entity.StatusInProgress, updated.Status)
}

func TestGormTaskRepositoryDelete(t *testing.T) {
	repo := NewGormTaskRepository(newTestDB(t))
	ctx := context.Background()

	task := createTask(t, repo, 1, "gone", entity.PriorityMedium, nil)

	require.NoError(t, repo.Delete(ctx, task.ID, 1))

	for _, owner := range []int{1, 2} {
		got, err := repo.GetByOwner(ctx, task.ID, owner)
		require.NoError(t, err)
		assert.Nil(t, got)
	}
	assert.ErrorIs(t, repo.Delete(ctx, task.ID, 1), entity.ErrTaskNotFound)
}

func TestGormUserRepository(t *testing.T) {
	repo := NewGormUserRepository(newTestDB(t))
	ctx := context.Background()

	user, err := repo.Create(ctx, "alice", "hash")
	require.NoError(t, err)
	assert.NotZero(t, user.ID)

	_, err = repo.Create(ctx, "alice", "other")
	assert.ErrorIs(t, err, entity.ErrUserExists)

	found, err := repo.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, user.ID, found.ID)
	assert.Equal(t, "hash", found.PasswordHash)

	missing, err := repo.GetById(ctx, 999)
	require.NoError(t, err)
	assert.Nil(t, missing)
}
