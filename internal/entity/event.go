package entity

import "time"

type ActionType string

const (
	ActionCreate ActionType = "Create"
	ActionUpdate ActionType = "Update"
	ActionToggle ActionType = "Toggle"
	ActionDelete ActionType = "Delete"
)

// TaskEvent - сообщение об изменении задачи для внешних подписчиков
type TaskEvent struct {
	Action    ActionType   `json:"action"`
	TaskID    int          `json:"task_id"`
	UserID    int          `json:"user_id"`
	Name      string       `json:"name"`
	Status    TaskStatus   `json:"status"`
	Priority  TaskPriority `json:"priority"`
	DueDate   *string      `json:"due_date"`
	Timestamp time.Time    `json:"timestamp"`
}

func NewTaskEvent(action ActionType, userID int, task *Task) *TaskEvent {
	event := &TaskEvent{
		Action:    action,
		TaskID:    task.ID,
		UserID:    userID,
		Name:      task.Name,
		Status:    task.Status,
		Priority:  task.Priority,
		Timestamp: time.Now().UTC(),
	}
	if task.DueDate != nil {
		due := task.DueDateString()
		event.DueDate = &due
	}
	return event
}
