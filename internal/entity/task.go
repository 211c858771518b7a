package entity

import (
	"strings"
	"time"
	"unicode/utf8"
)

const (
	MaxTaskNameLength = 60
	displayNameLength = 20
	DueDateLayout     = "2006-01-02"
)

type TaskStatus string

const (
	StatusNotStarted TaskStatus = "Not Started"
	StatusInProgress TaskStatus = "In Progress"
	StatusCompleted  TaskStatus = "Completed"
)

// порядок важен: по нему работает переключение статуса
var Statuses = []TaskStatus{StatusNotStarted, StatusInProgress, StatusCompleted}

func (s TaskStatus) Valid() bool {
	return s.index() >= 0
}

// Next возвращает следующий статус по кругу
// Not Started -> In Progress -> Completed -> Not Started
func (s TaskStatus) Next() TaskStatus {
	i := s.index()
	if i < 0 {
		return StatusNotStarted
	}
	return Statuses[(i+1)%len(Statuses)]
}

func (s TaskStatus) index() int {
	for i, status := range Statuses {
		if status == s {
			return i
		}
	}
	return -1
}

func ParseStatus(value string) (TaskStatus, error) {
	if value == "" {
		return StatusNotStarted, nil
	}
	status := TaskStatus(value)
	if !status.Valid() {
		return "", ErrInvalidStatus
	}
	return status, nil
}

type TaskPriority string

const (
	PriorityLow    TaskPriority = "Low"
	PriorityMedium TaskPriority = "Medium"
	PriorityHigh   TaskPriority = "High"
)

var Priorities = []TaskPriority{PriorityLow, PriorityMedium, PriorityHigh}

func (p TaskPriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Rank - ранг для сортировки: High=1, Medium=2, Low=3, всё остальное 4
func (p TaskPriority) Rank() int {
	switch p {
	case PriorityHigh:
		return 1
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 3
	}
	return 4
}

func ParsePriority(value string) (TaskPriority, error) {
	if value == "" {
		return PriorityMedium, nil
	}
	priority := TaskPriority(value)
	if !priority.Valid() {
		return "", ErrInvalidPriority
	}
	return priority, nil
}

// ParseDueDate разбирает дату из формы, пустая строка - без срока
func ParseDueDate(value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	date, err := time.Parse(DueDateLayout, value)
	if err != nil {
		return nil, ErrInvalidDueDate
	}
	return &date, nil
}

type SortBy string

const (
	SortByPriority SortBy = "priority"
	SortByDueDate  SortBy = "due_date"
)

// ParseSortBy - любое неизвестное значение сводится к сортировке по приоритету
func ParseSortBy(value string) SortBy {
	if SortBy(value) == SortByDueDate {
		return SortByDueDate
	}
	return SortByPriority
}

type Task struct {
	ID        int          `json:"id"`
	Name      string       `json:"name"`
	Status    TaskStatus   `json:"status"`
	DueDate   *time.Time   `json:"due_date"`
	Priority  TaskPriority `json:"priority"`
	OwnerId   *int         `json:"owner_id,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// DisplayName - имя для уведомлений, обрезанное до 20 символов
func (t Task) DisplayName() string {
	return TruncateName(t.Name)
}

// DueDateString отдает дату в формате формы или пустую строку
func (t Task) DueDateString() string {
	if t.DueDate == nil {
		return ""
	}
	return t.DueDate.Format(DueDateLayout)
}

func (t Task) OwnedBy(userID int) bool {
	return t.OwnerId != nil && *t.OwnerId == userID
}

func TruncateName(name string) string {
	if utf8.RuneCountInString(name) <= displayNameLength {
		return name
	}
	runes := []rune(name)
	return string(runes[:displayNameLength]) + "..."
}

// ValidateTaskName проверяет имя задачи: не пустое и не длиннее 60 символов
func ValidateTaskName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyTaskName
	}
	if utf8.RuneCountInString(name) > MaxTaskNameLength {
		return ErrTaskNameTooLong
	}
	return nil
}

type CreateTaskRequest struct {
	Name     string       `json:"name"`
	DueDate  *time.Time   `json:"due_date"`
	Priority TaskPriority `json:"priority"`
	OwnerId  int          `json:"-"`
}

// EditTaskRequest - все четыре поля перезаписываются целиком
type EditTaskRequest struct {
	Name     string       `json:"name"`
	DueDate  *time.Time   `json:"due_date"`
	Priority TaskPriority `json:"priority"`
	Status   TaskStatus   `json:"status"`
}

func (r *EditTaskRequest) Validate() error {
	if err := ValidateTaskName(r.Name); err != nil {
		return err
	}
	if !r.Priority.Valid() {
		return ErrInvalidPriority
	}
	if !r.Status.Valid() {
		return ErrInvalidStatus
	}
	return nil
}
