package entity

import "errors"

var (
	ErrTaskNotFound       = errors.New("task not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user with this username already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUnauthorized       = errors.New("unauthorized")
)

// ValidationError - ошибка ввода, сообщение показывается пользователю как есть
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

var (
	ErrEmptyTaskName   = &ValidationError{Message: "Task cannot be empty."}
	ErrTaskNameTooLong = &ValidationError{Message: "Task name cannot be more than 60 characters long."}
	ErrInvalidPriority = &ValidationError{Message: "Priority must be one of Low, Medium, High."}
	ErrInvalidStatus   = &ValidationError{Message: "Status must be one of Not Started, In Progress, Completed."}
	ErrInvalidDueDate  = &ValidationError{Message: "Due date must be in YYYY-MM-DD format."}

	ErrInvalidUsername = &ValidationError{Message: "Username must be between 1 and 150 characters."}
	ErrInvalidPassword = &ValidationError{Message: "Password must be at least 8 characters long."}
)

// IsValidationError сообщает, является ли ошибка ошибкой валидации
func IsValidationError(err error) bool {
	var vErr *ValidationError
	return errors.As(err, &vErr)
}
