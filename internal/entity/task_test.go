package entity

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskStatusNextCycles(t *testing.T) {
	assert.Equal(t, StatusInProgress, StatusNotStarted.Next())
	assert.Equal(t, StatusCompleted, StatusInProgress.Next())
	assert.Equal(t, StatusNotStarted, StatusCompleted.Next())

	for _, status := range Statuses {
		assert.Equal(t, status, status.Next().Next().Next(), "period must be 3 for %q", status)
	}
}

func TestTaskStatusNextUnknownResets(t *testing.T) {
	assert.Equal(t, StatusNotStarted, TaskStatus("true").Next())
}

func TestParseStatus(t *testing.T) {
	status, err := ParseStatus("")
	require.NoError(t, err)
	assert.Equal(t, StatusNotStarted, status)

	status, err = ParseStatus("Completed")
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, status)

	_, err = ParseStatus("true")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestParsePriority(t *testing.T) {
	priority, err := ParsePriority("")
	require.NoError(t, err)
	assert.Equal(t, PriorityMedium, priority)

	priority, err = ParsePriority("High")
	require.NoError(t, err)
	assert.Equal(t, PriorityHigh, priority)

	_, err = ParsePriority("urgent")
	assert.ErrorIs(t, err, ErrInvalidPriority)
	assert.True(t, IsValidationError(err))
}

func TestPriorityRank(t *testing.T) {
	assert.Less(t, PriorityHigh.Rank(), PriorityMedium.Rank())
	assert.Less(t, PriorityMedium.Rank(), PriorityLow.Rank())
	assert.Less(t, PriorityLow.Rank(), TaskPriority("").Rank())
}

func TestParseDueDate(t *testing.T) {
	due, err := ParseDueDate("")
	require.NoError(t, err)
	assert.Nil(t, due)

	due, err = ParseDueDate("2026-03-01")
	require.NoError(t, err)
	require.NotNil(t, due)
	assert.Equal(t, "2026-03-01", due.Format(DueDateLayout))

	_, err = ParseDueDate("01/03/2026")
	assert.ErrorIs(t, err, ErrInvalidDueDate)
}

func TestParseSortBy(t *testing.T) {
	assert.Equal(t, SortByDueDate, ParseSortBy("due_date"))
	assert.Equal(t, SortByPriority, ParseSortBy("priority"))
	assert.Equal(t, SortByPriority, ParseSortBy(""))
	assert.Equal(t, SortByPriority, ParseSortBy("name"))
}

func TestValidateTaskName(t *testing.T) {
	assert.NoError(t, ValidateTaskName("Buy milk"))
	assert.NoError(t, ValidateTaskName(strings.Repeat("x", 60)))
	assert.NoError(t, ValidateTaskName(strings.Repeat("é", 60)))

	assert.ErrorIs(t, ValidateTaskName(""), ErrEmptyTaskName)
	assert.ErrorIs(t, ValidateTaskName("   "), ErrEmptyTaskName)
	assert.ErrorIs(t, ValidateTaskName(strings.Repeat("x", 61)), ErrTaskNameTooLong)
	assert.Equal(t, "Task name cannot be more than 60 characters long.", ErrTaskNameTooLong.Error())
}

func TestTruncateName(t *testing.T) {
	assert.Equal(t, "Buy milk", TruncateName("Buy milk"))
	assert.Equal(t, strings.Repeat("a", 20), TruncateName(strings.Repeat("a", 20)))
	assert.Equal(t, strings.Repeat("a", 20)+"...", TruncateName(strings.Repeat("a", 21)))

	task := &Task{Name: "Write the quarterly report"}
	assert.Equal(t, "Write the quarterly ...", task.DisplayName())
}

func TestTaskOwnedBy(t *testing.T) {
	owner := 7
	task := &Task{OwnerId: &owner}
	assert.True(t, task.OwnedBy(7))
	assert.False(t, task.OwnedBy(8))
	assert.False(t, (&Task{}).OwnedBy(7))
}

func TestEditTaskRequestValidate(t *testing.T) {
	req := &EditTaskRequest{Name: "ok", Priority: PriorityLow, Status: StatusCompleted}
	assert.NoError(t, req.Validate())

	req.Status = "true"
	assert.ErrorIs(t, req.Validate(), ErrInvalidStatus)

	req.Status = StatusCompleted
	req.Priority = "Urgent"
	assert.ErrorIs(t, req.Validate(), ErrInvalidPriority)
}
