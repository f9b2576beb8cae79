package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAllTaskStatuses_BoardColumnOrder(t *testing.T) {
	assert.Equal(t, []TaskStatus{
		TaskStatusToDo,
		TaskStatusInProgress,
		TaskStatusReview,
		TaskStatusCompleted,
	}, AllTaskStatuses())
}

func TestNormalizeTaskStatus(t *testing.T) {
	cases := map[string]TaskStatus{
		"todo":        TaskStatusToDo,
		"to_do":       TaskStatusToDo,
		"to-do":       TaskStatusToDo,
		"inprogress":  TaskStatusInProgress,
		"in_progress": TaskStatusInProgress,
		"in-progress": TaskStatusInProgress,
		"review":      TaskStatusReview,
		"in_review":   TaskStatusReview,
		"completed":   TaskStatusCompleted,
		"done":        TaskStatusCompleted,
		"complete":    TaskStatusCompleted,
		// Unknown tokens fall back to the first column.
		"blocked": TaskStatusToDo,
		"":        TaskStatusToDo,
	}
	for raw, want := range cases {
		assert.Equal(t, want, NormalizeTaskStatus(raw), "token %q", raw)
	}
}

func TestParseTaskStatus_RejectsUnknownTokens(t *testing.T) {
	status, ok := ParseTaskStatus("in_progress")
	assert.True(t, ok)
	assert.Equal(t, TaskStatusInProgress, status)

	_, ok = ParseTaskStatus("blocked")
	assert.False(t, ok)

	_, ok = ParseTaskStatus("")
	assert.False(t, ok)
}

func TestNormalizeTaskPriority(t *testing.T) {
	assert.Equal(t, TaskPriorityLow, NormalizeTaskPriority("low"))
	assert.Equal(t, TaskPriorityMedium, NormalizeTaskPriority("normal"))
	assert.Equal(t, TaskPriorityMedium, NormalizeTaskPriority(""))
	assert.Equal(t, TaskPriorityHigh, NormalizeTaskPriority("urgent"))
	assert.Equal(t, TaskPriorityMedium, NormalizeTaskPriority("whatever"))
}

func TestTaskStatus_IsValid(t *testing.T) {
	for _, status := range AllTaskStatuses() {
		assert.True(t, status.IsValid())
	}
	assert.False(t, TaskStatus("blocked").IsValid())
}

func TestUserRole_IsValid(t *testing.T) {
	assert.True(t, UserRoleManager.IsValid())
	assert.True(t, UserRoleTeamLeader.IsValid())
	assert.False(t, UserRole("admin").IsValid())
}
