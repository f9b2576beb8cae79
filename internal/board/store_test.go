package board

import (
	"testing"

	"makeitall-backend/internal/database/models"
	"makeitall-backend/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func storeWithTasks(statuses ...models.TaskStatus) (*Store, []service.TaskResponse) {
	tasks := make([]service.TaskResponse, len(statuses))
	for i, status := range statuses {
		tasks[i] = service.TaskResponse{
			ID:       uuid.New(),
			Name:     "Task",
			Status:   status,
			Priority: models.TaskPriorityMedium,
		}
	}
	s := NewStore()
	s.Replace(tasks)
	return s, tasks
}

func TestStore_ReplaceDropsPendingChanges(t *testing.T) {
	s, tasks := storeWithTasks(models.TaskStatusToDo)
	target := models.TaskStatusReview
	require.True(t, s.ApplyOptimistic(tasks[0].ID, Patch{Status: &target}))

	s.Replace(tasks)

	// After a replace the old pending change must not resurrect anything.
	s.Rollback(tasks[0].ID)
	got, ok := s.Get(tasks[0].ID)
	require.True(t, ok)
	assert.Equal(t, models.TaskStatusToDo, got.Status)
}

func TestStore_ApplyCommitKeepsNewValue(t *testing.T) {
	s, tasks := storeWithTasks(models.TaskStatusToDo)
	target := models.TaskStatusInProgress

	require.True(t, s.ApplyOptimistic(tasks[0].ID, Patch{Status: &target}))
	s.Commit(tasks[0].ID)

	got, _ := s.Get(tasks[0].ID)
	assert.Equal(t, models.TaskStatusInProgress, got.Status)

	// A rollback after commit has nothing to restore.
	s.Rollback(tasks[0].ID)
	got, _ = s.Get(tasks[0].ID)
	assert.Equal(t, models.TaskStatusInProgress, got.Status)
}

func TestStore_ApplyRollbackRestoresCapturedValue(t *testing.T) {
	s, tasks := storeWithTasks(models.TaskStatusToDo)
	status := models.TaskStatusCompleted
	priority := models.TaskPriorityHigh

	require.True(t, s.ApplyOptimistic(tasks[0].ID, Patch{Status: &status, Priority: &priority}))
	s.Rollback(tasks[0].ID)

	got, _ := s.Get(tasks[0].ID)
	assert.Equal(t, models.TaskStatusToDo, got.Status)
	assert.Equal(t, models.TaskPriorityMedium, got.Priority)
}

func TestStore_SecondOptimisticChangeOnSameTaskRefused(t *testing.T) {
	s, tasks := storeWithTasks(models.TaskStatusToDo)
	target := models.TaskStatusReview

	require.True(t, s.ApplyOptimistic(tasks[0].ID, Patch{Status: &target}))
	assert.False(t, s.ApplyOptimistic(tasks[0].ID, Patch{Status: &target}))
	assert.False(t, s.RemoveOptimistic(tasks[0].ID))
}

func TestStore_UnknownTaskRefused(t *testing.T) {
	s, _ := storeWithTasks(models.TaskStatusToDo)
	target := models.TaskStatusReview

	assert.False(t, s.ApplyOptimistic(uuid.New(), Patch{Status: &target}))
	assert.False(t, s.RemoveOptimistic(uuid.New()))
}

func TestStore_RemoveRollbackRestoresOriginalPosition(t *testing.T) {
	s, tasks := storeWithTasks(models.TaskStatusToDo, models.TaskStatusToDo, models.TaskStatusToDo)

	require.True(t, s.RemoveOptimistic(tasks[1].ID))
	assert.Len(t, s.Tasks(), 2)

	s.Rollback(tasks[1].ID)

	restored := s.Tasks()
	require.Len(t, restored, 3)
	assert.Equal(t, tasks[1].ID, restored[1].ID)
}

func TestStore_RemoveCommitForgetsTask(t *testing.T) {
	s, tasks := storeWithTasks(models.TaskStatusToDo, models.TaskStatusReview)

	require.True(t, s.RemoveOptimistic(tasks[0].ID))
	s.Commit(tasks[0].ID)

	_, ok := s.Get(tasks[0].ID)
	assert.False(t, ok)
	assert.Len(t, s.Tasks(), 1)
}
