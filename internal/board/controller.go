package board

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"makeitall-backend/internal/database/models"
	"makeitall-backend/internal/logger"
	"makeitall-backend/internal/service"

	"github.com/google/uuid"
)

var (
	// ErrProjectArchived is returned when a mutation is attempted on an archived project's board
	ErrProjectArchived = errors.New("project is archived")
	// ErrUnknownTask is returned when the task is not in the local cache
	ErrUnknownTask = errors.New("task not found in board cache")
	// ErrMutationInFlight is returned when the task already has a pending mutation
	ErrMutationInFlight = errors.New("a mutation for this task is already in flight")
	// ErrMutationRejected is returned when the server answered success:false
	ErrMutationRejected = errors.New("mutation rejected by server")
)

// Notifier surfaces transient feedback to the user. It holds no state
// beyond display.
type Notifier interface {
	Success(message string)
	Error(message string)
}

// LogNotifier is the default Notifier backed by structured logging
type LogNotifier struct {
	log *logger.Logger
}

// NewLogNotifier creates a logging notifier
func NewLogNotifier() *LogNotifier {
	return &LogNotifier{log: logger.New()}
}

// Success logs a success notification
func (n *LogNotifier) Success(message string) {
	n.log.WithField("notification", "success").Info(message)
}

// Error logs an error notification
func (n *LogNotifier) Error(message string) {
	n.log.WithField("notification", "error").Error(message)
}

// Column is one of the four status buckets of the rendered board
type Column struct {
	Status models.TaskStatus      `json:"status"`
	Count  int                    `json:"count"`
	Tasks  []service.TaskResponse `json:"tasks"`
}

// View is the rendered board: the cached tasks partitioned into exactly
// four status columns with per-column counts.
type View struct {
	Columns []Column `json:"columns"`
}

// Controller drives the board: it mirrors the server's task list in a local
// store for responsiveness, applies mutations optimistically and reconciles
// with the authoritative response. Rendering is a pure function of the
// store, so repeated renders of the same state are identical.
type Controller struct {
	projectID uuid.UUID
	store     *Store
	client    *Client
	notifier  Notifier

	mu       sync.Mutex
	archived bool
	inFlight map[uuid.UUID]bool
}

// NewController creates a board controller for a project
func NewController(projectID uuid.UUID, client *Client, notifier Notifier) *Controller {
	if notifier == nil {
		notifier = NewLogNotifier()
	}
	return &Controller{
		projectID: projectID,
		store:     NewStore(),
		client:    client,
		notifier:  notifier,
		inFlight:  make(map[uuid.UUID]bool),
	}
}

// SetArchived marks the board read-only; an archived project disables all
// board mutations.
func (b *Controller) SetArchived(archived bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.archived = archived
}

// Refresh re-fetches the caller-scoped task list and replaces the cache.
// The cache is never trusted across refreshes.
func (b *Controller) Refresh(ctx context.Context) error {
	tasks, err := b.client.ListTasks(ctx, b.projectID)
	if err != nil {
		return err
	}
	b.store.Replace(tasks)
	return nil
}

// MoveTask moves a task to a target column using the optimistic protocol.
// Dropping a task onto its current column is a no-op.
func (b *Controller) MoveTask(ctx context.Context, taskID uuid.UUID, target models.TaskStatus) error {
	task, ok := b.store.Get(taskID)
	if !ok {
		return ErrUnknownTask
	}
	if task.Status == target {
		return nil
	}

	return b.mutate(ctx, taskID,
		func() bool {
			return b.store.ApplyOptimistic(taskID, Patch{Status: &target})
		},
		func(ctx context.Context) (MutationResult, error) {
			return b.client.UpdateStatus(ctx, taskID, string(target))
		},
		fmt.Sprintf("Task moved to %s", target),
	)
}

// ChangePriority changes a task's priority using the optimistic protocol
func (b *Controller) ChangePriority(ctx context.Context, taskID uuid.UUID, priority models.TaskPriority) error {
	task, ok := b.store.Get(taskID)
	if !ok {
		return ErrUnknownTask
	}
	if task.Priority == priority {
		return nil
	}

	return b.mutate(ctx, taskID,
		func() bool {
			return b.store.ApplyOptimistic(taskID, Patch{Priority: &priority})
		},
		func(ctx context.Context) (MutationResult, error) {
			return b.client.UpdatePriority(ctx, taskID, string(priority))
		},
		fmt.Sprintf("Priority set to %s", priority),
	)
}

// DeleteTask removes a task using the optimistic protocol; a failed delete
// restores the task at its original position.
func (b *Controller) DeleteTask(ctx context.Context, taskID uuid.UUID) error {
	if _, ok := b.store.Get(taskID); !ok {
		return ErrUnknownTask
	}

	return b.mutate(ctx, taskID,
		func() bool {
			return b.store.RemoveOptimistic(taskID)
		},
		func(ctx context.Context) (MutationResult, error) {
			return b.client.DeleteTask(ctx, taskID)
		},
		"Task deleted",
	)
}

// mutate runs one optimistic mutation cycle: guard, capture+apply, call,
// commit or rollback. The per-task in-flight flag makes every mutation
// at-most-once per user intent regardless of which action triggered it.
func (b *Controller) mutate(
	ctx context.Context,
	taskID uuid.UUID,
	apply func() bool,
	call func(context.Context) (MutationResult, error),
	successMessage string,
) error {
	b.mu.Lock()
	if b.archived {
		b.mu.Unlock()
		b.notifier.Error("This project is archived; the board is read-only")
		return ErrProjectArchived
	}
	if b.inFlight[taskID] {
		b.mu.Unlock()
		return ErrMutationInFlight
	}
	b.inFlight[taskID] = true
	b.mu.Unlock()

	defer func() {
		b.mu.Lock()
		delete(b.inFlight, taskID)
		b.mu.Unlock()
	}()

	if !apply() {
		return ErrUnknownTask
	}

	result, err := call(ctx)
	if err != nil {
		b.store.Rollback(taskID)
		b.notifier.Error("Could not reach the server; change was undone")
		return err
	}
	if !result.Success {
		b.store.Rollback(taskID)
		b.notifier.Error(result.Message)
		return fmt.Errorf("%w: %s", ErrMutationRejected, result.Message)
	}

	b.store.Commit(taskID)
	b.notifier.Success(successMessage)
	return nil
}

// Render partitions the cached tasks into the four status columns. It has
// no side effects, so rendering any number of times yields the same view.
func (b *Controller) Render() View {
	buckets := make(map[models.TaskStatus][]service.TaskResponse)
	for _, task := range b.store.Tasks() {
		status := task.Status
		if !status.IsValid() {
			status = models.TaskStatusToDo
		}
		buckets[status] = append(buckets[status], task)
	}

	statuses := models.AllTaskStatuses()
	columns := make([]Column, len(statuses))
	for i, status := range statuses {
		columns[i] = Column{
			Status: status,
			Count:  len(buckets[status]),
			Tasks:  buckets[status],
		}
	}
	return View{Columns: columns}
}

// Store exposes the underlying task cache; used by tests and embedding UIs
func (b *Controller) Store() *Store {
	return b.store
}
