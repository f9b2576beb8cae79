package board

import (
	"sync"

	"makeitall-backend/internal/database/models"
	"makeitall-backend/internal/service"

	"github.com/google/uuid"
)

// Patch describes an optimistic change to a single task. Nil fields are
// left untouched.
type Patch struct {
	Status   *models.TaskStatus
	Priority *models.TaskPriority
}

// pendingChange remembers what to restore if a mutation fails
type pendingChange struct {
	prev    service.TaskResponse
	removed bool
	index   int
}

// Store is the page-lifetime task cache mirrored from the server. It is
// never authoritative: every optimistic change is either committed after a
// successful server response or rolled back to the captured value.
type Store struct {
	mu      sync.Mutex
	order   []uuid.UUID
	tasks   map[uuid.UUID]service.TaskResponse
	pending map[uuid.UUID]pendingChange
}

// NewStore creates an empty task store
func NewStore() *Store {
	return &Store{
		tasks:   make(map[uuid.UUID]service.TaskResponse),
		pending: make(map[uuid.UUID]pendingChange),
	}
}

// Replace swaps the cache contents for a fresh server result and drops any
// pending changes.
func (s *Store) Replace(tasks []service.TaskResponse) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.order = s.order[:0]
	s.tasks = make(map[uuid.UUID]service.TaskResponse, len(tasks))
	s.pending = make(map[uuid.UUID]pendingChange)
	for _, task := range tasks {
		s.order = append(s.order, task.ID)
		s.tasks[task.ID] = task
	}
}

// Tasks returns a copy of the cached tasks in insertion order
func (s *Store) Tasks() []service.TaskResponse {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]service.TaskResponse, 0, len(s.order))
	for _, id := range s.order {
		if task, ok := s.tasks[id]; ok {
			out = append(out, task)
		}
	}
	return out
}

// Get returns the cached task with the given id
func (s *Store) Get(id uuid.UUID) (service.TaskResponse, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, ok := s.tasks[id]
	return task, ok
}

// ApplyOptimistic captures the task's current value and applies the patch.
// Returns false if the task is unknown or already has a pending change.
func (s *Store) ApplyOptimistic(id uuid.UUID, patch Patch) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, ok := s.tasks[id]
	if !ok {
		return false
	}
	if _, exists := s.pending[id]; exists {
		return false
	}

	s.pending[id] = pendingChange{prev: task}

	if patch.Status != nil {
		task.Status = *patch.Status
	}
	if patch.Priority != nil {
		task.Priority = *patch.Priority
	}
	s.tasks[id] = task
	return true
}

// RemoveOptimistic captures the task and removes it from the cache, so a
// failed delete can restore it at its original position.
func (s *Store) RemoveOptimistic(id uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, ok := s.tasks[id]
	if !ok {
		return false
	}
	if _, exists := s.pending[id]; exists {
		return false
	}

	index := -1
	for i, oid := range s.order {
		if oid == id {
			index = i
			break
		}
	}

	s.pending[id] = pendingChange{prev: task, removed: true, index: index}
	delete(s.tasks, id)
	if index >= 0 {
		s.order = append(s.order[:index], s.order[index+1:]...)
	}
	return true
}

// Commit keeps the optimistic value and forgets the captured one
func (s *Store) Commit(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.pending, id)
}

// Rollback restores the captured value, undoing the optimistic change
func (s *Store) Rollback(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	change, ok := s.pending[id]
	if !ok {
		return
	}
	delete(s.pending, id)

	if change.removed {
		s.tasks[id] = change.prev
		if change.index < 0 || change.index > len(s.order) {
			s.order = append(s.order, id)
		} else {
			s.order = append(s.order[:change.index], append([]uuid.UUID{id}, s.order[change.index:]...)...)
		}
		return
	}

	s.tasks[id] = change.prev
}
