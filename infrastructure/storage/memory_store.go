package storage

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"taskpilot/domain/entities"
	"taskpilot/domain/interfaces"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/sirupsen/logrus"
)

// MemoryStore keeps the task collection in process memory. It is
// initialized empty at process start and discarded at process exit.
type MemoryStore struct {
	mu     sync.RWMutex
	tasks  map[int]*entities.Task
	order  []int
	nextID int
	now    func() time.Time
	logger *logrus.Logger
}

// NewMemoryStore - creates an empty task store
func NewMemoryStore(logger *logrus.Logger) *MemoryStore {
	return &MemoryStore{
		tasks:  make(map[int]*entities.Task),
		nextID: 1,
		now:    time.Now,
		logger: logger,
	}
}

func (s *MemoryStore) Create(fields entities.TaskFields) (*entities.Task, error) {
	title := strings.TrimSpace(fields.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: title must not be empty", entities.ErrValidation)
	}

	priority := fields.Priority
	if priority == "" {
		priority = entities.PriorityMedium
	}
	status := fields.Status
	if status == "" {
		status = entities.StatusTodo
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	task := &entities.Task{
		ID:          s.nextID,
		Title:       title,
		Description: strings.TrimSpace(fields.Description),
		Priority:    priority,
		Status:      status,
		DueDate:     fields.DueDate,
		Tags:        normalizeTags(fields.Tags),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.nextID++

	s.tasks[task.ID] = task
	s.order = append(s.order, task.ID)

	s.logger.WithFields(logrus.Fields{"task_id": task.ID, "title": task.Title}).Debug("task created")
	return task.Clone(), nil
}

func (s *MemoryStore) Get(id int) (*entities.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	task, ok := s.tasks[id]
	if !ok {
		return nil, fmt.Errorf("%w: id %d", entities.ErrTaskNotFound, id)
	}
	return task.Clone(), nil
}

func (s *MemoryStore) Update(id int, patch entities.TaskPatch) (*entities.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, ok := s.tasks[id]
	if !ok {
		return nil, fmt.Errorf("%w: id %d", entities.ErrTaskNotFound, id)
	}

	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if title == "" {
			return nil, fmt.Errorf("%w: title must not be empty", entities.ErrValidation)
		}
		task.Title = title
	}
	if patch.Description != nil {
		task.Description = strings.TrimSpace(*patch.Description)
	}
	if patch.Priority != nil {
		task.Priority = *patch.Priority
	}
	if patch.Status != nil {
		task.Status = *patch.Status
	}
	if patch.DueDate != nil {
		due := *patch.DueDate
		task.DueDate = &due
	}
	if patch.Tags != nil {
		task.Tags = normalizeTags(patch.Tags)
	}
	if len(patch.AddTags) > 0 {
		task.Tags = unionTags(task.Tags, patch.AddTags)
	}
	task.UpdatedAt = s.now()

	s.logger.WithField("task_id", id).Debug("task updated")
	return task.Clone(), nil
}

func (s *MemoryStore) Delete(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tasks[id]; !ok {
		return fmt.Errorf("%w: id %d", entities.ErrTaskNotFound, id)
	}
	delete(s.tasks, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}

	s.logger.WithField("task_id", id).Debug("task deleted")
	return nil
}

func (s *MemoryStore) List(filter *entities.TaskFilter) []*entities.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*entities.Task, 0, len(s.order))
	for _, id := range s.order {
		task := s.tasks[id]
		if matches(task, filter) {
			result = append(result, task.Clone())
		}
	}
	return result
}

func (s *MemoryStore) SortByPriority() []*entities.Task {
	result := s.List(nil)
	sort.SliceStable(result, func(i, j int) bool {
		if result[i].Priority.Rank() != result[j].Priority.Rank() {
			return result[i].Priority.Rank() < result[j].Priority.Rank()
		}
		return result[i].ID < result[j].ID
	})
	return result
}

func (s *MemoryStore) DueWithin(days int) []*entities.Task {
	from := entities.NewDate(s.now())
	to := entities.Date{Time: from.AddDate(0, 0, days)}
	return s.List(&entities.TaskFilter{DueFrom: &from, DueTo: &to})
}

func matches(task *entities.Task, filter *entities.TaskFilter) bool {
	if filter == nil {
		return true
	}
	if filter.Status != nil && task.Status != *filter.Status {
		return false
	}
	if filter.Priority != nil && task.Priority != *filter.Priority {
		return false
	}
	if filter.Tag != "" {
		found := false
		for _, tag := range task.Tags {
			if strings.EqualFold(tag, filter.Tag) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if filter.DueFrom != nil || filter.DueTo != nil {
		if task.DueDate == nil {
			return false
		}
		if filter.DueFrom != nil && task.DueDate.Before(filter.DueFrom.Time) {
			return false
		}
		if filter.DueTo != nil && task.DueDate.After(filter.DueTo.Time) {
			return false
		}
	}
	return true
}

// normalizeTags collapses duplicates and drops empty labels. The result is
// sorted so repeated calls over the same input are identical.
func normalizeTags(tags []string) []string {
	set := mapset.NewThreadUnsafeSet[string]()
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag != "" {
			set.Add(tag)
		}
	}
	result := set.ToSlice()
	sort.Strings(result)
	return result
}

// unionTags merges additions into an existing tag set. Re-adding an
// existing tag is a no-op.
func unionTags(existing, additions []string) []string {
	return normalizeTags(append(append([]string(nil), existing...), additions...))
}

var _ interfaces.TaskStore = (*MemoryStore)(nil)
