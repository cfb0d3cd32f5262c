package interfaces

import "taskpilot/domain/entities"

// TaskStore is the in-memory, process-lifetime task collection. Mutations
// are mutually exclusive; reads may run concurrently with other reads.
type TaskStore interface {
	// Create allocates the next id, applies defaults for omitted optional
	// fields, stores and returns the task.
	Create(fields entities.TaskFields) (*entities.Task, error)

	// Get returns the task with the given id.
	Get(id int) (*entities.Task, error)

	// Update merges only the provided fields and refreshes updated_at.
	Update(id int, patch entities.TaskPatch) (*entities.Task, error)

	// Delete removes the task; its id is never reassigned.
	Delete(id int) error

	// List returns tasks matching the filter, in creation order. A nil
	// filter returns everything.
	List(filter *entities.TaskFilter) []*entities.Task

	// SortByPriority returns all tasks ordered urgent > high > medium >
	// low, ties broken by ascending id.
	SortByPriority() []*entities.Task

	// DueWithin returns tasks whose due date falls within
	// [today, today+days] inclusive. Undated tasks are excluded.
	DueWithin(days int) []*entities.Task
}
