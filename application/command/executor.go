package command

import (
	"fmt"
	"strings"

	"taskpilot/domain/entities"
	"taskpilot/domain/interfaces"

	"github.com/sirupsen/logrus"
)

// Executor applies a validated intent to the task store. Each action maps
// to exactly one store operation; there is no catch-all branch.
type Executor struct {
	store  interfaces.TaskStore
	logger *logrus.Logger
}

func NewExecutor(store interfaces.TaskStore, logger *logrus.Logger) *Executor {
	return &Executor{store: store, logger: logger}
}

// Execute performs the store operation for the intent and renders a
// human-readable result. Failures never leave a partial mutation behind.
func (e *Executor) Execute(intent entities.Intent) entities.CommandResult {
	p := intent.Payload

	switch intent.Action {
	case entities.ActionCreate:
		task, err := e.store.Create(buildFields(p))
		if err != nil {
			return e.fail(err)
		}
		return entities.CommandResult{
			Success: true,
			Message: fmt.Sprintf("Added task #%d: %s", task.ID, task.Title),
			Task:    task,
		}

	case entities.ActionUpdate:
		task, err := e.store.Update(p.ID, buildPatch(p))
		if err != nil {
			return e.fail(err)
		}
		return entities.CommandResult{
			Success: true,
			Message: fmt.Sprintf("Updated task #%d: %s", task.ID, task.Title),
			Task:    task,
		}

	case entities.ActionDelete:
		if err := e.store.Delete(p.ID); err != nil {
			return e.fail(err)
		}
		return entities.CommandResult{
			Success: true,
			Message: fmt.Sprintf("Deleted task #%d", p.ID),
		}

	case entities.ActionMarkStatus:
		status, _ := entities.ParseStatus(p.Status)
		task, err := e.store.Update(p.ID, entities.TaskPatch{Status: &status})
		if err != nil {
			return e.fail(err)
		}
		return entities.CommandResult{
			Success: true,
			Message: fmt.Sprintf("Marked task #%d as %s", task.ID, task.Status),
			Task:    task,
		}

	case entities.ActionAddTags:
		task, err := e.store.Update(p.ID, entities.TaskPatch{AddTags: p.Tags})
		if err != nil {
			return e.fail(err)
		}
		return entities.CommandResult{
			Success: true,
			Message: fmt.Sprintf("Tagged task #%d with %s", task.ID, strings.Join(p.Tags, ", ")),
			Task:    task,
		}

	case entities.ActionList:
		filter := buildFilter(p)
		tasks := e.store.List(filter)
		message := fmt.Sprintf("You have %d task(s)", len(tasks))
		if filter != nil {
			message = fmt.Sprintf("Found %d matching task(s)", len(tasks))
		}
		return entities.CommandResult{Success: true, Message: message, Tasks: tasks}

	case entities.ActionPrioritize:
		tasks := e.store.SortByPriority()
		return entities.CommandResult{
			Success: true,
			Message: "Tasks sorted by priority",
			Tasks:   tasks,
		}

	case entities.ActionFilterByDate:
		tasks := e.store.DueWithin(p.Days)
		return entities.CommandResult{
			Success: true,
			Message: fmt.Sprintf("%d task(s) due within %d day(s)", len(tasks), p.Days),
			Tasks:   tasks,
		}
	}

	e.logger.WithField("action", intent.Action).Error("intent passed validation with unmapped action")
	return e.fail(fmt.Errorf("%w: action %q", entities.ErrUnrecognizedCommand, intent.Action))
}

func (e *Executor) fail(err error) entities.CommandResult {
	e.logger.WithError(err).Debug("command execution failed")
	return entities.CommandResult{
		Success: false,
		Message: err.Error(),
		Error:   entities.ErrorKind(err),
	}
}

func buildFields(p entities.IntentPayload) entities.TaskFields {
	fields := entities.TaskFields{
		Title:       p.Title,
		Description: p.Description,
		Tags:        p.Tags,
	}
	if priority, ok := entities.ParsePriority(p.Priority); ok {
		fields.Priority = priority
	}
	if status, ok := entities.ParseStatus(p.Status); ok {
		fields.Status = status
	}
	if due, err := entities.ParseDate(p.DueDate); err == nil && p.DueDate != "" {
		fields.DueDate = &due
	}
	return fields
}

func buildPatch(p entities.IntentPayload) entities.TaskPatch {
	patch := entities.TaskPatch{}
	if p.Title != "" {
		title := p.Title
		patch.Title = &title
	}
	if p.Description != "" {
		description := p.Description
		patch.Description = &description
	}
	if priority, ok := entities.ParsePriority(p.Priority); ok {
		patch.Priority = &priority
	}
	if status, ok := entities.ParseStatus(p.Status); ok {
		patch.Status = &status
	}
	if due, err := entities.ParseDate(p.DueDate); err == nil && p.DueDate != "" {
		patch.DueDate = &due
	}
	if len(p.Tags) > 0 {
		patch.Tags = p.Tags
	}
	return patch
}

func buildFilter(p entities.IntentPayload) *entities.TaskFilter {
	filter := &entities.TaskFilter{Tag: p.Tag}
	empty := p.Tag == ""
	if status, ok := entities.ParseStatus(p.Status); ok {
		filter.Status = &status
		empty = false
	}
	if priority, ok := entities.ParsePriority(p.Priority); ok {
		filter.Priority = &priority
		empty = false
	}
	if empty {
		return nil
	}
	return filter
}
