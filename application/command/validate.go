package command

import (
	"fmt"
	"strings"

	"taskpilot/domain/entities"

	"go.uber.org/multierr"
)

// ValidateIntent checks a candidate against the intent schema before it may
// execute. Unknown actions are ErrUnrecognizedCommand, missing required
// payload fields ErrIncompleteCommand, malformed values ErrValidation.
func ValidateIntent(intent entities.Intent) error {
	if !entities.KnownAction(intent.Action) {
		return fmt.Errorf("%w: action %q", entities.ErrUnrecognizedCommand, intent.Action)
	}

	p := intent.Payload
	switch intent.Action {
	case entities.ActionCreate:
		if strings.TrimSpace(p.Title) == "" {
			return fmt.Errorf("%w: create needs a title", entities.ErrIncompleteCommand)
		}
	case entities.ActionDelete:
		if p.ID <= 0 {
			return fmt.Errorf("%w: delete needs a task id", entities.ErrIncompleteCommand)
		}
	case entities.ActionUpdate:
		if p.ID <= 0 {
			return fmt.Errorf("%w: update needs a task id", entities.ErrIncompleteCommand)
		}
		if p.Title == "" && p.Description == "" && p.Priority == "" &&
			p.Status == "" && p.DueDate == "" && len(p.Tags) == 0 {
			return fmt.Errorf("%w: update needs at least one field to change", entities.ErrIncompleteCommand)
		}
	case entities.ActionMarkStatus:
		if p.ID <= 0 {
			return fmt.Errorf("%w: status change needs a task id", entities.ErrIncompleteCommand)
		}
		if p.Status == "" {
			return fmt.Errorf("%w: status change needs a status", entities.ErrIncompleteCommand)
		}
	case entities.ActionAddTags:
		if p.ID <= 0 {
			return fmt.Errorf("%w: tagging needs a task id", entities.ErrIncompleteCommand)
		}
		if len(p.Tags) == 0 {
			return fmt.Errorf("%w: tagging needs at least one tag", entities.ErrIncompleteCommand)
		}
	case entities.ActionFilterByDate:
		if p.Days < 0 {
			return fmt.Errorf("%w: days must not be negative", entities.ErrValidation)
		}
	}

	// Field values are checked together so the user sees everything wrong
	// with the command at once.
	var fieldErr error
	if p.Priority != "" {
		if _, ok := entities.ParsePriority(p.Priority); !ok {
			fieldErr = multierr.Append(fieldErr, fmt.Errorf("unknown priority %q", p.Priority))
		}
	}
	if p.Status != "" {
		if _, ok := entities.ParseStatus(p.Status); !ok {
			fieldErr = multierr.Append(fieldErr, fmt.Errorf("unknown status %q", p.Status))
		}
	}
	if p.DueDate != "" {
		if _, err := entities.ParseDate(p.DueDate); err != nil {
			fieldErr = multierr.Append(fieldErr, fmt.Errorf("due date %q is not a %s date", p.DueDate, entities.DateLayout))
		}
	}
	if fieldErr != nil {
		return fmt.Errorf("%w: %v", entities.ErrValidation, fieldErr)
	}
	return nil
}
