package command

import (
	"errors"
	"testing"

	"taskpilot/domain/entities"
)

func TestValidateIntent(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		intent entities.Intent
		want   error
	}{
		{
			name:   "unknown action",
			intent: entities.Intent{Action: "schedule"},
			want:   entities.ErrUnrecognizedCommand,
		},
		{
			name:   "create without title",
			intent: entities.Intent{Action: entities.ActionCreate},
			want:   entities.ErrIncompleteCommand,
		},
		{
			name:   "update without id",
			intent: entities.Intent{Action: entities.ActionUpdate, Payload: entities.IntentPayload{Status: "done"}},
			want:   entities.ErrIncompleteCommand,
		},
		{
			name:   "update with nothing to change",
			intent: entities.Intent{Action: entities.ActionUpdate, Payload: entities.IntentPayload{ID: 1}},
			want:   entities.ErrIncompleteCommand,
		},
		{
			name:   "delete without id",
			intent: entities.Intent{Action: entities.ActionDelete},
			want:   entities.ErrIncompleteCommand,
		},
		{
			name:   "mark_status without status",
			intent: entities.Intent{Action: entities.ActionMarkStatus, Payload: entities.IntentPayload{ID: 1}},
			want:   entities.ErrIncompleteCommand,
		},
		{
			name:   "add_tags without tags",
			intent: entities.Intent{Action: entities.ActionAddTags, Payload: entities.IntentPayload{ID: 1}},
			want:   entities.ErrIncompleteCommand,
		},
		{
			name:   "bad priority value",
			intent: entities.Intent{Action: entities.ActionCreate, Payload: entities.IntentPayload{Title: "x", Priority: "whenever"}},
			want:   entities.ErrValidation,
		},
		{
			name:   "bad status value",
			intent: entities.Intent{Action: entities.ActionMarkStatus, Payload: entities.IntentPayload{ID: 1, Status: "paused"}},
			want:   entities.ErrValidation,
		},
		{
			name:   "unparseable due date",
			intent: entities.Intent{Action: entities.ActionCreate, Payload: entities.IntentPayload{Title: "x", DueDate: "next tuesday"}},
			want:   entities.ErrValidation,
		},
		{
			name:   "negative days",
			intent: entities.Intent{Action: entities.ActionFilterByDate, Payload: entities.IntentPayload{Days: -1}},
			want:   entities.ErrValidation,
		},
		{
			name:   "valid create",
			intent: entities.Intent{Action: entities.ActionCreate, Payload: entities.IntentPayload{Title: "x", Priority: "high", DueDate: "2026-09-01"}},
		},
		{
			name:   "valid list without filters",
			intent: entities.Intent{Action: entities.ActionList},
		},
		{
			name:   "valid prioritize",
			intent: entities.Intent{Action: entities.ActionPrioritize},
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			err := ValidateIntent(tc.intent)
			if tc.want == nil {
				if err != nil {
					t.Fatalf("ValidateIntent: %v", err)
				}
				return
			}
			if !errors.Is(err, tc.want) {
				t.Fatalf("error = %v, want %v", err, tc.want)
			}
		})
	}
}

// A command with several bad values reports all of them at once.
func TestValidateIntentAggregatesFieldErrors(t *testing.T) {
	t.Parallel()

	err := ValidateIntent(entities.Intent{
		Action: entities.ActionCreate,
		Payload: entities.IntentPayload{
			Title:    "x",
			Priority: "whenever",
			DueDate:  "someday",
		},
	})
	if !errors.Is(err, entities.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	for _, fragment := range []string{"whenever", "someday"} {
		if !containsAny(err.Error(), fragment) {
			t.Errorf("error %q does not mention %q", err, fragment)
		}
	}
}
