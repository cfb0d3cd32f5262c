package command

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"taskpilot/domain/entities"
)

// 2026-08-23 is a Sunday.
var fallbackClock = time.Date(2026, 8, 23, 9, 30, 0, 0, time.UTC)

func newTestFallback() *FallbackParser {
	parser := NewFallbackParser()
	parser.now = func() time.Time { return fallbackClock }
	return parser
}

func TestFallbackParse(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   string
		want entities.Intent
	}{
		{
			name: "delete by id",
			in:   "Delete task 2",
			want: entities.Intent{
				Action:  entities.ActionDelete,
				Payload: entities.IntentPayload{ID: 2},
			},
		},
		{
			name: "create with priority phrase",
			in:   "Add a high priority task to fix the login bug",
			want: entities.Intent{
				Action:  entities.ActionCreate,
				Payload: entities.IntentPayload{Title: "fix the login bug", Priority: "high"},
			},
		},
		{
			name: "create with relative date",
			in:   "add a task to call mom tomorrow",
			want: entities.Intent{
				Action:  entities.ActionCreate,
				Payload: entities.IntentPayload{Title: "call mom", DueDate: "2026-08-24"},
			},
		},
		{
			name: "create with weekday",
			in:   "create a task to submit the report by friday",
			want: entities.Intent{
				Action:  entities.ActionCreate,
				Payload: entities.IntentPayload{Title: "submit the report", DueDate: "2026-08-28"},
			},
		},
		{
			name: "create urgent",
			in:   "add urgent task fix the server",
			want: entities.Intent{
				Action:  entities.ActionCreate,
				Payload: entities.IntentPayload{Title: "fix the server", Priority: "urgent"},
			},
		},
		{
			name: "mark done",
			in:   "mark task 3 as done",
			want: entities.Intent{
				Action:  entities.ActionMarkStatus,
				Payload: entities.IntentPayload{ID: 3, Status: "done"},
			},
		},
		{
			name: "mark done without verb",
			in:   "task 5 is complete",
			want: entities.Intent{
				Action:  entities.ActionMarkStatus,
				Payload: entities.IntentPayload{ID: 5, Status: "done"},
			},
		},
		{
			name: "start task",
			in:   "start task 4",
			want: entities.Intent{
				Action:  entities.ActionMarkStatus,
				Payload: entities.IntentPayload{ID: 4, Status: "in_progress"},
			},
		},
		{
			name: "add tags",
			in:   "tag task 2 as urgent",
			want: entities.Intent{
				Action:  entities.ActionAddTags,
				Payload: entities.IntentPayload{ID: 2, Tags: []string{"urgent"}},
			},
		},
		{
			name: "add tag verb form",
			in:   "add tag shopping to task 7",
			want: entities.Intent{
				Action:  entities.ActionAddTags,
				Payload: entities.IntentPayload{ID: 7, Tags: []string{"shopping"}},
			},
		},
		{
			name: "plain list",
			in:   "list my tasks",
			want: entities.Intent{Action: entities.ActionList},
		},
		{
			name: "list filtered by priority",
			in:   "show all my high priority tasks",
			want: entities.Intent{
				Action:  entities.ActionList,
				Payload: entities.IntentPayload{Priority: "high"},
			},
		},
		{
			name: "list filtered by status",
			in:   "list done tasks",
			want: entities.Intent{
				Action:  entities.ActionList,
				Payload: entities.IntentPayload{Status: "done"},
			},
		},
		{
			name: "prioritize",
			in:   "prioritize my tasks",
			want: entities.Intent{Action: entities.ActionPrioritize},
		},
		{
			name: "due window in days",
			in:   "show my tasks due in 3 days",
			want: entities.Intent{
				Action:  entities.ActionFilterByDate,
				Payload: entities.IntentPayload{Days: 3},
			},
		},
		{
			name: "due this week",
			in:   "show tasks due this week",
			want: entities.Intent{
				Action:  entities.ActionFilterByDate,
				Payload: entities.IntentPayload{Days: 7},
			},
		},
		{
			name: "update priority",
			in:   "update task 6 to low priority",
			want: entities.Intent{
				Action:  entities.ActionUpdate,
				Payload: entities.IntentPayload{ID: 6, Priority: "low"},
			},
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			parser := newTestFallback()

			got, err := parser.Parse(tc.in)
			if err != nil {
				t.Fatalf("Parse(%q): %v", tc.in, err)
			}
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("Parse(%q) = %+v, want %+v", tc.in, got, tc.want)
			}
		})
	}
}

func TestFallbackRejections(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   string
		want error
	}{
		{"gibberish", "flibber the wozzle", entities.ErrUnrecognizedCommand},
		{"delete without id", "delete the task", entities.ErrIncompleteCommand},
		{"done without id", "mark the grocery task as done", entities.ErrIncompleteCommand},
		{"create without title", "add", entities.ErrIncompleteCommand},
		{"tag without tags", "tag task 2", entities.ErrIncompleteCommand},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			parser := newTestFallback()

			_, err := parser.Parse(tc.in)
			if !errors.Is(err, tc.want) {
				t.Fatalf("Parse(%q) error = %v, want %v", tc.in, err, tc.want)
			}
		})
	}
}

// The fallback path must be deterministic: same text, same clock, same
// intent, every time.
func TestFallbackIsDeterministic(t *testing.T) {
	t.Parallel()
	parser := newTestFallback()

	inputs := []string{
		"Delete task 2",
		"Add a high priority task to fix the login bug",
		"add a task to call mom tomorrow",
		"show my tasks due in 3 days",
	}
	for _, in := range inputs {
		first, err := parser.Parse(in)
		if err != nil {
			t.Fatalf("Parse(%q): %v", in, err)
		}
		for i := 0; i < 10; i++ {
			again, err := parser.Parse(in)
			if err != nil {
				t.Fatalf("Parse(%q) repeat %d: %v", in, i, err)
			}
			if !reflect.DeepEqual(first, again) {
				t.Fatalf("Parse(%q) not deterministic: %+v vs %+v", in, first, again)
			}
		}
	}
}
