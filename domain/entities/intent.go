package entities

// Action is the closed set of operations a command can request. Adding a
// capability means adding a constant here plus an executor case, never
// inferring behavior from model output.
type Action string

const (
	ActionCreate       Action = "create"
	ActionUpdate       Action = "update"
	ActionDelete       Action = "delete"
	ActionList         Action = "list"
	ActionMarkStatus   Action = "mark_status"
	ActionAddTags      Action = "add_tags"
	ActionPrioritize   Action = "prioritize"
	ActionFilterByDate Action = "filter_by_date"
)

// KnownAction reports whether a is one of the supported actions.
func KnownAction(a Action) bool {
	switch a {
	case ActionCreate, ActionUpdate, ActionDelete, ActionList,
		ActionMarkStatus, ActionAddTags, ActionPrioritize, ActionFilterByDate:
		return true
	}
	return false
}

// IntentPayload carries the action-specific arguments as extracted from
// text. Enum and date fields stay raw strings until the interpreter
// validates them against the task field types.
type IntentPayload struct {
	ID          int      `json:"id,omitempty"`
	Title       string   `json:"title,omitempty"`
	Description string   `json:"description,omitempty"`
	Priority    string   `json:"priority,omitempty"`
	Status      string   `json:"status,omitempty"`
	DueDate     string   `json:"due_date,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Tag         string   `json:"tag,omitempty"`
	Days        int      `json:"days,omitempty"`
}

// Intent is the typed representation of what the user wants done, distinct
// from the raw text and from the oracle's raw response.
type Intent struct {
	Action  Action        `json:"action"`
	Payload IntentPayload `json:"payload"`
}
