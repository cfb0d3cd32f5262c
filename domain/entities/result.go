package entities

// CommandResult is what the command entry point hands back to the REST and
// CLI adapters.
type CommandResult struct {
	Success bool    `json:"success"`
	Message string  `json:"message"`
	Task    *Task   `json:"task,omitempty"`
	Tasks   []*Task `json:"tasks,omitempty"`
	Error   string  `json:"error,omitempty"`
}
