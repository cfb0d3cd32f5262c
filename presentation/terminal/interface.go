package terminal

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"taskpilot/application/command"
	"taskpilot/domain/entities"

	"github.com/sirupsen/logrus"
)

// TerminalInterface is the line-oriented CLI adapter: it reads free-text
// commands, hands them to the processor and renders the results.
type TerminalInterface struct {
	processor *command.Processor
	logger    *logrus.Logger
	reader    *bufio.Reader
	out       io.Writer
}

func New(processor *command.Processor, logger *logrus.Logger) *TerminalInterface {
	return &TerminalInterface{
		processor: processor,
		logger:    logger,
		reader:    bufio.NewReader(os.Stdin),
		out:       os.Stdout,
	}
}

func (t *TerminalInterface) Run() error {
	fmt.Fprintln(t.out, "TaskPilot - AI-Powered Task Management")
	fmt.Fprintln(t.out, "--------------------------------------")
	fmt.Fprintln(t.out, "Type commands in natural language, or 'quit' to exit.")
	fmt.Fprintln(t.out, "Examples:")
	fmt.Fprintln(t.out, "  - Add a task to call mom tomorrow")
	fmt.Fprintln(t.out, "  - Show all my high priority tasks")
	fmt.Fprintln(t.out, "  - Mark task 2 as done")
	fmt.Fprintln(t.out, "  - Prioritize my tasks")
	fmt.Fprintln(t.out, "--------------------------------------")

	for {
		fmt.Fprint(t.out, "\n> ")
		input, err := t.reader.ReadString('\n')
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		if input == "quit" || input == "exit" || input == "q" {
			fmt.Fprintln(t.out, "Goodbye!")
			return nil
		}

		result := t.processor.Process(context.Background(), input)
		t.render(result)
	}
}

func (t *TerminalInterface) render(result entities.CommandResult) {
	fmt.Fprintf(t.out, "\n%s\n", result.Message)

	if result.Task != nil {
		t.renderTask(result.Task)
	}
	if len(result.Tasks) > 0 {
		fmt.Fprintln(t.out, "\nTasks:")
		for _, task := range result.Tasks {
			t.renderTask(task)
		}
	}
	fmt.Fprintln(t.out, "--------------------------------------")
}

func (t *TerminalInterface) renderTask(task *entities.Task) {
	due := ""
	if task.DueDate != nil {
		due = fmt.Sprintf(" (due: %s)", task.DueDate)
	}
	tags := ""
	if len(task.Tags) > 0 {
		tags = fmt.Sprintf(" [%s]", strings.Join(task.Tags, ", "))
	}

	fmt.Fprintf(t.out, "%s %s %d: %s%s%s\n",
		statusGlyph(task.Status), priorityGlyph(task.Priority), task.ID, task.Title, due, tags)
	if task.Description != "" {
		fmt.Fprintf(t.out, "      %s\n", task.Description)
	}
}

func statusGlyph(status entities.Status) string {
	switch status {
	case entities.StatusInProgress:
		return "[~]"
	case entities.StatusDone:
		return "[x]"
	default:
		return "[ ]"
	}
}

func priorityGlyph(priority entities.Priority) string {
	switch priority {
	case entities.PriorityUrgent:
		return "!!!"
	case entities.PriorityHigh:
		return "!! "
	case entities.PriorityLow:
		return " . "
	default:
		return " ! "
	}
}
