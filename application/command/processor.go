package command

import (
	"context"
	"errors"
	"fmt"

	"taskpilot/domain/entities"
	"taskpilot/domain/interfaces"

	"github.com/sirupsen/logrus"
)

// Processor is the command entry point shared by the REST and CLI
// adapters: interpret the raw text, then execute the resulting intent.
type Processor struct {
	interpreter *Interpreter
	executor    *Executor
	logger      *logrus.Logger
}

func NewProcessor(oracle interfaces.TextCompleter, store interfaces.TaskStore, logger *logrus.Logger) *Processor {
	return &Processor{
		interpreter: NewInterpreter(oracle, logger),
		executor:    NewExecutor(store, logger),
		logger:      logger,
	}
}

// Process runs one command to completion. Every failure is scoped to this
// command and reported through the result; the store stays consistent.
func (p *Processor) Process(ctx context.Context, raw string) entities.CommandResult {
	intent, err := p.interpreter.Interpret(ctx, raw)
	if err != nil {
		p.logger.WithError(err).WithField("command", raw).Info("command rejected")
		return entities.CommandResult{
			Success: false,
			Message: clarification(err),
			Error:   entities.ErrorKind(err),
		}
	}

	p.logger.WithField("action", intent.Action).Debug("executing intent")
	return p.executor.Execute(intent)
}

// clarification phrases a rejection as a request the user can act on.
func clarification(err error) string {
	switch {
	case errors.Is(err, entities.ErrUnrecognizedCommand):
		return "I couldn't understand that command. Try something like \"add a task to review the report by friday\" or \"list my tasks\"."
	case errors.Is(err, entities.ErrIncompleteCommand):
		return fmt.Sprintf("That command is missing something: %v. Please include it and try again.", err)
	case errors.Is(err, entities.ErrValidation):
		return fmt.Sprintf("Some values didn't make sense: %v.", err)
	default:
		return err.Error()
	}
}
