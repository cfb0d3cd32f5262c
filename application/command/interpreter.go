package command

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"taskpilot/domain/entities"
	"taskpilot/domain/interfaces"

	"github.com/sirupsen/logrus"
)

// Interpreter turns raw user text into a validated Intent. It asks the
// language-model oracle first and falls back to the rule-based parser when
// the oracle is unavailable or its output cannot be used.
type Interpreter struct {
	oracle   interfaces.TextCompleter
	fallback *FallbackParser
	logger   *logrus.Logger
	now      func() time.Time
}

// NewInterpreter - creates an interpreter. A nil oracle is allowed; the
// fallback parser then handles every command.
func NewInterpreter(oracle interfaces.TextCompleter, logger *logrus.Logger) *Interpreter {
	return &Interpreter{
		oracle:   oracle,
		fallback: NewFallbackParser(),
		logger:   logger,
		now:      time.Now,
	}
}

// Interpret converts raw text into exactly one schema-valid intent or
// rejects the command.
func (i *Interpreter) Interpret(ctx context.Context, raw string) (entities.Intent, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return entities.Intent{}, fmt.Errorf("%w: empty command", entities.ErrUnrecognizedCommand)
	}

	if i.oracle != nil {
		if intent, ok := i.interpretWithOracle(ctx, raw); ok {
			return intent, nil
		}
	}

	intent, err := i.fallback.Parse(raw)
	if err != nil {
		return entities.Intent{}, err
	}
	if err := ValidateIntent(intent); err != nil {
		return entities.Intent{}, err
	}
	return intent, nil
}

// interpretWithOracle runs the best-effort oracle path. Any failure along
// it - transport, extraction, validation - only means the deterministic
// fallback takes over.
func (i *Interpreter) interpretWithOracle(ctx context.Context, raw string) (entities.Intent, bool) {
	response, err := i.oracle.Complete(ctx, BuildPrompt(raw, entities.NewDate(i.now())))
	if err != nil {
		i.logger.WithError(err).Warn("oracle call failed, using fallback parser")
		return entities.Intent{}, false
	}

	intent, err := ExtractIntent(response)
	if err != nil {
		i.logger.WithError(err).Warn("no usable intent in oracle response, using fallback parser")
		return entities.Intent{}, false
	}

	if err := ValidateIntent(intent); err != nil {
		i.logger.WithError(err).WithField("action", intent.Action).Warn("oracle intent rejected, using fallback parser")
		return entities.Intent{}, false
	}
	return intent, true
}

const intentInstructions = `You translate one task-management command into one JSON object.

You MUST:
- output ONLY a valid JSON object, no prose, no markdown,
- pick exactly one action from the schema below,
- copy values from the command; never invent ids, dates or priorities the command does not state,
- be deterministic: the same command always produces the same object.

Schema: {"action": <action>, "payload": {<fields>}}

Actions and payload fields:
- "create": "title" (required), "description", "priority" (low|medium|high|urgent), "due_date" (YYYY-MM-DD), "tags" (array of strings)
- "update": "id" (required) plus any fields to change
- "delete": "id" (required)
- "mark_status": "id" and "status" (todo|in_progress|done), both required
- "add_tags": "id" and "tags", both required
- "list": optional filters "status", "priority", "tag"
- "prioritize": no fields
- "filter_by_date": "days" (integer, tasks due within that many days)

Examples:
Command: add a task to call mom tomorrow, high priority
{"action":"create","payload":{"title":"call mom","priority":"high","due_date":"%s"}}
Command: delete task 2
{"action":"delete","payload":{"id":2}}
Command: mark task 5 as done
{"action":"mark_status","payload":{"id":5,"status":"done"}}
Command: show my high priority tasks
{"action":"list","payload":{"priority":"high"}}
`

// BuildPrompt composes the oracle request: the fixed instruction, the
// schema description with examples, today's date for resolving relative
// words, and the raw user text.
func BuildPrompt(raw string, today entities.Date) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf(intentInstructions, entities.Date{Time: today.AddDate(0, 0, 1)}))
	b.WriteString(fmt.Sprintf("\nToday is %s.\n", today))
	b.WriteString(fmt.Sprintf("\nCommand: %s\n", raw))
	return b.String()
}

// ExtractIntent locates the first well-formed JSON object in the oracle's
// free-text response and decodes it as an intent candidate. The oracle is
// an untrusted text source; the result still has to pass ValidateIntent.
func ExtractIntent(text string) (entities.Intent, error) {
	block := extractJSONBlock(text)
	if block == "" {
		return entities.Intent{}, fmt.Errorf("no JSON object in oracle response")
	}
	var intent entities.Intent
	if err := json.Unmarshal([]byte(block), &intent); err != nil {
		return entities.Intent{}, fmt.Errorf("decoding oracle response: %w", err)
	}
	return intent, nil
}

// extractJSONBlock pulls a JSON payload out of free text: a ```json fenced
// block if present, otherwise the first "{" through the last "}".
func extractJSONBlock(text string) string {
	text = strings.TrimSpace(text)

	if strings.HasPrefix(text, "```") {
		lines := strings.Split(text, "\n")
		var body []string
		inFence := false
		for _, line := range lines {
			if strings.HasPrefix(strings.TrimSpace(line), "```") {
				if inFence {
					break
				}
				inFence = true
				continue
			}
			if inFence {
				body = append(body, line)
			}
		}
		if len(body) > 0 {
			return strings.Join(body, "\n")
		}
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start != -1 && end > start {
		return text[start : end+1]
	}
	return ""
}
