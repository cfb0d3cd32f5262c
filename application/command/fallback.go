package command

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"taskpilot/domain/entities"
)

// FallbackParser recognizes literal keyword patterns when the oracle is
// degraded, absent or returns malformed output. It has no hidden
// randomness: identical input text (at an identical clock instant for
// relative date words) always yields the identical intent.
type FallbackParser struct {
	now func() time.Time
}

func NewFallbackParser() *FallbackParser {
	return &FallbackParser{now: time.Now}
}

var (
	taskIDPattern  = regexp.MustCompile(`\b(\d+)\b`)
	inDaysPattern  = regexp.MustCompile(`\b(?:in|next|within) (\d+) days?\b`)
	tomorrowPhrase = regexp.MustCompile(`\b(?:by |due )?tomorrow\b`)
	todayPhrase    = regexp.MustCompile(`\b(?:by |due )?today\b`)
	weekdayPhrase  = regexp.MustCompile(`\b(?:by |on |due |next )?(monday|tuesday|wednesday|thursday|friday|saturday|sunday)\b`)
	taggedPhrase   = regexp.MustCompile(`\btag(?:ged)? (\w+)\b`)
	whitespace     = regexp.MustCompile(`\s+`)
)

var weekdays = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// Parse maps raw text onto exactly one intent using literal keyword rules,
// or rejects it.
func (f *FallbackParser) Parse(raw string) (entities.Intent, error) {
	text := strings.ToLower(strings.TrimSpace(raw))
	text = strings.TrimRight(text, ".!")
	words := strings.Fields(text)
	if len(words) > 0 && words[0] == "please" {
		words = words[1:]
		text = strings.Join(words, " ")
	}
	if len(words) == 0 {
		return entities.Intent{}, fmt.Errorf("%w: empty command", entities.ErrUnrecognizedCommand)
	}

	switch words[0] {
	case "add", "create", "new":
		if len(words) > 1 && (words[1] == "tag" || words[1] == "tags") {
			return f.parseAddTags(text)
		}
		return f.parseCreate(text)
	case "delete", "remove":
		return f.parseDelete(text)
	case "update", "change":
		return f.parseUpdate(text)
	case "tag":
		return f.parseAddTags(text)
	case "mark", "set":
		return f.parseMarkStatus(text)
	case "prioritize", "sort":
		return entities.Intent{Action: entities.ActionPrioritize}, nil
	case "list", "show", "display":
		if strings.Contains(text, "due") {
			return f.parseDueFilter(text)
		}
		return f.parseList(text)
	}

	// No leading verb; fall through to substring rules.
	switch {
	case containsAny(text, "done", "complete", "completed", "finish", "finished",
		"start", "begin", "in progress"):
		return f.parseMarkStatus(text)
	case containsAny(text, "prioritize", "sort by priority"):
		return entities.Intent{Action: entities.ActionPrioritize}, nil
	case strings.Contains(text, "due"):
		return f.parseDueFilter(text)
	case containsAny(text, "list", "show", "tasks"):
		return f.parseList(text)
	}

	return entities.Intent{}, fmt.Errorf("%w: %q", entities.ErrUnrecognizedCommand, raw)
}

func (f *FallbackParser) parseCreate(text string) (entities.Intent, error) {
	words := strings.Fields(text)
	rest := strings.Join(words[1:], " ")

	priority, rest := extractPriority(rest)
	due, rest := f.extractDueDate(rest)
	title := cleanTitle(rest)
	if title == "" {
		return entities.Intent{}, fmt.Errorf("%w: create needs a title", entities.ErrIncompleteCommand)
	}

	return entities.Intent{
		Action: entities.ActionCreate,
		Payload: entities.IntentPayload{
			Title:    title,
			Priority: priority,
			DueDate:  due,
		},
	}, nil
}

func (f *FallbackParser) parseDelete(text string) (entities.Intent, error) {
	id, ok := firstID(text)
	if !ok {
		return entities.Intent{}, fmt.Errorf("%w: delete needs a task id", entities.ErrIncompleteCommand)
	}
	return entities.Intent{
		Action:  entities.ActionDelete,
		Payload: entities.IntentPayload{ID: id},
	}, nil
}

func (f *FallbackParser) parseMarkStatus(text string) (entities.Intent, error) {
	id, ok := firstID(text)
	if !ok {
		return entities.Intent{}, fmt.Errorf("%w: status change needs a task id", entities.ErrIncompleteCommand)
	}

	var status entities.Status
	switch {
	case containsAny(text, "in progress", "in_progress", "in-progress", "start", "begin"):
		status = entities.StatusInProgress
	case containsAny(text, "done", "complete", "completed", "finish", "finished"):
		status = entities.StatusDone
	case containsAny(text, "todo", "to do", "reopen"):
		status = entities.StatusTodo
	default:
		return entities.Intent{}, fmt.Errorf("%w: status change needs a status", entities.ErrIncompleteCommand)
	}

	return entities.Intent{
		Action:  entities.ActionMarkStatus,
		Payload: entities.IntentPayload{ID: id, Status: string(status)},
	}, nil
}

func (f *FallbackParser) parseUpdate(text string) (entities.Intent, error) {
	id, ok := firstID(text)
	if !ok {
		return entities.Intent{}, fmt.Errorf("%w: update needs a task id", entities.ErrIncompleteCommand)
	}

	payload := entities.IntentPayload{ID: id}
	priority, rest := extractPriority(text)
	payload.Priority = priority
	due, _ := f.extractDueDate(rest)
	payload.DueDate = due

	switch {
	case containsAny(text, "in progress", "in_progress", "in-progress"):
		payload.Status = string(entities.StatusInProgress)
	case containsAny(text, "done", "complete", "completed", "finished"):
		payload.Status = string(entities.StatusDone)
	case containsAny(text, "todo", "to do"):
		payload.Status = string(entities.StatusTodo)
	}

	return entities.Intent{Action: entities.ActionUpdate, Payload: payload}, nil
}

func (f *FallbackParser) parseAddTags(text string) (entities.Intent, error) {
	id, ok := firstID(text)
	if !ok {
		return entities.Intent{}, fmt.Errorf("%w: tagging needs a task id", entities.ErrIncompleteCommand)
	}

	words := strings.Fields(text)
	var tags []string
	seen := false
	for _, word := range words {
		word = strings.Trim(word, ",.;:")
		if !seen {
			if word == "tag" || word == "tags" {
				seen = true
			}
			continue
		}
		switch word {
		case "to", "on", "task", "the", "a", "and", "as", "with", strconv.Itoa(id), "":
			continue
		}
		tags = append(tags, word)
	}
	if len(tags) == 0 {
		return entities.Intent{}, fmt.Errorf("%w: tagging needs at least one tag", entities.ErrIncompleteCommand)
	}

	return entities.Intent{
		Action:  entities.ActionAddTags,
		Payload: entities.IntentPayload{ID: id, Tags: tags},
	}, nil
}

func (f *FallbackParser) parseList(text string) (entities.Intent, error) {
	payload := entities.IntentPayload{}

	priority, _ := extractPriority(text)
	payload.Priority = priority

	switch {
	case containsAny(text, "in progress", "in_progress", "in-progress"):
		payload.Status = string(entities.StatusInProgress)
	case containsAny(text, "done", "completed", "finished"):
		payload.Status = string(entities.StatusDone)
	case containsAny(text, "todo", "to do", "pending"):
		payload.Status = string(entities.StatusTodo)
	}

	if m := taggedPhrase.FindStringSubmatch(text); m != nil {
		payload.Tag = m[1]
	}

	return entities.Intent{Action: entities.ActionList, Payload: payload}, nil
}

func (f *FallbackParser) parseDueFilter(text string) (entities.Intent, error) {
	days := 7
	switch {
	case strings.Contains(text, "today"):
		days = 0
	case strings.Contains(text, "tomorrow"):
		days = 1
	case strings.Contains(text, "this week"):
		days = 7
	}
	if m := inDaysPattern.FindStringSubmatch(text); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			days = n
		}
	}
	return entities.Intent{
		Action:  entities.ActionFilterByDate,
		Payload: entities.IntentPayload{Days: days},
	}, nil
}

// extractPriority finds a literal priority phrase, returning the priority
// label and the text with the phrase removed.
func extractPriority(text string) (string, string) {
	phrases := []struct {
		phrase   string
		priority entities.Priority
	}{
		{"urgent priority", entities.PriorityUrgent},
		{"urgent", entities.PriorityUrgent},
		{"critical", entities.PriorityUrgent},
		{"high priority", entities.PriorityHigh},
		{"high-priority", entities.PriorityHigh},
		{"medium priority", entities.PriorityMedium},
		{"normal priority", entities.PriorityMedium},
		{"low priority", entities.PriorityLow},
		{"low-priority", entities.PriorityLow},
	}
	for _, p := range phrases {
		if idx := strings.Index(text, p.phrase); idx != -1 {
			return string(p.priority), text[:idx] + " " + text[idx+len(p.phrase):]
		}
	}
	return "", text
}

// extractDueDate resolves relative date words against the parser's clock,
// returning the YYYY-MM-DD string and the text with the phrase removed.
func (f *FallbackParser) extractDueDate(text string) (string, string) {
	today := entities.NewDate(f.now())

	if m := inDaysPattern.FindStringSubmatch(text); m != nil {
		n, err := strconv.Atoi(m[1])
		if err == nil {
			due := entities.Date{Time: today.AddDate(0, 0, n)}
			return due.String(), inDaysPattern.ReplaceAllString(text, " ")
		}
	}
	if tomorrowPhrase.MatchString(text) {
		due := entities.Date{Time: today.AddDate(0, 0, 1)}
		return due.String(), tomorrowPhrase.ReplaceAllString(text, " ")
	}
	if todayPhrase.MatchString(text) {
		return today.String(), todayPhrase.ReplaceAllString(text, " ")
	}
	if m := weekdayPhrase.FindStringSubmatch(text); m != nil {
		target := weekdays[m[1]]
		// Same-day weekday references mean today; "next" skips a week.
		delta := (int(target) - int(today.Weekday()) + 7) % 7
		if delta == 0 && strings.Contains(m[0], "next") {
			delta = 7
		}
		due := entities.Date{Time: today.AddDate(0, 0, delta)}
		return due.String(), weekdayPhrase.ReplaceAllString(text, " ")
	}
	return "", text
}

// cleanTitle strips command scaffolding ("a task to ...") and collapses
// the gaps left by removed phrases.
func cleanTitle(text string) string {
	text = whitespace.ReplaceAllString(text, " ")
	text = strings.Trim(text, " ,.;:")
	for _, prefix := range []string{
		"a new task to ", "new task to ", "a task to ", "task to ",
		"a task for ", "task for ", "a task ", "task ", "a ",
	} {
		if strings.HasPrefix(text, prefix) {
			text = text[len(prefix):]
			break
		}
	}
	return strings.Trim(text, " ,.;:")
}

func firstID(text string) (int, bool) {
	m := taskIDPattern.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	id, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return id, true
}

func containsAny(text string, phrases ...string) bool {
	for _, phrase := range phrases {
		if strings.Contains(text, phrase) {
			return true
		}
	}
	return false
}
